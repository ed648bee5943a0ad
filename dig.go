package steg

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/zedseven/keysteg/internal/algos"
)

// Types

// DigConfig stores the configuration options for the Dig operation.
type DigConfig struct {
	ImagePath   string      // The path on disk to a supported image.
	OutPath     string      // The path on disk to write the recovered text to. Optional.
	Key         string      // The key used when the message was hidden.
	Algorithm   algos.Algo  // The pixel ordering to use. Zero means algos.AlgoPattern.
	OutputLevel OutputLevel // The amount of output to provide.
}

// Primary method

// Dig extracts a text message from a provided image on disk and returns it, also writing it to
// OutPath when one is given.
// The key and algorithm must match the ones used when hiding. Otherwise the result is garbage
// or empty; there is no separate error for that case.
func Dig(config DigConfig) (string, error) {
	// Input validation
	if len(config.ImagePath) <= 0 {
		return "", &InvalidFormatError{"ImagePath is empty."}
	}
	if config.Algorithm == algos.AlgoUnknown {
		config.Algorithm = algos.AlgoPattern
	}
	if !config.Algorithm.IsValid() {
		return "", &InvalidFormatError{"Algorithm is invalid."}
	}

	printlnLvl(config.OutputLevel, OutputDebug, "This tool has been set to display debug output.")

	printlnLvl(config.OutputLevel, OutputSteps, fmt.Sprintf("Loading the image from '%v'...", config.ImagePath))
	pixels, err := loadImage(config.ImagePath, config.OutputLevel)
	if err != nil {
		printlnLvl(config.OutputLevel, OutputSteps, fmt.Sprintf("Unable to load the image at '%v'!", config.ImagePath))
		return "", err
	}

	printlnLvl(config.OutputLevel, OutputSteps, fmt.Sprintf("Reading the message from the image using the %v algorithm...", config.Algorithm))
	text := ExtractOrdered(pixels, config.Key, config.Algorithm)

	printlnLvl(config.OutputLevel, OutputInfo, fmt.Sprintf("Recovered %d B (%d characters)", len(text), utf8.RuneCountInString(text)))
	if len(text) <= 0 {
		printlnLvl(config.OutputLevel, OutputSteps, "Nothing was recovered. Either the key is wrong or the image holds no message.")
	}

	if len(config.OutPath) > 0 {
		printlnLvl(config.OutputLevel, OutputSteps, fmt.Sprintf("Writing to the output file at '%v'...", config.OutPath))
		if err = os.WriteFile(config.OutPath, []byte(text), 0o644); err != nil {
			printlnLvl(config.OutputLevel, OutputSteps, fmt.Sprintf("There was an error creating the file '%v'.", config.OutPath))
			return text, err
		}
	}

	printlnLvl(config.OutputLevel, OutputSteps, "All done! c:")

	return text, nil
}
