package steg

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/zedseven/keysteg/internal/algos"
	"github.com/zedseven/keysteg/internal/util"
)

// HideConfig stores the configuration options for the Hide operation.
type HideConfig struct {
	// ImagePath is the path on disk to a supported image.
	ImagePath string
	// Text is the message to hide. It is ignored when FilePath is set.
	Text string
	// FilePath is the path on disk to a UTF-8 text file to hide instead of Text.
	FilePath string
	// OutPath is the path on disk to write the output image. Defaults to DefaultOutPath(ImagePath).
	// The extension picks the format and must be a lossless one (.png, .bmp, .tif, .tiff).
	OutPath string
	// Key determines the order pixels are visited in. The same key is needed to extract.
	Key string
	// Algorithm is the pixel ordering to use. Zero means algos.AlgoPattern.
	Algorithm algos.Algo
}

// Hide hides a text message in a provided image on disk, and saves the result to a new image.
func Hide(hideConfig *HideConfig, outputLevel OutputLevel) error {
	config := *hideConfig

	// Input validation
	if len(config.ImagePath) <= 0 {
		return &InvalidFormatError{"ImagePath is empty."}
	}
	if config.Algorithm == algos.AlgoUnknown {
		config.Algorithm = algos.AlgoPattern
	}
	if !config.Algorithm.IsValid() {
		return &InvalidFormatError{"Algorithm is invalid."}
	}
	if len(config.OutPath) <= 0 {
		config.OutPath = DefaultOutPath(config.ImagePath)
	}

	printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("Steg v%v.", Version()))
	printlnLvl(outputLevel, OutputDebug, "This tool has been set to display debug output.")

	text := config.Text
	if len(config.FilePath) > 0 {
		printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("Reading the message from '%v'...", config.FilePath))
		b, err := os.ReadFile(config.FilePath)
		if err != nil {
			printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("Unable to open the file at '%v'.", config.FilePath))
			return err
		}
		text = string(b)
	}
	if !utf8.ValidString(text) {
		return &InvalidFormatError{"The message is not valid UTF-8."}
	}
	for i := 0; i < len(text); i++ {
		if text[i] == 0 {
			printlnLvl(outputLevel, OutputSteps,
				fmt.Sprintf("Warning: the message contains a NUL character at byte %d. Extraction will stop there.", i))
			break
		}
	}

	printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("Loading the image from '%v'...", config.ImagePath))
	pixels, err := loadImage(config.ImagePath, outputLevel)
	if err != nil {
		printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("Unable to load the image at '%v'!", config.ImagePath))
		return err
	}

	bitsToWrite := (len(text) + 1) * int(bitsPerByte)
	printlnLvl(outputLevel, OutputInfo, fmt.Sprintf("Message size: %d B (%d characters)", len(text), utf8.RuneCountInString(text)))
	printlnLvl(outputLevel, OutputInfo, "Bits to write (including terminator):", bitsToWrite)
	if len(config.Key) <= 0 && config.Algorithm == algos.AlgoPattern {
		printlnLvl(outputLevel, OutputSteps, "Warning: the key is empty, so the pixel order is trivially predictable.")
	}

	printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("Encoding the message into the image using the %v algorithm...", config.Algorithm))
	out, err := EmbedOrdered(pixels, text, config.Key, config.Algorithm)
	if err != nil {
		return err
	}

	if outputLevel >= OutputDebug {
		order, _ := algos.PixelOrder(config.Algorithm, pixels.Width, pixels.Height, config.Key)
		for i := 0; i < util.Min(bitsToWrite, len(order)); i++ {
			p := order[i]
			off := pixels.offset(p.X, p.Y)
			fmt.Fprintf(progressWriter, "bit: %d, pixel: (%d, %d), red before: %#08b, after: %#08b\n", i, p.X, p.Y, pixels.Pix[off], out.Pix[off])
		}
	}

	printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("Writing the encoded image to '%v' now...", config.OutPath))
	if err = writeImage(out, config.OutPath, outputLevel); err != nil {
		printlnLvl(outputLevel, OutputSteps, "An error occurred while writing to the final image.")
		return err
	}

	printlnLvl(outputLevel, OutputSteps, "All done! c:")

	return nil
}
