package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	steg "github.com/zedseven/keysteg"
	"github.com/zedseven/keysteg/internal/algos"
	"github.com/zedseven/keysteg/internal/config"
)

// Program entry point

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("steg", flag.ContinueOnError)
	digToggle := fs.Bool("dig", false, "Whether to extract a message instead of hiding it")
	imgPath := fs.String("img", "", "The filepath to the image on disk")
	text := fs.String("text", "", "The message to hide")
	filePath := fs.String("file", "", "The filepath to a UTF-8 text file to hide instead of -text")
	outPath := fs.String("out", "", "The filepath to write the steg image (or, with -dig, the recovered text) to")
	key := fs.String("key", "", "The key that decides the pixel order (falls back to the config file or STEG_KEY)")
	algo := fs.String("algo", "", "The pixel ordering algorithm: pattern or sequential")
	configPath := fs.String("config", "steg.yml", "The filepath to an optional YAML config file")
	verbosity := fs.String("v", "", "The amount of output: none, steps, info or debug")
	showVersion := fs.Bool("version", false, "Print the version and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, steg.Version())
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	// An explicit -key="" still selects the empty key
	keyGiven := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "key" {
			keyGiven = true
		}
	})
	if !keyGiven {
		*key = cfg.Key
	}
	if *algo == "" {
		*algo = cfg.Algorithm
	}
	if *verbosity == "" {
		*verbosity = cfg.Output
	}

	if len(*imgPath) <= 0 {
		fs.PrintDefaults()
		return 2
	}
	algorithm := algos.StringToAlgo(*algo)
	if !algorithm.IsValid() {
		fmt.Fprintf(os.Stderr, "Unknown algorithm '%v'.\n", *algo)
		return 2
	}
	outputLevel := steg.StringToOutputLevel(*verbosity)

	if *digToggle {
		recovered, err := steg.Dig(steg.DigConfig{
			ImagePath:   *imgPath,
			OutPath:     *outPath,
			Key:         *key,
			Algorithm:   algorithm,
			OutputLevel: outputLevel,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if len(*outPath) <= 0 {
			fmt.Fprintln(stdout, recovered)
		}
		return 0
	}

	out := *outPath
	if len(out) <= 0 && len(cfg.OutDir) > 0 {
		out = filepath.Join(cfg.OutDir, filepath.Base(steg.DefaultOutPath(*imgPath)))
	}
	err = steg.Hide(&steg.HideConfig{
		ImagePath: *imgPath,
		Text:      *text,
		FilePath:  *filePath,
		OutPath:   out,
		Key:       *key,
		Algorithm: algorithm,
	}, outputLevel)
	if err != nil {
		var capErr *steg.CapacityError
		if errors.As(err, &capErr) && capErr.AvailableBits >= 8 {
			fmt.Fprintf(os.Stderr, "%v The image holds at most %d bytes of text.\n", err, capErr.AvailableBits/8-1)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}
