package steg

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// OutputLevel controls how much console output Hide and Dig produce.
type OutputLevel int

const (
	OutputNone  OutputLevel = iota // Print nothing.
	OutputSteps                    // Print each step of the operation.
	OutputInfo                     // Also print image and payload details.
	OutputDebug                    // Also print per-pixel detail.
)

func (lvl OutputLevel) String() string {
	switch lvl {
	case OutputNone:
		return "none"
	case OutputSteps:
		return "steps"
	case OutputInfo:
		return "info"
	case OutputDebug:
		return "debug"
	default:
		return "<unknown>"
	}
}

// StringToOutputLevel parses a level name, falling back to OutputSteps if it is not recognized.
func StringToOutputLevel(str string) OutputLevel {
	switch strings.ToLower(str) {
	case "none", "quiet":
		return OutputNone
	case "info":
		return OutputInfo
	case "debug":
		return OutputDebug
	default:
		return OutputSteps
	}
}

// progressWriter receives all Hide and Dig output, keeping stdout free for recovered text.
var progressWriter io.Writer = os.Stderr

func printlnLvl(outputLevel, minLevel OutputLevel, a ...interface{}) {
	if outputLevel >= minLevel {
		fmt.Fprintln(progressWriter, a...)
	}
}
