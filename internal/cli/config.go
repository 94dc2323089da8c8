// Package cli implements the huff command: argument parsing and the
// file-level compress and decompress operations.
package cli

import (
	"errors"
	"fmt"
	"strings"
)

// Ext is the extension of compressed files.
const Ext = ".huff"

const usage = "usage: huff [-p] [-v] [-o FILE] -c|-d FILE"

// ErrArgument is returned for missing, extra or unrecognized arguments.
var ErrArgument = errors.New("argument error")

type Mode uint8

const (
	CompressMode Mode = iota
	DecompressMode
)

func (m Mode) String() string {
	if m == DecompressMode {
		return "decompress"
	}
	return "compress"
}

// Config is the parsed command line.
type Config struct {
	Mode      Mode
	Input     string
	Output    string // empty means derive from Input
	PrintTree bool
	Verbose   bool
}

// ParseArgs parses the arguments following the program name.
func ParseArgs(args []string) (Config, error) {
	var cfg Config
	modes := 0

	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "-c":
			cfg.Mode = CompressMode
			modes++
		case "-d":
			cfg.Mode = DecompressMode
			modes++
		case "-o":
			if i+1 >= len(args) {
				return Config{}, argErr("-o must be followed by an output file")
			}
			cfg.Output = args[i+1]
			i++
		case "-p":
			cfg.PrintTree = true
		case "-v":
			cfg.Verbose = true
		default:
			if strings.HasPrefix(arg, "-") {
				return Config{}, argErr("found argument '%s' which wasn't expected", arg)
			}
			if cfg.Input != "" {
				return Config{}, argErr("unexpected extra argument '%s'", arg)
			}
			cfg.Input = arg
		}
	}

	switch {
	case modes == 0:
		return Config{}, argErr("did not get a mode flag (-c or -d)")
	case modes > 1:
		return Config{}, argErr("-c and -d cannot be combined")
	case cfg.Input == "":
		return Config{}, argErr("did not get a file name")
	}
	return cfg, nil
}

func argErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s\n\n%s", ErrArgument, fmt.Sprintf(format, args...), usage)
}
