package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/atiedebee/huffcomp/huffman"
	"github.com/atiedebee/huffcomp/internal/logger"
)

// ErrIO wraps filesystem failures.
var ErrIO = errors.New("i/o error")

// ErrInput is returned for input files that cannot be processed.
var ErrInput = huffman.ErrInput

// Run executes cfg. The tree, when requested, is printed to out.
func Run(cfg Config, out io.Writer, log logger.Logger) error {
	switch cfg.Mode {
	case CompressMode:
		return compressFile(cfg, out, log)
	case DecompressMode:
		return decompressFile(cfg, out, log)
	}
	return argErr("unknown mode %d", cfg.Mode)
}

// OutputPath returns where the result of cfg is written: Output if set,
// otherwise "<input>.huff" when compressing, and the input with ".huff" and
// its remaining extension removed plus "d.txt" when decompressing.
func OutputPath(cfg Config) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	if cfg.Mode == CompressMode {
		return cfg.Input + Ext
	}
	base := strings.TrimSuffix(cfg.Input, Ext)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "d.txt"
}

// ExitCode maps an error returned by ParseArgs or Run to a process status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrArgument):
		return 2
	case errors.Is(err, huffman.ErrInternal):
		return 3
	default:
		return 1
	}
}

func compressFile(cfg Config, out io.Writer, log logger.Logger) error {
	log.Infof("Compressing '%s'. . .", cfg.Input)
	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return ioErr(err)
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrInput, cfg.Input)
	}
	text := string(data)

	freqs, err := huffman.CountFrequencies(text)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Input, err)
	}
	tree, err := huffman.BuildTree(freqs)
	if err != nil {
		return err
	}
	if cfg.PrintTree {
		if err := tree.Print(out); err != nil {
			return ioErr(err)
		}
	}
	packed, err := huffman.CompressWithTree(tree, text)
	if err != nil {
		return err
	}

	dst := OutputPath(cfg)
	if err := writeFileAtomic(dst, packed); err != nil {
		return err
	}
	log.Infof("%d symbols, %d distinct, %d -> %d bytes (%.1f%%)",
		freqs.Total(), len(freqs), len(data), len(packed), ratio(len(packed), len(data)))
	log.Infof("content digest %016x", xxhash.Sum64(data))
	log.Infof("Compression finished!")
	log.Infof("Output file: %s", dst)
	return nil
}

func decompressFile(cfg Config, out io.Writer, log logger.Logger) error {
	if !strings.HasSuffix(cfg.Input, Ext) {
		return fmt.Errorf("%w: %s does not end in %s", ErrInput, cfg.Input, Ext)
	}
	log.Infof("Decompressing '%s'. . .", cfg.Input)
	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return ioErr(err)
	}

	text, err := huffman.Decompress(data)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Input, err)
	}
	if cfg.PrintTree {
		if err := printStoredTree(data, out); err != nil {
			return err
		}
	}

	dst := OutputPath(cfg)
	if err := writeFileAtomic(dst, []byte(text)); err != nil {
		return err
	}
	log.Infof("%d -> %d bytes", len(data), len(text))
	log.Infof("content digest %016x", xxhash.Sum64String(text))
	log.Infof("Decompression finished!")
	log.Infof("Output file: %s", dst)
	return nil
}

func printStoredTree(data []byte, out io.Writer) error {
	c, err := huffman.ParseContainer(data)
	if err != nil {
		return err
	}
	tree, err := huffman.UnmarshalTree(c.Tree)
	if err != nil {
		return err
	}
	if err := tree.Print(out); err != nil {
		return ioErr(err)
	}
	return nil
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place. On failure the temporary file is removed and path is untouched.
func writeFileAtomic(path string, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return ioErr(err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return ioErr(err)
	}
	if err = f.Chmod(0o644); err != nil {
		return ioErr(err)
	}
	if err = f.Close(); err != nil {
		return ioErr(err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return ioErr(err)
	}
	return nil
}

func ioErr(err error) error {
	return fmt.Errorf("%w: %w", ErrIO, err)
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return 100 * float64(a) / float64(b)
}
