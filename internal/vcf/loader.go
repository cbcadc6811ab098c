// Package vcf splits VCF files into header metadata and body records.
package vcf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrCompressedInput is returned for gzip-compressed input. Compressed
// files are selected by name but never decompressed.
var ErrCompressedInput = errors.New("compressed input is not supported")

// VariantFile holds the raw lines of one VCF file in source order.
type VariantFile struct {
	Path  string
	Lines []string
}

// LoadFile reads the file at path into a VariantFile.
func LoadFile(path string) (*VariantFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	return LoadReader(path, f)
}

// LoadReader reads all lines from r. Exactly one "\n" or "\r\n" terminator
// is stripped per line; a final line without a terminator is kept. A bare
// "\r" does not end a line.
func LoadReader(path string, r io.Reader) (*VariantFile, error) {
	reader := bufio.NewReader(r)

	// Check for gzip magic number (0x1f, 0x8b)
	magic, err := reader.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		return nil, &IOError{Path: path, Op: "read", Err: ErrCompressedInput}
	}

	vf := &VariantFile{Path: path}
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			vf.Lines = append(vf.Lines, strings.TrimSuffix(line, "\r"))
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, &IOError{Path: path, Op: "read", Err: err}
		}
	}

	return vf, nil
}

// IOError reports a file that could not be opened or read.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
