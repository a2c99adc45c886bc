package dictionary

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat is a dictionary file layout.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatChunk              // dict_NNNN.bin
	FormatText               // word [score] per line
)

// maxChunkEntries bounds the chunk header so a corrupt count is rejected
// before anything is allocated for it.
const maxChunkEntries = 1000000

func (f FileFormat) String() string {
	switch f {
	case FormatChunk:
		return "chunk"
	case FormatText:
		return "text"
	}
	return "unknown"
}

// Extension is the file extension a format is recognised by.
func (f FileFormat) Extension() string {
	switch f {
	case FormatChunk:
		return ".bin"
	case FormatText:
		return ".txt"
	}
	return ""
}

// minSize is the smallest file that can hold any entry of the format.
func (f FileFormat) minSize() int64 {
	if f == FormatChunk {
		return 4
	}
	return 1
}

// formatOf maps a file name to the format its extension claims.
func formatOf(filename string) FileFormat {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range []FileFormat{FormatChunk, FormatText} {
		if f.Extension() == ext {
			return f
		}
	}
	return FormatUnknown
}

// ValidateFileFormat checks that filename is a plausible file of format
// expected: right extension, large enough, and for chunks a sane header.
func ValidateFileFormat(filename string, expected FileFormat) error {
	if expected == FormatUnknown {
		return fmt.Errorf("cannot validate %s against an unknown format", filename)
	}
	if got := formatOf(filename); got != expected {
		return fmt.Errorf("file %s has extension %q, want %q for %s files",
			filename, filepath.Ext(filename), expected.Extension(), expected)
	}

	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if info.Size() < expected.minSize() {
		return fmt.Errorf("file %s is too small (%d bytes) for a %s file", filename, info.Size(), expected)
	}

	if expected != FormatChunk {
		return nil
	}
	count, err := chunkWordCount(filename)
	if err != nil {
		return fmt.Errorf("bad chunk header in %s: %w", filename, err)
	}
	log.Debugf("Chunk file %s validated: %d words", filename, count)
	return nil
}

// DetectFileFormat returns the format of filename after validating it.
func DetectFileFormat(filename string) (FileFormat, error) {
	format := formatOf(filename)
	if format == FormatUnknown {
		return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
	}
	if err := ValidateFileFormat(filename, format); err != nil {
		return FormatUnknown, err
	}
	return format, nil
}

// readHeader reads and sanity checks the chunk entry count.
func readHeader(r io.Reader) (int, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return 0, err
	}
	if count < 0 || count > maxChunkEntries {
		return 0, fmt.Errorf("invalid word count %d", count)
	}
	return int(count), nil
}

func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return readHeader(file)
}
