// Package writers resolves a log output specification into an io.Writer.
package writers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriterType represents the type of writer to create
type WriterType string

const (
	WriterTypeStdout  WriterType = "stdout"
	WriterTypeStderr  WriterType = "stderr"
	WriterTypeDiscard WriterType = "discard"
	WriterTypeFile    WriterType = "file"
	WriterTypeInvalid WriterType = "invalid"
)

// CreateWriter creates an io.Writer based on the output specification.
// Supported formats:
//   - "stderr" or "" - writes to os.Stderr
//   - "stdout" - writes to os.Stdout
//   - "discard" - drops everything; the in-game console still keeps history
//   - "file:///path/to/file" or "/path/to/file" - appends to the file,
//     creating parent directories when needed
func CreateWriter(output string) (io.Writer, error) {
	switch ParseWriterType(output) {
	case WriterTypeStderr:
		return os.Stderr, nil
	case WriterTypeStdout:
		return os.Stdout, nil
	case WriterTypeDiscard:
		return io.Discard, nil
	case WriterTypeFile:
		return createFileWriter(strings.TrimPrefix(output, "file://"))
	default:
		return nil, fmt.Errorf("unsupported output format: %s", output)
	}
}

// ParseWriterType determines the writer type from an output string.
func ParseWriterType(output string) WriterType {
	switch {
	case output == "" || output == "stderr":
		return WriterTypeStderr
	case output == "stdout":
		return WriterTypeStdout
	case output == "discard":
		return WriterTypeDiscard
	case strings.HasPrefix(output, "file://"):
		return WriterTypeFile
	case isFilePath(output):
		return WriterTypeFile
	default:
		return WriterTypeInvalid
	}
}

// isFilePath determines if the string represents a local file path
func isFilePath(path string) bool {
	if strings.Contains(path, "://") {
		return false
	}
	return strings.ContainsAny(path, `/\`) || filepath.Ext(path) == ".log"
}

// createFileWriter opens filePath for appending, ensuring the directory exists
func createFileWriter(filePath string) (io.Writer, error) {
	dir := filepath.Dir(filePath)
	if dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	return file, nil
}
