// Package report delivers rendered chart markup to its destinations.
package report

import (
	"fmt"
	"io"
	"os"
)

// Writer saves chart markup to an output file while echoing the same
// bytes to a console stream.
type Writer struct {
	path string
	echo io.Writer
}

// NewWriter returns a Writer that saves to path and echoes to echo.
func NewWriter(path string, echo io.Writer) *Writer {
	return &Writer{path: path, echo: echo}
}

// Write replaces the output file with the markup and echoes it, followed
// by a newline, to the console stream.
func (w *Writer) Write(markup string) error {
	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", w.path, err)
	}
	defer file.Close()

	if _, err := io.WriteString(io.MultiWriter(file, w.echo), markup); err != nil {
		return fmt.Errorf("failed to write chart output: %w", err)
	}
	fmt.Fprintln(w.echo)

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to flush output file %s: %w", w.path, err)
	}
	return nil
}
