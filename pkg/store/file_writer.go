package store

import (
	"bufio"
	"os"
	"path/filepath"
)

// FileWriterConfig holds configuration for the line writer
type FileWriterConfig struct {
	FilePath   string // Path to the output file, truncated on open
	BufferSize int    // Write buffer size (0 = bufio default)
}

// LineWriter writes newline-delimited text to a file
type LineWriter struct {
	file   *os.File
	writer *bufio.Writer
	config FileWriterConfig
	lines  int
}

// NewLineWriter creates the output file, and its directory if needed
func NewLineWriter(config FileWriterConfig) (*LineWriter, error) {
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0750); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}

	var writer *bufio.Writer
	if config.BufferSize > 0 {
		writer = bufio.NewWriterSize(file, config.BufferSize)
	} else {
		writer = bufio.NewWriter(file)
	}

	return &LineWriter{
		file:   file,
		writer: writer,
		config: config,
	}, nil
}

// WriteLine writes line followed by "\n"
func (w *LineWriter) WriteLine(line []byte) error {
	if _, err := w.writer.Write(line); err != nil {
		return err
	}
	if err := w.writer.WriteByte('\n'); err != nil {
		return err
	}
	w.lines++
	return nil
}

// WriteString writes s followed by "\n"
func (w *LineWriter) WriteString(s string) error {
	if _, err := w.writer.WriteString(s); err != nil {
		return err
	}
	if err := w.writer.WriteByte('\n'); err != nil {
		return err
	}
	w.lines++
	return nil
}

// Lines returns the number of lines written so far
func (w *LineWriter) Lines() int {
	return w.lines
}

// Path returns the file path
func (w *LineWriter) Path() string {
	return w.config.FilePath
}

// Close flushes buffered lines, syncs and closes the file
func (w *LineWriter) Close() error {
	if err := w.writer.Flush(); err != nil {
		_ = w.file.Close()
		return err
	}
	if err := w.file.Sync(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}
