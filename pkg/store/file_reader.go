package store

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"strconv"
)

const defaultReadBufferSize = 64 * 1024

// FileReaderConfig holds configuration for the line and integer readers
type FileReaderConfig struct {
	FilePath   string // Path to the input file
	BufferSize int    // Read buffer size (0 = 64 KiB)
}

// LineReader provides sequential, binary-safe access to the lines of a file
type LineReader struct {
	file   *os.File
	reader *bufio.Reader
	line   int
}

// NewLineReader opens the configured file for line reading
func NewLineReader(config FileReaderConfig) (*LineReader, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, err
	}

	size := config.BufferSize
	if size <= 0 {
		size = defaultReadBufferSize
	}

	return &LineReader{
		file:   file,
		reader: bufio.NewReaderSize(file, size),
	}, nil
}

// ReadLine returns the next line without its "\n" or "\r\n" terminator.
// A final line without a terminator is still returned. io.EOF signals that
// no lines remain. The returned slice is owned by the caller.
func (r *LineReader) ReadLine() ([]byte, error) {
	line, err := r.reader.ReadBytes('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			r.line++
			return bytes.TrimSuffix(line, []byte{'\r'}), nil
		}
		return nil, err
	}
	r.line++

	line = line[:len(line)-1]
	return bytes.TrimSuffix(line, []byte{'\r'}), nil
}

// Line returns the 1-based number of the last line read
func (r *LineReader) Line() int {
	return r.line
}

// Close closes the underlying file
func (r *LineReader) Close() error {
	return r.file.Close()
}

// IntReader reads whitespace-separated base-10 integers from a file
type IntReader struct {
	file    *os.File
	scanner *bufio.Scanner
	token   string
	rest    string // unread tail of the current word
}

// NewIntReader opens the configured file for integer reading
func NewIntReader(config FileReaderConfig) (*IntReader, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, err
	}

	size := config.BufferSize
	if size <= 0 {
		size = defaultReadBufferSize
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, size), bufio.MaxScanTokenSize*16)
	scanner.Split(bufio.ScanWords)

	return &IntReader{file: file, scanner: scanner}, nil
}

// ReadInt returns the next integer. io.EOF signals the end of input.
//
// An integer is an optional sign followed by decimal digits. A word such as
// "12abc" yields 12, and the next call fails on "abc". A token that is not a
// 32-bit integer yields a *strconv.NumError; Token reports it.
func (r *IntReader) ReadInt() (int32, error) {
	if r.rest == "" {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		r.rest = r.scanner.Text()
	}

	word := r.rest
	n := integerPrefix(word)
	if n == 0 {
		r.token = word
		r.rest = ""
		return 0, &strconv.NumError{Func: "ParseInt", Num: word, Err: strconv.ErrSyntax}
	}

	r.token = word[:n]
	r.rest = word[n:]
	v, err := strconv.ParseInt(r.token, 10, 32)
	if err != nil {
		r.rest = ""
		return 0, err
	}
	return int32(v), nil
}

// integerPrefix returns the length of the leading sign and digit run of s,
// or 0 if s does not start with at least one digit after the sign
func integerPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digits {
		return 0
	}
	return i
}

// Token returns the last token scanned
func (r *IntReader) Token() string {
	return r.token
}

// Close closes the underlying file
func (r *IntReader) Close() error {
	return r.file.Close()
}
