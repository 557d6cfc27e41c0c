package dat

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxLineSize bounds a single corpus line. html5lib lines are short; the
// limit only guards against reading a binary file as a corpus.
const maxLineSize = 16 << 20

// FormatError reports a corpus file that cannot be read as test blocks.
// It signals a broken corpus or loader, never a parser conformance failure.
type FormatError struct {
	File string
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}

// Reader yields test cases from a .dat stream one at a time.
//
// Next may be called repeatedly; each call resumes where the previous one
// stopped. A "#data" header that terminates a case is held back and observed
// again by the following call, where it opens the next case.
type Reader struct {
	name     string
	sc       *bufio.Scanner
	line     int
	pushback *string
	done     bool
	err      error
}

// NewReader returns a Reader over r. name is used in error messages.
// A leading byte order mark is removed; UTF-16 input is decoded to UTF-8.
func NewReader(r io.Reader, name string) *Reader {
	decoded := transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	sc := bufio.NewScanner(decoded)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	sc.Split(scanLines)
	return &Reader{name: name, sc: sc}
}

// scanLines splits on '\n' only. Carriage returns are test input and must
// survive.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func (r *Reader) nextLine() (string, bool) {
	if r.pushback != nil {
		line := *r.pushback
		r.pushback = nil
		return line, true
	}
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			r.err = &FormatError{File: r.name, Line: r.line + 1, Msg: err.Error()}
		}
		return "", false
	}
	r.line++
	line := r.sc.Text()
	if !utf8.ValidString(line) {
		r.err = &FormatError{File: r.name, Line: r.line, Msg: "line is not valid UTF-8"}
		return "", false
	}
	return line, true
}

// Next returns the next complete test case. It returns io.EOF once the
// stream is exhausted; a trailing block without an "#errors" section is
// discarded. Any other error is a *FormatError and is returned again by
// every later call.
func (r *Reader) Next() (*Testcase, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.done {
		return nil, io.EOF
	}

	b := newBlock()
	for {
		line, ok := r.nextLine()
		if !ok {
			break
		}

		s, isHeader := ParseSection(line)
		switch {
		case isHeader && s == SectionData:
			b.trimBlankLine()
			if b.complete {
				r.pushback = &line
				return b.testcase(), nil
			}
		case isHeader:
			b.activate(s)
		default:
			b.appendLine(line)
		}
	}

	if r.err != nil {
		return nil, r.err
	}
	r.done = true
	if b.complete {
		return b.testcase(), nil
	}
	return nil, io.EOF
}

// ReadAll drains r and returns every complete test case in order.
func ReadAll(r io.Reader, name string) ([]Testcase, error) {
	dr := NewReader(r, name)
	var cases []Testcase
	for {
		tc, err := dr.Next()
		if errors.Is(err, io.EOF) {
			return cases, nil
		}
		if err != nil {
			return nil, err
		}
		cases = append(cases, *tc)
	}
}

// ParseFile reads every test case in the file at path.
func ParseFile(path string) ([]Testcase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open test file: %w", err)
	}
	defer f.Close()

	return ReadAll(f, path)
}
