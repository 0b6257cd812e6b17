package test

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// WordCase expects a word to be accepted or rejected by a grammar. Line is 1-based.
type WordCase struct {
	Word   string
	Accept bool
	Line   int
}

func (c *WordCase) String() string {
	word := c.Word
	if word == "" {
		word = "λ"
	}
	if c.Accept {
		return fmt.Sprintf("accept: %v", word)
	}
	return fmt.Sprintf("reject: %v", word)
}

// WordDiff is a word whose membership differs from the expectation.
type WordDiff struct {
	Case    *WordCase
	Message string
}

func DiffWord(c *WordCase, accepted bool) *WordDiff {
	if c.Accept == accepted {
		return nil
	}
	var msg string
	if c.Accept {
		msg = fmt.Sprintf("line %v: expected '%v' to be accepted but it was rejected", c.Line, c.Word)
	} else {
		msg = fmt.Sprintf("line %v: expected '%v' to be rejected but it was accepted", c.Line, c.Word)
	}
	return &WordDiff{
		Case:    c,
		Message: msg,
	}
}

// TestCase is a test-case file. It has an optional description part followed by a delimiter line
// `---`, and a part listing one `accept: <word>` or `reject: <word>` per line. The word may be empty.
// Blank lines and lines starting with `#` are ignored.
type TestCase struct {
	Description string
	Words       []*WordCase
}

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}

	var desc string
	var words *testCasePart
	switch len(parts) {
	case 1:
		words = parts[0]
	case 2:
		desc = string(parts[0].buf)
		words = parts[1]
		words.lineOffset = parts[0].lineCount + 1
	default:
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of one or two parts: %v parts found", len(parts))
	}

	cs, err := parseWords(words)
	if err != nil {
		return nil, err
	}
	if len(cs) == 0 {
		return nil, fmt.Errorf("a test case needs at least one word")
	}

	return &TestCase{
		Description: desc,
		Words:       cs,
	}, nil
}

var reWordCase = regexp.MustCompile(`^\s*(accept|reject)\s*:\s*(\S*)\s*$`)

func parseWords(part *testCasePart) ([]*WordCase, error) {
	var cs []*WordCase
	s := bufio.NewScanner(bytes.NewReader(part.buf))
	row := part.lineOffset
	for s.Scan() {
		row++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := reWordCase.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("%v: a word case must be `accept: <word>` or `reject: <word>`: %v", row, line)
		}
		cs = append(cs, &WordCase{
			Word:   m[2],
			Accept: m[1] == "accept",
			Line:   row,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return cs, nil
}

type testCasePart struct {
	buf        []byte
	lineCount  int
	lineOffset int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	_, err := buf.Write(line)
	if err != nil {
		return nil, 0, err
	}
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		_, err := buf.Write([]byte("\n"))
		if err != nil {
			return nil, 0, err
		}
		_, err = buf.Write(line)
		if err != nil {
			return nil, 0, err
		}
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}
