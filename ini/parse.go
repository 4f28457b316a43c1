// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Parse parses an INI document. See the Syntax section in the package
// documentation for the format recognized by Parse.
//
// If reading fails partway through, Parse returns the properties read so far
// along with the error.
func Parse(r io.Reader) (*Document, error) {
	d := new(Document)
	err := d.Load(r)
	return d, err
}

// Load replaces the document's contents with the INI data read from r.
// The default group is recreated before any line is read, so it exists even
// if r returns an error immediately.
func (d *Document) Load(r io.Reader) error {
	d.reset()
	br := bufio.NewReader(r)
	curr := d.groups[""]
	for lineno := 1; ; lineno++ {
		line, err := br.ReadString('\n')
		line = strings.TrimSuffix(line, "\n")
		if len(line) > 0 {
			curr = d.parseLine(curr, line)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parse ini: line %d: %w", lineno, err)
		}
	}
}

// UnmarshalText parses the INI data, replacing any groups in d.
func (d *Document) UnmarshalText(data []byte) error {
	return d.Load(bytes.NewReader(data))
}

// parseLine applies a single line to the document and returns the group
// that subsequent properties belong to.
func (d *Document) parseLine(curr *Group, line string) *Group {
	l := scanLine(line)
	switch {
	case l.section:
		name := l.buf[1:]
		if l.endBracket > 0 {
			name = l.buf[1:l.endBracket]
		}
		return d.CreateGroup(name)
	case l.buf == "":
		return curr
	case l.equals >= 0:
		curr.SetString(l.buf[:l.equals], l.buf[l.equals+1:])
	default:
		curr.SetString(l.buf, "")
	}
	return curr
}

// scannedLine is the result of scanLine. Offsets are into buf, the unescaped
// text of the line, and are -1 if the character was not seen unescaped.
type scannedLine struct {
	buf        string
	section    bool // line starts with '[' and has an unescaped ']'
	equals     int  // first unescaped '='
	endBracket int  // last unescaped ']'
}

// scanLine unescapes a line up to its first unescaped comment or line ending
// and records the positions of its structural characters.
func scanLine(line string) scannedLine {
	sb := new(strings.Builder)
	sb.Grow(len(line))
	l := scannedLine{equals: -1, endBracket: -1}
	startsWithBracket := false
scan:
	for i := 0; i < len(line); i++ {
		switch c := line[i]; c {
		case '\\':
			if i+1 >= len(line) {
				// Lone backslash at end of line.
				sb.WriteByte(c)
				continue
			}
			i++
			sb.WriteByte(unescapeByte(line[i]))
		case '=':
			if l.equals == -1 {
				l.equals = sb.Len()
			}
			sb.WriteByte(c)
		case '[':
			if i == 0 {
				startsWithBracket = true
			}
			sb.WriteByte(c)
		case ']':
			l.endBracket = sb.Len()
			sb.WriteByte(c)
		case ';', '\r', '\n':
			break scan
		default:
			sb.WriteByte(c)
		}
	}
	l.buf = sb.String()
	l.section = startsWithBracket && l.endBracket != -1
	return l
}

func unescapeByte(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	default:
		return c
	}
}

// Unescape decodes the escape grammar used in INI text: "\n" and "\r" become
// line feed and carriage return, a backslash before any other character
// yields that character, and a trailing lone backslash is kept. Unlike the
// parser, Unescape does not treat ';' or line endings specially.
func Unescape(s string) string {
	if strings.IndexByte(s, '\\') == -1 {
		return s
	}
	sb := new(strings.Builder)
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			sb.WriteByte(s[i])
			continue
		}
		i++
		sb.WriteByte(unescapeByte(s[i]))
	}
	return sb.String()
}
