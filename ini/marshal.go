// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bufio"
	"io"
)

// Save writes the document in INI format. The default section is written
// first without a header, followed by each named section in creation order.
// Comments and blank lines from the parsed source are not preserved.
func (d *Document) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(d.appendText(nil)); err != nil {
		return err
	}
	return bw.Flush()
}

// MarshalText serializes the document in INI format.
func (d *Document) MarshalText() ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	return d.appendText(nil), nil
}

func (d *Document) appendText(buf []byte) []byte {
	for _, name := range d.Sections() {
		if name != "" {
			buf = append(buf, '[')
			buf = appendEscaped(buf, name, escapeSection)
			buf = append(buf, "]\n"...)
		}
		g := d.groups[name]
		for _, k := range g.keys {
			buf = appendEscaped(buf, k, escapeKey)
			buf = append(buf, '=')
			buf = appendEscaped(buf, g.values[k], escapeValue)
			buf = append(buf, '\n')
		}
	}
	return buf
}

type escapeMode int

const (
	escapeValue escapeMode = iota
	escapeKey
	escapeSection
)

// EscapeSection escapes a section name for use between square brackets.
func EscapeSection(name string) string {
	return string(appendEscaped(nil, name, escapeSection))
}

// EscapeKey escapes a property key for use before the equals sign.
func EscapeKey(key string) string {
	return string(appendEscaped(nil, key, escapeKey))
}

// EscapeValue escapes a property value for use after the equals sign.
func EscapeValue(value string) string {
	return string(appendEscaped(nil, value, escapeValue))
}

// appendEscaped appends s to dst with a backslash before each character the
// parser would otherwise interpret. Line feeds and carriage returns are
// written as "\n" and "\r" so that the line stays intact.
func appendEscaped(dst []byte, s string, mode escapeMode) []byte {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\\' || c == ';':
			dst = append(dst, '\\', c)
		case c == '=' && mode == escapeKey:
			dst = append(dst, '\\', c)
		case c == '[' && i == 0 && mode == escapeKey:
			dst = append(dst, '\\', c)
		case c == ']' && mode == escapeSection:
			dst = append(dst, '\\', c)
		default:
			dst = append(dst, c)
		}
	}
	return dst
}
