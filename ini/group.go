// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// A Group is the set of properties in a single section. Keys are unique and
// case-sensitive. Groups are created by a Document and must not be used after
// they have been removed from it.
type Group struct {
	values map[string]string
	keys   []string // insertion order, used for serialization
}

func newGroup() *Group {
	return &Group{values: make(map[string]string)}
}

// Len returns the number of properties in the group.
func (g *Group) Len() int {
	if g == nil {
		return 0
	}
	return len(g.keys)
}

// Keys returns the group's keys in the order they were first set.
func (g *Group) Keys() []string {
	if g == nil {
		return nil
	}
	keys := make([]string, len(g.keys))
	copy(keys, g.keys)
	return keys
}

// HasKey reports whether the key is present, regardless of its value.
func (g *Group) HasKey(key string) bool {
	_, ok := g.lookup(key)
	return ok
}

// HasNonEmpty reports whether the key is present with a non-empty value.
func (g *Group) HasNonEmpty(key string) bool {
	v, ok := g.lookup(key)
	return ok && v != ""
}

func (g *Group) lookup(key string) (_ string, ok bool) {
	if g == nil {
		return "", false
	}
	v, ok := g.values[key]
	return v, ok
}

// String returns the raw value of the key or def if the key is absent.
func (g *Group) String(key, def string) string {
	v, ok := g.lookup(key)
	if !ok {
		return def
	}
	return v
}

// WideString returns the key's value transcoded from UTF-8 to UTF-16 or def
// if the key is absent. A value that is not valid UTF-8 yields an empty
// result.
func (g *Group) WideString(key string, def []uint16) []uint16 {
	v, ok := g.lookup(key)
	if !ok {
		return def
	}
	return toUTF16(v)
}

// Bool returns true if the key's value is "true" in any letter case or def if
// the key is absent. Every other value, including "1" and "yes", is false.
func (g *Group) Bool(key string, def bool) bool {
	v, ok := g.lookup(key)
	if !ok {
		return def
	}
	return strings.ToLower(v) == "true"
}

// Int returns the key's value parsed as a base 10 integer or def if the key
// is absent. A present value that does not parse is an error.
func (g *Group) Int(key string, def int) (int, error) {
	return g.IntRadix(key, 10, def)
}

// IntRadix returns the key's value parsed as an integer in the given base or
// def if the key is absent. Surrounding spaces and tabs are ignored. Base 0
// selects the base from the value's prefix ("0x", "0o", "0b" or a leading
// "0") as strconv.ParseInt does, but digit separators ('_') are rejected.
// For base 16, an optional "0x" or "0X" prefix is accepted after the sign.
func (g *Group) IntRadix(key string, radix int, def int) (int, error) {
	v, ok := g.lookup(key)
	if !ok {
		return def, nil
	}
	n, err := parseInt(v, radix)
	if err != nil {
		return def, fmt.Errorf("key %q: %w", key, err)
	}
	return n, nil
}

func parseInt(v string, radix int) (int, error) {
	digits := strings.Trim(v, numberSpace)
	if radix == 16 {
		sign := ""
		if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
			sign, digits = digits[:1], digits[1:]
		}
		if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
			digits = digits[2:]
			if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
				return 0, &strconv.NumError{Func: "ParseInt", Num: v, Err: strconv.ErrSyntax}
			}
		}
		digits = sign + digits
	}
	if strings.IndexByte(digits, '_') != -1 {
		return 0, &strconv.NumError{Func: "ParseInt", Num: v, Err: strconv.ErrSyntax}
	}
	n, err := strconv.ParseInt(digits, radix, 0)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok {
			// Report the value as written, not the trimmed digits.
			numErr.Num = v
		}
		return 0, err
	}
	return int(n), nil
}

// numberSpace is the whitespace allowed around a number, as in
// "X=5 ; comment".
const numberSpace = " \t"

// Float returns the key's value parsed as a floating-point number or def if
// the key is absent. Surrounding spaces and tabs are ignored. A present value
// that does not parse is an error.
func (g *Group) Float(key string, def float64) (float64, error) {
	v, ok := g.lookup(key)
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.Trim(v, numberSpace), 64)
	if err != nil {
		return def, fmt.Errorf("key %q: %w", key, err)
	}
	return f, nil
}

// SetString sets the key's raw value, adding the key if necessary.
func (g *Group) SetString(key, value string) {
	if _, exists := g.values[key]; !exists {
		g.keys = append(g.keys, key)
	}
	g.values[key] = value
}

// SetWideString stores the UTF-8 transcoding of a UTF-16 value. A value with
// unpaired surrogates is stored as the empty string.
func (g *Group) SetWideString(key string, value []uint16) {
	g.SetString(key, fromUTF16(value))
}

// SetBool stores "True" or "False".
func (g *Group) SetBool(key string, value bool) {
	if value {
		g.SetString(key, "True")
	} else {
		g.SetString(key, "False")
	}
}

// SetInt stores the base 10 representation of value.
func (g *Group) SetInt(key string, value int) {
	g.SetIntRadix(key, 10, value)
}

// SetIntRadix stores the representation of value in the given base. A base
// outside 2 to 36 stores the value in base 10.
func (g *Group) SetIntRadix(key string, radix int, value int) {
	if radix < 2 || radix > 36 {
		radix = 10
	}
	g.SetString(key, strconv.FormatInt(int64(value), radix))
}

// SetFloat stores the shortest decimal representation of value that parses
// back to the same number.
func (g *Group) SetFloat(key string, value float64) {
	g.SetString(key, strconv.FormatFloat(value, 'f', -1, 64))
}

// RemoveKey removes the key and reports whether it was present.
func (g *Group) RemoveKey(key string) bool {
	if _, ok := g.lookup(key); !ok {
		return false
	}
	delete(g.values, key)
	for i, k := range g.keys {
		if k == key {
			g.keys = append(g.keys[:i], g.keys[i+1:]...)
			break
		}
	}
	return true
}

func toUTF16(s string) []uint16 {
	if !utf8.ValidString(s) {
		return nil
	}
	return utf16.Encode([]rune(s))
}

func fromUTF16(s []uint16) string {
	for i := 0; i < len(s); i++ {
		switch {
		case utf16.IsSurrogate(rune(s[i])) && i+1 < len(s) &&
			utf16.DecodeRune(rune(s[i]), rune(s[i+1])) != utf8.RuneError:
			i++
		case utf16.IsSurrogate(rune(s[i])):
			return ""
		}
	}
	return string(utf16.Decode(s))
}
