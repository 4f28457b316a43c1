// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "fmt"

// A Document is a collection of groups keyed by section name. The group for
// the default section, named by the empty string, always exists in a
// Document returned by New, Parse, or Open.
//
// A Document is not safe for concurrent use.
type Document struct {
	groups map[string]*Group
	names  []string // named sections in the order they were created
}

// New returns a Document containing only an empty default group.
func New() *Document {
	d := new(Document)
	d.reset()
	return d
}

func (d *Document) reset() {
	d.groups = map[string]*Group{"": newGroup()}
	d.names = nil
}

// Clear removes every group, including the default group. A later Load
// recreates the default group.
func (d *Document) Clear() {
	d.groups = nil
	d.names = nil
}

// Sections returns the names of the document's groups. The default section
// comes first if present, followed by named sections in creation order.
func (d *Document) Sections() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.names)+1)
	if _, ok := d.groups[""]; ok {
		names = append(names, "")
	}
	return append(names, d.names...)
}

// Group returns the group for the named section or nil if the section does
// not exist.
func (d *Document) Group(section string) *Group {
	if d == nil {
		return nil
	}
	return d.groups[section]
}

// CreateGroup returns the group for the named section, creating an empty one
// if necessary.
func (d *Document) CreateGroup(section string) *Group {
	if g := d.groups[section]; g != nil {
		return g
	}
	if d.groups == nil {
		d.groups = make(map[string]*Group)
	}
	g := newGroup()
	d.groups[section] = g
	if section != "" {
		d.names = append(d.names, section)
	}
	return g
}

// RemoveGroup removes the named section and reports whether it existed.
func (d *Document) RemoveGroup(section string) bool {
	if d.Group(section) == nil {
		return false
	}
	delete(d.groups, section)
	for i, name := range d.names {
		if name == section {
			d.names = append(d.names[:i], d.names[i+1:]...)
			break
		}
	}
	return true
}

// HasGroup reports whether the named section exists.
func (d *Document) HasGroup(section string) bool {
	return d.Group(section) != nil
}

// HasKey reports whether the key is present in the named section.
func (d *Document) HasKey(section, key string) bool {
	return d.Group(section).HasKey(key)
}

// HasNonEmpty reports whether the key is present in the named section with a
// non-empty value.
func (d *Document) HasNonEmpty(section, key string) bool {
	return d.Group(section).HasNonEmpty(key)
}

// RemoveKey removes the key from the named section and reports whether it
// was present.
func (d *Document) RemoveKey(section, key string) bool {
	g := d.Group(section)
	if g == nil {
		return false
	}
	return g.RemoveKey(key)
}

// String returns the raw value of the key in the named section or def if
// either is absent.
func (d *Document) String(section, key, def string) string {
	return d.Group(section).String(key, def)
}

// WideString returns the UTF-16 value of the key in the named section or def
// if either is absent. See Group.WideString.
func (d *Document) WideString(section, key string, def []uint16) []uint16 {
	return d.Group(section).WideString(key, def)
}

// Bool returns the boolean value of the key in the named section or def if
// either is absent. See Group.Bool.
func (d *Document) Bool(section, key string, def bool) bool {
	return d.Group(section).Bool(key, def)
}

// Int returns the base 10 integer value of the key in the named section or
// def if either is absent. A present value that does not parse is an error.
func (d *Document) Int(section, key string, def int) (int, error) {
	return d.IntRadix(section, key, 10, def)
}

// IntRadix is like Int but parses the value in the given base.
// See Group.IntRadix.
func (d *Document) IntRadix(section, key string, radix int, def int) (int, error) {
	n, err := d.Group(section).IntRadix(key, radix, def)
	if err != nil {
		return n, fmt.Errorf("ini: section %q: %w", section, err)
	}
	return n, nil
}

// Float returns the floating-point value of the key in the named section or
// def if either is absent. A present value that does not parse is an error.
func (d *Document) Float(section, key string, def float64) (float64, error) {
	f, err := d.Group(section).Float(key, def)
	if err != nil {
		return f, fmt.Errorf("ini: section %q: %w", section, err)
	}
	return f, nil
}

// SetString sets the key's raw value in the named section, creating the
// section if necessary.
func (d *Document) SetString(section, key, value string) {
	d.CreateGroup(section).SetString(key, value)
}

// SetWideString stores a UTF-16 value in the named section.
// See Group.SetWideString.
func (d *Document) SetWideString(section, key string, value []uint16) {
	d.CreateGroup(section).SetWideString(key, value)
}

// SetBool stores a boolean in the named section.
func (d *Document) SetBool(section, key string, value bool) {
	d.CreateGroup(section).SetBool(key, value)
}

// SetInt stores a base 10 integer in the named section.
func (d *Document) SetInt(section, key string, value int) {
	d.CreateGroup(section).SetInt(key, value)
}

// SetIntRadix stores an integer in the given base in the named section.
func (d *Document) SetIntRadix(section, key string, radix int, value int) {
	d.CreateGroup(section).SetIntRadix(key, radix, value)
}

// SetFloat stores a floating-point number in the named section.
func (d *Document) SetFloat(section, key string, value float64) {
	d.CreateGroup(section).SetFloat(key, value)
}
