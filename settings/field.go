// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package settings

import (
	"fmt"

	"github.com/triolinker/vjoy/ini"
)

type field struct {
	section string
	key     string
	value   fieldValue
}

type fieldValue interface {
	read(g *ini.Group, key string) error
	write(g *ini.Group, key string)
}

type boolField struct{ p *bool }

func (f boolField) read(g *ini.Group, key string) error {
	*f.p = g.Bool(key, *f.p)
	return nil
}

func (f boolField) write(g *ini.Group, key string) { g.SetBool(key, *f.p) }

type floatField struct{ p *float64 }

func (f floatField) read(g *ini.Group, key string) error {
	v, err := g.Float(key, *f.p)
	if err != nil {
		return err
	}
	*f.p = v
	return nil
}

func (f floatField) write(g *ini.Group, key string) { g.SetFloat(key, *f.p) }

// idField is a USB vendor or product ID, written as four hex digits.
type idField struct{ p *uint16 }

func (f idField) read(g *ini.Group, key string) error {
	v, err := g.IntRadix(key, 16, int(*f.p))
	if err != nil {
		return err
	}
	if v < 0 || v > 0xffff {
		return fmt.Errorf("key %q: %#x out of range for a 16-bit ID", key, v)
	}
	*f.p = uint16(v)
	return nil
}

func (f idField) write(g *ini.Group, key string) {
	g.SetString(key, fmt.Sprintf("%04x", *f.p))
}

// offsetField is a decimal byte offset into the input report.
type offsetField struct{ p *int }

func (f offsetField) read(g *ini.Group, key string) error {
	v, err := g.Int(key, *f.p)
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("key %q: negative offset %d", key, v)
	}
	*f.p = v
	return nil
}

func (f offsetField) write(g *ini.Group, key string) { g.SetInt(key, *f.p) }

// maskField is a hat byte value, written in hex with a 0x prefix.
type maskField struct{ p *uint8 }

func (f maskField) read(g *ini.Group, key string) error {
	v, err := g.IntRadix(key, 16, int(*f.p))
	if err != nil {
		return err
	}
	if v < 0 || v > 0xff {
		return fmt.Errorf("key %q: %#x out of range for a byte mask", key, v)
	}
	*f.p = uint8(v)
	return nil
}

func (f maskField) write(g *ini.Group, key string) {
	g.SetString(key, fmt.Sprintf("%#02x", *f.p))
}
