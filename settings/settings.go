// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package settings maps the startup configuration file onto the values the
// device loop consumes.
package settings

import (
	"errors"
	"fmt"

	"github.com/triolinker/vjoy/ini"
)

// Section names in the configuration file.
const (
	General = "General"
	Buffers = "Buffers"
	DPad    = "DPad"
)

// Settings is the startup configuration of the translator. It is populated
// once and passed by value to the code that uses it.
type Settings struct {
	// HideWindow suppresses the per-report status output.
	HideWindow bool `yaml:"hide_window" toml:"hide_window"`
	// UnlinkDPad pins the X/Y axes to DefaultX/DefaultY while the hat is
	// pressed.
	UnlinkDPad bool `yaml:"unlink_dpad" toml:"unlink_dpad"`
	// DPadAsButtons reports the hat byte as plain buttons and never sets
	// the point-of-view hat.
	DPadAsButtons bool `yaml:"dpad_as_buttons" toml:"dpad_as_buttons"`
	// DefaultX and DefaultY are axis positions in percent.
	DefaultX float64 `yaml:"default_x" toml:"default_x"`
	DefaultY float64 `yaml:"default_y" toml:"default_y"`

	VendorID  uint16 `yaml:"vendor_id" toml:"vendor_id"`
	ProductID uint16 `yaml:"product_id" toml:"product_id"`

	Offsets Offsets  `yaml:"offsets" toml:"offsets"`
	Hat     HatMasks `yaml:"hat" toml:"hat"`
}

// Offsets are byte positions within an input report.
type Offsets struct {
	X        int `yaml:"x" toml:"x"`
	Y        int `yaml:"y" toml:"y"`
	Z        int `yaml:"z" toml:"z"`
	RX       int `yaml:"rx" toml:"rx"`
	RY       int `yaml:"ry" toml:"ry"`
	RZ       int `yaml:"rz" toml:"rz"`
	Buttons1 int `yaml:"buttons1" toml:"buttons1"`
	Buttons2 int `yaml:"buttons2" toml:"buttons2"`
	DPad     int `yaml:"dpad" toml:"dpad"`
}

// HatMasks are the values of the hat byte for each direction.
type HatMasks struct {
	North     uint8 `yaml:"north" toml:"north"`
	NorthEast uint8 `yaml:"north_east" toml:"north_east"`
	East      uint8 `yaml:"east" toml:"east"`
	SouthEast uint8 `yaml:"south_east" toml:"south_east"`
	South     uint8 `yaml:"south" toml:"south"`
	SouthWest uint8 `yaml:"south_west" toml:"south_west"`
	West      uint8 `yaml:"west" toml:"west"`
	NorthWest uint8 `yaml:"north_west" toml:"north_west"`
	Center    uint8 `yaml:"center" toml:"center"`
}

// Default returns the settings used for keys absent from the configuration.
func Default() Settings {
	return Settings{
		UnlinkDPad: true,
		DefaultX:   50.1,
		DefaultY:   50.1,
		VendorID:   0x7701,
		ProductID:  0x0003,
		Offsets: Offsets{
			X:        3,
			Y:        4,
			Buttons1: 1,
			Buttons2: 2,
			DPad:     2,
		},
		Hat: HatMasks{
			North:     0x10,
			NorthEast: 0x30,
			East:      0x20,
			SouthEast: 0x60,
			South:     0x40,
			SouthWest: 0xc0,
			West:      0x80,
			NorthWest: 0x90,
			Center:    0,
		},
	}
}

// fields lists every setting with its location in the configuration file.
func (s *Settings) fields() []field {
	return []field{
		{General, "HideWindow", boolField{&s.HideWindow}},
		{General, "UnlinkDPad", boolField{&s.UnlinkDPad}},
		{General, "DefaultX", floatField{&s.DefaultX}},
		{General, "DefaultY", floatField{&s.DefaultY}},
		{General, "DPadAsButtons", boolField{&s.DPadAsButtons}},
		{General, "VendorID", idField{&s.VendorID}},
		{General, "ProductID", idField{&s.ProductID}},

		{Buffers, "X", offsetField{&s.Offsets.X}},
		{Buffers, "Y", offsetField{&s.Offsets.Y}},
		{Buffers, "Z", offsetField{&s.Offsets.Z}},
		{Buffers, "RX", offsetField{&s.Offsets.RX}},
		{Buffers, "RY", offsetField{&s.Offsets.RY}},
		{Buffers, "RZ", offsetField{&s.Offsets.RZ}},
		{Buffers, "Buttons1", offsetField{&s.Offsets.Buttons1}},
		{Buffers, "Buttons2", offsetField{&s.Offsets.Buttons2}},
		{Buffers, "DPad", offsetField{&s.Offsets.DPad}},

		{DPad, "DPad North", maskField{&s.Hat.North}},
		{DPad, "DPad South", maskField{&s.Hat.South}},
		{DPad, "DPad West", maskField{&s.Hat.West}},
		{DPad, "DPad East", maskField{&s.Hat.East}},
		{DPad, "DPad NorthWest", maskField{&s.Hat.NorthWest}},
		{DPad, "DPad NorthEast", maskField{&s.Hat.NorthEast}},
		{DPad, "DPad SouthWest", maskField{&s.Hat.SouthWest}},
		{DPad, "DPad SouthEast", maskField{&s.Hat.SouthEast}},
		{DPad, "DPad Center", maskField{&s.Hat.Center}},
	}
}

// FromDocument reads settings from a parsed configuration file. Keys that
// are absent keep their Default value. Every key that is present but
// malformed or out of range is reported in the returned error, in which case
// the returned Settings hold defaults for those keys.
func FromDocument(doc *ini.Document) (Settings, error) {
	s := Default()
	var errs []error
	for _, f := range s.fields() {
		g := doc.Group(f.section)
		if !g.HasKey(f.key) {
			continue
		}
		if err := f.value.read(g, f.key); err != nil {
			errs = append(errs, fmt.Errorf("settings: section %q: %w", f.section, err))
		}
	}
	return s, errors.Join(errs...)
}

// Document renders the settings as a configuration file that FromDocument
// reads back unchanged.
func (s Settings) Document() *ini.Document {
	doc := ini.New()
	for _, f := range s.fields() {
		f.value.write(doc.CreateGroup(f.section), f.key)
	}
	return doc
}
