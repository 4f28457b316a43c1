// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package report decodes controller input reports into virtual joystick
// state.
package report

import (
	"fmt"

	"github.com/triolinker/vjoy/settings"
)

// Axis indices into State.Axes.
const (
	AxisX = iota
	AxisY
	AxisZ
	AxisRX
	AxisRY
	AxisRZ
	NumAxes
)

// NumButtons is the number of buttons in a State: eight from each button
// byte.
const NumButtons = 16

// POVCentered is the POV value reported when the hat is released or in an
// unrecognized position.
const POVCentered = -1

// State is the joystick state derived from a single input report.
type State struct {
	// Axes are positions in percent, from 0 to 100.
	Axes [NumAxes]float64 `json:"axes"`
	// Buttons[i] is true if button i+1 is pressed.
	Buttons [NumButtons]bool `json:"buttons"`
	// POV is the hat direction in degrees clockwise from north, or
	// POVCentered.
	POV float64 `json:"pov"`
}

// Decode converts an input report to joystick state using the offsets and
// masks in s. It returns an error if any configured offset lies outside the
// report.
func Decode(buf []byte, s settings.Settings) (State, error) {
	if err := checkOffsets(len(buf), s.Offsets); err != nil {
		return State{}, err
	}
	o := s.Offsets
	hat := buf[o.DPad]

	var st State
	for i, off := range [NumAxes]int{o.X, o.Y, o.Z, o.RX, o.RY, o.RZ} {
		st.Axes[i] = axisPercent(buf[off])
	}
	if s.UnlinkDPad && hat != s.Hat.Center {
		st.Axes[AxisX] = s.DefaultX
		st.Axes[AxisY] = s.DefaultY
	}

	for i, off := range [...]int{o.Buttons1, o.Buttons2} {
		b := buf[off]
		for bit := 0; bit < 8; bit++ {
			mask := uint8(1) << bit
			if off == o.DPad && isHatBit(mask, s) {
				continue
			}
			st.Buttons[i*8+bit] = b&mask != 0
		}
	}

	st.POV = POVCentered
	if !s.DPadAsButtons {
		st.POV = pov(hat, s.Hat)
	}
	return st, nil
}

// MinLength returns the shortest report that Decode accepts for s.
func MinLength(s settings.Settings) int {
	last := 0
	for _, off := range offsets(s.Offsets) {
		if off > last {
			last = off
		}
	}
	return last + 1
}

func offsets(o settings.Offsets) []int {
	return []int{o.X, o.Y, o.Z, o.RX, o.RY, o.RZ, o.Buttons1, o.Buttons2, o.DPad}
}

func checkOffsets(n int, o settings.Offsets) error {
	for _, off := range offsets(o) {
		if off < 0 || off >= n {
			return fmt.Errorf("decode report: offset %d outside %d-byte report", off, n)
		}
	}
	return nil
}

func axisPercent(b byte) float64 {
	return 100 * float64(b) / 255
}

// isHatBit reports whether a bit of the button byte shared with the hat
// belongs to the hat rather than a button.
func isHatBit(bit uint8, s settings.Settings) bool {
	if s.DPadAsButtons {
		return false
	}
	h := s.Hat
	if h.Center&bit != 0 {
		return true
	}
	for _, m := range directions(h) {
		if bit == m.mask {
			return true
		}
	}
	return bit == h.Center
}

type direction struct {
	mask    uint8
	degrees float64
}

func directions(h settings.HatMasks) [8]direction {
	return [8]direction{
		{h.North, 0},
		{h.NorthEast, 45},
		{h.East, 90},
		{h.SouthEast, 135},
		{h.South, 180},
		{h.SouthWest, 225},
		{h.West, 270},
		{h.NorthWest, 315},
	}
}

func pov(hat uint8, h settings.HatMasks) float64 {
	if hat == h.Center {
		return POVCentered
	}
	for _, d := range directions(h) {
		if hat == d.mask {
			return d.degrees
		}
	}
	return POVCentered
}
