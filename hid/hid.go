// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package hid locates and reads Linux hidraw devices.
package hid

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/triolinker/vjoy/ini"
)

// DefaultSysfs is the usual sysfs mount point.
const DefaultSysfs = "/sys"

// ErrNotFound is returned by Find when no device matches.
var ErrNotFound = errors.New("hid: device not found")

// Find returns the device node (like /dev/hidraw0) of the first hidraw
// device under the given sysfs root whose vendor and product IDs match.
func Find(sysfs string, vendor, product uint16) (string, error) {
	class := filepath.Join(sysfs, "class", "hidraw")
	entries, err := os.ReadDir(class)
	if os.IsNotExist(err) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find hid device: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, ent := range entries {
		names = append(names, ent.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		v, p, err := readIDs(filepath.Join(class, name, "device", "uevent"))
		if err != nil {
			// Devices come and go; skip what cannot be read.
			continue
		}
		if v == vendor && p == product {
			return filepath.Join("/dev", name), nil
		}
	}
	return "", fmt.Errorf("find hid device %04x:%04x: %w", vendor, product, ErrNotFound)
}

// readIDs parses the HID_ID line of a uevent file, which has the form
// HID_ID=<bus>:<vendor>:<product> in hex.
func readIDs(path string) (vendor, product uint16, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	uevent, err := ini.Parse(f)
	if err != nil {
		return 0, 0, err
	}
	id := uevent.String("", "HID_ID", "")
	parts := strings.Split(id, ":")
	if len(parts) != 3 {
		return 0, 0, fmt.Errorf("%s: malformed HID_ID %q", path, id)
	}
	v, err := strconv.ParseUint(parts[1], 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", path, err)
	}
	p, err := strconv.ParseUint(parts[2], 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", path, err)
	}
	if v > 0xffff || p > 0xffff {
		return 0, 0, fmt.Errorf("%s: HID_ID %q out of range", path, id)
	}
	return uint16(v), uint16(p), nil
}

// A Device is an open report source.
type Device struct {
	f *os.File
}

// Open opens a hidraw device node, or any file of concatenated reports, for
// reading.
func Open(path string) (*Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hid device: %w", err)
	}
	return &Device{f: f}, nil
}

// Name returns the path the device was opened with.
func (d *Device) Name() string {
	return d.f.Name()
}

// ReadReport reads the next report into buf and returns its length. A hidraw
// device returns one report per read. If the Context is Done while waiting,
// ReadReport returns an error wrapping the Context's error.
func (d *Device) ReadReport(ctx context.Context, buf []byte) (int, error) {
	ctxDone := ctx.Done()
	if ctxDone == nil {
		return d.f.Read(buf)
	}
	select {
	case <-ctxDone:
		return 0, fmt.Errorf("read hid report: %w", ctx.Err())
	default:
	}
	read := make(chan struct{})
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		select {
		case <-read:
		case <-ctxDone:
			// Regular files do not support deadlines, but do not block
			// either.
			d.f.SetReadDeadline(time.Now())
		}
	}()
	n, err := d.f.Read(buf)
	close(read)
	<-watchDone
	if err != nil && ctx.Err() != nil {
		return n, fmt.Errorf("read hid report: %w", ctx.Err())
	}
	return n, err
}

// Close closes the device.
func (d *Device) Close() error {
	return d.f.Close()
}
