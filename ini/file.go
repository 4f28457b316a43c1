// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"os"
)

// Open parses the INI file at the given path. The returned Document is never
// nil: a missing file yields a Document with only the empty default group and
// a nil error. Any other failure to open or read the file is returned along
// with whatever was parsed, so callers can fall back to defaults.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return New(), fmt.Errorf("open ini file: %w", err)
	}
	defer f.Close() // Close errors irrelevant.
	d, err := Parse(f)
	if err != nil {
		return d, fmt.Errorf("open ini file %s: %w", path, err)
	}
	return d, nil
}

// WriteFile saves the document to the file at the given path, creating or
// truncating it.
func (d *Document) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write ini file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("write ini file: %w", closeErr)
		}
	}()
	if err := d.Save(f); err != nil {
		return fmt.Errorf("write ini file %s: %w", path, err)
	}
	return nil
}
