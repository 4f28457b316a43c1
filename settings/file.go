// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/triolinker/vjoy/ini"
	"zombiezen.com/go/log"
)

// Load reads the configuration file at path. A missing or unreadable file is
// not an error: Load logs a warning for the latter and returns defaults for
// whatever could not be read. Malformed values are returned as an error.
func Load(ctx context.Context, path string) (Settings, error) {
	doc, err := ini.Open(path)
	if err != nil {
		log.Warnf(ctx, "Using default settings: %v", err)
	}
	return FromDocument(doc)
}

// Bootstrap copies the defaults file to configPath if nothing exists there
// yet. It reports whether a copy was made. A missing defaults file is not an
// error.
func Bootstrap(defaultsPath, configPath string) (copied bool, err error) {
	if _, err := os.Stat(configPath); err == nil || !errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	src, err := os.Open(defaultsPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("bootstrap settings: %w", err)
	}
	defer src.Close()
	dst, err := os.OpenFile(configPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666)
	if errors.Is(err, fs.ErrExist) {
		// Created between the Stat and here. Leave it alone.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("bootstrap settings: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(configPath)
		return false, fmt.Errorf("bootstrap settings: copy %s to %s: %w", defaultsPath, configPath, err)
	}
	if err := dst.Close(); err != nil {
		return false, fmt.Errorf("bootstrap settings: %w", err)
	}
	return true, nil
}
