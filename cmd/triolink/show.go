// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/triolinker/vjoy/settings"
	"gopkg.in/yaml.v3"
)

func newShowCommand(g *globalOptions) *cobra.Command {
	format := "ini"
	c := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load(cmd.Context(), g.configPath)
			if err != nil {
				return err
			}
			return writeSettings(cmd.OutOrStdout(), s, format)
		},
	}
	c.Flags().StringVar(&format, "format", format, "output `format`: ini, yaml or toml")
	return c
}

func writeSettings(w io.Writer, s settings.Settings, format string) error {
	switch format {
	case "ini":
		return s.Document().Save(w)
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(s)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func newInitCommand(g *globalOptions) *cobra.Command {
	force := false
	c := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write the built-in defaults to PATH (default: --defaults)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.defaultsPath
			if len(args) == 1 {
				path = args[0]
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("init %s: file exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("init %s: %w", path, err)
				}
			}
			return settings.Default().Document().WriteFile(path)
		},
	}
	c.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return c
}
