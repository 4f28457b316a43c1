// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// triolink translates the input reports of a USB controller adapter into
// virtual joystick state.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/triolinker/vjoy/envvar"
	"github.com/triolinker/vjoy/hid"
	"zombiezen.com/go/log"
)

type globalOptions struct {
	configPath   string
	defaultsPath string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	cancel()
	if err != nil {
		log.Errorf(context.Background(), "%v", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	g := new(globalOptions)
	root := &cobra.Command{
		Use:           "triolink",
		Short:         "Translate controller input reports into virtual joystick state",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", envvar.Get("TRIOLINK_CONFIG", "config.ini"), "`path` to the configuration file (env TRIOLINK_CONFIG)")
	root.PersistentFlags().StringVar(&g.defaultsPath, "defaults", envvar.Get("TRIOLINK_DEFAULTS", "default.ini"), "`path` to the defaults copied to --config when it is missing (env TRIOLINK_DEFAULTS)")
	root.AddCommand(
		newRunCommand(g),
		newShowCommand(g),
		newInitCommand(g),
	)
	return root
}

func newRunCommand(g *globalOptions) *cobra.Command {
	opts := &runOptions{global: g}
	c := &cobra.Command{
		Use:   "run",
		Short: "Read the controller and forward its state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.out = cmd.OutOrStdout()
			return run(cmd.Context(), opts)
		},
	}
	c.Flags().StringVar(&opts.device, "device", envvar.Get("TRIOLINK_DEVICE", ""), "hidraw `path` to read instead of searching by vendor and product ID (env TRIOLINK_DEVICE)")
	c.Flags().StringVar(&opts.sysfs, "sysfs", hid.DefaultSysfs, "sysfs mount `point` used to find the device")
	c.Flags().StringVar(&opts.replay, "replay", "", "decode reports from a capture `file` instead of a device")
	c.Flags().IntVar(&opts.reportSize, "report-size", 0, "size of each report in a --replay file (default: smallest size the configured offsets allow)")
	c.Flags().StringVar(&opts.bridgeURL, "bridge", envvar.Get("TRIOLINK_BRIDGE", ""), "WebSocket `URL` of the virtual joystick bridge (env TRIOLINK_BRIDGE)")
	c.Flags().DurationVar(&opts.pingInterval, "ping-interval", 15*time.Second, "interval between keepalive pings to the bridge (0 disables)")
	c.Flags().DurationVar(&opts.retryInterval, "retry-interval", envvar.Duration("TRIOLINK_RETRY_INTERVAL", 500*time.Millisecond), "initial wait between attempts to find the device (env TRIOLINK_RETRY_INTERVAL)")
	return c
}
