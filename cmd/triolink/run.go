// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/triolinker/vjoy/bridge"
	"github.com/triolinker/vjoy/hid"
	"github.com/triolinker/vjoy/report"
	"github.com/triolinker/vjoy/retry"
	"github.com/triolinker/vjoy/settings"
	"zombiezen.com/go/log"
)

const maxRetryInterval = 30 * time.Second

type runOptions struct {
	global        *globalOptions
	device        string
	sysfs         string
	replay        string
	reportSize    int
	bridgeURL     string
	pingInterval  time.Duration
	retryInterval time.Duration
	out           io.Writer
}

func run(ctx context.Context, opts *runOptions) error {
	if copied, err := settings.Bootstrap(opts.global.defaultsPath, opts.global.configPath); err != nil {
		log.Warnf(ctx, "%v", err)
	} else if copied {
		log.Infof(ctx, "Created %s from %s", opts.global.configPath, opts.global.defaultsPath)
	}
	s, err := settings.Load(ctx, opts.global.configPath)
	if err != nil {
		return err
	}

	dev, bufSize, err := openSource(ctx, opts, s)
	if err != nil {
		return err
	}
	defer dev.Close()

	var client *bridge.Client
	if opts.bridgeURL != "" {
		err := retry.Do(ctx, "connecting to bridge", backoff(opts), func() error {
			var err error
			client, err = bridge.Dial(ctx, opts.bridgeURL)
			return err
		})
		if err != nil {
			return err
		}
		defer func() {
			// Leave the virtual joystick centered, even if ctx is canceled.
			closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
			defer cancel()
			if err := client.Send(closeCtx, neutralState(s)); err != nil {
				log.Warnf(ctx, "Reset joystick: %v", err)
			}
			client.Close()
		}()

		var stop context.CancelCauseFunc
		ctx, stop = context.WithCancelCause(ctx)
		pingDone := make(chan struct{})
		go func() {
			defer close(pingDone)
			keepalive(ctx, client, opts.pingInterval, stop)
		}()
		defer func() {
			stop(nil)
			<-pingDone
		}()
	}

	buf := make([]byte, bufSize)
	var prev report.State
	first := true
	for {
		n, err := dev.ReadReport(ctx, buf)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return stopCause(ctx)
			}
			return fmt.Errorf("read from %s: %w", dev.Name(), err)
		}
		st, err := report.Decode(buf[:n], s)
		if err != nil {
			log.Warnf(ctx, "Skipping report: %v", err)
			continue
		}
		if client != nil {
			if err := client.Send(ctx, st); err != nil {
				if ctx.Err() != nil {
					return stopCause(ctx)
				}
				return err
			}
		}
		if !s.HideWindow && (first || st != prev) {
			fmt.Fprintln(opts.out, formatState(st))
		}
		prev, first = st, false
	}
}

// keepalive pings the bridge every interval until ctx is Done, so that a
// dead bridge is noticed while the controller is idle. If a ping fails,
// keepalive calls stop with the error. A non-positive interval disables it.
func keepalive(ctx context.Context, client *bridge.Client, interval time.Duration, stop context.CancelCauseFunc) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
		case <-ctx.Done():
			return
		}
		pingCtx, cancel := context.WithTimeout(ctx, interval)
		err := client.Ping(pingCtx)
		cancel()
		if err != nil {
			if ctx.Err() == nil {
				stop(fmt.Errorf("bridge keepalive: %w", err))
			}
			return
		}
	}
}

// stopCause returns why the run loop's Context ended. Cancellation from the
// caller (like an interrupt) is a clean exit and returns nil.
func stopCause(ctx context.Context) error {
	if err := context.Cause(ctx); err != ctx.Err() {
		return err
	}
	return nil
}

// openSource opens the replay file or the controller and returns the size of
// the read buffer to use.
func openSource(ctx context.Context, opts *runOptions, s settings.Settings) (*hid.Device, int, error) {
	if opts.replay != "" {
		size := opts.reportSize
		if size <= 0 {
			size = report.MinLength(s)
		}
		dev, err := hid.Open(opts.replay)
		return dev, size, err
	}

	path := opts.device
	if path == "" {
		op := fmt.Sprintf("finding device %04x:%04x", s.VendorID, s.ProductID)
		err := retry.Do(ctx, op, backoff(opts), func() error {
			var err error
			path, err = hid.Find(opts.sysfs, s.VendorID, s.ProductID)
			return err
		})
		if err != nil {
			return nil, 0, err
		}
	}
	dev, err := hid.Open(path)
	if err != nil {
		return nil, 0, err
	}
	log.Infof(ctx, "Device found: vendor ID %04x product ID %04x at %s", s.VendorID, s.ProductID, path)
	// hidraw reports are at most 4 KiB, and each read returns one report.
	return dev, 4096, nil
}

func backoff(opts *runOptions) retry.BackoffStrategy {
	return &retry.Exponential{
		Initial: opts.retryInterval,
		Max:     maxRetryInterval,
	}
}

// neutralState is the state sent when the translator stops.
func neutralState(s settings.Settings) report.State {
	st := report.State{POV: report.POVCentered}
	st.Axes[report.AxisX] = s.DefaultX
	st.Axes[report.AxisY] = s.DefaultY
	return st
}

func formatState(st report.State) string {
	sb := new(strings.Builder)
	for i, name := range [report.NumAxes]string{"X", "Y", "Z", "RX", "RY", "RZ"} {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(sb, "%s=%.1f", name, st.Axes[i])
	}
	sb.WriteString(" buttons=")
	pressed := 0
	for i, b := range st.Buttons {
		if !b {
			continue
		}
		if pressed > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(sb, "%d", i+1)
		pressed++
	}
	if pressed == 0 {
		sb.WriteByte('-')
	}
	if st.POV == report.POVCentered {
		sb.WriteString(" pov=center")
	} else {
		fmt.Fprintf(sb, " pov=%g", st.POV)
	}
	return sb.String()
}
