// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package retry provides a function for retrying an operation.
package retry

import (
	"context"
	"time"

	"zombiezen.com/go/log"
)

// A BackoffStrategy can be called repeatedly to obtain (presumably) increasing
// durations to wait between retries.
type BackoffStrategy interface {
	Duration() time.Duration
}

// Do calls a function repeatedly with backoff until it returns a nil error.
// Do returns an error only if the passed-in function does not return nil
// before the Context is Done. The function is guaranteed to be called at
// least once.
//
// The operation should be a verb phrase like "opening the controller" for
// logging.
func Do(ctx context.Context, operation string, strategy BackoffStrategy, f func() error) error {
	var t *time.Timer
	for {
		err := f()
		if err == nil {
			return nil
		}
		d := strategy.Duration()
		if d > 0 {
			log.Warnf(ctx, "Error %s (will retry in %v): %v", operation, d, err)
			if t == nil {
				t = time.NewTimer(d)
				defer t.Stop()
			} else {
				t.Reset(d)
			}
			select {
			case <-t.C:
			case <-ctx.Done():
				return err
			}
		} else {
			log.Warnf(ctx, "Error %s (will retry): %v", operation, err)
			select {
			case <-ctx.Done():
				return err
			default:
			}
		}
	}
}

// Constant is a BackoffStrategy that always waits the same duration.
type Constant time.Duration

// Duration returns the constant duration.
func (c Constant) Duration() time.Duration {
	return time.Duration(c)
}

// Exponential is a BackoffStrategy that multiplies its wait by Factor after
// each retry, up to Max. The zero value of any field selects a default:
// 100ms initial wait, a factor of 2, and no maximum.
//
// An Exponential must not be copied after first use.
type Exponential struct {
	Initial time.Duration
	Max     time.Duration
	Factor  float64

	next time.Duration
}

// Duration returns the next wait.
func (e *Exponential) Duration() time.Duration {
	if e.next == 0 {
		e.next = e.Initial
		if e.next <= 0 {
			e.next = 100 * time.Millisecond
		}
	}
	d := e.next
	if e.Max > 0 && d > e.Max {
		d = e.Max
	}
	factor := e.Factor
	if factor <= 0 {
		factor = 2
	}
	if e.Max <= 0 || e.next < e.Max {
		e.next = time.Duration(float64(e.next) * factor)
	}
	return d
}
