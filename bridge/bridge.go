// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package bridge forwards joystick state to a virtual joystick driver over a
// WebSocket. Each state is sent as a JSON text message:
//
//	{"axes":[50.1,50.1,0,0,0,0],"buttons":[false,...],"pov":-1}
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/triolinker/vjoy/report"
)

// A Client is a connection to a bridge. Send and Ping may be called
// concurrently with each other, but not with themselves.
type Client struct {
	conn *websocket.Conn
}

// Dial connects to the bridge at the given ws:// or wss:// URL.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial bridge: %w", err)
	}
	return &Client{conn: conn}, nil
}

// Send writes a state message.
func (c *Client) Send(ctx context.Context, st report.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("send state: %w", err)
	}
	if err := writeMessage(ctx, c.conn, websocket.TextMessage, data); err != nil {
		return fmt.Errorf("send state: %w", err)
	}
	return nil
}

// Ping writes a ping message.
func (c *Client) Ping(ctx context.Context) error {
	return ping(ctx, c.conn, nil)
}

// Close sends a close message and closes the connection.
func (c *Client) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	// Best effort: the peer may already be gone.
	c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.conn.Close()
}

// writeMessage writes a message to the connection, giving up when the
// Context is Done.
func writeMessage(ctx context.Context, conn *websocket.Conn, messageType int, data []byte) error {
	ctxDone := ctx.Done()
	if ctxDone == nil {
		return conn.WriteMessage(messageType, data)
	}
	select {
	case <-ctxDone:
		return fmt.Errorf("write websocket message: %w", ctx.Err())
	default:
	}
	written := make(chan struct{})
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		select {
		case <-written:
		case <-ctxDone:
			// XXX This is racy because WriteMessage will unconditionally call
			// SetWriteDeadline.
			conn.UnderlyingConn().SetWriteDeadline(time.Now())
		}
	}()
	err := conn.WriteMessage(messageType, data)
	close(written)
	<-watchDone
	return err
}

// ping writes a ping message to the connection. It is safe to call
// concurrently with writeMessage on the same connection.
func ping(ctx context.Context, conn *websocket.Conn, data []byte) error {
	ctxDone := ctx.Done()
	if ctxDone == nil {
		return conn.WriteControl(websocket.PingMessage, data, time.Time{})
	}
	select {
	case <-ctxDone:
		return fmt.Errorf("ping websocket: %w", ctx.Err())
	default:
	}
	deadline, _ := ctx.Deadline()
	return conn.WriteControl(websocket.PingMessage, data, deadline)
}
