// Package stream owns the market-data streaming connection: dialing,
// frame decoding, and the receive loop that feeds the quote cache.
package stream

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

const handshakeTimeout = 10 * time.Second

// Conn is the minimal surface of a streaming connection the engine needs.
// Production uses a gorilla/websocket connection; tests use fakes.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// Dialer opens a streaming connection to the given URL.
type Dialer func(ctx context.Context, url string) (Conn, error)

// DialWebsocket is the production dialer.
func DialWebsocket(ctx context.Context, url string) (Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}
	return conn, nil
}
