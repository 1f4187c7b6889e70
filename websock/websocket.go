// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

package websock

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// closeGrace bounds how long Close waits for the peer to play along in
// the graceful closing procedure before the transport connection gets
// torn down regardless.
const closeGrace = 10 * time.Second

// Reader is a client websocket for reading a binary stream, with the
// graceful closing procedure correctly handled on both sides: whoever
// starts the close, the other side acknowledges with its own close
// control message before the transport connection goes away.
type Reader struct {
	*websocket.Conn
	closing bool       // has the closing procedure started, by either side?
	m       sync.Mutex // protects closing.
	closed  chan bool  // closed (sic!) when the websocket is closed.
}

// NewReader returns a stream-reading websocket with graceful close
// handling, wrapping the given Gorilla client websocket.
func NewReader(ws *websocket.Conn) *Reader {
	return &Reader{
		Conn:   ws,
		closed: make(chan bool),
	}
}

// Read returns the next binary message from the websocket. It handles
// the closing procedure transparently: when the peer starts closing,
// the close gets acknowledged and Read returns the peer's
// websocket.CloseError; and likewise after we started the close
// ourselves via Close.
func (ws *Reader) Read() ([]byte, error) {
	msgType, data, err := ws.Conn.ReadMessage()
	if err == nil {
		if msgType != websocket.BinaryMessage {
			return nil, fmt.Errorf("unexpected websocket text message received")
		}
		return data, nil
	}
	cerr, ok := err.(*websocket.CloseError)
	if !ok {
		// A real transport or protocol error, nothing to handle
		// gracefully anymore.
		return nil, err
	}
	// The peer sent a close control message: either it acknowledges the
	// close we started, or it starts the close and we now have to
	// acknowledge. Both ways the connection is done for.
	ws.m.Lock()
	defer ws.m.Unlock()
	if !ws.closing {
		ws.closing = true
		log.Debug("peer closes websocket, acknowledging close")
		ws.Conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
	} else {
		log.Debug("peer acknowledged websocket close")
	}
	ws.Conn.Close()
	close(ws.closed)
	return nil, cerr
}

// Close starts the graceful closing procedure and waits for it to
// complete, that is, for the concurrent Read to see the peer's close
// acknowledgement. The wait is bounded: a peer not playing along gets
// its transport connection torn down after the grace period.
func (ws *Reader) Close() {
	ws.m.Lock()
	func() { // locked section
		defer ws.m.Unlock()
		// No second close control message when the procedure is
		// already underway, regardless of which side started it.
		if !ws.closing {
			ws.closing = true
			log.Debug("initiating graceful websocket close")
			ws.Conn.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
		}
	}()
	select {
	case <-time.After(closeGrace):
		log.Debug("graceful websocket close timed out; closing transport")
		ws.Conn.Close()
		close(ws.closed)
	case <-ws.closed:
	}
	log.Debug("websocket closed")
}
