// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

/*
Package stream implements the detached worker process behind remote
capture sessions: it dials a packetflix capture service via websocket,
stamps the session metadata into the packet stream's section header,
and writes the stream into the session directory as rotating,
self-contained capture files, the remote counterpart of what tcpdump
does all by itself for local sessions.

The worker is its own process (re-executed by the session starter) so
that its lifetime decouples from the CLI invocation, exactly like the
local sniffer's; the session lifecycle manager stops it with the very
same termination signal.
*/
package stream

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/siemens/caplog/api"
	"github.com/siemens/caplog/pcapng"
	"github.com/siemens/caplog/websock"
)

// Config tells the capture stream worker where to capture from and how
// to lay down the capture files.
type Config struct {
	// ServiceURL is the base URL of the packetflix capture service.
	ServiceURL string
	// Token is an optional bearer token for the capture service.
	Token string
	// Insecure skips TLS certificate verification.
	Insecure bool
	// Timeout bounds the websocket handshake.
	Timeout time.Duration
	// Dir is the session directory to capture into.
	Dir string
	// MetaPath is the session metadata descriptor to stamp into the
	// packet stream.
	MetaPath string
	// Interface is the network interface to capture from, on the
	// capture service's side.
	Interface string
	// Filter is an optional pcap filter expression.
	Filter string
	// NoPromiscuous keeps the interface out of promiscuous mode.
	NoPromiscuous bool
	// SnapLen optionally truncates captured packets.
	SnapLen int
	// RotateInterval is how often to start a new capture file.
	RotateInterval time.Duration
	// FilePattern names capture files, in strftime(3) notation.
	FilePattern string
	// PostRotate is the hook executable run on each completed capture
	// file; empty disables it.
	PostRotate string
}

// Run captures from the remote capture service into the session
// directory until told to stop by the usual termination signals. It
// announces "listening on ..." once the packet stream is established,
// which is what the session starter waits for.
func Run(cfg *Config) error {
	info, err := api.LoadSessionInfo(cfg.MetaPath)
	if err != nil {
		log.Warnf("capturing without session metadata: %s", err.Error())
		info = &api.SessionInfo{}
	}
	wsurl, err := captureURL(cfg)
	if err != nil {
		return err
	}
	headers := http.Header{}
	if cfg.Token != "" {
		headers.Set("Authorization", "Bearer "+cfg.Token)
	}
	if cfg.Filter != "" {
		headers.Set("Clustershark-Filter", cfg.Filter)
	}
	if cfg.NoPromiscuous {
		headers.Set("Clustershark-Chaste", "")
	}
	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: cfg.Timeout,
	}
	if cfg.Insecure && wsurl.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	log.Debugf("connecting to capture service %q", wsurl.String())
	conn, _, err := dialer.Dial(wsurl.String(), headers)
	if err != nil {
		return fmt.Errorf("cannot contact capture service: %w", err)
	}
	log.Infof("listening on %s, via capture service %s",
		cfg.Interface, wsurl.Host)

	rot := NewRotator(cfg.Dir, cfg.FilePattern, cfg.RotateInterval, cfg.PostRotate)
	editor := pcapng.NewStreamEditor(rot, info)
	ws := websock.NewReader(conn)

	// The session lifecycle manager stops us exactly like the local
	// sniffer, so a termination signal turns into a graceful websocket
	// close, which in turn ends the capture loop.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT)
	go func() {
		sig := <-sigs
		log.Debugf("received %s, closing capture stream", sig)
		ws.Close()
	}()

	for {
		data, err := ws.Read()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.Debug("capture stream closed")
				break
			}
			log.Warnf("capture stream ended: %s", err.Error())
			break
		}
		if _, err := editor.Write(data); err != nil {
			log.Errorf("cannot write capture file: %s", err.Error())
			ws.Close()
			break
		}
	}
	if err := rot.Close(); err != nil {
		return err
	}
	log.Infof("capture ended after %d capture file(s)", rot.Files())
	return nil
}

// captureURL derives the websocket capture endpoint from the service
// base URL, with the capture parameters as query parameters.
func captureURL(cfg *Config) (*url.URL, error) {
	u, err := url.Parse(cfg.ServiceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid capture service URL: %w", err)
	}
	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	case "http", "ws", "":
		u.Scheme = "ws"
	default:
		return nil, fmt.Errorf("unsupported capture service URL scheme %q", u.Scheme)
	}
	u.Path = path.Join(u.Path, "capture")
	q := url.Values{}
	q.Set("nif", cfg.Interface)
	if cfg.Filter != "" {
		q.Set("filter", cfg.Filter)
	}
	if cfg.NoPromiscuous {
		q.Set("chaste", "")
	}
	if cfg.SnapLen > 0 {
		q.Set("snaplen", strconv.Itoa(cfg.SnapLen))
	}
	u.RawQuery = q.Encode()
	return u, nil
}
