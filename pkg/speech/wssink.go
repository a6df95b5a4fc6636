package speech

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/waypath/go-waypath/internal/log"
)

const (
	wsHandshakeTimeout = 10 * time.Second
	wsWriteTimeout     = 5 * time.Second
	wsSendBuffer       = 32
)

// ErrClosed is returned by Speak after the sink has been closed.
var ErrClosed = errors.New("speech sink closed")

// wsMessage is the wire format the speech engine accepts.
type wsMessage struct {
	Text  string `json:"text"`
	Flush bool   `json:"flush,omitempty"`
}

// WSSink streams utterances to a text-to-speech engine over a websocket.
// Speak enqueues without blocking; a background writer owns the
// connection. An interrupting utterance is sent with the flush flag so the
// engine drops whatever it is currently playing.
type WSSink struct {
	url    string
	conn   *websocket.Conn
	sendCh chan wsMessage

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewWSSink dials the speech engine and starts the write loop.
func NewWSSink(url string) (*WSSink, error) {
	dialer := websocket.Dialer{HandshakeTimeout: wsHandshakeTimeout}
	conn, resp, err := dialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("speech engine dial failed (status %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("speech engine dial failed: %w", err)
	}

	s := &WSSink{
		url:    url,
		conn:   conn,
		sendCh: make(chan wsMessage, wsSendBuffer),
		done:   make(chan struct{}),
	}
	go s.writeLoop()

	log.Info("speech engine connected", "url", url)
	return s, nil
}

// Speak enqueues the utterance. It never blocks: if the send buffer is
// full the oldest pending message was already stale, so this one is
// dropped with a warning rather than stalling the pipeline.
func (s *WSSink) Speak(text string, interrupt bool) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.mu.Unlock()

	select {
	case s.sendCh <- wsMessage{Text: text, Flush: interrupt}:
		return nil
	default:
		log.Warn("speech send buffer full, dropping utterance", "text", text)
		return nil
	}
}

// Close shuts down the write loop and the connection.
func (s *WSSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	close(s.done)
	return s.conn.Close()
}

func (s *WSSink) writeLoop() {
	for {
		select {
		case <-s.done:
			return
		case msg := <-s.sendCh:
			payload, err := json.Marshal(msg)
			if err != nil {
				log.Error("encode speech message", "error", err)
				continue
			}
			s.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.Error("write speech message", "error", err)
				return
			}
		}
	}
}
