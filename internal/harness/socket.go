package harness

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"tyrtlekarma/internal/domain"
)

// SocketHarness is a Harness that sends envelopes over a websocket connection
type SocketHarness struct {
	run  string
	mu   sync.Mutex
	conn *websocket.Conn
}

// DialSocket connects to the harness endpoint at url. Every envelope sent on
// the connection is tagged with runID.
func DialSocket(ctx context.Context, url, runID string) (*SocketHarness, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial harness socket %s: %w", url, err)
	}
	return &SocketHarness{run: runID, conn: conn}, nil
}

func (s *SocketHarness) Info(info domain.Info) error {
	return s.send(KindInfo, info)
}

func (s *SocketHarness) Result(result domain.Result) error {
	return s.send(KindResult, result)
}

func (s *SocketHarness) Complete(completion domain.Completion) error {
	return s.send(KindComplete, completion)
}

func (s *SocketHarness) send(kind Kind, payload interface{}) error {
	env, err := newEnvelope(kind, s.run, payload)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("send %s: %w", kind, err)
	}
	return nil
}

// Close sends a close frame and closes the connection
func (s *SocketHarness) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.conn.WriteMessage(websocket.CloseMessage, msg)
	return s.conn.Close()
}
