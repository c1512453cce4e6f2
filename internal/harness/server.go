package harness

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"tyrtlekarma/internal/logging"
)

// Server is an http.Handler accepting websocket connections from
// SocketHarness clients and delivering their envelopes to a downstream
// Harness. Deliveries from concurrent connections are serialized.
type Server struct {
	ctx        context.Context
	downstream Harness
	upgrader   websocket.Upgrader
	mu         sync.Mutex
}

// NewServer creates a Server forwarding to downstream. ctx carries the logger
// used for connection errors.
func NewServer(ctx context.Context, downstream Harness) *Server {
	return &Server{
		ctx:        ctx,
		downstream: downstream,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Infof(s.ctx, "Harness upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Infof(s.ctx, "Harness connection from %s closed: %v", r.RemoteAddr, err)
			}
			return
		}
		if err := s.deliver(env); err != nil {
			logging.Infof(s.ctx, "Dropped %s envelope of run %s: %v", env.Type, env.Run, err)
		}
	}
}

func (s *Server) deliver(env Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return env.Deliver(s.downstream)
}
