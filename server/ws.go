package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"redisgate/redis"
)

type (
	// wsRequest is one inbound frame: an optional correlation id and a
	// command object holding exactly one verb with its parameters.
	wsRequest struct {
		ID      json.RawMessage            `json:"id,omitempty"`
		Command map[string]json.RawMessage `json:"command"`
	}

	// wsResponse echoes the request's correlation id so the client can
	// match replies to in-flight commands.
	wsResponse struct {
		ID      json.RawMessage `json:"id,omitempty"`
		Success bool            `json:"success"`
		Data    interface{}     `json:"data,omitempty"`
		Error   string          `json:"error,omitempty"`
	}

	// wsSession serializes writes to one socket. Commands complete on
	// worker goroutines in any order; the mutex keeps frames intact.
	wsSession struct {
		id   string
		conn *websocket.Conn
		mu   sync.Mutex
	}
)

func (s *wsSession) send(response wsResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn.WriteJSON(response)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  s.config.WebSocket.ReadBufferSize,
		WriteBufferSize: s.config.WebSocket.WriteBufferSize,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Errorw("websocket upgrade failed", "error", err)
		return
	}

	session := &wsSession{
		id:   uuid.NewString(),
		conn: conn,
	}

	s.logger.Infow("websocket session opened", "session", session.id)
	defer func() {
		conn.Close()
		s.logger.Infow("websocket session closed", "session", session.id)
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warnw("websocket read failed", "session", session.id, "error", err)
			}

			return
		}

		s.dispatchCommand(session, message)
	}
}

// dispatchCommand parses one frame and runs its command on the worker
// pool. Parse and shape errors are answered inline; only well-formed
// commands consume a worker slot.
func (s *Server) dispatchCommand(session *wsSession, message []byte) {
	var request wsRequest
	if err := json.Unmarshal(message, &request); err != nil {
		s.sendError(session, nil, redis.NewError(redis.KindValidation, "malformed frame: %s", err))
		return
	}

	if len(request.Command) != 1 {
		s.sendError(session, request.ID, redis.NewError(redis.KindValidation, "expected exactly one command verb, got %d", len(request.Command)))
		return
	}

	var (
		verb   string
		params json.RawMessage
	)

	for v, p := range request.Command {
		verb, params = v, p
	}

	command, ok := wsCommands[verb]
	if !ok {
		s.sendError(session, request.ID, redis.NewError(redis.KindValidation, "unknown command %q", verb))
		return
	}

	err := s.workers.Submit(func() {
		data, err := command(s.store, params)
		if err != nil {
			s.sendError(session, request.ID, err)
			return
		}

		if err := session.send(wsResponse{ID: request.ID, Success: true, Data: data}); err != nil {
			s.logger.Warnw("websocket write failed", "session", session.id, "error", err)
		}
	})

	if err != nil {
		s.sendError(session, request.ID, redis.NewError(redis.KindTimeout, "command worker pool exhausted"))
	}
}

func (s *Server) sendError(session *wsSession, id json.RawMessage, err error) {
	if err := session.send(wsResponse{ID: id, Success: false, Error: err.Error()}); err != nil {
		s.logger.Warnw("websocket write failed", "session", session.id, "error", err)
	}
}
