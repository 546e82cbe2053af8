package server

import (
	"context"
	"net/http"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"redisgate/config"
	"redisgate/redis"
)

// Server is the HTTP/WebSocket front of the gateway. It owns no Redis
// semantics of its own: every handler validates and decodes a request,
// calls one adapter method, and wraps the reply in the envelope.
type Server struct {
	store      *redis.Store
	config     *config.ServerConfig
	logger     *zap.SugaredLogger
	workers    *ants.Pool
	httpServer *http.Server
}

// NewServer creates a Server over an existing store.
func NewServer(store *redis.Store, cfg *config.ServerConfig) (*Server, error) {
	workers, err := ants.NewPool(cfg.WebSocket.WorkerPoolSize)
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:   store,
		config:  cfg,
		logger:  zap.S(),
		workers: workers,
	}

	s.httpServer = &http.Server{
		Addr:    cfg.Address(),
		Handler: s.Router(),
	}

	return s, nil
}

// Router builds the route table. Exposed separately so tests can drive
// handlers through httptest without binding a socket.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Admin
	mux.HandleFunc("GET /api/v1/redis/admin/ping", s.handlePing)
	mux.HandleFunc("GET /api/v1/redis/admin/info", s.handleInfo)
	mux.HandleFunc("GET /api/v1/redis/admin/dbsize", s.handleDBSize)
	mux.HandleFunc("GET /api/v1/redis/admin/time", s.handleTime)
	mux.HandleFunc("GET /api/v1/redis/admin/health", s.handleHealth)
	mux.HandleFunc("GET /api/v1/redis/admin/config", s.handleConfigGet)
	mux.HandleFunc("POST /api/v1/redis/admin/config", s.handleConfigSet)
	mux.HandleFunc("POST /api/v1/redis/admin/flushdb", s.handleFlushDB)
	mux.HandleFunc("POST /api/v1/redis/admin/flushall", s.handleFlushAll)

	// Strings
	mux.HandleFunc("GET /api/v1/redis/strings/{key}", s.handleStringGet)
	mux.HandleFunc("POST /api/v1/redis/strings/{key}", s.handleStringSet)
	mux.HandleFunc("DELETE /api/v1/redis/strings/{key}", s.handleStringDelete)
	mux.HandleFunc("GET /api/v1/redis/strings/{key}/ttl", s.handleStringTTL)
	mux.HandleFunc("POST /api/v1/redis/strings/{key}/expire", s.handleStringExpire)
	mux.HandleFunc("POST /api/v1/redis/strings/{key}/incr", s.handleStringIncr)
	mux.HandleFunc("POST /api/v1/redis/strings/{key}/incrby", s.handleStringIncrBy)
	mux.HandleFunc("POST /api/v1/redis/strings/{key}/setnx", s.handleStringSetNX)
	mux.HandleFunc("POST /api/v1/redis/strings/{key}/cas", s.handleStringCAS)
	mux.HandleFunc("POST /api/v1/redis/strings/{key}/getset", s.handleStringGetSet)
	mux.HandleFunc("POST /api/v1/redis/strings/batch/get", s.handleStringBatchGet)
	mux.HandleFunc("POST /api/v1/redis/strings/batch/set", s.handleStringBatchSet)
	mux.HandleFunc("POST /api/v1/redis/strings/batch/delete", s.handleStringBatchDelete)
	mux.HandleFunc("POST /api/v1/redis/strings/batch/incr", s.handleStringBatchIncr)

	// Hashes
	mux.HandleFunc("GET /api/v1/redis/hashes/{key}", s.handleHashGetAll)
	mux.HandleFunc("POST /api/v1/redis/hashes/{key}", s.handleHashSet)
	mux.HandleFunc("DELETE /api/v1/redis/hashes/{key}", s.handleHashDeleteKey)
	mux.HandleFunc("GET /api/v1/redis/hashes/{key}/len", s.handleHashLen)
	mux.HandleFunc("GET /api/v1/redis/hashes/{key}/exists", s.handleHashExists)
	mux.HandleFunc("GET /api/v1/redis/hashes/{key}/{field}", s.handleHashGet)
	mux.HandleFunc("DELETE /api/v1/redis/hashes/{key}/{field}", s.handleHashDeleteField)
	mux.HandleFunc("POST /api/v1/redis/hashes/batch/set", s.handleHashBatchSet)
	mux.HandleFunc("POST /api/v1/redis/hashes/batch/get", s.handleHashBatchGet)

	// Sets
	mux.HandleFunc("GET /api/v1/redis/sets/{key}/members", s.handleSetMembers)
	mux.HandleFunc("GET /api/v1/redis/sets/{key}/cardinality", s.handleSetCardinality)
	mux.HandleFunc("GET /api/v1/redis/sets/{key}/exists", s.handleSetIsMember)
	mux.HandleFunc("POST /api/v1/redis/sets/{key}", s.handleSetAdd)
	mux.HandleFunc("POST /api/v1/redis/sets/{key}/remove", s.handleSetRemove)
	mux.HandleFunc("POST /api/v1/redis/sets/{key}/pop", s.handleSetPop)
	mux.HandleFunc("POST /api/v1/redis/sets/move", s.handleSetMove)
	mux.HandleFunc("POST /api/v1/redis/sets/union", s.handleSetUnion)
	mux.HandleFunc("POST /api/v1/redis/sets/inter", s.handleSetInter)
	mux.HandleFunc("POST /api/v1/redis/sets/diff", s.handleSetDiff)

	// Keys
	mux.HandleFunc("GET /api/v1/redis/keys", s.handleKeysPattern)
	mux.HandleFunc("GET /api/v1/redis/keys/{key}/ttl", s.handleKeyTTL)
	mux.HandleFunc("POST /api/v1/redis/keys/delete", s.handleKeysDelete)
	mux.HandleFunc("POST /api/v1/redis/keys/exists", s.handleKeysExists)

	// Scripts
	mux.HandleFunc("POST /api/v1/scripts/eval", s.handleScriptEval)
	mux.HandleFunc("POST /api/v1/scripts/ratelimit", s.handleRateLimit)
	mux.HandleFunc("POST /api/v1/scripts/multicounter", s.handleMultiCounter)
	mux.HandleFunc("POST /api/v1/scripts/multiset", s.handleMultiSet)

	// WebSocket
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	return mux
}

// Start binds the listener and serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Infow("server listening", "addr", s.config.Address())
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests, stops the worker pool, and closes
// the store.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.workers.Release()
	s.store.Close()
	return err
}
