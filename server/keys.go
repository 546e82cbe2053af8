package server

import (
	"net/http"

	"redisgate/redis"
)

func (s *Server) handleKeysPattern(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get("pattern")
	if pattern == "" {
		writeError(w, redis.NewError(redis.KindValidation, "missing pattern parameter"))
		return
	}

	keys, err := s.store.Keys.Keys(pattern)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, keys)
}

func (s *Server) handleKeyTTL(w http.ResponseWriter, r *http.Request) {
	ttl, err := s.store.Keys.TTL(r.PathValue("key"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, ttl)
}

func (s *Server) handleKeysDelete(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Keys []string `json:"keys"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	removed, err := s.store.Keys.Del(payload.Keys...)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, removed)
}

func (s *Server) handleKeysExists(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Keys []string `json:"keys"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	answers, err := s.store.Keys.ExistsMany(payload.Keys)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, answers)
}
