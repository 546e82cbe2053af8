package server

import (
	"net/http"

	"redisgate/redis"
)

func (s *Server) handleScriptEval(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Script string        `json:"script"`
		Keys   []string      `json:"keys"`
		Args   []interface{} `json:"args"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if payload.Script == "" {
		writeError(w, redis.NewError(redis.KindValidation, "missing script body"))
		return
	}

	result, err := s.store.Scripts.Eval(payload.Script, payload.Keys, payload.Args...)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, normalizeReply(result))
}

func (s *Server) handleRateLimit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key           string `json:"key"`
		Limit         int    `json:"limit"`
		WindowSeconds int    `json:"window_seconds"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if payload.Limit <= 0 || payload.WindowSeconds <= 0 {
		writeError(w, redis.NewError(redis.KindValidation, "limit and window_seconds must be positive"))
		return
	}

	allowed, err := s.store.Scripts.RateLimit(payload.Key, payload.Limit, payload.WindowSeconds)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, allowed)
}

func (s *Server) handleMultiCounter(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Keys  []string `json:"keys"`
		Delta int64    `json:"delta"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if len(payload.Keys) == 0 {
		writeError(w, redis.NewError(redis.KindValidation, "no keys given"))
		return
	}

	values, err := s.store.Scripts.MultiCounter(payload.Keys, payload.Delta)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, values)
}

func (s *Server) handleMultiSet(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Pairs      []redis.KeyValue `json:"pairs"`
		TTLSeconds int              `json:"ttl_seconds"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if payload.TTLSeconds <= 0 {
		writeError(w, redis.NewError(redis.KindValidation, "ttl_seconds must be positive"))
		return
	}

	written, err := s.store.Scripts.MultiSetWithTTL(payload.Pairs, payload.TTLSeconds)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, written)
}

// normalizeReply converts raw RESP reply values into JSON-friendly
// shapes: byte slices become strings, arrays are converted recursively.
func normalizeReply(reply interface{}) interface{} {
	switch value := reply.(type) {
	case []byte:
		return string(value)
	case []interface{}:
		normalized := make([]interface{}, len(value))
		for i, item := range value {
			normalized[i] = normalizeReply(item)
		}

		return normalized
	}

	return reply
}
