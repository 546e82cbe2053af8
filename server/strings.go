package server

import (
	"net/http"

	"redisgate/redis"
)

func (s *Server) handleStringGet(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	value, err := s.store.Strings.Get(key)
	if err != nil {
		writeError(w, err)
		return
	}

	if value == nil {
		writeError(w, redis.NewError(redis.KindNotFound, "key %q not found", key))
		return
	}

	writeSuccess(w, *value)
}

func (s *Server) handleStringSet(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Value      string `json:"value"`
		TTLSeconds int    `json:"ttl_seconds"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	var err error
	if payload.TTLSeconds > 0 {
		err = s.store.Strings.SetWithExpiry(r.PathValue("key"), payload.Value, payload.TTLSeconds)
	} else {
		err = s.store.Strings.Set(r.PathValue("key"), payload.Value)
	}

	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (s *Server) handleStringDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Strings.Del(r.PathValue("key")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (s *Server) handleStringTTL(w http.ResponseWriter, r *http.Request) {
	ttl, err := s.store.Strings.TTL(r.PathValue("key"))
	if err != nil {
		writeError(w, err)
		return
	}

	// -1 (no expiry) and -2 (absent) pass through untouched
	writeSuccess(w, ttl)
}

func (s *Server) handleStringExpire(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		TTLSeconds int64 `json:"ttl_seconds"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	ok, err := s.store.Strings.Expire(r.PathValue("key"), payload.TTLSeconds)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, ok)
}

func (s *Server) handleStringIncr(w http.ResponseWriter, r *http.Request) {
	value, err := s.store.Strings.Incr(r.PathValue("key"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, value)
}

func (s *Server) handleStringIncrBy(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Delta int64 `json:"delta"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	value, err := s.store.Strings.IncrBy(r.PathValue("key"), payload.Delta)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, value)
}

func (s *Server) handleStringSetNX(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Value      string `json:"value"`
		TTLSeconds int    `json:"ttl_seconds"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	ok, err := s.store.Strings.SetIfNotExists(r.PathValue("key"), payload.Value, payload.TTLSeconds)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, ok)
}

func (s *Server) handleStringCAS(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Expected   string `json:"expected"`
		Value      string `json:"value"`
		TTLSeconds int    `json:"ttl_seconds"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	ok, err := s.store.Strings.CompareAndSet(r.PathValue("key"), payload.Expected, payload.Value, payload.TTLSeconds)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, ok)
}

func (s *Server) handleStringGetSet(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Value string `json:"value"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	previous, err := s.store.Strings.GetSet(r.PathValue("key"), payload.Value)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, previous)
}

func (s *Server) handleStringBatchGet(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Keys []string `json:"keys"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	// Slots are positional: values[i] belongs to keys[i], null for
	// absent keys.
	values, err := s.store.Strings.GetMany(payload.Keys)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, values)
}

func (s *Server) handleStringBatchSet(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Pairs []struct {
			Key        string `json:"key"`
			Value      string `json:"value"`
			TTLSeconds int    `json:"ttl_seconds"`
		} `json:"pairs"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	var (
		plain    []redis.KeyValue
		expiring []redis.KeyValueTTL
	)

	for _, pair := range payload.Pairs {
		if pair.TTLSeconds > 0 {
			expiring = append(expiring, redis.KeyValueTTL{Key: pair.Key, Value: pair.Value, TTLSeconds: pair.TTLSeconds})
		} else {
			plain = append(plain, redis.KeyValue{Key: pair.Key, Value: pair.Value})
		}
	}

	if len(plain) > 0 {
		if err := s.store.Strings.SetMany(plain); err != nil {
			writeError(w, err)
			return
		}
	}

	if len(expiring) > 0 {
		if err := s.store.Strings.SetManyWithExpiry(expiring); err != nil {
			writeError(w, err)
			return
		}
	}

	writeSuccess(w, len(payload.Pairs))
}

func (s *Server) handleStringBatchDelete(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Keys []string `json:"keys"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if err := s.store.Strings.DelMany(payload.Keys); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (s *Server) handleStringBatchIncr(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Keys   []string         `json:"keys"`
		Deltas []redis.KeyDelta `json:"deltas"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	var (
		values []int64
		err    error
	)

	if len(payload.Deltas) > 0 {
		values, err = s.store.Strings.IncrManyBy(payload.Deltas)
	} else {
		values, err = s.store.Strings.IncrMany(payload.Keys)
	}

	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, values)
}
