package server

import (
	"net/http"

	"redisgate/redis"
)

func (s *Server) handleHashGetAll(w http.ResponseWriter, r *http.Request) {
	fields, err := s.store.Hashes.HGetAll(r.PathValue("key"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, fields)
}

func (s *Server) handleHashGet(w http.ResponseWriter, r *http.Request) {
	var (
		key   = r.PathValue("key")
		field = r.PathValue("field")
	)

	value, err := s.store.Hashes.HGet(key, field)
	if err != nil {
		writeError(w, err)
		return
	}

	if value == nil {
		writeError(w, redis.NewError(redis.KindNotFound, "field %q not found in %q", field, key))
		return
	}

	writeSuccess(w, *value)
}

func (s *Server) handleHashSet(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Fields map[string]string `json:"fields"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if len(payload.Fields) == 0 {
		writeError(w, redis.NewError(redis.KindValidation, "no fields to set"))
		return
	}

	fields := make([]redis.FieldValue, 0, len(payload.Fields))
	for field, value := range payload.Fields {
		fields = append(fields, redis.FieldValue{Field: field, Value: value})
	}

	created, err := s.store.Hashes.HSetMultiple(r.PathValue("key"), fields)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, created)
}

func (s *Server) handleHashDeleteKey(w http.ResponseWriter, r *http.Request) {
	removed, err := s.store.Keys.Del(r.PathValue("key"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, removed)
}

func (s *Server) handleHashDeleteField(w http.ResponseWriter, r *http.Request) {
	removed, err := s.store.Hashes.HDel(r.PathValue("key"), r.PathValue("field"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, removed)
}

func (s *Server) handleHashLen(w http.ResponseWriter, r *http.Request) {
	length, err := s.store.Hashes.HLen(r.PathValue("key"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, length)
}

func (s *Server) handleHashExists(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	if field == "" {
		writeError(w, redis.NewError(redis.KindValidation, "missing field parameter"))
		return
	}

	ok, err := s.store.Hashes.HExists(r.PathValue("key"), field)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, ok)
}

func (s *Server) handleHashBatchSet(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Writes []struct {
			Key    string            `json:"key"`
			Fields map[string]string `json:"fields"`
		} `json:"writes"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	writes := make([]redis.HashWrite, 0, len(payload.Writes))
	for _, write := range payload.Writes {
		fields := make([]redis.FieldValue, 0, len(write.Fields))
		for field, value := range write.Fields {
			fields = append(fields, redis.FieldValue{Field: field, Value: value})
		}

		writes = append(writes, redis.HashWrite{Key: write.Key, Fields: fields})
	}

	counts, err := s.store.Hashes.HSetMany(writes)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, counts)
}

func (s *Server) handleHashBatchGet(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Pairs []redis.KeyField `json:"pairs"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	values, err := s.store.Hashes.HGetMany(payload.Pairs)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, values)
}
