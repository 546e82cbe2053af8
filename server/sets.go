package server

import (
	"net/http"

	"redisgate/redis"
)

func (s *Server) handleSetMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.store.Sets.SMembers(r.PathValue("key"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, members)
}

func (s *Server) handleSetCardinality(w http.ResponseWriter, r *http.Request) {
	size, err := s.store.Sets.SCard(r.PathValue("key"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, size)
}

func (s *Server) handleSetIsMember(w http.ResponseWriter, r *http.Request) {
	member := r.URL.Query().Get("member")
	if member == "" {
		writeError(w, redis.NewError(redis.KindValidation, "missing member parameter"))
		return
	}

	ok, err := s.store.Sets.SIsMember(r.PathValue("key"), member)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, ok)
}

func (s *Server) handleSetAdd(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Members []string `json:"members"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if len(payload.Members) == 0 {
		writeError(w, redis.NewError(redis.KindValidation, "no members to add"))
		return
	}

	added, err := s.store.Sets.SAdd(r.PathValue("key"), payload.Members...)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, added)
}

func (s *Server) handleSetRemove(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Members []string `json:"members"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	removed, err := s.store.Sets.SRem(r.PathValue("key"), payload.Members...)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, removed)
}

func (s *Server) handleSetPop(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Count int64 `json:"count"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if payload.Count > 0 {
		members, err := s.store.Sets.SPopCount(r.PathValue("key"), payload.Count)
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, members)
		return
	}

	member, err := s.store.Sets.SPop(r.PathValue("key"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, member)
}

func (s *Server) handleSetMove(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Source      string `json:"source"`
		Destination string `json:"destination"`
		Member      string `json:"member"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	moved, err := s.store.Sets.SMove(payload.Source, payload.Destination, payload.Member)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, moved)
}

func (s *Server) handleSetUnion(w http.ResponseWriter, r *http.Request) {
	s.handleSetAlgebra(w, r, s.store.Sets.SUnion)
}

func (s *Server) handleSetInter(w http.ResponseWriter, r *http.Request) {
	s.handleSetAlgebra(w, r, s.store.Sets.SInter)
}

func (s *Server) handleSetDiff(w http.ResponseWriter, r *http.Request) {
	s.handleSetAlgebra(w, r, s.store.Sets.SDiff)
}

func (s *Server) handleSetAlgebra(w http.ResponseWriter, r *http.Request, op func(...string) ([]string, error)) {
	var payload struct {
		Keys []string `json:"keys"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if len(payload.Keys) == 0 {
		writeError(w, redis.NewError(redis.KindValidation, "no keys given"))
		return
	}

	members, err := op(payload.Keys...)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, members)
}
