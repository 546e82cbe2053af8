package server

import (
	"net/http"
)

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	pong, err := s.store.Admin.Ping()
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, pong)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	var (
		fields map[string]string
		err    error
	)

	if section := r.URL.Query().Get("section"); section != "" {
		fields, err = s.store.Admin.InfoSection(section)
	} else {
		fields, err = s.store.Admin.Info()
	}

	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, fields)
}

func (s *Server) handleDBSize(w http.ResponseWriter, r *http.Request) {
	size, err := s.store.Admin.DBSize()
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, size)
}

func (s *Server) handleTime(w http.ResponseWriter, r *http.Request) {
	seconds, microseconds, err := s.store.Admin.Time()
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, map[string]int64{
		"seconds":      seconds,
		"microseconds": microseconds,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health, err := s.store.Admin.HealthCheck()
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, health)
}

func (s *Server) handleConfigGet(w http.ResponseWriter, r *http.Request) {
	if parameter := r.URL.Query().Get("parameter"); parameter != "" {
		value, err := s.store.Admin.ConfigGet(parameter)
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, map[string]string{parameter: value})
		return
	}

	values, err := s.store.Admin.ConfigGetAll()
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, values)
}

func (s *Server) handleConfigSet(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Parameter string `json:"parameter"`
		Value     string `json:"value"`
	}

	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if err := s.store.Admin.ConfigSet(payload.Parameter, payload.Value); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

func (s *Server) handleFlushDB(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Admin.FlushDB(); err != nil {
		writeError(w, err)
		return
	}

	s.logger.Warnw("flushed current database")
	writeSuccess(w, nil)
}

func (s *Server) handleFlushAll(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Admin.FlushAll(); err != nil {
		writeError(w, err)
		return
	}

	s.logger.Warnw("flushed all databases")
	writeSuccess(w, nil)
}
