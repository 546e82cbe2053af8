package server

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"redisgate/redis"
)

// apiResponse is the uniform envelope every HTTP and WebSocket reply
// uses. Success and error are mutually exclusive.
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), apiResponse{Success: false, Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.S().Errorw("failed to write response", "error", err)
	}
}

// statusFor maps a failure kind to a transport status code. The core
// client never sees status codes; this is the only place kinds and HTTP
// meet.
func statusFor(err error) int {
	switch redis.KindOf(err) {
	case redis.KindTimeout:
		return http.StatusGatewayTimeout
	case redis.KindNotFound:
		return http.StatusNotFound
	case redis.KindTypeMismatch:
		return http.StatusConflict
	case redis.KindScript, redis.KindValidation:
		return http.StatusBadRequest
	}

	return http.StatusBadGateway
}

// decodeBody unmarshals a JSON request body. Failures surface as
// validation errors so they map to a 400.
func decodeBody(r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return redis.NewError(redis.KindValidation, "%s", errors.Wrap(err, "malformed request body"))
	}

	return nil
}
