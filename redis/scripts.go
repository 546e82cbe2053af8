package redis

import (
	redigo "github.com/gomodule/redigo/redis"
)

// Scripts exposes the canned atomic script catalog plus a pass-through
// eval for caller-supplied script text. The pass-through is the less
// trusted entry point: Lua failures surface as script-kind errors so the
// dispatch layer can blame the request rather than the server.
type Scripts struct {
	client Client
}

// Eval runs caller-supplied Lua source with the given key and argument
// bindings and returns the raw reply.
func (s *Scripts) Eval(source string, keys []string, args ...interface{}) (interface{}, error) {
	if source == "" {
		return nil, NewError(KindValidation, "empty script body")
	}

	reply, err := s.client.Eval(NewScript(source), keys, args...)
	return reply, wrapError(err)
}

// RateLimit counts an invocation against key inside a fixed window of
// windowSeconds. Returns true while at most limit invocations happened in
// the current window. The counter expires with the window, resetting the
// limiter.
func (s *Scripts) RateLimit(key string, limit, windowSeconds int) (bool, error) {
	ok, err := redigo.Bool(s.client.Eval(RateLimiterScript, []string{key}, limit, windowSeconds))
	return ok, wrapError(err)
}

// MultiCounter atomically increments every key by delta and returns the
// new values in key order.
func (s *Scripts) MultiCounter(keys []string, delta int64) ([]int64, error) {
	values, err := redigo.Int64s(s.client.Eval(MultiCounterScript, keys, delta))
	return values, wrapError(err)
}

// MultiSetWithTTL atomically sets every pair with a shared TTL and
// returns the number of keys written.
func (s *Scripts) MultiSetWithTTL(pairs []KeyValue, ttlSeconds int) (int64, error) {
	keys := make([]string, len(pairs))
	args := make([]interface{}, 0, len(pairs)+1)
	args = append(args, ttlSeconds)

	for i, kv := range pairs {
		keys[i] = kv.Key
		args = append(args, kv.Value)
	}

	n, err := redigo.Int64(s.client.Eval(MultiSetWithTTLScript, keys, args...))
	return n, wrapError(err)
}
