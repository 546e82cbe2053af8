package redis

import (
	"strconv"

	redigo "github.com/gomodule/redigo/redis"
)

// Strings wraps the string command set. One method per command; batch
// helpers issue their commands through a single pipeline round trip and
// preserve positional correspondence between inputs and outputs.
type Strings struct {
	client Client
}

// Get returns the value of key, or nil when the key is absent.
func (s *Strings) Get(key string) (*string, error) {
	reply, err := s.client.Do("GET", key)
	if err != nil {
		return nil, wrapError(err)
	}

	return optionalString(reply)
}

// Set stores value under key with no expiry.
func (s *Strings) Set(key, value string) error {
	_, err := s.client.Do("SET", key, value)
	return wrapError(err)
}

// SetWithExpiry stores value under key with a TTL in seconds.
func (s *Strings) SetWithExpiry(key, value string, ttlSeconds int) error {
	_, err := s.client.Do("SETEX", key, ttlSeconds, value)
	return wrapError(err)
}

// Append appends value to key and returns the new length.
func (s *Strings) Append(key, value string) (int64, error) {
	n, err := redigo.Int64(s.client.Do("APPEND", key, value))
	return n, wrapError(err)
}

// Incr increments the integer stored at key by one.
func (s *Strings) Incr(key string) (int64, error) {
	n, err := redigo.Int64(s.client.Do("INCR", key))
	return n, wrapError(err)
}

// IncrBy increments the integer stored at key by delta.
func (s *Strings) IncrBy(key string, delta int64) (int64, error) {
	n, err := redigo.Int64(s.client.Do("INCRBY", key, delta))
	return n, wrapError(err)
}

// Decr decrements the integer stored at key by one.
func (s *Strings) Decr(key string) (int64, error) {
	n, err := redigo.Int64(s.client.Do("DECR", key))
	return n, wrapError(err)
}

// DecrBy decrements the integer stored at key by delta.
func (s *Strings) DecrBy(key string, delta int64) (int64, error) {
	n, err := redigo.Int64(s.client.Do("DECRBY", key, delta))
	return n, wrapError(err)
}

// Del removes key. Removing an absent key is not an error.
func (s *Strings) Del(key string) error {
	_, err := s.client.Do("DEL", key)
	return wrapError(err)
}

// Exists reports whether key exists.
func (s *Strings) Exists(key string) (bool, error) {
	ok, err := redigo.Bool(s.client.Do("EXISTS", key))
	return ok, wrapError(err)
}

// TTL returns the remaining lifetime of key in seconds. -1 means the key
// exists without an expiry, -2 means the key does not exist.
func (s *Strings) TTL(key string) (int64, error) {
	n, err := redigo.Int64(s.client.Do("TTL", key))
	return n, wrapError(err)
}

// Expire sets the TTL of key in seconds. Returns false when the key does
// not exist.
func (s *Strings) Expire(key string, seconds int64) (bool, error) {
	ok, err := redigo.Bool(s.client.Do("EXPIRE", key, seconds))
	return ok, wrapError(err)
}

// Keys returns the keys matching pattern on a read replica when one is
// configured.
func (s *Strings) Keys(pattern string) ([]string, error) {
	values, err := redigo.Strings(s.client.ReadReplica().Do("KEYS", pattern))
	return values, wrapError(err)
}

//
// Script-backed conditional writes

// GetSet atomically replaces the value of key and returns the previous
// value, or nil when the key was absent.
func (s *Strings) GetSet(key, value string) (*string, error) {
	reply, err := s.client.Eval(GetSetScript, []string{key}, value)
	if err != nil {
		return nil, wrapError(err)
	}

	return optionalString(reply)
}

// SetIfNotExists writes value only when key is absent. A ttlSeconds of
// zero means no expiry. Exactly one of N concurrent callers on a fresh key
// observes true.
func (s *Strings) SetIfNotExists(key, value string, ttlSeconds int) (bool, error) {
	ok, err := redigo.Bool(s.client.Eval(SetIfNotExistsScript, []string{key}, value, ttlArg(ttlSeconds)))
	return ok, wrapError(err)
}

// CompareAndSet writes value only when the current value of key equals
// expected. A ttlSeconds of zero means no expiry. Returns false and leaves
// the key untouched when the comparison fails.
func (s *Strings) CompareAndSet(key, expected, value string, ttlSeconds int) (bool, error) {
	ok, err := redigo.Bool(s.client.Eval(CompareAndSetScript, []string{key}, expected, value, ttlArg(ttlSeconds)))
	return ok, wrapError(err)
}

//
// Pipeline batch helpers

// SetMany stores every pair in one round trip. Write replies are ignored.
func (s *Strings) SetMany(pairs []KeyValue) error {
	p := s.client.Pipeline()
	for _, kv := range pairs {
		p.AddIgnore("SET", kv.Key, kv.Value)
	}

	_, err := p.Run()
	return wrapError(err)
}

// SetManyWithExpiry stores every entry with its own TTL in one round trip.
func (s *Strings) SetManyWithExpiry(entries []KeyValueTTL) error {
	p := s.client.Pipeline()
	for _, entry := range entries {
		p.AddIgnore("SETEX", entry.Key, entry.TTLSeconds, entry.Value)
	}

	_, err := p.Run()
	return wrapError(err)
}

// GetMany returns the value for each key in request order. Absent keys
// yield nil in their slot.
func (s *Strings) GetMany(keys []string) ([]*string, error) {
	p := s.client.Pipeline()
	for _, key := range keys {
		p.Add("GET", key)
	}

	results, err := p.Run()
	if err != nil {
		return nil, wrapError(err)
	}

	values := make([]*string, len(results))
	for i, reply := range results {
		if err, ok := reply.(error); ok {
			return nil, wrapError(err)
		}

		value, err := optionalString(reply)
		if err != nil {
			return nil, err
		}

		values[i] = value
	}

	return values, nil
}

// IncrMany increments every key by one and returns the new values in
// request order.
func (s *Strings) IncrMany(keys []string) ([]int64, error) {
	deltas := make([]KeyDelta, len(keys))
	for i, key := range keys {
		deltas[i] = KeyDelta{Key: key, Delta: 1}
	}

	return s.IncrManyBy(deltas)
}

// IncrManyBy increments every key by its own delta and returns the new
// values in request order.
func (s *Strings) IncrManyBy(deltas []KeyDelta) ([]int64, error) {
	p := s.client.Pipeline()
	for _, kd := range deltas {
		p.Add("INCRBY", kd.Key, kd.Delta)
	}

	results, err := p.Run()
	if err != nil {
		return nil, wrapError(err)
	}

	values := make([]int64, len(results))
	for i, reply := range results {
		n, err := redigo.Int64(reply, nil)
		if err != nil {
			return nil, wrapError(err)
		}

		values[i] = n
	}

	return values, nil
}

// DelMany removes every key in one round trip.
func (s *Strings) DelMany(keys []string) error {
	p := s.client.Pipeline()
	for _, key := range keys {
		p.AddIgnore("DEL", key)
	}

	_, err := p.Run()
	return wrapError(err)
}

// ttlArg encodes an optional TTL for the script catalog: scripts treat an
// empty string as "no expiry".
func ttlArg(ttlSeconds int) string {
	if ttlSeconds <= 0 {
		return ""
	}

	return strconv.Itoa(ttlSeconds)
}
