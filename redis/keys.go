package redis

import (
	redigo "github.com/gomodule/redigo/redis"
)

// Keys wraps the generic key command set shared by every data type.
type Keys struct {
	client Client
}

// Del removes keys and returns the number actually removed.
func (k *Keys) Del(keys ...string) (int64, error) {
	n, err := redigo.Int64(k.client.Do("DEL", redigo.Args{}.AddFlat(keys)...))
	return n, wrapError(err)
}

// Exists reports whether key exists.
func (k *Keys) Exists(key string) (bool, error) {
	ok, err := redigo.Bool(k.client.Do("EXISTS", key))
	return ok, wrapError(err)
}

// TTL returns the remaining lifetime of key in seconds: -1 when the key
// has no expiry, -2 when the key does not exist.
func (k *Keys) TTL(key string) (int64, error) {
	n, err := redigo.Int64(k.client.Do("TTL", key))
	return n, wrapError(err)
}

// Expire sets the TTL of key in seconds. Returns false when the key does
// not exist.
func (k *Keys) Expire(key string, seconds int64) (bool, error) {
	ok, err := redigo.Bool(k.client.Do("EXPIRE", key, seconds))
	return ok, wrapError(err)
}

// Persist removes the TTL of key. Returns false when the key has none.
func (k *Keys) Persist(key string) (bool, error) {
	ok, err := redigo.Bool(k.client.Do("PERSIST", key))
	return ok, wrapError(err)
}

// Rename renames key to newKey, overwriting any existing value.
func (k *Keys) Rename(key, newKey string) error {
	_, err := k.client.Do("RENAME", key, newKey)
	return wrapError(err)
}

// Type returns the data type stored at key ("none" when absent).
func (k *Keys) Type(key string) (string, error) {
	value, err := redigo.String(k.client.Do("TYPE", key))
	return value, wrapError(err)
}

// Keys returns the keys matching pattern. Runs on a read replica when one
// is configured since KEYS scans the whole keyspace.
func (k *Keys) Keys(pattern string) ([]string, error) {
	values, err := redigo.Strings(k.client.ReadReplica().Do("KEYS", pattern))
	return values, wrapError(err)
}

// ExistsMany answers one existence question per key in request order.
func (k *Keys) ExistsMany(keys []string) ([]bool, error) {
	p := k.client.Pipeline()
	for _, key := range keys {
		p.Add("EXISTS", key)
	}

	results, err := p.Run()
	if err != nil {
		return nil, wrapError(err)
	}

	answers := make([]bool, len(results))
	for i, reply := range results {
		ok, err := redigo.Bool(reply, nil)
		if err != nil {
			return nil, wrapError(err)
		}

		answers[i] = ok
	}

	return answers, nil
}

// TTLMany returns the TTL sentinel for each key in request order.
func (k *Keys) TTLMany(keys []string) ([]int64, error) {
	p := k.client.Pipeline()
	for _, key := range keys {
		p.Add("TTL", key)
	}

	results, err := p.Run()
	if err != nil {
		return nil, wrapError(err)
	}

	ttls := make([]int64, len(results))
	for i, reply := range results {
		n, err := redigo.Int64(reply, nil)
		if err != nil {
			return nil, wrapError(err)
		}

		ttls[i] = n
	}

	return ttls, nil
}
