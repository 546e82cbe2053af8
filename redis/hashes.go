package redis

import (
	redigo "github.com/gomodule/redigo/redis"
)

// Hashes wraps the hash command set.
type Hashes struct {
	client Client
}

// HashWrite is a batch entry: the fields to write under one hash key.
type HashWrite struct {
	Key    string
	Fields []FieldValue
}

// HSet writes one field and returns the number of newly created fields
// (0 when the field was overwritten).
func (h *Hashes) HSet(key, field, value string) (int64, error) {
	n, err := redigo.Int64(h.client.Do("HSET", key, field, value))
	return n, wrapError(err)
}

// HSetMultiple writes several fields of one key in a single command.
func (h *Hashes) HSetMultiple(key string, fields []FieldValue) (int64, error) {
	args := redigo.Args{}.Add(key)
	for _, fv := range fields {
		args = args.Add(fv.Field, fv.Value)
	}

	n, err := redigo.Int64(h.client.Do("HSET", args...))
	return n, wrapError(err)
}

// HSetNX writes field only when it does not exist yet.
func (h *Hashes) HSetNX(key, field, value string) (bool, error) {
	ok, err := redigo.Bool(h.client.Do("HSETNX", key, field, value))
	return ok, wrapError(err)
}

// HGet returns the value of one field, or nil when the key or field is
// absent.
func (h *Hashes) HGet(key, field string) (*string, error) {
	reply, err := h.client.Do("HGET", key, field)
	if err != nil {
		return nil, wrapError(err)
	}

	return optionalString(reply)
}

// HGetMultiple returns the values of several fields of one key in request
// order, nil for absent fields.
func (h *Hashes) HGetMultiple(key string, fields []string) ([]*string, error) {
	args := redigo.Args{}.Add(key).AddFlat(fields)

	reply, err := redigo.Values(h.client.Do("HMGET", args...))
	if err != nil {
		return nil, wrapError(err)
	}

	values := make([]*string, len(reply))
	for i, item := range reply {
		value, err := optionalString(item)
		if err != nil {
			return nil, err
		}

		values[i] = value
	}

	return values, nil
}

// HGetAll returns every field and value of key. An absent key yields an
// empty map.
func (h *Hashes) HGetAll(key string) (map[string]string, error) {
	values, err := redigo.StringMap(h.client.Do("HGETALL", key))
	return values, wrapError(err)
}

// HDel removes fields and returns the number actually removed.
func (h *Hashes) HDel(key string, fields ...string) (int64, error) {
	args := redigo.Args{}.Add(key).AddFlat(fields)

	n, err := redigo.Int64(h.client.Do("HDEL", args...))
	return n, wrapError(err)
}

// HExists reports whether field exists in key.
func (h *Hashes) HExists(key, field string) (bool, error) {
	ok, err := redigo.Bool(h.client.Do("HEXISTS", key, field))
	return ok, wrapError(err)
}

// HLen returns the number of fields in key, 0 when the key is absent.
func (h *Hashes) HLen(key string) (int64, error) {
	n, err := redigo.Int64(h.client.Do("HLEN", key))
	return n, wrapError(err)
}

// HKeys returns every field name of key.
func (h *Hashes) HKeys(key string) ([]string, error) {
	values, err := redigo.Strings(h.client.Do("HKEYS", key))
	return values, wrapError(err)
}

// HVals returns every value of key.
func (h *Hashes) HVals(key string) ([]string, error) {
	values, err := redigo.Strings(h.client.Do("HVALS", key))
	return values, wrapError(err)
}

// HIncrBy increments the integer stored at field by delta.
func (h *Hashes) HIncrBy(key, field string, delta int64) (int64, error) {
	n, err := redigo.Int64(h.client.Do("HINCRBY", key, field, delta))
	return n, wrapError(err)
}

// HIncrByFloat increments the float stored at field by delta.
func (h *Hashes) HIncrByFloat(key, field string, delta float64) (float64, error) {
	n, err := redigo.Float64(h.client.Do("HINCRBYFLOAT", key, field, delta))
	return n, wrapError(err)
}

// HStrLen returns the length of the value stored at field.
func (h *Hashes) HStrLen(key, field string) (int64, error) {
	n, err := redigo.Int64(h.client.Do("HSTRLEN", key, field))
	return n, wrapError(err)
}

// HRandField returns a random field name of key, or nil when the key is
// absent.
func (h *Hashes) HRandField(key string) (*string, error) {
	reply, err := h.client.ReadReplica().Do("HRANDFIELD", key)
	if err != nil {
		return nil, wrapError(err)
	}

	return optionalString(reply)
}

// HRandFieldCount returns count random field names of key.
func (h *Hashes) HRandFieldCount(key string, count int64) ([]string, error) {
	values, err := redigo.Strings(h.client.ReadReplica().Do("HRANDFIELD", key, count))
	return values, wrapError(err)
}

// HScan iterates the fields of key. A returned cursor of 0 means the
// iteration is complete. Pattern and count are optional (empty/zero).
func (h *Hashes) HScan(key string, cursor uint64, pattern string, count int) (uint64, []FieldValue, error) {
	args := redigo.Args{}.Add(key, cursor)
	if pattern != "" {
		args = args.Add("MATCH", pattern)
	}
	if count > 0 {
		args = args.Add("COUNT", count)
	}

	reply, err := redigo.Values(h.client.Do("HSCAN", args...))
	if err != nil {
		return 0, nil, wrapError(err)
	}

	if len(reply) != 2 {
		return 0, nil, NewError(KindConnection, "unexpected HSCAN reply length %d", len(reply))
	}

	next, err := redigo.Uint64(reply[0], nil)
	if err != nil {
		return 0, nil, wrapError(err)
	}

	flat, err := redigo.Strings(reply[1], nil)
	if err != nil {
		return 0, nil, wrapError(err)
	}

	fields := make([]FieldValue, 0, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		fields = append(fields, FieldValue{Field: flat[i], Value: flat[i+1]})
	}

	return next, fields, nil
}

//
// Pipeline batch helpers

// HSetMany applies every write in one round trip and returns the number
// of newly created fields per write, in request order.
func (h *Hashes) HSetMany(writes []HashWrite) ([]int64, error) {
	p := h.client.Pipeline()
	for _, write := range writes {
		args := redigo.Args{}.Add(write.Key)
		for _, fv := range write.Fields {
			args = args.Add(fv.Field, fv.Value)
		}

		p.Add("HSET", args...)
	}

	results, err := p.Run()
	if err != nil {
		return nil, wrapError(err)
	}

	counts := make([]int64, len(results))
	for i, reply := range results {
		n, err := redigo.Int64(reply, nil)
		if err != nil {
			return nil, wrapError(err)
		}

		counts[i] = n
	}

	return counts, nil
}

// HGetMany reads one field per (key, field) pair in one round trip and
// returns the values in request order, nil for absent fields.
func (h *Hashes) HGetMany(pairs []KeyField) ([]*string, error) {
	p := h.client.Pipeline()
	for _, kf := range pairs {
		p.Add("HGET", kf.Key, kf.Field)
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
