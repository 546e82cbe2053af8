package redis

import (
	redigo "github.com/gomodule/redigo/redis"
)

// Lists wraps the list command set.
type Lists struct {
	client Client
}

// LPush prepends values to key and returns the new length.
func (l *Lists) LPush(key string, values ...string) (int64, error) {
	n, err := redigo.Int64(l.client.Do("LPUSH", redigo.Args{}.Add(key).AddFlat(values)...))
	return n, wrapError(err)
}

// RPush appends values to key and returns the new length.
func (l *Lists) RPush(key string, values ...string) (int64, error) {
	n, err := redigo.Int64(l.client.Do("RPUSH", redigo.Args{}.Add(key).AddFlat(values)...))
	return n, wrapError(err)
}

// LPop removes and returns the first element of key, nil when the list is
// empty or absent.
func (l *Lists) LPop(key string) (*string, error) {
	reply, err := l.client.Do("LPOP", key)
	if err != nil {
		return nil, wrapError(err)
	}

	return optionalString(reply)
}

// RPop removes and returns the last element of key, nil when the list is
// empty or absent.
func (l *Lists) RPop(key string) (*string, error) {
	reply, err := l.client.Do("RPOP", key)
	if err != nil {
		return nil, wrapError(err)
	}

	return optionalString(reply)
}

// LRange returns the elements of key between the given indexes.
func (l *Lists) LRange(key string, start, stop int64) ([]string, error) {
	values, err := redigo.Strings(l.client.ReadReplica().Do("LRANGE", key, start, stop))
	return values, wrapError(err)
}

// LLen returns the length of key, 0 when the key is absent.
func (l *Lists) LLen(key string) (int64, error) {
	n, err := redigo.Int64(l.client.Do("LLEN", key))
	return n, wrapError(err)
}

// LIndex returns the element at index, nil when out of range.
func (l *Lists) LIndex(key string, index int64) (*string, error) {
	reply, err := l.client.ReadReplica().Do("LINDEX", key, index)
	if err != nil {
		return nil, wrapError(err)
	}

	return optionalString(reply)
}

// LSet overwrites the element at index.
func (l *Lists) LSet(key string, index int64, value string) error {
	_, err := l.client.Do("LSET", key, index, value)
	return wrapError(err)
}

// LRem removes up to count occurrences of value and returns the number
// removed. A negative count removes from the tail, zero removes all.
func (l *Lists) LRem(key string, count int64, value string) (int64, error) {
	n, err := redigo.Int64(l.client.Do("LREM", key, count, value))
	return n, wrapError(err)
}

// LTrim trims key to the elements between the given indexes.
func (l *Lists) LTrim(key string, start, stop int64) error {
	_, err := l.client.Do("LTRIM", key, start, stop)
	return wrapError(err)
}
