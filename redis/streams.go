package redis

import (
	redigo "github.com/gomodule/redigo/redis"
)

// Streams wraps the stream command set.
type Streams struct {
	client Client
}

// StreamEntry is one entry of a stream: its server-assigned (or explicit)
// ID and the field-value payload.
type StreamEntry struct {
	ID     string
	Fields map[string]string
}

// XAdd appends an entry to key with a server-assigned ID and returns that
// ID.
func (x *Streams) XAdd(key string, fields []FieldValue) (string, error) {
	return x.XAddWithID(key, "*", fields)
}

// XAddWithID appends an entry with an explicit ID ("*" for
// server-assigned).
func (x *Streams) XAddWithID(key, id string, fields []FieldValue) (string, error) {
	args := redigo.Args{}.Add(key, id)
	for _, fv := range fields {
		args = args.Add(fv.Field, fv.Value)
	}

	assigned, err := redigo.String(x.client.Do("XADD", args...))
	return assigned, wrapError(err)
}

// XLen returns the number of entries in key, 0 when the key is absent.
func (x *Streams) XLen(key string) (int64, error) {
	n, err := redigo.Int64(x.client.Do("XLEN", key))
	return n, wrapError(err)
}

// XRange returns the entries of key with IDs between start and end
// ("-"/"+" for the extremes), ascending.
func (x *Streams) XRange(key, start, end string) ([]StreamEntry, error) {
	reply, err := x.client.ReadReplica().Do("XRANGE", key, start, end)
	if err != nil {
		return nil, wrapError(err)
	}

	return parseStreamEntries(reply)
}

// XRevRange is XRange in descending ID order (note the reversed argument
// order required by the command).
func (x *Streams) XRevRange(key, end, start string) ([]StreamEntry, error) {
	reply, err := x.client.ReadReplica().Do("XREVRANGE", key, end, start)
	if err != nil {
		return nil, wrapError(err)
	}

	return parseStreamEntries(reply)
}

// XDel removes entries by ID and returns the number actually removed.
func (x *Streams) XDel(key string, ids ...string) (int64, error) {
	n, err := redigo.Int64(x.client.Do("XDEL", redigo.Args{}.Add(key).AddFlat(ids)...))
	return n, wrapError(err)
}

// XTrimMaxLen trims key down to at most maxLen entries and returns the
// number of entries removed.
func (x *Streams) XTrimMaxLen(key string, maxLen int64) (int64, error) {
	n, err := redigo.Int64(x.client.Do("XTRIM", key, "MAXLEN", maxLen))
	return n, wrapError(err)
}

// XRead returns up to count entries of key with IDs greater than lastID
// ("0" reads from the beginning). Returns an empty slice when nothing is
// newer; this is the non-blocking form.
func (x *Streams) XRead(key, lastID string, count int) ([]StreamEntry, error) {
	reply, err := x.client.Do("XREAD", "COUNT", count, "STREAMS", key, lastID)
	if err != nil {
		return nil, wrapError(err)
	}

	if reply == nil {
		return []StreamEntry{}, nil
	}

	// The reply is a list of (stream name, entries) pairs; we asked for a
	// single stream.
	streams, err := redigo.Values(reply, nil)
	if err != nil {
		return nil, wrapError(err)
	}

	if len(streams) == 0 {
		return []StreamEntry{}, nil
	}

	pair, err := redigo.Values(streams[0], nil)
	if err != nil {
		return nil, wrapError(err)
	}

	if len(pair) != 2 {
		return nil, NewError(KindConnection, "unexpected XREAD stream reply length %d", len(pair))
	}

	return parseStreamEntries(pair[1])
}

func parseStreamEntries(reply interface{}) ([]StreamEntry, error) {
	items, err := redigo.Values(reply, nil)
	if err != nil {
		return nil, wrapError(err)
	}

	entries := make([]StreamEntry, 0, len(items))
	for _, item := range items {
		pair, err := redigo.Values(item, nil)
		if err != nil {
			return nil, wrapError(err)
		}

		if len(pair) != 2 {
			return nil, NewError(KindConnection, "unexpected stream entry length %d", len(pair))
		}

		id, err := redigo.String(pair[0], nil)
		if err != nil {
			return nil, wrapError(err)
		}

		flat, err := redigo.Strings(pair[1], nil)
		if err != nil {
			return nil, wrapError(err)
		}

		fields := make(map[string]string, len(flat)/2)
		for i := 0; i+1 < len(flat); i += 2 {
			fields[flat[i]] = flat[i+1]
		}

		entries = append(entries, StreamEntry{ID: id, Fields: fields})
	}

	return entries, nil
}
