package server

import (
	"encoding/json"

	"redisgate/redis"
)

// wsCommandFunc runs one verb against the store and returns its data
// payload. Absent values surface as nil (JSON null), never empty
// strings.
type wsCommandFunc func(store *redis.Store, params json.RawMessage) (interface{}, error)

// wsCommands is the verb registry, built once at package init. Adding a
// verb means adding an entry here; the dispatcher knows nothing about
// individual commands.
var wsCommands = map[string]wsCommandFunc{
	"ping":       wsPing,
	"info":       wsInfo,
	"db_size":    wsDBSize,
	"flush_db":   wsFlushDB,
	"flush_all":  wsFlushAll,
	"get":        wsGet,
	"set":        wsSet,
	"delete":     wsDelete,
	"exists":     wsExists,
	"ttl":        wsTTL,
	"incr":       wsIncr,
	"incrby":     wsIncrBy,
	"setnx":      wsSetNX,
	"cas":        wsCAS,
	"hget":       wsHGet,
	"hset":       wsHSet,
	"hdel":       wsHDel,
	"hgetall":    wsHGetAll,
	"sadd":       wsSAdd,
	"srem":       wsSRem,
	"smembers":   wsSMembers,
	"sismember":  wsSIsMember,
	"batch_get":  wsBatchGet,
	"batch_set":  wsBatchSet,
	"ratelimit":  wsRateLimit,
}

// decodeParams unmarshals a verb's parameter object. A missing object
// decodes as empty so verbs without parameters need no special casing.
func decodeParams(params json.RawMessage, target interface{}) error {
	if len(params) == 0 {
		params = []byte("{}")
	}

	if err := json.Unmarshal(params, target); err != nil {
		return redis.NewError(redis.KindValidation, "malformed command parameters: %s", err)
	}

	return nil
}

type keyParams struct {
	Key string `json:"key"`
}

func wsPing(store *redis.Store, params json.RawMessage) (interface{}, error) {
	return store.Admin.Ping()
}

func wsInfo(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p struct {
		Section string `json:"section"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.Section != "" {
		return store.Admin.InfoSection(p.Section)
	}

	return store.Admin.Info()
}

func wsDBSize(store *redis.Store, params json.RawMessage) (interface{}, error) {
	return store.Admin.DBSize()
}

func wsFlushDB(store *redis.Store, params json.RawMessage) (interface{}, error) {
	return nil, store.Admin.FlushDB()
}

func wsFlushAll(store *redis.Store, params json.RawMessage) (interface{}, error) {
	return nil, store.Admin.FlushAll()
}

func wsGet(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p keyParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return store.Strings.Get(p.Key)
}

func wsSet(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p struct {
		Key        string `json:"key"`
		Value      string `json:"value"`
		TTLSeconds int    `json:"ttl_seconds"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.TTLSeconds > 0 {
		return nil, store.Strings.SetWithExpiry(p.Key, p.Value, p.TTLSeconds)
	}

	return nil, store.Strings.Set(p.Key, p.Value)
}

func wsDelete(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p keyParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return nil, store.Strings.Del(p.Key)
}

func wsExists(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p keyParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return store.Keys.Exists(p.Key)
}

func wsTTL(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p keyParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return store.Keys.TTL(p.Key)
}

func wsIncr(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p keyParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return store.Strings.Incr(p.Key)
}

func wsIncrBy(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p struct {
		Key   string `json:"key"`
		Delta int64  `json:"delta"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return store.Strings.IncrBy(p.Key, p.Delta)
}

func wsSetNX(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p struct {
		Key        string `json:"key"`
		Value      string `json:"value"`
		TTLSeconds int    `json:"ttl_seconds"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return store.Strings.SetIfNotExists(p.Key, p.Value, p.TTLSeconds)
}

func wsCAS(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p struct {
		Key        string `json:"key"`
		Expected   string `json:"expected"`
		Value      string `json:"value"`
		TTLSeconds int    `json:"ttl_seconds"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return store.Strings.CompareAndSet(p.Key, p.Expected, p.Value, p.TTLSeconds)
}

func wsHGet(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p struct {
		Key   string `json:"key"`
		Field string `json:"field"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return store.Hashes.HGet(p.Key, p.Field)
}

func wsHSet(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p struct {
		Key    string            `json:"key"`
		Fields map[string]string `json:"fields"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if len(p.Fields) == 0 {
		return nil, redis.NewError(redis.KindValidation, "no fields to set")
	}

	fields := make([]redis.FieldValue, 0, len(p.Fields))
	for field, value := range p.Fields {
		fields = append(fields, redis.FieldValue{Field: field, Value: value})
	}

	return store.Hashes.HSetMultiple(p.Key, fields)
}

func wsHDel(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p struct {
		Key    string   `json:"key"`
		Fields []string `json:"fields"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return store.Hashes.HDel(p.Key, p.Fields...)
}

func wsHGetAll(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p keyParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return store.Hashes.HGetAll(p.Key)
}

func wsSAdd(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p struct {
		Key     string   `json:"key"`
		Members []string `json:"members"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return store.Sets.SAdd(p.Key, p.Members...)
}

func wsSRem(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p struct {
		Key     string   `json:"key"`
		Members []string `json:"members"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return store.Sets.SRem(p.Key, p.Members...)
}

func wsSMembers(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p keyParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return store.Sets.SMembers(p.Key)
}

func wsSIsMember(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p struct {
		Key    string `json:"key"`
		Member string `json:"member"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return store.Sets.SIsMember(p.Key, p.Member)
}

func wsBatchGet(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p struct {
		Keys []string `json:"keys"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return store.Strings.GetMany(p.Keys)
}

func wsBatchSet(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p struct {
		Pairs []redis.KeyValue `json:"pairs"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return nil, store.Strings.SetMany(p.Pairs)
}

func wsRateLimit(store *redis.Store, params json.RawMessage) (interface{}, error) {
	var p struct {
		Key           string `json:"key"`
		Limit         int    `json:"limit"`
		WindowSeconds int    `json:"window_seconds"`
	}

	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	if p.Limit <= 0 || p.WindowSeconds <= 0 {
		return nil, redis.NewError(redis.KindValidation, "limit and window_seconds must be positive")
	}

	return store.Scripts.RateLimit(p.Key, p.Limit, p.WindowSeconds)
}
