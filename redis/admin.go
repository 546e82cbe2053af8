package redis

import (
	"strings"

	redigo "github.com/gomodule/redigo/redis"
)

// Admin wraps server-level introspection and management commands.
//
// FlushDB and FlushAll are destructive and irreversible. They are plain
// methods here so that the dispatch layer can expose them only behind
// explicit, intentional call paths.
type Admin struct {
	client Client
}

// Health aggregates the signals of HealthCheck. It is only produced when
// every sub-call succeeded.
type Health struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	DBSize     int64  `json:"db_size"`
	UsedMemory string `json:"used_memory"`
}

// Ping returns the server's PONG reply.
func (a *Admin) Ping() (string, error) {
	value, err := redigo.String(a.client.Do("PING"))
	return value, wrapError(err)
}

// Info returns every field of the server's INFO reply as a flat map.
func (a *Admin) Info() (map[string]string, error) {
	raw, err := redigo.String(a.client.Do("INFO"))
	if err != nil {
		return nil, wrapError(err)
	}

	return parseInfo(raw), nil
}

// InfoSection returns the fields of a single INFO section.
func (a *Admin) InfoSection(section string) (map[string]string, error) {
	raw, err := redigo.String(a.client.Do("INFO", section))
	if err != nil {
		return nil, wrapError(err)
	}

	return parseInfo(raw), nil
}

// DBSize returns the number of keys in the selected database.
func (a *Admin) DBSize() (int64, error) {
	n, err := redigo.Int64(a.client.Do("DBSIZE"))
	return n, wrapError(err)
}

// Time returns the server clock as unix seconds and microseconds.
func (a *Admin) Time() (seconds, microseconds int64, err error) {
	values, err := redigo.Int64s(a.client.Do("TIME"))
	if err != nil {
		return 0, 0, wrapError(err)
	}

	if len(values) != 2 {
		return 0, 0, NewError(KindConnection, "unexpected TIME reply length %d", len(values))
	}

	return values[0], values[1], nil
}

// ConfigGet returns the value of a single configuration parameter.
func (a *Admin) ConfigGet(parameter string) (string, error) {
	values, err := redigo.Strings(a.client.Do("CONFIG", "GET", parameter))
	if err != nil {
		return "", wrapError(err)
	}

	// The reply is a flat (name, value) pair list.
	if len(values) < 2 {
		return "", NewError(KindNotFound, "unknown config parameter %q", parameter)
	}

	return values[1], nil
}

// ConfigSet updates a single configuration parameter.
func (a *Admin) ConfigSet(parameter, value string) error {
	_, err := a.client.Do("CONFIG", "SET", parameter, value)
	return wrapError(err)
}

// ConfigGetAll returns every configuration parameter.
func (a *Admin) ConfigGetAll() (map[string]string, error) {
	values, err := redigo.StringMap(a.client.Do("CONFIG", "GET", "*"))
	return values, wrapError(err)
}

// FlushDB removes every key of the selected database.
func (a *Admin) FlushDB() error {
	_, err := a.client.Do("FLUSHDB")
	return wrapError(err)
}

// FlushAll removes every key of every database.
func (a *Admin) FlushAll() error {
	_, err := a.client.Do("FLUSHALL")
	return wrapError(err)
}

// Version returns the server's redis_version.
func (a *Admin) Version() (string, error) {
	info, err := a.InfoSection("server")
	if err != nil {
		return "", err
	}

	version, ok := info["redis_version"]
	if !ok {
		return "", NewError(KindConnection, "INFO reply is missing redis_version")
	}

	return version, nil
}

// HealthCheck composes ping, dbsize, version, and memory usage into one
// aggregate. It fails when any sub-call fails.
func (a *Admin) HealthCheck() (*Health, error) {
	if _, err := a.Ping(); err != nil {
		return nil, err
	}

	size, err := a.DBSize()
	if err != nil {
		return nil, err
	}

	version, err := a.Version()
	if err != nil {
		return nil, err
	}

	memory, err := a.InfoSection("memory")
	if err != nil {
		return nil, err
	}

	return &Health{
		Status:     "healthy",
		Version:    version,
		DBSize:     size,
		UsedMemory: memory["used_memory_human"],
	}, nil
}

// parseInfo splits Redis' line-oriented INFO reply (key:value per line,
// # section headers, CRLF line endings) into a flat map.
func parseInfo(raw string) map[string]string {
	fields := map[string]string{}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if i := strings.Index(line, ":"); i > 0 {
			fields[line[:i]] = line[i+1:]
		}
	}

	return fields
}
