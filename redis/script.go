package redis

import (
	"crypto/sha1"
	"encoding/hex"

	redigo "github.com/gomodule/redigo/redis"
)

// Script is an immutable Lua script body paired with its SHA1 digest.
// Scripts execute atomically on the server: no other command interleaves
// while the script runs, which is what makes the catalog below usable for
// compare-and-swap style logic.
type Script struct {
	source string
	hash   string
}

// NewScript creates a Script from a Lua source body.
func NewScript(source string) *Script {
	digest := sha1.Sum([]byte(source))

	return &Script{
		source: source,
		hash:   hex.EncodeToString(digest[:]),
	}
}

// Source returns the Lua body of the script.
func (s *Script) Source() string {
	return s.source
}

// Hash returns the SHA1 digest used for EVALSHA invocation.
func (s *Script) Hash() string {
	return s.hash
}

// invocationArgs builds the EVAL/EVALSHA argument list: the script (by
// digest or body), the key count, the keys, then the arguments.
func (s *Script) invocationArgs(byHash bool, keys []string, args []interface{}) []interface{} {
	target := s.source
	if byHash {
		target = s.hash
	}

	return redigo.Args{}.Add(target, len(keys)).AddFlat(keys).Add(args...)
}

// The canned script catalog. Bodies are fixed constants; invocation
// parameters are bound per call. Boolean-style scripts follow the Lua
// convention of returning 1 for true and 0 for false.
var (
	// GetSetScript atomically returns the previous value of KEYS[1] and
	// overwrites it with ARGV[1].
	GetSetScript = NewScript(`
local current = redis.call('GET', KEYS[1])
redis.call('SET', KEYS[1], ARGV[1])
return current
`)

	// SetIfNotExistsScript sets KEYS[1] to ARGV[1] only when the key is
	// absent. ARGV[2] is an optional TTL in seconds (empty string means no
	// expiry). Returns 1 when the write happened, 0 otherwise.
	SetIfNotExistsScript = NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
    if ARGV[2] and ARGV[2] ~= '' then
        redis.call('SETEX', KEYS[1], ARGV[2], ARGV[1])
    else
        redis.call('SET', KEYS[1], ARGV[1])
    end
    return 1
end
return 0
`)

	// CompareAndSetScript sets KEYS[1] to ARGV[2] only when its current
	// value equals ARGV[1]. ARGV[3] is an optional TTL in seconds. Returns
	// 1 when the swap happened, 0 when the value was left untouched.
	CompareAndSetScript = NewScript(`
local current = redis.call('GET', KEYS[1])
if current == ARGV[1] then
    if ARGV[3] and ARGV[3] ~= '' then
        redis.call('SETEX', KEYS[1], ARGV[3], ARGV[2])
    else
        redis.call('SET', KEYS[1], ARGV[2])
    end
    return 1
end
return 0
`)

	// MultiCounterScript increments every key in KEYS by ARGV[1] and
	// returns the new values in key order.
	MultiCounterScript = NewScript(`
local results = {}
for i = 1, #KEYS do
    results[i] = redis.call('INCRBY', KEYS[i], ARGV[1])
end
return results
`)

	// MultiSetWithTTLScript sets KEYS[i] to ARGV[i+1] with a shared TTL of
	// ARGV[1] seconds and returns the number of keys written.
	MultiSetWithTTLScript = NewScript(`
for i = 1, #KEYS do
    redis.call('SETEX', KEYS[i], ARGV[1], ARGV[i + 1])
end
return #KEYS
`)

	// RateLimiterScript counts invocations of KEYS[1] inside a fixed
	// window. ARGV[1] is the limit, ARGV[2] the window in seconds. The
	// window starts at the first call and the counter expires with it.
	// Returns 1 when the call is allowed, 0 when the limit is exhausted.
	RateLimiterScript = NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[2])
end
if current > tonumber(ARGV[1]) then
    return 0
end
return 1
`)
)
