package redis

import (
	redigo "github.com/gomodule/redigo/redis"
)

// Sets wraps the set command set.
type Sets struct {
	client Client
}

// SetWrite is a batch entry: the members to add to or remove from one key.
type SetWrite struct {
	Key     string
	Members []string
}

// SAdd adds members to key and returns the number actually added.
func (s *Sets) SAdd(key string, members ...string) (int64, error) {
	args := redigo.Args{}.Add(key).AddFlat(members)

	n, err := redigo.Int64(s.client.Do("SADD", args...))
	return n, wrapError(err)
}

// SRem removes members from key and returns the number actually removed.
func (s *Sets) SRem(key string, members ...string) (int64, error) {
	args := redigo.Args{}.Add(key).AddFlat(members)

	n, err := redigo.Int64(s.client.Do("SREM", args...))
	return n, wrapError(err)
}

// SMembers returns every member of key. An absent key yields an empty
// slice.
func (s *Sets) SMembers(key string) ([]string, error) {
	values, err := redigo.Strings(s.client.ReadReplica().Do("SMEMBERS", key))
	return values, wrapError(err)
}

// SCard returns the cardinality of key, 0 when the key is absent.
func (s *Sets) SCard(key string) (int64, error) {
	n, err := redigo.Int64(s.client.Do("SCARD", key))
	return n, wrapError(err)
}

// SIsMember reports whether member is in key.
func (s *Sets) SIsMember(key, member string) (bool, error) {
	ok, err := redigo.Bool(s.client.Do("SISMEMBER", key, member))
	return ok, wrapError(err)
}

// SRandMember returns a random member of key without removing it, or nil
// when the key is absent.
func (s *Sets) SRandMember(key string) (*string, error) {
	reply, err := s.client.ReadReplica().Do("SRANDMEMBER", key)
	if err != nil {
		return nil, wrapError(err)
	}

	return optionalString(reply)
}

// SRandMemberCount returns up to count random members of key.
func (s *Sets) SRandMemberCount(key string, count int64) ([]string, error) {
	values, err := redigo.Strings(s.client.ReadReplica().Do("SRANDMEMBER", key, count))
	return values, wrapError(err)
}

// SPop removes and returns a random member of key, or nil when the key is
// absent.
func (s *Sets) SPop(key string) (*string, error) {
	reply, err := s.client.Do("SPOP", key)
	if err != nil {
		return nil, wrapError(err)
	}

	return optionalString(reply)
}

// SPopCount removes and returns up to count random members of key.
func (s *Sets) SPopCount(key string, count int64) ([]string, error) {
	values, err := redigo.Strings(s.client.Do("SPOP", key, count))
	return values, wrapError(err)
}

// SMove moves member from source to destination. Returns false when the
// member was not in source.
func (s *Sets) SMove(source, destination, member string) (bool, error) {
	ok, err := redigo.Bool(s.client.Do("SMOVE", source, destination, member))
	return ok, wrapError(err)
}

// SInter returns the intersection of keys.
func (s *Sets) SInter(keys ...string) ([]string, error) {
	values, err := redigo.Strings(s.client.ReadReplica().Do("SINTER", redigo.Args{}.AddFlat(keys)...))
	return values, wrapError(err)
}

// SUnion returns the union of keys.
func (s *Sets) SUnion(keys ...string) ([]string, error) {
	values, err := redigo.Strings(s.client.ReadReplica().Do("SUNION", redigo.Args{}.AddFlat(keys)...))
	return values, wrapError(err)
}

// SDiff returns the members of the first key not present in the rest.
func (s *Sets) SDiff(keys ...string) ([]string, error) {
	values, err := redigo.Strings(s.client.ReadReplica().Do("SDIFF", redigo.Args{}.AddFlat(keys)...))
	return values, wrapError(err)
}

// SInterStore stores the intersection of keys in destination and returns
// its cardinality.
func (s *Sets) SInterStore(destination string, keys ...string) (int64, error) {
	n, err := redigo.Int64(s.client.Do("SINTERSTORE", redigo.Args{}.Add(destination).AddFlat(keys)...))
	return n, wrapError(err)
}

// SUnionStore stores the union of keys in destination and returns its
// cardinality.
func (s *Sets) SUnionStore(destination string, keys ...string) (int64, error) {
	n, err := redigo.Int64(s.client.Do("SUNIONSTORE", redigo.Args{}.Add(destination).AddFlat(keys)...))
	return n, wrapError(err)
}

// SDiffStore stores the difference of keys in destination and returns its
// cardinality.
func (s *Sets) SDiffStore(destination string, keys ...string) (int64, error) {
	n, err := redigo.Int64(s.client.Do("SDIFFSTORE", redigo.Args{}.Add(destination).AddFlat(keys)...))
	return n, wrapError(err)
}

//
// Pipeline batch helpers

// SAddMany applies every write in one round trip and returns the number of
// members added per write, in request order.
func (s *Sets) SAddMany(writes []SetWrite) ([]int64, error) {
	return s.writeMany("SADD", writes)
}

// SRemMany applies every removal in one round trip and returns the number
// of members removed per write, in request order.
func (s *Sets) SRemMany(writes []SetWrite) ([]int64, error) {
	return s.writeMany("SREM", writes)
}

func (s *Sets) writeMany(command string, writes []SetWrite) ([]int64, error) {
	p := s.client.Pipeline()
	for _, write := range writes {
		p.Add(command, redigo.Args{}.Add(write.Key).AddFlat(write.Members)...)
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

// SMembersMany returns the members of each key in request order.
func (s *Sets) SMembersMany(keys []string) ([][]string, error) {
	p := s.client.Pipeline()
	for _, key := range keys {
		p.Add("SMEMBERS", key)
	}

	results, err := p.Run()
	if err != nil {
		return nil, wrapError(err)
	}

	members := make([][]string, len(results))
	for i, reply := range results {
		values, err := redigo.Strings(reply, nil)
		if err != nil {
			return nil, wrapError(err)
		}

		members[i] = values
	}

	return members, nil
}

// SIsMemberMany answers one membership question per (key, member) pair in
// request order.
func (s *Sets) SIsMemberMany(pairs []KeyMember) ([]bool, error) {
	p := s.client.Pipeline()
	for _, km := range pairs {
		p.Add("SISMEMBER", km.Key, km.Member)
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

// SCardMany returns the cardinality of each key in request order.
func (s *Sets) SCardMany(keys []string) ([]int64, error) {
	p := s.client.Pipeline()
	for _, key := range keys {
		p.Add("SCARD", key)
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
