package redis

import (
	redigo "github.com/gomodule/redigo/redis"
)

// SortedSets wraps the sorted-set command set.
type SortedSets struct {
	client Client
}

// SortedSetWrite is a batch entry: the scored members to add to one key.
type SortedSetWrite struct {
	Key     string
	Members []MemberScore
}

// ZAdd adds scored members to key and returns the number actually added.
func (z *SortedSets) ZAdd(key string, members ...MemberScore) (int64, error) {
	args := redigo.Args{}.Add(key)
	for _, ms := range members {
		args = args.Add(ms.Score, ms.Member)
	}

	n, err := redigo.Int64(z.client.Do("ZADD", args...))
	return n, wrapError(err)
}

// ZRem removes members from key and returns the number actually removed.
func (z *SortedSets) ZRem(key string, members ...string) (int64, error) {
	n, err := redigo.Int64(z.client.Do("ZREM", redigo.Args{}.Add(key).AddFlat(members)...))
	return n, wrapError(err)
}

// ZRange returns the members of key between the given ranks, ascending.
func (z *SortedSets) ZRange(key string, start, stop int64) ([]string, error) {
	values, err := redigo.Strings(z.client.ReadReplica().Do("ZRANGE", key, start, stop))
	return values, wrapError(err)
}

// ZRangeWithScores is ZRange including each member's score.
func (z *SortedSets) ZRangeWithScores(key string, start, stop int64) ([]MemberScore, error) {
	return memberScores(z.client.ReadReplica().Do("ZRANGE", key, start, stop, "WITHSCORES"))
}

// ZRevRange returns the members of key between the given ranks, descending.
func (z *SortedSets) ZRevRange(key string, start, stop int64) ([]string, error) {
	values, err := redigo.Strings(z.client.ReadReplica().Do("ZREVRANGE", key, start, stop))
	return values, wrapError(err)
}

// ZRevRangeWithScores is ZRevRange including each member's score.
func (z *SortedSets) ZRevRangeWithScores(key string, start, stop int64) ([]MemberScore, error) {
	return memberScores(z.client.ReadReplica().Do("ZREVRANGE", key, start, stop, "WITHSCORES"))
}

// ZRangeByScore returns the members of key whose score lies in [min, max].
func (z *SortedSets) ZRangeByScore(key string, min, max float64) ([]string, error) {
	values, err := redigo.Strings(z.client.ReadReplica().Do("ZRANGEBYSCORE", key, min, max))
	return values, wrapError(err)
}

// ZRangeByScoreWithScores is ZRangeByScore including scores.
func (z *SortedSets) ZRangeByScoreWithScores(key string, min, max float64) ([]MemberScore, error) {
	return memberScores(z.client.ReadReplica().Do("ZRANGEBYSCORE", key, min, max, "WITHSCORES"))
}

// ZRangeByScoreLimit pages through the members of key whose score lies in
// [min, max].
func (z *SortedSets) ZRangeByScoreLimit(key string, min, max float64, offset, count int64) ([]string, error) {
	values, err := redigo.Strings(z.client.ReadReplica().Do("ZRANGEBYSCORE", key, min, max, "LIMIT", offset, count))
	return values, wrapError(err)
}

// ZRank returns the ascending rank of member in key, nil when the member
// or key is absent.
func (z *SortedSets) ZRank(key, member string) (*int64, error) {
	reply, err := z.client.ReadReplica().Do("ZRANK", key, member)
	if err != nil {
		return nil, wrapError(err)
	}

	return optionalInt64(reply)
}

// ZRevRank returns the descending rank of member in key, nil when the
// member or key is absent.
func (z *SortedSets) ZRevRank(key, member string) (*int64, error) {
	reply, err := z.client.ReadReplica().Do("ZREVRANK", key, member)
	if err != nil {
		return nil, wrapError(err)
	}

	return optionalInt64(reply)
}

// ZScore returns the score of member in key, nil when the member or key
// is absent.
func (z *SortedSets) ZScore(key, member string) (*float64, error) {
	reply, err := z.client.ReadReplica().Do("ZSCORE", key, member)
	if err != nil {
		return nil, wrapError(err)
	}

	return optionalFloat64(reply)
}

// ZCard returns the cardinality of key, 0 when the key is absent.
func (z *SortedSets) ZCard(key string) (int64, error) {
	n, err := redigo.Int64(z.client.Do("ZCARD", key))
	return n, wrapError(err)
}

// ZCount returns the number of members of key whose score lies in
// [min, max].
func (z *SortedSets) ZCount(key string, min, max float64) (int64, error) {
	n, err := redigo.Int64(z.client.Do("ZCOUNT", key, min, max))
	return n, wrapError(err)
}

// ZIncrBy increments the score of member by delta and returns the new
// score.
func (z *SortedSets) ZIncrBy(key string, delta float64, member string) (float64, error) {
	n, err := redigo.Float64(z.client.Do("ZINCRBY", key, delta, member))
	return n, wrapError(err)
}

// ZRemRangeByRank removes the members of key between the given ranks and
// returns the number removed.
func (z *SortedSets) ZRemRangeByRank(key string, start, stop int64) (int64, error) {
	n, err := redigo.Int64(z.client.Do("ZREMRANGEBYRANK", key, start, stop))
	return n, wrapError(err)
}

// ZRemRangeByScore removes the members of key whose score lies in
// [min, max] and returns the number removed.
func (z *SortedSets) ZRemRangeByScore(key string, min, max float64) (int64, error) {
	n, err := redigo.Int64(z.client.Do("ZREMRANGEBYSCORE", key, min, max))
	return n, wrapError(err)
}

// ZInterStore stores the intersection of keys in destination and returns
// its cardinality.
func (z *SortedSets) ZInterStore(destination string, keys ...string) (int64, error) {
	args := redigo.Args{}.Add(destination, len(keys)).AddFlat(keys)

	n, err := redigo.Int64(z.client.Do("ZINTERSTORE", args...))
	return n, wrapError(err)
}

// ZUnionStore stores the union of keys in destination and returns its
// cardinality.
func (z *SortedSets) ZUnionStore(destination string, keys ...string) (int64, error) {
	args := redigo.Args{}.Add(destination, len(keys)).AddFlat(keys)

	n, err := redigo.Int64(z.client.Do("ZUNIONSTORE", args...))
	return n, wrapError(err)
}

//
// Pipeline batch helpers

// ZAddMany applies every write in one round trip and returns the number of
// members added per write, in request order.
func (z *SortedSets) ZAddMany(writes []SortedSetWrite) ([]int64, error) {
	p := z.client.Pipeline()
	for _, write := range writes {
		args := redigo.Args{}.Add(write.Key)
		for _, ms := range write.Members {
			args = args.Add(ms.Score, ms.Member)
		}

		p.Add("ZADD", args...)
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

// ZScoreMany returns one score per (key, member) pair in request order,
// nil for absent members.
func (z *SortedSets) ZScoreMany(pairs []KeyMember) ([]*float64, error) {
	p := z.client.Pipeline()
	for _, km := range pairs {
		p.Add("ZSCORE", km.Key, km.Member)
	}

	results, err := p.Run()
	if err != nil {
		return nil, wrapError(err)
	}

	scores := make([]*float64, len(results))
	for i, reply := range results {
		if err, ok := reply.(error); ok {
			return nil, wrapError(err)
		}

		score, err := optionalFloat64(reply)
		if err != nil {
			return nil, err
		}

		scores[i] = score
	}

	return scores, nil
}

// ZCardMany returns the cardinality of each key in request order.
func (z *SortedSets) ZCardMany(keys []string) ([]int64, error) {
	p := z.client.Pipeline()
	for _, key := range keys {
		p.Add("ZCARD", key)
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
