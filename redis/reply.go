package redis

import (
	redigo "github.com/gomodule/redigo/redis"
)

// Decoding helpers shared by the primitive adapters. Absence is modeled
// with nil pointers so that callers (and the JSON layer above) can tell a
// missing key from a genuinely empty value.

func optionalString(reply interface{}) (*string, error) {
	if reply == nil {
		return nil, nil
	}

	value, err := redigo.String(reply, nil)
	if err != nil {
		return nil, wrapError(err)
	}

	return &value, nil
}

func optionalInt64(reply interface{}) (*int64, error) {
	if reply == nil {
		return nil, nil
	}

	value, err := redigo.Int64(reply, nil)
	if err != nil {
		return nil, wrapError(err)
	}

	return &value, nil
}

func optionalFloat64(reply interface{}) (*float64, error) {
	if reply == nil {
		return nil, nil
	}

	value, err := redigo.Float64(reply, nil)
	if err != nil {
		return nil, wrapError(err)
	}

	return &value, nil
}

// memberScores decodes a flat WITHSCORES reply (member, score, ...).
func memberScores(reply interface{}, err error) ([]MemberScore, error) {
	values, err := redigo.Strings(reply, err)
	if err != nil {
		return nil, wrapError(err)
	}

	if len(values)%2 != 0 {
		return nil, NewError(KindConnection, "odd WITHSCORES reply length %d", len(values))
	}

	scored := make([]MemberScore, 0, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		score, err := redigo.Float64([]byte(values[i+1]), nil)
		if err != nil {
			return nil, wrapError(err)
		}

		scored = append(scored, MemberScore{Member: values[i], Score: score})
	}

	return scored, nil
}
