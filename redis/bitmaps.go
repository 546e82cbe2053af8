package redis

import (
	redigo "github.com/gomodule/redigo/redis"
)

// Bitmaps wraps the bitmap command set.
type Bitmaps struct {
	client Client
}

// SetBit sets the bit at offset and returns its previous value.
func (b *Bitmaps) SetBit(key string, offset int64, value bool) (bool, error) {
	bit := 0
	if value {
		bit = 1
	}

	prev, err := redigo.Bool(b.client.Do("SETBIT", key, offset, bit))
	return prev, wrapError(err)
}

// GetBit returns the bit at offset. Bits beyond the value's length are 0.
func (b *Bitmaps) GetBit(key string, offset int64) (bool, error) {
	bit, err := redigo.Bool(b.client.ReadReplica().Do("GETBIT", key, offset))
	return bit, wrapError(err)
}

// BitCount returns the number of set bits in key.
func (b *Bitmaps) BitCount(key string) (int64, error) {
	n, err := redigo.Int64(b.client.ReadReplica().Do("BITCOUNT", key))
	return n, wrapError(err)
}

// BitCountRange returns the number of set bits within a byte range.
func (b *Bitmaps) BitCountRange(key string, start, end int64) (int64, error) {
	n, err := redigo.Int64(b.client.ReadReplica().Do("BITCOUNT", key, start, end))
	return n, wrapError(err)
}

// BitPos returns the position of the first bit with the given value, or
// -1 when no such bit exists.
func (b *Bitmaps) BitPos(key string, value bool) (int64, error) {
	bit := 0
	if value {
		bit = 1
	}

	n, err := redigo.Int64(b.client.ReadReplica().Do("BITPOS", key, bit))
	return n, wrapError(err)
}

// BitOpAnd stores the AND of keys in destination and returns the length
// of the result in bytes.
func (b *Bitmaps) BitOpAnd(destination string, keys ...string) (int64, error) {
	return b.bitOp("AND", destination, keys)
}

// BitOpOr stores the OR of keys in destination.
func (b *Bitmaps) BitOpOr(destination string, keys ...string) (int64, error) {
	return b.bitOp("OR", destination, keys)
}

// BitOpXor stores the XOR of keys in destination.
func (b *Bitmaps) BitOpXor(destination string, keys ...string) (int64, error) {
	return b.bitOp("XOR", destination, keys)
}

// BitOpNot stores the negation of key in destination.
func (b *Bitmaps) BitOpNot(destination, key string) (int64, error) {
	return b.bitOp("NOT", destination, []string{key})
}

func (b *Bitmaps) bitOp(op, destination string, keys []string) (int64, error) {
	n, err := redigo.Int64(b.client.Do("BITOP", redigo.Args{}.Add(op, destination).AddFlat(keys)...))
	return n, wrapError(err)
}
