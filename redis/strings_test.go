package redis

import (
	"github.com/aphistic/sweet"
	redigo "github.com/gomodule/redigo/redis"
	. "github.com/onsi/gomega"
)

type StringsSuite struct{}

func (s *StringsSuite) TestGet(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return []byte("bar"), nil
	}

	value, err := makeStore(conn).Strings.Get("foo")
	Expect(err).To(BeNil())
	Expect(value).NotTo(BeNil())
	Expect(*value).To(Equal("bar"))
	Expect(conn.DoFuncCallParams[0].Arg0).To(Equal("GET"))
	Expect(conn.DoFuncCallParams[0].Arg1).To(Equal([]interface{}{"foo"}))
}

func (s *StringsSuite) TestGetAbsentKey(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return nil, nil
	}

	// An absent key is nil, not an empty string
	value, err := makeStore(conn).Strings.Get("foo")
	Expect(err).To(BeNil())
	Expect(value).To(BeNil())
}

func (s *StringsSuite) TestSetWithExpiry(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return "OK", nil
	}

	err := makeStore(conn).Strings.SetWithExpiry("foo", "bar", 30)
	Expect(err).To(BeNil())
	Expect(conn.DoFuncCallParams[0].Arg0).To(Equal("SETEX"))
	Expect(conn.DoFuncCallParams[0].Arg1).To(Equal([]interface{}{"foo", 30, "bar"}))
}

func (s *StringsSuite) TestTTLSentinels(t sweet.T) {
	var (
		conn    = NewMockConn()
		replies = []interface{}{int64(-1), int64(-2)}
		index   = 0
	)

	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		reply := replies[index]
		index++
		return reply, nil
	}

	store := makeStore(conn)

	// -1 (no expiry) and -2 (absent key) pass through unchanged
	ttl, err := store.Strings.TTL("persistent")
	Expect(err).To(BeNil())
	Expect(ttl).To(Equal(int64(-1)))

	ttl, err = store.Strings.TTL("missing")
	Expect(err).To(BeNil())
	Expect(ttl).To(Equal(int64(-2)))
}

func (s *StringsSuite) TestGetSet(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return []byte("old"), nil
	}

	previous, err := makeStore(conn).Strings.GetSet("foo", "new")
	Expect(err).To(BeNil())
	Expect(previous).NotTo(BeNil())
	Expect(*previous).To(Equal("old"))

	Expect(conn.DoFuncCallParams[0].Arg0).To(Equal("EVALSHA"))
	Expect(conn.DoFuncCallParams[0].Arg1).To(Equal([]interface{}{
		GetSetScript.Hash(), 1, "foo", "new",
	}))
}

func (s *StringsSuite) TestSetIfNotExists(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return int64(1), nil
	}

	ok, err := makeStore(conn).Strings.SetIfNotExists("foo", "bar", 0)
	Expect(err).To(BeNil())
	Expect(ok).To(BeTrue())

	// A zero TTL is encoded as an empty string meaning "no expiry"
	Expect(conn.DoFuncCallParams[0].Arg1).To(Equal([]interface{}{
		SetIfNotExistsScript.Hash(), 1, "foo", "bar", "",
	}))
}

func (s *StringsSuite) TestSetIfNotExistsWithTTL(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return int64(0), nil
	}

	ok, err := makeStore(conn).Strings.SetIfNotExists("foo", "bar", 30)
	Expect(err).To(BeNil())
	Expect(ok).To(BeFalse())

	Expect(conn.DoFuncCallParams[0].Arg1).To(Equal([]interface{}{
		SetIfNotExistsScript.Hash(), 1, "foo", "bar", "30",
	}))
}

func (s *StringsSuite) TestCompareAndSet(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return int64(1), nil
	}

	ok, err := makeStore(conn).Strings.CompareAndSet("foo", "old", "new", 0)
	Expect(err).To(BeNil())
	Expect(ok).To(BeTrue())

	Expect(conn.DoFuncCallParams[0].Arg1).To(Equal([]interface{}{
		CompareAndSetScript.Hash(), 1, "foo", "old", "new", "",
	}))
}

func (s *StringsSuite) TestGetMany(t sweet.T) {
	var (
		conn    = NewMockConn()
		replies = []interface{}{[]byte("v1"), nil, []byte("v3")}
		index   = 0
	)

	conn.ReceiveFunc = func() (interface{}, error) {
		reply := replies[index]
		index++
		return reply, nil
	}

	values, err := makeStore(conn).Strings.GetMany([]string{"a", "b", "c"})
	Expect(err).To(BeNil())
	Expect(values).To(HaveLen(3))

	// Result slots correspond positionally to the requested keys and
	// absent keys yield nil slots
	Expect(*values[0]).To(Equal("v1"))
	Expect(values[1]).To(BeNil())
	Expect(*values[2]).To(Equal("v3"))

	Expect(conn.SendFuncCallParams[0].Arg1).To(Equal([]interface{}{"a"}))
	Expect(conn.SendFuncCallParams[1].Arg1).To(Equal([]interface{}{"b"}))
	Expect(conn.SendFuncCallParams[2].Arg1).To(Equal([]interface{}{"c"}))
}

func (s *StringsSuite) TestGetManyReplyError(t sweet.T) {
	var (
		conn  = NewMockConn()
		index = 0
	)

	conn.ReceiveFunc = func() (interface{}, error) {
		index++
		if index == 2 {
			return nil, redigo.Error("WRONGTYPE Operation against a key holding the wrong kind of value")
		}

		return []byte("v"), nil
	}

	_, err := makeStore(conn).Strings.GetMany([]string{"a", "b", "c"})
	Expect(err).NotTo(BeNil())
	Expect(KindOf(err)).To(Equal(KindTypeMismatch))
}

func (s *StringsSuite) TestSetMany(t sweet.T) {
	var (
		conn  = NewMockConn()
		index = 0
	)

	conn.ReceiveFunc = func() (interface{}, error) {
		index++
		return "OK", nil
	}

	err := makeStore(conn).Strings.SetMany([]KeyValue{
		{Key: "a", Value: "1"},
		{Key: "b", Value: "2"},
	})

	Expect(err).To(BeNil())
	Expect(conn.SendFuncCallCount).To(Equal(2))
	Expect(conn.SendFuncCallParams[0].Arg0).To(Equal("SET"))
	Expect(conn.SendFuncCallParams[0].Arg1).To(Equal([]interface{}{"a", "1"}))
	Expect(conn.SendFuncCallParams[1].Arg1).To(Equal([]interface{}{"b", "2"}))

	// Write replies are read but discarded
	Expect(index).To(Equal(2))
}

func (s *StringsSuite) TestIncrManyBy(t sweet.T) {
	var (
		conn    = NewMockConn()
		replies = []interface{}{int64(5), int64(-2)}
		index   = 0
	)

	conn.ReceiveFunc = func() (interface{}, error) {
		reply := replies[index]
		index++
		return reply, nil
	}

	values, err := makeStore(conn).Strings.IncrManyBy([]KeyDelta{
		{Key: "a", Delta: 5},
		{Key: "b", Delta: -2},
	})

	Expect(err).To(BeNil())
	Expect(values).To(Equal([]int64{5, -2}))
	Expect(conn.SendFuncCallParams[0].Arg0).To(Equal("INCRBY"))
	Expect(conn.SendFuncCallParams[0].Arg1).To(Equal([]interface{}{"a", int64(5)}))
	Expect(conn.SendFuncCallParams[1].Arg1).To(Equal([]interface{}{"b", int64(-2)}))
}
