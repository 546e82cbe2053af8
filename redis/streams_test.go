package redis

import (
	"github.com/aphistic/sweet"
	. "github.com/onsi/gomega"
)

type StreamsSuite struct{}

func (s *StreamsSuite) TestXAdd(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return []byte("1692000000000-0"), nil
	}

	id, err := makeStore(conn).Streams.XAdd("events", []FieldValue{
		{Field: "type", Value: "click"},
		{Field: "page", Value: "/home"},
	})

	Expect(err).To(BeNil())
	Expect(id).To(Equal("1692000000000-0"))
	Expect(conn.DoFuncCallParams[0].Arg0).To(Equal("XADD"))
	Expect(conn.DoFuncCallParams[0].Arg1).To(Equal([]interface{}{
		"events", "*", "type", "click", "page", "/home",
	}))
}

func (s *StreamsSuite) TestXAddWithID(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return []byte("5-1"), nil
	}

	id, err := makeStore(conn).Streams.XAddWithID("events", "5-1", []FieldValue{
		{Field: "type", Value: "click"},
	})

	Expect(err).To(BeNil())
	Expect(id).To(Equal("5-1"))
	Expect(conn.DoFuncCallParams[0].Arg1).To(Equal([]interface{}{"events", "5-1", "type", "click"}))
}

func (s *StreamsSuite) TestXRange(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return []interface{}{
			[]interface{}{
				[]byte("1-1"),
				[]interface{}{[]byte("type"), []byte("click"), []byte("page"), []byte("/home")},
			},
			[]interface{}{
				[]byte("2-1"),
				[]interface{}{[]byte("type"), []byte("view")},
			},
		}, nil
	}

	entries, err := makeStore(conn).Streams.XRange("events", "-", "+")
	Expect(err).To(BeNil())
	Expect(entries).To(Equal([]StreamEntry{
		{ID: "1-1", Fields: map[string]string{"type": "click", "page": "/home"}},
		{ID: "2-1", Fields: map[string]string{"type": "view"}},
	}))

	Expect(conn.DoFuncCallParams[0].Arg0).To(Equal("XRANGE"))
	Expect(conn.DoFuncCallParams[0].Arg1).To(Equal([]interface{}{"events", "-", "+"}))
}

func (s *StreamsSuite) TestXRangeMalformedEntry(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return []interface{}{
			[]interface{}{[]byte("1-1")},
		}, nil
	}

	_, err := makeStore(conn).Streams.XRange("events", "-", "+")
	Expect(err).NotTo(BeNil())
	Expect(KindOf(err)).To(Equal(KindConnection))
}

func (s *StreamsSuite) TestXReadNilReply(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return nil, nil
	}

	entries, err := makeStore(conn).Streams.XRead("events", "0", 10)
	Expect(err).To(BeNil())
	Expect(entries).NotTo(BeNil())
	Expect(entries).To(BeEmpty())
	Expect(conn.DoFuncCallParams[0].Arg0).To(Equal("XREAD"))
	Expect(conn.DoFuncCallParams[0].Arg1).To(Equal([]interface{}{"COUNT", 10, "STREAMS", "events", "0"}))
}

func (s *StreamsSuite) TestXReadEmptyStreamList(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return []interface{}{}, nil
	}

	entries, err := makeStore(conn).Streams.XRead("events", "0", 10)
	Expect(err).To(BeNil())
	Expect(entries).To(BeEmpty())
}

func (s *StreamsSuite) TestXRead(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return []interface{}{
			[]interface{}{
				[]byte("events"),
				[]interface{}{
					[]interface{}{
						[]byte("3-1"),
						[]interface{}{[]byte("type"), []byte("click")},
					},
				},
			},
		}, nil
	}

	entries, err := makeStore(conn).Streams.XRead("events", "2-1", 10)
	Expect(err).To(BeNil())
	Expect(entries).To(Equal([]StreamEntry{
		{ID: "3-1", Fields: map[string]string{"type": "click"}},
	}))
}

func (s *StreamsSuite) TestXDel(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return int64(2), nil
	}

	removed, err := makeStore(conn).Streams.XDel("events", "1-1", "2-1")
	Expect(err).To(BeNil())
	Expect(removed).To(Equal(int64(2)))
	Expect(conn.DoFuncCallParams[0].Arg1).To(Equal([]interface{}{"events", "1-1", "2-1"}))
}

func (s *StreamsSuite) TestXTrimMaxLen(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return int64(5), nil
	}

	removed, err := makeStore(conn).Streams.XTrimMaxLen("events", 1000)
	Expect(err).To(BeNil())
	Expect(removed).To(Equal(int64(5)))
	Expect(conn.DoFuncCallParams[0].Arg1).To(Equal([]interface{}{"events", "MAXLEN", int64(1000)}))
}
