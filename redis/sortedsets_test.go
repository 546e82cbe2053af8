package redis

import (
	"github.com/aphistic/sweet"
	. "github.com/onsi/gomega"
)

type SortedSetsSuite struct{}

func (s *SortedSetsSuite) TestZAdd(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return int64(2), nil
	}

	added, err := makeStore(conn).SortedSets.ZAdd(
		"board",
		MemberScore{Member: "alice", Score: 1.5},
		MemberScore{Member: "bob", Score: 2.5},
	)

	Expect(err).To(BeNil())
	Expect(added).To(Equal(int64(2)))
	Expect(conn.DoFuncCallParams[0].Arg0).To(Equal("ZADD"))
	Expect(conn.DoFuncCallParams[0].Arg1).To(Equal([]interface{}{"board", 1.5, "alice", 2.5, "bob"}))
}

func (s *SortedSetsSuite) TestZRangeWithScores(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return []interface{}{
			[]byte("alice"), []byte("1.5"),
			[]byte("bob"), []byte("2"),
		}, nil
	}

	scored, err := makeStore(conn).SortedSets.ZRangeWithScores("board", 0, -1)
	Expect(err).To(BeNil())
	Expect(scored).To(Equal([]MemberScore{
		{Member: "alice", Score: 1.5},
		{Member: "bob", Score: 2},
	}))

	Expect(conn.DoFuncCallParams[0].Arg0).To(Equal("ZRANGE"))
	Expect(conn.DoFuncCallParams[0].Arg1).To(Equal([]interface{}{"board", int64(0), int64(-1), "WITHSCORES"}))
}

func (s *SortedSetsSuite) TestZRangeWithScoresOddReply(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return []interface{}{[]byte("alice"), []byte("1.5"), []byte("bob")}, nil
	}

	_, err := makeStore(conn).SortedSets.ZRangeWithScores("board", 0, -1)
	Expect(err).NotTo(BeNil())
	Expect(KindOf(err)).To(Equal(KindConnection))
}

func (s *SortedSetsSuite) TestZRangeWithScoresBadScore(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return []interface{}{[]byte("alice"), []byte("not-a-float")}, nil
	}

	_, err := makeStore(conn).SortedSets.ZRangeWithScores("board", 0, -1)
	Expect(err).NotTo(BeNil())
}

func (s *SortedSetsSuite) TestZScoreAbsentMember(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return nil, nil
	}

	score, err := makeStore(conn).SortedSets.ZScore("board", "nobody")
	Expect(err).To(BeNil())
	Expect(score).To(BeNil())
}

func (s *SortedSetsSuite) TestZRank(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return int64(3), nil
	}

	rank, err := makeStore(conn).SortedSets.ZRank("board", "alice")
	Expect(err).To(BeNil())
	Expect(rank).NotTo(BeNil())
	Expect(*rank).To(Equal(int64(3)))
	Expect(conn.DoFuncCallParams[0].Arg1).To(Equal([]interface{}{"board", "alice"}))
}

func (s *SortedSetsSuite) TestZRangeByScoreLimit(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return []interface{}{[]byte("bob")}, nil
	}

	members, err := makeStore(conn).SortedSets.ZRangeByScoreLimit("board", 1, 10, 5, 1)
	Expect(err).To(BeNil())
	Expect(members).To(Equal([]string{"bob"}))
	Expect(conn.DoFuncCallParams[0].Arg0).To(Equal("ZRANGEBYSCORE"))
	Expect(conn.DoFuncCallParams[0].Arg1).To(Equal([]interface{}{
		"board", float64(1), float64(10), "LIMIT", int64(5), int64(1),
	}))
}

func (s *SortedSetsSuite) TestZAddMany(t sweet.T) {
	var (
		conn    = NewMockConn()
		replies = []interface{}{int64(2), int64(0)}
		index   = 0
	)

	conn.ReceiveFunc = func() (interface{}, error) {
		reply := replies[index]
		index++
		return reply, nil
	}

	counts, err := makeStore(conn).SortedSets.ZAddMany([]SortedSetWrite{
		{Key: "b1", Members: []MemberScore{{Member: "alice", Score: 1}, {Member: "bob", Score: 2}}},
		{Key: "b2", Members: []MemberScore{{Member: "alice", Score: 1}}},
	})

	Expect(err).To(BeNil())
	Expect(counts).To(Equal([]int64{2, 0}))
	Expect(conn.SendFuncCallParams[0].Arg0).To(Equal("ZADD"))
	Expect(conn.SendFuncCallParams[0].Arg1).To(Equal([]interface{}{"b1", float64(1), "alice", float64(2), "bob"}))
	Expect(conn.SendFuncCallParams[1].Arg1).To(Equal([]interface{}{"b2", float64(1), "alice"}))
}

func (s *SortedSetsSuite) TestZScoreMany(t sweet.T) {
	var (
		conn    = NewMockConn()
		replies = []interface{}{[]byte("1.5"), nil, []byte("3")}
		index   = 0
	)

	conn.ReceiveFunc = func() (interface{}, error) {
		reply := replies[index]
		index++
		return reply, nil
	}

	scores, err := makeStore(conn).SortedSets.ZScoreMany([]KeyMember{
		{Key: "b1", Member: "alice"},
		{Key: "b1", Member: "nobody"},
		{Key: "b2", Member: "bob"},
	})

	Expect(err).To(BeNil())
	Expect(scores).To(HaveLen(3))
	Expect(*scores[0]).To(Equal(1.5))
	Expect(scores[1]).To(BeNil())
	Expect(*scores[2]).To(Equal(float64(3)))
	Expect(conn.SendFuncCallParams[1].Arg1).To(Equal([]interface{}{"b1", "nobody"}))
}

func (s *SortedSetsSuite) TestZCardMany(t sweet.T) {
	var (
		conn    = NewMockConn()
		replies = []interface{}{int64(4), int64(0)}
		index   = 0
	)

	conn.ReceiveFunc = func() (interface{}, error) {
		reply := replies[index]
		index++
		return reply, nil
	}

	counts, err := makeStore(conn).SortedSets.ZCardMany([]string{"b1", "missing"})
	Expect(err).To(BeNil())
	Expect(counts).To(Equal([]int64{4, 0}))
	Expect(conn.SendFuncCallParams[0].Arg1).To(Equal([]interface{}{"b1"}))
	Expect(conn.SendFuncCallParams[1].Arg1).To(Equal([]interface{}{"missing"}))
}

func (s *SortedSetsSuite) TestZInterStore(t sweet.T) {
	conn := NewMockConn()
	conn.DoFunc = func(command string, args ...interface{}) (interface{}, error) {
		return int64(3), nil
	}

	size, err := makeStore(conn).SortedSets.ZInterStore("dst", "b1", "b2")
	Expect(err).To(BeNil())
	Expect(size).To(Equal(int64(3)))
	Expect(conn.DoFuncCallParams[0].Arg0).To(Equal("ZINTERSTORE"))
	Expect(conn.DoFuncCallParams[0].Arg1).To(Equal([]interface{}{"dst", 2, "b1", "b2"}))
}
