package redis

import (
	"io"

	"github.com/aphistic/sweet"
	redigo "github.com/gomodule/redigo/redis"
	. "github.com/onsi/gomega"
)

type PipelineSuite struct{}

func (s *PipelineSuite) TestRun(t sweet.T) {
	var (
		pool     = NewMockPool()
		conn     = NewMockConn()
		released = make(chan Conn, 1)
		replies  = []interface{}{"r1", "r2", "r3"}
		index    = 0
		c        = makeClient(pool, nil)
	)

	defer close(released)

	pool.BorrowFunc = func() (Conn, bool) {
		return conn, true
	}

	pool.ReleaseFunc = func(conn Conn) {
		released <- conn
	}

	conn.ReceiveFunc = func() (interface{}, error) {
		reply := replies[index]
		index++
		return reply, nil
	}

	pipeline := c.Pipeline()
	pipeline.Add("foo", 1, 2, 3)
	pipeline.Add("bar", 2, 3, 4)
	pipeline.Add("baz", 3, 4, 5)

	results, err := pipeline.Run()
	Expect(err).To(BeNil())
	Expect(results).To(Equal([]interface{}{"r1", "r2", "r3"}))

	// One buffered write per command, one flush, one read per command
	Expect(conn.SendFuncCallCount).To(Equal(3))
	Expect(conn.SendFuncCallParams[0].Arg0).To(Equal("foo"))
	Expect(conn.SendFuncCallParams[1].Arg0).To(Equal("bar"))
	Expect(conn.SendFuncCallParams[2].Arg0).To(Equal("baz"))
	Expect(conn.FlushFuncCallCount).To(Equal(1))
	Expect(conn.ReceiveFuncCallCount).To(Equal(3))
	Expect(released).To(Receive(Equal(conn)))
}

func (s *PipelineSuite) TestRunEmpty(t sweet.T) {
	var (
		pool = NewMockPool()
		c    = makeClient(pool, nil)
	)

	results, err := c.Pipeline().Run()
	Expect(err).To(BeNil())
	Expect(results).To(BeNil())

	// Nothing borrowed for an empty pipeline
	Expect(pool.BorrowFuncCallCount).To(Equal(0))
}

func (s *PipelineSuite) TestRunIgnoredCommands(t sweet.T) {
	var (
		pool    = NewMockPool()
		conn    = NewMockConn()
		replies = []interface{}{"OK", "value", "OK"}
		index   = 0
		c       = makeClient(pool, nil)
	)

	pool.BorrowFunc = func() (Conn, bool) {
		return conn, true
	}

	conn.ReceiveFunc = func() (interface{}, error) {
		reply := replies[index]
		index++
		return reply, nil
	}

	pipeline := c.Pipeline()
	pipeline.AddIgnore("SET", "a", "1")
	pipeline.Add("GET", "a")
	pipeline.AddIgnore("SET", "b", "2")

	results, err := pipeline.Run()
	Expect(err).To(BeNil())
	Expect(results).To(Equal([]interface{}{"value"}))

	// Replies of ignored commands are still read off the wire
	Expect(conn.ReceiveFuncCallCount).To(Equal(3))
}

func (s *PipelineSuite) TestRunReplyErrorFillsSlot(t sweet.T) {
	var (
		pool     = NewMockPool()
		conn     = NewMockConn()
		released = make(chan Conn, 1)
		index    = 0
		c        = makeClient(pool, nil)
	)

	defer close(released)

	pool.BorrowFunc = func() (Conn, bool) {
		return conn, true
	}

	pool.ReleaseFunc = func(conn Conn) {
		released <- conn
	}

	conn.ReceiveFunc = func() (interface{}, error) {
		index++
		if index == 2 {
			return nil, redigo.Error("WRONGTYPE Operation against a key holding the wrong kind of value")
		}

		return "ok", nil
	}

	pipeline := c.Pipeline()
	pipeline.Add("GET", "a")
	pipeline.Add("INCR", "some-hash")
	pipeline.Add("GET", "b")

	results, err := pipeline.Run()
	Expect(err).To(BeNil())
	Expect(results).To(HaveLen(3))
	Expect(results[0]).To(Equal("ok"))
	Expect(results[2]).To(Equal("ok"))

	// The failed command's slot holds its error; siblings are unaffected
	// and the connection goes back to the pool intact.
	_, ok := results[1].(redigo.Error)
	Expect(ok).To(BeTrue())
	Expect(released).To(Receive(Equal(conn)))
}

func (s *PipelineSuite) TestRunConnectionErrorAborts(t sweet.T) {
	var (
		pool     = NewMockPool()
		conn     = NewMockConn()
		released = make(chan Conn, 1)
		c        = makeClient(pool, nil)
	)

	defer close(released)

	pool.BorrowFunc = func() (Conn, bool) {
		return conn, true
	}

	pool.ReleaseFunc = func(conn Conn) {
		released <- conn
	}

	conn.ReceiveFunc = func() (interface{}, error) {
		return nil, io.EOF
	}

	pipeline := c.Pipeline()
	pipeline.Add("GET", "a")
	pipeline.Add("GET", "b")

	// After the flush some commands may have executed, so a dead
	// connection mid-read cannot be retried.
	_, err := pipeline.Run()
	Expect(err).To(Equal(io.EOF))
	Expect(pool.BorrowFuncCallCount).To(Equal(1))
	Eventually(released).Should(Receive(BeNil()))
}

func (s *PipelineSuite) TestRunFlushErrorDoesNotRetry(t sweet.T) {
	var (
		pool     = NewMockPool()
		conn     = NewMockConn()
		released = make(chan Conn, 1)
		c        = makeClient(pool, nil)
	)

	defer close(released)

	pool.BorrowFunc = func() (Conn, bool) {
		return conn, true
	}

	pool.ReleaseFunc = func(conn Conn) {
		released <- conn
	}

	conn.FlushFunc = func() error {
		return connErr{io.EOF}
	}

	pipeline := c.Pipeline()
	pipeline.Add("INCR", "counter")
	pipeline.Add("SETEX", "session", 30, "token")

	// Part of the buffer may have reached the server before the
	// connection died, so a stale connection at flush time surfaces the
	// error instead of re-running the commands on a fresh connection.
	_, err := pipeline.Run()
	Expect(err).To(Equal(connErr{io.EOF}))
	Expect(pool.BorrowFuncCallCount).To(Equal(1))
	Expect(conn.SendFuncCallCount).To(Equal(2))
	Eventually(released).Should(Receive(BeNil()))
}

func (s *PipelineSuite) TestRunRetryableSendError(t sweet.T) {
	var (
		pool        = NewMockPool()
		conn1       = NewMockConn()
		conn2       = NewMockConn()
		borrowCount = 0
		released    = make(chan Conn, 2)
		c           = makeClient(pool, nil)
	)

	defer close(released)

	pool.BorrowFunc = func() (Conn, bool) {
		c := []Conn{conn1, conn2}[borrowCount]
		borrowCount++
		return c, true
	}

	pool.ReleaseFunc = func(conn Conn) {
		released <- conn
	}

	conn1.SendFunc = func(command string, args ...interface{}) error {
		return connErr{io.EOF}
	}

	conn2.ReceiveFunc = func() (interface{}, error) {
		return "ok", nil
	}

	pipeline := c.Pipeline()
	pipeline.Add("GET", "a")

	results, err := pipeline.Run()
	Expect(err).To(BeNil())
	Expect(results).To(Equal([]interface{}{"ok"}))
	Eventually(released).Should(Receive(BeNil()))
	Eventually(released).Should(Receive(Equal(conn2)))
}

func (s *PipelineSuite) TestRunNoConnection(t sweet.T) {
	var (
		pool = NewMockPool()
		c    = makeClient(pool, nil)
	)

	pipeline := c.Pipeline()
	pipeline.Add("GET", "a")

	_, err := pipeline.Run()
	Expect(err).To(Equal(ErrNoConnection))
}
