package redis

import (
	redigo "github.com/gomodule/redigo/redis"
)

type (
	// Conn abstracts a single, feature-minimal connection to Redis.
	Conn interface {
		// Close the connection to the remote Redis server.
		Close() error

		// Do performs a command on the remote Redis server and returns
		// its result.
		Do(command string, args ...interface{}) (interface{}, error)

		// Send buffers a command to be sent to the remote Redis server
		// on the next call to Flush. Used for pipelines and MULTI/EXEC
		// sequences.
		Send(command string, args ...interface{}) error

		// Flush writes all buffered commands to the remote Redis server.
		Flush() error

		// Receive reads a single reply from the remote Redis server. One
		// reply is available for each command sent since the last Flush.
		Receive() (interface{}, error)
	}

	redigoShim struct {
		conn redigo.Conn
	}

	connErr struct{ error }

	// DialFunc creates a connection to Redis or returns an error.
	DialFunc func() (Conn, error)

	// DialerFactory creates a DialFunc from a set of candidate addresses.
	DialerFactory func(addrs []string) DialFunc
)

func makeDefaultDialerFactory(config *clientConfig) DialerFactory {
	return func(addrs []string) DialFunc {
		return func() (Conn, error) {
			conn, err := redigo.Dial(
				"tcp",
				chooseRandom(addrs),
				redigo.DialPassword(config.password),
				redigo.DialDatabase(config.database),
				redigo.DialConnectTimeout(config.connectTimeout),
				redigo.DialReadTimeout(config.readTimeout),
				redigo.DialWriteTimeout(config.writeTimeout),
			)

			if err != nil {
				return nil, err
			}

			return &redigoShim{conn}, nil
		}
	}
}

func (s *redigoShim) Close() error {
	return s.conn.Close()
}

func (s *redigoShim) Do(command string, args ...interface{}) (interface{}, error) {
	result, err := s.conn.Do(command, args...)
	return result, s.wrapError(err)
}

func (s *redigoShim) Send(command string, args ...interface{}) error {
	return s.wrapError(s.conn.Send(command, args...))
}

func (s *redigoShim) Flush() error {
	return s.wrapError(s.conn.Flush())
}

func (s *redigoShim) Receive() (interface{}, error) {
	result, err := s.conn.Receive()
	return result, s.wrapError(err)
}

func (s *redigoShim) wrapError(err error) error {
	// A server error reply does not poison the connection, but a protocol
	// or network error does. Wrap the latter so the client's retry loop
	// can distinguish a stale connection from a command failure.

	if s.conn.Err() != nil {
		return connErr{s.conn.Err()}
	}

	return err
}
