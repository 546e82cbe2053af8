package redis

import (
	"errors"
	"io"
	"time"

	"github.com/bradhe/stopwatch"
	"github.com/efritz/glock"
	"github.com/efritz/overcurrent"
)

type (
	// Client is a goroutine-safe, minimal, and pooled Redis client.
	Client interface {
		// Close will close all open connections to the remote Redis server.
		Close()

		// Do runs the command on the remote Redis server and returns its raw
		// response.
		Do(command string, args ...interface{}) (interface{}, error)

		// Pipeline returns a builder object to which commands can be
		// attached. All commands in the pipeline are sent to the remote
		// server in a single request and all results are returned in a
		// single response. A pipeline does NOT guarantee atomicity.
		Pipeline() Pipeline

		// Transaction runs several commands in a single connection,
		// bracketed by MULTI/EXEC so that they execute as one atomic
		// unit. The reply of each queued command is returned in order.
		Transaction(commands ...Command) ([]interface{}, error)

		// Eval invokes a Lua script on the remote server with the given
		// key and argument bindings. The script executes atomically. The
		// script is invoked by its SHA1 digest and the body is uploaded
		// transparently when the server does not know it yet.
		Eval(script *Script, keys []string, args ...interface{}) (interface{}, error)

		// ReadReplica returns a client that points to the set of
		// configured read replicas. If no read replicas are configured,
		// this returns the current client. The client returned from this
		// method does NOT need to be independently closed (closing the
		// source client will also close replica clients).
		ReadReplica() Client
	}

	// Command bundles a command name and its arguments for use in a
	// transaction.
	Command struct {
		Command string
		Args    []interface{}
	}

	client struct {
		pool              Pool
		borrowTimeout     *time.Duration
		logger            Logger
		readReplicaClient Client
	}

	clientConfig struct {
		password         string
		database         int
		connectTimeout   time.Duration
		readTimeout      time.Duration
		writeTimeout     time.Duration
		poolCapacity     int
		breakerFunc      BreakerFunc
		clock            glock.Clock
		borrowTimeout    *time.Duration
		logger           Logger
		readReplicaAddrs []string
		dialerFactory    DialerFactory
	}

	// ConfigFunc is a function used to initialize a new client.
	ConfigFunc func(*clientConfig)
)

// ErrNoConnection is returned when the borrow timeout elapses.
var ErrNoConnection = errors.New("no connection available in pool")

// NewClient creates a new Client.
func NewClient(addr string, configs ...ConfigFunc) Client {
	config := &clientConfig{
		password:       "",
		database:       0,
		connectTimeout: time.Second * 5,
		writeTimeout:   time.Second * 5,
		readTimeout:    time.Second * 5,
		poolCapacity:   10,
		breakerFunc:    noopBreakerFunc,
		clock:          glock.NewRealClock(),
		borrowTimeout:  nil,
		logger:         &defaultLogger{},
	}

	for _, f := range configs {
		f(config)
	}

	if config.dialerFactory == nil {
		config.dialerFactory = makeDefaultDialerFactory(config)
	}

	c := newClientForAddrs([]string{addr}, config)

	if len(config.readReplicaAddrs) > 0 {
		c.readReplicaClient = newClientForAddrs(config.readReplicaAddrs, config)
	}

	return c
}

func newClientForAddrs(addrs []string, config *clientConfig) *client {
	return &client{
		pool: NewPool(
			config.dialerFactory(addrs),
			config.poolCapacity,
			config.logger,
			config.breakerFunc,
			config.clock,
		),
		borrowTimeout: config.borrowTimeout,
		logger:        config.logger,
	}
}

// WithPassword sets the password (default is "").
func WithPassword(password string) ConfigFunc {
	return func(c *clientConfig) { c.password = password }
}

// WithDatabase sets the database index (default is 0).
func WithDatabase(database int) ConfigFunc {
	return func(c *clientConfig) { c.database = database }
}

// WithConnectTimeout sets the connect timeout for new connections
// (default is 5 seconds).
func WithConnectTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.connectTimeout = timeout }
}

// WithReadTimeout sets the read timeout for all connections in the
// pool (default is 5 seconds).
func WithReadTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.readTimeout = timeout }
}

// WithWriteTimeout sets the write timeout for all connections in the
// pool (default is 5 seconds).
func WithWriteTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.writeTimeout = timeout }
}

// WithPoolCapacity sets the maximum number of concurrent connections
// that can be in use at once (default is 10).
func WithPoolCapacity(capacity int) ConfigFunc {
	return func(c *clientConfig) { c.poolCapacity = capacity }
}

// WithBreaker sets the circuit breaker instance to use around new
// connections. The default uses a no-op circuit breaker.
func WithBreaker(breaker overcurrent.CircuitBreaker) ConfigFunc {
	return func(c *clientConfig) { c.breakerFunc = breaker.Call }
}

// WithBreakerRegistry sets the overcurrent registry to use and the
// name of the circuit breaker config to use around new connections.
// The default uses a no-op circuit breaker.
func WithBreakerRegistry(registry overcurrent.Registry, name string) ConfigFunc {
	return func(c *clientConfig) {
		c.breakerFunc = func(f overcurrent.BreakerFunc) error {
			return registry.Call(name, f, nil)
		}
	}
}

// WithBorrowTimeout sets the maximum time a caller may block waiting
// for a pooled connection. Expiry surfaces as ErrNoConnection.
func WithBorrowTimeout(timeout time.Duration) ConfigFunc {
	return func(c *clientConfig) { c.borrowTimeout = &timeout }
}

// WithReadReplicaAddrs sets the addresses of read replicas. When
// configured, ReadReplica returns a client that issues commands to a
// randomly chosen replica address.
func WithReadReplicaAddrs(addrs ...string) ConfigFunc {
	return func(c *clientConfig) { c.readReplicaAddrs = addrs }
}

// WithDialerFactory sets the factory that creates the dial function
// for a set of addresses. Used by tests to stub the network.
func WithDialerFactory(factory DialerFactory) ConfigFunc {
	return func(c *clientConfig) { c.dialerFactory = factory }
}

// WithLogger sets the logger instance (the default will use Go's
// builtin logging library).
func WithLogger(logger Logger) ConfigFunc {
	return func(c *clientConfig) { c.logger = logger }
}

func withClock(clock glock.Clock) ConfigFunc {
	return func(c *clientConfig) { c.clock = clock }
}

// NewCommand creates a Command instance.
func NewCommand(command string, args ...interface{}) Command {
	return Command{
		Command: command,
		Args:    args,
	}
}

//
// Client Implementation

func (c *client) Close() {
	if c.readReplicaClient != nil {
		c.readReplicaClient.Close()
	}

	c.pool.Close()
}

func (c *client) ReadReplica() Client {
	if c.readReplicaClient != nil {
		return c.readReplicaClient
	}

	return c
}

func (c *client) Do(command string, args ...interface{}) (interface{}, error) {
	conn, ok := c.timedBorrow()
	if !ok {
		return nil, ErrNoConnection
	}

	result, err := c.doWithConn(conn, command, args)

	if err != nil && shouldRetry(err) {
		// The TCP connection to the remote Redis server may have been
		// reaped by a proxy (depending on your network topology). If
		// we have an IO error, we can try again.
		c.logger.Printf("Connection from pool was stale, retrying")
		return c.Do(command, args...)
	}

	return result, err
}

func (c *client) Pipeline() Pipeline {
	return newPipeline(c)
}

func (c *client) Transaction(commands ...Command) ([]interface{}, error) {
	conn, ok := c.timedBorrow()
	if !ok {
		return nil, ErrNoConnection
	}

	if err := conn.Send("MULTI"); err != nil {
		// Ensure connection is released after MULTI error
		c.release(conn, err)

		if shouldRetry(err) {
			c.logger.Printf("Connection from pool was stale, retrying")
			return c.Transaction(commands...)
		}

		return nil, err
	}

	// After this point if we get an error we immediately return. We can't
	// safely retry anything after we've sent the MULTI as pipelined commands
	// aren't really atomic.

	for _, command := range commands {
		if err := conn.Send(command.Command, command.Args...); err != nil {
			c.release(conn, err)
			return nil, err
		}
	}

	result, err := c.doWithConn(conn, "EXEC", nil)
	if err != nil {
		return nil, err
	}

	if result == nil {
		// The server discarded the queue (a watched key changed). No
		// command ran, so there are no partial results to report.
		return nil, NewError(KindValidation, "transaction aborted")
	}

	replies, ok := result.([]interface{})
	if !ok {
		return nil, NewError(KindConnection, "unexpected EXEC reply of type %T", result)
	}

	return replies, nil
}

func (c *client) Eval(script *Script, keys []string, args ...interface{}) (interface{}, error) {
	result, err := c.Do("EVALSHA", script.invocationArgs(true, keys, args)...)

	if isNoScript(err) {
		// First use of this script body on this server. EVAL uploads the
		// body as a side effect, so subsequent EVALSHA calls will hit.
		result, err = c.Do("EVAL", script.invocationArgs(false, keys, args)...)
	}

	return result, err
}

//
// Client Helper Functions

// Send every pipelined command on one connection, flush the buffer, and
// read one reply per command. Replies of ignored commands are read off the
// wire (the protocol requires it) but excluded from the returned slice.
// Server error replies occupy their slot; connection errors abort the run.
func (c *client) pipeline(commands []pipelineCommand) ([]interface{}, error) {
	conn, ok := c.timedBorrow()
	if !ok {
		return nil, ErrNoConnection
	}

	for _, command := range commands {
		if err := conn.Send(command.command, command.args...); err != nil {
			c.release(conn, err)

			if shouldRetry(err) {
				c.logger.Printf("Connection from pool was stale, retrying")
				return c.pipeline(commands)
			}

			return nil, err
		}
	}

	if err := conn.Flush(); err != nil {
		// A failed flush may still have delivered part of the buffer, and
		// pipelined commands are not generally idempotent. Unlike a send
		// failure (nothing left the client yet) this cannot be retried.
		c.release(conn, err)
		return nil, err
	}

	// After this point we do not retry: some of the commands may already
	// have executed on the server.

	results := make([]interface{}, 0, len(commands))

	for _, command := range commands {
		reply, err := conn.Receive()

		if err != nil {
			if !isReplyError(err) {
				c.release(conn, err)
				return nil, err
			}

			// The command failed on the server but the connection is
			// healthy. The error stands in for the command's result.
			reply = err
		}

		if !command.ignore {
			results = append(results, reply)
		}
	}

	c.release(conn, nil)
	return results, nil
}

// Invoke a command and release the connection back to the pool.
func (c *client) doWithConn(conn Conn, command string, args []interface{}) (interface{}, error) {
	result, err := conn.Do(command, args...)
	c.release(conn, err)
	return result, err
}

// Borrows and logs the time it took to return from blocking on the
// pool's borrow method.
func (c *client) timedBorrow() (Conn, bool) {
	start := stopwatch.Start()
	conn, ok := c.borrow()
	elapsed := start.Stop().Milliseconds()

	if ok {
		c.logger.Printf("Received connection after %vms", elapsed)
	} else {
		c.logger.Printf("Could not borrow connection after %vms", elapsed)
	}

	return conn, ok
}

// Borrows from the pool using the correct method (depending on if
// a borrow timeout was configured on this client).
func (c *client) borrow() (Conn, bool) {
	if c.borrowTimeout == nil {
		return c.pool.Borrow()
	}

	return c.pool.BorrowTimeout(*c.borrowTimeout)
}

// Close the connection on error and release it back to the pool.
// Bad connections never go back to the pool, so in the case that
// there was an error we return nil (if we do not do this on some
// code path then the capacity of the pool permanently decreases).
// A server error reply leaves the connection healthy, so it is
// returned to the pool intact.
func (c *client) release(conn Conn, err error) {
	if err != nil && !isReplyError(err) {
		conn.Close()
		conn = nil
	}

	c.pool.Release(conn)
}

// Given an error, determine if we should try to re-invoke the
// command on another (possibly fresh) connection.
func shouldRetry(err error) bool {
	if _, ok := err.(connErr); ok {
		return true
	}

	return err == io.EOF || err == io.ErrUnexpectedEOF
}
