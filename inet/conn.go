package inet

import (
	"net"
	"sync"

	"gopkg.in/inconshreveable/log15.v2"
)

const (
	// readBufferSize is the size of the scratch buffer for one read.
	readBufferSize = 4096
)

var crlf = []byte("\r\n")

// Event is one unit handed from a connection to the server loop:
// either a complete frame with the delimiter stripped, or a terminal
// error after which the connection is dead and must be torn down.
type Event struct {
	ID   int
	Line string
	Err  error
}

// Conn wraps one accepted socket. A reader goroutine accumulates bytes
// and forwards complete frames over the server's event channel; a
// writer goroutine drains the outbound queue. Send never blocks: a
// connection whose queue exceeds the configured limit is disconnected
// rather than allowed to grow without bound.
type Conn struct {
	id    int
	conn  net.Conn
	queue Queue
	limit int

	wake chan struct{}
	quit chan struct{}
	once sync.Once

	log log15.Logger
}

// NewConn wraps an accepted socket. limit bounds the outbound queue in
// bytes; zero means unbounded.
func NewConn(id int, conn net.Conn, limit int, logger log15.Logger) *Conn {
	return &Conn{
		id:    id,
		conn:  conn,
		limit: limit,
		wake:  make(chan struct{}, 1),
		quit:  make(chan struct{}),
		log:   logger,
	}
}

// ID returns the stable handle of the connection.
func (c *Conn) ID() int {
	return c.id
}

// RemoteAddr names the peer for logging.
func (c *Conn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// Start spawns the reader and writer goroutines. Frames and the
// terminal read error are delivered to events in arrival order.
func (c *Conn) Start(events chan<- Event) {
	go c.reader(events)
	go c.writer()
}

// Send queues one line for writing, appending the CRLF delimiter. If
// the queue would exceed the configured limit the connection is closed;
// the peer is reading too slowly to keep.
func (c *Conn) Send(line string) {
	buf := make([]byte, 0, len(line)+2)
	buf = append(buf, line...)
	buf = append(buf, crlf...)

	total := c.queue.Enqueue(buf)
	if c.limit > 0 && total > c.limit {
		c.log.Warn("send queue limit exceeded, disconnecting", "id", c.id, "queued", total)
		c.Close()
		return
	}

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Close shuts the socket down. Safe to call more than once; the reader
// surfaces the close as a terminal Event so teardown happens exactly
// once, in the server loop.
func (c *Conn) Close() {
	c.once.Do(func() {
		close(c.quit)
		c.conn.Close()
	})
}

// reader performs bounded reads into a scratch buffer, appends to the
// frame accumulator and emits every complete frame before reading
// again, so a single read containing several queued commands processes
// all of them in order.
func (c *Conn) reader(events chan<- Event) {
	buf := make([]byte, readBufferSize)
	var acc []byte

	for {
		n, err := c.conn.Read(buf)
		if n > 0 {
			acc = append(acc, buf[:n]...)
			acc = extractFrames(acc, c.id, events)
		}
		if err != nil {
			events <- Event{ID: c.id, Err: err}
			return
		}
	}
}

// extractFrames splits the accumulator on CRLF pairs, emitting each
// complete frame and returning the unterminated remainder.
func extractFrames(acc []byte, id int, events chan<- Event) []byte {
	start := 0
	for i := 1; i < len(acc); i++ {
		if acc[i-1] == '\r' && acc[i] == '\n' {
			events <- Event{ID: id, Line: string(acc[start : i-1])}
			start = i + 1
		}
	}

	if start == 0 {
		return acc
	}
	rest := make([]byte, len(acc)-start)
	copy(rest, acc[start:])
	return rest
}

// writer drains the queue whenever woken, writing each line fully
// before the next. A write error closes the connection; the reader
// reports it.
func (c *Conn) writer() {
	for {
		select {
		case <-c.wake:
			if !c.drain() {
				return
			}
		case <-c.quit:
			return
		}
	}
}

func (c *Conn) drain() bool {
	for {
		msg := c.queue.Dequeue()
		if msg == nil {
			return true
		}

		for written := 0; written < len(msg); {
			n, err := c.conn.Write(msg[written:])
			if err != nil {
				c.log.Debug("write failed", "id", c.id, "err", err)
				c.Close()
				return false
			}
			written += n
		}
	}
}
