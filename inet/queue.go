/*
Package inet handles the socket side of one client connection: reading
bytes into a frame accumulator, splitting on CRLF pairs, and draining
a bounded outbound queue back to the socket.
*/
package inet

import (
	"sync"
)

// queueNode is the node structure underneath the Queue type.
type queueNode struct {
	next *queueNode
	data []byte
}

// Queue implements a singly-linked queue of outbound lines. It keeps a
// running byte total so the owning connection can bound how much a slow
// consumer is allowed to buffer. Due to the intention of having
// goroutines access it, it's sync-locked. It is not meant to be used as
// a generic re-usable container.
type Queue struct {
	front  *queueNode
	back   *queueNode
	length int
	bytes  int
	mutex  sync.Mutex
}

// Enqueue copies the byte slice (the caller may reuse its buffer) and
// appends it, returning the new byte total.
func (q *Queue) Enqueue(line []byte) int {
	cpy := make([]byte, len(line))
	copy(cpy, line)

	q.mutex.Lock()
	node := &queueNode{data: cpy}
	if q.length == 0 {
		q.front = node
		q.back = q.front
	} else {
		q.back.next = node
		q.back = node
	}
	q.length++
	q.bytes += len(cpy)
	total := q.bytes
	q.mutex.Unlock()

	return total
}

// Dequeue removes and returns the front line, or nil when empty.
func (q *Queue) Dequeue() []byte {
	q.mutex.Lock()
	if q.length == 0 {
		q.mutex.Unlock()
		return nil
	}

	data := q.front.data
	q.front = q.front.next
	if q.length == 1 {
		q.back = nil
	}
	q.length--
	q.bytes -= len(data)
	q.mutex.Unlock()

	return data
}

// Len returns the number of queued lines.
func (q *Queue) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.length
}

// Bytes returns the queued byte total.
func (q *Queue) Bytes() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.bytes
}
