// Package core implements the event-loop HTTP engine the serving
// workloads run on: non-blocking accept, platform poller, pooled read
// buffers, and raw syscall writes.
package core

import (
	"log"
	"net"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/searchktools/hostbench/core/http"
	"github.com/searchktools/hostbench/core/poller"
	"github.com/searchktools/hostbench/core/pools"
)

// HandlerFunc handles one parsed request.
type HandlerFunc func(ctx *http.Context)

const readBufferSize = 8192

// Connection represents an active connection. lastActive holds unix
// nanoseconds and is shared between the event loop and the idle
// sweeper, so both sides go through the atomic.
type Connection struct {
	fd         int
	readBuf    []byte
	readOffset int
	lastActive atomic.Int64
	inFlight   atomic.Bool
}

func (c *Connection) touch() {
	c.lastActive.Store(time.Now().UnixNano())
}

// Engine drives the poller loop and dispatches parsed requests to a
// single handler; routing is the workload's concern.
type Engine struct {
	handler HandlerFunc

	poller      poller.Poller
	connections map[int]*Connection
	connMu      sync.RWMutex

	bytePool    *pools.BytePool
	idleTimeout time.Duration
}

// NewEngine creates an engine around the given handler.
func NewEngine(handler HandlerFunc) *Engine {
	return &Engine{
		handler:     handler,
		connections: make(map[int]*Connection, 1024),
		bytePool:    pools.NewBytePool(),
		idleTimeout: 5 * time.Second,
	}
}

// Run listens on addr and serves until a fatal poller error.
func (e *Engine) Run(addr string) error {
	laddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return err
	}

	ln, err := net.ListenTCP("tcp", laddr)
	if err != nil {
		return err
	}

	return e.Serve(ln)
}

// Serve runs the event loop against an existing listener.
func (e *Engine) Serve(ln *net.TCPListener) error {
	defer ln.Close()

	lnFile, err := ln.File()
	if err != nil {
		return err
	}
	lfd := int(lnFile.Fd())

	if err := syscall.SetNonblock(lfd, true); err != nil {
		return err
	}

	e.poller, err = poller.NewPoller()
	if err != nil {
		return err
	}
	defer e.poller.Close()

	if err := e.poller.Add(lfd); err != nil {
		return err
	}

	go e.cleanupIdleConnections()

	for {
		fds, err := e.poller.Wait(100)
		if err != nil {
			log.Printf("poller wait error: %v", err)
			continue
		}

		for _, fd := range fds {
			if fd == lfd {
				e.acceptConnections(lfd)
			} else {
				e.handleConnectionEvent(fd)
			}
		}
	}
}

// acceptConnections drains all pending connections from the listener.
func (e *Engine) acceptConnections(lfd int) {
	for {
		nfd, _, err := syscall.Accept(lfd)
		if err != nil {
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
				return
			}
			log.Printf("accept error: %v", err)
			return
		}

		if err := syscall.SetNonblock(nfd, true); err != nil {
			syscall.Close(nfd)
			continue
		}

		// Disable Nagle; the workload responses are single small writes.
		syscall.SetsockoptInt(nfd, syscall.IPPROTO_TCP, syscall.TCP_NODELAY, 1)

		conn := &Connection{
			fd:      nfd,
			readBuf: e.bytePool.Get(readBufferSize),
		}
		conn.touch()

		if err := e.poller.Add(nfd); err != nil {
			e.bytePool.Put(conn.readBuf)
			syscall.Close(nfd)
			continue
		}

		e.connMu.Lock()
		e.connections[nfd] = conn
		e.connMu.Unlock()
	}
}

func (e *Engine) handleConnectionEvent(fd int) {
	e.connMu.RLock()
	conn, ok := e.connections[fd]
	e.connMu.RUnlock()

	if !ok {
		return
	}

	conn.touch()
	conn.inFlight.Store(true)
	e.handleRead(conn)
	conn.inFlight.Store(false)
}

// handleRead reads, parses, and serves requests on one connection.
func (e *Engine) handleRead(conn *Connection) {
	n, err := syscall.Read(conn.fd, conn.readBuf[conn.readOffset:])
	if err != nil {
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
			return
		}
		e.closeConnection(conn.fd)
		return
	}
	if n == 0 {
		e.closeConnection(conn.fd)
		return
	}
	conn.readOffset += n

	req, err := http.ParseRequest(conn.readBuf[:conn.readOffset])
	if err != nil {
		if err == http.ErrIncompleteRequest {
			if conn.readOffset >= len(conn.readBuf) {
				e.sendError(conn, 431, "Request Header Fields Too Large")
				e.closeConnection(conn.fd)
			}
			// Partial request, wait for more data.
			return
		}
		e.sendError(conn, 400, "Bad Request")
		e.closeConnection(conn.fd)
		return
	}
	conn.readOffset = 0

	ctx := http.AcquireContext(conn.fd, req)
	e.handler(ctx)
	http.ReleaseContext(ctx)

	closeAfter := req.Proto == "HTTP/1.0" || strings.EqualFold(req.Connection, "close")
	http.ReleaseRequest(req)

	if closeAfter {
		e.closeConnection(conn.fd)
	} else {
		conn.touch()
	}
}

// sendError writes a minimal error response outside the context path.
func (e *Engine) sendError(conn *Connection, code int, message string) {
	response := make([]byte, 0, 128)
	response = append(response, "HTTP/1.1 "...)
	response = strconv.AppendInt(response, int64(code), 10)
	response = append(response, ' ')
	response = append(response, message...)
	response = append(response, "\r\nContent-Length: 0\r\nConnection: close\r\n\r\n"...)
	syscall.Write(conn.fd, response)
}

// closeConnection closes and cleans up a connection.
func (e *Engine) closeConnection(fd int) {
	e.connMu.Lock()
	conn, ok := e.connections[fd]
	if ok {
		delete(e.connections, fd)
	}
	e.connMu.Unlock()

	if !ok {
		return
	}

	e.poller.Remove(fd)
	if conn.readBuf != nil {
		e.bytePool.Put(conn.readBuf)
		conn.readBuf = nil
	}
	syscall.Close(fd)
}

// cleanupIdleConnections periodically removes idle connections.
func (e *Engine) cleanupIdleConnections() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		var toClose []int

		e.connMu.RLock()
		for fd, conn := range e.connections {
			if conn.inFlight.Load() {
				continue
			}
			if now.Sub(time.Unix(0, conn.lastActive.Load())) > e.idleTimeout {
				toClose = append(toClose, fd)
			}
		}
		e.connMu.RUnlock()

		for _, fd := range toClose {
			e.closeConnection(fd)
		}
	}
}
