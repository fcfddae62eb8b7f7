package http

import (
	"strconv"
	"sync"
	"syscall"
)

const textPlain = "text/plain; charset=utf-8"

// Context writes a response for one request straight to the connection's
// file descriptor. It is pooled; use AcquireContext/ReleaseContext.
type Context struct {
	fd      int
	request *Request

	responseBuf []byte
}

var contextPool = sync.Pool{
	New: func() any {
		return &Context{responseBuf: make([]byte, 0, 1024)}
	},
}

// AcquireContext fetches a pooled context bound to fd and req.
func AcquireContext(fd int, req *Request) *Context {
	ctx := contextPool.Get().(*Context)
	ctx.fd = fd
	ctx.request = req
	ctx.responseBuf = ctx.responseBuf[:0]
	return ctx
}

// ReleaseContext returns the context to the pool.
func ReleaseContext(ctx *Context) {
	ctx.fd = -1
	ctx.request = nil
	contextPool.Put(ctx)
}

func (c *Context) Method() string { return c.request.Method }
func (c *Context) Path() string   { return c.request.Path }
func (c *Context) Accept() string { return c.request.Accept }

// String sends a text/plain response.
func (c *Context) String(code int, body string) {
	c.write(code, textPlain, []byte(body))
}

// Data sends a response with an explicit content type.
func (c *Context) Data(code int, contentType string, body []byte) {
	c.write(code, contentType, body)
}

func (c *Context) write(code int, contentType string, body []byte) {
	b := c.responseBuf[:0]
	b = append(b, "HTTP/1.1 "...)
	b = strconv.AppendInt(b, int64(code), 10)
	b = append(b, ' ')
	b = append(b, statusText(code)...)
	b = append(b, "\r\nContent-Type: "...)
	b = append(b, contentType...)
	b = append(b, "\r\nContent-Length: "...)
	b = strconv.AppendInt(b, int64(len(body)), 10)
	b = append(b, "\r\nConnection: keep-alive\r\n\r\n"...)
	b = append(b, body...)
	c.responseBuf = b

	c.writeResponse()
}

// writeResponse drains the response buffer, handling partial writes and
// EAGAIN on the non-blocking fd.
func (c *Context) writeResponse() {
	written := 0
	for written < len(c.responseBuf) {
		n, err := syscall.Write(c.fd, c.responseBuf[written:])
		if err != nil {
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
				continue
			}
			return
		}
		written += n
	}
}

func statusText(code int) string {
	switch code {
	case 200:
		return "OK"
	case 400:
		return "Bad Request"
	case 404:
		return "Not Found"
	case 431:
		return "Request Header Fields Too Large"
	case 500:
		return "Internal Server Error"
	case 503:
		return "Service Unavailable"
	default:
		return "Unknown Status Code"
	}
}
