package http

import (
	"bytes"
	"errors"
	"unsafe"
)

var (
	// ErrInvalidRequest marks a malformed request line.
	ErrInvalidRequest = errors.New("invalid HTTP request")

	// ErrIncompleteRequest means the header block has not fully arrived
	// yet; the caller should keep reading.
	ErrIncompleteRequest = errors.New("incomplete HTTP request")
)

// unsafeString converts a byte slice to a string without allocation.
// WARNING: the returned string shares memory with the byte slice; it is
// only valid until the read buffer is reused.
func unsafeString(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}

// ParseRequest parses the request line and the two headers the serving
// workloads consult. The data must contain the complete header block.
func ParseRequest(data []byte) (*Request, error) {
	headerEnd := bytes.Index(data, []byte("\r\n\r\n"))
	if headerEnd == -1 {
		if bytes.Index(data, []byte("\n\n")) == -1 {
			return nil, ErrIncompleteRequest
		}
	}

	lineEnd := bytes.IndexByte(data, '\n')
	if lineEnd <= 0 {
		return nil, ErrInvalidRequest
	}

	line := data[:lineEnd]
	if line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}

	// METHOD PATH PROTO, split on the two spaces without allocating.
	sp1 := bytes.IndexByte(line, ' ')
	if sp1 == -1 {
		return nil, ErrInvalidRequest
	}
	sp2 := bytes.IndexByte(line[sp1+1:], ' ')
	if sp2 == -1 {
		return nil, ErrInvalidRequest
	}
	sp2 += sp1 + 1

	req := AcquireRequest()
	req.Method = unsafeString(line[:sp1])
	req.Path = unsafeString(line[sp1+1 : sp2])
	req.Proto = unsafeString(line[sp2+1:])

	parseHeaders(req, data[lineEnd+1:])
	return req, nil
}

// parseHeaders scans for Accept and Connection, ignoring the rest.
func parseHeaders(req *Request, data []byte) {
	for len(data) > 0 {
		lineEnd := bytes.IndexByte(data, '\n')
		if lineEnd == -1 {
			lineEnd = len(data)
		} else {
			lineEnd++
		}

		line := data[:lineEnd]
		data = data[lineEnd:]

		line = bytes.TrimRight(line, "\r\n")
		if len(line) == 0 {
			return
		}

		colon := bytes.IndexByte(line, ':')
		if colon == -1 {
			continue
		}

		key := line[:colon]
		value := bytes.TrimLeft(line[colon+1:], " \t")

		switch {
		case bytes.EqualFold(key, []byte("Accept")):
			req.Accept = unsafeString(value)
		case bytes.EqualFold(key, []byte("Connection")):
			req.Connection = unsafeString(value)
		}
	}
}
