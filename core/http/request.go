package http

import "sync"

// Request carries the few pieces of a request the workloads care about.
// Only the Accept and Connection headers are retained; everything else
// is skipped during parsing.
type Request struct {
	Method string
	Path   string
	Proto  string

	Accept     string
	Connection string
}

var requestPool = sync.Pool{
	New: func() any {
		return &Request{}
	},
}

// AcquireRequest fetches a request from the pool.
func AcquireRequest() *Request {
	return requestPool.Get().(*Request)
}

// Reset clears the request for reuse.
func (r *Request) Reset() {
	r.Method = ""
	r.Path = ""
	r.Proto = ""
	r.Accept = ""
	r.Connection = ""
}

// ReleaseRequest resets the request and returns it to the pool.
func ReleaseRequest(req *Request) {
	req.Reset()
	requestPool.Put(req)
}
