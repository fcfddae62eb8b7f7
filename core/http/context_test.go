package http

import (
	"io"
	"os"
	"strings"
	"testing"
)

func captureResponse(t *testing.T, write func(ctx *Context)) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()

	req := &Request{Method: "GET", Path: "/", Proto: "HTTP/1.1"}
	ctx := AcquireContext(int(w.Fd()), req)
	write(ctx)
	ReleaseContext(ctx)
	w.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(data)
}

func TestContextString(t *testing.T) {
	resp := captureResponse(t, func(ctx *Context) {
		ctx.String(200, "hello")
	})

	want := "HTTP/1.1 200 OK\r\nContent-Type: text/plain; charset=utf-8\r\nContent-Length: 5\r\nConnection: keep-alive\r\n\r\nhello"
	if resp != want {
		t.Errorf("response = %q, want %q", resp, want)
	}
}

func TestContextData(t *testing.T) {
	resp := captureResponse(t, func(ctx *Context) {
		ctx.Data(200, "application/json", []byte(`{"ok":true}`))
	})

	if !strings.Contains(resp, "Content-Type: application/json\r\n") {
		t.Errorf("missing content type: %q", resp)
	}
	if !strings.HasSuffix(resp, `{"ok":true}`) {
		t.Errorf("missing body: %q", resp)
	}
}

func TestContextErrorStatus(t *testing.T) {
	resp := captureResponse(t, func(ctx *Context) {
		ctx.String(500, "workload error")
	})

	if !strings.HasPrefix(resp, "HTTP/1.1 500 Internal Server Error\r\n") {
		t.Errorf("status line wrong: %q", resp)
	}
}

func TestContextUnknownStatus(t *testing.T) {
	resp := captureResponse(t, func(ctx *Context) {
		ctx.String(418, "short and stout")
	})

	if !strings.HasPrefix(resp, "HTTP/1.1 418 Unknown Status Code\r\n") {
		t.Errorf("status line wrong: %q", resp)
	}
	if strings.Contains(resp, "418 OK") {
		t.Errorf("reason phrase must not claim OK: %q", resp)
	}
}
