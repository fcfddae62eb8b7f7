// Package app runs a serving workload: startup banner, request
// dispatch with metrics, the /stats snapshot route, and shutdown on
// signal with a final summary.
package app

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/searchktools/hostbench/config"
	"github.com/searchktools/hostbench/core"
	"github.com/searchktools/hostbench/core/codec"
	chttp "github.com/searchktools/hostbench/core/http"
	chttp2 "github.com/searchktools/hostbench/core/http2"
	"github.com/searchktools/hostbench/core/hostcap"
	"github.com/searchktools/hostbench/core/observability"
)

// Responder is the contract every serving workload satisfies: map a
// request path to a short text body, optionally bumping shared state.
type Responder interface {
	Respond(path string) (string, error)
}

// App is one serving workload instance.
type App struct {
	cfg      *config.Config
	name     string
	workload Responder
	monitor  *observability.Monitor
}

// New creates an application instance around a workload.
func New(cfg *config.Config, name string, workload Responder) *App {
	return &App{
		cfg:      cfg,
		name:     name,
		workload: workload,
		monitor:  observability.NewMonitor(),
	}
}

// Run starts the workload and blocks until a fatal server error. A
// SIGINT/SIGTERM logs the serving summary and exits.
func (a *App) Run() {
	go a.awaitSignal()

	addr := fmt.Sprintf(":%d", a.cfg.Port)
	log.Printf("[%s] serving on %s [%s] mode=%s", a.name, addr, a.cfg.Env, a.cfg.Mode)
	log.Printf("[%s] host: %s", a.name, hostcap.Summary())

	var err error
	switch a.cfg.Mode {
	case config.ModeH2C:
		srv := chttp2.NewServer(chttp2.Config{
			Addr:        addr,
			Handler:     a.Handler(),
			IdleTimeout: time.Duration(a.cfg.IdleTimeout) * time.Second,
		})
		err = srv.ListenAndServe()
	default:
		err = core.NewEngine(a.handle).Run(addr)
	}
	if err != nil {
		log.Fatalf("[%s] server startup failed: %v", a.name, err)
	}
}

// handle dispatches a request on the raw engine path.
func (a *App) handle(ctx *chttp.Context) {
	start := time.Now()
	path := ctx.Path()

	if strings.HasPrefix(path, "/stats") {
		a.serveStats(ctx)
		return
	}

	body, err := a.workload.Respond(path)
	if err != nil {
		log.Printf("[%s] workload error on %s: %v", a.name, path, err)
		ctx.String(500, "workload error")
		a.monitor.Record(path, time.Since(start), true)
		return
	}

	ctx.String(200, body)
	a.monitor.Record(path, time.Since(start), false)
}

func (a *App) serveStats(ctx *chttp.Context) {
	snap, err := a.monitor.Snapshot()
	if err != nil {
		ctx.String(500, "stats unavailable")
		return
	}

	c := codec.ForAccept(ctx.Accept())
	data, err := c.Encode(snap)
	if err != nil {
		ctx.String(500, "stats unavailable")
		return
	}
	ctx.Data(200, c.ContentType(), data)
}

// Handler adapts the workload to net/http for the h2c serving mode.
func (a *App) Handler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := r.URL.Path

		if strings.HasPrefix(path, "/stats") {
			snap, err := a.monitor.Snapshot()
			if err != nil {
				http.Error(rw, "stats unavailable", http.StatusInternalServerError)
				return
			}
			c := codec.ForAccept(r.Header.Get("Accept"))
			data, err := c.Encode(snap)
			if err != nil {
				http.Error(rw, "stats unavailable", http.StatusInternalServerError)
				return
			}
			rw.Header().Set("Content-Type", c.ContentType())
			rw.Write(data)
			return
		}

		body, err := a.workload.Respond(path)
		if err != nil {
			log.Printf("[%s] workload error on %s: %v", a.name, path, err)
			http.Error(rw, "workload error", http.StatusInternalServerError)
			a.monitor.Record(path, time.Since(start), true)
			return
		}

		rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
		rw.Write([]byte(body))
		a.monitor.Record(path, time.Since(start), false)
	})
}

func (a *App) awaitSignal() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Printf("[%s] signal received: %v. %s", a.name, sig, a.monitor.Summary())
	os.Exit(0)
}
