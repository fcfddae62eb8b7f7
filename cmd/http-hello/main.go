// http-hello serves the plain/stateful echo workload: "hello" on every
// path, except /state which returns the incremented shared counter.
package main

import (
	"github.com/searchktools/hostbench/app"
	"github.com/searchktools/hostbench/config"
	"github.com/searchktools/hostbench/workload/hello"
)

func main() {
	cfg := config.New()
	app.New(cfg, "http-hello", hello.New()).Run()
}
