// FILE: lixenwraith/unilog/example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/unilog"
	"github.com/lixenwraith/unilog/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	cfg := unilog.DefaultConfig()
	err := cfg.ApplyOverride(
		"name=fasthttp",
		"directory=/var/log/fasthttp",
		"postfix=dot_number_daily",
		"keep_files=14",
		"enable_echo=true",
	)
	if err != nil {
		panic(err)
	}

	target, err := unilog.NewTarget(cfg)
	if err != nil {
		panic(err)
	}
	defer target.Shutdown()

	fasthttpAdapter := compat.NewFastHTTPAdapter(
		target,
		compat.WithDefaultSeverity(unilog.SeverityInfo),
		compat.WithSeverityDetector(customSeverityDetector),
	)

	server := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			requestHandler(target, ctx)
		},
		Logger: fasthttpAdapter,

		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	target.Info("starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(target *unilog.Target, ctx *fasthttp.RequestCtx) {
	target.Logf(unilog.SeverityDebug, "%s %s from %s", ctx.Method(), ctx.Path(), ctx.RemoteAddr())
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customSeverityDetector(msg string) unilog.Severity {
	if strings.Contains(msg, "connection cannot be served") {
		return unilog.SeverityWarning
	}
	if strings.Contains(msg, "error when serving connection") {
		return unilog.SeverityError
	}
	return compat.DetectSeverity(msg)
}
