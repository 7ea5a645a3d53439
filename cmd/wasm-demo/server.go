// Command wasm-demo serves the browser build of cmd/metaball:
//
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" cmd/wasm-demo/
//	GOOS=js GOARCH=wasm go build -o cmd/wasm-demo/main.wasm ./cmd/metaball
//	go run ./cmd/wasm-demo
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	// directory holding index.html, main.wasm and wasm_exec.js
	baseDir := flag.String("dir", filepath.Join("cmd", "wasm-demo"), "directory to serve")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	mux := http.NewServeMux()
	fs := http.FileServer(http.Dir(*baseDir))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.ServeFile(w, r, filepath.Join(*baseDir, "index.html"))
			return
		}
		fs.ServeHTTP(w, r)
	})

	srv := &http.Server{Addr: *addr, Handler: logRequests(logger, mux)}

	go func() {
		logger.Info("serving", "addr", *addr, "dir", *baseDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	logger.Info("server stopped")
}

func logRequests(logger *slog.Logger, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("request", "method", r.Method, "path", r.URL.Path)
		// wasm must be served with its own MIME type for instantiateStreaming
		if filepath.Ext(r.URL.Path) == ".wasm" {
			w.Header().Set("Content-Type", "application/wasm")
		}
		h.ServeHTTP(w, r)
	})
}
