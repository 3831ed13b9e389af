// Command sunglided serves sunrise, transit and sunset times over HTTP.
//
//	GET {prefix}/api/v1/sun?lat=50.6611&lon=14.0531&date=2019-09-17&tz=Europe/Prague&days=7
//	GET {prefix}/metrics
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"cloudeng.io/logging/ctxlog"
	"github.com/kelseyhightower/envconfig"

	"github.com/thurmanmarka/sunglide/internal/server"
)

type Config struct {
	Port     string        `default:"8080"`
	Prefix   string        `default:"/"`
	CacheTTL time.Duration `default:"1h" split_words:"true"`
	LogLevel string        `default:"info" split_words:"true"`
}

func main() {
	var env Config
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal(err.Error())
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(env.LogLevel)); err != nil {
		log.Fatalf("invalid LOG_LEVEL %q: %v", env.LogLevel, err)
	}
	ctx := ctxlog.NewJSONLogger(context.Background(), os.Stderr, &slog.HandlerOptions{Level: level})
	logger := ctxlog.Logger(ctx)

	s := server.New(server.Options{
		Prefix:   env.Prefix,
		CacheTTL: env.CacheTTL,
		Logger:   logger,
	})

	if env.CacheTTL > 0 {
		go func() {
			for range time.Tick(env.CacheTTL) {
				s.PurgeCache()
			}
		}()
	}

	srv := &http.Server{
		Handler:      s,
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	logger.Info("listening", "addr", srv.Addr, "prefix", env.Prefix, "cache_ttl", env.CacheTTL)
	log.Fatal(srv.ListenAndServe())
}
