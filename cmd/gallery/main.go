package main

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/pin-gallery/internal/comments"
	"github.com/example/pin-gallery/internal/events"
	"github.com/example/pin-gallery/internal/handlers"
	"github.com/example/pin-gallery/internal/kv"
	"github.com/example/pin-gallery/internal/platform/config"
	"github.com/example/pin-gallery/internal/platform/httpserver"
	"github.com/example/pin-gallery/internal/platform/logging"
	"github.com/example/pin-gallery/internal/platform/natsconn"
	"github.com/example/pin-gallery/internal/platform/run"
	"github.com/example/pin-gallery/internal/registry"
	"github.com/example/pin-gallery/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	store, err := kv.NewStore(cfg.Storage.RedisDSN, cfg.Storage.DatabaseURL, cfg.Storage.SQLitePath, cfg.IsProd())
	if err != nil {
		log.Error("storage init", zap.Error(err))
		run.Exit(1)
	}
	defer func() { _ = store.Close() }()

	reg := registry.New(store, log)
	cs := comments.NewStore(store, log)

	pub, closeEvents := initEvents(cfg.NATSURL, log)
	defer closeEvents()

	r := chi.NewRouter()
	httpserver.SetupRouter(r, httpserver.RouterConfig{ReadyFunc: kv.Ready(store)})

	r.Get("/", handlers.ListImages(reg))
	r.Get("/preview/{image_id}", handlers.Preview(reg))

	r.Get("/v1/users", handlers.ListUsers())
	r.Get("/v1/images", handlers.ListImages(reg))
	r.Post("/v1/images", handlers.UploadImage(reg, pub))
	r.Get("/v1/images/{image_id}", handlers.GetImage(reg))
	r.Get("/v1/images/{image_id}/comments", handlers.GetThread(cs))
	r.Post("/v1/placement", handlers.ComputePlacement())

	// Comment mutations require a roster user.
	r.Group(func(r chi.Router) {
		r.Use(users.Require())
		r.Post("/v1/images/{image_id}/comments", handlers.CreateComment(cs, pub))
		r.Post("/v1/comments/{comment_id}/replies", handlers.ReplyComment(cs, pub))
		r.Put("/v1/comments/{comment_id}", handlers.UpdateComment(cs, pub))
		r.Delete("/v1/comments/{comment_id}", handlers.DeleteComment(cs, pub))
	})

	srv := httpserver.New(httpserver.Options{Addr: cfg.HTTP.Addr, ServiceName: cfg.ServiceName, Logger: log, Router: r})

	runner := run.New(log)
	code := runner.WithSignals(func(ctx context.Context) error {
		go func() {
			<-ctx.Done()
			c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(c)
		}()
		return srv.Start(log)
	})

	log.Info("exit", zap.Int("code", code))
	run.Exit(code)
}

// initEvents wires the gallery event publisher. NATS is optional: without
// NATS_URL, or when the connection fails, events are disabled and the
// service runs normally.
func initEvents(natsURL string, log *zap.Logger) (*events.Publisher, func()) {
	if natsURL == "" {
		log.Info("NATS_URL not set, gallery events disabled")
		return events.New(nil, log), func() {}
	}

	nc, err := natsconn.Connect(natsconn.Options{URL: natsURL})
	if err != nil {
		log.Warn("nats connect failed, gallery events disabled", zap.Error(err))
		return events.New(nil, log), func() {}
	}
	js, err := nc.JetStream()
	if err != nil {
		log.Warn("jetstream init failed, gallery events disabled", zap.Error(err))
		nc.Close()
		return events.New(nil, log), func() {}
	}
	log.Info("gallery events enabled", zap.String("nats_url", natsURL))
	return events.New(js, log), nc.Close
}
