package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"lrkr/internal/cache"
	"lrkr/internal/cart"
	"lrkr/internal/config"
	"lrkr/internal/events"
	"lrkr/internal/http/handlers"
	applog "lrkr/internal/log"
	"lrkr/internal/repos"
	"lrkr/web"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	var sink io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			sink = io.MultiWriter(os.Stdout, f)
		}
	}
	if err := applog.Init(sink, cfg.LogLevel); err != nil {
		log.Printf("[warn] bad LOG_LEVEL %q, using info: %v", cfg.LogLevel, err)
		_ = applog.Init(sink, "info")
	}
	defer applog.Sync()

	db, err := repos.OpenDB(cfg.DBDSN, repos.Admin{Email: cfg.AdminEmail, Password: cfg.AdminPassword})
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------- Cart slot ----------
	var slot cart.Slot
	switch cfg.CartStore {
	case config.CartStoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis ping %s: %v", cfg.RedisAddr, err)
		}
		defer rdb.Close()
		slot = cache.NewRedisSlot(rdb, cfg.CartTTL)
	case config.CartStoreMemory:
		slot = cart.NewMemorySlot()
	default:
		slots := repos.NewCartSlotRepo(db)
		go purgeCarts(ctx, slots, cfg.CartTTL)
		slot = slots
	}

	// ---------- Events ----------
	var pub events.Publisher = events.Nop{}
	if cfg.NATSURL != "" {
		np, nc, err := events.Connect(cfg.NATSURL)
		if err != nil {
			// the shop still works without the broker
			applog.Error(nil, "events.connect.fail", err, map[string]any{"url": cfg.NATSURL})
		} else {
			defer nc.Drain()
			pub = np
		}
	}

	deps := handlers.NewDeps(db, slot, pub)
	app := handlers.NewApp(deps, handlers.AppConfig{
		Views:        web.Engine(),
		BodyLimit:    cfg.BodyLimit,
		CookieSecure: cfg.CookieSecure,
		Limits:       handlers.DefaultLimits(),
		AccessLog:    true,
	})

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			applog.Error(nil, "server.shutdown.fail", err, nil)
		}
	}()

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port, "cart_store": cfg.CartStore})
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// purgeCarts drops sqlite cart slots untouched for longer than ttl.
func purgeCarts(ctx context.Context, slots *repos.CartSlotRepo, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		n, err := slots.PurgeOlderThan(ctx, time.Now().Add(-ttl))
		if err != nil {
			applog.Error(nil, "cart.purge.fail", err, nil)
		} else if n > 0 {
			applog.Info(nil, "cart.purge", map[string]any{"removed": n})
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
