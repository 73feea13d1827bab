// Command portalauth-demo walks the full session lifecycle against a live
// engine: two portal shells mount, a demo merchant logs in, both shells
// re-render from the same change signal, the merchant's verification record
// cycles through review, and the session ends with a logout.
//
// Configuration comes from the environment:
//
//	PORTALAUTH_REDIS_ADDR    Redis address; empty starts an embedded miniredis
//	PORTALAUTH_PREFIX        storage key prefix (default "kokomatto")
//	PORTALAUTH_CHANNEL       change signal channel (default "auth-change")
//	PORTALAUTH_METRICS_ADDR  optional address to serve /metrics on
//	PORTALAUTH_AUDIT_LOG     set to emit audit events as JSON lines on stderr
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"

	portalauth "github.com/kokomatto/portalauth"
	"github.com/kokomatto/portalauth/metrics/export/prometheus"
	"github.com/kokomatto/portalauth/portal"
)

type demoConfig struct {
	RedisAddr   string `env:"PORTALAUTH_REDIS_ADDR"`
	Prefix      string `env:"PORTALAUTH_PREFIX" envDefault:"kokomatto"`
	Channel     string `env:"PORTALAUTH_CHANNEL" envDefault:"auth-change"`
	MetricsAddr string `env:"PORTALAUTH_METRICS_ADDR"`
	AuditLog    bool   `env:"PORTALAUTH_AUDIT_LOG"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var cfg demoConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	addr := cfg.RedisAddr
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return fmt.Errorf("start embedded redis: %w", err)
		}
		defer mr.Close()
		addr = mr.Addr()
		log.Printf("using embedded redis at %s", addr)
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	builder := portalauth.New().WithRedis(client)
	if cfg.AuditLog {
		builder = builder.WithAuditSink(portalauth.NewJSONWriterSink(os.Stderr))
	}
	if cfg.Prefix != "kokomatto" || cfg.Channel != "auth-change" {
		custom := defaultWithStore(cfg.Prefix, cfg.Channel)
		builder = builder.WithConfig(custom)
	}

	engine, err := builder.Build()
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	defer engine.Close()

	if cfg.MetricsAddr != "" {
		exporter := prometheus.NewPrometheusExporter(engine)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", exporter.Handler())
			log.Printf("metrics on http://%s/metrics", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	ctx := context.Background()

	header, err := engine.Shell(portal.AudiencePublic, "", renderer("header"))
	if err != nil {
		return err
	}
	if err := header.Mount(ctx); err != nil {
		return err
	}
	defer header.Unmount()

	merchantPortal, err := engine.Shell(portal.AudienceAffiliate, "merchant", renderer("merchant-portal"))
	if err != nil {
		return err
	}
	if err := merchantPortal.Mount(ctx); err != nil {
		return err
	}
	defer merchantPortal.Unmount()

	log.Println("-- logging in as the demo merchant")
	result, err := engine.Login(ctx, "merchant", "supermerchant")
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	log.Printf("granted role %s, home %s", result.Role, result.Home)

	if decision, err := merchantPortal.Navigate(ctx, result.Home); err != nil {
		return fmt.Errorf("navigate: %w", err)
	} else if !decision.Allow {
		return fmt.Errorf("guard denied %s, redirect to %s", result.Home, decision.RedirectTo)
	}

	log.Println("-- cycling the merchant verification record")
	for i := 0; i < 3; i++ {
		status, err := engine.CycleVerification(ctx, "merchant")
		if err != nil {
			return fmt.Errorf("cycle verification: %w", err)
		}
		log.Printf("verification now %s", status)
		time.Sleep(200 * time.Millisecond)
	}

	log.Println("-- logging out")
	logout, err := engine.Logout(ctx)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	log.Printf("redirected to %s", logout.RedirectTo)

	snapshot := engine.MetricsSnapshot()
	log.Printf("signals emitted: %d", snapshot.Counters[portalauth.MetricSignalEmitted])
	return nil
}

func renderer(name string) portal.RenderFunc {
	return func(v portal.View) {
		overlay := "none"
		if v.Overlay != nil {
			overlay = v.Overlay.Status.String()
		}
		log.Printf("[%s] role=%s authenticated=%v path=%s overlay=%s blocked=%v",
			name, v.Session.Role, v.Session.Authenticated, v.Path, overlay, v.Blocked)
	}
}

func defaultWithStore(prefix, channel string) portalauth.Config {
	cfg := portalauth.DefaultConfig()
	cfg.Store.RedisPrefix = prefix
	cfg.Store.Channel = channel
	return cfg
}
