package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"role-match/internal/app"
	"role-match/internal/config"
	"role-match/internal/usecase"
)

func main() {
	recompute := flag.Bool("recompute", false, "start a pipeline run as soon as the server is up")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	bootstrap, cleanup, err := app.Bootstrap(cfg)
	if err != nil {
		log.Fatalf("failed to bootstrap app: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.Fatalf("invalid HTTP port: %v", err)
	}

	if *recompute {
		r, err := bootstrap.Container.Pipeline.Trigger(context.Background())
		switch {
		case errors.Is(err, usecase.ErrPipelineBusy):
			log.Printf("pipeline=recommendations status=skipped reason=busy")
		case err != nil:
			log.Printf("pipeline=recommendations status=error err=%v", err)
		default:
			log.Printf("pipeline=recommendations run_id=%s status=triggered", r.ID)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("%s listening on %s env=%s", cfg.App.AppName, addr, cfg.App.Environment)
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Printf("server error: %v", err)
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(ctx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
