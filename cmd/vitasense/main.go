// Command vitasense serves the lifestyle health-risk assessment API.
// main wires the artifact registry, history store, watcher, and HTTP server;
// decision logic lives in the domain packages.
package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitasense/vitasense-go/internal/adapters/artifactwatcher"
	"github.com/vitasense/vitasense-go/internal/adapters/model"
	"github.com/vitasense/vitasense-go/internal/adapters/store"
	"github.com/vitasense/vitasense-go/internal/domain/ports"
	"github.com/vitasense/vitasense-go/internal/domain/usecases"
	httpserver "github.com/vitasense/vitasense-go/internal/infrastructure/http"
	"github.com/vitasense/vitasense-go/internal/platform/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[FATAL] loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The artifact must load before any request is served; a missing or
	// malformed artifact is a startup failure, not a per-request error.
	registry, err := model.NewRegistry(cfg.ArtifactDir)
	if err != nil {
		log.Fatalf("[FATAL] loading model artifact from %s: %v", cfg.ArtifactDir, err)
	}
	log.Printf("[INFO] model artifact loaded from %s", cfg.ArtifactDir)

	var history ports.AssessmentStore
	if cfg.DBPath != "" {
		sqlStore, err := store.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			log.Fatalf("[FATAL] opening history store %s: %v", cfg.DBPath, err)
		}
		defer sqlStore.Close()
		history = sqlStore
	} else {
		history = store.NewInMemoryStore()
	}

	policy := usecases.Policy{
		BMIThreshold:   cfg.Policy.BMIThreshold,
		SleepThreshold: cfg.Policy.SleepThreshold,
	}
	assess := usecases.NewAssessUseCase(registry, history, policy)

	if cfg.Watch {
		if err := watchArtifact(ctx, cfg.ArtifactDir, registry); err != nil {
			log.Printf("[WARN] artifact watching disabled: %v", err)
		}
	}

	srv := httpserver.NewServer(assess, history, cfg.Addr)
	if err := srv.Start(ctx); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[FATAL] server error: %v", err)
	}
}

// watchArtifact reloads the registry when artifact files are rewritten.
// Events are debounced because the trainer replaces four files in a burst;
// a failed reload keeps the previous snapshot serving.
func watchArtifact(ctx context.Context, dir string, registry *model.Registry) error {
	watcher, err := artifactwatcher.NewFSNotifyWatcher(nil)
	if err != nil {
		return err
	}

	events, err := watcher.Watch(ctx, dir)
	if err != nil {
		watcher.Stop()
		return err
	}

	go func() {
		defer watcher.Stop()

		const debounce = 500 * time.Millisecond
		var timer *time.Timer
		var timerC <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
					timerC = timer.C
				} else {
					if !timer.Stop() {
						<-timerC
					}
					timer.Reset(debounce)
				}
			case <-timerC:
				timer = nil
				timerC = nil
				if err := registry.Reload(); err != nil {
					log.Printf("[WARN] artifact reload failed, keeping previous snapshot: %v", err)
					continue
				}
				log.Printf("[INFO] model artifact reloaded from %s", dir)
			}
		}
	}()

	return nil
}
