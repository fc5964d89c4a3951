package jobs

import (
	"context"
	"log"
	"time"

	"github.com/antiquarium-museum/artifact-register/pkg/registry/services"
	"github.com/antiquarium-museum/artifact-register/pkg/tools"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// ScheduleCacheWarmup sets up a cron job that re-primes the artifact cache
// from the repository every hour.
func ScheduleCacheWarmup(ctx context.Context, svc *services.ArtifactsAPIService) *cron.Cron {
	c := cron.New()
	_, _ = c.AddFunc("@hourly", func() {
		tools.Dispatch(context.Background(), "cache_warmup", func(ctx context.Context) error {
			return WarmArtifactCache(ctx, svc)
		})
	})
	c.Start()

	go func() {
		<-ctx.Done()
		c.Stop()
	}()
	return c
}

// WarmArtifactCache walks every stored artifact and re-sets its cache entry,
// a few at a time. One broken entry must not block the rest; the cache
// adapter already swallows individual set failures.
func WarmArtifactCache(ctx context.Context, svc *services.ArtifactsAPIService) error {
	artifacts, err := svc.AllArtifacts(ctx)
	if err != nil {
		return err
	}

	const maxConcurrent = 4
	sem := semaphore.NewWeighted(int64(maxConcurrent))
	g, ctx := errgroup.WithContext(ctx)

	for i := range artifacts {
		artifact := artifacts[i]

		if err := sem.Acquire(ctx, 1); err != nil {
			return err
		}
		g.Go(func() error {
			defer sem.Release(1)

			warmCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			svc.WarmCache(warmCtx, &artifact)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Printf("[warmup] cache re-primed for %d artifacts", len(artifacts))
	return nil
}
