// Package refresh keeps the local listing snapshots warm: a ticker loop
// re-pulls the public lists, swaps the sqlite snapshots and pokes the UI
// over SSE so open screens refetch.
package refresh

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"jobdesk-engine/internal/config"
	"jobdesk-engine/internal/events"
	"jobdesk-engine/internal/remote"
	"jobdesk-engine/internal/store"
	"jobdesk-engine/internal/views"
)

type Status struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	Running   bool   `json:"running"`
}

type Deps struct {
	DB       *sql.DB
	Client   *remote.Client
	Hub      *events.Hub
	PageSize int
}

// RunOnce pulls blogs and the first vacancies page, replaces both
// snapshots and caches any new logos. Each listing is best effort: one
// failing does not stop the other from refreshing.
func RunOnce(ctx context.Context, d Deps) error {
	var g errgroup.Group

	var mu sync.Mutex
	var firstErr error
	keep := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	g.Go(func() error {
		blogs, err := d.Client.Blogs(ctx)
		if err != nil {
			log.Printf("[refresh] blogs err=%v", err)
			keep(err)
			return nil
		}
		if err := store.ReplaceBlogs(ctx, d.DB, blogs, func(html string) string {
			return views.Excerpt(html, 200)
		}); err != nil {
			log.Printf("[refresh] blog snapshot err=%v", err)
			keep(err)
		}
		return nil
	})

	g.Go(func() error {
		page, err := d.Client.FilterVacancies(ctx, remote.VacancyFilter{}, 1, d.PageSize)
		if err != nil {
			log.Printf("[refresh] vacancies err=%v", err)
			keep(err)
			return nil
		}
		if err := store.ReplaceVacancies(ctx, d.DB, page.Data); err != nil {
			log.Printf("[refresh] vacancy snapshot err=%v", err)
			keep(err)
			return nil
		}
		for _, v := range page.Data {
			if v.Logo == "" {
				continue
			}
			if _, err := store.CacheLogo(ctx, d.DB, d.Client.Bytes, v.Logo); err != nil {
				log.Printf("[refresh] logo vacancy=%d err=%v", v.ID, err)
			}
		}
		return nil
	})

	_ = g.Wait()

	if firstErr != nil {
		return firstErr
	}
	d.Hub.Publish(events.MakeEvent("", events.TypeListingsRefreshed, 1, nil))
	return nil
}

// Start runs the ticker loop until ctx is cancelled. Config is re-read
// from the atomic each tick so toggling refresh.enabled takes effect
// without a restart.
func Start(ctx context.Context, cfgVal *atomic.Value, statusVal *atomic.Value, d Deps) {
	go func() {
		// run immediately, then on the ticker
		tick(ctx, cfgVal, statusVal, d)

		cfg := cfgVal.Load().(config.Config)
		interval := cfg.RefreshInterval()
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				tick(ctx, cfgVal, statusVal, d)
			}
		}
	}()
}

func tick(ctx context.Context, cfgVal *atomic.Value, statusVal *atomic.Value, d Deps) {
	cfgAny := cfgVal.Load()
	if cfgAny == nil {
		return
	}
	cfg := cfgAny.(config.Config)
	if !cfg.Refresh.Enabled {
		return
	}

	st := loadStatus(statusVal)
	st.Running = true
	st.LastRunAt = time.Now().Format(time.RFC3339)
	statusVal.Store(st)

	rctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	err := RunOnce(rctx, d)
	cancel()

	st = loadStatus(statusVal)
	st.Running = false
	if err != nil {
		st.LastError = err.Error()
		log.Printf("[refresh] error: %v", err)
	} else {
		st.LastError = ""
		st.LastOkAt = time.Now().Format(time.RFC3339)
		log.Printf("[refresh] ok")
	}
	statusVal.Store(st)
}

func loadStatus(v *atomic.Value) Status {
	if st, ok := v.Load().(Status); ok {
		return st
	}
	return Status{}
}
