package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"jobdesk-engine/internal/config"
	"jobdesk-engine/internal/events"
	"jobdesk-engine/internal/refresh"
	"jobdesk-engine/internal/remote"
	"jobdesk-engine/internal/views"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	Client *remote.Client

	// Long-lived view pipelines shared with the UI
	Jobs       *views.Jobs
	Blogs      *views.Blogs
	Startups   *views.Startups
	Applicants *views.Applicants

	// Atomic stores
	CfgVal        *atomic.Value // stores config.Config
	RefreshStatus *atomic.Value // stores refresh.Status

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Refresh entrypoint (inject for testability)
	RunRefresh func(ctx context.Context, d refresh.Deps) error
}
