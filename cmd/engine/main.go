package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"

	"jobdesk-engine/internal/config"
	"jobdesk-engine/internal/events"
	"jobdesk-engine/internal/httpapi"
	"jobdesk-engine/internal/refresh"
	"jobdesk-engine/internal/remote"
	"jobdesk-engine/internal/secrets"
	"jobdesk-engine/internal/store"
	"jobdesk-engine/internal/views"
)

func main() {
	// Optional .env for local dev (JOBDESK_DATA_DIR etc.); missing is fine.
	_ = godotenv.Load()

	// Engine data dir: use env if provided (the desktop shell passes one),
	// else a local folder.
	dataDir := os.Getenv("JOBDESK_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	if !vr.OK() {
		log.Fatalf("config invalid (%s): %v", userCfgPath, vr.Errors)
	}
	for _, warn := range vr.Warnings {
		log.Printf("[config] warning: %s", warn)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "jobdesk.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	// One limiter + client shared by every view; the token is read from
	// the keyring per request so setting it takes effect without restart.
	limiter := remote.NewHostLimiter(cfg.API.RatePerSecond, cfg.API.RateBurst)
	client := remote.New(cfg.API.BaseURL, cfg.Timeout(), limiter,
		remote.WithToken(func() string {
			cur := cfgVal.Load().(config.Config)
			tok, err := secrets.GetAPIToken(secrets.APITokenAccount(cur))
			if err != nil {
				return ""
			}
			return tok
		}),
	)

	hub := events.NewHub()

	jobs := views.NewJobs(client, cfg.Views.PageSize)
	blogs := views.NewBlogs(client, cfg.Views.RelatedLimit)
	startups := views.NewStartups(client, cfg.Views.PageSize)
	applicants := views.NewApplicants(client, cfg.Views.PageSize)
	defer jobs.View().Close()
	defer blogs.View().Close()
	defer startups.View().Close()
	defer applicants.View().Close()

	var refreshStatus atomic.Value
	refreshStatus.Store(refresh.Status{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	refresh.Start(ctx, &cfgVal, &refreshStatus, refresh.Deps{
		DB:       db.Pool,
		Client:   client,
		Hub:      hub,
		PageSize: cfg.Views.PageSize,
	})

	mux := httpapi.NewMux(httpapi.Deps{
		DB:            db.Pool,
		Hub:           hub,
		Client:        client,
		Jobs:          jobs,
		Blogs:         blogs,
		Startups:      startups,
		Applicants:    applicants,
		CfgVal:        &cfgVal,
		RefreshStatus: &refreshStatus,
		UserCfgPath:   userCfgPath,
		LoadCfg:       loadCfg,
		RunRefresh:    refresh.RunOnce,
	})

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s upstream=%s)", addr, dbPath, client.BaseURL())

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}
