package httpapi

import (
	"context"
	"net/http"
	"time"

	"jobdesk-engine/internal/config"
	"jobdesk-engine/internal/refresh"
)

type RefreshHandler struct {
	Deps Deps
}

func (h RefreshHandler) Status(w http.ResponseWriter, r *http.Request) {
	st, _ := h.Deps.RefreshStatus.Load().(refresh.Status)
	writeJSON(w, st)
}

// Run kicks an out-of-schedule snapshot refresh. The work happens in the
// background; poll /refresh/status or wait for the SSE event.
func (h RefreshHandler) Run(w http.ResponseWriter, r *http.Request) {
	st, _ := h.Deps.RefreshStatus.Load().(refresh.Status)
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	st.Running = true
	st.LastRunAt = time.Now().Format(time.RFC3339)
	h.Deps.RefreshStatus.Store(st)

	go func() {
		cfg := h.Deps.CfgVal.Load().(config.Config)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		err := h.Deps.RunRefresh(ctx, refresh.Deps{
			DB:       h.Deps.DB,
			Client:   h.Deps.Client,
			Hub:      h.Deps.Hub,
			PageSize: cfg.Views.PageSize,
		})

		now := time.Now().Format(time.RFC3339)
		next, _ := h.Deps.RefreshStatus.Load().(refresh.Status)
		next.Running = false
		next.LastRunAt = now
		if err != nil {
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.Deps.RefreshStatus.Store(next)
	}()

	writeJSON(w, map[string]any{"ok": true})
}
