package httpapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"jobdesk-engine/internal/store"
)

type LogosHandler struct {
	DB *sql.DB
}

// GetByKey serves a cached company logo by its cache key (see
// store.LogoKey). The UI never talks to the upstream asset host.
func (h LogosHandler) GetByKey(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/logo/"))
	if key == "" {
		http.Error(w, "missing key", 400)
		return
	}

	b, ct, err := store.GetLogo(r.Context(), h.DB, key)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	if ct == "" {
		ct = "image/*"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "public, max-age=604800")
	_, _ = w.Write(b)
}
