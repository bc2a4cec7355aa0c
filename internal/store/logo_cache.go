package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"
)

// LogoKey derives the stable cache key for a logo's relative API path.
func LogoKey(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	h := sha256.Sum256([]byte(path))
	return hex.EncodeToString(h[:])
}

// FetchFunc pulls raw asset bytes off the upstream host. The remote
// client's Bytes method satisfies this.
type FetchFunc func(ctx context.Context, path string) (body []byte, contentType string, err error)

// CacheLogo stores the image behind a relative logo path (the API returns
// paths like /storage/logos/x.png) and returns the key the UI uses on
// /logo/{key}. Already-cached logos skip the upstream fetch entirely.
func CacheLogo(ctx context.Context, db *sql.DB, fetch FetchFunc, path string) (key string, err error) {
	key = LogoKey(path)
	if key == "" {
		return "", nil
	}

	var exists int
	e := db.QueryRowContext(ctx, `SELECT 1 FROM logos WHERE key = ? LIMIT 1;`, key).Scan(&exists)
	if e == nil {
		return key, nil
	}
	if !errors.Is(e, sql.ErrNoRows) {
		return "", e
	}

	b, ct, err := fetch(ctx, path)
	if err != nil {
		// Best effort: a missing logo never blocks the listing.
		log.Printf("[logo-cache] fetch path=%s err=%v", path, err)
		return "", nil
	}
	if len(b) == 0 {
		return "", nil
	}

	if ct == "" || !strings.HasPrefix(ct, "image/") {
		// sniff as fallback
		sn := http.DetectContentType(b)
		if !strings.HasPrefix(sn, "image/") {
			return "", errors.New("not an image")
		}
		ct = sn
	}

	_, err = db.ExecContext(ctx, `
INSERT OR REPLACE INTO logos(key, content_type, bytes, fetched_at)
VALUES(?,?,?,?);`,
		key, ct, b, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", err
	}
	return key, nil
}

// GetLogo returns the cached bytes plus content type for one key.
func GetLogo(ctx context.Context, db *sql.DB, key string) ([]byte, string, error) {
	var ct string
	var b []byte
	err := db.QueryRowContext(ctx,
		`SELECT content_type, bytes FROM logos WHERE key = ? LIMIT 1;`, key,
	).Scan(&ct, &b)
	if err != nil {
		return nil, "", err
	}
	return b, ct, nil
}
