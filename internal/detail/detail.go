// Package detail aggregates a primary entity with the related records
// every detail screen fetches off its foreign keys (vacancy -> company,
// vacancy -> category, blog -> related blogs).
package detail

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Relation names one secondary fetch derived from primary fields.
type Relation[P any] struct {
	Name  string
	Fetch func(ctx context.Context, primary P) (any, error)
}

// Result carries the primary plus whatever secondaries resolved. A
// secondary that failed shows up in Missing instead of erroring the whole
// view; the screen renders "not available" for that field.
type Result[P any] struct {
	Primary   P                 `json:"primary"`
	Secondary map[string]any    `json:"secondary"`
	Missing   map[string]string `json:"missing,omitempty"`
}

// Absent reports whether a named secondary failed to resolve.
func (r Result[P]) Absent(name string) bool {
	_, ok := r.Missing[name]
	return ok
}

type Loader[P any] struct {
	Primary   func(ctx context.Context, id int64) (P, error)
	Relations []Relation[P]
}

// Load fetches the primary first and fails fast if that fetch fails: no
// secondary request is issued without a resolved primary, because their
// parameters come from its fields. Secondaries then run concurrently and
// independently; one failing never cancels the others.
func (l Loader[P]) Load(ctx context.Context, id int64) (Result[P], error) {
	var res Result[P]

	primary, err := l.Primary(ctx, id)
	if err != nil {
		return res, err
	}
	res.Primary = primary
	res.Secondary = make(map[string]any, len(l.Relations))
	res.Missing = map[string]string{}

	var mu sync.Mutex
	var g errgroup.Group

	for _, rel := range l.Relations {
		rel := rel
		g.Go(func() error {
			v, err := rel.Fetch(ctx, primary)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("[detail] secondary=%s err=%v", rel.Name, err)
				res.Missing[rel.Name] = err.Error()
				return nil // best-effort: don’t cancel siblings
			}
			res.Secondary[rel.Name] = v
			return nil
		})
	}

	_ = g.Wait()
	if len(res.Missing) == 0 {
		res.Missing = nil
	}
	return res, nil
}
