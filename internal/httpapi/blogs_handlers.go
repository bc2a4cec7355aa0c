package httpapi

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"jobdesk-engine/internal/domain"
	"jobdesk-engine/internal/remote"
	"jobdesk-engine/internal/store"
	"jobdesk-engine/internal/views"
)

type BlogsHandler struct {
	DB     *sql.DB
	Blogs  *views.Blogs
	Client *remote.Client
}

type blogListResponse struct {
	listResponse[domain.Blog]
	Categories []string `json:"categories"`
}

// List is the client-filtered pipeline: the whole blog list is fetched
// (or reused from the snapshot when upstream is down) and the category
// chip + search query are evaluated in memory.
func (h BlogsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := h.Blogs.View()

	h.Blogs.SetCategory(q.Get("category"))
	v.SetQuery(q.Get("q"))

	if err := v.Load(r.Context()); err != nil {
		log.Printf("[blogs] upstream list err=%v, serving snapshot", err)
		snap, serr := store.ListBlogs(r.Context(), h.DB)
		if serr != nil {
			WriteUpstreamError(w, r, err)
			return
		}
		writeJSON(w, blogListResponse{
			listResponse: listResponse[domain.Blog]{
				Data: snap, Total: len(snap), Page: 1, Size: len(snap),
				TotalPages: 1, State: v.State().String(), Stale: true,
			},
		})
		return
	}

	items := v.Items()
	pager := v.Pager()
	writeJSON(w, blogListResponse{
		listResponse: listResponse[domain.Blog]{
			Data:       items,
			Total:      len(items),
			Page:       pager.Page,
			Size:       pager.Size,
			TotalPages: pager.TotalPages,
			State:      v.State().String(),
		},
		Categories: h.Blogs.CategoryNames(),
	})
}

// Detail aggregates a blog with its related posts (same category, self
// excluded, capped at the related limit). Related going missing never
// blanks the article.
func (h BlogsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/blogs/")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	res, err := h.Blogs.Detail(r.Context(), id)
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	writeJSON(w, res)
}

// Update is the admin blog-edit passthrough.
func (h BlogsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/blogs/")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var b domain.Blog
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	updated, err := h.Client.UpdateBlog(r.Context(), id, b)
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	writeJSON(w, updated)
}
