package httpapi

import (
	"encoding/json"
	"net/http"

	"jobdesk-engine/internal/remote"
)

// CatalogHandler covers the admin taxonomies: job categories and
// startup industries. Both are plain passthroughs to the upstream CRUD.
type CatalogHandler struct {
	Client *remote.Client
}

type nameReq struct {
	Name string `json:"name"`
}

func decodeName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req nameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return "", false
	}
	if req.Name == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_name", "name is required")
		return "", false
	}
	return req.Name, true
}

func (h CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	out, err := h.Client.Categories(r.Context())
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	writeJSON(w, out)
}

func (h CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	name, ok := decodeName(w, r)
	if !ok {
		return
	}
	out, err := h.Client.CreateCategory(r.Context(), name)
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, out)
}

func (h CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/categories/")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	name, ok := decodeName(w, r)
	if !ok {
		return
	}
	out, err := h.Client.UpdateCategory(r.Context(), id, name)
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	writeJSON(w, out)
}

func (h CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/categories/")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	if err := h.Client.DeleteCategory(r.Context(), id); err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h CatalogHandler) ListIndustries(w http.ResponseWriter, r *http.Request) {
	out, err := h.Client.Industries(r.Context())
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	writeJSON(w, out)
}

func (h CatalogHandler) CreateIndustry(w http.ResponseWriter, r *http.Request) {
	name, ok := decodeName(w, r)
	if !ok {
		return
	}
	out, err := h.Client.CreateIndustry(r.Context(), name)
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, out)
}

func (h CatalogHandler) UpdateIndustry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/industries/")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	name, ok := decodeName(w, r)
	if !ok {
		return
	}
	out, err := h.Client.UpdateIndustry(r.Context(), id, name)
	if err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	writeJSON(w, out)
}

func (h CatalogHandler) DeleteIndustry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/industries/")
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	if err := h.Client.DeleteIndustry(r.Context(), id); err != nil {
		WriteUpstreamError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
