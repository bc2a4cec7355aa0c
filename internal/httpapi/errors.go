package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobdesk-engine/internal/remote"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// WriteUpstreamError maps an upstream failure onto the local envelope,
// keeping the upstream status when there is one (502 for transport).
func WriteUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	var he *remote.HTTPError
	if errors.As(err, &he) {
		status := he.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
		WriteError(w, r, status, "upstream_error", he.Message)
		return
	}
	WriteError(w, r, http.StatusBadGateway, "upstream_error", err.Error())
}
