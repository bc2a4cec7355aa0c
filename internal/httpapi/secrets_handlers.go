package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"jobdesk-engine/internal/config"
	"jobdesk-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setAPITokenReq struct {
	Token string `json:"token"`
}

func (h SecretsHandler) SetAPIToken(w http.ResponseWriter, r *http.Request) {
	var req setAPITokenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	if err := secrets.SetAPIToken(secrets.APITokenAccount(cfg), req.Token); err != nil {
		http.Error(w, "failed to store token: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) DeleteAPIToken(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	if err := secrets.DeleteAPIToken(secrets.APITokenAccount(cfg)); err != nil {
		http.Error(w, "failed to delete token: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
