package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus anything the UI
// should surface before the config is saved.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.API.BaseURL = strings.TrimRight(strings.TrimSpace(out.API.BaseURL), "/")
	out.API.TokenAccount = strings.TrimSpace(out.API.TokenAccount)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.API.BaseURL == "" {
		res.addErr("api.base_url is required")
	} else if u, err := url.Parse(out.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("api.base_url must be an absolute URL: %q", out.API.BaseURL)
	}
	if out.API.TimeoutSeconds <= 0 {
		res.addErr("api.timeout_seconds must be > 0")
	}
	if out.API.RatePerSecond <= 0 {
		res.addErr("api.rate_per_second must be > 0")
	} else if out.API.RatePerSecond > 20 {
		res.addWarn("api.rate_per_second is high (%.0f); the upstream may throttle you.", out.API.RatePerSecond)
	}
	if out.API.RateBurst <= 0 {
		res.addErr("api.rate_burst must be > 0")
	}

	if out.Views.PageSize <= 0 {
		res.addErr("views.page_size must be > 0")
	} else if out.Views.PageSize > 100 {
		res.addWarn("views.page_size is large (%d); listing pages will be slow.", out.Views.PageSize)
	}
	if out.Views.RelatedLimit <= 0 {
		res.addErr("views.related_limit must be > 0")
	}

	if out.Refresh.Enabled {
		if out.Refresh.Seconds <= 0 {
			res.addErr("refresh.seconds must be > 0 when refresh.enabled=true")
		} else if out.Refresh.Seconds < 10 {
			res.addWarn("refresh.seconds is very low (%d) and may cause rate limits.", out.Refresh.Seconds)
		}
	}

	return out, res
}
