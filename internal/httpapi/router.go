package httpapi

import "net/http"

// NewMux wires every endpoint the UI talks to. main() wraps the result
// in the middleware chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Jobs (public listing pipeline)
	jh := JobsHandler{DB: d.DB, Jobs: d.Jobs}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/jobs/counts", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.Counts,
	}))
	mux.HandleFunc("/jobs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.Detail, // /jobs/{id}
	}))

	// Blogs
	bh := BlogsHandler{DB: d.DB, Blogs: d.Blogs, Client: d.Client}
	mux.HandleFunc("/blogs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: bh.List,
	}))
	mux.HandleFunc("/blogs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: bh.Detail, // /blogs/{id}
		http.MethodPut: bh.Update,
	}))

	// Startups
	sth := StartupsHandler{Startups: d.Startups}
	mux.HandleFunc("/startups", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sth.List,
	}))
	mux.HandleFunc("/startups/industries", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sth.Industries,
	}))

	// Applications (company dashboard) + public apply form
	ah := ApplicationsHandler{Applicants: d.Applicants, Client: d.Client, Hub: d.Hub}
	mux.HandleFunc("/applications", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ah.List,
	}))
	mux.HandleFunc("/applications/", methodMux(map[string]http.HandlerFunc{
		http.MethodPut: ah.UpdateStatus, // /applications/{id}
	}))
	mux.HandleFunc("/apply", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Apply,
	}))

	// Admin vacancies
	vh := VacanciesHandler{Client: d.Client, Hub: d.Hub}
	mux.HandleFunc("/vacancies", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: vh.Create,
	}))
	mux.HandleFunc("/vacancies/", func(w http.ResponseWriter, r *http.Request) {
		// /vacancies/{id} (PUT) and /vacancies/{id}/{action} (POST)
		if _, _, ok := pathIDAction(r.URL.Path, "/vacancies/"); ok {
			methodMux(map[string]http.HandlerFunc{
				http.MethodPost: vh.Action,
			})(w, r)
			return
		}
		methodMux(map[string]http.HandlerFunc{
			http.MethodPut: vh.Update,
		})(w, r)
	})

	// Taxonomies
	cth := CatalogHandler{Client: d.Client}
	mux.HandleFunc("/categories", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  cth.ListCategories,
		http.MethodPost: cth.CreateCategory,
	}))
	mux.HandleFunc("/categories/", methodMux(map[string]http.HandlerFunc{
		http.MethodPut:    cth.UpdateCategory,
		http.MethodDelete: cth.DeleteCategory,
	}))
	mux.HandleFunc("/industries", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  cth.ListIndustries,
		http.MethodPost: cth.CreateIndustry,
	}))
	mux.HandleFunc("/industries/", methodMux(map[string]http.HandlerFunc{
		http.MethodPut:    cth.UpdateIndustry,
		http.MethodDelete: cth.DeleteIndustry,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		Hub:         d.Hub,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/token", methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   sh.SetAPIToken,
		http.MethodDelete: sh.DeleteAPIToken,
	}))

	// Snapshot refresh
	rh := RefreshHandler{Deps: d}
	mux.HandleFunc("/refresh/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Status,
	}))
	mux.HandleFunc("/refresh/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Run,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Logos
	lh := LogosHandler{DB: d.DB}
	mux.HandleFunc("/logo/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.GetByKey,
	}))

	return mux
}
