package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobdesk-engine/internal/config"
	"jobdesk-engine/internal/domain"
	"jobdesk-engine/internal/events"
	"jobdesk-engine/internal/refresh"
	"jobdesk-engine/internal/remote"
	"jobdesk-engine/internal/store"
	"jobdesk-engine/internal/views"
)

// testEnv spins a fake upstream plus the full local mux around it.
type testEnv struct {
	mux      *http.ServeMux
	upstream *httptest.Server
	hub      *events.Hub
}

func newEnv(t *testing.T, upstream http.HandlerFunc) *testEnv {
	t.Helper()

	up := httptest.NewServer(upstream)
	t.Cleanup(up.Close)

	db, err := store.Open(t.TempDir() + "/test.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))

	client := remote.New(up.URL, 5*time.Second, nil)
	hub := events.NewHub()

	var cfg config.Config
	cfg.App.Port = 38472
	cfg.API.BaseURL = up.URL
	cfg.API.TimeoutSeconds = 5
	cfg.API.RatePerSecond = 100
	cfg.API.RateBurst = 100
	cfg.Views.PageSize = 10
	cfg.Views.RelatedLimit = 3

	var cfgVal, refreshStatus atomic.Value
	cfgVal.Store(cfg)
	refreshStatus.Store(refresh.Status{})

	mux := NewMux(Deps{
		DB:            db.Pool,
		Hub:           hub,
		Client:        client,
		Jobs:          views.NewJobs(client, 10),
		Blogs:         views.NewBlogs(client, 3),
		Startups:      views.NewStartups(client, 10),
		Applicants:    views.NewApplicants(client, 10),
		CfgVal:        &cfgVal,
		RefreshStatus: &refreshStatus,
		UserCfgPath:   t.TempDir() + "/config.yml",
		LoadCfg:       func() (config.Config, error) { return cfg, nil },
		RunRefresh:    func(ctx context.Context, d refresh.Deps) error { return nil },
	})

	return &testEnv{mux: mux, upstream: up, hub: hub}
}

func (e *testEnv) do(t *testing.T, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *strings.Reader
	if body != "" {
		rd = strings.NewReader(body)
	} else {
		rd = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	rec := e.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
}

func TestJobsListMapsQueryToUpstreamFilter(t *testing.T) {
	var q map[string]string
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/vacancies/filter", r.URL.Path)
		q = map[string]string{}
		for k := range r.URL.Query() {
			q[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(`{"data":[{"id":1,"title":"Go dev"}],"total":21}`))
	})

	rec := e.do(t, http.MethodGet,
		"/jobs?categoryId=3&seniorityLevel=senior&isRemote=true&title=go&page=2&size=10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "3", q["categoryId"])
	assert.Equal(t, "senior", q["seniorityLevel"])
	assert.Equal(t, "true", q["isRemote"])
	assert.Equal(t, "go", q["title"])
	assert.Equal(t, "10", q["size"])

	var body struct {
		Total      int    `json:"total"`
		TotalPages int    `json:"totalPages"`
		State      string `json:"state"`
		Stale      bool   `json:"stale"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 21, body.Total)
	assert.Equal(t, 3, body.TotalPages)
	assert.Equal(t, "ready", body.State)
	assert.False(t, body.Stale)
}

func TestJobsListServesSnapshotWhenUpstreamDown(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	rec := e.do(t, http.MethodGet, "/jobs", "")
	// Snapshot is empty but present, so the endpoint still answers 200.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"stale":true`)
}

func TestJobsDetailAggregates(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/vacancies/7":
			w.Write([]byte(`{"id":7,"title":"Go dev","companyId":4,"categoryId":2}`))
		case "/companies/4":
			w.Write([]byte(`{"id":4,"name":"Acme"}`))
		case "/categories/2":
			w.Write([]byte(`{"id":2,"name":"Engineering"}`))
		default:
			http.NotFound(w, r)
		}
	})

	rec := e.do(t, http.MethodGet, "/jobs/7", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Primary   domain.Vacancy             `json:"primary"`
		Secondary map[string]json.RawMessage `json:"secondary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, int64(7), res.Primary.ID)
	assert.Contains(t, string(res.Secondary["company"]), "Acme")
	assert.Contains(t, string(res.Secondary["category"]), "Engineering")
}

func TestJobsDetailBadID(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	rec := e.do(t, http.MethodGet, "/jobs/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplicationsUpdateStatusPublishesEvent(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && r.URL.Path == "/applications/5" {
			w.Write([]byte(`{}`))
			return
		}
		http.NotFound(w, r)
	})

	ch := e.hub.Subscribe()
	defer e.hub.Unsubscribe(ch)

	rec := e.do(t, http.MethodPut, "/applications/5", `{"status":"interview"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	select {
	case msg := <-ch:
		assert.Contains(t, msg, events.TypeApplicationMoved)
		assert.Contains(t, msg, `"status":"interview"`)
	case <-time.After(time.Second):
		t.Fatal("no SSE event published")
	}
}

func TestApplicationsUpdateStatusRejectsUnknown(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called")
	})
	rec := e.do(t, http.MethodPut, "/applications/5", `{"status":"hired"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyForwardsMultipart(t *testing.T) {
	var fields map[string]string
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/apply", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		fields = map[string]string{}
		for k := range r.MultipartForm.Value {
			fields[k] = r.FormValue(k)
		}
		w.WriteHeader(http.StatusCreated)
	})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("vacancy_id", "12")
	_ = mw.WriteField("first_name", "Dana")
	_ = mw.WriteField("email", "dana@example.com")
	_ = mw.WriteField("job_title", "Backend Engineer")
	fw, _ := mw.CreateFormFile("cv_file", "cv.pdf")
	fw.Write([]byte("%PDF fake"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/apply", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Dana", fields["first_name"])
	assert.Equal(t, "12", fields["vacancy_id"])
}

func TestApplyRejectsMissingCV(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called")
	})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("first_name", "Dana")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/apply", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVacancyBlockAction(t *testing.T) {
	var gotPath string
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	})

	ch := e.hub.Subscribe()
	defer e.hub.Unsubscribe(ch)

	rec := e.do(t, http.MethodPost, "/vacancies/9/block", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/vacancies/9/block", gotPath)

	select {
	case msg := <-ch:
		assert.Contains(t, msg, events.TypeVacancyChanged)
	case <-time.After(time.Second):
		t.Fatal("no SSE event published")
	}
}

func TestVacancyUnknownAction(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	rec := e.do(t, http.MethodPost, "/vacancies/9/promote", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoriesCRUDPassthrough(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/categories":
			w.Write([]byte(`{"id":1,"name":"Design"}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/categories/1":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})

	rec := e.do(t, http.MethodPost, "/categories", `{"name":"Design"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Design")

	rec = e.do(t, http.MethodDelete, "/categories/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = e.do(t, http.MethodPost, "/categories", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIndustriesCreateHitsAdminRoute(t *testing.T) {
	var gotPath string
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"id":1,"name":"Fintech"}`))
	})

	rec := e.do(t, http.MethodPost, "/industries", `{"name":"Fintech"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/admin/industries", gotPath)
}

func TestStartupsIndustriesPanel(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/industries":
			w.Write([]byte(`[{"id":1,"name":"Fintech"}]`))
		case "/industries/1/companies":
			w.Write([]byte(`{"total":4}`))
		default:
			http.NotFound(w, r)
		}
	})

	rec := e.do(t, http.MethodGet, "/startups/industries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"companyCount":4`)
}

func TestConfigGetAndValidate(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := e.do(t, http.MethodGet, "/config", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"page_size":10`)

	rec = e.do(t, http.MethodGet, "/config/validate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var vr config.Validation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vr))
	assert.True(t, vr.OK())
}

func TestConfigPutRejectsInvalid(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	rec := e.do(t, http.MethodPut, "/config", `{"app":{"port":0}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "errors")
}

func TestConfigPutRejectsUnknownFields(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	rec := e.do(t, http.MethodPut, "/config", `{"bogus":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoNotFound(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	rec := e.do(t, http.MethodGet, "/logo/deadbeef", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRefreshStatusAndRun(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := e.do(t, http.MethodGet, "/refresh/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"running":false`)

	rec = e.do(t, http.MethodPost, "/refresh/run", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
}

func TestMethodNotAllowed(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	rec := e.do(t, http.MethodDelete, "/jobs", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUpstreamErrorMapping(t *testing.T) {
	e := newEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"bad filter"}`))
	})

	rec := e.do(t, http.MethodGet, "/jobs/counts", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "bad filter")
}

func TestPathIDHelpers(t *testing.T) {
	id, ok := pathID("/jobs/42", "/jobs/")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = pathID("/jobs/", "/jobs/")
	assert.False(t, ok)
	_, ok = pathID("/jobs/0", "/jobs/")
	assert.False(t, ok)
	_, ok = pathID("/jobs/1/extra", "/jobs/")
	assert.False(t, ok)

	id, action, ok := pathIDAction("/vacancies/9/block", "/vacancies/")
	assert.True(t, ok)
	assert.Equal(t, int64(9), id)
	assert.Equal(t, "block", action)

	_, _, ok = pathIDAction("/vacancies/9", "/vacancies/")
	assert.False(t, ok)
}
