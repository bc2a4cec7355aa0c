package views

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobdesk-engine/internal/listview"
	"jobdesk-engine/internal/remote"
)

func TestVacancyFilterFrom(t *testing.T) {
	f := vacancyFilterFrom(listview.Filters{
		DimCategory:  "3",
		DimSeniority: "senior",
		DimJobType:   "full-time",
		DimRemote:    "true",
		DimSalaryMin: "40000",
		DimSalaryMax: "90000",
		DimLocation:  "Berlin",
	}, "backend")

	assert.Equal(t, remote.VacancyFilter{
		Title:          "backend",
		Location:       "Berlin",
		CategoryID:     3,
		JobType:        "full-time",
		SeniorityLevel: "senior",
		SalaryMin:      40000,
		SalaryMax:      90000,
		IsRemote:       true,
	}, f)
}

func TestVacancyFilterFromIgnoresJunk(t *testing.T) {
	f := vacancyFilterFrom(listview.Filters{
		DimCategory:  "abc",
		DimSalaryMin: "",
		DimRemote:    "yes", // only "true" selects remote
	}, "")

	assert.Zero(t, f.CategoryID)
	assert.Zero(t, f.SalaryMin)
	assert.False(t, f.IsRemote)
}

func TestJobsLoadPassesPagerState(t *testing.T) {
	var gotPage, gotSize string
	c := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotSize = r.URL.Query().Get("size")
		w.Write([]byte(`{"data":[{"id":1,"title":"Go dev"}],"total":25}`))
	})
	j := NewJobs(c, 10)
	j.View().SetPage(2)

	require.NoError(t, j.View().Load(context.Background()))
	assert.Equal(t, "2", gotPage)
	assert.Equal(t, "10", gotSize)
	assert.Equal(t, 25, j.View().Pager().TotalCount)
	assert.Equal(t, 3, j.View().Pager().TotalPages)
}

func TestJobsCategoryCountsFailedCountIsZero(t *testing.T) {
	c := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/categories":
			w.Write([]byte(`[{"id":1,"name":"Engineering"},{"id":2,"name":"Design"}]`))
		case r.URL.Query().Get("categoryId") == "1":
			w.Write([]byte(`{"data":[],"total":8}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	})
	j := NewJobs(c, 10)

	counts, err := j.CategoryCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 8, 2: 0}, counts)
}

func TestJobsCategoryCountsFailsWhenListFails(t *testing.T) {
	c := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	j := NewJobs(c, 10)
	_, err := j.CategoryCounts(context.Background())
	assert.Error(t, err)
}

func TestJobsDetailMissingCompanyIsPartial(t *testing.T) {
	c := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/vacancies/7":
			w.Write([]byte(`{"id":7,"title":"Go dev","companyId":4,"categoryId":2}`))
		case "/categories/2":
			w.Write([]byte(`{"id":2,"name":"Engineering"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	j := NewJobs(c, 10)

	res, err := j.Detail(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Primary.ID)
	assert.True(t, res.Absent("company"))
	assert.NotNil(t, res.Secondary["category"])
}
