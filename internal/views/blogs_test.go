package views

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobdesk-engine/internal/domain"
	"jobdesk-engine/internal/remote"
)

func newUpstream(t *testing.T, handler http.HandlerFunc) *remote.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return remote.New(srv.URL, 5*time.Second, nil)
}

const blogListJSON = `[
  {"id":1,"title":"Go interviews","content":"<p>Prep&nbsp;tips for  candidates</p>","categoryId":1,"categories_name":"Career"},
  {"id":2,"title":"Scaling teams","content":"<p>Hiring fast</p>","categoryId":2,"categories_name":"Management"},
  {"id":3,"title":"Salary bands","content":"<p>Pay transparency</p>","categoryId":1,"categories_name":"Career"},
  {"id":4,"title":"Quiet focus","content":"<p>Deep work</p>","categoryId":1,"categories_name":"Career"}
]`

func TestBlogsClientSideFiltering(t *testing.T) {
	c := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/blogs", r.URL.Path)
		w.Write([]byte(blogListJSON))
	})
	b := NewBlogs(c, 3)
	require.NoError(t, b.View().Load(context.Background()))

	assert.Len(t, b.View().Items(), 4)

	// Category chips compare case-insensitively.
	b.SetCategory("CAREER")
	assert.Len(t, b.View().Items(), 3)

	b.SetCategory("")
	b.View().SetQuery("hiring")
	items := b.View().Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ID)
}

func TestBlogsSearchIncludesBodyText(t *testing.T) {
	c := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(blogListJSON))
	})
	b := NewBlogs(c, 3)
	require.NoError(t, b.View().Load(context.Background()))

	// "transparency" only appears inside the HTML content.
	b.View().SetQuery("transparency")
	items := b.View().Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].ID)
}

func TestBlogsCategoryNames(t *testing.T) {
	c := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(blogListJSON))
	})
	b := NewBlogs(c, 3)
	require.NoError(t, b.View().Load(context.Background()))

	assert.Equal(t, []string{"Career", "Management"}, b.CategoryNames())
}

func TestRelated(t *testing.T) {
	all := []domain.Blog{
		{ID: 1, CategoryID: 1},
		{ID: 2, CategoryID: 2},
		{ID: 3, CategoryID: 1},
		{ID: 4, CategoryID: 1},
		{ID: 5, CategoryID: 1},
	}
	primary := domain.Blog{ID: 1, CategoryID: 1}

	rel := Related(all, primary, 2)
	require.Len(t, rel, 2)
	assert.Equal(t, int64(3), rel[0].ID)
	assert.Equal(t, int64(4), rel[1].ID)

	// Self is excluded even when it's the only candidate.
	assert.Empty(t, Related([]domain.Blog{primary}, primary, 3))
}

func TestBlogsDetailWithRelated(t *testing.T) {
	c := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/blogs/1":
			w.Write([]byte(`{"id":1,"title":"Go interviews","categoryId":1,"categories_name":"Career"}`))
		case "/blogs":
			w.Write([]byte(blogListJSON))
		default:
			http.NotFound(w, r)
		}
	})
	b := NewBlogs(c, 2)

	res, err := b.Detail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Primary.ID)

	rel, ok := res.Secondary["related"].([]domain.Blog)
	require.True(t, ok)
	require.Len(t, rel, 2)
	assert.Equal(t, int64(3), rel[0].ID)
}

func TestBlogsDetailRelatedFailureIsPartial(t *testing.T) {
	c := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/blogs/1":
			w.Write([]byte(`{"id":1,"title":"Go interviews","categoryId":1}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
	b := NewBlogs(c, 2)

	res, err := b.Detail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Primary.ID)
	assert.True(t, res.Absent("related"))
}

func TestHTMLText(t *testing.T) {
	assert.Equal(t, "Prep tips for candidates",
		HTMLText("<p>Prep&nbsp;tips for  candidates</p>"))
	assert.Equal(t, "a b", HTMLText("<div><span>a</span>\n\t<b>b</b></div>"))
	assert.Equal(t, "", HTMLText(""))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("<p>short</p>", 50))

	got := Excerpt("<p>0123456789abcdef</p>", 10)
	assert.Equal(t, "0123456789…", got)

	// Rune-safe on multibyte text.
	got = Excerpt("<p>ééééééééééXX</p>", 10)
	assert.Equal(t, "éééééééééé…", got)
}
