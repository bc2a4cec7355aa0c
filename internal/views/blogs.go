package views

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobdesk-engine/internal/detail"
	"jobdesk-engine/internal/domain"
	"jobdesk-engine/internal/listview"
	"jobdesk-engine/internal/remote"
)

// DimBlogCategory is the only blog filter dimension. Values compare
// case-insensitively against the category name, so the accessor and
// SetCategory both lower their side.
const DimBlogCategory = "category"

type Blogs struct {
	client       *remote.Client
	view         *listview.View[domain.Blog]
	relatedLimit int
}

func NewBlogs(client *remote.Client, relatedLimit int) *Blogs {
	if relatedLimit <= 0 {
		relatedLimit = 3
	}
	b := &Blogs{client: client, relatedLimit: relatedLimit}
	b.view = listview.NewClientView(blogSchema(), b.fetch)
	return b
}

func (b *Blogs) View() *listview.View[domain.Blog] { return b.view }

func blogSchema() listview.Schema[domain.Blog] {
	return listview.Schema[domain.Blog]{
		Dimensions: map[string]func(domain.Blog) string{
			DimBlogCategory: func(b domain.Blog) string {
				return strings.ToLower(b.CategoryName)
			},
		},
		SearchText: []func(domain.Blog) string{
			func(b domain.Blog) string { return b.Title },
			func(b domain.Blog) string { return HTMLText(b.Content) },
		},
	}
}

// Blogs are fetched whole and filtered in memory; total is negative so
// the view derives pagination from the cache length.
func (b *Blogs) fetch(ctx context.Context, _ listview.Filters, _ string, _ listview.Pager) ([]domain.Blog, int, error) {
	blogs, err := b.client.Blogs(ctx)
	if err != nil {
		return nil, 0, err
	}
	return blogs, -1, nil
}

// SetCategory selects the category chip; "" (the "All" chip) clears it.
func (b *Blogs) SetCategory(name string) {
	b.view.SetFilter(DimBlogCategory, strings.ToLower(name))
}

// CategoryNames lists the distinct category chips in cache order, the way
// the listing page derives them from the fetched blogs.
func (b *Blogs) CategoryNames() []string {
	seen := map[string]bool{}
	var out []string
	for _, blog := range b.view.Cache() {
		if blog.CategoryName == "" || seen[blog.CategoryName] {
			continue
		}
		seen[blog.CategoryName] = true
		out = append(out, blog.CategoryName)
	}
	return out
}

// Related picks blogs sharing the primary's category, excluding the
// primary itself, truncated to the related-items limit in cache order.
func Related(all []domain.Blog, primary domain.Blog, limit int) []domain.Blog {
	var same []domain.Blog
	for _, b := range all {
		if b.CategoryID == primary.CategoryID && b.ID != primary.ID {
			same = append(same, b)
		}
	}
	return listview.Head(same, limit)
}

// Detail aggregates a blog with its related posts. A failed related
// fetch leaves the article intact and marks "related" missing.
func (b *Blogs) Detail(ctx context.Context, id int64) (detail.Result[domain.Blog], error) {
	loader := detail.Loader[domain.Blog]{
		Primary: b.client.Blog,
		Relations: []detail.Relation[domain.Blog]{
			{Name: "related", Fetch: func(ctx context.Context, primary domain.Blog) (any, error) {
				return b.RelatedTo(ctx, primary)
			}},
		},
	}
	return loader.Load(ctx, id)
}

// RelatedTo resolves a blog detail's related list from the live upstream
// list (the upstream has no dedicated related endpoint).
func (b *Blogs) RelatedTo(ctx context.Context, primary domain.Blog) ([]domain.Blog, error) {
	all, err := b.client.Blogs(ctx)
	if err != nil {
		return nil, err
	}
	return Related(all, primary, b.relatedLimit), nil
}

// HTMLText flattens a blog's HTML body to plain text for searching and
// snapshot excerpts.
func HTMLText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return cleanText(doc.Text())
}

// Excerpt returns the first n runes of the flattened body.
func Excerpt(html string, n int) string {
	text := HTMLText(html)
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
