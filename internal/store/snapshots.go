package store

import (
	"context"
	"database/sql"
	"time"

	"jobdesk-engine/internal/domain"
)

// ReplaceVacancies swaps the whole vacancy snapshot for the given list.
// Listing caches are replaced wholesale on every fetch, never diffed.
func ReplaceVacancies(ctx context.Context, db *sql.DB, vacancies []domain.Vacancy) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vacancy_snapshot;`); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, v := range vacancies {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO vacancy_snapshot
  (id, title, company_name, category_id, city, country, job_type, seniority_level, salary, is_remote, logo_key, created_at, fetched_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?);`,
			v.ID, v.Title, v.CompanyName, v.CategoryID, v.City, v.Country,
			v.JobType, v.SeniorityLevel, v.Salary, boolToInt(v.IsRemote),
			LogoKey(v.Logo), v.CreatedAt.UTC().Format(time.RFC3339), now,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func ListVacancies(ctx context.Context, db *sql.DB) ([]domain.Vacancy, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, title, company_name, category_id, city, country, job_type, seniority_level, salary, is_remote, created_at
FROM vacancy_snapshot
ORDER BY created_at DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Vacancy
	for rows.Next() {
		var v domain.Vacancy
		var remote int
		var createdStr string
		if err := rows.Scan(&v.ID, &v.Title, &v.CompanyName, &v.CategoryID, &v.City, &v.Country,
			&v.JobType, &v.SeniorityLevel, &v.Salary, &remote, &createdStr); err != nil {
			return nil, err
		}
		v.IsRemote = remote != 0
		v.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		out = append(out, v)
	}
	return out, rows.Err()
}

// ReplaceBlogs swaps the blog snapshot. Only the listing fields plus a
// plain-text excerpt are kept; full HTML bodies stay upstream.
func ReplaceBlogs(ctx context.Context, db *sql.DB, blogs []domain.Blog, excerpt func(html string) string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM blog_snapshot;`); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, b := range blogs {
		ex := ""
		if excerpt != nil {
			ex = excerpt(b.Content)
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO blog_snapshot
  (id, title, category_id, category_name, image_url, excerpt, created_at, fetched_at)
VALUES (?,?,?,?,?,?,?,?);`,
			b.ID, b.Title, b.CategoryID, b.CategoryName, b.ImageURL, ex,
			b.CreatedAt.UTC().Format(time.RFC3339), now,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func ListBlogs(ctx context.Context, db *sql.DB) ([]domain.Blog, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, title, category_id, category_name, image_url, excerpt, created_at
FROM blog_snapshot
ORDER BY created_at DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Blog
	for rows.Next() {
		var b domain.Blog
		var createdStr string
		if err := rows.Scan(&b.ID, &b.Title, &b.CategoryID, &b.CategoryName, &b.ImageURL, &b.Content, &createdStr); err != nil {
			return nil, err
		}
		b.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		out = append(out, b)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
