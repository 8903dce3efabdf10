package repository

import (
	"context"
	"database/sql"

	"github.com/article-share-api/internal/database"
	"github.com/article-share-api/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// Create inserts a new article. The database assigns the id and creation
// timestamp, which are written back into article.
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (url, title, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		article.URL, article.Title, article.UserID,
	).Scan(&article.ID, &article.CreatedAt)
}

// GetByID retrieves an article by ID. Returns nil when not found.
func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	query := `SELECT id, url, title, user_id, created_at FROM articles WHERE id = $1`

	var article models.Article
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.URL, &article.Title, &article.UserID, &article.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &article, nil
}

// ListWithAuthors returns all articles joined with the author's username,
// most recent first. Ties on created_at keep insertion order (ascending id).
func (r *articleRepo) ListWithAuthors(ctx context.Context) ([]models.ArticleWithAuthor, error) {
	query := `
		SELECT articles.id, articles.url, articles.title, articles.user_id,
		       articles.created_at, users.username
		FROM articles
		JOIN users ON articles.user_id = users.id
		ORDER BY articles.created_at DESC, articles.id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []models.ArticleWithAuthor{}
	for rows.Next() {
		var a models.ArticleWithAuthor
		err := rows.Scan(&a.ID, &a.URL, &a.Title, &a.UserID, &a.CreatedAt, &a.Username)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// Delete removes an article by ID and reports whether a row was deleted
func (r *articleRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}
