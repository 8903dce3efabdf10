package repository

import (
	"context"
	"errors"

	"github.com/article-share-api/internal/database"
	"github.com/article-share-api/internal/models"
	"github.com/lib/pq"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	ListWithAuthors(ctx context.Context) ([]models.ArticleWithAuthor, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Article ArticleRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Article: NewArticleRepo(db),
	}
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation. The unique index on users.username is the backstop for the
// duplicate-username check under concurrent registration.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
