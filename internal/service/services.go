package service

import (
	"context"
	"fmt"

	"github.com/article-share-api/internal/auth"
	"github.com/article-share-api/internal/models"
	"github.com/article-share-api/internal/repository"
	"github.com/rs/zerolog"
)

// AuthService defines the interface for registration and login
type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.AuthResponse, error)
	Login(ctx context.Context, username, password string) (*models.AuthResponse, error)
	EnsureAdmin(ctx context.Context) error
}

// ArticleService defines the interface for article operations
type ArticleService interface {
	List(ctx context.Context) ([]models.ArticleWithAuthor, error)
	Create(ctx context.Context, url, title string, authorID int64) (*models.ArticleWithAuthor, error)
	Delete(ctx context.Context, id, requesterID int64, requesterIsAdmin bool) error
}

// StatsService exposes row counts for the stats endpoint
type StatsService interface {
	GetCount(ctx context.Context, resource string) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Auth    AuthService
	Article ArticleService
	Stats   StatsService
}

// NewServices creates all services. The hasher and token codec are injected
// so callers (and tests) control the cryptographic configuration.
func NewServices(repos *repository.Repositories, hasher auth.Hasher, tokens auth.TokenCodec, adminPassword string, log zerolog.Logger) *Services {
	return &Services{
		Auth:    newAuthService(repos.User, hasher, tokens, adminPassword, log),
		Article: newArticleService(repos.Article, repos.User, log),
		Stats:   newStatsService(repos),
	}
}

// statsService is the concrete implementation of StatsService
type statsService struct {
	repos *repository.Repositories
}

func newStatsService(repos *repository.Repositories) *statsService {
	return &statsService{repos: repos}
}

// GetCount returns the number of rows for a resource
func (s *statsService) GetCount(ctx context.Context, resource string) (int, error) {
	switch resource {
	case "users":
		return s.repos.User.Count(ctx)
	case "articles":
		return s.repos.Article.Count(ctx)
	default:
		return 0, fmt.Errorf("unknown resource: %s", resource)
	}
}
