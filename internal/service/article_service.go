package service

import (
	"context"
	"fmt"

	"github.com/article-share-api/internal/auth"
	"github.com/article-share-api/internal/models"
	"github.com/article-share-api/internal/repository"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles repository.ArticleRepository
	users    repository.UserRepository
	log      zerolog.Logger
}

func newArticleService(articles repository.ArticleRepository, users repository.UserRepository, log zerolog.Logger) *articleService {
	return &articleService{
		articles: articles,
		users:    users,
		log:      log.With().Str("component", "article_service").Logger(),
	}
}

// List returns all articles with their author's username, most recent first
func (s *articleService) List(ctx context.Context) ([]models.ArticleWithAuthor, error) {
	articles, err := s.articles.ListWithAuthors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, nil
}

// Create persists a new article owned by authorID. The URL is validated by
// the handler before this is called; an empty title defaults to the URL.
func (s *articleService) Create(ctx context.Context, url, title string, authorID int64) (*models.ArticleWithAuthor, error) {
	if title == "" {
		title = url
	}

	article := &models.Article{
		URL:    url,
		Title:  title,
		UserID: authorID,
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load author: %w", err)
	}

	result := &models.ArticleWithAuthor{Article: *article}
	if author != nil {
		result.Username = author.Username
	}

	s.log.Info().Int64("article_id", article.ID).Int64("user_id", authorID).Msg("Article created")

	return result, nil
}

// Delete removes an article. Existence is resolved first (ErrNotFound),
// ownership second (ErrForbidden): a delete of a missing id reports not
// found even to a non-owner.
func (s *articleService) Delete(ctx context.Context, id, requesterID int64, requesterIsAdmin bool) error {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load article: %w", err)
	}
	if article == nil {
		return ErrNotFound
	}

	if !auth.CanDelete(article, requesterID, requesterIsAdmin) {
		return ErrForbidden
	}

	deleted, err := s.articles.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if !deleted {
		// Removed between the existence check and the delete.
		return ErrNotFound
	}

	s.log.Info().Int64("article_id", id).Int64("requester_id", requesterID).Msg("Article deleted")

	return nil
}
