package auth

import (
	"github.com/article-share-api/internal/models"
)

// CanDelete decides whether the requester may delete the article: the owner
// or an admin may, nobody else. Pure decision, no side effects. Existence of
// the article must already be resolved by the caller.
func CanDelete(article *models.Article, requesterID int64, requesterIsAdmin bool) bool {
	return article.UserID == requesterID || requesterIsAdmin
}
