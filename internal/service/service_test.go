package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/article-share-api/internal/auth"
	"github.com/article-share-api/internal/mocks"
	"github.com/article-share-api/internal/models"
	"github.com/article-share-api/internal/repository"
	"github.com/article-share-api/internal/service"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func setupServices() (*service.Services, *mocks.MockUserRepository, *mocks.MockArticleRepository) {
	userRepo := mocks.NewMockUserRepository()
	articleRepo := mocks.NewMockArticleRepository()
	articleRepo.Usernames = func(userID int64) string {
		u, _ := userRepo.GetByID(context.Background(), userID)
		if u == nil {
			return ""
		}
		return u.Username
	}

	repos := &repository.Repositories{User: userRepo, Article: articleRepo}
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	tokens := auth.NewJWTCodec("test-secret", time.Hour)
	services := service.NewServices(repos, hasher, tokens, "admin", zerolog.Nop())

	return services, userRepo, articleRepo
}

func TestAuthService_RegisterDuplicateUsername(t *testing.T) {
	services, userRepo, _ := setupServices()
	ctx := context.Background()

	if _, err := services.Auth.Register(ctx, "alice", "secret1"); err != nil {
		t.Fatalf("First register failed: %v", err)
	}

	_, err := services.Auth.Register(ctx, "alice", "other-password")
	if !errors.Is(err, service.ErrDuplicateUsername) {
		t.Errorf("Expected ErrDuplicateUsername, got %v", err)
	}

	count, _ := userRepo.Count(ctx)
	if count != 1 {
		t.Errorf("Expected exactly one user after duplicate register, got %d", count)
	}
}

func TestAuthService_RegisterNeverStoresPlaintext(t *testing.T) {
	services, userRepo, _ := setupServices()
	ctx := context.Background()

	resp, err := services.Auth.Register(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("Expected a token")
	}
	if resp.User.Username != "alice" {
		t.Errorf("Expected username 'alice', got %q", resp.User.Username)
	}

	stored, _ := userRepo.GetByUsername(ctx, "alice")
	if stored == nil {
		t.Fatal("User not stored")
	}
	if stored.PasswordHash == "secret1" || stored.PasswordHash == "" {
		t.Error("Password must be stored as a one-way hash")
	}
}

func TestAuthService_LoginGenericFailure(t *testing.T) {
	services, _, _ := setupServices()
	ctx := context.Background()

	if _, err := services.Auth.Register(ctx, "bob", "secret1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Wrong password and unknown user yield the same outcome.
	_, wrongPass := services.Auth.Login(ctx, "bob", "wrong")
	if !errors.Is(wrongPass, service.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}

	_, noUser := services.Auth.Login(ctx, "nobody", "secret1")
	if !errors.Is(noUser, service.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown user, got %v", noUser)
	}

	if wrongPass.Error() != noUser.Error() {
		t.Error("Login failures must be indistinguishable")
	}

	resp, err := services.Auth.Login(ctx, "bob", "secret1")
	if err != nil {
		t.Fatalf("Login with correct password failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("Expected a token on successful login")
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	services, userRepo, _ := setupServices()
	ctx := context.Background()

	if err := services.Auth.EnsureAdmin(ctx); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}

	admin, _ := userRepo.GetByUsername(ctx, models.AdminUsername)
	if admin == nil {
		t.Fatal("Admin user not created")
	}
	if !admin.IsAdmin {
		t.Error("Bootstrap admin must have is_admin set")
	}

	// Idempotent: a second run on a non-empty store changes nothing.
	if err := services.Auth.EnsureAdmin(ctx); err != nil {
		t.Fatalf("Second EnsureAdmin failed: %v", err)
	}
	count, _ := userRepo.Count(ctx)
	if count != 1 {
		t.Errorf("Expected 1 user after repeated bootstrap, got %d", count)
	}
}

func TestAuthService_EnsureAdminSkipsNonEmptyStore(t *testing.T) {
	services, userRepo, _ := setupServices()
	ctx := context.Background()

	if _, err := services.Auth.Register(ctx, "alice", "secret1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := services.Auth.EnsureAdmin(ctx); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}

	admin, _ := userRepo.GetByUsername(ctx, models.AdminUsername)
	if admin != nil {
		t.Error("Bootstrap must be skipped when the store already has users")
	}
}

func TestArticleService_TitleDefaultsToURL(t *testing.T) {
	services, _, articleRepo := setupServices()
	ctx := context.Background()

	resp, err := services.Auth.Register(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	created, err := services.Article.Create(ctx, "https://e.com", "", resp.User.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Title != "https://e.com" {
		t.Errorf("Expected title to default to url, got %q", created.Title)
	}
	if created.Username != "alice" {
		t.Errorf("Expected author username 'alice', got %q", created.Username)
	}

	stored, _ := articleRepo.GetByID(ctx, created.ID)
	if stored == nil {
		t.Fatal("Article not stored")
	}
	if stored.Title != "https://e.com" {
		t.Errorf("Stored title = %q, want the url", stored.Title)
	}
}

func TestArticleService_OwnerFromSessionOnly(t *testing.T) {
	services, _, articleRepo := setupServices()
	ctx := context.Background()

	resp, _ := services.Auth.Register(ctx, "alice", "secret1")

	created, err := services.Article.Create(ctx, "https://e.com", "hello", resp.User.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	stored, _ := articleRepo.GetByID(ctx, created.ID)
	if stored.UserID != resp.User.ID {
		t.Errorf("Article owner = %d, want authenticated user %d", stored.UserID, resp.User.ID)
	}
}

func TestArticleService_ListOrdering(t *testing.T) {
	services, userRepo, articleRepo := setupServices()
	ctx := context.Background()

	alice := &models.User{Username: "alice", PasswordHash: "x"}
	if err := userRepo.Create(ctx, alice); err != nil {
		t.Fatalf("Create user failed: %v", err)
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, offset := range []time.Duration{0, time.Hour, 2 * time.Hour} {
		a := &models.Article{
			URL:       "https://example.com",
			Title:     "article",
			UserID:    alice.ID,
			CreatedAt: base.Add(offset),
		}
		if err := articleRepo.Create(ctx, a); err != nil {
			t.Fatalf("Create article %d failed: %v", i, err)
		}
	}

	list, err := services.Article.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("Expected 3 articles, got %d", len(list))
	}
	for i := 0; i < len(list)-1; i++ {
		if list[i].CreatedAt.Before(list[i+1].CreatedAt) {
			t.Errorf("List not sorted newest first at index %d", i)
		}
	}
	if !list[0].CreatedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("Expected most recent article first, got %v", list[0].CreatedAt)
	}

	// Idempotent: a second call without writes yields identical output.
	again, err := services.Article.List(ctx)
	if err != nil {
		t.Fatalf("Second List failed: %v", err)
	}
	if len(again) != len(list) {
		t.Fatalf("Second List returned %d articles, want %d", len(again), len(list))
	}
	for i := range list {
		if again[i].ID != list[i].ID {
			t.Errorf("List not idempotent at index %d: %d vs %d", i, again[i].ID, list[i].ID)
		}
	}
}

func TestArticleService_ListTiesKeepInsertionOrder(t *testing.T) {
	services, userRepo, articleRepo := setupServices()
	ctx := context.Background()

	alice := &models.User{Username: "alice", PasswordHash: "x"}
	userRepo.Create(ctx, alice)

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		articleRepo.Create(ctx, &models.Article{
			URL:       "https://example.com",
			Title:     "same-timestamp",
			UserID:    alice.ID,
			CreatedAt: ts,
		})
	}

	list, err := services.Article.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for i := 0; i < len(list)-1; i++ {
		if list[i].ID > list[i+1].ID {
			t.Errorf("Equal timestamps must keep insertion order, got id %d before %d", list[i].ID, list[i+1].ID)
		}
	}
}

func TestArticleService_DeleteNotFoundBeforeForbidden(t *testing.T) {
	services, _, _ := setupServices()
	ctx := context.Background()

	alice, _ := services.Auth.Register(ctx, "alice", "secret1")
	bob, _ := services.Auth.Register(ctx, "bobby", "secret1")

	created, err := services.Article.Create(ctx, "https://x.com", "", alice.User.ID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Nonexistent article reports not found even to a non-owner.
	err = services.Article.Delete(ctx, created.ID+100, bob.User.ID, false)
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing article, got %v", err)
	}

	// Existing article owned by someone else reports forbidden.
	err = services.Article.Delete(ctx, created.ID, bob.User.ID, false)
	if !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected ErrForbidden for non-owner, got %v", err)
	}

	// Admin may delete anything.
	if err := services.Article.Delete(ctx, created.ID, bob.User.ID, true); err != nil {
		t.Errorf("Admin delete failed: %v", err)
	}

	// Deleting again reports not found, not a crash.
	err = services.Article.Delete(ctx, created.ID, alice.User.ID, false)
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for already deleted article, got %v", err)
	}
}

func TestArticleService_OwnerCanDelete(t *testing.T) {
	services, _, articleRepo := setupServices()
	ctx := context.Background()

	alice, _ := services.Auth.Register(ctx, "alice", "secret1")
	created, _ := services.Article.Create(ctx, "https://x.com", "", alice.User.ID)

	if err := services.Article.Delete(ctx, created.ID, alice.User.ID, false); err != nil {
		t.Fatalf("Owner delete failed: %v", err)
	}

	count, _ := articleRepo.Count(ctx)
	if count != 0 {
		t.Errorf("Expected 0 articles after delete, got %d", count)
	}
}
