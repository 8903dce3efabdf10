package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/article-share-api/internal/models"
)

// MockUserRepository is a map-backed implementation of UserRepository.
// Creates are serialized by a mutex so ids stay monotonic under parallel
// requests.
type MockUserRepository struct {
	mu          sync.Mutex
	Users       map[int64]*models.User
	nextID      int64
	CreateError error
	QueryError  error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:  make(map[int64]*models.User),
		nextID: 1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return m.CreateError
	}
	user.ID = m.nextID
	m.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	stored := *user
	m.Users[user.ID] = &stored
	return nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.QueryError != nil {
		return nil, m.QueryError
	}
	for _, u := range m.Users {
		if u.Username == username {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.QueryError != nil {
		return nil, m.QueryError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, nil
	}
	found := *u
	return &found, nil
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.QueryError != nil {
		return false, m.QueryError
	}
	for _, u := range m.Users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.QueryError != nil {
		return 0, m.QueryError
	}
	return len(m.Users), nil
}

// NextID returns the id the next created user would receive
func (m *MockUserRepository) NextID() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nextID
}

// MockArticleRepository is a map-backed implementation of ArticleRepository
type MockArticleRepository struct {
	mu          sync.Mutex
	Articles    map[int64]*models.Article
	insertOrder []int64
	nextID      int64
	CreateError error
	QueryError  error

	// Usernames resolves author usernames for ListWithAuthors; tests wire
	// the user mock in here.
	Usernames func(userID int64) string
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[int64]*models.Article),
		nextID:   1,
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return m.CreateError
	}
	article.ID = m.nextID
	m.nextID++
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}
	stored := *article
	m.Articles[article.ID] = &stored
	m.insertOrder = append(m.insertOrder, article.ID)
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.QueryError != nil {
		return nil, m.QueryError
	}
	a, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	found := *a
	return &found, nil
}

func (m *MockArticleRepository) ListWithAuthors(ctx context.Context) ([]models.ArticleWithAuthor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.QueryError != nil {
		return nil, m.QueryError
	}

	list := []models.ArticleWithAuthor{}
	for _, id := range m.insertOrder {
		a, ok := m.Articles[id]
		if !ok {
			continue
		}
		item := models.ArticleWithAuthor{Article: *a}
		if m.Usernames != nil {
			item.Username = m.Usernames(a.UserID)
		}
		list = append(list, item)
	}

	// Most recent first; stable keeps insertion order on equal timestamps.
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	return list, nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.QueryError != nil {
		return false, m.QueryError
	}
	if _, ok := m.Articles[id]; !ok {
		return false, nil
	}
	delete(m.Articles, id)
	for i, oid := range m.insertOrder {
		if oid == id {
			m.insertOrder = append(m.insertOrder[:i], m.insertOrder[i+1:]...)
			break
		}
	}
	return true, nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.QueryError != nil {
		return 0, m.QueryError
	}
	return len(m.Articles), nil
}

// NextID returns the id the next created article would receive
func (m *MockArticleRepository) NextID() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nextID
}
