package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quickthumb/internal/model"
	"quickthumb/internal/provider"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) AddCredits(ctx context.Context, userID string, amount int) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockUserRepository) SpendCredit(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockSessionRepository is a mock implementation of repository.SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByToken(ctx context.Context, token string) (*model.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockThumbnailRepository is a mock implementation of repository.ThumbnailRepository.
type MockThumbnailRepository struct {
	mock.Mock
}

func (m *MockThumbnailRepository) Create(ctx context.Context, thumbnail *model.Thumbnail) error {
	args := m.Called(ctx, thumbnail)
	return args.Error(0)
}

func (m *MockThumbnailRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]model.Thumbnail, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Thumbnail), args.Error(1)
}

// MockWebhookEventRepository is a mock implementation of repository.WebhookEventRepository.
type MockWebhookEventRepository struct {
	mock.Mock
}

func (m *MockWebhookEventRepository) MarkProcessed(ctx context.Context, event *model.WebhookEvent) (bool, error) {
	args := m.Called(ctx, event)
	return args.Bool(0), args.Error(1)
}

// MockIdentityClient is a mock implementation of provider.IdentityClient.
type MockIdentityClient struct {
	mock.Mock
}

func (m *MockIdentityClient) ResolveSession(ctx context.Context, sessionID string) (*provider.Profile, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Profile), args.Error(1)
}

// MockImageGenerator is a mock implementation of provider.ImageGenerator.
type MockImageGenerator struct {
	mock.Mock
}

func (m *MockImageGenerator) Generate(ctx context.Context, prompt string, refImages []string) ([]byte, error) {
	args := m.Called(ctx, prompt, refImages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockArtifactStore is a mock implementation of storage.ArtifactStore.
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Save(ctx context.Context, image []byte) (string, error) {
	args := m.Called(ctx, image)
	return args.String(0), args.Error(1)
}

// MockSettler is a mock implementation of Settler.
type MockSettler struct {
	mock.Mock
}

func (m *MockSettler) Settle(ctx context.Context, user *model.User, pack model.CreditPack) (string, error) {
	args := m.Called(ctx, user, pack)
	return args.String(0), args.Error(1)
}
