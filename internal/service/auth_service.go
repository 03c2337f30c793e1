package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quickthumb/internal/cache"
	"quickthumb/internal/errors"
	"quickthumb/internal/model"
	"quickthumb/internal/provider"
	"quickthumb/internal/repository"
)

const (
	// WelcomeCredits is granted once when a user is first created.
	WelcomeCredits = 5
	// SessionDuration is the fixed validity window of a minted session.
	SessionDuration = 7 * 24 * time.Hour

	userCacheTTL = 5 * time.Minute
)

// AuthService covers the session exchange against the external identity
// provider, guard resolution of bearer tokens, and logout.
type AuthService interface {
	// ExchangeSession resolves an external session id to a profile, upserts
	// the user by email and mints a fresh session. Multiple concurrent
	// sessions per user are permitted.
	ExchangeSession(ctx context.Context, sessionID string) (*model.User, *model.Session, error)
	// ResolveSession maps a bearer token to its user, distinguishing
	// missing, unknown, expired and orphaned tokens. Read-only.
	ResolveSession(ctx context.Context, token string) (*model.User, error)
	// Logout deletes the session for token. Unknown tokens are not an error.
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	identity    provider.IdentityClient
	cache       *cache.Client
	now         func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	identity provider.IdentityClient,
	cache *cache.Client,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		identity:    identity,
		cache:       cache,
		now:         time.Now,
	}
}

// UserCacheKey is the cache key for a resolved user profile. Every credit
// mutation must invalidate it.
func UserCacheKey(userID string) string {
	return "user:" + userID
}

// NewUserID generates a user id in the user_<12 hex> form.
func NewUserID() string {
	return "user_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func (s *authService) ExchangeSession(ctx context.Context, sessionID string) (*model.User, *model.Session, error) {
	profile, err := s.identity.ResolveSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, profile.Email)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, nil, fmt.Errorf("lookup user by email: %w", err)
		}
		user = &model.User{
			UserID:  NewUserID(),
			Email:   profile.Email,
			Name:    profile.Name,
			Picture: profile.Picture,
			Credits: WelcomeCredits,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, nil, fmt.Errorf("create user: %w", err)
		}
	}

	session := &model.Session{
		Token:     uuid.NewString(),
		UserID:    user.UserID,
		ExpiresAt: s.now().Add(SessionDuration),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	s.cache.SetJSON(ctx, UserCacheKey(user.UserID), user, userCacheTTL)
	return user, session, nil
}

func (s *authService) ResolveSession(ctx context.Context, token string) (*model.User, error) {
	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrInvalidSession
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	if session.Expired(s.now()) {
		return nil, errors.ErrSessionExpired
	}

	var cached model.User
	if s.cache.GetJSON(ctx, UserCacheKey(session.UserID), &cached) {
		return &cached, nil
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// orphaned session
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	s.cache.SetJSON(ctx, UserCacheKey(user.UserID), user, userCacheTTL)
	return user, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.DeleteByToken(ctx, token)
}
