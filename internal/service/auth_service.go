package service

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/xxxsen/authd/internal/model"
	appErr "github.com/xxxsen/authd/internal/pkg/errors"
	"github.com/xxxsen/authd/internal/pkg/jwt"
	"github.com/xxxsen/authd/internal/pkg/password"
)

// UserStore is the store handle the service is constructed with.
// Create reports a duplicate email as ErrDuplicateEmail; lookups report
// a missing row as ErrUserNotFound.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, userID int64) (*model.User, error)
}

type AuthService struct {
	users     UserStore
	jwtSecret []byte
	jwtTTL    time.Duration
	// profiles caches users by id. Rows are immutable after creation
	// (no update or delete path exists), so entries never go stale.
	profiles *lru.Cache[int64, *model.User]
}

func NewAuthService(users UserStore, secret []byte, ttl time.Duration, cacheSize int) *AuthService {
	s := &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl}
	if cacheSize > 0 {
		s.profiles, _ = lru.New[int64, *model.User](cacheSize)
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, name, email, plainPassword string) (*model.User, string, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, "", err
	}
	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := jwt.GenerateToken(user.ID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	s.cacheProfile(user)
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", appErr.ErrInvalidCredentials
	}
	token, err := jwt.GenerateToken(user.ID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	s.cacheProfile(user)
	return user, token, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*model.User, error) {
	if s.profiles != nil {
		if user, ok := s.profiles.Get(userID); ok {
			return user, nil
		}
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cacheProfile(user)
	return user, nil
}

func (s *AuthService) cacheProfile(user *model.User) {
	if s.profiles != nil {
		s.profiles.Add(user.ID, user)
	}
}
