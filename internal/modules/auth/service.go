package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

type Store interface {
	Create(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (User, error)
}

type Service struct {
	store Store
	cost  int
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, cost: bcrypt.DefaultCost, now: time.Now}
}

// WithCost returns a copy hashing with the given bcrypt cost.
func (s *Service) WithCost(cost int) *Service {
	cp := *s
	cp.cost = cost
	return &cp
}

func (s *Service) Register(ctx context.Context, username, password, country string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, err
	}
	u := User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(username),
		PasswordHash: string(hash),
		Country:      strings.TrimSpace(country),
		CreatedAt:    s.now(),
	}
	if err := s.store.Create(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Authenticate checks the password. Unknown users and wrong passwords both
// return ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	u, err := s.store.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrUserNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Lookup(ctx context.Context, username string) (User, error) {
	return s.store.GetByUsername(ctx, username)
}
