package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redmonkez12/profile-directory/internal/apperror"
	"github.com/redmonkez12/profile-directory/internal/logging"
	"github.com/redmonkez12/profile-directory/internal/user"
)

// Client-facing messages. Unknown email and wrong password share one.
const (
	msgNameRequired        = "name is required"
	msgEmailRequired       = "email is required"
	msgPasswordRequired    = "password is required"
	msgCredentialsRequired = "email and password are required"
	msgUserExists          = "user already exists"
	msgInvalidCredentials  = "invalid email or password"
)

// RegisterInput is the raw registration data. Skills may be a string or a
// list; Experience may be a number or a numeric string.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	City       string
	Skills     any
	Experience any
	Portfolio  string
	ProfilePic string
}

// Service handles registration and login
type Service struct {
	users  user.Repository
	hasher PasswordHasher
	cache  user.ProfileCache
	logger *logging.Logger
	now    func() time.Time

	// dummyHash is verified when the email is unknown so that both login
	// failures take the same time
	dummyHash string
}

func NewService(users user.Repository, hasher PasswordHasher, cache user.ProfileCache, logger *logging.Logger) (*Service, error) {
	dummyHash, err := hasher.Hash("profile-directory-timing-parity")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	if cache == nil {
		cache = user.NopCache{}
	}

	return &Service{
		users:     users,
		hasher:    hasher,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
		dummyHash: dummyHash,
	}, nil
}

// Register validates and stores a new user, returning its identifier.
//
// The email check before insert is not atomic; the store's unique
// constraint is what actually prevents duplicates, and either path yields
// the same conflict error.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	if name == "" {
		return "", apperror.Validation(msgNameRequired)
	}
	if email == "" {
		return "", apperror.Validation(msgEmailRequired)
	}
	if in.Password == "" {
		return "", apperror.Validation(msgPasswordRequired)
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return "", apperror.Conflict(msgUserExists)
	case !errors.Is(err, user.ErrNotFound):
		return "", fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &user.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		City:         strings.TrimSpace(in.City),
		Skills:       user.NormalizeSkills(in.Skills),
		Experience:   user.CoerceExperience(in.Experience),
		Portfolio:    strings.TrimSpace(in.Portfolio),
		ProfilePic:   strings.TrimSpace(in.ProfilePic),
		CreatedAt:    s.now().UTC(),
	}

	id, err := s.users.Insert(ctx, newUser)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return "", apperror.Conflict(msgUserExists)
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate profile cache", "error", err)
	}

	return id, nil
}

// Login checks credentials and returns the user's profile. No session is
// created.
func (s *Service) Login(ctx context.Context, email, password string) (*user.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperror.Validation(msgCredentialsRequired)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			_, _ = s.hasher.Verify(password, s.dummyHash)
			return nil, apperror.Auth(msgInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	ok, err := s.hasher.Verify(password, existing.PasswordHash)
	if err != nil {
		// an unreadable stored hash can never match
		s.logger.Error("stored password hash is malformed", "user_id", existing.ID, "error", err)
		return nil, apperror.Auth(msgInvalidCredentials)
	}
	if !ok {
		return nil, apperror.Auth(msgInvalidCredentials)
	}

	profile := existing.ToProfile()
	return &profile, nil
}
