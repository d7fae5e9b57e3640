package user

import (
	"context"
	"fmt"

	"github.com/redmonkez12/profile-directory/internal/logging"
)

// Service serves the read side of the directory: listing and search
type Service struct {
	repo   Repository
	cache  ProfileCache
	logger *logging.Logger
}

func NewService(repo Repository, cache ProfileCache, logger *logging.Logger) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &Service{repo: repo, cache: cache, logger: logger}
}

// ListAll returns every profile, newest first
func (s *Service) ListAll(ctx context.Context) ([]Profile, error) {
	// The generation is read before the store so a registration landing
	// mid-query retires this snapshot instead of being hidden by it.
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.Warn("profile cache generation read failed", "error", err)
		return s.listFromStore(ctx)
	}

	cached, ok, err := s.cache.Get(ctx, gen)
	if err != nil {
		s.logger.Warn("profile cache read failed", "error", err)
	} else if ok {
		return cached, nil
	}

	profiles, err := s.listFromStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, gen, profiles); err != nil {
		s.logger.Warn("profile cache write failed", "error", err)
	}

	return profiles, nil
}

func (s *Service) listFromStore(ctx context.Context) ([]Profile, error) {
	users, err := s.repo.ListByNewest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return ToProfiles(users), nil
}

// Search returns profiles whose name or a skill contains query, or whose
// city contains location. Blank input on both sides yields no results.
func (s *Service) Search(ctx context.Context, query, location string) ([]Profile, error) {
	criteria, ok := BuildSearch(query, location)
	if !ok {
		return []Profile{}, nil
	}

	users, err := s.repo.Search(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}

	return ToProfiles(users), nil
}

// Ping checks the underlying store
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
