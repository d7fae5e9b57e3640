package user

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/profile-directory/internal/apperror"
	"github.com/redmonkez12/profile-directory/internal/logging"
)

type fakeCache struct {
	mu          sync.Mutex
	gen         int64
	stored      map[int64][]Profile
	genErr      error
	getErr      error
	sets        int
	invalidated int
}

func (c *fakeCache) Generation(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, c.genErr
}

func (c *fakeCache) Get(_ context.Context, gen int64) ([]Profile, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	p, ok := c.stored[gen]
	return p, ok, nil
}

func (c *fakeCache) Set(_ context.Context, gen int64, p []Profile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stored == nil {
		c.stored = make(map[int64][]Profile)
	}
	c.sets++
	c.stored[gen] = p
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	c.gen++
	return nil
}

// pausingRepository holds the first ListByNewest after it has read the
// store until release is closed
type pausingRepository struct {
	*MemoryRepository
	once    sync.Once
	read    chan struct{}
	release chan struct{}
}

func newPausingRepository(inner *MemoryRepository) *pausingRepository {
	return &pausingRepository{
		MemoryRepository: inner,
		read:             make(chan struct{}),
		release:          make(chan struct{}),
	}
}

func (r *pausingRepository) ListByNewest(ctx context.Context) ([]User, error) {
	users, err := r.MemoryRepository.ListByNewest(ctx)
	r.once.Do(func() {
		close(r.read)
		<-r.release
	})
	return users, err
}

// failingRepository fails every call with err
type failingRepository struct {
	err error
}

func (r failingRepository) FindByEmail(context.Context, string) (*User, error) { return nil, r.err }
func (r failingRepository) Insert(context.Context, *User) (string, error)      { return "", r.err }
func (r failingRepository) ListByNewest(context.Context) ([]User, error)        { return nil, r.err }
func (r failingRepository) Search(context.Context, SearchCriteria) ([]User, error) {
	return nil, r.err
}
func (r failingRepository) Ping(context.Context) error { return r.err }

func seedRepository(t *testing.T) *MemoryRepository {
	t.Helper()
	repo := NewMemoryRepository()
	t0 := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	seed := []User{
		{Name: "Anan", Email: "anan@example.com", PasswordHash: "h1", City: "Pune", CreatedAt: t0},
		{Name: "Raj", Email: "raj@example.com", PasswordHash: "h2", Skills: []string{"banana"}, City: "Mumbai", CreatedAt: t0.Add(time.Hour)},
		{Name: "Priya", Email: "priya@example.com", PasswordHash: "h3", Skills: []string{"rust"}, City: "New Delhi", CreatedAt: t0.Add(2 * time.Hour)},
	}
	for i := range seed {
		_, err := repo.Insert(context.Background(), &seed[i])
		require.NoError(t, err)
	}
	return repo
}

func profileNames(profiles []Profile) []string {
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	return names
}

func TestServiceListAll(t *testing.T) {
	cache := &fakeCache{}
	svc := NewService(seedRepository(t), cache, logging.Discard())

	profiles, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Priya", "Raj", "Anan"}, profileNames(profiles))
	assert.Equal(t, 1, cache.sets)
	for _, p := range profiles {
		assert.NotEmpty(t, p.ID)
	}
}

func TestServiceListAllServesCacheHit(t *testing.T) {
	cache := &fakeCache{gen: 4, stored: map[int64][]Profile{4: {{Name: "cached"}}}}
	svc := NewService(failingRepository{err: errors.New("must not be called")}, cache, logging.Discard())

	profiles, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cached"}, profileNames(profiles))
}

func TestServiceListAllFallsBackOnCacheError(t *testing.T) {
	cache := &fakeCache{getErr: errors.New("redis down")}
	svc := NewService(seedRepository(t), cache, logging.Discard())

	profiles, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, profiles, 3)
}

func TestServiceListAllSkipsCacheWithoutGeneration(t *testing.T) {
	cache := &fakeCache{genErr: errors.New("redis down")}
	svc := NewService(seedRepository(t), cache, logging.Discard())

	profiles, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, profiles, 3)
	assert.Zero(t, cache.sets)
}

func TestServiceListAllIgnoresOlderGeneration(t *testing.T) {
	cache := &fakeCache{gen: 2, stored: map[int64][]Profile{1: {{Name: "stale"}}}}
	svc := NewService(seedRepository(t), cache, logging.Discard())

	profiles, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Priya", "Raj", "Anan"}, profileNames(profiles))
}

func TestServiceListAllSnapshotDoesNotOutliveInvalidation(t *testing.T) {
	ctx := context.Background()
	repo := newPausingRepository(NewMemoryRepository())
	cache := &fakeCache{}
	svc := NewService(repo, cache, logging.Discard())

	done := make(chan error, 1)
	go func() {
		_, err := svc.ListAll(ctx)
		done <- err
	}()
	<-repo.read

	_, err := repo.Insert(ctx, &User{Name: "Anan", Email: "anan@example.com", PasswordHash: "h", CreatedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx))

	close(repo.release)
	require.NoError(t, <-done)

	profiles, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Anan"}, profileNames(profiles))
}

func TestServiceSearch(t *testing.T) {
	svc := NewService(seedRepository(t), nil, logging.Discard())
	ctx := context.Background()

	profiles, err := svc.Search(ctx, "ana", "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Anan", "Raj"}, profileNames(profiles))

	profiles, err = svc.Search(ctx, "", "delhi")
	require.NoError(t, err)
	assert.Equal(t, []string{"Priya"}, profileNames(profiles))

	profiles, err = svc.Search(ctx, "  ", "")
	require.NoError(t, err)
	assert.NotNil(t, profiles)
	assert.Empty(t, profiles)
}

func TestServiceSearchBlankSkipsStore(t *testing.T) {
	svc := NewService(failingRepository{err: errors.New("must not be called")}, nil, logging.Discard())

	profiles, err := svc.Search(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestServicePropagatesUnavailable(t *testing.T) {
	svc := NewService(failingRepository{err: apperror.Unavailable(errors.New("dial tcp"))}, nil, logging.Discard())

	_, err := svc.ListAll(context.Background())
	assert.Equal(t, apperror.KindUnavailable, apperror.KindOf(err))

	_, err = svc.Search(context.Background(), "go", "")
	assert.Equal(t, apperror.KindUnavailable, apperror.KindOf(err))
}
