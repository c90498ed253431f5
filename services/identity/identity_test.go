package identity

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanketJawali/tinker-store-api/models"
)

// fakeUserStore enforces the email uniqueness constraint the way the real
// database does, so the race fallback path is exercised honestly.
type fakeUserStore struct {
	mu      sync.Mutex
	nextID  uint
	byEmail map[string]*models.User
	creates int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*models.User{}}
}

func (f *fakeUserStore) ByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if _, ok := f.byEmail[u.Email]; ok {
		return models.ErrDuplicate
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.byEmail[u.Email] = &cp
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestResolveMissingEmail(t *testing.T) {
	r := NewResolver(newFakeUserStore(), testLogger())

	_, err := r.Resolve(context.Background(), Claim{Name: "Someone"})
	assert.ErrorIs(t, err, ErrMissingEmail)
}

func TestResolveCreatesOnFirstCall(t *testing.T) {
	store := newFakeUserStore()
	r := NewResolver(store, testLogger())

	id, err := r.Resolve(context.Background(), Claim{Email: "a@example.com", Name: "A"})
	require.NoError(t, err)
	assert.NotZero(t, id)

	u, err := store.ByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "A", u.Name)
}

func TestResolveIsStableAcrossCalls(t *testing.T) {
	r := NewResolver(newFakeUserStore(), testLogger())

	first, err := r.Resolve(context.Background(), Claim{Email: "a@example.com"})
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), Claim{Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveDefaultsMissingName(t *testing.T) {
	store := newFakeUserStore()
	r := NewResolver(store, testLogger())

	_, err := r.Resolve(context.Background(), Claim{Email: "b@example.com"})
	require.NoError(t, err)

	u, err := store.ByEmail(context.Background(), "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Unknown User", u.Name)
}

func TestResolveConcurrentFirstCallsYieldOneRow(t *testing.T) {
	store := newFakeUserStore()
	r := NewResolver(store, testLogger())

	const n = 32
	ids := make([]uint, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = r.Resolve(context.Background(), Claim{Email: "race@example.com"})
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Len(t, store.byEmail, 1)
}

// A creator that hits the unique constraint must fall back to re-reading the
// winner's row rather than failing the request.
type alwaysLosesStore struct {
	winner models.User
	reads  int
}

func (s *alwaysLosesStore) ByEmail(_ context.Context, email string) (*models.User, error) {
	s.reads++
	if s.reads == 1 {
		// First lookup happens before the winner commits.
		return nil, models.ErrNotFound
	}
	cp := s.winner
	return &cp, nil
}

func (s *alwaysLosesStore) Create(context.Context, *models.User) error {
	return models.ErrDuplicate
}

func TestResolveLosingRaceRereadsWinner(t *testing.T) {
	store := &alwaysLosesStore{winner: models.User{ID: 42, Email: "race@example.com"}}
	r := NewResolver(store, testLogger())

	id, err := r.Resolve(context.Background(), Claim{Email: "race@example.com"})
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}
