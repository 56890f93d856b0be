package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"taskdeck/internal/auth/models"
	"taskdeck/internal/auth/password"
	"taskdeck/internal/auth/session"
	tokenstore "taskdeck/internal/auth/store/token"
	userstore "taskdeck/internal/auth/store/user"
	dErrors "taskdeck/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	users   *userstore.InMemoryStore
	clock   *fakeClock
	service *Service
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	hasher, err := password.NewHasher(password.Params{
		MemoryKiB:   8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	s.Require().NoError(err)

	s.users = userstore.NewMemory()
	s.clock = &fakeClock{now: time.Now()}
	sessions := session.NewManager(tokenstore.NewMemoryWithClock(s.clock.Now), session.Config{})
	s.service = New(s.users, hasher, sessions)
}

func (s *ServiceSuite) register(handle, secret string) models.User {
	user, err := s.service.Register(context.Background(), models.RegisterRequest{
		Handle:      handle,
		DisplayName: "Test User",
		Secret:      secret,
	})
	s.Require().NoError(err)
	return user
}

func (s *ServiceSuite) TestRegister() {
	ctx := context.Background()

	s.T().Run("happy path", func(t *testing.T) {
		user, err := s.service.Register(ctx, models.RegisterRequest{
			Handle:      "alice123",
			DisplayName: "Alice",
			Secret:      "correcthorse",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "alice123", user.Handle)
		assert.Equal(t, "Alice", user.DisplayName)
		assert.NotEmpty(t, user.SecretHash)
		assert.NotContains(t, user.SecretHash, "correcthorse")
		assert.False(t, user.CreatedAt.IsZero())

		stored, err := s.users.FindByHandle(ctx, "alice123")
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.ID)
	})

	s.T().Run("duplicate handle conflicts", func(t *testing.T) {
		_, err := s.service.Register(ctx, models.RegisterRequest{
			Handle:      "alice123",
			DisplayName: "Impostor",
			Secret:      "anothersecret",
		})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

		// Exactly one identity with the handle exists afterwards.
		stored, err := s.users.FindByHandle(ctx, "alice123")
		require.NoError(t, err)
		assert.Equal(t, "Alice", stored.DisplayName)
	})
}

func (s *ServiceSuite) TestRegister_Validation() {
	ctx := context.Background()
	cases := []struct {
		name    string
		handle  string
		secret  string
		message string
	}{
		{"handle too short", "abc", "longenough", "handle cannot be less than 4 characters"},
		{"handle too long", "seventeencharacts", "longenough", "handle cannot be more than 16 characters"},
		{"secret too short", "alice123", "short", "secret cannot be less than 8 characters"},
	}
	for _, tc := range cases {
		s.T().Run(tc.name, func(t *testing.T) {
			_, err := s.service.Register(ctx, models.RegisterRequest{
				Handle:      tc.handle,
				DisplayName: "X",
				Secret:      tc.secret,
			})
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Equal(t, tc.message, dErrors.MessageOf(err))

			// Fail closed: nothing was persisted.
			exists, err := s.users.ExistsByHandle(ctx, tc.handle)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func (s *ServiceSuite) TestRegister_ConcurrentSameHandle() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var successes, conflicts atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.Register(ctx, models.RegisterRequest{
				Handle:      "race4handle",
				DisplayName: "Racer",
				Secret:      "correcthorse",
			})
			switch {
			case err == nil:
				successes.Add(1)
			case dErrors.HasCode(err, dErrors.CodeConflict):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successes.Load(), "exactly one registration should win")
	s.Equal(int32(goroutines-1), conflicts.Load(), "losers should all see conflict")
}

func (s *ServiceSuite) TestLogin() {
	ctx := context.Background()
	s.register("alice123", "correcthorse")

	s.T().Run("happy path", func(t *testing.T) {
		pair, err := s.service.Login(ctx, models.LoginRequest{Handle: "alice123", Secret: "correcthorse"})
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	s.T().Run("wrong secret and unknown handle are indistinguishable", func(t *testing.T) {
		_, errWrongSecret := s.service.Login(ctx, models.LoginRequest{Handle: "alice123", Secret: "wrongpass"})
		_, errNoHandle := s.service.Login(ctx, models.LoginRequest{Handle: "nobody99", Secret: "wrongpass"})

		require.Error(t, errWrongSecret)
		require.Error(t, errNoHandle)
		assert.True(t, dErrors.HasCode(errWrongSecret, dErrors.CodeUnauthorized))
		assert.True(t, dErrors.HasCode(errNoHandle, dErrors.CodeUnauthorized))
		assert.Equal(t, dErrors.MessageOf(errNoHandle), dErrors.MessageOf(errWrongSecret),
			"messages must not reveal whether the handle exists")
	})

	s.T().Run("malformed input is validation, not unauthorized", func(t *testing.T) {
		_, err := s.service.Login(ctx, models.LoginRequest{Handle: "ab", Secret: "correcthorse"})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestRefresh() {
	ctx := context.Background()
	s.register("alice123", "correcthorse")

	pair, err := s.service.Login(ctx, models.LoginRequest{Handle: "alice123", Secret: "correcthorse"})
	s.Require().NoError(err)

	rotated, err := s.service.Refresh(ctx, models.RefreshRequest{RefreshToken: pair.RefreshToken})
	s.Require().NoError(err)
	s.NotEqual(pair.AccessToken, rotated.AccessToken)
	s.NotEqual(pair.RefreshToken, rotated.RefreshToken)

	user, err := s.service.Inspect(ctx, rotated.AccessToken)
	s.Require().NoError(err)
	s.Equal("alice123", user.Handle)

	_, err = s.service.Refresh(ctx, models.RefreshRequest{RefreshToken: "never-issued"})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = s.service.Refresh(ctx, models.RefreshRequest{})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestInspect() {
	ctx := context.Background()
	registered := s.register("alice123", "correcthorse")

	pair, err := s.service.Login(ctx, models.LoginRequest{Handle: "alice123", Secret: "correcthorse"})
	s.Require().NoError(err)

	s.T().Run("happy path", func(t *testing.T) {
		user, err := s.service.Inspect(ctx, pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.Equal(t, "alice123", user.Handle)
	})

	s.T().Run("empty token", func(t *testing.T) {
		_, err := s.service.Inspect(ctx, "")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.T().Run("expired token", func(t *testing.T) {
		s.clock.Advance(session.DefaultAccessTTL + time.Second)
		_, err := s.service.Inspect(ctx, pair.AccessToken)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *ServiceSuite) TestInspect_OrphanedToken() {
	ctx := context.Background()
	user := s.register("alice123", "correcthorse")

	pair, err := s.service.Login(ctx, models.LoginRequest{Handle: "alice123", Secret: "correcthorse"})
	s.Require().NoError(err)

	// Identity deleted after issuance: the token must read as unauthorized,
	// never as an internal error.
	s.Require().NoError(s.users.Delete(ctx, user.ID))

	_, err = s.service.Inspect(ctx, pair.AccessToken)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	s.False(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestEndToEnd() {
	ctx := context.Background()

	_, err := s.service.Register(ctx, models.RegisterRequest{
		Handle:      "alice123",
		DisplayName: "Alice",
		Secret:      "correcthorse",
	})
	s.Require().NoError(err)

	pair, err := s.service.Login(ctx, models.LoginRequest{Handle: "alice123", Secret: "correcthorse"})
	s.Require().NoError(err)
	s.NotEmpty(pair.AccessToken)
	s.NotEmpty(pair.RefreshToken)

	user, err := s.service.Inspect(ctx, pair.AccessToken)
	s.Require().NoError(err)
	s.Equal("alice123", user.Handle)

	_, err = s.service.Login(ctx, models.LoginRequest{Handle: "alice123", Secret: "wrongpass"})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
