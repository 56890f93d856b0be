package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokenstore "taskdeck/internal/auth/store/token"
	dErrors "taskdeck/pkg/domain-errors"
)

func newRedisManager(t *testing.T, cfg Config) (*Manager, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewManager(tokenstore.NewRedis(client), cfg), mr
}

func TestIssue_ResolvesBothTokens(t *testing.T) {
	m, _ := newRedisManager(t, Config{})
	ctx := context.Background()

	pair, err := m.Issue(ctx, "owner-1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "owner-1", pair.OwnerID)

	owner, err := m.ResolveAccess(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", owner)

	owner, err = m.ResolveRefresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", owner)
}

func TestIssue_NamespacesDoNotCross(t *testing.T) {
	m, _ := newRedisManager(t, Config{})
	ctx := context.Background()

	pair, err := m.Issue(ctx, "owner-1")
	require.NoError(t, err)

	// An access token must not resolve as a refresh token, and vice versa.
	_, err = m.ResolveRefresh(ctx, pair.AccessToken)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, err = m.ResolveAccess(ctx, pair.RefreshToken)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestResolve_UnknownTokenIsUnauthorized(t *testing.T) {
	m, _ := newRedisManager(t, Config{})

	_, err := m.ResolveAccess(context.Background(), "never-issued")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized),
		"cache miss must surface as unauthorized, not as a storage error")
}

func TestResolve_ExpiredAccessToken(t *testing.T) {
	m, mr := newRedisManager(t, Config{AccessTTL: 300 * time.Second})
	ctx := context.Background()

	pair, err := m.Issue(ctx, "owner-1")
	require.NoError(t, err)

	mr.FastForward(301 * time.Second)

	_, err = m.ResolveAccess(ctx, pair.AccessToken)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

	// The refresh token has a much longer TTL and is still live.
	owner, err := m.ResolveRefresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", owner)
}

func TestIssue_TTLsArePerNamespace(t *testing.T) {
	m, mr := newRedisManager(t, Config{})
	ctx := context.Background()

	pair, err := m.Issue(ctx, "owner-1")
	require.NoError(t, err)

	accessTTL := mr.TTL("access:" + pair.AccessToken)
	refreshTTL := mr.TTL("refresh:" + pair.RefreshToken)
	assert.Equal(t, DefaultAccessTTL, accessTTL)
	assert.Equal(t, DefaultRefreshTTL, refreshTTL)
}

func TestRotate_MintsFreshPair(t *testing.T) {
	m, _ := newRedisManager(t, Config{})
	ctx := context.Background()

	original, err := m.Issue(ctx, "owner-1")
	require.NoError(t, err)

	rotated, err := m.Rotate(ctx, original.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, original.AccessToken, rotated.AccessToken)
	assert.NotEqual(t, original.RefreshToken, rotated.RefreshToken)

	owner, err := m.ResolveAccess(ctx, rotated.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", owner)
}

func TestRotate_SourceTokenStaysValid(t *testing.T) {
	// Rotation does not consume the source refresh token; it floats until
	// its own TTL elapses, so concurrent rotations both succeed.
	m, _ := newRedisManager(t, Config{})
	ctx := context.Background()

	original, err := m.Issue(ctx, "owner-1")
	require.NoError(t, err)

	first, err := m.Rotate(ctx, original.RefreshToken)
	require.NoError(t, err)
	second, err := m.Rotate(ctx, original.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	owner, err := m.ResolveRefresh(ctx, original.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", owner)
}

func TestRotate_UnknownTokenIsUnauthorized(t *testing.T) {
	m, _ := newRedisManager(t, Config{})

	_, err := m.Rotate(context.Background(), "never-issued")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

// failSecondPut fails every Put after the first, simulating the cache dying
// between the access and refresh writes.
type failSecondPut struct {
	tokenstore.Cache
	puts int
}

func (f *failSecondPut) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	f.puts++
	if f.puts > 1 {
		return errors.New("cache write failed")
	}
	return f.Cache.Put(ctx, key, value, ttl)
}

func TestIssue_SecondWriteFailureSurfaces(t *testing.T) {
	inner := tokenstore.NewMemory()
	m := NewManager(&failSecondPut{Cache: inner}, Config{})

	_, err := m.Issue(context.Background(), "owner-1")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestIssue_TokensAreUnique(t *testing.T) {
	m, _ := newRedisManager(t, Config{})
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		pair, err := m.Issue(ctx, "owner-1")
		require.NoError(t, err)
		require.False(t, seen[pair.AccessToken])
		require.False(t, seen[pair.RefreshToken])
		seen[pair.AccessToken] = true
		seen[pair.RefreshToken] = true
	}
}
