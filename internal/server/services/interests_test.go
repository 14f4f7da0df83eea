package services

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sangamlabs/sangam/internal/common"
	"github.com/sangamlabs/sangam/internal/logging"
	"github.com/sangamlabs/sangam/internal/server/config"
	"github.com/sangamlabs/sangam/internal/server/models"
)

type fakeInterestRepo struct {
	created []*models.Interest
}

func (r *fakeInterestRepo) Create(ctx context.Context, interest *models.Interest) error {
	for _, existing := range r.created {
		if existing.FromUserID == interest.FromUserID && existing.ToUserID == interest.ToUserID {
			return common.ErrorAlreadyExists
		}
	}
	interest.ID = int64(len(r.created) + 1)
	interest.CreatedAt = time.Now()
	r.created = append(r.created, interest)
	return nil
}

func (r *fakeInterestRepo) ListReceived(ctx context.Context, toUserID int64) ([]*models.Interest, error) {
	var result []*models.Interest
	for _, i := range r.created {
		if i.ToUserID == toUserID {
			result = append(result, i)
		}
	}
	return result, nil
}

func newTestInterestService(users *fakeUserRepo, limit int) (*InterestService, *fakeInterestRepo) {
	repo := &fakeInterestRepo{}
	cfg := &config.Config{Limits: config.LimitsConfig{InterestsPerDay: limit}}
	return NewInterestService(repo, users, nil, cfg, logging.NewZapLogger(zap.NewNop())), repo
}

func TestExpressInterest(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	seedUsers(users, "asha", "ravi")
	svc, repo := newTestInterestService(users, 0)

	interest, err := svc.Express(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), interest.FromUserID)
	assert.Equal(t, int64(2), interest.ToUserID)

	received, err := svc.Received(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, received, 1)
	assert.Len(t, repo.created, 1)
}

func TestExpressInterestDuplicate(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	seedUsers(users, "asha", "ravi")
	svc, _ := newTestInterestService(users, 0)

	_, err := svc.Express(ctx, 1, 2)
	require.NoError(t, err)

	_, err = svc.Express(ctx, 1, 2)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestExpressInterestSelf(t *testing.T) {
	users := newFakeUserRepo()
	seedUsers(users, "asha")
	svc, _ := newTestInterestService(users, 0)

	_, err := svc.Express(context.Background(), 1, 1)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestExpressInterestUnknownPeer(t *testing.T) {
	users := newFakeUserRepo()
	seedUsers(users, "asha")
	svc, _ := newTestInterestService(users, 0)

	_, err := svc.Express(context.Background(), 1, 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestExpressInterestRedisUnavailable(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	seedUsers(users, "asha", "ravi")

	core, logs := observer.New(zap.WarnLevel)
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	repo := &fakeInterestRepo{}
	cfg := &config.Config{Limits: config.LimitsConfig{InterestsPerDay: 1}}
	svc := NewInterestService(repo, users, rdb, cfg, logging.NewZapLogger(zap.New(core)))

	interest, err := svc.Express(ctx, 1, 2)
	require.NoError(t, err)
	assert.NotNil(t, interest)

	entries := logs.FilterMessage("interest quota check skipped").All()
	require.Len(t, entries, 1)
}

func TestDailyKeyBucketsByUTCDay(t *testing.T) {
	users := newFakeUserRepo()
	svc, _ := newTestInterestService(users, 5)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)
	}

	assert.Equal(t, "interests:7:2026-03-14", svc.dailyKey(7))
}
