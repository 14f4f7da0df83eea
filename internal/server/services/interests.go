package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sangamlabs/sangam/internal/common"
	"github.com/sangamlabs/sangam/internal/logging"
	"github.com/sangamlabs/sangam/internal/server/config"
	"github.com/sangamlabs/sangam/internal/server/models"
	"github.com/sangamlabs/sangam/internal/server/repositories/interests"
	"github.com/sangamlabs/sangam/internal/server/repositories/users"
)

// InterestService records expressed interests and enforces the
// per-day quota through a Redis counter.
type InterestService struct {
	repo   interests.Repository
	users  users.Repository
	redis  *redis.Client
	config *config.Config
	log    logging.Logger
	now    func() time.Time
}

func NewInterestService(repo interests.Repository, users users.Repository, rdb *redis.Client, cfg *config.Config, log logging.Logger) *InterestService {
	return &InterestService{repo: repo, users: users, redis: rdb, config: cfg, log: log, now: time.Now}
}

// dailyKey buckets the counter by calendar day in UTC.
func (s *InterestService) dailyKey(userID int64) string {
	return fmt.Sprintf("interests:%d:%s", userID, s.now().UTC().Format("2006-01-02"))
}

// Express records an interest from one user toward another. Free
// accounts are limited per day; duplicates are rejected.
func (s *InterestService) Express(ctx context.Context, fromUserID, toUserID int64) (*models.Interest, error) {
	if fromUserID == toUserID {
		return nil, fmt.Errorf("%w: cannot express interest in yourself", common.ErrorValidation)
	}

	from, err := s.users.GetByID(ctx, fromUserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, toUserID); err != nil {
		return nil, err
	}

	if from.Package != models.PackagePremium {
		if err := s.checkQuota(ctx, fromUserID); err != nil {
			return nil, err
		}
	}

	interest := &models.Interest{FromUserID: fromUserID, ToUserID: toUserID}
	if err := s.repo.Create(ctx, interest); err != nil {
		return nil, err
	}
	return interest, nil
}

// Received returns interests other members expressed toward the user.
func (s *InterestService) Received(ctx context.Context, userID int64) ([]*models.Interest, error) {
	return s.repo.ListReceived(ctx, userID)
}

func (s *InterestService) checkQuota(ctx context.Context, userID int64) error {
	limit := s.config.Limits.InterestsPerDay
	if limit <= 0 {
		return nil
	}

	key := s.dailyKey(userID)
	count, err := s.redis.Incr(ctx, key).Result()
	if err != nil {
		// Redis errors do not block the interest.
		s.log.Warn(ctx, "interest quota check skipped", "key", key, "error", err)
		return nil
	}
	if count == 1 {
		s.redis.Expire(ctx, key, 24*time.Hour)
	}
	if count > int64(limit) {
		return common.ErrLimitExceeded
	}
	return nil
}
