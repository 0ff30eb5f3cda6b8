package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AtizaD/school-assessment-system-sub006/internal/util"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// CSRFTokenTTL bounds how long an issued token stays valid. Attempt
// pages refresh it on load, so this only needs to outlive a session.
const CSRFTokenTTL = 4 * time.Hour

// CSRFService issues and validates per-user anti-forgery tokens backed
// by Redis. Tokens are single-user but not single-use: validation does
// not consume them, so autosave polling can reuse the same token.
type CSRFService struct {
	Redis *redis.Client
}

func NewCSRFService(rdb *redis.Client) *CSRFService {
	return &CSRFService{Redis: rdb}
}

func csrfKey(userID uint) string {
	return fmt.Sprintf("csrf:%d", userID)
}

func (s *CSRFService) Issue(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	if err := s.Redis.Set(ctx, csrfKey(userID), token, CSRFTokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *CSRFService) Validate(ctx context.Context, userID uint, token string) error {
	if token == "" {
		return util.ErrInvalidCSRFToken
	}
	stored, err := s.Redis.Get(ctx, csrfKey(userID)).Result()
	if err == redis.Nil || (err == nil && stored != token) {
		return util.ErrInvalidCSRFToken
	}
	return err
}
