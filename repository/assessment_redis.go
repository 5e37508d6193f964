package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"loan-insight/domain"
)

const assessmentKeyPrefix = "loan-insight:assessment:"

type RedisAssessmentRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisAssessmentRepository(addr string, ttl time.Duration) *RedisAssessmentRepository {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return NewRedisAssessmentRepositoryWithClient(rdb, ttl)
}

func NewRedisAssessmentRepositoryWithClient(client redis.UniversalClient, ttl time.Duration) *RedisAssessmentRepository {
	return &RedisAssessmentRepository{client: client, ttl: ttl}
}

func (r *RedisAssessmentRepository) Save(ctx context.Context, a domain.Assessment) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode assessment %s: %w", a.ID, err)
	}
	if err := r.client.Set(ctx, assessmentKeyPrefix+a.ID, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set assessment %s: %w", a.ID, err)
	}
	return nil
}

func (r *RedisAssessmentRepository) Get(ctx context.Context, id string) (domain.Assessment, error) {
	val, err := r.client.Get(ctx, assessmentKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Assessment{}, domain.ErrReportNotFound
	}
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("redis get assessment %s: %w", id, err)
	}

	var a domain.Assessment
	if err := json.Unmarshal(val, &a); err != nil {
		return domain.Assessment{}, fmt.Errorf("decode assessment %s: %w", id, err)
	}
	return a, nil
}

// Ping backs the readiness probe.
func (r *RedisAssessmentRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisAssessmentRepository) Close() error {
	return r.client.Close()
}
