package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// JobLock is a best-effort distributed lock for periodic jobs, so that
// only one instance runs a given job per cadence window.
// Key format: joblock:<job_name>
type JobLock struct {
	client *redis.Client
}

// NewJobLock creates a JobLock wrapping the given Redis client.
func NewJobLock(client *redis.Client) *JobLock {
	return &JobLock{client: client}
}

// Acquire attempts to take the lock for job name, holding it for ttl.
// It returns false when another instance already holds the lock.
func (l *JobLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.key(name), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("job lock acquire: %w", err)
	}
	return ok, nil
}

// Release drops the lock early. Expiry handles the normal case, so a
// failed release is not fatal.
func (l *JobLock) Release(ctx context.Context, name string) error {
	return l.client.Del(ctx, l.key(name)).Err()
}

func (l *JobLock) key(name string) string {
	return fmt.Sprintf("joblock:%s", name)
}
