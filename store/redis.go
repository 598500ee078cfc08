package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tripflow/models"

	"github.com/go-redis/redis/v8"
)

const (
	sessionKeyPrefix = "trip:session:"
	jobKeyPrefix     = "trip:job:"
	lockKeyPrefix    = "trip:lock:"
)

// RedisStore keeps sessions and jobs as JSON blobs with a TTL, and uses
// SETNX for the per-session job lock.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read session %s: %w", sessionID, err)
	}
	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", sessionID, err)
	}
	return &session, nil
}

func (r *RedisStore) PutSession(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", session.ID, err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+session.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session %s: %w", session.ID, err)
	}
	return nil
}

func (r *RedisStore) DeleteSession(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+sessionID, lockKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}

func (r *RedisStore) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	data, err := r.client.Get(ctx, jobKeyPrefix+jobID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read job %s: %w", jobID, err)
	}
	var job models.Job
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return nil, fmt.Errorf("failed to parse job %s: %w", jobID, err)
	}
	return &job, nil
}

func (r *RedisStore) PutJob(ctx context.Context, job *models.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job %s: %w", job.ID, err)
	}
	if err := r.client.Set(ctx, jobKeyPrefix+job.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store job %s: %w", job.ID, err)
	}
	return nil
}

func (r *RedisStore) AcquireJob(ctx context.Context, sessionID, jobID string) error {
	key := lockKeyPrefix + sessionID
	ok, err := r.client.SetNX(ctx, key, jobID, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire job lock for session %s: %w", sessionID, err)
	}
	if ok {
		return nil
	}
	holder, err := r.client.Get(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to inspect job lock for session %s: %w", sessionID, err)
	}
	if holder == jobID {
		return nil
	}
	return ErrJobConflict
}

// releaseScript deletes the lock only when the caller still holds it.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (r *RedisStore) ReleaseJob(ctx context.Context, sessionID, jobID string) error {
	if err := releaseScript.Run(ctx, r.client, []string{lockKeyPrefix + sessionID}, jobID).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to release job lock for session %s: %w", sessionID, err)
	}
	return nil
}
