// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultQueueName is the Redis list that carries lobby announcements.
const DefaultQueueName = "lobby_announcements"

// AnnouncedLobby is one public lobby inside an announcement.
type AnnouncedLobby struct {
	Code    int         `json:"code"`
	Game    string      `json:"game"`
	Idle    []string    `json:"idle"`
	Playing [][2]string `json:"playing"`
}

// Announcement is a snapshot of the public lobbies taken by a sweep, consumed by the
// announcer worker.
type Announcement struct {
	Lobbies   []AnnouncedLobby `json:"lobbies"`
	Players   int              `json:"players"`
	Timestamp int64            `json:"timestamp"`
}

// Connect opens a Redis client for addr and pings it.
func Connect(ctx context.Context, addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// Queue is a FIFO of announcements on a Redis list.
type Queue struct {
	rdb  *redis.Client
	name string
}

// NewQueue binds a queue to the list name, or DefaultQueueName when empty.
func NewQueue(rdb *redis.Client, name string) *Queue {
	if name == "" {
		name = DefaultQueueName
	}
	return &Queue{rdb: rdb, name: name}
}

// Name returns the Redis key of the queue.
func (q *Queue) Name() string {
	return q.name
}

// Publish serializes a and pushes it to the tail of the queue.
func (q *Queue) Publish(ctx context.Context, a Announcement) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal announcement: %w", err)
	}
	if err := q.rdb.RPush(ctx, q.name, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", q.name, err)
	}
	return nil
}

// Pop blocks up to timeout for the next announcement. It returns nil, nil when the
// wait times out.
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (*Announcement, error) {
	res, err := q.rdb.BLPop(ctx, timeout, q.name).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("BLPop %s: %w", q.name, err)
	}
	// res[0] is the key, res[1] the payload
	if len(res) < 2 {
		return nil, nil
	}
	var a Announcement
	if err := json.Unmarshal([]byte(res[1]), &a); err != nil {
		return nil, fmt.Errorf("invalid announcement: %w", err)
	}
	return &a, nil
}
