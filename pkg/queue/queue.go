// Package queue is the gateway to the two Redis lists the external
// pose-analysis worker consumes: jobs wait on one list and run on the other.
// This service only pushes and removes tokens; dequeuing belongs to the
// worker.
package queue

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// List keys shared with the external worker.
const (
	WaitingKey = "waiting_actions"
	RunningKey = "running_actions"
)

// Gateway pushes and removes job tokens. There is no cross-store atomicity
// with the database; callers enqueue after their transaction commits.
type Gateway struct {
	client *redis.Client
}

func NewGateway(client *redis.Client) *Gateway {
	return &Gateway{client: client}
}

// PushWaiting appends the token to the tail of the waiting list.
func (g *Gateway) PushWaiting(ctx context.Context, token JobToken) error {
	return g.client.RPush(ctx, WaitingKey, token.Encode()).Err()
}

// RemoveWaiting removes every occurrence of the token from the waiting list.
// Removing an absent token is a no-op.
func (g *Gateway) RemoveWaiting(ctx context.Context, token string) error {
	return g.client.LRem(ctx, WaitingKey, 0, token).Err()
}

// RemoveRunning removes every occurrence of the token from the running list.
func (g *Gateway) RemoveRunning(ctx context.Context, token string) error {
	return g.client.LRem(ctx, RunningKey, 0, token).Err()
}

// Remove drops the token from both lists.
func (g *Gateway) Remove(ctx context.Context, token string) error {
	if err := g.RemoveWaiting(ctx, token); err != nil {
		return err
	}
	return g.RemoveRunning(ctx, token)
}

// Waiting returns the current waiting list, head first.
func (g *Gateway) Waiting(ctx context.Context) ([]string, error) {
	return g.client.LRange(ctx, WaitingKey, 0, -1).Result()
}

// Running returns the current running list, head first.
func (g *Gateway) Running(ctx context.Context) ([]string, error) {
	return g.client.LRange(ctx, RunningKey, 0, -1).Result()
}
