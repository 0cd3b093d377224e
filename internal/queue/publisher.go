package queue

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Publisher interface {
	Publish(ctx context.Context, exchange, key string, event any, reqID string) error
	Close() error
}

// NoopPub is used when no broker is configured, and in tests.
type NoopPub struct{}

func NewNoop() Publisher { return NoopPub{} }

func (NoopPub) Publish(ctx context.Context, exchange, key string, event any, reqID string) error {
	return nil
}
func (NoopPub) Close() error { return nil }

type UserRegistered struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
}

type UserLoggedIn struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
}

type MovieCreated struct {
	MovieID primitive.ObjectID `json:"movie_id"`
	Title   string             `json:"title"`
	Year    int                `json:"year"`
}

type CommentAdded struct {
	MovieID   primitive.ObjectID `json:"movie_id"`
	CommentID primitive.ObjectID `json:"comment_id"`
	UserID    primitive.ObjectID `json:"user_id"`
}
