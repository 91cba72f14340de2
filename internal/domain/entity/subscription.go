package entity

import (
	"time"
)

// Subscription is a follow relationship: follower receives the author's recipes.
type Subscription struct {
	ID         string    `json:"id" firestore:"id"`
	AuthorID   string    `json:"author_id" firestore:"authorId"`
	FollowerID string    `json:"follower_id" firestore:"followerId"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
