package entity

import (
	"time"
)

type Favorite struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	RecipeID  string    `json:"recipe_id" firestore:"recipeId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
