package entity

import (
	"time"
)

// CartItem marks a recipe as selected for the user's shopping list.
type CartItem struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	RecipeID  string    `json:"recipe_id" firestore:"recipeId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
