package entity

import (
	"time"
)

type ShortLink struct {
	Code      string    `json:"code" firestore:"code"`
	RecipeID  string    `json:"recipe_id" firestore:"recipeId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
