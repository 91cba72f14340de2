package entity

import (
	"time"
)

// RecipeIngredient is one measured ingredient row inside a recipe.
type RecipeIngredient struct {
	IngredientID string `json:"ingredient_id" firestore:"ingredientId"`
	Amount       int    `json:"amount" firestore:"amount"`
}

type Recipe struct {
	ID          string             `json:"id" firestore:"id"`
	AuthorID    string             `json:"author_id" firestore:"authorId"`
	Name        string             `json:"name" firestore:"name"`
	Text        string             `json:"text" firestore:"text"`
	ImageURL    string             `json:"image" firestore:"imageURL"`
	CookingTime int                `json:"cooking_time" firestore:"cookingTime"`
	TagIDs      []string           `json:"tag_ids" firestore:"tagIds"`
	Ingredients []RecipeIngredient `json:"ingredients" firestore:"ingredients"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
