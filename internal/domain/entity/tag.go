package entity

type Tag struct {
	ID   string `json:"id" firestore:"id"`
	Name string `json:"name" firestore:"name"`
	Slug string `json:"slug" firestore:"slug"`
}
