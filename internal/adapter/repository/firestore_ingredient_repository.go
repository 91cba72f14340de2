package repository

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"foodgram/internal/domain/entity"
	"foodgram/internal/domain/repository"
	"foodgram/pkg/errors"
)

type firestoreIngredientRepository struct {
	client *firestore.Client
}

func NewFirestoreIngredientRepository(client *firestore.Client) repository.IngredientRepository {
	return &firestoreIngredientRepository{client: client}
}

func (r *firestoreIngredientRepository) Create(ctx context.Context, ingredient *entity.Ingredient) error {
	if ingredient.ID == "" {
		doc := r.client.Collection("ingredients").NewDoc()
		ingredient.ID = doc.ID
	}

	_, err := r.client.Collection("ingredients").Doc(ingredient.ID).Set(ctx, ingredient)
	if err != nil {
		return errors.Internal("Failed to create ingredient", err)
	}

	return nil
}

func (r *firestoreIngredientRepository) GetByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	doc, err := r.client.Collection("ingredients").Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Ingredient", err)
		}
		return nil, errors.Internal("Failed to get ingredient", err)
	}

	var ingredient entity.Ingredient
	if err := doc.DataTo(&ingredient); err != nil {
		return nil, errors.Internal("Failed to parse ingredient data", err)
	}

	return &ingredient, nil
}

func (r *firestoreIngredientRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Ingredient, error) {
	result := make(map[string]*entity.Ingredient)

	// Batch fetch, max 30 refs per call
	for i := 0; i < len(ids); i += 30 {
		end := i + 30
		if end > len(ids) {
			end = len(ids)
		}

		batchIDs := ids[i:end]
		docRefs := make([]*firestore.DocumentRef, len(batchIDs))
		for j, id := range batchIDs {
			docRefs[j] = r.client.Collection("ingredients").Doc(id)
		}

		docs, err := r.client.GetAll(ctx, docRefs)
		if err != nil {
			return nil, errors.Internal("Failed to batch fetch ingredients", err)
		}

		for _, doc := range docs {
			if doc == nil || !doc.Exists() {
				continue
			}
			var ingredient entity.Ingredient
			if err := doc.DataTo(&ingredient); err != nil {
				continue
			}
			result[doc.Ref.ID] = &ingredient
		}
	}

	return result, nil
}

func (r *firestoreIngredientRepository) List(ctx context.Context, namePrefix string) ([]*entity.Ingredient, error) {
	// Prefix matching is case-insensitive, which Firestore cannot express in a
	// query, so the catalog is scanned and filtered in memory.
	namePrefix = strings.ToLower(namePrefix)

	iter := r.client.Collection("ingredients").OrderBy("name", firestore.Asc).Documents(ctx)
	var ingredients []*entity.Ingredient

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate ingredients", err)
		}
		var ingredient entity.Ingredient
		if err := doc.DataTo(&ingredient); err != nil {
			return nil, errors.Internal("Failed to parse ingredient data", err)
		}

		if namePrefix != "" && !strings.HasPrefix(strings.ToLower(ingredient.Name), namePrefix) {
			continue
		}
		ingredients = append(ingredients, &ingredient)
	}

	return ingredients, nil
}
