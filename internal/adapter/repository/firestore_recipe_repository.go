package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"foodgram/internal/domain/entity"
	"foodgram/internal/domain/repository"
	"foodgram/pkg/errors"
)

type firestoreRecipeRepository struct {
	client *firestore.Client
}

func NewFirestoreRecipeRepository(client *firestore.Client) repository.RecipeRepository {
	return &firestoreRecipeRepository{
		client: client,
	}
}

func (r *firestoreRecipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error {
	if recipe.ID == "" {
		doc := r.client.Collection("recipes").NewDoc()
		recipe.ID = doc.ID
	}

	now := time.Now()
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = now
	}
	recipe.UpdatedAt = now

	_, err := r.client.Collection("recipes").Doc(recipe.ID).Set(ctx, recipe)
	if err != nil {
		return errors.Internal("Failed to create recipe", err)
	}

	return nil
}

func (r *firestoreRecipeRepository) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	doc, err := r.client.Collection("recipes").Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Recipe", err)
		}
		return nil, errors.Internal("Failed to get recipe", err)
	}

	var recipe entity.Recipe
	if err := doc.DataTo(&recipe); err != nil {
		return nil, errors.Internal("Failed to parse recipe data", err)
	}

	return &recipe, nil
}

func (r *firestoreRecipeRepository) Update(ctx context.Context, recipe *entity.Recipe) error {
	recipe.UpdatedAt = time.Now()

	_, err := r.client.Collection("recipes").Doc(recipe.ID).Set(ctx, recipe)
	if err != nil {
		return errors.Internal("Failed to update recipe", err)
	}

	return nil
}

func (r *firestoreRecipeRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("recipes").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete recipe", err)
	}

	return nil
}

func (r *firestoreRecipeRepository) List(ctx context.Context, filter repository.RecipeFilter, limit, offset int) ([]*entity.Recipe, int64, error) {
	query := r.client.Collection("recipes").Query

	if filter.AuthorID != "" {
		query = query.Where("authorId", "==", filter.AuthorID)
	}

	// Newest first, like the feed on the site
	query = query.OrderBy("createdAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list recipes", err)
	}

	// Tag and id-set constraints are applied in memory; Firestore has no
	// query operator for "array contains any of" combined with other filters
	// at this shape.
	var idSet map[string]bool
	if filter.IDs != nil {
		idSet = make(map[string]bool, len(filter.IDs))
		for _, id := range filter.IDs {
			idSet[id] = true
		}
	}

	var tagSet map[string]bool
	if len(filter.TagIDs) > 0 {
		tagSet = make(map[string]bool, len(filter.TagIDs))
		for _, id := range filter.TagIDs {
			tagSet[id] = true
		}
	}

	var matched []*entity.Recipe
	for _, doc := range docs {
		var recipe entity.Recipe
		if err := doc.DataTo(&recipe); err != nil {
			return nil, 0, errors.Internal("Failed to parse recipe data", err)
		}

		if idSet != nil && !idSet[recipe.ID] {
			continue
		}

		if tagSet != nil {
			found := false
			for _, tagID := range recipe.TagIDs {
				if tagSet[tagID] {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}

		matched = append(matched, &recipe)
	}

	total := int64(len(matched))

	start := offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return matched[start:end], total, nil
}

func (r *firestoreRecipeRepository) ListByAuthor(ctx context.Context, authorID string, limit int) ([]*entity.Recipe, error) {
	query := r.client.Collection("recipes").
		Where("authorId", "==", authorID).
		OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var recipes []*entity.Recipe

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate recipes", err)
		}
		var recipe entity.Recipe
		if err := doc.DataTo(&recipe); err != nil {
			return nil, errors.Internal("Failed to parse recipe data", err)
		}
		recipes = append(recipes, &recipe)
	}

	return recipes, nil
}

func (r *firestoreRecipeRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	docs, err := r.client.Collection("recipes").Where("authorId", "==", authorID).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count recipes", err)
	}

	return int64(len(docs)), nil
}

func (r *firestoreRecipeRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Recipe, error) {
	result := make(map[string]*entity.Recipe)

	for i := 0; i < len(ids); i += 30 {
		end := i + 30
		if end > len(ids) {
			end = len(ids)
		}

		batchIDs := ids[i:end]
		docRefs := make([]*firestore.DocumentRef, len(batchIDs))
		for j, id := range batchIDs {
			docRefs[j] = r.client.Collection("recipes").Doc(id)
		}

		docs, err := r.client.GetAll(ctx, docRefs)
		if err != nil {
			return nil, errors.Internal("Failed to batch fetch recipes", err)
		}

		for _, doc := range docs {
			if doc == nil || !doc.Exists() {
				continue
			}
			var recipe entity.Recipe
			if err := doc.DataTo(&recipe); err != nil {
				continue
			}
			result[doc.Ref.ID] = &recipe
		}
	}

	return result, nil
}
