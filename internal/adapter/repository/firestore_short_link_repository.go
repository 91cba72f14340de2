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

type firestoreShortLinkRepository struct {
	client *firestore.Client
}

func NewFirestoreShortLinkRepository(client *firestore.Client) repository.ShortLinkRepository {
	return &firestoreShortLinkRepository{client: client}
}

func (r *firestoreShortLinkRepository) Create(ctx context.Context, link *entity.ShortLink) error {
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now()
	}

	codeRef := r.client.Collection("short_links").Doc(link.Code)
	recipeRef := r.client.Collection("short_link_recipes").Doc(link.RecipeID)

	// The code is the document id and a marker doc keyed by recipe id is
	// written in the same transaction, so neither a duplicate code nor a
	// second link for the same recipe can slip in.
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(recipeRef); err == nil {
			return errors.Conflict("Recipe already has a short link")
		} else if !IsNotFound(err) {
			return err
		}

		if _, err := tx.Get(codeRef); err == nil {
			return errors.Conflict("Short link code already exists")
		} else if !IsNotFound(err) {
			return err
		}

		if err := tx.Create(codeRef, link); err != nil {
			return err
		}
		return tx.Create(recipeRef, map[string]interface{}{
			"code":      link.Code,
			"createdAt": link.CreatedAt,
		})
	})
	if err != nil {
		if errors.Is(err, "CONFLICT") {
			return err
		}
		return errors.Internal("Failed to create short link", err)
	}

	return nil
}

func (r *firestoreShortLinkRepository) GetByCode(ctx context.Context, code string) (*entity.ShortLink, error) {
	doc, err := r.client.Collection("short_links").Doc(code).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Short link", err)
		}
		return nil, errors.Internal("Failed to get short link", err)
	}

	var link entity.ShortLink
	if err := doc.DataTo(&link); err != nil {
		return nil, errors.Internal("Failed to parse short link data", err)
	}

	return &link, nil
}

func (r *firestoreShortLinkRepository) GetByRecipeID(ctx context.Context, recipeID string) (*entity.ShortLink, error) {
	iter := r.client.Collection("short_links").Where("recipeId", "==", recipeID).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Short link", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query short link", err)
	}

	var link entity.ShortLink
	if err := doc.DataTo(&link); err != nil {
		return nil, errors.Internal("Failed to parse short link data", err)
	}

	return &link, nil
}
