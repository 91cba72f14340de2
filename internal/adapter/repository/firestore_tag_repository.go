package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"foodgram/internal/domain/entity"
	"foodgram/internal/domain/repository"
	"foodgram/pkg/errors"
)

type firestoreTagRepository struct {
	client *firestore.Client
}

func NewFirestoreTagRepository(client *firestore.Client) repository.TagRepository {
	return &firestoreTagRepository{client: client}
}

func (r *firestoreTagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	if tag.ID == "" {
		doc := r.client.Collection("tags").NewDoc()
		tag.ID = doc.ID
	}

	_, err := r.client.Collection("tags").Doc(tag.ID).Set(ctx, tag)
	if err != nil {
		return errors.Internal("Failed to create tag", err)
	}

	return nil
}

func (r *firestoreTagRepository) GetByID(ctx context.Context, id string) (*entity.Tag, error) {
	doc, err := r.client.Collection("tags").Doc(id).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return nil, errors.NotFound("Tag", err)
		}
		return nil, errors.Internal("Failed to get tag", err)
	}

	var tag entity.Tag
	if err := doc.DataTo(&tag); err != nil {
		return nil, errors.Internal("Failed to parse tag data", err)
	}

	return &tag, nil
}

func (r *firestoreTagRepository) GetBySlug(ctx context.Context, slug string) (*entity.Tag, error) {
	iter := r.client.Collection("tags").Where("slug", "==", slug).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Tag", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query tag", err)
	}

	var tag entity.Tag
	if err := doc.DataTo(&tag); err != nil {
		return nil, errors.Internal("Failed to parse tag data", err)
	}

	return &tag, nil
}

func (r *firestoreTagRepository) List(ctx context.Context) ([]*entity.Tag, error) {
	iter := r.client.Collection("tags").OrderBy("name", firestore.Asc).Documents(ctx)
	var tags []*entity.Tag

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate tags", err)
		}
		var tag entity.Tag
		if err := doc.DataTo(&tag); err != nil {
			return nil, errors.Internal("Failed to parse tag data", err)
		}
		tags = append(tags, &tag)
	}

	return tags, nil
}
