package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"foodgram/internal/domain/entity"
	"foodgram/internal/domain/repository"
	"foodgram/pkg/errors"
)

const (
	shortCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	shortCodeLength   = 6
	shortCodeRetries  = 5
)

type ShortLinkUseCase struct {
	shortLinkRepo repository.ShortLinkRepository
	recipeRepo    repository.RecipeRepository
}

func NewShortLinkUseCase(shortLinkRepo repository.ShortLinkRepository, recipeRepo repository.RecipeRepository) *ShortLinkUseCase {
	return &ShortLinkUseCase{
		shortLinkRepo: shortLinkRepo,
		recipeRepo:    recipeRepo,
	}
}

// GetOrCreate returns the recipe's short code, minting one on first request.
func (uc *ShortLinkUseCase) GetOrCreate(ctx context.Context, recipeID string) (string, error) {
	if _, err := uc.recipeRepo.GetByID(ctx, recipeID); err != nil {
		return "", err
	}

	existing, err := uc.shortLinkRepo.GetByRecipeID(ctx, recipeID)
	if err == nil {
		return existing.Code, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return "", err
	}

	// Collisions are vanishingly rare at 62^6 but the create is guarded, so
	// retry with a fresh code instead of failing the request.
	for attempt := 0; attempt < shortCodeRetries; attempt++ {
		code, err := generateShortCode()
		if err != nil {
			return "", errors.Internal("Failed to generate short code", err)
		}

		link := &entity.ShortLink{
			Code:     code,
			RecipeID: recipeID,
		}
		err = uc.shortLinkRepo.Create(ctx, link)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, "CONFLICT") {
			return "", err
		}

		// A concurrent request may have linked the recipe first; return
		// the winning code instead of minting a second one.
		if existing, lookupErr := uc.shortLinkRepo.GetByRecipeID(ctx, recipeID); lookupErr == nil {
			return existing.Code, nil
		}
	}

	return "", errors.Internal("Failed to allocate a unique short code", nil)
}

// Resolve maps a short code to the canonical recipe page path.
func (uc *ShortLinkUseCase) Resolve(ctx context.Context, code string) (string, error) {
	link, err := uc.shortLinkRepo.GetByCode(ctx, code)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("/recipes/%s/", link.RecipeID), nil
}

func generateShortCode() (string, error) {
	code := make([]byte, shortCodeLength)
	max := big.NewInt(int64(len(shortCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = shortCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
