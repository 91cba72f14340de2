package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"foodgram/internal/domain/entity"
	"foodgram/pkg/errors"
)

func TestGetOrCreateShortLink(t *testing.T) {
	f := newRecipeFixture(t)
	links := newFakeShortLinkRepo()
	uc := NewShortLinkUseCase(links, f.recipes)
	ctx := context.Background()

	recipe, err := f.uc.CreateRecipe(ctx, f.author.ID, f.validInput())
	assert.NoError(t, err)

	code, err := uc.GetOrCreate(ctx, recipe.ID)
	assert.NoError(t, err)
	assert.Len(t, code, 6)
	for _, ch := range code {
		assert.Contains(t, shortCodeAlphabet, string(ch))
	}

	// Repeated requests return the same code
	again, err := uc.GetOrCreate(ctx, recipe.ID)
	assert.NoError(t, err)
	assert.Equal(t, code, again)
}

func TestGetOrCreateShortLinkUnknownRecipe(t *testing.T) {
	f := newRecipeFixture(t)
	uc := NewShortLinkUseCase(newFakeShortLinkRepo(), f.recipes)

	_, err := uc.GetOrCreate(context.Background(), "missing")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

// lostRaceShortLinkRepo misses the first recipe lookup, as when another
// request links the recipe between the lookup and the create.
type lostRaceShortLinkRepo struct {
	*fakeShortLinkRepo
	firstLookupDone bool
}

func (r *lostRaceShortLinkRepo) GetByRecipeID(ctx context.Context, recipeID string) (*entity.ShortLink, error) {
	if !r.firstLookupDone {
		r.firstLookupDone = true
		return nil, errors.NotFound("Short link", nil)
	}
	return r.fakeShortLinkRepo.GetByRecipeID(ctx, recipeID)
}

func TestGetOrCreateShortLinkKeepsOneLinkPerRecipe(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	recipe, err := f.uc.CreateRecipe(ctx, f.author.ID, f.validInput())
	assert.NoError(t, err)

	links := newFakeShortLinkRepo()
	assert.NoError(t, links.Create(ctx, &entity.ShortLink{Code: "abc123", RecipeID: recipe.ID}))

	uc := NewShortLinkUseCase(&lostRaceShortLinkRepo{fakeShortLinkRepo: links}, f.recipes)

	code, err := uc.GetOrCreate(ctx, recipe.ID)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", code)
	assert.Len(t, links.byCode, 1)
}

func TestResolveShortLink(t *testing.T) {
	f := newRecipeFixture(t)
	links := newFakeShortLinkRepo()
	uc := NewShortLinkUseCase(links, f.recipes)
	ctx := context.Background()

	recipe, err := f.uc.CreateRecipe(ctx, f.author.ID, f.validInput())
	assert.NoError(t, err)

	code, err := uc.GetOrCreate(ctx, recipe.ID)
	assert.NoError(t, err)

	target, err := uc.Resolve(ctx, code)
	assert.NoError(t, err)
	assert.Equal(t, "/recipes/"+recipe.ID+"/", target)

	_, err = uc.Resolve(ctx, "zzzzzz")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestGenerateShortCodeCharset(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := generateShortCode()
		assert.NoError(t, err)
		assert.Len(t, code, 6)
		assert.Equal(t, "", strings.Trim(code, shortCodeAlphabet))
		seen[code] = true
	}
	// 50 draws from a 62^6 space should not collide
	assert.Greater(t, len(seen), 45)
}
