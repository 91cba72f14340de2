package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"foodgram/pkg/errors"
)

func newAuthFixture() (*AuthUseCase, *fakeUserRepo, *fakeFirebaseAuth, *fakeLimiter) {
	userRepo := newFakeUserRepo()
	firebaseAuth := newFakeFirebaseAuth()
	limiter := newFakeLimiter()
	return NewAuthUseCase(userRepo, firebaseAuth, limiter), userRepo, firebaseAuth, limiter
}

func registerInput() RegisterInput {
	return RegisterInput{
		Email:     "chef@example.com",
		Password:  "secret-pass",
		Username:  "chef",
		FirstName: "Ann",
		LastName:  "Cook",
	}
}

func TestRegister(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()
	ctx := context.Background()

	result, err := uc.Register(ctx, registerInput())
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "chef", result.User.Username)
	assert.Equal(t, "user", result.User.Role)

	stored, err := userRepo.GetByEmail(ctx, "chef@example.com")
	assert.NoError(t, err)
	assert.Equal(t, result.User.ID, stored.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := uc.Register(ctx, registerInput())
	assert.NoError(t, err)

	input := registerInput()
	input.Username = "other"
	_, err = uc.Register(ctx, input)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	uc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := uc.Register(ctx, registerInput())
	assert.NoError(t, err)

	input := registerInput()
	input.Email = "other@example.com"
	_, err = uc.Register(ctx, input)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRegisterRateLimited(t *testing.T) {
	uc, _, _, limiter := newAuthFixture()
	limiter.denied["chef@example.com:register"] = true

	_, err := uc.Register(context.Background(), registerInput())
	assert.True(t, errors.Is(err, "TOO_MANY_REQUESTS"))
}

func TestLogin(t *testing.T) {
	uc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	registered, err := uc.Register(ctx, registerInput())
	assert.NoError(t, err)

	result, err := uc.Login(ctx, "chef@example.com", "secret-pass")
	assert.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)

	_, err = uc.Login(ctx, "chef@example.com", "wrong-pass")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestRefreshToken(t *testing.T) {
	uc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	registered, err := uc.Register(ctx, registerInput())
	assert.NoError(t, err)

	result, err := uc.RefreshToken(ctx, registered.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)

	_, err = uc.RefreshToken(ctx, "refresh-bogus")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}
