package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"foodgram/internal/domain/entity"
	"foodgram/pkg/errors"
)

func newUserFixture(t *testing.T) (*UserUseCase, *fakeUserRepo, *fakeSubscriptionRepo, *fakeImages, *fakeFirebaseAuth) {
	t.Helper()
	userRepo := newFakeUserRepo()
	subs := newFakeSubscriptionRepo()
	images := &fakeImages{}
	firebaseAuth := newFakeFirebaseAuth()
	return NewUserUseCase(userRepo, subs, firebaseAuth, images), userRepo, subs, images, firebaseAuth
}

func TestGetUserProfileIsSubscribed(t *testing.T) {
	uc, userRepo, subs, _, _ := newUserFixture(t)
	ctx := context.Background()

	author := &entity.User{Username: "chef", Email: "chef@example.com"}
	viewer := &entity.User{Username: "fan", Email: "fan@example.com"}
	assert.NoError(t, userRepo.Create(ctx, author))
	assert.NoError(t, userRepo.Create(ctx, viewer))

	profile, err := uc.GetUserProfile(ctx, author.ID, viewer.ID)
	assert.NoError(t, err)
	assert.False(t, profile.IsSubscribed)

	assert.NoError(t, subs.Create(ctx, &entity.Subscription{AuthorID: author.ID, FollowerID: viewer.ID}))

	profile, err = uc.GetUserProfile(ctx, author.ID, viewer.ID)
	assert.NoError(t, err)
	assert.True(t, profile.IsSubscribed)

	// Anonymous viewers never see a subscription
	profile, err = uc.GetUserProfile(ctx, author.ID, "")
	assert.NoError(t, err)
	assert.False(t, profile.IsSubscribed)
}

func TestGetUserProfileNotFound(t *testing.T) {
	uc, _, _, _, _ := newUserFixture(t)

	_, err := uc.GetUserProfile(context.Background(), "missing", "")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestListUsersPagination(t *testing.T) {
	uc, userRepo, _, _, _ := newUserFixture(t)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		user := &entity.User{Username: "user", Email: "user@example.com"}
		assert.NoError(t, userRepo.Create(ctx, user))
	}

	page1, total, err := uc.ListUsers(ctx, "", 1, 6)
	assert.NoError(t, err)
	assert.Equal(t, int64(8), total)
	assert.Len(t, page1, 6)

	page2, _, err := uc.ListUsers(ctx, "", 2, 6)
	assert.NoError(t, err)
	assert.Len(t, page2, 2)
}

func TestUpdateAvatar(t *testing.T) {
	uc, userRepo, _, images, _ := newUserFixture(t)
	ctx := context.Background()

	user := &entity.User{Username: "chef", Email: "chef@example.com"}
	assert.NoError(t, userRepo.Create(ctx, user))

	profile, err := uc.UpdateAvatar(ctx, user.ID, testImage)
	assert.NoError(t, err)
	assert.NotEmpty(t, profile.Avatar)

	// Replacing the avatar removes the previous object
	old := profile.Avatar
	profile, err = uc.UpdateAvatar(ctx, user.ID, testImage)
	assert.NoError(t, err)
	assert.NotEqual(t, old, profile.Avatar)
	assert.Contains(t, images.deleted, old)

	_, err = uc.UpdateAvatar(ctx, user.ID, "not-an-image")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestDeleteAvatar(t *testing.T) {
	uc, userRepo, _, images, _ := newUserFixture(t)
	ctx := context.Background()

	user := &entity.User{Username: "chef", Email: "chef@example.com"}
	assert.NoError(t, userRepo.Create(ctx, user))

	// Nothing to delete yet
	err := uc.DeleteAvatar(ctx, user.ID)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	profile, err := uc.UpdateAvatar(ctx, user.ID, testImage)
	assert.NoError(t, err)

	assert.NoError(t, uc.DeleteAvatar(ctx, user.ID))
	assert.Contains(t, images.deleted, profile.Avatar)

	stored, err := userRepo.GetByID(ctx, user.ID)
	assert.NoError(t, err)
	assert.Empty(t, stored.AvatarURL)
}

func TestUpdatePassword(t *testing.T) {
	uc, userRepo, _, _, firebaseAuth := newUserFixture(t)
	ctx := context.Background()

	uid, err := firebaseAuth.CreateUser(ctx, "chef@example.com", "old-pass", "chef")
	assert.NoError(t, err)
	user := &entity.User{ID: uid, Username: "chef", Email: "chef@example.com"}
	assert.NoError(t, userRepo.Create(ctx, user))

	err = uc.UpdatePassword(ctx, uid, "wrong-pass", "new-pass")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	assert.NoError(t, uc.UpdatePassword(ctx, uid, "old-pass", "new-pass"))

	_, err = firebaseAuth.SignInWithEmailPassword("chef@example.com", "new-pass")
	assert.NoError(t, err)
}
