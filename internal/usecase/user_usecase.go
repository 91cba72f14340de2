package usecase

import (
	"context"

	"foodgram/internal/domain/entity"
	"foodgram/internal/domain/repository"
	"foodgram/internal/domain/service"
	"foodgram/pkg/errors"
)

type UserUseCase struct {
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
	firebaseAuth     FirebaseAuthClient
	images           ImageUploader
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	subscriptionRepo repository.SubscriptionRepository,
	firebaseAuth FirebaseAuthClient,
	images ImageUploader,
) *UserUseCase {
	return &UserUseCase{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		firebaseAuth:     firebaseAuth,
		images:           images,
	}
}

// UserResponse is the public profile shape; IsSubscribed is relative to the
// viewer and false for anonymous requests.
type UserResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Avatar       string `json:"avatar,omitempty"`
	IsSubscribed bool   `json:"is_subscribed"`
}

func (uc *UserUseCase) toResponse(ctx context.Context, user *entity.User, viewerID string) (*UserResponse, error) {
	isSubscribed := false
	if viewerID != "" && viewerID != user.ID {
		var err error
		isSubscribed, err = uc.subscriptionRepo.Exists(ctx, user.ID, viewerID)
		if err != nil {
			return nil, err
		}
	}

	return &UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		Avatar:       user.AvatarURL,
		IsSubscribed: isSubscribed,
	}, nil
}

func (uc *UserUseCase) GetUserProfile(ctx context.Context, userID, viewerID string) (*UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	return uc.toResponse(ctx, user, viewerID)
}

func (uc *UserUseCase) ListUsers(ctx context.Context, viewerID string, page, pageSize int) ([]*UserResponse, int64, error) {
	offset := (page - 1) * pageSize

	users, total, err := uc.userRepo.List(ctx, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		resp, err := uc.toResponse(ctx, user, viewerID)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, resp)
	}

	return responses, total, nil
}

func (uc *UserUseCase) UpdateAvatar(ctx context.Context, userID, imageData string) (*UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	url, err := uc.images.UploadBase64(ctx, imageData, service.AvatarFolder)
	if err != nil {
		return nil, errors.BadRequest("Invalid avatar image", err)
	}

	// Old avatar is replaced; removal failures only leak an orphan object
	if user.AvatarURL != "" {
		_ = uc.images.Delete(ctx, user.AvatarURL)
	}

	user.AvatarURL = url
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update avatar", err)
	}

	return uc.toResponse(ctx, user, userID)
}

func (uc *UserUseCase) DeleteAvatar(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return errors.NotFound("User", err)
	}

	if user.AvatarURL == "" {
		return errors.BadRequest("User has no avatar", nil)
	}

	if err := uc.images.Delete(ctx, user.AvatarURL); err != nil {
		return errors.Internal("Failed to delete avatar file", err)
	}

	user.AvatarURL = ""
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return errors.Internal("Failed to update user", err)
	}

	return nil
}

func (uc *UserUseCase) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return errors.NotFound("User", err)
	}

	_, err = uc.firebaseAuth.SignInWithEmailPassword(user.Email, currentPassword)
	if err != nil {
		return errors.Unauthorized("Current password is incorrect", err)
	}

	if err := uc.firebaseAuth.UpdateUserPassword(ctx, userID, newPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}

	return nil
}
