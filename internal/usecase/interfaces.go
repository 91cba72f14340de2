package usecase

import (
	"context"
	"time"
)

type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	SignInWithEmailPasswordWithRefresh(email, password string) (string, string, error)
	RefreshIdToken(refreshToken string) (string, string, error)
	UpdateUserPassword(ctx context.Context, uid, newPassword string) error
	TestConnection(ctx context.Context) error
}

// ImageUploader stores inline base64 images and deletes stored ones.
type ImageUploader interface {
	UploadBase64(ctx context.Context, dataURI, folder string) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

// ActionLimiter throttles abuse-prone actions per caller. The key is an
// account identifier, not an IP.
type ActionLimiter interface {
	Allow(key, action string) (bool, time.Duration)
}
