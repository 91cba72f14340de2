package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

const (
	RecipeImageFolder = "recipes/images"
	AvatarFolder      = "users/avatars"
)

// ImageStorage is the slice of the storage client the image service needs.
type ImageStorage interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}

// ImageService turns base64 data-URI payloads from API clients into stored
// objects. Clients send images inline, e.g. "data:image/png;base64,iVBOR...".
type ImageService struct {
	storage ImageStorage
}

func NewImageService(storage ImageStorage) *ImageService {
	return &ImageService{storage: storage}
}

// UploadBase64 decodes a data URI and stores the image, returning its URL.
func (s *ImageService) UploadBase64(ctx context.Context, dataURI, folder string) (string, error) {
	fileType, data, err := DecodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	return s.storage.UploadFile(ctx, bytes.NewReader(data), fileType, folder)
}

func (s *ImageService) Delete(ctx context.Context, fileURL string) error {
	return s.storage.DeleteFile(ctx, fileURL)
}

// DecodeDataURI splits a "data:<mime>;base64,<payload>" string into its
// content type and decoded bytes.
func DecodeDataURI(dataURI string) (string, []byte, error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}

	rest := dataURI[len("data:"):]
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", nil, fmt.Errorf("data URI is not base64 encoded")
	}

	fileType := rest[:sep]
	if !strings.HasPrefix(fileType, "image/") {
		return "", nil, fmt.Errorf("unsupported content type: %s", fileType)
	}

	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload: %v", err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("empty image payload")
	}

	return fileType, data, nil
}
