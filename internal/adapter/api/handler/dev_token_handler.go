package handler

import (
	"github.com/labstack/echo/v4"

	"foodgram/internal/domain/repository"
	"foodgram/internal/infrastructure/firebase"
	"foodgram/pkg/errors"
	"foodgram/pkg/response"
)

// DevTokenHandler mints long lived tokens for manual API testing. Only
// mounted in development.
type DevTokenHandler struct {
	firebaseAuth *firebase.FirebaseAuthClient
	userRepo     repository.UserRepository
}

var devTokenHandler *DevTokenHandler

func NewDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient, userRepo repository.UserRepository) *DevTokenHandler {
	return &DevTokenHandler{
		firebaseAuth: firebaseAuth,
		userRepo:     userRepo,
	}
}

func SetupDevTokenHandler(firebaseAuth *firebase.FirebaseAuthClient, userRepo repository.UserRepository) {
	devTokenHandler = NewDevTokenHandler(firebaseAuth, userRepo)
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return response.Error(c, errors.BadRequest("email query parameter is required", nil))
	}

	user, err := h.userRepo.GetByEmail(c.Request().Context(), email)
	if err != nil {
		return response.Error(c, err)
	}

	token, err := h.firebaseAuth.GenerateLongLivedToken(c.Request().Context(), user.ID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
