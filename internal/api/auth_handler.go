package api

import (
	"errors"
	"net/http"

	"wellnest/backend/internal/domain"
	"wellnest/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- DTOs ---

type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Goal     string `json:"goal"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID               string                 `json:"id"`
	FullName         string                 `json:"fullName"`
	Email            string                 `json:"email"`
	Role             domain.Role            `json:"role"`
	Goal             string                 `json:"goal,omitempty"`
	TrainerID        string                 `json:"trainerId,omitempty"`
	PendingTrainerID string                 `json:"pendingTrainerId,omitempty"`
	EnrollmentState  domain.EnrollmentState `json:"enrollmentState"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MapUserToResponse converts a domain user into its public view.
func MapUserToResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:              user.ID.Hex(),
		FullName:        user.FullName,
		Email:           user.Email,
		Role:            user.Role,
		Goal:            user.Goal,
		EnrollmentState: user.EnrollmentStateOf(),
	}
	if user.TrainerID != nil {
		resp.TrainerID = user.TrainerID.Hex()
	}
	if user.PendingTrainerID != nil {
		resp.PendingTrainerID = user.PendingTrainerID.Hex()
	}
	return resp
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.FullName, req.Email, req.Password, req.Goal)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to register user.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// Login authenticates a user and returns a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to log in.")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}
