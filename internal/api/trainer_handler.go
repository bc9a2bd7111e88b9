package api

import (
	"errors"
	"net/http"

	"wellnest/backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerHandler serves the trainer directory: the public roster,
// goal-based recommendations, and the become-a-trainer / profile flows.
type TrainerHandler struct {
	profileService  service.TrainerProfileService
	matchingService service.MatchingService
}

func NewTrainerHandler(profileService service.TrainerProfileService, matchingService service.MatchingService) *TrainerHandler {
	return &TrainerHandler{
		profileService:  profileService,
		matchingService: matchingService,
	}
}

// --- DTOs ---

type TrainerEnrollmentRequest struct {
	Specialization  string `json:"specialization" binding:"required"`
	ExperienceYears int    `json:"experienceYears" binding:"required,min=0"`
	Bio             string `json:"bio"`
	Age             int    `json:"age" binding:"required,min=18"`
}

type TrainerProfileUpdateRequest struct {
	Name            string `json:"name" binding:"required"`
	Specialization  string `json:"specialization" binding:"required"`
	ExperienceYears int    `json:"experienceYears"`
	Bio             string `json:"bio"`
	ImageURL        string `json:"imageUrl"`
	Age             int    `json:"age"`
}

type ImageUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmImageRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// ListTrainers returns the full roster.
func (h *TrainerHandler) ListTrainers(c *gin.Context) {
	trainers, err := h.profileService.ListTrainers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list trainers.")
		return
	}
	c.JSON(http.StatusOK, trainers)
}

// GetTrainer returns a single trainer profile by id.
func (h *TrainerHandler) GetTrainer(c *gin.Context) {
	trainerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format.")
		return
	}

	trainer, err := h.profileService.GetTrainer(c.Request.Context(), trainerID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to get trainer.")
		}
		return
	}
	c.JSON(http.StatusOK, trainer)
}

// Recommend returns trainers matched against the authenticated user's goal.
func (h *TrainerHandler) Recommend(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	trainers, err := h.matchingService.Recommend(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to recommend trainers.")
		}
		return
	}
	c.JSON(http.StatusOK, trainers)
}

// EnrollAsTrainer creates a trainer profile for the authenticated user.
func (h *TrainerHandler) EnrollAsTrainer(c *gin.Context) {
	var req TrainerEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	trainer, err := h.profileService.EnrollAsTrainer(c.Request.Context(), userID, service.TrainerEnrollmentInput{
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		Bio:             req.Bio,
		Age:             req.Age,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAlreadyTrainer):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to enroll as trainer.")
		}
		return
	}

	c.JSON(http.StatusCreated, trainer)
}

// actorFromContext builds the acting identity the profile edit
// operations authorize against.
func actorFromContext(c *gin.Context) (service.Actor, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return service.Actor{}, false
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return service.Actor{}, false
	}
	return service.Actor{ID: userID, Role: role}, true
}

// UpdateProfile edits a trainer profile owned by the caller.
func (h *TrainerHandler) UpdateProfile(c *gin.Context) {
	trainerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format.")
		return
	}

	var req TrainerProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	trainer, err := h.profileService.UpdateProfile(c.Request.Context(), actor, trainerID, service.TrainerProfileUpdate{
		Name:            req.Name,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		Bio:             req.Bio,
		ImageURL:        req.ImageURL,
		Age:             req.Age,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotProfileOwner):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update trainer profile.")
		}
		return
	}
	c.JSON(http.StatusOK, trainer)
}

// RequestImageUpload returns a presigned PUT URL for a new profile image.
func (h *TrainerHandler) RequestImageUpload(c *gin.Context) {
	trainerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format.")
		return
	}

	var req ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	resp, err := h.profileService.RequestImageUploadURL(c.Request.Context(), actor, trainerID, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotProfileOwner):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrInvalidImageType):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmImageUpload records the uploaded object key on the profile.
func (h *TrainerHandler) ConfirmImageUpload(c *gin.Context) {
	trainerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format.")
		return
	}

	var req ConfirmImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	trainer, err := h.profileService.ConfirmImageUpload(c.Request.Context(), actor, trainerID, req.ObjectKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotProfileOwner):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to confirm image upload.")
		}
		return
	}
	c.JSON(http.StatusOK, trainer)
}

// ImageDownloadURL returns a temporary viewing URL for the profile image.
func (h *TrainerHandler) ImageDownloadURL(c *gin.Context) {
	trainerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format.")
		return
	}

	downloadURL, err := h.profileService.ImageDownloadURL(c.Request.Context(), trainerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound), errors.Is(err, service.ErrTrainerHasNoImage):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": downloadURL})
}
