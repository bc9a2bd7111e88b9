package api

import (
	"errors"
	"net/http"

	"wellnest/backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EnrollmentHandler serves the user-trainer relationship lifecycle: the
// user-side hire/cancel operations and the trainer-side request queue.
type EnrollmentHandler struct {
	enrollmentService service.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// --- DTOs ---

type HireTrainerRequest struct {
	TrainerID string `json:"trainerId" binding:"required"`
}

type ClientActionRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// actingTrainer identifies the trainer account behind the request. The
// trainer-side operations only ever act for the authenticated caller.
func actingTrainer(c *gin.Context) (primitive.ObjectID, bool) {
	trainerUserID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	return trainerUserID, true
}

// HireTrainer records the authenticated user's enrollment request.
// A repeated request silently supersedes the previous pending one.
func (h *EnrollmentHandler) HireTrainer(c *gin.Context) {
	var req HireTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, err := primitive.ObjectIDFromHex(req.TrainerID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format.")
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.enrollmentService.RequestEnrollment(c.Request.Context(), userID, trainerID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrTrainerNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to request enrollment.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Enrollment request sent! Waiting for trainer's approval."})
}

// UnhireTrainer clears the authenticated user's active trainer link.
func (h *EnrollmentHandler) UnhireTrainer(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.enrollmentService.CancelEnrollment(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to cancel enrollment.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Enrollment cancelled successfully!"})
}

// PendingRequests lists the users waiting on the trainer's approval.
func (h *EnrollmentHandler) PendingRequests(c *gin.Context) {
	trainerUserID, ok := actingTrainer(c)
	if !ok {
		return
	}

	requests, err := h.enrollmentService.ListPendingRequests(c.Request.Context(), trainerUserID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to list pending requests.")
		}
		return
	}
	c.JSON(http.StatusOK, requests)
}

// Clients lists the users actively enrolled with the trainer.
func (h *EnrollmentHandler) Clients(c *gin.Context) {
	trainerUserID, ok := actingTrainer(c)
	if !ok {
		return
	}

	clients, err := h.enrollmentService.ListClients(c.Request.Context(), trainerUserID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to list clients.")
		}
		return
	}
	c.JSON(http.StatusOK, clients)
}

// AcceptRequest approves a user's pending enrollment request.
func (h *EnrollmentHandler) AcceptRequest(c *gin.Context) {
	var req ClientActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	trainerUserID, ok := actingTrainer(c)
	if !ok {
		return
	}

	user, err := h.enrollmentService.AcceptRequest(c.Request.Context(), trainerUserID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrTrainerNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNoPendingRequest):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to accept request.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User accepted!",
		"user":    MapUserToResponse(user),
	})
}

// RejectRequest declines a user's pending enrollment request. Rejecting
// when nothing is pending is a successful no-op.
func (h *EnrollmentHandler) RejectRequest(c *gin.Context) {
	var req ClientActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	trainerUserID, ok := actingTrainer(c)
	if !ok {
		return
	}

	if err := h.enrollmentService.RejectRequest(c.Request.Context(), trainerUserID, userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to reject request.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User request rejected."})
}

// RemoveClient clears a managed client's active link, trainer-initiated.
func (h *EnrollmentHandler) RemoveClient(c *gin.Context) {
	trainerUserID, ok := actingTrainer(c)
	if !ok {
		return
	}

	var req ClientActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format.")
		return
	}

	if err := h.enrollmentService.RemoveClient(c.Request.Context(), trainerUserID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrTrainerNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrClientNotManaged):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to remove client.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client enrollment cancelled successfully!"})
}
