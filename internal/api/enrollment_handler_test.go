package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wellnest/backend/internal/domain"
	"wellnest/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testJWTSecret = "test-secret"

// stubEnrollmentService records the trainer identity the handlers pass
// down. Only the methods under test are implemented.
type stubEnrollmentService struct {
	service.EnrollmentService
	gotTrainerUserID primitive.ObjectID
	gotUserID        primitive.ObjectID
}

func (s *stubEnrollmentService) RemoveClient(ctx context.Context, trainerUserID, userID primitive.ObjectID) error {
	s.gotTrainerUserID = trainerUserID
	s.gotUserID = userID
	return nil
}

func (s *stubEnrollmentService) ListClients(ctx context.Context, trainerUserID primitive.ObjectID) ([]service.ClientSummary, error) {
	s.gotTrainerUserID = trainerUserID
	return []service.ClientSummary{}, nil
}

func mintToken(t *testing.T, userID primitive.ObjectID, role domain.Role) string {
	t.Helper()
	claims := jwtClaims{
		UserID: userID.Hex(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func trainerRouter(stub *stubEnrollmentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewEnrollmentHandler(stub)

	group := router.Group("/trainer")
	group.Use(AuthMiddleware(testJWTSecret), RoleMiddleware(domain.RoleTrainer))
	group.GET("/clients", handler.Clients)
	group.POST("/remove-client", handler.RemoveClient)
	return router
}

// The authenticated account is the only trainer identity the operation
// acts for; a trainerId query parameter naming somebody else's profile
// changes nothing.
func TestRemoveClient_ActsAsAuthenticatedAccount(t *testing.T) {
	stub := &stubEnrollmentService{}
	router := trainerRouter(stub)

	caller := primitive.NewObjectID()
	otherProfile := primitive.NewObjectID()
	client := primitive.NewObjectID()

	body := []byte(`{"userId":"` + client.Hex() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/trainer/remove-client?trainerId="+otherProfile.Hex(), bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+mintToken(t, caller, domain.RoleTrainer))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, caller, stub.gotTrainerUserID)
	assert.Equal(t, client, stub.gotUserID)
	assert.NotEqual(t, otherProfile, stub.gotTrainerUserID)
}

func TestClients_ActsAsAuthenticatedAccount(t *testing.T) {
	stub := &stubEnrollmentService{}
	router := trainerRouter(stub)

	caller := primitive.NewObjectID()
	otherProfile := primitive.NewObjectID()

	req := httptest.NewRequest(http.MethodGet, "/trainer/clients?trainerId="+otherProfile.Hex(), nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, caller, domain.RoleTrainer))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, caller, stub.gotTrainerUserID)
}

func TestRemoveClient_RequiresTrainerRole(t *testing.T) {
	stub := &stubEnrollmentService{}
	router := trainerRouter(stub)

	body := []byte(`{"userId":"` + primitive.NewObjectID().Hex() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/trainer/remove-client", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+mintToken(t, primitive.NewObjectID(), domain.RoleUser))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.True(t, stub.gotTrainerUserID.IsZero())
}
