package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"civicalert/backend/internal/api/handler"
	"civicalert/backend/internal/auth"
	"civicalert/backend/internal/chat"
	"civicalert/backend/internal/config"
	"civicalert/backend/internal/models"
	"civicalert/backend/internal/notifier"
	"civicalert/backend/internal/push"
	"civicalert/backend/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testSecret = "test-secret"

func newTestRouter(store *mocks.MockStorage) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := config.Config{JWTSecret: testSecret}
	h := handler.NewHandler(store, chat.NewService(store, push.NopSender{}), notifier.New(store), cfg)

	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

// authorize signs a token for the user and stubs the lookup Protect does.
func authorize(store *mocks.MockStorage, user *models.User) string {
	token, _ := auth.SignToken(user.ID, testSecret, time.Hour)
	store.On("GetUserByID", user.ID).Return(user, nil)
	return token
}

func doRequest(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProtect_MissingToken(t *testing.T) {
	store := new(mocks.MockStorage)
	r := newTestRouter(store)

	w := doRequest(r, http.MethodGet, "/api/notifications", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token missing")
}

func TestProtect_InvalidToken(t *testing.T) {
	store := new(mocks.MockStorage)
	r := newTestRouter(store)

	forged, _ := auth.SignToken("u1", "wrong-secret", time.Hour)
	w := doRequest(r, http.MethodGet, "/api/notifications", forged, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token invalid")
}

func TestProtect_UnknownUser(t *testing.T) {
	store := new(mocks.MockStorage)
	r := newTestRouter(store)

	token, _ := auth.SignToken("ghost", testSecret, time.Hour)
	store.On("GetUserByID", "ghost").Return(nil, nil)

	w := doRequest(r, http.MethodGet, "/api/notifications", token, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
}

func TestListNotifications(t *testing.T) {
	store := new(mocks.MockStorage)
	r := newTestRouter(store)

	user := &models.User{ID: "u1", Role: models.RoleCitizen}
	token := authorize(store, user)
	store.On("GetNotifications", "u1").Return([]models.Notification{
		{ID: "n1", UserID: "u1", Message: "first"},
	}, nil)

	w := doRequest(r, http.MethodGet, "/api/notifications", token, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool                  `json:"success"`
		Data    []models.Notification `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "first", resp.Data[0].Message)
}

func TestMarkNotificationRead_NotOwned(t *testing.T) {
	store := new(mocks.MockStorage)
	r := newTestRouter(store)

	user := &models.User{ID: "u1", Role: models.RoleCitizen}
	token := authorize(store, user)
	store.On("MarkNotificationRead", "n9", "u1").Return(nil, nil)

	w := doRequest(r, http.MethodPatch, "/api/notifications/n9/read", token, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found or unauthorized")
}

func TestMarkAllNotificationsRead_ReportsCount(t *testing.T) {
	store := new(mocks.MockStorage)
	r := newTestRouter(store)

	user := &models.User{ID: "u1", Role: models.RoleCitizen}
	token := authorize(store, user)
	store.On("MarkAllNotificationsRead", "u1").Return(int64(3), nil)

	w := doRequest(r, http.MethodPatch, "/api/notifications/mark-all-read", token, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			ModifiedCount int64 `json:"modifiedCount"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.Data.ModifiedCount)
}

func TestCreateTestNotification_RequiresMessage(t *testing.T) {
	store := new(mocks.MockStorage)
	r := newTestRouter(store)

	user := &models.User{ID: "u1", Role: models.RoleCitizen}
	token := authorize(store, user)

	w := doRequest(r, http.MethodPost, "/api/notifications/test", token, gin.H{"reportId": "r1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Message is required")
	store.AssertNotCalled(t, "CreateNotification", mock.Anything)
}

func TestUpdateReportStatus_CitizenForbidden(t *testing.T) {
	store := new(mocks.MockStorage)
	r := newTestRouter(store)

	user := &models.User{ID: "u1", Role: models.RoleCitizen}
	token := authorize(store, user)

	w := doRequest(r, http.MethodPut, "/api/reports/r1/status", token, gin.H{"status": models.StatusResolved})

	assert.Equal(t, http.StatusForbidden, w.Code)
	store.AssertNotCalled(t, "UpdateReportStatus", mock.Anything, mock.Anything)
}

func TestUpdateReportStatus_OfficerNotifiesOwner(t *testing.T) {
	store := new(mocks.MockStorage)
	r := newTestRouter(store)

	officer := &models.User{ID: "o1", Role: models.RoleOfficer}
	token := authorize(store, officer)

	report := &models.Report{ID: "r1", UserID: "u1", Category: "Theft", Status: models.StatusResolved}
	store.On("UpdateReportStatus", "r1", models.StatusResolved).Return(report, nil)
	store.On("CreateNotification", mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == "u1" && n.Type == models.NotificationStatusUpdate
	})).Return(nil)

	w := doRequest(r, http.MethodPut, "/api/reports/r1/status", token, gin.H{"status": models.StatusResolved})

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}

func TestUpdateReportStatus_RejectsUnknownStatus(t *testing.T) {
	store := new(mocks.MockStorage)
	r := newTestRouter(store)

	officer := &models.User{ID: "o1", Role: models.RoleOfficer}
	token := authorize(store, officer)

	w := doRequest(r, http.MethodPut, "/api/reports/r1/status", token, gin.H{"status": "totally_made_up"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid status value")
	store.AssertNotCalled(t, "UpdateReportStatus", mock.Anything, mock.Anything)
}

func TestUpdateReportStatus_UnknownReport(t *testing.T) {
	store := new(mocks.MockStorage)
	r := newTestRouter(store)

	officer := &models.User{ID: "o1", Role: models.RoleOfficer}
	token := authorize(store, officer)
	store.On("UpdateReportStatus", "missing", models.StatusResolved).Return(nil, nil)

	w := doRequest(r, http.MethodPut, "/api/reports/missing/status", token, gin.H{"status": models.StatusResolved})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeWebSocket_RejectsWithoutCredential(t *testing.T) {
	store := new(mocks.MockStorage)
	r := newTestRouter(store)

	w := doRequest(r, http.MethodGet, "/ws", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	store := new(mocks.MockStorage)
	r := newTestRouter(store)

	w := doRequest(r, http.MethodGet, "/api/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Server is running")
}
