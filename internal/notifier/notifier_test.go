package notifier_test

import (
	"errors"
	"testing"
	"time"

	"civicalert/backend/internal/models"
	"civicalert/backend/internal/notifier"
	"civicalert/backend/internal/realtime"
	"civicalert/backend/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockClient struct {
	userID string
	Recv   chan models.Event
}

func newMockClient(userID string) *mockClient {
	return &mockClient{userID: userID, Recv: make(chan models.Event, 16)}
}

func (c *mockClient) GetUserID() string                   { return c.userID }
func (c *mockClient) GetSendChannel() chan<- models.Event { return c.Recv }
func (c *mockClient) Run()                                {}
func (c *mockClient) Close()                              {}

func TestReportCreated_PersistsNotification(t *testing.T) {
	storageMock := new(mocks.MockStorage)
	n := notifier.New(storageMock)

	report := &models.Report{ID: "report-1", UserID: "user-1", Category: "Theft"}

	storageMock.On("CreateNotification", mock.MatchedBy(func(got *models.Notification) bool {
		return got.UserID == "user-1" &&
			got.ReportID == "report-1" &&
			got.Message == "New report submitted: Theft" &&
			got.Type == models.NotificationNewReport
	})).Return(nil)

	n.ReportCreated(report)

	storageMock.AssertExpectations(t)
}

func TestReportCreated_NoOwner(t *testing.T) {
	storageMock := new(mocks.MockStorage)
	n := notifier.New(storageMock)

	n.ReportCreated(&models.Report{ID: "report-1"})
	n.ReportCreated(nil)

	storageMock.AssertNotCalled(t, "CreateNotification", mock.Anything)
}

func TestStatusChanged_Messages(t *testing.T) {
	tests := []struct {
		status  string
		message string
	}{
		{"pending", "Your report is pending review"},
		{"in_progress", "Your report is being processed"},
		{"resolved", "Your report has been resolved"},
		{"rejected", "Your report has been reviewed"},
		{"totally_new_status", "Your report status has been updated"},
		{"", "Your report status has been updated"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			storageMock := new(mocks.MockStorage)
			n := notifier.New(storageMock)

			storageMock.On("CreateNotification", mock.MatchedBy(func(got *models.Notification) bool {
				return got.Message == tt.message && got.Type == models.NotificationStatusUpdate
			})).Return(nil)

			n.StatusChanged(&models.Report{ID: "report-1", UserID: "user-1"}, tt.status)

			storageMock.AssertExpectations(t)
		})
	}
}

func TestStatusChanged_PersistenceFailureDoesNotPanic(t *testing.T) {
	storageMock := new(mocks.MockStorage)
	n := notifier.New(storageMock)

	storageMock.On("CreateNotification", mock.Anything).Return(errors.New("db down"))

	assert.NotPanics(t, func() {
		n.StatusChanged(&models.Report{ID: "report-1", UserID: "user-1"}, "resolved")
	})
}

func TestReportCreated_DeliversToConnectedOwner(t *testing.T) {
	hub := realtime.Init()

	client := newMockClient("user-1")
	hub.RegisterCh <- client
	time.Sleep(50 * time.Millisecond)

	storageMock := new(mocks.MockStorage)
	storageMock.On("CreateNotification", mock.Anything).Return(nil)

	n := notifier.New(storageMock)
	n.ReportCreated(&models.Report{ID: "report-1", UserID: "user-1", Category: "Vandalism"})

	select {
	case evt := <-client.Recv:
		assert.Equal(t, models.EventNotification, evt.Event)
		record, ok := evt.Data.(*models.Notification)
		assert.True(t, ok)
		assert.Equal(t, "user-1", record.UserID)
		assert.Equal(t, "report-1", record.ReportID)
	case <-time.After(time.Second):
		t.Error("connected owner did not receive notification event")
	}

	// Exactly one event for one trigger.
	assert.Empty(t, client.Recv)
}
