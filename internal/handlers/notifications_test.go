package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare-app-server/internal/models"
)

var notificationColumns = []string{
	"id", "created_at", "user_id", "type", "title", "description",
	"pet_name", "is_read", "is_user_triggered",
}

func TestGetNotificationsForUser(t *testing.T) {
	gdb, mock := newMockDB(t)
	h := NewNotificationHandler(gdb)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notifications` WHERE user_id = ?")).
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows(notificationColumns).
			AddRow("n-1", now, "owner-1", "appointment", "Appointment Approved", "desc", "Bella", false, false).
			AddRow("n-2", now, "owner-1", "bogus-type", "Other", "desc", "", true, false))

	c, w := newTestContext(t, http.MethodGet, "/notifications", nil)
	asOwner(c, "owner-1", "Amy Park")

	h.GetNotificationsForUser(c)

	require.Equal(t, http.StatusOK, w.Code)
	var notifications []models.Notification
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &notifications))
	require.Len(t, notifications, 2)
	assert.Equal(t, models.NotificationAppointment, notifications[0].Type)
	// Unknown types fold into medical on read.
	assert.Equal(t, models.NotificationMedical, notifications[1].Type)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotificationsUnreadFilter(t *testing.T) {
	gdb, mock := newMockDB(t)
	h := NewNotificationHandler(gdb)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `notifications` WHERE user_id = ? AND is_read = ?")).
		WithArgs("owner-1", false).
		WillReturnRows(sqlmock.NewRows(notificationColumns))

	c, w := newTestContext(t, http.MethodGet, "/notifications?filter=unread", nil)
	asOwner(c, "owner-1", "Amy Park")

	h.GetNotificationsForUser(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkNotificationAsRead(t *testing.T) {
	gdb, mock := newMockDB(t)
	h := NewNotificationHandler(gdb)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `notifications` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, w := newTestContext(t, http.MethodPatch, "/notifications/n-1/read", nil)
	c.Params = gin.Params{{Key: "id", Value: "n-1"}}
	asOwner(c, "owner-1", "Amy Park")

	h.MarkNotificationAsRead(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkNotificationAsReadNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	h := NewNotificationHandler(gdb)

	// Scoped to the caller: someone else's notification id affects no rows.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `notifications` SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, w := newTestContext(t, http.MethodPatch, "/notifications/n-9/read", nil)
	c.Params = gin.Params{{Key: "id", Value: "n-9"}}
	asOwner(c, "owner-1", "Amy Park")

	h.MarkNotificationAsRead(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
