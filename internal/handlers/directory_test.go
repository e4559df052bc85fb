package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nannyColumns = []string{"id", "name", "rating", "distance_km", "services", "pet_types"}

func TestGetNanniesSplitsListsAndFilters(t *testing.T) {
	gdb, mock := newMockDB(t)
	h := NewDirectoryHandler(gdb)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `pet_nannies`")).
		WillReturnRows(sqlmock.NewRows(nannyColumns).
			AddRow("n-1", "Priya", 4.9, 2.5, "Walking,Sitting", "Dog,Cat").
			AddRow("n-2", "Rahul", 4.2, 6.0, "Grooming", "Dog"))

	c, w := newTestContext(t, http.MethodGet, "/directory/nannies?service=walking", nil)
	asOwner(c, "owner-1", "Amy Park")

	h.GetNannies(c)

	require.Equal(t, http.StatusOK, w.Code)
	var results []NannyResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &results))

	// The service filter matches case-insensitively against the split list.
	require.Len(t, results, 1)
	assert.Equal(t, "Priya", results[0].Name)
	assert.Equal(t, []string{"Walking", "Sitting"}, results[0].Services)
	assert.Equal(t, []string{"Dog", "Cat"}, results[0].PetTypes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNanniesRejectsBadDistance(t *testing.T) {
	gdb, _ := newMockDB(t)
	h := NewDirectoryHandler(gdb)

	c, w := newTestContext(t, http.MethodGet, "/directory/nannies?maxDistance=close", nil)
	asOwner(c, "owner-1", "Amy Park")

	h.GetNannies(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetVetsSanitizesOutput(t *testing.T) {
	gdb, mock := newMockDB(t)
	h := NewDirectoryHandler(gdb)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE role = ?")).
		WithArgs("veterinarian").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "role"}).
			AddRow("vet-1", "sarah@example.com", "$2a$10$hash", "Sarah Johnson", "veterinarian"))

	c, w := newTestContext(t, http.MethodGet, "/directory/vets", nil)
	asOwner(c, "owner-1", "Amy Park")

	h.GetVets(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "$2a$10$hash")
	assert.Contains(t, w.Body.String(), "Sarah Johnson")
	assert.NoError(t, mock.ExpectationsWereMet())
}
