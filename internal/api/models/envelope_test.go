package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aquagrid/aquagrid/internal/api/models"
)

func TestNewSuccess_DefaultMessage(t *testing.T) {
	resp := models.NewSuccess(map[string]any{"id": "pmp_1"}, "")
	assert.True(t, resp.Success)
	assert.Equal(t, "Success", resp.Message)
	assert.False(t, resp.Timestamp.Time().IsZero())
}

func TestNewError_DefaultStatus(t *testing.T) {
	resp := models.NewError("boom", 0)
	assert.False(t, resp.Success)
	assert.Equal(t, 500, resp.Error.Status)
	assert.Equal(t, "boom", resp.Error.Message)
}

func TestNewValidationError(t *testing.T) {
	fields := map[string][]string{"name": {"is required"}}
	resp := models.NewValidationError(fields)

	assert.Equal(t, 400, resp.Error.Status)
	assert.Equal(t, fields, resp.Error.Details["validation"])
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		page        int
		limit       int
		totalPages  int
		hasNext     bool
		hasPrevious bool
	}{
		{"middle page", 10, 2, 3, 4, true, true},
		{"first page", 10, 1, 3, 4, true, false},
		{"last page", 10, 4, 3, 4, false, true},
		{"exact fit", 9, 3, 3, 3, false, true},
		{"single page", 2, 1, 50, 1, false, false},
		{"empty collection", 0, 1, 50, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.NewPagination(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.page, p.CurrentPage)
			assert.Equal(t, tt.limit, p.ItemsPerPage)
			assert.Equal(t, tt.hasNext, p.HasNextPage)
			assert.Equal(t, tt.hasPrevious, p.HasPreviousPage)
		})
	}
}
