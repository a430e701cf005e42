package models

import (
	"net/http"
	"time"
)

// SuccessResponse is the envelope for all successful API responses.
type SuccessResponse struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data"`
	Message    string      `json:"message"`
	Timestamp  Timestamp   `json:"timestamp"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorResponse is the envelope for all failed API responses.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// ErrorBody carries the failure detail inside an ErrorResponse.
type ErrorBody struct {
	Message   string         `json:"message"`
	Status    int            `json:"status"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp Timestamp      `json:"timestamp"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Total           int  `json:"total"`
	TotalPages      int  `json:"totalPages"`
	CurrentPage     int  `json:"currentPage"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// NewSuccess builds a success envelope. An empty message becomes
// "Success".
func NewSuccess(data any, message string) SuccessResponse {
	if message == "" {
		message = "Success"
	}
	return SuccessResponse{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: Timestamp(time.Now()),
	}
}

// NewError builds an error envelope. A zero status becomes 500.
func NewError(message string, status int) ErrorResponse {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return ErrorResponse{
		Success: false,
		Error: ErrorBody{
			Message:   message,
			Status:    status,
			Timestamp: Timestamp(time.Now()),
		},
	}
}

// NewValidationError builds the 400 envelope for a field-error map. The
// map lands under details.validation.
func NewValidationError(fields map[string][]string) ErrorResponse {
	resp := NewError("Validation failed", http.StatusBadRequest)
	resp.Error.Details = map[string]any{"validation": fields}
	return resp
}

// NewPaginated builds a success envelope for one page of a collection.
func NewPaginated(data any, total, page, limit int) SuccessResponse {
	resp := NewSuccess(data, "")
	p := NewPagination(total, page, limit)
	resp.Pagination = &p
	return resp
}

// NewPagination computes the page window for a collection of total items.
// An empty collection has zero pages and neither neighbour flag set.
func NewPagination(total, page, limit int) Pagination {
	if limit <= 0 {
		limit = 1
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Total:           total,
		TotalPages:      totalPages,
		CurrentPage:     page,
		ItemsPerPage:    limit,
		HasNextPage:     total > 0 && page < totalPages,
		HasPreviousPage: total > 0 && page > 1,
	}
}
