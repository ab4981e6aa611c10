package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/showcase/server/internal/llm"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/search", nil)

	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func TestClassifyError(t *testing.T) {
	dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connect: connection refused")}

	tests := []struct {
		name     string
		err      error
		category string
		prod     string
	}{
		{"nil", nil, CategoryUnknown, ""},
		{"pg error", fmt.Errorf("query: %w", &pgconn.PgError{Code: "42P01"}), CategoryDatabase, "database operation failed"},
		{"deadline", fmt.Errorf("search: %w", context.DeadlineExceeded), CategoryTimeout, "request timed out"},
		{"canceled", context.Canceled, CategoryTimeout, "request canceled"},
		{"embedding", fmt.Errorf("failed to generate query embedding: %w", llm.ErrEmbeddingFailed), CategoryUpstream, "embedding service failed"},
		{"dial", fmt.Errorf("vector search failed: %w", dialErr), CategoryNetwork, "connection error occurred"},
		{"other", errors.New("boom"), CategoryUnknown, "an error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENVIRONMENT", "production")

			info := classifyError(tt.err)
			assert.Equal(t, tt.category, info.category)
			assert.Equal(t, tt.prod, info.sanitized)
		})
	}
}

func TestDependencyError_Status(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"embedding provider", fmt.Errorf("failed to generate query embedding: %w", llm.ErrEmbeddingFailed), http.StatusBadGateway, CodeUpstreamError},
		{"timeout", fmt.Errorf("vector search failed: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, CodeTimeout},
		{"unreachable", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}, http.StatusServiceUnavailable, CodeServiceUnavailable},
		{"database", &pgconn.PgError{Code: "42P01"}, http.StatusInternalServerError, CodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext()
			DependencyError(c, "search failed", tt.err)

			assert.Equal(t, tt.status, w.Code)

			resp := decode(t, w)
			assert.Equal(t, tt.code, resp.Error)
			assert.Equal(t, "search failed", resp.Message)
		})
	}
}

func TestClassifyError_DevelopmentKeepsMessage(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	err := errors.New("relation \"assets\" does not exist")
	assert.Equal(t, err.Error(), classifyError(err).sanitized)
}

func TestValidationError_Fields(t *testing.T) {
	type request struct {
		Query string `validate:"required"`
		Limit int    `validate:"max=50"`
	}

	err := validator.New().Struct(request{Limit: 99})
	require.Error(t, err)

	c, w := newContext()
	ValidationError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode(t, w)
	assert.Equal(t, CodeValidationError, resp.Error)
	assert.Equal(t, "failed on 'required' tag", resp.Fields["Query"])
	assert.Equal(t, "failed on 'max' tag", resp.Fields["Limit"])
	assert.Empty(t, resp.Details)
}

func TestValidationError_MalformedBody(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	c, w := newContext()
	ValidationError(c, errors.New("invalid character '}' looking for beginning of value"))

	resp := decode(t, w)
	assert.Nil(t, resp.Fields)
	assert.Contains(t, resp.Details, "invalid character")
}

func TestInternalError_SanitizedInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	c, w := newContext()
	InternalError(c, "search failed", &pgconn.PgError{Message: "relation \"assets\" does not exist"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	resp := decode(t, w)
	assert.Equal(t, CodeServerError, resp.Error)
	assert.Equal(t, "search failed", resp.Message)
	assert.Equal(t, "database operation failed", resp.Details)
}

func TestSimpleResponses(t *testing.T) {
	c, w := newContext()
	NotFound(c, "asset")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "asset not found", decode(t, w).Message)

	c, w = newContext()
	TooManyRequests(c, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, CodeTooManyRequests, decode(t, w).Error)

	c, w = newContext()
	ServiceUnavailable(c, "database unreachable", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, decode(t, w).Details)
}

func TestValidatePathUUID(t *testing.T) {
	c, _ := newContext()
	c.Params = gin.Params{{Key: "id", Value: "0B7F3C1E-5A52-4A8E-9D36-0F5D6B1C2A11"}}

	id, ok := ValidatePathUUID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, "0b7f3c1e-5a52-4a8e-9d36-0f5d6b1c2a11", id)

	c, w := newContext()
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	_, ok = ValidatePathUUID(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, CodeBadRequest, decode(t, w).Error)
}
