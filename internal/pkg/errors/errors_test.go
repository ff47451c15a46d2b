package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without wrapped error",
			err:  New(CodeSweepUnknown, "unknown sweep kind", http.StatusNotFound),
			want: "SWEEP_UNKNOWN: unknown sweep kind",
		},
		{
			name: "with wrapped error",
			err:  Wrap(fmt.Errorf("db down"), CodeInternal, "announcement failed", http.StatusInternalServerError),
			want: "INTERNAL_ERROR: announcement failed: db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsAppError(t *testing.T) {
	inner := errors.New("bad level")
	wrapped := fmt.Errorf("handler: %w", ErrAudienceInvalid(inner))

	got, ok := IsAppError(wrapped)
	require.True(t, ok)
	require.Equal(t, CodeAudienceInvalid, got.Code)
	require.Equal(t, http.StatusBadRequest, got.HTTPStatus)
	require.ErrorIs(t, wrapped, inner)

	_, ok = IsAppError(inner)
	require.False(t, ok)
}

func TestSweepErrors(t *testing.T) {
	unknown := ErrSweepUnknownf("weekly")
	require.Equal(t, http.StatusNotFound, unknown.HTTPStatus)
	require.Equal(t, "weekly", unknown.Params["kind"])

	running := ErrSweepAlreadyRunningf("goal_achievement")
	require.Equal(t, http.StatusConflict, running.HTTPStatus)
	require.Equal(t, CodeSweepAlreadyRunning, running.Code)
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantStatus int
	}{
		{"NotFound", NotFound("NF", "not found"), http.StatusNotFound},
		{"BadRequest", BadRequest("BR", "bad request"), http.StatusBadRequest},
		{"Conflict", Conflict("CF", "conflict"), http.StatusConflict},
		{"Internal", Internal("IE", "internal"), http.StatusInternalServerError},
		{"ServiceUnavailable", ServiceUnavailable("SU", "unavailable"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
		})
	}
}
