package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lorrc/support-analytics/internal/core/errors"
)

type notifyBody struct {
	Token string `json:"token"`
	Title string `json:"title"`
}

func TestDecodeLenient(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"token":"abc"}`))
		got, err := DecodeLenient[notifyBody](r)
		require.NoError(t, err)
		assert.Equal(t, notifyBody{Token: "abc"}, got)
	})

	t.Run("empty body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		got, err := DecodeLenient[notifyBody](r)
		require.NoError(t, err)
		assert.Equal(t, notifyBody{}, got)
	})

	t.Run("malformed body yields zero value", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"token":"abc",`))
		got, err := DecodeLenient[notifyBody](r)
		require.Error(t, err)
		assert.Equal(t, notifyBody{}, got)

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	})

	t.Run("oversized body is cut off", func(t *testing.T) {
		body := `{"token":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		got, err := DecodeLenient[notifyBody](r)
		assert.Error(t, err)
		assert.Equal(t, notifyBody{}, got)
	})
}
