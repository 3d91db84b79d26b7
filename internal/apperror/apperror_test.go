package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:      http.StatusBadRequest,
		KindAuth:            http.StatusUnauthorized,
		KindForbidden:       http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindConflict:        http.StatusConflict,
		KindTooManyRequests: http.StatusTooManyRequests,
		KindInternal:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.HTTPStatus(), kind.String())
	}
}

func TestAsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("saving recipe: %w", Conflict("Recipe already saved"))
	ae, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, KindConflict, ae.Kind)

	_, ok = As(errors.New("boom"))
	assert.False(t, ok)

	assert.Equal(t, http.StatusTooManyRequests, TooManyRequests("slow down").Kind.HTTPStatus())
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error", err.Message)
}
