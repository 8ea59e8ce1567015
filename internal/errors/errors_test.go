package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/heptareview/internal/errors"
)

func TestAppError_Error(t *testing.T) {
	err := errors.NewNotFoundError("card", 12)
	assert.Equal(t, "NOT_FOUND: card not found: 12", err.Error())
	assert.Equal(t, 404, err.Status)

	cause := stderrors.New("disk full")
	internal := errors.NewInternalError(cause)
	assert.Contains(t, internal.Error(), "disk full")
	assert.ErrorIs(t, internal, cause)
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", errors.NewValidationError("familiarityScore", "must be between 1 and 5"))

	appErr, ok := errors.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	assert.Equal(t, 400, appErr.Status)

	_, ok = errors.As(stderrors.New("plain"))
	assert.False(t, ok)
}

type reviewInput struct {
	CardID           int64 `validate:"required"`
	FamiliarityScore int   `validate:"min=1,max=5"`
}

func TestFromValidation(t *testing.T) {
	v := validator.New()

	err := v.Struct(reviewInput{CardID: 0, FamiliarityScore: 9})
	require.Error(t, err)

	appErr := errors.FromValidation(err)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "CardID is required")
	assert.Contains(t, appErr.Message, "FamiliarityScore must be at most 5")
}

func TestFromValidation_NonValidationError(t *testing.T) {
	appErr := errors.FromValidation(stderrors.New("unexpected EOF"))
	assert.Equal(t, errors.ErrCodeBadRequest, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
}
