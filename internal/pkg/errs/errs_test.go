package errs_test

import (
	"errors"
	"testing"

	"kitchen/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("kitchenOrderId", "123")

		assert.Equal(t, "kitchenOrderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("kitchenOrderId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: kitchenOrderId, ID is: 123 (cause: database connection failed)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("priority")

		assert.Equal(t, "priority", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: priority", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("unknown priority tier")
		err := errs.NewValueIsInvalidErrorWithCause("priority", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: priority (cause: unknown priority tier)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("formats bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("confidence", 150, 0, 100)

		assert.Equal(t, "confidence", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, "value is invalid: 150 is confidence, min value is 0, max value is 100", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitizes newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("note", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("tenantId")

	assert.Equal(t, "tenantId", err.ParamName)
	assert.Equal(t, "value is required: tenantId", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	cause := errors.New("missing required field")
	withCause := errs.NewValueIsRequiredErrorWithCause("tenantId", cause)
	assert.Equal(t, "value is required: tenantId (cause: missing required field)", withCause.Error())
}

func TestVersionIsInvalidError(t *testing.T) {
	cause := errors.New("negative version")
	err := errs.NewVersionIsInvalidError("contractVersion", cause)

	assert.Equal(t, "contractVersion", err.ParamName)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, "version is invalid: contractVersion (cause: negative version)", err.Error())
	assert.Equal(t, errs.ErrVersionIsInvalid, err.Unwrap())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("stationId", "s-1"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("status"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("capacity", -1, 0, 10), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("recipeId"), errs.ErrValueIsRequired)
	require.ErrorIs(t, errs.NewVersionIsInvalidError("version", errors.New("x")), errs.ErrVersionIsInvalid)
}
