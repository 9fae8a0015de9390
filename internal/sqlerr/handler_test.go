package sqlerr

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/deppfellow/printgallery/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asOpError(t *testing.T, err error) *errs.Error {
	t.Helper()
	var opErr *errs.Error
	require.True(t, errors.As(err, &opErr), "expected *errs.Error, got %T", err)
	return opErr
}

func TestHandleError_Nil(t *testing.T) {
	assert.NoError(t, HandleError(nil, "category"))
}

func TestHandleError_NoRows(t *testing.T) {
	err := asOpError(t, HandleError(fmt.Errorf("scan: %w", pgx.ErrNoRows), "image"))

	assert.Equal(t, errs.KindNotFound, err.Kind)
	assert.Equal(t, "IMAGE_NOT_FOUND", err.Code)
	assert.Equal(t, "image not found", err.Message)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestHandleError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "categories_slug_key"`,
		TableName:      "categories",
		ConstraintName: "categories_slug_key",
	}

	err := asOpError(t, HandleError(pgErr, "category"))

	assert.Equal(t, errs.KindConstraintViolation, err.Kind)
	assert.Equal(t, "CATEGORY_ALREADY_EXISTS", err.Code)
	assert.Equal(t, "A Category with this Slug already exists", err.Message)
	assert.Equal(t, "slug", err.Field)
	assert.Equal(t, UniqueViolation, ErrCode(err))
}

func TestHandleError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23502",
		TableName:  "users",
		ColumnName: "email_address",
	}

	err := asOpError(t, HandleError(pgErr, "user"))

	assert.Equal(t, errs.KindConstraintViolation, err.Kind)
	assert.Equal(t, "USER_REQUIRED", err.Code)
	assert.Equal(t, "The Email Address is required", err.Message)
	assert.Equal(t, "email_address", err.Field)
}

func TestHandleError_InvalidText(t *testing.T) {
	err := asOpError(t, HandleError(&pgconn.PgError{Code: "22P02", TableName: "images"}, "image"))
	assert.Equal(t, errs.KindInvalidArgument, err.Kind)
}

func TestHandleError_OtherIntegrityViolations(t *testing.T) {
	for _, code := range []string{"23000", "23001", "23P01"} {
		assert.Equal(t, IntegrityViolation, MapCode(code), code)

		err := asOpError(t, HandleError(&pgconn.PgError{Code: code, TableName: "images"}, "image"))
		assert.Equal(t, errs.KindConstraintViolation, err.Kind, code)
		assert.Equal(t, "IMAGE_CONFLICT", err.Code, code)
		assert.Contains(t, err.Message, "conflicts with existing data", code)
	}
}

func TestHandleError_ConnectionFailures(t *testing.T) {
	for _, code := range []string{"08006", "57P01", "57P03"} {
		err := asOpError(t, HandleError(&pgconn.PgError{Code: code}, "user"))
		assert.Equal(t, errs.KindConnectionFailure, err.Kind, code)
	}

	dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	err := asOpError(t, HandleError(fmt.Errorf("acquire: %w", dialErr), "user"))
	assert.Equal(t, errs.KindConnectionFailure, err.Kind)
}

func TestHandleError_PassesTypedErrorsThrough(t *testing.T) {
	in := errs.InvalidArgument("valueToChange", "unknown field")
	assert.Same(t, in, HandleError(fmt.Errorf("wrapped: %w", in), "image"))
}

func TestHandleError_UnknownIsInternal(t *testing.T) {
	cause := errors.New("syntax error at or near")
	err := asOpError(t, HandleError(cause, "image"))

	assert.Equal(t, errs.KindInternal, err.Kind)
	assert.NotContains(t, err.Message, "syntax")
	assert.ErrorIs(t, err, cause)
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "username", extractColumnForUniqueViolation("unique_users_username"))
	assert.Equal(t, "email_address", extractColumnForUniqueViolation("users_email_address_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk_users"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}

func TestGetEntityName(t *testing.T) {
	assert.Equal(t, "Topic", getEntityName("categories", "topic_id"))
	assert.Equal(t, "Image", getEntityName("images", "title"))
	assert.Equal(t, "record", getEntityName("", ""))
}
