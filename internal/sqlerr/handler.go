package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/deppfellow/printgallery/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the Code of err, or Other when err carries no *Error.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError converts a *pgconn.PgError into a structured *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates <DOMAIN>_<ACTION> codes from DB errors.
//
// Example:
//
//	categories + UniqueViolation => CATEGORY_ALREADY_EXISTS
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := singular(strings.ToUpper(tableName))

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidText:
		action = "INVALID"
	case IntegrityViolation:
		action = "CONFLICT"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces an end-user-facing error message.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced by the column name when it can be inferred.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	case InvalidText:
		return "One or more values have an invalid format"

	case IntegrityViolation:
		return fmt.Sprintf("The %s conflicts with existing data", entityName)

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name from table/column data.
//
// Priority rules:
//  1. A column ending with "_id" names the entity ("topic_id" -> "Topic").
//  2. Otherwise the singularized table name.
//  3. Otherwise "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		return humanizeText(singular(tableName))
	}

	return "record"
}

// singular handles the three table names this service owns plus a plain
// trailing "s"; "categories" needs the "ies" rule.
func singular(word string) string {
	lower := strings.ToLower(word)
	switch {
	case strings.HasSuffix(lower, "ies") && len(word) > 3:
		y := "y"
		if word == strings.ToUpper(word) {
			y = "Y"
		}
		return word[:len(word)-3] + y
	case strings.HasSuffix(lower, "s") && len(word) > 1:
		return word[:len(word)-1]
	default:
		return word
	}
}

// humanizeText converts snake_case into Title Case.
//
// Example:
//
//	"email_address" -> "Email Address"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var uniqueKeyPattern = regexp.MustCompile(`^[a-z0-9]+_(.+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation infers the column from a unique constraint name.
//
// It supports two conventions:
//
//  1. "unique_<table>_<column>"
//     Example: unique_users_username -> "username"
//
//  2. "<table>_<column>_(key|ukey)", the name Postgres generates
//     Example: users_email_address_key -> "email_address"
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.SplitN(constraintName, "_", 3)
		if len(parts) == 3 {
			return parts[2]
		}
	}

	matches := uniqueKeyPattern.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// isConnectionError reports failures to reach or keep talking to Postgres.
func isConnectionError(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// HandleError converts a low-level database error into a typed errs.Error.
//
// entity names the row type the statement targeted ("category", "image",
// "user"); it is used when the driver reports no rows.
//
// Output:
//   - *errs.Error: returned unchanged
//   - pgx.ErrNoRows: NOT_FOUND
//   - *pgconn.PgError class 23: CONSTRAINT_VIOLATION with a friendly message
//   - *pgconn.PgError class 08 / 57P0x, dial errors, timeouts: CONNECTION_FAILURE
//   - *pgconn.PgError 22P02: INVALID_ARGUMENT
//   - anything else: INTERNAL
func HandleError(err error, entity string) error {
	if err == nil {
		return nil
	}

	var opErr *errs.Error
	if errors.As(err, &opErr) {
		return opErr
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NotFound(entity).WithCause(err)
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation, CheckViolation, IntegrityViolation:
			return errs.ConstraintViolation(errorCode, userMessage, strings.ToLower(sqlErr.ColumnName)).WithCause(sqlErr)

		case UniqueViolation:
			columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.ConstraintViolation(errorCode, userMessage, columnName).WithCause(sqlErr)

		case NotNullViolation:
			return errs.ConstraintViolation(errorCode, userMessage, strings.ToLower(sqlErr.ColumnName)).WithCause(sqlErr)

		case InvalidText:
			return errs.InvalidArgument(strings.ToLower(sqlErr.ColumnName), userMessage).WithCause(sqlErr)

		case ConnectionException:
			return errs.ConnectionFailure(sqlErr)

		default:
			return errs.Internal(sqlErr)
		}
	}

	if isConnectionError(err) {
		return errs.ConnectionFailure(err)
	}

	return errs.Internal(err)
}
