// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic error codes from the database driver and
// converts them into typed errs.Error values (e.g., converting
// a "unique violation" into a CONSTRAINT_VIOLATION error)
package sqlerr

import (
	"fmt"

	"github.com/jackc/pgerrcode"
)

// Code is the normalized category of a Postgres error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	IntegrityViolation  Code = "integrity_constraint_violation"
	InvalidText         Code = "invalid_text_representation"
	UndefinedColumn     Code = "undefined_column"
	ConnectionException Code = "connection_exception"
)

// Severity mirrors the severity field Postgres attaches to every error.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is the structured view of a *pgconn.PgError.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (SQLSTATE %s)", e.Severity, e.Message, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE onto a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case pgerrcode.NotNullViolation:
		return NotNullViolation
	case pgerrcode.ForeignKeyViolation:
		return ForeignKeyViolation
	case pgerrcode.UniqueViolation:
		return UniqueViolation
	case pgerrcode.CheckViolation:
		return CheckViolation
	case pgerrcode.InvalidTextRepresentation:
		return InvalidText
	case pgerrcode.UndefinedColumn:
		return UndefinedColumn
	}

	// Remaining class 23 codes (23000, 23001, 23P01).
	if pgerrcode.IsIntegrityConstraintViolation(sqlState) {
		return IntegrityViolation
	}

	// Class 08 plus the 57P0x shutdown codes all mean the connection is gone.
	if pgerrcode.IsConnectionException(sqlState) ||
		sqlState == pgerrcode.AdminShutdown ||
		sqlState == pgerrcode.CrashShutdown ||
		sqlState == pgerrcode.CannotConnectNow {
		return ConnectionException
	}

	return Other
}

// MapSeverity maps the severity string reported by Postgres.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}
