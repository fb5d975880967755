// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// string-matching driver errors themselves.  Row absence is reported as
// sql.ErrNoRows, as returned by QueryRow.
package repository

import "errors"

// ErrEmailExists is returned when an insert would violate the unique
// email constraint on users.  Handlers translate this into 409 EMAIL_EXISTS.
var ErrEmailExists = errors.New("email already exists")

// ErrStudentIDExists is returned when an insert would violate the unique
// student_id constraint on users.
var ErrStudentIDExists = errors.New("student id already exists")

// ErrUtilityKeyExists is returned when a utility insert collides with an
// existing key.  Utility keys are immutable, so updates can never hit this.
var ErrUtilityKeyExists = errors.New("utility key already exists")
