// Package errs defines the sentinel errors returned across utilsforecast.
//
// Errors are wrapped with context at the point of detection using
// fmt.Errorf("%w: ...") so callers can match them with errors.Is while still
// getting the offending index, column or value in the message.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumns is returned when a tabular source lacks required columns.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrTimeParse is returned when the time column cannot be coerced to a temporal value.
	ErrTimeParse = errors.New("failed to parse time column")

	// ErrIndexOutOfRange is returned when a group index or row offset is outside valid bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidRange is returned when a requested sub-range starts after it ends.
	ErrInvalidRange = errors.New("invalid range")

	// ErrDimensionMismatch is returned when a row has the wrong number of columns.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrUnsupportedSource is returned when a tabular source is not one of the supported backends.
	ErrUnsupportedSource = errors.New("unsupported source type")

	// ErrInvalidBoundaries is returned when a boundary index violates the ragged layout invariants.
	ErrInvalidBoundaries = errors.New("invalid group boundaries")

	// ErrDuplicateKey is returned when a group key appears in more than one group.
	ErrDuplicateKey = errors.New("duplicate group key")

	// ErrColumnLength is returned when columns of one frame have different lengths.
	ErrColumnLength = errors.New("column length mismatch")

	// ErrDuplicateColumn is returned when a frame would hold two columns with the same name.
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrColumnType is returned when a column has a kind the operation cannot use.
	ErrColumnType = errors.New("unexpected column type")

	// ErrInvalidSnapshot is returned when snapshot bytes are truncated or malformed.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrMalformedPayload is returned when an encoded payload is truncated or holds an invalid varint.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrChecksumMismatch is returned when a snapshot checksum does not match its content.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")

	// ErrInvalidOption is returned when a configuration option carries an unusable value.
	ErrInvalidOption = errors.New("invalid option")
)

// MissingColumnsError lists the required columns absent from a source.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: [%s]", ErrMissingColumns, strings.Join(e.Columns, ", "))
}

// Is reports whether target is ErrMissingColumns.
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// TimeParseError carries the underlying parse failure of a time column value.
type TimeParseError struct {
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("%s: column %q row %d value %q: %v", ErrTimeParse, e.Column, e.Row, e.Value, e.Err)
}

// Is reports whether target is ErrTimeParse.
func (e *TimeParseError) Is(target error) bool {
	return target == ErrTimeParse
}

// Unwrap returns the underlying parse error.
func (e *TimeParseError) Unwrap() error {
	return e.Err
}
