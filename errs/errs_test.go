package errs

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMissingColumnsError(t *testing.T) {
	err := error(&MissingColumnsError{Columns: []string{"ds", "y"}})

	require.ErrorIs(t, err, ErrMissingColumns)
	require.Equal(t, "missing required columns: [ds, y]", err.Error())

	var mc *MissingColumnsError
	wrapped := fmt.Errorf("validate: %w", err)
	require.ErrorAs(t, wrapped, &mc)
	require.Equal(t, []string{"ds", "y"}, mc.Columns)
}

func TestTimeParseError(t *testing.T) {
	_, cause := time.Parse(time.DateOnly, "not-a-date")
	require.Error(t, cause)

	err := error(&TimeParseError{Column: "ds", Row: 3, Value: "not-a-date", Err: cause})

	require.ErrorIs(t, err, ErrTimeParse)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), `column "ds" row 3`)
	require.False(t, errors.Is(err, ErrMissingColumns))
}
