package stockcheck

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePostalCode(t *testing.T) {
	for _, valid := range []string{"90210", "00501", "12345"} {
		require.NoError(t, ValidatePostalCode(valid), valid)
	}
	for _, invalid := range []string{"", "1234", "123456", "1234a", "12 45", "١٢٣٤٥", "90210\n", "-1234"} {
		require.ErrorIs(t, ValidatePostalCode(invalid), ErrInvalidPostalCode, invalid)
	}
}

func TestValidateRadius(t *testing.T) {
	for _, valid := range Radii {
		require.NoError(t, ValidateRadius(valid))
	}
	for _, invalid := range []int{0, -15, 14, 16, 25, 500} {
		require.ErrorIs(t, ValidateRadius(invalid), ErrInvalidRadius, invalid)
	}
	require.NoError(t, ValidateRadius(DefaultRadius))
}
