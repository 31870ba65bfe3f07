package currency

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidator_ValidateCodes_Errors(t *testing.T) {
	validator := NewValidator([]string{"USD", "EUR"})

	require.Equal(t, ErrFromRequired, validator.ValidateCodes("", "EUR"))
	require.Equal(t, ErrToRequired, validator.ValidateCodes("USD", ""))
	require.Equal(t, ErrFromUnsupported, validator.ValidateCodes("ABC", "EUR"))
	require.Equal(t, ErrToUnsupported, validator.ValidateCodes("USD", "ZZZ"))
}

func TestValidator_ValidateCodes_AllowsSameCode(t *testing.T) {
	validator := NewValidator([]string{"USD", "EUR"})
	require.NoError(t, validator.ValidateCodes("USD", "USD"))
}

func TestValidator_ValidatePair(t *testing.T) {
	validator := NewValidator([]string{"USD", "EUR"})
	require.NoError(t, validator.ValidatePair("USD", "EUR"))
	require.Equal(t, ErrSameCodes, validator.ValidatePair("USD", "USD"))
	require.Equal(t, ErrToUnsupported, validator.ValidatePair("USD", "PLN"))
}

func TestNewValidator_ClonesInput(t *testing.T) {
	codes := []string{"USD", "EUR"}
	validator := NewValidator(codes)

	codes[0] = "XXX"

	require.NoError(t, validator.ValidateCodes("USD", "EUR"))
}

func TestValidator_SupportedCodes(t *testing.T) {
	validator := NewValidator([]string{"USD", "EUR", "JPY", "USD"})

	got := validator.SupportedCodes()
	require.Equal(t, []string{"USD", "EUR", "JPY"}, got)

	// caller modifications must not leak into the validator
	got[0] = "XXX"
	require.Equal(t, []string{"USD", "EUR", "JPY"}, validator.SupportedCodes())
}

func TestNewCatalogValidator(t *testing.T) {
	validator := NewCatalogValidator()
	require.Equal(t, Codes(), validator.SupportedCodes())
	require.NoError(t, validator.ValidatePair("INR", "MXN"))
}
