package nit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litethinking/gestion-api/pkg/nit"
)

// Vector calculado a mano con el algoritmo módulo 11 de la DIAN:
// 900123456 → suma ponderada 586, 586 % 11 = 3, DV = 11 - 3 = 8.
func TestComputeVerificationDigit(t *testing.T) {
	dv, err := nit.ComputeVerificationDigit("900123456")
	require.NoError(t, err)
	assert.Equal(t, byte('8'), dv)
}

func TestComputeVerificationDigit_ConSeparadores(t *testing.T) {
	dv, err := nit.ComputeVerificationDigit("900.123.456")
	require.NoError(t, err)
	assert.Equal(t, byte('8'), dv)
}

func TestComputeVerificationDigit_MuyCorto(t *testing.T) {
	_, err := nit.ComputeVerificationDigit("12345")
	assert.Error(t, err)
}

func TestValidateVerificationDigit(t *testing.T) {
	assert.NoError(t, nit.ValidateVerificationDigit("900123456-8"))
	assert.NoError(t, nit.ValidateVerificationDigit("900.123.456-8"))
	assert.NoError(t, nit.ValidateVerificationDigit("900123456"), "9 dígitos sin DV se acepta")
	assert.Error(t, nit.ValidateVerificationDigit("900123456-7"), "DV incorrecto")
	assert.Error(t, nit.ValidateVerificationDigit("123"))
}
