package boleto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference line: bank 341, factor 8441, amount R$ 172,00.
const validLine = "34191790010104351004791020150008384410000017200"

func TestValidateLineAccepted(t *testing.T) {
	res := ValidateLine(validLine)

	require.True(t, res.Valid, "reason: %s", res.Reason)
	assert.Equal(t, "341", res.BankCode)
	assert.Equal(t, "172", res.Amount.String())
	assert.Equal(t, "2020-11-16", res.DueDate)
	assert.Equal(t, validLine, res.LinhaDigitavel)
	assert.Len(t, res.LinhaDigitavel, LineLength)
}

func TestValidateLineWrongLength(t *testing.T) {
	res := ValidateLine("12345")
	assert.False(t, res.Valid)
	assert.Contains(t, res.Reason, "5 dígitos")
}

func TestValidateLineNonDigit(t *testing.T) {
	corrupted := validLine[:46] + "x"
	res := ValidateLine(corrupted)
	assert.False(t, res.Valid)
}

func TestValidateLineSingleDigitCorruptionNamesField(t *testing.T) {
	tests := []struct {
		name  string
		pos   int
		field string
	}{
		{"field 1", 2, "Campo 1"},
		{"field 2", 12, "Campo 2"},
		{"field 3", 25, "Campo 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := []byte(validLine)
			b[tt.pos] = flipDigit(b[tt.pos])
			res := ValidateLine(string(b))

			require.False(t, res.Valid)
			assert.Contains(t, res.Reason, tt.field)
		})
	}
}

func TestValidateLineReportsEveryMismatch(t *testing.T) {
	b := []byte(validLine)
	b[2] = flipDigit(b[2])  // breaks field 1
	b[12] = flipDigit(b[12]) // breaks field 2
	res := ValidateLine(string(b))

	require.False(t, res.Valid)
	assert.Contains(t, res.Reason, "Campo 1")
	assert.Contains(t, res.Reason, "Campo 2")
}

func TestDueDateFactorZeroMeansNoDueDate(t *testing.T) {
	// Same free field as the reference line, factor 0000, amount R$ 50,00.
	line := "34191790010104351004791020150008100000000005000"
	res := ValidateLine(line)

	require.True(t, res.Valid, "reason: %s", res.Reason)
	assert.Empty(t, res.DueDate)
	assert.Equal(t, "50", res.Amount.String())
}

func TestDueDateFactorRollover(t *testing.T) {
	// Factor 1001 decodes to 2000-07-04 under the 1997 epoch, which is before
	// the rollover floor, so it must be recomputed from 2025-02-22.
	line := "00191234546789012345767890123457210010000123456"
	res := ValidateLine(line)

	require.True(t, res.Valid, "reason: %s", res.Reason)
	assert.Equal(t, "001", res.BankCode)
	assert.Equal(t, "2025-02-23", res.DueDate)
	assert.Equal(t, "1234.56", res.Amount.String())
}

func TestValidateLineAmountNeverNegative(t *testing.T) {
	res := ValidateLine(validLine)
	require.True(t, res.Valid)
	assert.False(t, res.Amount.IsNegative())
}

func flipDigit(b byte) byte {
	if b == '9' {
		return '0'
	}
	return b + 1
}
