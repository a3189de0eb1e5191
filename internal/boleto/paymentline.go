// Package boleto validates and decodes the linha digitável of Brazilian
// bank slips (47 digits, Febraban layout).
package boleto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LineLength is the digit count of a linha digitável.
const LineLength = 47

// FactorEpochs parameterizes the due-date factor decoding. The factor field
// is a 4-digit day counter that overflowed on 2025-02-21 and restarted at
// 1000; a date decoded under the primary epoch that lands before the rollover
// floor is recomputed under the rollover epoch.
type FactorEpochs struct {
	Primary       time.Time
	Rollover      time.Time
	RebaseFactor  int
	RolloverFloor int // decoded years below this trigger the rollover epoch
}

// DefaultEpochs is the Febraban schedule in effect since the 2025 rollover.
var DefaultEpochs = FactorEpochs{
	Primary:       time.Date(1997, time.October, 7, 0, 0, 0, 0, time.UTC),
	Rollover:      time.Date(2025, time.February, 22, 0, 0, 0, 0, time.UTC),
	RebaseFactor:  1000,
	RolloverFloor: 2020,
}

// LineResult is the outcome of validating a 47-digit candidate. On failure
// Reason itemizes every mismatched check digit; on success the decoded
// barcode fields are populated.
type LineResult struct {
	Valid  bool
	Reason string

	BankCode       string          // first 3 digits
	Amount         decimal.Decimal // barcode amount field, in reais
	DueDate        string          // YYYY-MM-DD, empty when factor is zero
	LinhaDigitavel string          // the canonical 47 digits
}

// ValidateLine checks the three field check digits plus the general check
// digit of a linha digitável and, when all pass, decodes bank, amount and due
// date from the reconstructed 44-digit barcode. The input must be exactly 47
// ASCII digits; anything else is rejected up front.
func ValidateLine(digits string) LineResult {
	return ValidateLineWithEpochs(digits, DefaultEpochs)
}

// ValidateLineWithEpochs is ValidateLine with an explicit factor schedule.
func ValidateLineWithEpochs(digits string, epochs FactorEpochs) LineResult {
	if len(digits) != LineLength {
		return LineResult{
			Valid:  false,
			Reason: fmt.Sprintf("tamanho inválido: %d dígitos (esperado %d)", len(digits), LineLength),
		}
	}
	if !allDigits(digits) {
		return LineResult{Valid: false, Reason: "caracteres não numéricos na linha digitável"}
	}

	// Field 1: digits 1-9, check digit at position 10. Fields 2 and 3 follow
	// the fixed Febraban offsets.
	field1 := digits[0:9]
	dv1 := int(digits[9] - '0')
	field2 := digits[10:20]
	dv2 := int(digits[20] - '0')
	field3 := digits[21:31]
	dv3 := int(digits[31] - '0')
	dvGeneral := int(digits[32] - '0')

	// Rebuild the 44-digit barcode from the linha digitável.
	barcode := digits[0:4] + digits[32:33] + digits[33:47] + digits[4:9] + digits[10:20] + digits[21:31]

	// General check digit is computed over the barcode with its own position
	// removed.
	withoutDV := barcode[0:4] + barcode[5:]
	dvGeneralCalc := Modulo11(withoutDV)

	var errs []string
	if calc := Modulo10(field1); dv1 != calc {
		errs = append(errs, fmt.Sprintf("Campo 1: DV esperado %d, encontrado %d", calc, dv1))
	}
	if calc := Modulo10(field2); dv2 != calc {
		errs = append(errs, fmt.Sprintf("Campo 2: DV esperado %d, encontrado %d", calc, dv2))
	}
	if calc := Modulo10(field3); dv3 != calc {
		errs = append(errs, fmt.Sprintf("Campo 3: DV esperado %d, encontrado %d", calc, dv3))
	}
	if dvGeneral != dvGeneralCalc {
		errs = append(errs, fmt.Sprintf("DV Geral: esperado %d, encontrado %d", dvGeneralCalc, dvGeneral))
	}

	if len(errs) > 0 {
		return LineResult{Valid: false, Reason: strings.Join(errs, "; ")}
	}

	factor, _ := strconv.Atoi(digits[33:37])
	cents, _ := strconv.ParseInt(digits[37:47], 10, 64)

	return LineResult{
		Valid:          true,
		BankCode:       digits[0:3],
		Amount:         decimal.New(cents, -2),
		DueDate:        decodeDueDate(factor, epochs),
		LinhaDigitavel: digits,
	}
}

// decodeDueDate resolves the due-date factor against the epoch schedule.
// Factor zero means no due date is encoded.
func decodeDueDate(factor int, epochs FactorEpochs) string {
	if factor <= 0 {
		return ""
	}

	candidate := epochs.Primary.AddDate(0, 0, factor)
	if candidate.Year() < epochs.RolloverFloor {
		// Factor counter rolled over: recompute from the second epoch.
		candidate = epochs.Rollover.AddDate(0, 0, factor-epochs.RebaseFactor)
	}
	return candidate.Format("2006-01-02")
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
