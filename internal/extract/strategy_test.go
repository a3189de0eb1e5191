package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Fatura Energisa Sul-Sudeste", "ENERGISA"},
		{"EQUATORIAL GOIÁS DISTRIBUIDORA", "EQUATORIAL"},
		{"energisa e equatorial", "ENERGISA"}, // first match wins
		{"Companhia de Luz Qualquer", "DESCONHECIDA"},
		{"", "DESCONHECIDA"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, string(Detect(tt.text)), "text %q", tt.text)
	}
}

func TestForProvider(t *testing.T) {
	assert.IsType(t, Energisa{}, ForProvider(Detect("ENERGISA MT")))
	assert.IsType(t, Equatorial{}, ForProvider(Detect("Equatorial Pará")))
	assert.IsType(t, Generic{}, ForProvider(Detect("outra coisa")))
}

func TestParseBRValue(t *testing.T) {
	tests := []struct {
		in   string
		want string // "" means rejected
	}{
		{"1.976,70", "1976.7"},
		{"2042,64", "2042.64"},
		{"2.880", "2880"},
		{"0,00", ""},
		{"99999999,99", ""}, // above the acceptance window
		{"abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := ParseBRValue(tt.in)
		if tt.want == "" {
			assert.Nil(t, got, "ParseBRValue(%q)", tt.in)
		} else {
			require.NotNil(t, got, "ParseBRValue(%q)", tt.in)
			assert.Equal(t, tt.want, got.String())
		}
	}
}

func TestParseBRDate(t *testing.T) {
	assert.Equal(t, "2026-02-20", ParseBRDate("20/02/2026"))
	assert.Empty(t, ParseBRDate("31/02/2026")) // not a real calendar date
	assert.Empty(t, ParseBRDate("20-02-2026"))
	assert.Empty(t, ParseBRDate(""))
}

func TestReferencePeriodCascade(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"competencia", "Competência: 01/2026", "2026-01"},
		{"conta mes", "Conta Mês 11/2025", "2025-11"},
		{"month name", "Março / 2025", "2025-03"},
		{"month name no cedilla", "MARCO/2025", "2025-03"},
		{"month name lowercase", "dezembro / 2024", "2024-12"},
		{"referencia", "Referência: 07/2025", "2025-07"},
		{"competencia beats month name", "Competência: 02/2026 Janeiro / 2026", "2026-02"},
		{"nothing", "sem período aqui", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, referencePeriod(tt.text))
		})
	}
}

func TestIssueDateToleratesSplitAnchor(t *testing.T) {
	assert.Equal(t, "2025-04-26", issueDate("DAT A DE EMISSÃO: 26/04/2025"))
	assert.Equal(t, "2025-04-26", issueDate("DATA DE EMISSAO 26/04/2025"))
	assert.Empty(t, issueDate("EMITIDO EM 26/04/2025"))
}

func TestInvoiceNumberStripsSeparators(t *testing.T) {
	assert.Equal(t, "123456", invoiceNumber("NOTA FISCAL Nº: 123.456"))
	assert.Equal(t, "987654", invoiceNumber("NOT A FISCAL N 987654"))
	assert.Empty(t, invoiceNumber("sem nota"))
}
