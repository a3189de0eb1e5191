package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const energisaValidLine = "34191790010104351004791020150008384410000017200"

const energisaText = `ENERGISA MATO GROSSO - DISTRIBUIDORA DE ENERGIA S.A.
NOT A FISCAL Nº: 123.456   DAT A DE EMISSÃO: 26/03/2025
Março / 2025 26/04/2025 R$ 2.042,64
Energia ativa em kWh 1 2.880
34191.79001 01043.510047 91020.150008 3 84410000017200
`

func TestEnergisaFullInvoice(t *testing.T) {
	result := Energisa{}.Extract(energisaText)
	require.NotNil(t, result)

	assert.Equal(t, "ENERGISA", string(result.Provider))

	// Barcode is authoritative for amount, due date and bank.
	require.NotNil(t, result.Amount)
	assert.Equal(t, "172", result.Amount.String())
	assert.Equal(t, "2020-11-16", result.DueDate)
	assert.Equal(t, "341", result.BankCode)
	assert.Equal(t, energisaValidLine, result.LinhaDigitavel)

	require.NotNil(t, result.ConsumptionKwh)
	assert.Equal(t, "2880", result.ConsumptionKwh.String())

	assert.Equal(t, "2025-03-26", result.IssueDate)
	assert.Equal(t, "123456", result.InvoiceNumber)
	assert.Equal(t, "2025-03", result.BillingPeriod)
}

func TestEnergisaTextualFallbackWhenNoBarcode(t *testing.T) {
	text := `ENERGISA
TOTAL: 2.042,64
Março / 2025 26/04/2025 R$ 2.042,64
`
	result := Energisa{}.Extract(text)
	require.NotNil(t, result)

	require.NotNil(t, result.Amount)
	assert.Equal(t, "2042.64", result.Amount.String())
	assert.Equal(t, "2025-04-26", result.DueDate)
	assert.Empty(t, result.LinhaDigitavel)
	assert.Empty(t, result.BankCode)
}

func TestEnergisaPontaTableConsumption(t *testing.T) {
	// Readings-table layout: the billed consumption is the last column of
	// the Ponta row, after the meter readings and the constant.
	text := `ENERGISA
Grandeza Medidor Anterior Atual Constante Consumo
Ponta 1.234 5.678 9.012 1,00 2.880,00
TOTAL: 931,22
`
	result := Energisa{}.Extract(text)
	require.NotNil(t, result)

	require.NotNil(t, result.ConsumptionKwh)
	assert.Equal(t, "2880", result.ConsumptionKwh.String())
}

func TestEnergisaConsumptionOCRFallback(t *testing.T) {
	text := "ENERGISA\nConsumo em kWh KH 5.527,00\nTOTAL: 931,22\n"
	result := Energisa{}.Extract(text)
	require.NotNil(t, result)

	require.NotNil(t, result.ConsumptionKwh)
	assert.Equal(t, "5527", result.ConsumptionKwh.String())
}

func TestEnergisaConsumoFaturadoFallback(t *testing.T) {
	text := "ENERGISA\nCONSUMO FATURADO no período 1.234,00 kWh\nTOTAL: 931,22\n"
	result := Energisa{}.Extract(text)
	require.NotNil(t, result)

	require.NotNil(t, result.ConsumptionKwh)
	assert.Equal(t, "1234", result.ConsumptionKwh.String())
}

func TestEnergisaNothingRecoverableReturnsNil(t *testing.T) {
	assert.Nil(t, Energisa{}.Extract("ENERGISA boleto ilegível"))
}

func TestEnergisaIsIdempotent(t *testing.T) {
	first := Energisa{}.Extract(energisaText)
	second := Energisa{}.Extract(energisaText)
	assert.Equal(t, first, second)
}
