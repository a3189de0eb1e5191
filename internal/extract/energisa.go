package extract

import (
	"regexp"

	"github.com/hfprocessos/fatura-engine/internal/logger"
	"github.com/hfprocessos/fatura-engine/internal/models"
)

// Energisa invoices carry the linha digitável in the PDF text layer, so
// amount and due date normally come from the barcode. Consumption shows up
// as "Energia ativa em kWh", in the readings table, or (on OCR output) as
// "Consumo em kWh" / "CONSUMO FATURADO".
type Energisa struct{}

var (
	energisaKwhActive = regexp.MustCompile(`(?i)Energia\s+ativa\s+em\s+kWh\s+\d+\s+([\d.,]+)`)
	// Last two numeric columns of the "Ponta" readings row; the billed
	// consumption is the second one.
	energisaKwhPonta    = regexp.MustCompile(`(?m)Ponta\s+[\d.,]+\s+[\d.,]+[\s\S]{0,200}?([\d.,]+)\s+([\d.,]+)\s*$`)
	energisaKwhOCR      = regexp.MustCompile(`(?i)Consumo\s+em\s+kWh[\s\S]{0,20}?([\d.,]+)`)
	energisaKwhFaturado = regexp.MustCompile(`(?i)CONSUMO\s+FATURADO[\s\S]{0,100}?([\d.,]+)\s*kWh`)

	energisaAmountTotal = regexp.MustCompile(`(?i)TOTAL:\s*([\d.,]+)`)
	energisaAmountReais = regexp.MustCompile(`(?i)R\$\s*([\d.,]+)`)

	// "Março / 2025 26/04/2025 R$ 2.042,64" — the due date sits right before
	// the amount.
	energisaDueBeforeAmount = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s+R\$`)
)

func (Energisa) Provider() models.Provider { return models.ProviderEnergisa }

func (Energisa) Extract(text string) *models.ExtractionResult {
	log := logger.WithComponent("energisa")
	result := &models.ExtractionResult{Provider: models.ProviderEnergisa}

	// Consumption cascade, first match wins.
	result.ConsumptionKwh = firstValue(text, []*regexp.Regexp{energisaKwhActive})
	if result.ConsumptionKwh == nil {
		if m := energisaKwhPonta.FindStringSubmatch(text); m != nil {
			result.ConsumptionKwh = ParseBRValue(m[2])
		}
	}
	if result.ConsumptionKwh == nil {
		result.ConsumptionKwh = firstValue(text, []*regexp.Regexp{
			energisaKwhOCR,
			energisaKwhFaturado,
		})
	}
	if result.ConsumptionKwh != nil {
		log.Debug().Str("kwh", result.ConsumptionKwh.String()).Msg("consumption recovered")
	}

	// Barcode beats every textual pattern.
	adoptPaymentLine(text, result)

	if result.Amount == nil {
		result.Amount = firstValue(text, []*regexp.Regexp{
			energisaAmountTotal,
			energisaAmountReais,
		})
	}

	if result.DueDate == "" {
		if m := energisaDueBeforeAmount.FindStringSubmatch(text); m != nil {
			result.DueDate = ParseBRDate(m[1])
		}
	}

	result.IssueDate = issueDate(text)
	result.InvoiceNumber = invoiceNumber(text)
	result.BillingPeriod = referencePeriod(text)

	if result.Amount == nil && result.ConsumptionKwh == nil {
		return nil
	}
	return result
}
