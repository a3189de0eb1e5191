package extract

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/hfprocessos/fatura-engine/internal/models"
)

// Generic is the fallback for providers the detector does not know. It tries
// every consumption phrase the known providers use plus a largest-number
// heuristic, and every known amount phrasing in sequence.
type Generic struct{}

var (
	genericKwhActive = regexp.MustCompile(`(?i)Energia\s+ativa\s+em\s+kWh\s+\d+\s+([\d.,]+)`)
	// Peak (FP) and off-peak (NP) consumption are billed as separate rows
	// and must be summed.
	genericKwhFP       = regexp.MustCompile(`(?i)Consumo\s+Ativo\s+FP[\s\S]{0,80}?([\d.,]+)\s*kWh`)
	genericKwhNP       = regexp.MustCompile(`(?i)Consumo\s+Ativo\s+(?:NP|P\b)[\s\S]{0,80}?([\d.,]+)\s*kWh`)
	genericKwhFaturado = regexp.MustCompile(`(?i)CONSUMO\s+FATURADO[\s\S]{0,100}?([\d.,]+)\s*kWh`)
	genericKwhAny      = regexp.MustCompile(`(?i)([\d.,]+)\s*kWh`)

	genericAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Total\s+a\s+Pagar[\s\S]{0,30}?R\$\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)Valor\s+cobrado\s*\(R\$\)[:\s].*?([\d.,]+)\s*\n`),
		regexp.MustCompile(`(?i)VALOR\s+TOTAL[\s:]*R\$\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)Valor\s+a\s+pagar[\s:]*R\$\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)TOTAL[\s:]+R\$\s*([\d.,]+)`),
	}

	genericDuePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Vencimento[\s:]+(\d{2}/\d{2}/\d{4})`),
		regexp.MustCompile(`(?i)DATA\s+DE\s+VENCIMENTO[:\s]+(\d{2}/\d{2}/\d{4})`),
		regexp.MustCompile(`(?i)Venc\.?[:\s]+(\d{2}/\d{2}/\d{4})`),
	}
)

func (Generic) Provider() models.Provider { return models.ProviderUnknown }

func (Generic) Extract(text string) *models.ExtractionResult {
	result := &models.ExtractionResult{Provider: models.ProviderUnknown}

	result.ConsumptionKwh = firstValue(text, []*regexp.Regexp{genericKwhActive})
	if result.ConsumptionKwh == nil {
		result.ConsumptionKwh = sumPeakOffPeak(text)
	}
	if result.ConsumptionKwh == nil {
		result.ConsumptionKwh = firstValue(text, []*regexp.Regexp{genericKwhFaturado})
	}
	if result.ConsumptionKwh == nil {
		result.ConsumptionKwh = largestKwh(text)
	}

	adoptPaymentLine(text, result)

	if result.Amount == nil {
		result.Amount = firstValue(text, genericAmountPatterns)
	}
	if result.DueDate == "" {
		result.DueDate = firstDate(text, genericDuePatterns)
	}

	result.IssueDate = issueDate(text)
	result.InvoiceNumber = invoiceNumber(text)
	result.BillingPeriod = referencePeriod(text)

	if result.Amount == nil && result.ConsumptionKwh == nil {
		return nil
	}
	return result
}

// sumPeakOffPeak adds the FP and NP consumption rows when the FP row exists.
func sumPeakOffPeak(text string) *decimal.Decimal {
	m := genericKwhFP.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	total := decimal.Zero
	if fp := ParseBRValue(m[1]); fp != nil {
		total = total.Add(*fp)
	}
	if m := genericKwhNP.FindStringSubmatch(text); m != nil {
		if np := ParseBRValue(m[1]); np != nil {
			total = total.Add(*np)
		}
	}

	if !total.IsPositive() {
		return nil
	}
	return &total
}

// largestKwh takes the biggest accepted number immediately followed by
// "kWh" anywhere in the text.
func largestKwh(text string) *decimal.Decimal {
	var largest *decimal.Decimal
	for _, m := range genericKwhAny.FindAllStringSubmatch(text, -1) {
		v := ParseBRValue(m[1])
		if v == nil {
			continue
		}
		if largest == nil || v.GreaterThan(*largest) {
			largest = v
		}
	}
	return largest
}
