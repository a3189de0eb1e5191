package extract

import (
	"regexp"

	"github.com/hfprocessos/fatura-engine/internal/models"
)

// Equatorial invoices print the barcode as an image, so the linha digitável
// is usually absent from the text layer and the amount comes from textual
// patterns. Consumption is not auto-extracted: the layout varies too much
// across Equatorial regionals to trust a pattern.
type Equatorial struct{}

var (
	equatorialAmountTotal = regexp.MustCompile(`(?i)Total\s+a\s+Pagar[\s\S]{0,30}?R\$\s*([\d.,]+)`)
	equatorialAmountBill  = regexp.MustCompile(`(?i)Valor\s+cobrado\s*\(R\$\)[:\s].*?([\d.,]+)\s*\n`)
	equatorialAmountDoc   = regexp.MustCompile(`(?i)VALOR\s+DOCUMENTO[\s\S]{0,30}?([\d.,]+)`)

	// "Vencimento 26/01/2026" and the OCR variant "VENCIMENTO 26.01.2026".
	equatorialDue      = regexp.MustCompile(`(?i)Vencimento[\s:]+(\d{2}[/.]?\d{2}[/.]?\d{4})`)
	equatorialDueLabel = regexp.MustCompile(`(?i)DATA\s+DE\s+VENCIMENTO[:\s]+(\d{2}/\d{2}/\d{4})`)
)

func (Equatorial) Provider() models.Provider { return models.ProviderEquatorial }

func (Equatorial) Extract(text string) *models.ExtractionResult {
	result := &models.ExtractionResult{Provider: models.ProviderEquatorial}

	adoptPaymentLine(text, result)

	if result.Amount == nil {
		result.Amount = firstValue(text, []*regexp.Regexp{
			equatorialAmountTotal,
			equatorialAmountBill,
			equatorialAmountDoc,
		})
	}

	if result.DueDate == "" {
		result.DueDate = firstDate(text, []*regexp.Regexp{
			equatorialDue,
			equatorialDueLabel,
		})
	}

	result.IssueDate = issueDate(text)
	result.InvoiceNumber = invoiceNumber(text)
	result.BillingPeriod = referencePeriod(text)

	// Without consumption extraction, the nota fiscal stands in as the
	// second signal that this really was an invoice.
	if result.Amount == nil && result.InvoiceNumber == "" {
		return nil
	}
	return result
}
