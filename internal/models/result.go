// Package models holds the shared result and configuration types of the
// fatura extraction engine.
package models

import "github.com/shopspring/decimal"

// Provider identifies the utility company that issued the invoice.
type Provider string

const (
	ProviderEnergisa   Provider = "ENERGISA"
	ProviderEquatorial Provider = "EQUATORIAL"
	ProviderUnknown    Provider = "DESCONHECIDA"
)

// ExtractionResult is the best-effort record recovered from a single invoice.
// Every field is independently optional; pointer and empty-string fields mean
// "not recovered". JSON tags follow the API contract consumed by the rest of
// the system.
type ExtractionResult struct {
	Provider       Provider         `json:"concessionaria"`
	Amount         *decimal.Decimal `json:"valor,omitempty"`
	DueDate        string           `json:"vencimento,omitempty"`     // YYYY-MM-DD
	LinhaDigitavel string           `json:"linhaDigitavel,omitempty"` // 47 digits
	BankCode       string           `json:"banco,omitempty"`
	ConsumptionKwh *decimal.Decimal `json:"consumoKwh,omitempty"`
	IssueDate      string           `json:"dataEmissao,omitempty"` // YYYY-MM-DD
	InvoiceNumber  string           `json:"notaFiscal,omitempty"`
	BillingPeriod  string           `json:"referencia,omitempty"` // YYYY-MM
}

// Empty reports whether nothing at all was recovered.
func (r *ExtractionResult) Empty() bool {
	return r.Amount == nil && r.DueDate == "" && r.LinhaDigitavel == "" &&
		r.BankCode == "" && r.ConsumptionKwh == nil && r.IssueDate == "" &&
		r.InvoiceNumber == "" && r.BillingPeriod == ""
}

// Response is what the engine hands to its caller after processing a PDF.
// The embedded result keeps the JSON flat, matching the original contract.
type Response struct {
	Found bool `json:"encontrado"`
	Valid bool `json:"valido,omitempty"`

	ExtractionResult

	UsedOCR bool   `json:"ocr"`
	Message string `json:"message,omitempty"`
}
