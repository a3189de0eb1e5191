// Package extract recovers invoice metadata from the raw text of Brazilian
// utility bills. One strategy per known provider plus a generic fallback;
// every strategy is stateless and runs an ordered cascade of regex patterns,
// with a validated linha digitável as the highest-priority source for amount,
// due date and bank.
package extract

import (
	"regexp"
	"strings"

	"github.com/hfprocessos/fatura-engine/internal/boleto"
	"github.com/hfprocessos/fatura-engine/internal/logger"
	"github.com/hfprocessos/fatura-engine/internal/models"
)

// Strategy extracts invoice fields from raw text. Extract returns nil when
// the text yields nothing the strategy considers a minimum viable result;
// partially-populated results are the normal outcome.
type Strategy interface {
	Provider() models.Provider
	Extract(text string) *models.ExtractionResult
}

// Detect picks the provider by case-insensitive keyword match, first match
// wins. Unknown providers route to the generic strategy.
func Detect(text string) models.Provider {
	upper := strings.ToUpper(text)

	if strings.Contains(upper, "ENERGISA") {
		return models.ProviderEnergisa
	}
	if strings.Contains(upper, "EQUATORIAL") {
		return models.ProviderEquatorial
	}
	return models.ProviderUnknown
}

// ForProvider returns the strategy registered for a provider.
func ForProvider(provider models.Provider) Strategy {
	switch provider {
	case models.ProviderEnergisa:
		return Energisa{}
	case models.ProviderEquatorial:
		return Equatorial{}
	default:
		return Generic{}
	}
}

// adoptPaymentLine tries every linha digitável candidate found in the text
// against the validator and, on the first valid one, copies its decoded
// fields into the result. Amount, due date and bank from a validated barcode
// override any textual pattern.
func adoptPaymentLine(text string, result *models.ExtractionResult) {
	log := logger.WithComponent("extract")

	for _, candidate := range boleto.FindCandidates(text) {
		line := boleto.ValidateLine(candidate)
		if !line.Valid {
			log.Debug().Str("candidate", candidate).Str("reason", line.Reason).
				Msg("linha digitável rejected")
			continue
		}

		result.LinhaDigitavel = line.LinhaDigitavel
		result.BankCode = line.BankCode
		amount := line.Amount
		result.Amount = &amount
		result.DueDate = line.DueDate
		log.Debug().Str("banco", line.BankCode).Str("valor", line.Amount.String()).
			Str("vencimento", line.DueDate).Msg("linha digitável validated")
		return
	}
}

// referencePeriod recovers the billing period ("referência") as YYYY-MM.
// Cascade: numeric "Competência MM/YYYY" form, spelled-out "MonthName / YYYY"
// form, generic "Referência: MM/YYYY" form.
func referencePeriod(text string) string {
	if m := reCompetencia.FindStringSubmatch(text); m != nil {
		return m[2] + "-" + m[1]
	}
	if m := reMonthYear.FindStringSubmatch(text); m != nil {
		if month := monthNumber(m[1]); month != "" {
			return m[2] + "-" + month
		}
	}
	if m := reReferencia.FindStringSubmatch(text); m != nil {
		return m[2] + "-" + m[1]
	}
	return ""
}

var (
	reCompetencia = regexp.MustCompile(`(?i)(?:Compet[êe]ncia|Conta\s+M[êe]s)[:\s]*(\d{2})/(\d{4})`)
	reMonthYear   = regexp.MustCompile(`(?i)(Janeiro|Fevereiro|Mar[çc]o|Abril|Maio|Junho|Julho|Agosto|Setembro|Outubro|Novembro|Dezembro)\s*/\s*(\d{4})`)
	reReferencia  = regexp.MustCompile(`(?i)Refer[êe]ncia[:\s]*(\d{2})/(\d{4})`)

	// Some PDF text layers split words mid-way ("DAT A DE EMISSÃO",
	// "NOT A FISCAL"); the anchors tolerate the inserted space.
	reIssueDate     = regexp.MustCompile(`(?i)DAT\s*A\s+DE\s+EMISS[ÃA]O[:\s]*(\d{2}/\d{2}/\d{4})`)
	reInvoiceNumber = regexp.MustCompile(`(?i)NOT\s*A\s+FISCAL\s+N[º°]?:?\s*([\d.]+)`)
)

// issueDate recovers the emission date via the split-tolerant anchor.
func issueDate(text string) string {
	if m := reIssueDate.FindStringSubmatch(text); m != nil {
		return ParseBRDate(m[1])
	}
	return ""
}

// invoiceNumber recovers the nota fiscal number, thousands separators
// stripped.
func invoiceNumber(text string) string {
	if m := reInvoiceNumber.FindStringSubmatch(text); m != nil {
		return strings.ReplaceAll(m[1], ".", "")
	}
	return ""
}
