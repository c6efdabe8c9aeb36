package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"creditscan/internal/domain"
)

// BOM is the UTF-8 byte order mark written ahead of CSV output so Excel on Windows
// detects the encoding.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var accountColumns = []string{
	"Creditor",
	"Account Number",
	"Account Type",
	"Status",
	"Original Creditor",
	"Balance",
	"Credit Limit",
	"High Credit",
	"Monthly Payment",
	"Past Due",
	"Utilization %",
	"Date Opened",
	"Date Closed",
	"Last Activity",
	"Negative",
	"Bureaus",
	"Late Payments",
}

// AccountWriter writes tradelines as CSV rows.
type AccountWriter struct {
	csv *csv.Writer
}

// NewAccountWriter creates an AccountWriter that writes CSV to w.
func NewAccountWriter(w io.Writer) *AccountWriter {
	return &AccountWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *AccountWriter) WriteHeader() error {
	return w.csv.Write(accountColumns)
}

// WriteAccounts converts accounts to CSV rows and writes them.
func (w *AccountWriter) WriteAccounts(accounts []domain.CreditAccount) error {
	for i := range accounts {
		if err := w.csv.Write(accountRow(&accounts[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *AccountWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *AccountWriter) Error() error {
	return w.csv.Error()
}

// WriteAccountsCSV writes a BOM, the header and every account to w.
func WriteAccountsCSV(w io.Writer, accounts []domain.CreditAccount) error {
	if _, err := w.Write(BOM); err != nil {
		return fmt.Errorf("writing bom: %w", err)
	}
	aw := NewAccountWriter(w)
	if err := aw.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := aw.WriteAccounts(accounts); err != nil {
		return fmt.Errorf("writing accounts: %w", err)
	}
	aw.Flush()
	return aw.Error()
}

func accountRow(a *domain.CreditAccount) []string {
	bureaus := make([]string, len(a.Bureaus))
	for i, b := range a.Bureaus {
		bureaus[i] = string(b)
	}
	return []string{
		a.CreditorName,
		a.AccountNumber,
		a.AccountType,
		a.AccountStatus,
		a.OriginalCreditor,
		formatMoney(a.CurrentBalance),
		formatMoney(a.CreditLimit),
		formatMoney(a.HighCredit),
		formatMoney(a.MonthlyPayment),
		formatMoney(a.PastDueAmount),
		formatInt(a.UtilizationPercentage),
		a.DateOpened,
		a.DateClosed,
		a.LastActivity,
		formatBool(a.IsNegative),
		strings.Join(bureaus, ";"),
		latePayments(a.PaymentHistory),
	}
}

// latePayments lists the non-ok months of a payment history in month order, e.g. "2023-02=30".
func latePayments(history map[string]domain.PaymentStatus) string {
	months := make([]string, 0, len(history))
	for m, status := range history {
		if status != domain.PaymentOK && status != domain.PaymentUnknown {
			months = append(months, m)
		}
	}
	sort.Strings(months)
	parts := make([]string, len(months))
	for i, m := range months {
		parts[i] = m + "=" + string(history[m])
	}
	return strings.Join(parts, ";")
}

func formatMoney(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return v.StringFixed(2)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "report"
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name string, format domain.ExportFormat) string {
	base := strings.TrimSuffix(name, "."+lastExt(name))
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(base), time.Now().Format("2006-01-02"), format)
}

func lastExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return ""
}
