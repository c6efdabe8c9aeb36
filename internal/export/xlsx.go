package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"creditscan/internal/domain"
)

// Sheet names of the workbook, in tab order.
const (
	SheetSummary   = "Summary"
	SheetPersonal  = "Personal"
	SheetAccounts  = "Accounts"
	SheetNegative  = "Negative Items"
	SheetInquiries = "Inquiries"
	SheetScores    = "Scores"
)

// Workbook renders a report and its parse result as an xlsx file with one
// sheet per category.
func Workbook(report *domain.Report, result *domain.ParsingResult) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("export.Workbook: %w", err)
	}
	for _, name := range []string{SheetPersonal, SheetAccounts, SheetNegative, SheetInquiries, SheetScores} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("export.Workbook: creating sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("export.Workbook: %w", err)
	}

	w := &sheetWriter{f: f, header: header}
	w.table(SheetSummary, []string{"Field", "Value"}, summaryRows(report, result))
	w.table(SheetPersonal, []string{"Field", "Value"}, personalRows(result.PersonalInfo))
	w.table(SheetAccounts, accountColumns, accountRows(result.Accounts))
	w.table(SheetNegative, []string{
		"Type", "Creditor", "Original Creditor", "Collection Agency", "Amount",
		"Date Occurred", "Date Reported", "Status", "Severity", "Description",
	}, negativeRows(result.NegativeItems))
	w.table(SheetInquiries, []string{"Inquirer", "Date", "Type", "Purpose", "Bureau"}, inquiryRows(result.Inquiries))
	w.table(SheetScores, []string{"Model", "Score", "Bureau", "Scale Min", "Scale Max", "Factors"}, scoreRows(result.Scores))
	if w.err != nil {
		return nil, fmt.Errorf("export.Workbook: %w", w.err)
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export.Workbook: writing: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter keeps the first error so sheet building reads top to bottom.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) table(sheet string, columns []string, rows [][]interface{}) {
	if w.err != nil {
		return
	}
	head := make([]interface{}, len(columns))
	for i, c := range columns {
		head[i] = c
	}
	if w.err = w.f.SetSheetRow(sheet, "A1", &head); w.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		w.err = err
		return
	}
	if w.err = w.f.SetCellStyle(sheet, "A1", last, w.header); w.err != nil {
		return
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			w.err = err
			return
		}
		if w.err = w.f.SetSheetRow(sheet, cell, &rows[i]); w.err != nil {
			return
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(columns))
	w.err = w.f.SetColWidth(sheet, "A", lastCol, 20)
}

func summaryRows(report *domain.Report, result *domain.ParsingResult) [][]interface{} {
	s := result.Summary
	rows := [][]interface{}{}
	if report != nil {
		rows = append(rows,
			[]interface{}{"File", report.FileName},
			[]interface{}{"Parsed At", formatTime(report.ParsedAt)},
		)
	}
	rows = append(rows,
		[]interface{}{"Bureau", string(result.Bureau)},
		[]interface{}{"Quality Score", result.QualityScore},
		[]interface{}{"Quality Tier", string(result.QualityTier)},
		[]interface{}{"Parsing Confidence", result.ParsingConfidence},
		[]interface{}{"Total Accounts", s.TotalAccounts},
		[]interface{}{"Open Accounts", s.OpenAccounts},
		[]interface{}{"Closed Accounts", s.ClosedAccounts},
		[]interface{}{"Negative Accounts", s.NegativeAccounts},
		[]interface{}{"Total Credit Limit", s.TotalCreditLimit.StringFixed(2)},
		[]interface{}{"Total Balance", s.TotalBalance.StringFixed(2)},
		[]interface{}{"Available Credit", s.AvailableCredit.StringFixed(2)},
		[]interface{}{"Overall Utilization %", s.OverallUtilization},
	)
	for _, e := range result.ExtractionErrors {
		rows = append(rows, []interface{}{"Extraction Error", e})
	}
	return rows
}

func personalRows(p *domain.PersonalInfo) [][]interface{} {
	if p.IsEmpty() {
		return nil
	}
	rows := [][]interface{}{
		{"Full Name", p.FullName},
		{"First Name", p.FirstName},
		{"Middle Name", p.MiddleName},
		{"Last Name", p.LastName},
		{"Suffix", p.Suffix},
		{"SSN (last 4)", p.SSNLast4},
		{"Date of Birth", p.DateOfBirth},
	}
	if p.CurrentAddress != nil {
		rows = append(rows, []interface{}{"Current Address", p.CurrentAddress.FullAddress})
	}
	for _, a := range p.PreviousAddresses {
		rows = append(rows, []interface{}{"Previous Address", a.FullAddress})
	}
	for _, ph := range p.PhoneNumbers {
		rows = append(rows, []interface{}{"Phone", ph})
	}
	rows = append(rows, []interface{}{"Current Employer", p.CurrentEmployer})
	for _, e := range p.PreviousEmployers {
		rows = append(rows, []interface{}{"Previous Employer", e})
	}
	if p.Income != nil {
		rows = append(rows, []interface{}{"Income", p.Income.StringFixed(2)})
	}
	return rows
}

func accountRows(accounts []domain.CreditAccount) [][]interface{} {
	rows := make([][]interface{}, len(accounts))
	for i := range accounts {
		cells := accountRow(&accounts[i])
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		rows[i] = row
	}
	return rows
}

func negativeRows(items []domain.NegativeItem) [][]interface{} {
	rows := make([][]interface{}, len(items))
	for i := range items {
		n := &items[i]
		rows[i] = []interface{}{
			string(n.ItemType), n.CreditorName, n.OriginalCreditor, n.CollectionAgency,
			formatMoney(n.Amount), n.DateOccurred, n.DateReported, n.Status, n.SeverityScore, n.Description,
		}
	}
	return rows
}

func inquiryRows(inquiries []domain.CreditInquiry) [][]interface{} {
	rows := make([][]interface{}, len(inquiries))
	for i := range inquiries {
		q := &inquiries[i]
		rows[i] = []interface{}{q.InquirerName, q.InquiryDate, string(q.InquiryType), q.Purpose, string(q.Bureau)}
	}
	return rows
}

func scoreRows(scores []domain.CreditScore) [][]interface{} {
	rows := make([][]interface{}, len(scores))
	for i := range scores {
		s := &scores[i]
		rows[i] = []interface{}{string(s.ScoreType), s.Score, string(s.Bureau), s.ScaleMin, s.ScaleMax, strings.Join(s.Factors, "; ")}
	}
	return rows
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
