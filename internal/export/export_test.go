package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"creditscan/internal/domain"
	"creditscan/internal/export"
)

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func sampleResult() *domain.ParsingResult {
	util := 50
	return &domain.ParsingResult{
		PersonalInfo: &domain.PersonalInfo{
			FullName:       "JOHN A SMITH",
			SSNLast4:       "1234",
			CurrentAddress: &domain.Address{FullAddress: "123 MAIN ST, ANYTOWN, CA 90210"},
			PhoneNumbers:   []string{"(555) 123-4567"},
		},
		Accounts: []domain.CreditAccount{
			{
				CreditorName:          "ABC BANK",
				AccountStatus:         "Open",
				CurrentBalance:        dec("5000"),
				CreditLimit:           dec("10000"),
				UtilizationPercentage: &util,
				PaymentHistory: map[string]domain.PaymentStatus{
					"2023-03": domain.PaymentLate60,
					"2023-01": domain.PaymentOK,
					"2023-02": domain.PaymentLate30,
				},
				Bureaus: []domain.Bureau{domain.BureauExperian, domain.BureauEquifax},
			},
			{
				CreditorName:  "MIDLAND FUNDING",
				AccountStatus: "Collection",
				IsNegative:    true,
			},
		},
		NegativeItems: []domain.NegativeItem{
			{ItemType: domain.NegativeCollection, CreditorName: "MIDLAND FUNDING", Amount: dec("850.5"), SeverityScore: 8},
		},
		Inquiries: []domain.CreditInquiry{
			{InquirerName: "CHASE BANK", InquiryDate: "01/05/2024", InquiryType: domain.InquiryHard},
		},
		Scores: []domain.CreditScore{
			{ScoreType: domain.ScoreFICO, Score: 720, ScaleMin: 300, ScaleMax: 850, Factors: []string{"High utilization", "Recent inquiries"}},
		},
		Summary: domain.AccountSummary{
			TotalAccounts:      2,
			OpenAccounts:       1,
			TotalCreditLimit:   decimal.NewFromInt(10000),
			TotalBalance:       decimal.NewFromInt(5000),
			AvailableCredit:    decimal.NewFromInt(5000),
			OverallUtilization: 50,
		},
		ParsingConfidence: 80,
		QualityScore:      90,
		QualityTier:       domain.TierHigh,
		Bureau:            domain.BureauExperian,
		ExtractionErrors:  []string{"section not found: scores"},
	}
}

func TestWriteAccountsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteAccountsCSV(&buf, sampleResult().Accounts))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, export.BOM))

	records, err := csv.NewReader(bytes.NewReader(data[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Creditor", records[0][0])
	assert.Equal(t, "ABC BANK", records[1][0])
	assert.Equal(t, "5000.00", records[1][5])
	assert.Equal(t, "10000.00", records[1][6])
	assert.Equal(t, "", records[1][7])
	assert.Equal(t, "50", records[1][10])
	assert.Equal(t, "No", records[1][14])
	assert.Equal(t, "experian;equifax", records[1][15])
	assert.Equal(t, "2023-02=30;2023-03=60", records[1][16])

	assert.Equal(t, "Yes", records[2][14])
	assert.Equal(t, "", records[2][16])
}

func TestWorkbook(t *testing.T) {
	parsedAt := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	report := &domain.Report{FileName: "experian.pdf", ParsedAt: &parsedAt}

	data, err := export.Workbook(report, sampleResult())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{
		export.SheetSummary, export.SheetPersonal, export.SheetAccounts,
		export.SheetNegative, export.SheetInquiries, export.SheetScores,
	}, f.GetSheetList())

	summary, err := f.GetRows(export.SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Field", "Value"}, summary[0])
	assert.Equal(t, []string{"File", "experian.pdf"}, summary[1])
	assert.Contains(t, summary, []string{"Total Balance", "5000.00"})
	assert.Contains(t, summary, []string{"Extraction Error", "section not found: scores"})

	personal, err := f.GetRows(export.SheetPersonal)
	require.NoError(t, err)
	assert.Contains(t, personal, []string{"Current Address", "123 MAIN ST, ANYTOWN, CA 90210"})

	accounts, err := f.GetRows(export.SheetAccounts)
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "MIDLAND FUNDING", accounts[2][0])

	negatives, err := f.GetRows(export.SheetNegative)
	require.NoError(t, err)
	require.Len(t, negatives, 2)
	assert.Equal(t, "collection", negatives[1][0])
	assert.Equal(t, "850.50", negatives[1][4])
	assert.Equal(t, "8", negatives[1][8])

	scores, err := f.GetRows(export.SheetScores)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, []string{"fico", "720", "", "300", "850", "High utilization; Recent inquiries"}, scores[1])
}

func TestWorkbook_EmptyResult(t *testing.T) {
	data, err := export.Workbook(nil, &domain.ParsingResult{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	personal, err := f.GetRows(export.SheetPersonal)
	require.NoError(t, err)
	assert.Len(t, personal, 1)

	summary, err := f.GetRows(export.SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, "Bureau", summary[1][0])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"My Report (2024)", "My_Report_2024"},
		{"__a  b__", "a_b"},
		{"***", "report"},
		{strings.Repeat("x", 120), strings.Repeat("x", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, export.SanitizeFilename(tt.in))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	name := export.BuildFilename("equifax report.pdf", domain.ExportXLSX)
	assert.True(t, strings.HasPrefix(name, "equifax_report_"))
	assert.True(t, strings.HasSuffix(name, ".xlsx"))
}
