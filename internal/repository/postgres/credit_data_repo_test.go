package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditscan/internal/domain"
	"creditscan/internal/repository/postgres"
)

func sampleResult() *domain.ParsingResult {
	balance := decimal.NewFromInt(5000)
	limit := decimal.NewFromInt(10000)
	util := 50
	return &domain.ParsingResult{
		PersonalInfo: &domain.PersonalInfo{
			FullName:     "JOHN A SMITH",
			FirstName:    "JOHN",
			LastName:     "SMITH",
			SSNLast4:     "1234",
			PhoneNumbers: []string{"(555) 123-4567"},
		},
		Accounts: []domain.CreditAccount{{
			CreditorName:          "ABC BANK",
			AccountStatus:         "Open",
			CurrentBalance:        &balance,
			CreditLimit:           &limit,
			UtilizationPercentage: &util,
			PaymentHistory:        map[string]domain.PaymentStatus{"2023-01": domain.PaymentOK},
			Bureaus:               []domain.Bureau{domain.BureauExperian},
		}},
		NegativeItems: []domain.NegativeItem{{
			ItemType:      domain.NegativeCollection,
			CreditorName:  "MIDLAND FUNDING",
			SeverityScore: 8,
		}},
		Inquiries: []domain.CreditInquiry{{
			InquirerName: "CHASE BANK",
			InquiryDate:  "01/05/2024",
			InquiryType:  domain.InquiryHard,
		}},
		Scores: []domain.CreditScore{{
			ScoreType: domain.ScoreFICO,
			Score:     720,
			ScaleMin:  300,
			ScaleMax:  850,
		}},
	}
}

func expectDeletes(mock sqlmock.Sqlmock, reportID uuid.UUID) {
	for _, table := range []string{"personal_info", "credit_accounts", "negative_items", "credit_inquiries", "credit_scores"} {
		mock.ExpectExec("DELETE FROM " + table + " WHERE report_id").
			WithArgs(reportID).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
}

func TestCreditDataRepo_ReplaceAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewCreditDataRepo(db)
	reportID := uuid.New()

	mock.ExpectBegin()
	expectDeletes(mock, reportID)
	mock.ExpectExec("INSERT INTO personal_info").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO credit_accounts").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO negative_items").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO credit_inquiries").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO credit_scores").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReplaceAll(context.Background(), reportID, sampleResult())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditDataRepo_ReplaceAll_EmptyResultOnlyDeletes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewCreditDataRepo(db)
	reportID := uuid.New()

	mock.ExpectBegin()
	expectDeletes(mock, reportID)
	mock.ExpectCommit()

	err := repo.ReplaceAll(context.Background(), reportID, &domain.ParsingResult{})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditDataRepo_ReplaceAll_RollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewCreditDataRepo(db)
	reportID := uuid.New()

	mock.ExpectBegin()
	expectDeletes(mock, reportID)
	mock.ExpectExec("INSERT INTO personal_info").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO credit_accounts").WillReturnError(errors.New("numeric overflow"))
	mock.ExpectRollback()

	err := repo.ReplaceAll(context.Background(), reportID, sampleResult())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert credit_accounts")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditDataRepo_Load(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewCreditDataRepo(db)
	reportID := uuid.New()

	mock.ExpectQuery("SELECT \\* FROM personal_info").WithArgs(reportID).
		WillReturnRows(sqlmock.NewRows([]string{
			"report_id", "full_name", "ssn_last4", "current_address", "previous_addresses", "phone_numbers", "previous_employers", "income",
		}).AddRow(reportID.String(), "JANE DOE", "9876",
			[]byte(`{"street":"77 ELM STREET","city":"SPRINGFIELD","full_address":"77 ELM STREET, SPRINGFIELD"}`),
			[]byte(`[]`), []byte(`["(555) 222-3333"]`), nil, "85000"))
	mock.ExpectQuery("SELECT \\* FROM credit_accounts").WithArgs(reportID).
		WillReturnRows(sqlmock.NewRows([]string{
			"report_id", "position", "creditor_name", "current_balance", "credit_limit", "utilization_percentage", "payment_history", "is_negative", "bureaus",
		}).AddRow(reportID.String(), 0, "ABC BANK", "5000", "10000", 50,
			[]byte(`{"2023-01":"ok"}`), false, []byte(`["experian"]`)))
	mock.ExpectQuery("SELECT \\* FROM negative_items").WithArgs(reportID).
		WillReturnRows(sqlmock.NewRows([]string{"report_id", "position", "item_type", "creditor_name", "amount", "severity_score"}).
			AddRow(reportID.String(), 0, "collection", "MIDLAND FUNDING", nil, 8))
	mock.ExpectQuery("SELECT \\* FROM credit_inquiries").WithArgs(reportID).
		WillReturnRows(sqlmock.NewRows([]string{"report_id", "position", "inquirer_name", "inquiry_type"}))
	mock.ExpectQuery("SELECT \\* FROM credit_scores").WithArgs(reportID).
		WillReturnRows(sqlmock.NewRows([]string{"report_id", "position", "score_type", "score", "factors", "scale_min", "scale_max"}).
			AddRow(reportID.String(), 0, "fico", 720, []byte(`["Too many inquiries"]`), 300, 850))

	result, err := repo.Load(context.Background(), reportID)

	require.NoError(t, err)
	require.NotNil(t, result.PersonalInfo)
	assert.Equal(t, "JANE DOE", result.PersonalInfo.FullName)
	require.NotNil(t, result.PersonalInfo.CurrentAddress)
	assert.Equal(t, "SPRINGFIELD", result.PersonalInfo.CurrentAddress.City)
	assert.Equal(t, []string{"(555) 222-3333"}, result.PersonalInfo.PhoneNumbers)
	assert.Equal(t, []string{}, result.PersonalInfo.PreviousEmployers)
	assert.Equal(t, "85000", result.PersonalInfo.Income.String())

	require.Len(t, result.Accounts, 1)
	acct := result.Accounts[0]
	assert.Equal(t, "5000", acct.CurrentBalance.String())
	assert.Equal(t, 50, *acct.UtilizationPercentage)
	assert.Nil(t, acct.HighCredit)
	assert.Equal(t, domain.PaymentOK, acct.PaymentHistory["2023-01"])
	assert.Equal(t, []domain.Bureau{domain.BureauExperian}, acct.Bureaus)

	require.Len(t, result.NegativeItems, 1)
	assert.Nil(t, result.NegativeItems[0].Amount)
	assert.Empty(t, result.Inquiries)
	assert.NotNil(t, result.Inquiries)
	require.Len(t, result.Scores, 1)
	assert.Equal(t, []string{"Too many inquiries"}, result.Scores[0].Factors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditDataRepo_Load_NoPersonalInfo(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewCreditDataRepo(db)
	reportID := uuid.New()

	mock.ExpectQuery("SELECT \\* FROM personal_info").WillReturnRows(sqlmock.NewRows([]string{"report_id"}))
	for _, table := range []string{"credit_accounts", "negative_items", "credit_inquiries", "credit_scores"} {
		mock.ExpectQuery("SELECT \\* FROM " + table).WillReturnRows(sqlmock.NewRows([]string{"report_id"}))
	}

	result, err := repo.Load(context.Background(), reportID)

	require.NoError(t, err)
	assert.Nil(t, result.PersonalInfo)
	assert.Empty(t, result.Accounts)
}
