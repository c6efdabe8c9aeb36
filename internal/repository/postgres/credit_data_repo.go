package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"creditscan/internal/domain"
	"creditscan/internal/port"
)

type creditDataRepo struct {
	db *sqlx.DB
}

// NewCreditDataRepo creates a new PostgreSQL-backed CreditDataRepository.
func NewCreditDataRepo(db *sqlx.DB) port.CreditDataRepository {
	return &creditDataRepo{db: db}
}

// Child tables in delete order.
var creditDataTables = []string{
	"personal_info",
	"credit_accounts",
	"negative_items",
	"credit_inquiries",
	"credit_scores",
}

type personalInfoRow struct {
	ReportID          uuid.UUID        `db:"report_id"`
	FullName          string           `db:"full_name"`
	FirstName         string           `db:"first_name"`
	MiddleName        string           `db:"middle_name"`
	LastName          string           `db:"last_name"`
	Suffix            string           `db:"suffix"`
	SSNLast4          string           `db:"ssn_last4"`
	DateOfBirth       string           `db:"date_of_birth"`
	CurrentAddress    json.RawMessage  `db:"current_address"`
	PreviousAddresses json.RawMessage  `db:"previous_addresses"`
	PhoneNumbers      json.RawMessage  `db:"phone_numbers"`
	CurrentEmployer   string           `db:"current_employer"`
	PreviousEmployers json.RawMessage  `db:"previous_employers"`
	Income            *decimal.Decimal `db:"income"`
}

type accountRow struct {
	ID                    int64            `db:"id"`
	ReportID              uuid.UUID        `db:"report_id"`
	Position              int              `db:"position"`
	CreditorName          string           `db:"creditor_name"`
	AccountNumber         string           `db:"account_number"`
	AccountType           string           `db:"account_type"`
	AccountStatus         string           `db:"account_status"`
	OriginalCreditor      string           `db:"original_creditor"`
	CurrentBalance        *decimal.Decimal `db:"current_balance"`
	CreditLimit           *decimal.Decimal `db:"credit_limit"`
	HighCredit            *decimal.Decimal `db:"high_credit"`
	MonthlyPayment        *decimal.Decimal `db:"monthly_payment"`
	PastDueAmount         *decimal.Decimal `db:"past_due_amount"`
	UtilizationPercentage *int             `db:"utilization_percentage"`
	DateOpened            string           `db:"date_opened"`
	DateClosed            string           `db:"date_closed"`
	LastActivity          string           `db:"last_activity"`
	PaymentHistory        json.RawMessage  `db:"payment_history"`
	IsNegative            bool             `db:"is_negative"`
	Bureaus               json.RawMessage  `db:"bureaus"`
}

type negativeItemRow struct {
	ID               int64                   `db:"id"`
	ReportID         uuid.UUID               `db:"report_id"`
	Position         int                     `db:"position"`
	ItemType         domain.NegativeItemType `db:"item_type"`
	CreditorName     string                  `db:"creditor_name"`
	OriginalCreditor string                  `db:"original_creditor"`
	CollectionAgency string                  `db:"collection_agency"`
	Amount           *decimal.Decimal        `db:"amount"`
	DateOccurred     string                  `db:"date_occurred"`
	DateReported     string                  `db:"date_reported"`
	Status           string                  `db:"status"`
	SeverityScore    int                     `db:"severity_score"`
	Description      string                  `db:"description"`
}

type inquiryRow struct {
	ID           int64              `db:"id"`
	ReportID     uuid.UUID          `db:"report_id"`
	Position     int                `db:"position"`
	InquirerName string             `db:"inquirer_name"`
	InquiryDate  string             `db:"inquiry_date"`
	InquiryType  domain.InquiryType `db:"inquiry_type"`
	Purpose      string             `db:"purpose"`
	Bureau       domain.Bureau      `db:"bureau"`
}

type scoreRow struct {
	ID        int64            `db:"id"`
	ReportID  uuid.UUID        `db:"report_id"`
	Position  int              `db:"position"`
	ScoreType domain.ScoreType `db:"score_type"`
	Score     int              `db:"score"`
	Bureau    domain.Bureau    `db:"bureau"`
	Factors   json.RawMessage  `db:"factors"`
	ScaleMin  int              `db:"scale_min"`
	ScaleMax  int              `db:"scale_max"`
}

const (
	insertPersonalInfo = `INSERT INTO personal_info (
		report_id, full_name, first_name, middle_name, last_name, suffix, ssn_last4, date_of_birth,
		current_address, previous_addresses, phone_numbers, current_employer, previous_employers, income
	) VALUES (
		:report_id, :full_name, :first_name, :middle_name, :last_name, :suffix, :ssn_last4, :date_of_birth,
		:current_address, :previous_addresses, :phone_numbers, :current_employer, :previous_employers, :income
	)`

	insertAccount = `INSERT INTO credit_accounts (
		report_id, position, creditor_name, account_number, account_type, account_status, original_creditor,
		current_balance, credit_limit, high_credit, monthly_payment, past_due_amount, utilization_percentage,
		date_opened, date_closed, last_activity, payment_history, is_negative, bureaus
	) VALUES (
		:report_id, :position, :creditor_name, :account_number, :account_type, :account_status, :original_creditor,
		:current_balance, :credit_limit, :high_credit, :monthly_payment, :past_due_amount, :utilization_percentage,
		:date_opened, :date_closed, :last_activity, :payment_history, :is_negative, :bureaus
	)`

	insertNegativeItem = `INSERT INTO negative_items (
		report_id, position, item_type, creditor_name, original_creditor, collection_agency, amount,
		date_occurred, date_reported, status, severity_score, description
	) VALUES (
		:report_id, :position, :item_type, :creditor_name, :original_creditor, :collection_agency, :amount,
		:date_occurred, :date_reported, :status, :severity_score, :description
	)`

	insertInquiry = `INSERT INTO credit_inquiries (
		report_id, position, inquirer_name, inquiry_date, inquiry_type, purpose, bureau
	) VALUES (
		:report_id, :position, :inquirer_name, :inquiry_date, :inquiry_type, :purpose, :bureau
	)`

	insertScore = `INSERT INTO credit_scores (
		report_id, position, score_type, score, bureau, factors, scale_min, scale_max
	) VALUES (
		:report_id, :position, :score_type, :score, :bureau, :factors, :scale_min, :scale_max
	)`
)

func (r *creditDataRepo) ReplaceAll(ctx context.Context, reportID uuid.UUID, result *domain.ParsingResult) error {
	rows, err := toRows(reportID, result)
	if err != nil {
		return fmt.Errorf("creditDataRepo.ReplaceAll: %w", err)
	}

	err = withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, table := range creditDataTables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE report_id = $1", reportID); err != nil {
				return fmt.Errorf("delete %s: %w", table, err)
			}
		}

		if rows.personal != nil {
			if _, err := tx.NamedExecContext(ctx, insertPersonalInfo, rows.personal); err != nil {
				return fmt.Errorf("insert personal_info: %w", err)
			}
		}
		for i := range rows.accounts {
			if _, err := tx.NamedExecContext(ctx, insertAccount, &rows.accounts[i]); err != nil {
				return fmt.Errorf("insert credit_accounts: %w", err)
			}
		}
		for i := range rows.negatives {
			if _, err := tx.NamedExecContext(ctx, insertNegativeItem, &rows.negatives[i]); err != nil {
				return fmt.Errorf("insert negative_items: %w", err)
			}
		}
		for i := range rows.inquiries {
			if _, err := tx.NamedExecContext(ctx, insertInquiry, &rows.inquiries[i]); err != nil {
				return fmt.Errorf("insert credit_inquiries: %w", err)
			}
		}
		for i := range rows.scores {
			if _, err := tx.NamedExecContext(ctx, insertScore, &rows.scores[i]); err != nil {
				return fmt.Errorf("insert credit_scores: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("creditDataRepo.ReplaceAll: %w", err)
	}
	return nil
}

func (r *creditDataRepo) Load(ctx context.Context, reportID uuid.UUID) (*domain.ParsingResult, error) {
	out := &domain.ParsingResult{
		Accounts:         []domain.CreditAccount{},
		NegativeItems:    []domain.NegativeItem{},
		Inquiries:        []domain.CreditInquiry{},
		Scores:           []domain.CreditScore{},
		ExtractionErrors: []string{},
		SectionsFound:    []domain.SectionName{},
	}

	var personal personalInfoRow
	err := r.db.GetContext(ctx, &personal, "SELECT * FROM personal_info WHERE report_id = $1", reportID)
	switch {
	case err == nil:
		info, err := personal.toDomain()
		if err != nil {
			return nil, fmt.Errorf("creditDataRepo.Load personal_info: %w", err)
		}
		out.PersonalInfo = info
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("creditDataRepo.Load personal_info: %w", err)
	}

	var accounts []accountRow
	if err := r.db.SelectContext(ctx, &accounts,
		"SELECT * FROM credit_accounts WHERE report_id = $1 ORDER BY position", reportID); err != nil {
		return nil, fmt.Errorf("creditDataRepo.Load credit_accounts: %w", err)
	}
	for i := range accounts {
		acct, err := accounts[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("creditDataRepo.Load credit_accounts: %w", err)
		}
		out.Accounts = append(out.Accounts, acct)
	}

	var negatives []negativeItemRow
	if err := r.db.SelectContext(ctx, &negatives,
		"SELECT * FROM negative_items WHERE report_id = $1 ORDER BY position", reportID); err != nil {
		return nil, fmt.Errorf("creditDataRepo.Load negative_items: %w", err)
	}
	for i := range negatives {
		out.NegativeItems = append(out.NegativeItems, negatives[i].toDomain())
	}

	var inquiries []inquiryRow
	if err := r.db.SelectContext(ctx, &inquiries,
		"SELECT * FROM credit_inquiries WHERE report_id = $1 ORDER BY position", reportID); err != nil {
		return nil, fmt.Errorf("creditDataRepo.Load credit_inquiries: %w", err)
	}
	for i := range inquiries {
		out.Inquiries = append(out.Inquiries, inquiries[i].toDomain())
	}

	var scores []scoreRow
	if err := r.db.SelectContext(ctx, &scores,
		"SELECT * FROM credit_scores WHERE report_id = $1 ORDER BY position", reportID); err != nil {
		return nil, fmt.Errorf("creditDataRepo.Load credit_scores: %w", err)
	}
	for i := range scores {
		s, err := scores[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("creditDataRepo.Load credit_scores: %w", err)
		}
		out.Scores = append(out.Scores, s)
	}

	return out, nil
}

type creditDataRows struct {
	personal  *personalInfoRow
	accounts  []accountRow
	negatives []negativeItemRow
	inquiries []inquiryRow
	scores    []scoreRow
}

func toRows(reportID uuid.UUID, result *domain.ParsingResult) (*creditDataRows, error) {
	rows := &creditDataRows{}
	if result == nil {
		return rows, nil
	}

	if !result.PersonalInfo.IsEmpty() {
		p := result.PersonalInfo
		row := &personalInfoRow{
			ReportID:        reportID,
			FullName:        p.FullName,
			FirstName:       p.FirstName,
			MiddleName:      p.MiddleName,
			LastName:        p.LastName,
			Suffix:          p.Suffix,
			SSNLast4:        p.SSNLast4,
			DateOfBirth:     p.DateOfBirth,
			CurrentEmployer: p.CurrentEmployer,
			Income:          p.Income,
		}
		var err error
		if row.CurrentAddress, err = marshalJSON(p.CurrentAddress); err != nil {
			return nil, err
		}
		if row.PreviousAddresses, err = marshalJSON(nonNil(p.PreviousAddresses)); err != nil {
			return nil, err
		}
		if row.PhoneNumbers, err = marshalJSON(nonNil(p.PhoneNumbers)); err != nil {
			return nil, err
		}
		if row.PreviousEmployers, err = marshalJSON(nonNil(p.PreviousEmployers)); err != nil {
			return nil, err
		}
		rows.personal = row
	}

	for i := range result.Accounts {
		a := &result.Accounts[i]
		history := a.PaymentHistory
		if history == nil {
			history = map[string]domain.PaymentStatus{}
		}
		historyJSON, err := marshalJSON(history)
		if err != nil {
			return nil, err
		}
		bureausJSON, err := marshalJSON(nonNil(a.Bureaus))
		if err != nil {
			return nil, err
		}
		rows.accounts = append(rows.accounts, accountRow{
			ReportID:              reportID,
			Position:              i,
			CreditorName:          a.CreditorName,
			AccountNumber:         a.AccountNumber,
			AccountType:           a.AccountType,
			AccountStatus:         a.AccountStatus,
			OriginalCreditor:      a.OriginalCreditor,
			CurrentBalance:        a.CurrentBalance,
			CreditLimit:           a.CreditLimit,
			HighCredit:            a.HighCredit,
			MonthlyPayment:        a.MonthlyPayment,
			PastDueAmount:         a.PastDueAmount,
			UtilizationPercentage: a.UtilizationPercentage,
			DateOpened:            a.DateOpened,
			DateClosed:            a.DateClosed,
			LastActivity:          a.LastActivity,
			PaymentHistory:        historyJSON,
			IsNegative:            a.IsNegative,
			Bureaus:               bureausJSON,
		})
	}

	for i := range result.NegativeItems {
		n := &result.NegativeItems[i]
		rows.negatives = append(rows.negatives, negativeItemRow{
			ReportID:         reportID,
			Position:         i,
			ItemType:         n.ItemType,
			CreditorName:     n.CreditorName,
			OriginalCreditor: n.OriginalCreditor,
			CollectionAgency: n.CollectionAgency,
			Amount:           n.Amount,
			DateOccurred:     n.DateOccurred,
			DateReported:     n.DateReported,
			Status:           n.Status,
			SeverityScore:    n.SeverityScore,
			Description:      n.Description,
		})
	}

	for i := range result.Inquiries {
		q := &result.Inquiries[i]
		rows.inquiries = append(rows.inquiries, inquiryRow{
			ReportID:     reportID,
			Position:     i,
			InquirerName: q.InquirerName,
			InquiryDate:  q.InquiryDate,
			InquiryType:  q.InquiryType,
			Purpose:      q.Purpose,
			Bureau:       q.Bureau,
		})
	}

	for i := range result.Scores {
		s := &result.Scores[i]
		factors, err := marshalJSON(nonNil(s.Factors))
		if err != nil {
			return nil, err
		}
		rows.scores = append(rows.scores, scoreRow{
			ReportID:  reportID,
			Position:  i,
			ScoreType: s.ScoreType,
			Score:     s.Score,
			Bureau:    s.Bureau,
			Factors:   factors,
			ScaleMin:  s.ScaleMin,
			ScaleMax:  s.ScaleMax,
		})
	}

	return rows, nil
}

func (row *personalInfoRow) toDomain() (*domain.PersonalInfo, error) {
	info := &domain.PersonalInfo{
		FullName:          row.FullName,
		FirstName:         row.FirstName,
		MiddleName:        row.MiddleName,
		LastName:          row.LastName,
		Suffix:            row.Suffix,
		SSNLast4:          row.SSNLast4,
		DateOfBirth:       row.DateOfBirth,
		CurrentEmployer:   row.CurrentEmployer,
		Income:            row.Income,
		PreviousAddresses: []domain.Address{},
		PhoneNumbers:      []string{},
		PreviousEmployers: []string{},
	}
	if err := unmarshalJSON(row.CurrentAddress, &info.CurrentAddress); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(row.PreviousAddresses, &info.PreviousAddresses); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(row.PhoneNumbers, &info.PhoneNumbers); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(row.PreviousEmployers, &info.PreviousEmployers); err != nil {
		return nil, err
	}
	return info, nil
}

func (row *accountRow) toDomain() (domain.CreditAccount, error) {
	acct := domain.CreditAccount{
		CreditorName:          row.CreditorName,
		AccountNumber:         row.AccountNumber,
		AccountType:           row.AccountType,
		AccountStatus:         row.AccountStatus,
		OriginalCreditor:      row.OriginalCreditor,
		CurrentBalance:        row.CurrentBalance,
		CreditLimit:           row.CreditLimit,
		HighCredit:            row.HighCredit,
		MonthlyPayment:        row.MonthlyPayment,
		PastDueAmount:         row.PastDueAmount,
		UtilizationPercentage: row.UtilizationPercentage,
		DateOpened:            row.DateOpened,
		DateClosed:            row.DateClosed,
		LastActivity:          row.LastActivity,
		IsNegative:            row.IsNegative,
		PaymentHistory:        map[string]domain.PaymentStatus{},
		Bureaus:               []domain.Bureau{},
	}
	if err := unmarshalJSON(row.PaymentHistory, &acct.PaymentHistory); err != nil {
		return acct, err
	}
	if err := unmarshalJSON(row.Bureaus, &acct.Bureaus); err != nil {
		return acct, err
	}
	return acct, nil
}

func (row *negativeItemRow) toDomain() domain.NegativeItem {
	return domain.NegativeItem{
		ItemType:         row.ItemType,
		CreditorName:     row.CreditorName,
		OriginalCreditor: row.OriginalCreditor,
		CollectionAgency: row.CollectionAgency,
		Amount:           row.Amount,
		DateOccurred:     row.DateOccurred,
		DateReported:     row.DateReported,
		Status:           row.Status,
		SeverityScore:    row.SeverityScore,
		Description:      row.Description,
	}
}

func (row *inquiryRow) toDomain() domain.CreditInquiry {
	return domain.CreditInquiry{
		InquirerName: row.InquirerName,
		InquiryDate:  row.InquiryDate,
		InquiryType:  row.InquiryType,
		Purpose:      row.Purpose,
		Bureau:       row.Bureau,
	}
}

func (row *scoreRow) toDomain() (domain.CreditScore, error) {
	s := domain.CreditScore{
		ScoreType: row.ScoreType,
		Score:     row.Score,
		Bureau:    row.Bureau,
		ScaleMin:  row.ScaleMin,
		ScaleMax:  row.ScaleMax,
		Factors:   []string{},
	}
	if err := unmarshalJSON(row.Factors, &s.Factors); err != nil {
		return s, err
	}
	return s, nil
}

func marshalJSON(v any) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal json column: %w", err)
	}
	return b, nil
}

// unmarshalJSON leaves dst untouched for SQL NULL or JSON null.
func unmarshalJSON(raw json.RawMessage, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("unmarshal json column: %w", err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
