package domain

import "github.com/shopspring/decimal"

// Address is a postal address decomposed on a best-effort basis.
// FullAddress always carries the original text when the parts could not be split.
type Address struct {
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	ZipCode     string `json:"zip_code,omitempty"`
	FullAddress string `json:"full_address"`
}

// PersonalInfo holds the consumer identification block of a report.
type PersonalInfo struct {
	FullName          string           `json:"full_name,omitempty"`
	FirstName         string           `json:"first_name,omitempty"`
	MiddleName        string           `json:"middle_name,omitempty"`
	LastName          string           `json:"last_name,omitempty"`
	Suffix            string           `json:"suffix,omitempty"`
	SSNLast4          string           `json:"ssn_last4,omitempty"`
	DateOfBirth       string           `json:"date_of_birth,omitempty"`
	CurrentAddress    *Address         `json:"current_address,omitempty"`
	PreviousAddresses []Address        `json:"previous_addresses"`
	PhoneNumbers      []string         `json:"phone_numbers"`
	CurrentEmployer   string           `json:"current_employer,omitempty"`
	PreviousEmployers []string         `json:"previous_employers"`
	Income            *decimal.Decimal `json:"income,omitempty"`
}

// IsEmpty reports whether no personal field was extracted.
func (p *PersonalInfo) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.FullName == "" && p.SSNLast4 == "" && p.DateOfBirth == "" &&
		p.CurrentAddress == nil && len(p.PreviousAddresses) == 0 &&
		len(p.PhoneNumbers) == 0 && p.CurrentEmployer == "" &&
		len(p.PreviousEmployers) == 0 && p.Income == nil
}

// CreditAccount is one tradeline.
type CreditAccount struct {
	CreditorName          string                   `json:"creditor_name"`
	AccountNumber         string                   `json:"account_number,omitempty"`
	AccountType           string                   `json:"account_type,omitempty"`
	AccountStatus         string                   `json:"account_status,omitempty"`
	OriginalCreditor      string                   `json:"original_creditor,omitempty"`
	CurrentBalance        *decimal.Decimal         `json:"current_balance,omitempty"`
	CreditLimit           *decimal.Decimal         `json:"credit_limit,omitempty"`
	HighCredit            *decimal.Decimal         `json:"high_credit,omitempty"`
	MonthlyPayment        *decimal.Decimal         `json:"monthly_payment,omitempty"`
	PastDueAmount         *decimal.Decimal         `json:"past_due_amount,omitempty"`
	UtilizationPercentage *int                     `json:"utilization_percentage,omitempty"`
	DateOpened            string                   `json:"date_opened,omitempty"`
	DateClosed            string                   `json:"date_closed,omitempty"`
	LastActivity          string                   `json:"last_activity,omitempty"`
	PaymentHistory        map[string]PaymentStatus `json:"payment_history"`
	IsNegative            bool                     `json:"is_negative"`
	Bureaus               []Bureau                 `json:"bureaus"`
}

// NegativeItem is a derogatory entry derived from a negative account or a collections block.
type NegativeItem struct {
	ItemType         NegativeItemType `json:"item_type"`
	CreditorName     string           `json:"creditor_name"`
	OriginalCreditor string           `json:"original_creditor,omitempty"`
	CollectionAgency string           `json:"collection_agency,omitempty"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
	DateOccurred     string           `json:"date_occurred,omitempty"`
	DateReported     string           `json:"date_reported,omitempty"`
	Status           string           `json:"status,omitempty"`
	SeverityScore    int              `json:"severity_score"`
	Description      string           `json:"description,omitempty"`
}

// CreditInquiry is a single pull of the consumer's file.
type CreditInquiry struct {
	InquirerName string      `json:"inquirer_name"`
	InquiryDate  string      `json:"inquiry_date"`
	InquiryType  InquiryType `json:"inquiry_type"`
	Purpose      string      `json:"purpose,omitempty"`
	Bureau       Bureau      `json:"bureau,omitempty"`
}

// CreditScore is one reported score value.
type CreditScore struct {
	ScoreType ScoreType `json:"score_type"`
	Score     int       `json:"score"`
	Bureau    Bureau    `json:"bureau,omitempty"`
	Factors   []string  `json:"factors"`
	ScaleMin  int       `json:"scale_min"`
	ScaleMax  int       `json:"scale_max"`
}

// AccountSummary aggregates the account list. It is always recomputed, never stored.
type AccountSummary struct {
	TotalAccounts      int             `json:"total_accounts"`
	OpenAccounts       int             `json:"open_accounts"`
	ClosedAccounts     int             `json:"closed_accounts"`
	NegativeAccounts   int             `json:"negative_accounts"`
	TotalCreditLimit   decimal.Decimal `json:"total_credit_limit"`
	TotalBalance       decimal.Decimal `json:"total_balance"`
	AvailableCredit    decimal.Decimal `json:"available_credit"`
	OverallUtilization int             `json:"overall_utilization"`
}

// ParsingResult is the complete output of one parse of a report's text.
type ParsingResult struct {
	PersonalInfo      *PersonalInfo   `json:"personal_info,omitempty"`
	Accounts          []CreditAccount `json:"accounts"`
	NegativeItems     []NegativeItem  `json:"negative_items"`
	Inquiries         []CreditInquiry `json:"inquiries"`
	Scores            []CreditScore   `json:"scores"`
	Summary           AccountSummary  `json:"summary"`
	ParsingConfidence int             `json:"parsing_confidence"`
	ExtractionErrors  []string        `json:"extraction_errors"`
	QualityScore      int             `json:"quality_score"`
	QualityTier       QualityTier     `json:"quality_tier"`
	Bureau            Bureau          `json:"bureau"`
	SectionsFound     []SectionName   `json:"sections_found"`
}
