package domain

import "strings"

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeTXT FileType = "txt"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeTXT: "text/plain",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf": FileTypePDF,
	"txt": FileTypeTXT,
}

// ParsingStatus represents the lifecycle of a report parse.
type ParsingStatus string

const (
	ParsingStatusPending    ParsingStatus = "pending"
	ParsingStatusQueued     ParsingStatus = "queued"
	ParsingStatusProcessing ParsingStatus = "processing"
	ParsingStatusCompleted  ParsingStatus = "completed"
	ParsingStatusFailed     ParsingStatus = "failed"
)

// Bureau identifies the credit bureau that produced a report or tradeline.
type Bureau string

const (
	BureauTransUnion Bureau = "transunion"
	BureauExperian   Bureau = "experian"
	BureauEquifax    Bureau = "equifax"
	BureauUnknown    Bureau = "unknown"
)

// KnownBureaus lists the bureaus in detection precedence order.
var KnownBureaus = []Bureau{BureauTransUnion, BureauExperian, BureauEquifax}

// ParseBureau maps a free-form bureau hint to a Bureau. Unrecognized hints map to BureauUnknown.
func ParseBureau(s string) Bureau {
	n := strings.ToLower(strings.Join(strings.Fields(s), ""))
	switch n {
	case "transunion", "tu", "trans-union":
		return BureauTransUnion
	case "experian", "exp", "ex":
		return BureauExperian
	case "equifax", "eqf", "eq":
		return BureauEquifax
	default:
		return BureauUnknown
	}
}

// NegativeItemType is the closed taxonomy of derogatory items.
type NegativeItemType string

const (
	NegativeCollection  NegativeItemType = "collection"
	NegativeChargeOff   NegativeItemType = "charge_off"
	NegativeLatePayment NegativeItemType = "late_payment"
	NegativeBankruptcy  NegativeItemType = "bankruptcy"
	NegativeForeclosure NegativeItemType = "foreclosure"
	NegativeTaxLien     NegativeItemType = "tax_lien"
	NegativeJudgment    NegativeItemType = "judgment"
)

// InquiryType distinguishes hard pulls from soft pulls.
type InquiryType string

const (
	InquiryHard InquiryType = "hard"
	InquirySoft InquiryType = "soft"
)

// ScoreType identifies the scoring model of a CreditScore.
type ScoreType string

const (
	ScoreFICO     ScoreType = "fico"
	ScoreVantage  ScoreType = "vantagescore"
	ScoreGeneric  ScoreType = "generic"
	ScoreMinValue           = 300
	ScoreMaxValue           = 850
)

// PaymentStatus is the per-month status code of a payment history grid.
type PaymentStatus string

const (
	PaymentOK         PaymentStatus = "ok"
	PaymentLate30     PaymentStatus = "30"
	PaymentLate60     PaymentStatus = "60"
	PaymentLate90     PaymentStatus = "90"
	PaymentLate120    PaymentStatus = "120"
	PaymentCollection PaymentStatus = "collection"
	PaymentChargeOff  PaymentStatus = "charge_off"
	PaymentUnknown    PaymentStatus = "unknown"
)

// QualityTier is the extraction tier selected from the text quality score.
type QualityTier string

const (
	TierHigh     QualityTier = "high"
	TierMedium   QualityTier = "medium"
	TierLow      QualityTier = "low"
	TierRecovery QualityTier = "recovery"
)

// SectionName is one of the fixed report sections the segmenter locates.
type SectionName string

const (
	SectionPersonalInfo  SectionName = "personal_info"
	SectionAccounts      SectionName = "accounts"
	SectionInquiries     SectionName = "inquiries"
	SectionScores        SectionName = "scores"
	SectionNegativeItems SectionName = "negative_items"
)

// AllSections lists every section in segmentation order.
var AllSections = []SectionName{
	SectionPersonalInfo,
	SectionAccounts,
	SectionInquiries,
	SectionScores,
	SectionNegativeItems,
}

// ExportFormat is a supported download format for parse results.
type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportCSV  ExportFormat = "csv"
)
