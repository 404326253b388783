package types

import (
	"time"

	"gorm.io/datatypes"
)

// TempIDPrefix marks client-side placeholder identifiers that must never be
// persisted; the storage layer assigns the real id.
const TempIDPrefix = "temp_"

// MonthlyClient is one row in a month-partitioned clients table. The row is
// uniquely identified by (month table, id); year is a column filter inside
// the partition, not part of the partition key.
type MonthlyClient struct {
	ID              string                      `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	Name            string                      `gorm:"not null;index;column:name" json:"name"`
	Location        string                      `gorm:"column:location" json:"location"`
	DeductionDate   string                      `gorm:"column:deduction_date" json:"deductionDate"`
	IssueDate       string                      `gorm:"column:issue_date" json:"issueDate"`
	PoliciesCount   int                         `gorm:"column:policies_count" json:"policiesCount"`
	PolicyPremium   string                      `gorm:"column:policy_premium" json:"policyPremium"`
	ScheduleDocsURL datatypes.JSONSlice[string] `gorm:"column:schedule_docs_url" json:"scheduleDocsUrl"`
	LoaDocURL       datatypes.JSONSlice[string] `gorm:"column:loa_doc_url" json:"loaDocUrl"`
	PdfDocsURL      datatypes.JSONSlice[string] `gorm:"column:pdf_docs_url" json:"pdfDocsUrl"`
	PolicyNumbers   datatypes.JSONSlice[string] `gorm:"column:policy_numbers" json:"policyNumbers"`
	Products        datatypes.JSONSlice[string] `gorm:"column:products" json:"products"`
	Year            int                         `gorm:"not null;index;column:year" json:"year"`
	CreatedAt       time.Time                   `gorm:"not null;default:now();column:created_at" json:"createdAt"`
}

// GlobalClient is the derived row in the consolidated clients table: at most
// one row per distinct name, holding the aggregate of every monthly row that
// currently carries that name. PolicyPremium is numeric here; the monthly
// tables store it as a display string.
type GlobalClient struct {
	ID            string                      `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	Name          string                      `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Location      string                      `gorm:"column:location" json:"location"`
	DeductionDate string                      `gorm:"column:deduction_date" json:"deductionDate"`
	IssueDate     string                      `gorm:"column:issue_date" json:"issueDate"`
	PoliciesCount int                         `gorm:"column:policies_count" json:"policiesCount"`
	PolicyPremium float64                     `gorm:"column:policy_premium" json:"policyPremium"`
	PolicyNumbers datatypes.JSONSlice[string] `gorm:"column:policy_numbers" json:"policyNumbers"`
	Products      datatypes.JSONSlice[string] `gorm:"column:products" json:"products"`
	CreatedAt     time.Time                   `gorm:"not null;default:now();column:created_at" json:"createdAt"`
	UpdatedAt     time.Time                   `gorm:"not null;default:now();column:updated_at" json:"updatedAt"`
}

func (GlobalClient) TableName() string {
	return "clients"
}

var monthTables = [12]string{
	"clients_january",
	"clients_february",
	"clients_march",
	"clients_april",
	"clients_may",
	"clients_june",
	"clients_july",
	"clients_august",
	"clients_september",
	"clients_october",
	"clients_november",
	"clients_december",
}

// MonthTable returns the partition table for a 1-12 month index.
func MonthTable(month time.Month) (string, bool) {
	if month < time.January || month > time.December {
		return "", false
	}
	return monthTables[month-1], true
}

// MonthTables returns all twelve partition tables in calendar order.
func MonthTables() []string {
	out := make([]string, len(monthTables))
	copy(out, monthTables[:])
	return out
}
