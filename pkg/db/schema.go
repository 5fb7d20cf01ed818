package db

import (
	"time"
)

type Dealer struct {
	Code string `gorm:"column:dealer_code;primaryKey;size:64"`
	Name string `gorm:"column:dealer_name;not null;index"`
}

func (Dealer) TableName() string {
	return "dealers"
}

// Visit is one stored submission. Dates are kept as YYYY-MM-DD strings so
// every dialect stores and returns them unchanged.
type Visit struct {
	ID         string `gorm:"primaryKey;size:36"`
	Variant    string `gorm:"size:16;index"`
	Date       string `gorm:"size:10;index"`
	DealerCode string `gorm:"size:64;index"`
	DealerName string
	DealerSPOC string
	VisitType  string
	Visitor    string

	AppOverview         string `gorm:"type:text"`
	FlashSale           string `gorm:"type:text"`
	ShowroomPerformance string `gorm:"type:text"`
	SwiftAdoption       string `gorm:"type:text"`
	DirectLending       string `gorm:"type:text"`
	CarSharing          string `gorm:"type:text"`
	D2CAdoption         string `gorm:"column:d2c_adoption;type:text"`
	PositiveFeedback    string `gorm:"type:text"`
	NegativeFeedback    string `gorm:"type:text"`

	Problems      string `gorm:"type:text"`
	Suggestions   string `gorm:"type:text"`
	Topics        string // comma separated
	StockCount    *int
	ReferenceLink string

	NextActions string `gorm:"type:text"`
	ActionOwner string
	ActionDate  string `gorm:"size:10"`

	Interested     *bool
	BenefitOfVisit string

	NextVisitDate    string `gorm:"size:10"`
	PreferredChannel string

	CreatedAt time.Time
}

func (Visit) TableName() string {
	return "visits"
}
