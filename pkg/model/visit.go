package model

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// Variant selects which form (and column layout) a deployment collects.
type Variant string

const (
	VariantWarehouse   Variant = "warehouse"
	VariantSpreadsheet Variant = "spreadsheet"
)

func (v Variant) IsValid() error {
	switch v {
	case VariantWarehouse, VariantSpreadsheet:
		return nil
	}

	return fmt.Errorf("invalid form variant %q", v)
}

// Option values stored in the backend. Labels shown to the user are
// localized separately.
const (
	VisitTypeFirst      = "زيارة أولى"
	VisitTypeFollowUp   = "زيارة متابعة"
	VisitTypeResolution = "زيارة حل مشكلة"

	BenefitHigh   = "عالية"
	BenefitMedium = "متوسطة"
	BenefitLow    = "منخفضة"

	ChannelWhatsApp = "WhatsApp"
	ChannelPhone    = "Phone Call"
	ChannelEmail    = "Email"

	Yes = "Yes"
	No  = "No"
)

var (
	VisitTypes = []string{VisitTypeFirst, VisitTypeFollowUp, VisitTypeResolution}
	Visitors   = []string{"Sadek", "Mostafa", "Mai", "Mohamed", "Yousif", "Mamdouh"}
	Benefits   = []string{BenefitHigh, BenefitMedium, BenefitLow}
	Channels   = []string{ChannelWhatsApp, ChannelPhone, ChannelEmail}
	Topics     = []string{"الأسعار", "الفحص", "المدفوعات", "النقل", "التطبيق"}
)

// YesNo renders an answer the way the spreadsheet stores it. An unanswered
// question is an empty cell.
func YesNo(b *bool) string {
	switch {
	case b == nil:
		return ""
	case *b:
		return Yes
	}
	return No
}

// VisitRecord is one submitted visit. It holds the union of the fields of
// both form variants; each backend writes the columns it knows about.
type VisitRecord struct {
	Date       civil.Date `json:"date"`
	DealerCode string     `json:"dealerCode"`
	DealerName string     `json:"dealerName"`
	DealerSPOC string     `json:"dealerSpoc,omitempty"`
	VisitType  string     `json:"visitType,omitempty"`
	Visitor    string     `json:"visitor"`

	AppOverview         string `json:"appOverview,omitempty"`
	FlashSale           string `json:"flashSale,omitempty"`
	ShowroomPerformance string `json:"showroomPerformance,omitempty"`
	SwiftAdoption       string `json:"swiftAdoption,omitempty"`
	DirectLending       string `json:"directLending,omitempty"`
	CarSharing          string `json:"carSharing,omitempty"`
	D2CAdoption         string `json:"d2cAdoption,omitempty"`
	PositiveFeedback    string `json:"positiveFeedback,omitempty"`
	NegativeFeedback    string `json:"negativeFeedback,omitempty"`

	Problems      string   `json:"problems,omitempty"`
	Suggestions   string   `json:"suggestions,omitempty"`
	Topics        []string `json:"topics,omitempty"`
	StockCount    *int     `json:"stockCount,omitempty"`
	ReferenceLink string   `json:"referenceLink,omitempty"`

	NextActions string     `json:"nextActions,omitempty"`
	ActionOwner string     `json:"actionOwner,omitempty"`
	ActionDate  civil.Date `json:"actionDate"`

	Interested     *bool  `json:"interested,omitempty"`
	BenefitOfVisit string `json:"benefitOfVisit,omitempty"`

	NextVisitDate    civil.Date `json:"nextVisitDate"`
	PreferredChannel string     `json:"preferredChannel,omitempty"`
}

// IsInterested reports a yes answer; no answer counts as no.
func (r VisitRecord) IsInterested() bool {
	return r.Interested != nil && *r.Interested
}
