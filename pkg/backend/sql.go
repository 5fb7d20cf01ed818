package backend

import (
	"context"
	"strings"

	"github.com/ajans/visit-form/pkg/db"
	"github.com/ajans/visit-form/pkg/model"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// sqlBackend keeps dealers and visits in a relational database through
// gorm. It stores every field of both variants.
type sqlBackend struct {
	db      db.Database
	variant model.Variant
	newID   func() string
}

func NewSQL(database db.Database, variant model.Variant) Backend {
	return &sqlBackend{
		db:      database,
		variant: variant,
		newID:   uuid.NewString,
	}
}

func (b *sqlBackend) Name() string {
	return KindSQL
}

func (b *sqlBackend) ListDealers(ctx context.Context) ([]model.Dealer, error) {
	rows, err := b.db.ListDealers(ctx)
	if err != nil {
		return nil, err
	}

	dealers := make([]model.Dealer, len(rows))
	for i, r := range rows {
		dealers[i] = model.Dealer{Code: r.Code, Name: r.Name}
	}
	return dealers, nil
}

func (b *sqlBackend) Submit(ctx context.Context, rec model.VisitRecord) error {
	v := toVisit(b.newID(), rec, b.variant)
	if err := b.db.InsertVisit(ctx, v); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"id":     v.ID,
		"dealer": v.DealerCode,
	}).Debug("visit stored")
	return nil
}

func (b *sqlBackend) Close() error {
	return b.db.Close()
}

func toVisit(id string, rec model.VisitRecord, variant model.Variant) *db.Visit {
	return &db.Visit{
		ID:                  id,
		Variant:             string(variant),
		Date:                rec.Date.String(),
		DealerCode:          rec.DealerCode,
		DealerName:          rec.DealerName,
		DealerSPOC:          rec.DealerSPOC,
		VisitType:           rec.VisitType,
		Visitor:             rec.Visitor,
		AppOverview:         rec.AppOverview,
		FlashSale:           rec.FlashSale,
		ShowroomPerformance: rec.ShowroomPerformance,
		SwiftAdoption:       rec.SwiftAdoption,
		DirectLending:       rec.DirectLending,
		CarSharing:          rec.CarSharing,
		D2CAdoption:         rec.D2CAdoption,
		PositiveFeedback:    rec.PositiveFeedback,
		NegativeFeedback:    rec.NegativeFeedback,
		Problems:            rec.Problems,
		Suggestions:         rec.Suggestions,
		Topics:              strings.Join(rec.Topics, TopicSeparator),
		StockCount:          rec.StockCount,
		ReferenceLink:       rec.ReferenceLink,
		NextActions:         rec.NextActions,
		ActionOwner:         rec.ActionOwner,
		ActionDate:          rec.ActionDate.String(),
		Interested:          rec.Interested,
		BenefitOfVisit:      rec.BenefitOfVisit,
		NextVisitDate:       rec.NextVisitDate.String(),
		PreferredChannel:    rec.PreferredChannel,
	}
}
