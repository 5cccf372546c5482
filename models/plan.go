package models

import "time"

// PlanCategory groups purchasable plans; FITMAX bundles cross-category grants.
type PlanCategory string

const (
	PlanCategoryReformer PlanCategory = "REFORMER"
	PlanCategoryMat      PlanCategory = "MAT"
	PlanCategoryHot      PlanCategory = "HOT"
	PlanCategoryFitmax   PlanCategory = "FITMAX"
)

// Plan is a purchasable point bundle. DurationDays of 0 or 1 denotes a
// single-use plan; otherwise 30/45/90/180.
type Plan struct {
	ID               string       `firestore:"-" json:"id"`
	Name             string       `firestore:"name" json:"name"`
	Code             string       `firestore:"code" json:"code"`
	Category         PlanCategory `firestore:"category" json:"category"`
	ReformerPoints   int          `firestore:"reformerPoints" json:"reformerPoints"`
	MatPoints        int          `firestore:"matPoints" json:"matPoints"`
	HotYogaPoints    int          `firestore:"hotYogaPoints" json:"hotYogaPoints"`
	HotPilatesPoints int          `firestore:"hotPilatesPoints" json:"hotPilatesPoints"`
	DurationDays     int          `firestore:"durationDays" json:"durationDays"`
	Price            float64      `firestore:"price" json:"price"`
	Description      string       `firestore:"description" json:"description"`
	Popular          bool         `firestore:"popular" json:"popular,omitempty"`
	BestValue        bool         `firestore:"bestValue" json:"bestValue,omitempty"`
	Active           bool         `firestore:"active" json:"active"`
	CreatedAt        time.Time    `firestore:"createdAt" json:"createdAt,omitempty"`
}

// PlanGroup is one catalog section.
type PlanGroup struct {
	Category PlanCategory `json:"category"`
	Plans    []Plan       `json:"plans"`
}
