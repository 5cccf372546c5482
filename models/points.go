package models

// PointBalance holds the per-category booking credits for one user. Decremented
// only by the server-side booking procedure upon confirmed booking.
type PointBalance struct {
	ReformerPoints  int `firestore:"reformerPoints" json:"reformerPoints"`
	MatPoints       int `firestore:"matPoints" json:"matPoints"`
	HotPoints       int `firestore:"hotPoints" json:"hotPoints"`
	NutritionPoints int `firestore:"nutritionPoints" json:"nutritionPoints"`
}

// Total sums all counters, used by the UI to surface the "out of points" prompt.
func (p PointBalance) Total() int {
	return p.ReformerPoints + p.MatPoints + p.HotPoints + p.NutritionPoints
}
