// File: services/booking/categories.go
package booking

import "studiobook/models"

// Category is the exclusivity and point-charging unit. It is coarser than the
// slot type: hot yoga and hot pilates share the HOT bucket, hatha and mat
// pilates share MAT.
type Category string

const (
	CategoryHot      Category = "HOT"
	CategoryMat      Category = "MAT"
	CategoryReformer Category = "REFORMER"
)

// CategoryOrder is the display order for grouped class listings.
var CategoryOrder = []Category{CategoryHot, CategoryMat, CategoryReformer}

var categoryTypes = map[Category][]models.SlotType{
	CategoryHot:      {models.SlotTypeHotYoga, models.SlotTypeHotPilates},
	CategoryMat:      {models.SlotTypeHatha, models.SlotTypeMat},
	CategoryReformer: {models.SlotTypeReformer},
}

// CategoryTitles maps categories to their listing headings.
var CategoryTitles = map[Category]string{
	CategoryHot:      "Hot Yoga / Hot Pilates",
	CategoryMat:      "Hatha Yoga / Mat Pilates",
	CategoryReformer: "Reformer Pilates",
}

// CategoryOf maps a slot type to its category. The second return is false for
// unknown types, which are never bookable through the category checks.
func CategoryOf(t models.SlotType) (Category, bool) {
	for cat, types := range categoryTypes {
		for _, st := range types {
			if st == t {
				return cat, true
			}
		}
	}
	return "", false
}

// TypesInCategory returns the slot types charged against a category.
func TypesInCategory(cat Category) []models.SlotType {
	return categoryTypes[cat]
}

// PointsFor returns the point counter a slot type draws from.
func PointsFor(t models.SlotType, balance models.PointBalance) int {
	switch t {
	case models.SlotTypeHotYoga, models.SlotTypeHotPilates:
		return balance.HotPoints
	case models.SlotTypeHatha, models.SlotTypeMat:
		return balance.MatPoints
	case models.SlotTypeReformer:
		return balance.ReformerPoints
	default:
		return 0
	}
}
