package prediction

import "github.com/ishantk2507/ZeroWasteAI/core/model"

// Features is the input vector passed to a RiskEstimator.
type Features struct {
	Temperature     float64
	Humidity        float64
	DaysUntilExpiry int
	CategoryCode    int
	StorageCode     int
}

// RiskEstimator returns the probability [0,1] that an item spoils before it
// can be redistributed.
type RiskEstimator interface {
	PredictRisk(f Features) (float64, error)
}

// FeaturesFor builds the estimator input for item.
func FeaturesFor(item model.InventoryItem, daysUntilExpiry int) Features {
	return Features{
		Temperature:     item.Temperature,
		Humidity:        item.Humidity,
		DaysUntilExpiry: daysUntilExpiry,
		CategoryCode:    CategoryCode(item.Category),
		StorageCode:     StorageCode(item.StorageType),
	}
}

var categoryCodes = []string{
	model.CategoryDairy, model.CategoryMeat, model.CategorySeafood, model.CategoryBakery,
	model.CategoryFruit, model.CategoryVegetable, model.CategoryFrozenDessert, model.CategoryPantry,
}

var storageCodes = []string{model.StorageAmbient, model.StorageRefrigerated, model.StorageFrozen}

// CategoryCode returns the numeric code of a category or -1.
func CategoryCode(category string) int { return indexOf(categoryCodes, category) }

// StorageCode returns the numeric code of a storage type or -1.
func StorageCode(storage string) int { return indexOf(storageCodes, storage) }

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
