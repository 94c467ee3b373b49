package model

import (
	"fmt"
	"time"
)

// Known inventory categories.
const (
	CategoryDairy         = "Dairy"
	CategoryMeat          = "Meat"
	CategorySeafood       = "Seafood"
	CategoryBakery        = "Bakery"
	CategoryFruit         = "Fruit"
	CategoryVegetable     = "Vegetable"
	CategoryFrozenDessert = "FrozenDessert"
	CategoryPantry        = "Pantry"
)

// Storage types reported by the inventory feed.
const (
	StorageAmbient      = "Ambient"
	StorageRefrigerated = "Refrigerated"
	StorageFrozen       = "Frozen"
)

// Coordinates is a WGS84 position in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// InventoryItem is a perishable product held in stock.
type InventoryItem struct {
	ID          string      `json:"product_id"`
	Name        string      `json:"product_name"`
	Category    string      `json:"category"`
	StockDate   time.Time   `json:"stock_date"`
	ExpiryDate  time.Time   `json:"expiry_date"`
	StorageType string      `json:"storage_type"`
	Location    string      `json:"location"`
	Coordinates Coordinates `json:"coordinates"`
	Temperature float64     `json:"temperature"` // storage temperature in Celsius
	Humidity    float64     `json:"humidity"`    // relative humidity in percent
	WeightKg    float64     `json:"weight_kg,omitempty"`
}

// Weight returns the item weight or fallback when unknown.
func (i InventoryItem) Weight(fallback float64) float64 {
	if i.WeightKg > 0 {
		return i.WeightKg
	}
	return fallback
}

// Validate checks the mandatory identity fields of the item.
func (i InventoryItem) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("item id is required")
	}
	if i.Category == "" {
		return fmt.Errorf("item %s: category is required", i.ID)
	}
	return nil
}

// Recipient is an organization able to receive redistributed food.
type Recipient struct {
	ID                 string      `json:"ngo_id"`
	Name               string      `json:"ngo_name"`
	Location           string      `json:"location"`
	Coordinates        Coordinates `json:"coordinates"`
	CapacityKg         float64     `json:"capacity_kg"`
	AcceptedCategories []string    `json:"accepted_categories"`
}

// Accepts reports whether category is one of the accepted categories.
func (r Recipient) Accepts(category string) bool {
	for _, c := range r.AcceptedCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Validate checks that the recipient can take part in matching.
func (r Recipient) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("recipient id is required")
	}
	if r.CapacityKg < 0 {
		return fmt.Errorf("recipient %s: negative capacity", r.ID)
	}
	if len(r.AcceptedCategories) == 0 {
		return fmt.Errorf("recipient %s: no accepted categories", r.ID)
	}
	return nil
}

// ConstraintProfile bounds redistribution for a category.
type ConstraintProfile struct {
	MaxDistanceKm float64 `json:"max_distance_km"`
	MinFreshness  float64 `json:"min_freshness"`
	MinDays       int     `json:"min_days"`
}

// Snapshot is the read-only dataset used for one evaluation pass.
type Snapshot struct {
	Items      []InventoryItem
	Recipients []Recipient
}

// FindItem returns the item with the given id.
func (s Snapshot) FindItem(id string) (InventoryItem, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return InventoryItem{}, false
}
