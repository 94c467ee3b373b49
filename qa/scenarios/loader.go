package scenarios

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ishantk2507/ZeroWasteAI/core/model"
)

const dateLayout = "2006-01-02"

// ItemDef is an inventory item with dates relative to the scenario clock.
type ItemDef struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Category    string  `yaml:"category"`
	StockDays   int     `yaml:"stock_days"`  // offset from now, usually negative
	ExpiryDays  int     `yaml:"expiry_days"` // offset from now
	Storage     string  `yaml:"storage"`
	Lat         float64 `yaml:"lat"`
	Lon         float64 `yaml:"lon"`
	Temperature float64 `yaml:"temperature"`
	Humidity    float64 `yaml:"humidity"`
	WeightKg    float64 `yaml:"weight_kg"`
}

func (d ItemDef) ToModel(now time.Time) model.InventoryItem {
	name := d.Name
	if name == "" {
		name = d.ID
	}
	return model.InventoryItem{
		ID:          d.ID,
		Name:        name,
		Category:    d.Category,
		StockDate:   now.AddDate(0, 0, d.StockDays),
		ExpiryDate:  now.AddDate(0, 0, d.ExpiryDays),
		StorageType: d.Storage,
		Coordinates: model.Coordinates{Lat: d.Lat, Lon: d.Lon},
		Temperature: d.Temperature,
		Humidity:    d.Humidity,
		WeightKg:    d.WeightKg,
	}
}

type RecipientDef struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Lat        float64  `yaml:"lat"`
	Lon        float64  `yaml:"lon"`
	CapacityKg float64  `yaml:"capacity_kg"`
	Categories []string `yaml:"categories"`
}

func (d RecipientDef) ToModel() model.Recipient {
	return model.Recipient{
		ID:                 d.ID,
		Name:               d.Name,
		Coordinates:        model.Coordinates{Lat: d.Lat, Lon: d.Lon},
		CapacityKg:         d.CapacityKg,
		AcceptedCategories: d.Categories,
	}
}

type Expected struct {
	Statuses map[string]string `yaml:"statuses"`
	Matched  int               `yaml:"matched"`
	Plan     []string          `yaml:"plan"`
	Routes   int               `yaml:"routes"`
	Vehicles []string          `yaml:"vehicles,omitempty"`
	Unserved []string          `yaml:"unserved,omitempty"`
}

type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Now         string         `yaml:"now"`
	Depot       [2]float64     `yaml:"depot"`
	Items       []ItemDef      `yaml:"items"`
	Recipients  []RecipientDef `yaml:"recipients"`
	Expected    Expected       `yaml:"expected"`
}

// Clock returns the scenario reference time.
func (s *Scenario) Clock() (time.Time, error) {
	t, err := time.Parse(dateLayout, s.Now)
	if err != nil {
		return time.Time{}, fmt.Errorf("scenario %s: now: %w", s.Name, err)
	}
	return t.Add(9 * time.Hour), nil
}

// Snapshot builds the model snapshot relative to now.
func (s *Scenario) Snapshot(now time.Time) model.Snapshot {
	snap := model.Snapshot{
		Items:      make([]model.InventoryItem, len(s.Items)),
		Recipients: make([]model.Recipient, len(s.Recipients)),
	}
	for i, it := range s.Items {
		snap.Items[i] = it.ToModel(now)
	}
	for i, r := range s.Recipients {
		snap.Recipients[i] = r.ToModel()
	}
	return snap
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
