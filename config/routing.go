package config

import (
	"fmt"

	"github.com/ishantk2507/ZeroWasteAI/core/engine"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
	"github.com/ishantk2507/ZeroWasteAI/core/routing"
)

// RoutingConfig holds the depot and fleet used for route planning.
type RoutingConfig struct {
	DepotID             string            `json:"depot_id"`
	Depot               model.Coordinates `json:"depot"`
	DefaultItemWeightKg float64           `json:"default_item_weight_kg"`
	PlanThreshold       float64           `json:"plan_threshold"`
	Vehicles            []routing.Vehicle `json:"vehicles"`
}

// SetDefaults fills the depot id, item weight, plan threshold and fleet.
// A depot left at 0,0 is kept since it is a valid position.
func (c *RoutingConfig) SetDefaults() {
	if c.DepotID == "" {
		c.DepotID = "depot"
	}
	if c.DefaultItemWeightKg <= 0 {
		c.DefaultItemWeightKg = 10
	}
	if c.PlanThreshold <= 0 {
		c.PlanThreshold = engine.DefaultPlanThreshold
	}
	if len(c.Vehicles) == 0 {
		c.Vehicles = routing.DefaultVehicles()
	}
}

// Validate checks the depot position and every vehicle.
func (c RoutingConfig) Validate() error {
	if c.Depot.Lat < -90 || c.Depot.Lat > 90 || c.Depot.Lon < -180 || c.Depot.Lon > 180 {
		return fmt.Errorf("depot %v out of range", c.Depot)
	}
	if c.PlanThreshold > 1 {
		return fmt.Errorf("plan_threshold must be at most 1")
	}
	seen := make(map[string]bool, len(c.Vehicles))
	for _, v := range c.Vehicles {
		if err := v.Validate(); err != nil {
			return err
		}
		if seen[v.Type] {
			return fmt.Errorf("duplicate vehicle type %s", v.Type)
		}
		seen[v.Type] = true
	}
	return nil
}

// DataConfig locates the CSV inputs.
type DataConfig struct {
	InventoryPath  string `json:"inventory_path"`
	RecipientsPath string `json:"recipients_path"`
}

// SetDefaults points at the bundled sample files.
func (c *DataConfig) SetDefaults() {
	if c.InventoryPath == "" {
		c.InventoryPath = "data/inventory.csv"
	}
	if c.RecipientsPath == "" {
		c.RecipientsPath = "data/recipients.csv"
	}
}
