// Package export writes redistribution plans for downstream tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/ishantk2507/ZeroWasteAI/core/engine"
)

var csvHeader = []string{"item_id", "product_name", "category", "priority_score", "ngo_id", "ngo_name", "distance_km", "co2_savings_kg"}

// WriteJSON writes the plan entries to w in JSON format.
func WriteJSON(w io.Writer, entries []engine.PlanEntry) error {
	enc := json.NewEncoder(w)
	return enc.Encode(entries)
}

// WriteCSV writes the plan entries to w in CSV format, one row per item.
func WriteCSV(w io.Writer, entries []engine.PlanEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		rec := []string{
			e.ItemID,
			e.ProductName,
			e.Category,
			formatFloat(e.PriorityScore),
			e.BestMatch.RecipientID,
			e.BestMatch.RecipientName,
			formatFloat(e.BestMatch.DistanceKm),
			formatFloat(e.BestMatch.CO2SavingsKg),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
