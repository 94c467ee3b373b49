package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ishantk2507/ZeroWasteAI/core/metrics/eco"
	"github.com/ishantk2507/ZeroWasteAI/infra/kpi"
	"github.com/ishantk2507/ZeroWasteAI/jobs/ecokpi"
)

var (
	kpiDays     int
	kpiBackfill bool
)

// kpiRow is one day of recipient KPIs.
type kpiRow struct {
	Date          string  `json:"date"`
	Deliveries    int     `json:"deliveries"`
	DistanceKm    float64 `json:"distance_km"`
	CO2SavedKg    float64 `json:"co2_saved_kg"`
	AvgDistanceKm float64 `json:"avg_distance_km"`
	CO2PerKm      float64 `json:"co2_per_km"`
}

var kpiCmd = &cobra.Command{
	Use:   "kpi <recipient-id>",
	Short: "Show daily delivery KPIs of a recipient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, snap, err := newService()
		if err != nil {
			return err
		}
		defer closeService(svc)
		mc := svc.Config().Metrics
		store, err := kpi.Open(mc.EcoSQLitePath, mc.EcoRedisAddr)
		if err != nil {
			return err
		}
		if store == nil {
			return fmt.Errorf("metrics.eco_sqlite_path or metrics.eco_redis_addr must be configured")
		}
		defer func() {
			if err := store.Close(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "close kpi store: %v\n", err)
			}
		}()

		now := time.Now()
		if kpiBackfill {
			plan := svc.PlanRoutes(cmd.Context(), snap)
			n, err := ecokpi.Backfill(store, plan.Routes, now)
			if err != nil {
				return fmt.Errorf("backfill: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "recorded %d deliveries from plan %s\n", n, plan.ID)
		}
		recs, err := store.Query(args[0], now.AddDate(0, 0, -kpiDays), now)
		if err != nil {
			return err
		}
		return printJSON(cmd, kpiRows(recs))
	},
}

func kpiRows(recs []eco.Record) []kpiRow {
	rows := make([]kpiRow, len(recs))
	for i, r := range recs {
		rows[i] = kpiRow{
			Date:          r.Date.Format("2006-01-02"),
			Deliveries:    r.Deliveries,
			DistanceKm:    r.DistanceKm,
			CO2SavedKg:    r.CO2SavedKg,
			AvgDistanceKm: r.AvgDistanceKm(),
			CO2PerKm:      r.CO2PerKm(),
		}
	}
	return rows
}

func init() {
	kpiCmd.Flags().IntVar(&kpiDays, "days", 30, "number of days to show")
	kpiCmd.Flags().BoolVar(&kpiBackfill, "backfill", false, "record the current route plan before querying")
	rootCmd.AddCommand(kpiCmd)
}
