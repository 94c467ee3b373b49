package cmd

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ishantk2507/ZeroWasteAI/core/engine"
	"github.com/ishantk2507/ZeroWasteAI/core/freshness"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
	"github.com/ishantk2507/ZeroWasteAI/core/prediction"
	"github.com/ishantk2507/ZeroWasteAI/pkg/export"
)

var (
	maxLevel   string
	threshold  float64
	assignAll  bool
	workers    int
	showStats  bool
	riskAll    bool
	riskLimitN int
	planFormat string
)

var matchCmd = &cobra.Command{
	Use:   "match <item-id>",
	Short: "Match one inventory item to recipients",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, snap, err := newService()
		if err != nil {
			return err
		}
		defer closeService(svc)
		svc.Start(cmd.Context())
		return printJSON(cmd, svc.EvaluateItem(cmd.Context(), snap, args[0]))
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate every item and print the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, snap, err := newService()
		if err != nil {
			return err
		}
		defer closeService(svc)
		svc.Start(cmd.Context())
		results := svc.EvaluateAll(cmd.Context(), snap, workers)
		if showStats {
			return printJSON(cmd, svc.Stats())
		}
		return printJSON(cmd, results)
	},
}

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List items that need redistribution",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, ok := freshness.ParseLevel(maxLevel)
		if !ok {
			return fmt.Errorf("unknown level %q", maxLevel)
		}
		svc, snap, err := newService()
		if err != nil {
			return err
		}
		defer closeService(svc)
		return printJSON(cmd, svc.Engine().Candidates(snap, level))
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a prioritised redistribution plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		if threshold < 0 || threshold > 1 {
			return fmt.Errorf("threshold must be within [0,1]")
		}
		svc, snap, err := newService()
		if err != nil {
			return err
		}
		defer closeService(svc)
		minPriority := svc.PlanThreshold()
		if cmd.Flags().Changed("threshold") {
			minPriority = threshold
		}
		plan := svc.Engine().Plan(snap, minPriority)
		switch planFormat {
		case "json":
			return printJSON(cmd, plan)
		case "entries":
			return export.WriteJSON(cmd.OutOrStdout(), plan.Entries)
		case "csv":
			return export.WriteCSV(cmd.OutOrStdout(), plan.Entries)
		default:
			return fmt.Errorf("unknown format %q", planFormat)
		}
	},
}

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Plan delivery routes for the redistribution plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, snap, err := newService()
		if err != nil {
			return err
		}
		defer closeService(svc)
		svc.Start(cmd.Context())
		return printJSON(cmd, svc.PlanRoutes(cmd.Context(), snap))
	},
}

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign items to recipients and vehicles",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, snap, err := newService()
		if err != nil {
			return err
		}
		defer closeService(svc)
		items := snap.Items
		if !assignAll {
			items = items[:0:0]
			for _, it := range snap.Items {
				if svc.Engine().Freshness(it).Level != freshness.LevelGood {
					items = append(items, it)
				}
			}
		}
		return printJSON(cmd, svc.Assign(items, snap.Recipients))
	},
}

var riskCmd = &cobra.Command{
	Use:   "risk [item-id]",
	Short: "Analyze spoilage risk",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, snap, err := newService()
		if err != nil {
			return err
		}
		defer closeService(svc)
		if len(args) == 1 {
			it, ok := snap.FindItem(args[0])
			if !ok {
				return fmt.Errorf("item %s not found", args[0])
			}
			return printJSON(cmd, svc.Engine().AnalyzeRisk(it))
		}
		if !riskAll {
			return fmt.Errorf("an item id or --all is required")
		}
		return printJSON(cmd, riskReport(svc.Engine().AnalyzeRisk, snap.Items, riskLimitN))
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the service until interrupted",
	RunE:  serve,
}

func init() {
	evaluateCmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "concurrent evaluators")
	evaluateCmd.Flags().BoolVar(&showStats, "stats", false, "print the accumulated statistics instead of results")
	candidatesCmd.Flags().StringVar(&maxLevel, "max-level", string(freshness.LevelWarning), "least urgent level to include")
	planCmd.Flags().StringVarP(&planFormat, "format", "f", "json", "output format: json, entries or csv")
	planCmd.Flags().Float64Var(&threshold, "threshold", engine.DefaultPlanThreshold, "minimum priority score, defaults to routing.plan_threshold")
	assignCmd.Flags().BoolVar(&assignAll, "all", false, "include items that need no action")
	riskCmd.Flags().BoolVar(&riskAll, "all", false, "analyze every item")
	riskCmd.Flags().IntVar(&riskLimitN, "limit", 0, "only print the n riskiest items")

	rootCmd.AddCommand(matchCmd, evaluateCmd, candidatesCmd, planCmd, routeCmd, assignCmd, riskCmd, serveCmd)
}

// riskReport analyzes items and orders them from highest to lowest risk.
// A positive limit keeps only the first limit entries.
func riskReport(analyze func(model.InventoryItem) prediction.Analysis, items []model.InventoryItem, limit int) []prediction.Analysis {
	out := make([]prediction.Analysis, 0, len(items))
	for _, it := range items {
		out = append(out, analyze(it))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OverallRisk > out[j].OverallRisk })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}
