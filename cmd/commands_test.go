package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishantk2507/ZeroWasteAI/core/metrics/eco"
	"github.com/ishantk2507/ZeroWasteAI/core/model"
	"github.com/ishantk2507/ZeroWasteAI/core/prediction"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	inv, err := filepath.Abs("../infra/dataset/testdata/inventory.csv")
	require.NoError(t, err)
	rec, err := filepath.Abs("../infra/dataset/testdata/recipients.csv")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "data:\n  inventory_path: " + inv + "\n  recipients_path: " + rec + "\nlogging:\n  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, args ...string) []byte {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--config", writeConfig(t)}, args...))
	require.NoError(t, rootCmd.Execute())
	return out.Bytes()
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, n := range []string{"match", "evaluate", "candidates", "plan", "route", "assign", "risk", "kpi", "serve"} {
		assert.True(t, names[n], n)
	}
}

func TestCandidatesCommandPrintsJSON(t *testing.T) {
	out := execute(t, "candidates", "--max-level", "good")
	var rep struct {
		Candidates []json.RawMessage `json:"candidates"`
		Summary    struct {
			Total int `json:"total_candidates"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(out, &rep))
	assert.Len(t, rep.Candidates, rep.Summary.Total)
	assert.Equal(t, 3, rep.Summary.Total)
}

func TestRiskCommandForItem(t *testing.T) {
	out := execute(t, "risk", "PROD-1002")
	var a prediction.Analysis
	require.NoError(t, json.Unmarshal(out, &a))
	assert.Equal(t, "PROD-1002", a.ItemID)
	assert.NotEmpty(t, a.Recommendations)
}

func TestRiskReportOrdersByRisk(t *testing.T) {
	items := []model.InventoryItem{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	risk := map[string]float64{"a": 0.2, "b": 0.9, "c": 0.5}
	analyze := func(it model.InventoryItem) prediction.Analysis {
		return prediction.Analysis{ItemID: it.ID, OverallRisk: risk[it.ID]}
	}
	got := riskReport(analyze, items, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ItemID)
	assert.Equal(t, "c", got[1].ItemID)
}

func TestPlanCommandCSV(t *testing.T) {
	out := execute(t, "plan", "--format", "csv", "--threshold", "0")
	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	require.NotEmpty(t, lines)
	assert.Equal(t, "item_id,product_name,category,priority_score,ngo_id,ngo_name,distance_km,co2_savings_kg", string(lines[0]))
	planFormat = "json"
}

func TestKPIRows(t *testing.T) {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	rows := kpiRows([]eco.Record{{RecipientID: "n1", Date: day, Deliveries: 2, DistanceKm: 20, CO2SavedKg: 4}})
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-06-15", rows[0].Date)
	assert.Equal(t, 10.0, rows[0].AvgDistanceKm)
	assert.Equal(t, 0.2, rows[0].CO2PerKm)
}
