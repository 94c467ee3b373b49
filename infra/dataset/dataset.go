// Package dataset loads inventory and recipient records from CSV files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ishantk2507/ZeroWasteAI/core/model"
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("missing column")

var (
	inventoryRequired = []string{"product_id", "category", "stock_date", "expiry_date", "latitude", "longitude"}
	recipientRequired = []string{"ngo_id", "latitude", "longitude", "capacity_kg", "accepted_categories"}
)

// dateLayouts are tried in order when parsing stock and expiry dates.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// LoadSnapshot reads both files into a Snapshot.
func LoadSnapshot(inventoryPath, recipientsPath string) (model.Snapshot, error) {
	items, err := LoadInventory(inventoryPath)
	if err != nil {
		return model.Snapshot{}, err
	}
	recipients, err := LoadRecipients(recipientsPath)
	if err != nil {
		return model.Snapshot{}, err
	}
	return model.Snapshot{Items: items, Recipients: recipients}, nil
}

// LoadInventory reads an inventory CSV file.
func LoadInventory(path string) ([]model.InventoryItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open inventory: %w", err)
	}
	defer func() { _ = f.Close() }()
	items, err := ReadInventory(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// LoadRecipients reads a recipients CSV file.
func LoadRecipients(path string) ([]model.Recipient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recipients: %w", err)
	}
	defer func() { _ = f.Close() }()
	recs, err := ReadRecipients(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// ReadInventory parses inventory rows. Besides the required columns it
// understands product_name, storage_type, location, temperature (or
// temperature_c), humidity (or humidity_percent) and weight_kg.
func ReadInventory(r io.Reader) ([]model.InventoryItem, error) {
	tbl, err := readTable(r, inventoryRequired)
	if err != nil {
		return nil, err
	}
	items := make([]model.InventoryItem, 0, len(tbl.rows))
	for i := range tbl.rows {
		row := tbl.row(i)
		var it model.InventoryItem
		it.ID = row.str("product_id")
		it.Name = row.str("product_name")
		it.Category = row.str("category")
		it.StorageType = row.str("storage_type")
		it.Location = row.str("location")
		if it.StockDate, err = row.date("stock_date"); err != nil {
			return nil, err
		}
		if it.ExpiryDate, err = row.date("expiry_date"); err != nil {
			return nil, err
		}
		if it.Coordinates, err = row.coordinates(); err != nil {
			return nil, err
		}
		if it.Temperature, err = row.optFloat("temperature", "temperature_c"); err != nil {
			return nil, err
		}
		if it.Humidity, err = row.optFloat("humidity", "humidity_percent"); err != nil {
			return nil, err
		}
		if it.WeightKg, err = row.optFloat("weight_kg"); err != nil {
			return nil, err
		}
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", row.line, err)
		}
		items = append(items, it)
	}
	return items, nil
}

// ReadRecipients parses recipient rows. accepted_categories is a
// "|"-separated list.
func ReadRecipients(r io.Reader) ([]model.Recipient, error) {
	tbl, err := readTable(r, recipientRequired)
	if err != nil {
		return nil, err
	}
	out := make([]model.Recipient, 0, len(tbl.rows))
	for i := range tbl.rows {
		row := tbl.row(i)
		var rec model.Recipient
		rec.ID = row.str("ngo_id")
		rec.Name = row.str("ngo_name")
		rec.Location = row.str("location")
		if rec.Coordinates, err = row.coordinates(); err != nil {
			return nil, err
		}
		if rec.CapacityKg, err = row.float("capacity_kg"); err != nil {
			return nil, err
		}
		rec.AcceptedCategories = splitCategories(row.str("accepted_categories"))
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", row.line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func splitCategories(s string) []string {
	var out []string
	for _, c := range strings.Split(s, "|") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

type table struct {
	cols map[string]int
	rows [][]string
}

func readTable(r io.Reader, required []string) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: %w", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return &table{cols: cols, rows: rows}, nil
}

type row struct {
	t    *table
	vals []string
	line int
}

func (t *table) row(i int) row { return row{t: t, vals: t.rows[i], line: i + 2} }

func (r row) str(col string) string {
	i, ok := r.t.cols[col]
	if !ok || i >= len(r.vals) {
		return ""
	}
	return strings.TrimSpace(r.vals[i])
}

func (r row) float(col string) (float64, error) {
	v, err := strconv.ParseFloat(r.str(col), 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: %w", r.line, col, err)
	}
	return v, nil
}

// optFloat returns the first non-empty column among cols, or 0.
func (r row) optFloat(cols ...string) (float64, error) {
	for _, c := range cols {
		if r.str(c) != "" {
			return r.float(c)
		}
	}
	return 0, nil
}

func (r row) date(col string) (time.Time, error) {
	s := r.str(col)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("line %d: %s: unrecognised date %q", r.line, col, s)
}

func (r row) coordinates() (model.Coordinates, error) {
	lat, err := r.float("latitude")
	if err != nil {
		return model.Coordinates{}, err
	}
	lon, err := r.float("longitude")
	if err != nil {
		return model.Coordinates{}, err
	}
	return model.Coordinates{Lat: lat, Lon: lon}, nil
}
