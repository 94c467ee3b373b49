package dataset

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSnapshot(t *testing.T) {
	snap, err := LoadSnapshot(filepath.Join("testdata", "inventory.csv"), filepath.Join("testdata", "recipients.csv"))
	require.NoError(t, err)
	require.Len(t, snap.Items, 3)
	require.Len(t, snap.Recipients, 2)

	milk := snap.Items[0]
	assert.Equal(t, "PROD-1001", milk.ID)
	assert.Equal(t, "Milk", milk.Name)
	assert.Equal(t, "Dairy", milk.Category)
	assert.Equal(t, "Refrigerated", milk.StorageType)
	assert.Equal(t, 28.6139, milk.Coordinates.Lat)
	assert.Equal(t, 4.2, milk.Temperature)
	assert.Equal(t, 81.5, milk.Humidity)
	assert.Equal(t, time.Date(2024, 6, 20, 8, 30, 0, 123456000, time.UTC), milk.ExpiryDate)

	meat := snap.Items[1]
	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), meat.StockDate)

	rice := snap.Items[2]
	assert.Zero(t, rice.Temperature)
	assert.Zero(t, rice.WeightKg)

	assert.Equal(t, []string{"Dairy", "Meat", "Bakery"}, snap.Recipients[0].AcceptedCategories)
	assert.Equal(t, []string{"Fruit", "Vegetable", "Pantry"}, snap.Recipients[1].AcceptedCategories)
	assert.Equal(t, 80.0, snap.Recipients[1].CapacityKg)
}

func TestReadInventoryMissingColumn(t *testing.T) {
	_, err := ReadInventory(strings.NewReader("product_id,category,stock_date\np1,Dairy,2024-06-01\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.ErrorContains(t, err, "expiry_date")

	_, err = ReadRecipients(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadInventoryBadValues(t *testing.T) {
	header := "product_id,category,stock_date,expiry_date,latitude,longitude,weight_kg\n"

	_, err := ReadInventory(strings.NewReader(header + "p1,Dairy,01/06/2024,2024-06-10,28.6,77.2,\n"))
	assert.ErrorContains(t, err, "line 2")
	assert.ErrorContains(t, err, "stock_date")

	_, err = ReadInventory(strings.NewReader(header + "p1,Dairy,2024-06-01,2024-06-10,north,77.2,\n"))
	assert.ErrorContains(t, err, "latitude")

	_, err = ReadInventory(strings.NewReader(header + ",Dairy,2024-06-01,2024-06-10,28.6,77.2,\n"))
	assert.ErrorContains(t, err, "id is required")

	items, err := ReadInventory(strings.NewReader(header + "p1,Dairy,2024-06-01,2024-06-10,28.6,77.2,12.5\n"))
	require.NoError(t, err)
	assert.Equal(t, 12.5, items[0].WeightKg)
}

func TestReadRecipientsValidation(t *testing.T) {
	header := "ngo_id,latitude,longitude,capacity_kg,accepted_categories\n"
	_, err := ReadRecipients(strings.NewReader(header + "n1,28.6,77.2,100,\n"))
	assert.ErrorContains(t, err, "no accepted categories")

	_, err = ReadRecipients(strings.NewReader(header + "n1,28.6,77.2,lots,Dairy\n"))
	assert.ErrorContains(t, err, "capacity_kg")
}

func TestHeaderNormalisation(t *testing.T) {
	in := "\ufeffNGO_ID, Latitude,longitude,capacity_kg,accepted_categories\nn1,28.6,77.2,100,Dairy\n"
	recs, err := ReadRecipients(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "n1", recs[0].ID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadInventory(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
