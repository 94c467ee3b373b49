package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecipientAccepts(t *testing.T) {
	r := Recipient{ID: "n1", AcceptedCategories: []string{CategoryDairy, CategoryBakery}}
	assert.True(t, r.Accepts(CategoryDairy))
	assert.False(t, r.Accepts("Dair"))
	assert.False(t, r.Accepts(CategoryMeat))
}

func TestRecipientValidate(t *testing.T) {
	if err := (Recipient{ID: "n1", AcceptedCategories: []string{"Fruit"}}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Recipient{ID: "n1", CapacityKg: -1, AcceptedCategories: []string{"Fruit"}}).Validate(); err == nil {
		t.Fatalf("expected capacity error")
	}
	if err := (Recipient{ID: "n1"}).Validate(); err == nil {
		t.Fatalf("expected categories error")
	}
}

func TestItemWeightFallback(t *testing.T) {
	assert.Equal(t, 10.0, InventoryItem{}.Weight(10))
	assert.Equal(t, 4.5, InventoryItem{WeightKg: 4.5}.Weight(10))
}

func TestRouteStopCount(t *testing.T) {
	r := Route{Stops: []RouteStop{
		{PointID: "depot", Kind: StopDepot},
		{PointID: "a", Kind: StopDelivery},
		{PointID: "b", Kind: StopDelivery},
		{PointID: "depot", Kind: StopDepot},
	}}
	assert.Equal(t, 3, r.StopCount())
	assert.Equal(t, 2, r.Deliveries())
	assert.Equal(t, []string{"depot", "a", "b", "depot"}, r.StopIDs())
	assert.Equal(t, 0, Route{}.StopCount())
}

func TestSnapshotFindItem(t *testing.T) {
	s := Snapshot{Items: []InventoryItem{{ID: "p1"}, {ID: "p2"}}}
	it, ok := s.FindItem("p2")
	assert.True(t, ok)
	assert.Equal(t, "p2", it.ID)
	_, ok = s.FindItem("p3")
	assert.False(t, ok)
}
