package eco

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps records in memory.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[time.Time]*Record
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]map[time.Time]*Record{}}
}

// Add merges r into the record of its recipient and day.
func (s *MemoryStore) Add(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[r.RecipientID] == nil {
		s.data[r.RecipientID] = map[time.Time]*Record{}
	}
	d := Day(r.Date)
	rec := s.data[r.RecipientID][d]
	if rec == nil {
		rec = &Record{RecipientID: r.RecipientID, Date: d}
		s.data[r.RecipientID][d] = rec
	}
	rec.Deliveries += r.Deliveries
	rec.DistanceKm += r.DistanceKm
	rec.CO2SavedKg += r.CO2SavedKg
	return nil
}

// Query returns records between start and end inclusive, oldest first.
func (s *MemoryStore) Query(recipientID string, start, end time.Time) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start = Day(start)
	end = Day(end)
	var res []Record
	for d, r := range s.data[recipientID] {
		if d.Before(start) || d.After(end) {
			continue
		}
		res = append(res, *r)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Date.Before(res[j].Date) })
	return res, nil
}
