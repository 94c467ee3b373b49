package kpi

import (
	"io"

	"github.com/ishantk2507/ZeroWasteAI/core/metrics/eco"
)

// Closer is a Store holding an external resource.
type Closer interface {
	eco.Store
	io.Closer
}

// Open picks the backend for the given settings. A Redis address wins over
// a SQLite path; with neither it returns (nil, nil).
func Open(sqlitePath, redisAddr string) (Closer, error) {
	switch {
	case redisAddr != "":
		return NewRedisStore(redisAddr)
	case sqlitePath != "":
		return NewSQLiteStore(sqlitePath)
	}
	return nil, nil
}
