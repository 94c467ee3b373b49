package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type store struct {
	Path    string
	Retries int
}

type storeConf struct {
	Path    string `json:"path"`
	Retries int    `json:"retries"`
}

func newStoreRegistry(t *testing.T) *Registry[*store] {
	t.Helper()
	reg := NewRegistry[*store]()
	require.NoError(t, reg.Register("sqlite", func(conf map[string]any) (*store, error) {
		var c storeConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &store{Path: c.Path, Retries: c.Retries}, nil
	}))
	return reg
}

func TestRegistryCreate(t *testing.T) {
	reg := newStoreRegistry(t)
	inst, err := reg.Create(ModuleConfig{Type: "sqlite", Conf: map[string]any{"path": "kpi.db", "retries": 3}})
	require.NoError(t, err)
	assert.Equal(t, "kpi.db", inst.Path)
	assert.Equal(t, 3, inst.Retries)
}

func TestDecodeWeaklyTyped(t *testing.T) {
	var c storeConf
	require.NoError(t, Decode(map[string]any{"retries": "5"}, &c))
	assert.Equal(t, 5, c.Retries)
}

func TestRegistryErrors(t *testing.T) {
	reg := newStoreRegistry(t)
	assert.Error(t, reg.Register("sqlite", func(map[string]any) (*store, error) { return nil, nil }))
	assert.Error(t, reg.Register("other", nil))

	_, err := reg.Create(ModuleConfig{Type: "redis"})
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestRegistryTypes(t *testing.T) {
	reg := newStoreRegistry(t)
	require.NoError(t, reg.Register("memory", func(map[string]any) (*store, error) { return &store{}, nil }))
	assert.Equal(t, []string{"memory", "sqlite"}, reg.Types())
}
