package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xykswap/ammrpc/internal/entity"
)

func TestParse(t *testing.T) {
	yml := `
listen: ":9000"
log_level: debug
pools:
  - address: "0x00000000000000000000000000000000000000aa"
    asset_a: 1
    asset_b: 2
    reserve_a: "1000000"
    reserve_b: "2000000.5"
`
	cfg, err := Parse([]byte(yml))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "debug", cfg.LogLevel)
	require.Len(t, cfg.Pools, 1)

	pool := cfg.Pools[0]
	assert.Equal(t, entity.AssetID(1), pool.AssetA)
	assert.Equal(t, entity.AssetID(2), pool.AssetB)
	assert.Equal(t, "1000000", pool.ReserveA.String())
	assert.Equal(t, "2000000.5", pool.ReserveB.String())
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(`pools: []`))
	require.NoError(t, err)
	assert.Equal(t, defaultListen, cfg.Listen)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Pools)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{
			name: "bad address",
			yml: `
pools:
  - address: "not-an-address"
    asset_a: 1
    asset_b: 2
    reserve_a: "10"
    reserve_b: "10"
`,
		},
		{
			name: "same asset twice",
			yml: `
pools:
  - address: "0x00000000000000000000000000000000000000aa"
    asset_a: 1
    asset_b: 1
    reserve_a: "10"
    reserve_b: "10"
`,
		},
		{
			name: "non-numeric reserve",
			yml: `
pools:
  - address: "0x00000000000000000000000000000000000000aa"
    asset_a: 1
    asset_b: 2
    reserve_a: "lots"
    reserve_b: "10"
`,
		},
		{
			name: "zero reserve",
			yml: `
pools:
  - address: "0x00000000000000000000000000000000000000aa"
    asset_a: 1
    asset_b: 2
    reserve_a: "0"
    reserve_b: "10"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yml))
			assert.Error(t, err)
		})
	}
}
