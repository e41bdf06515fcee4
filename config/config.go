package config

import (
	"flag"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/xykswap/ammrpc/internal/entity"
	"github.com/xykswap/ammrpc/internal/services/engine"
)

const defaultListen = ":8545"

// Config is the resolved service configuration.
type Config struct {
	Listen   string
	LogLevel string
	Pools    []engine.Pool
}

// configTmp mirrors the yaml file; amounts stay strings until parsed
// into decimals.
type configTmp struct {
	Listen   string    `yaml:"listen"`
	LogLevel string    `yaml:"log_level,omitempty"`
	Pools    []poolTmp `yaml:"pools"`
}

type poolTmp struct {
	Address  string `yaml:"address"`
	AssetA   uint32 `yaml:"asset_a"`
	AssetB   uint32 `yaml:"asset_b"`
	ReserveA string `yaml:"reserve_a"`
	ReserveB string `yaml:"reserve_b"`
}

// Get reads configuration from the yaml file named by --config, or
// falls back to flags for a single-pool setup.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	listen := flag.String("listen", defaultListen, "rpc listen address")
	flag.Parse()

	if *configPath != "" {
		return getYaml(*configPath)
	}

	return Config{Listen: *listen, LogLevel: "info"}, nil
}

func getYaml(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(f)
}

// Parse decodes and validates yaml config bytes.
func Parse(data []byte) (Config, error) {
	var tmp configTmp
	if err := yaml.Unmarshal(data, &tmp); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal yaml config")
	}

	cfg := Config{
		Listen:   tmp.Listen,
		LogLevel: tmp.LogLevel,
	}
	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	for i, p := range tmp.Pools {
		pool, err := parsePool(p)
		if err != nil {
			return Config{}, errors.Wrapf(err, "incorrect pool #%d in yaml config", i)
		}
		cfg.Pools = append(cfg.Pools, pool)
	}

	return cfg, nil
}

func parsePool(p poolTmp) (engine.Pool, error) {
	if !common.IsHexAddress(p.Address) {
		return engine.Pool{}, errors.Errorf("invalid 'address' param: %s", p.Address)
	}
	if p.AssetA == p.AssetB {
		return engine.Pool{}, errors.Errorf("'asset_a' and 'asset_b' must differ, got %d", p.AssetA)
	}

	reserveA, err := decimal.NewFromString(p.ReserveA)
	if err != nil {
		return engine.Pool{}, errors.Wrap(err, "incorrect 'reserve_a' param")
	}
	reserveB, err := decimal.NewFromString(p.ReserveB)
	if err != nil {
		return engine.Pool{}, errors.Wrap(err, "incorrect 'reserve_b' param")
	}
	if reserveA.Sign() <= 0 || reserveB.Sign() <= 0 {
		return engine.Pool{}, errors.New("pool reserves must be positive")
	}

	return engine.Pool{
		Address:  common.HexToAddress(p.Address),
		AssetA:   entity.AssetID(p.AssetA),
		AssetB:   entity.AssetID(p.AssetB),
		ReserveA: reserveA,
		ReserveB: reserveB,
	}, nil
}
