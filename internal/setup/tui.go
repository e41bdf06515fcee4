// Package setup provides the terminal wizard that writes a starter
// config file for the rpc service.
package setup

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/xykswap/ammrpc/config"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// fileConfig mirrors the yaml schema consumed by config.Parse.
type fileConfig struct {
	Listen   string     `yaml:"listen"`
	LogLevel string     `yaml:"log_level"`
	Pools    []filePool `yaml:"pools"`
}

type filePool struct {
	Address  string `yaml:"address"`
	AssetA   uint32 `yaml:"asset_a"`
	AssetB   uint32 `yaml:"asset_b"`
	ReserveA string `yaml:"reserve_a"`
	ReserveB string `yaml:"reserve_b"`
}

// RunTUI launches the configuration wizard and writes config.gen.yaml.
func RunTUI() error {
	var (
		listen      string
		logLevel    string
		poolAddress string
		assetAStr   string
		assetBStr   string
		reserveA    string
		reserveB    string
		confirm     bool
	)

	// defaults
	listen = ":8545"
	logLevel = "info"
	assetAStr = "1"
	assetBStr = "2"
	reserveA = "1000000"
	reserveB = "2000000"

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("AMM RPC CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Set up the query endpoint and its first pool.\n"))

	fmt.Println(stepStyle.Render("STEP 1: ENDPOINT"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Listen Address").
				Description("host:port the rpc endpoint binds to").
				Value(&listen).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("listen address cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Log Level").
				Options(
					huh.NewOption("info", "info"),
					huh.NewOption("debug", "debug"),
				).
				Value(&logLevel),
		),
	).Run()
	if err != nil {
		return err
	}

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("AMM RPC CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: SEED POOL"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Pool Address").
				Description("hex account address (0x...)").
				Value(&poolAddress).
				Validate(func(s string) error {
					if !common.IsHexAddress(s) {
						return fmt.Errorf("must be a 20-byte hex address")
					}
					return nil
				}),
			huh.NewInput().
				Title("Asset A id").
				Value(&assetAStr).
				Validate(validateAssetID),
			huh.NewInput().
				Title("Asset B id").
				Value(&assetBStr).
				Validate(validateAssetID),
			huh.NewInput().
				Title("Reserve of Asset A").
				Description("decimal amount, e.g. 1000000").
				Value(&reserveA).
				Validate(validateReserve),
			huh.NewInput().
				Title("Reserve of Asset B").
				Value(&reserveB).
				Validate(validateReserve),
		),
	).Run()
	if err != nil {
		return err
	}

	// confirmation
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("AMM RPC CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Listen: %s\nPool: %s\nAssets: %s / %s\nReserves: %s / %s\n",
		listen, poolAddress, assetAStr, assetBStr, reserveA, reserveB,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	assetA, _ := strconv.ParseUint(assetAStr, 10, 32)
	assetB, _ := strconv.ParseUint(assetBStr, 10, 32)
	fc := fileConfig{
		Listen:   listen,
		LogLevel: logLevel,
		Pools: []filePool{{
			Address:  poolAddress,
			AssetA:   uint32(assetA),
			AssetB:   uint32(assetB),
			ReserveA: reserveA,
			ReserveB: reserveB,
		}},
	}

	data, err := yaml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}
	// sanity check through the same parser the service uses
	if _, err := config.Parse(data); err != nil {
		return fmt.Errorf("generated config failed validation: %w", err)
	}

	filename := "config.gen.yaml"
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(
		fmt.Sprintf("\n✓ Configuration saved to %s\nStart with: ammrpc --config %s", filename, filename)))
	return nil
}

func validateAssetID(s string) error {
	if _, err := strconv.ParseUint(s, 10, 32); err != nil {
		return fmt.Errorf("must be an unsigned integer asset id")
	}
	return nil
}

func validateReserve(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if d.Sign() <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}
