// Package config loads the sale definition file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/holiman/uint256"
	"gopkg.in/yaml.v3"

	"github.com/goodnatureofminers/saleledger/internal/sale/engine"
	"github.com/goodnatureofminers/saleledger/internal/sale/model"
	"github.com/goodnatureofminers/saleledger/pkg/safe"
)

// SaleFile mirrors the YAML sale definition. Amounts are decimal strings or
// exponent forms such as "2e26"; times are RFC3339.
type SaleFile struct {
	Sale   string `yaml:"sale"`
	Issuer string `yaml:"issuer"`
	Wallet string `yaml:"wallet"`
	// Holder is the ledger account holding the unsold supply. Defaults to
	// "sale:<sale>".
	Holder              string      `yaml:"holder"`
	Supply              string      `yaml:"supply"`
	Rate                string      `yaml:"rate"`
	IssuerRefundAnyTime bool        `yaml:"issuer_refund_any_time"`
	Phases              []PhaseFile `yaml:"phases"`
}

type PhaseFile struct {
	Opening         string `yaml:"opening"`
	Closing         string `yaml:"closing"`
	MinContribution string `yaml:"min_contribution"`
	Deferred        bool   `yaml:"deferred"`
	// Rate overrides the sale-wide rate for this phase.
	Rate string `yaml:"rate"`
}

// Sale is a parsed sale definition.
type Sale struct {
	Engine engine.Config
	Holder model.Account
	Supply *uint256.Int
}

// LoadSaleFile reads and parses the sale definition at path.
func LoadSaleFile(path string) (Sale, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Sale{}, fmt.Errorf("read sale file %s: %w", path, err)
	}
	sale, err := ParseSale(content)
	if err != nil {
		return Sale{}, fmt.Errorf("sale file %s: %w", path, err)
	}
	return sale, nil
}

// ParseSale decodes a YAML sale definition. Phase ordering and rate rules are
// left to engine.New.
func ParseSale(data []byte) (Sale, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Sale{}, fmt.Errorf("%w: sale definition is empty", model.ErrInvalidConfig)
	}
	var file SaleFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return Sale{}, fmt.Errorf("decode sale definition: %w", err)
	}
	return file.Convert()
}

// Convert turns the file representation into engine configuration.
func (f SaleFile) Convert() (Sale, error) {
	name := strings.TrimSpace(f.Sale)
	if name == "" {
		return Sale{}, fmt.Errorf("%w: sale name is required", model.ErrInvalidConfig)
	}

	supply, err := safe.ParseAmount(f.Supply)
	if err != nil {
		return Sale{}, fmt.Errorf("%w: supply: %v", model.ErrInvalidConfig, err)
	}
	if supply.IsZero() {
		return Sale{}, fmt.Errorf("%w: supply must be positive", model.ErrInvalidConfig)
	}

	var defaultRate *uint256.Int
	if strings.TrimSpace(f.Rate) != "" {
		if defaultRate, err = safe.ParseAmount(f.Rate); err != nil {
			return Sale{}, fmt.Errorf("%w: rate: %v", model.ErrInvalidConfig, err)
		}
	}

	phases := make([]model.Phase, 0, len(f.Phases))
	for i, p := range f.Phases {
		phase, err := p.convert(defaultRate)
		if err != nil {
			return Sale{}, fmt.Errorf("%w: phase %d: %v", model.ErrInvalidConfig, i, err)
		}
		phases = append(phases, phase)
	}

	holder := model.Account(f.Holder).Normalize()
	if holder.IsZero() {
		holder = model.Account("sale:" + name)
	}

	return Sale{
		Engine: engine.Config{
			Sale:                name,
			Issuer:              model.Account(f.Issuer).Normalize(),
			Wallet:              model.Account(f.Wallet).Normalize(),
			Phases:              phases,
			IssuerRefundAnyTime: f.IssuerRefundAnyTime,
		},
		Holder: holder,
		Supply: supply,
	}, nil
}

func (p PhaseFile) convert(defaultRate *uint256.Int) (model.Phase, error) {
	opening, err := time.Parse(time.RFC3339, strings.TrimSpace(p.Opening))
	if err != nil {
		return model.Phase{}, fmt.Errorf("opening: %w", err)
	}
	closing, err := time.Parse(time.RFC3339, strings.TrimSpace(p.Closing))
	if err != nil {
		return model.Phase{}, fmt.Errorf("closing: %w", err)
	}
	minContribution, err := safe.ParseAmount(p.MinContribution)
	if err != nil {
		return model.Phase{}, fmt.Errorf("min_contribution: %w", err)
	}

	phase := model.Phase{
		OpeningTime:     opening.UTC(),
		ClosingTime:     closing.UTC(),
		MinContribution: minContribution,
		Deferred:        p.Deferred,
	}
	if p.Deferred {
		return phase, nil
	}
	switch {
	case strings.TrimSpace(p.Rate) != "":
		if phase.Rate, err = safe.ParseAmount(p.Rate); err != nil {
			return model.Phase{}, fmt.Errorf("rate: %w", err)
		}
	case defaultRate != nil:
		phase.Rate = defaultRate.Clone()
	}
	return phase, nil
}
