package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/meenmo/credlib/calendar"
	"github.com/meenmo/credlib/cds"
	"github.com/meenmo/credlib/cds/curve"
	"github.com/meenmo/credlib/cds/market"
)

// tradeFile is the YAML representation of a contract plus its curves.
type tradeFile struct {
	Contract      contractSpec `yaml:"contract"`
	DiscountCurve curveSpec    `yaml:"discount_curve"`
	SurvivalCurve curveSpec    `yaml:"survival_curve"`
}

type contractSpec struct {
	BuySell               string  `yaml:"buy_sell"`
	Notional              float64 `yaml:"notional"`
	SpreadBP              float64 `yaml:"spread_bp"`
	RecoveryRate          float64 `yaml:"recovery_rate"`
	StartDate             string  `yaml:"start_date"`
	EffectiveDate         string  `yaml:"effective_date"`
	MaturityDate          string  `yaml:"maturity_date"`
	ValuationDate         string  `yaml:"valuation_date"`
	DayCount              string  `yaml:"day_count"`
	CouponFrequencyMonths int     `yaml:"coupon_frequency_months"`
	Stub                  string  `yaml:"stub"`
	BusinessDayAdjustment string  `yaml:"business_day_adjustment"`
	Calendar              string  `yaml:"calendar"`
	IncludeAccruedPremium bool    `yaml:"include_accrued_premium"`
	ProtectionStart       bool    `yaml:"protection_start"`
	PriceType             string  `yaml:"price_type"`
}

// curveSpec accepts either explicit pillars or a flat-rate shortcut.
type curveSpec struct {
	Times []float64 `yaml:"times"`
	DFs   []float64 `yaml:"dfs"`

	Survival []float64 `yaml:"survival"`
	Hazards  []float64 `yaml:"hazards"`

	FlatRate   *float64 `yaml:"flat_rate"`
	FlatHazard *float64 `yaml:"flat_hazard"`
}

func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}

func loadTradeFile(path string) (*cds.Trade, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loadTradeFile: %w", err)
	}
	var tf tradeFile
	if err := yaml.Unmarshal(raw, &tf); err != nil {
		return nil, fmt.Errorf("loadTradeFile %s: %w", path, err)
	}
	return tf.build()
}

func (tf tradeFile) build() (*cds.Trade, error) {
	contract, err := tf.Contract.build()
	if err != nil {
		return nil, err
	}

	disc, err := tf.DiscountCurve.buildDiscount()
	if err != nil {
		return nil, fmt.Errorf("discount_curve: %w", err)
	}
	surv, err := tf.SurvivalCurve.buildSurvival()
	if err != nil {
		return nil, fmt.Errorf("survival_curve: %w", err)
	}

	return cds.NewTrade(contract, disc, surv)
}

func (s contractSpec) build() (cds.Contract, error) {
	var c cds.Contract
	var err error

	if c.StartDate, err = parseDate("start_date", s.StartDate); err != nil {
		return c, err
	}
	if c.EffectiveDate, err = parseDate("effective_date", s.EffectiveDate); err != nil {
		return c, err
	}
	if c.MaturityDate, err = parseDate("maturity_date", s.MaturityDate); err != nil {
		return c, err
	}
	if c.ValuationDate, err = parseDate("valuation_date", s.ValuationDate); err != nil {
		return c, err
	}

	c.BuySell = market.BuySellProtection(s.BuySell)
	if c.BuySell == "" {
		c.BuySell = market.BuyProtection
	}
	c.Notional = s.Notional
	c.SpreadBP = s.SpreadBP
	c.RecoveryRate = s.RecoveryRate

	c.DayCount = market.DayCount(s.DayCount)
	if c.DayCount == "" {
		c.DayCount = market.Act360
	}
	c.CouponFrequency = market.Frequency(s.CouponFrequencyMonths)
	if c.CouponFrequency == 0 {
		c.CouponFrequency = market.FreqQuarterly
	}
	c.StubType = market.StubType(s.Stub)
	if c.StubType == "" {
		c.StubType = market.StubShortFront
	}
	c.BusinessDayAdjustment = calendar.Convention(s.BusinessDayAdjustment)
	if c.BusinessDayAdjustment == "" {
		c.BusinessDayAdjustment = calendar.Following
	}
	c.Calendar = calendar.CalendarID(s.Calendar)
	if c.Calendar == "" {
		c.Calendar = calendar.WeekendsOnly
	}
	c.IncludeAccruedPremium = s.IncludeAccruedPremium
	c.ProtectionStart = s.ProtectionStart
	c.PriceType = market.PriceType(s.PriceType)
	if c.PriceType == "" {
		c.PriceType = market.PriceClean
	}

	return c, c.Validate()
}

func (s curveSpec) buildDiscount() (cds.DiscountCurve, error) {
	if s.FlatRate != nil {
		return curve.FlatZeroCurve(*s.FlatRate), nil
	}
	return curve.NewZeroCurve(s.Times, s.DFs)
}

func (s curveSpec) buildSurvival() (cds.SurvivalCurve, error) {
	if s.FlatHazard != nil {
		return curve.FlatHazardCurve(*s.FlatHazard), nil
	}
	if len(s.Hazards) > 0 {
		return curve.NewSurvivalCurveFromHazards(s.Times, s.Hazards)
	}
	return curve.NewSurvivalCurve(s.Times, s.Survival)
}
