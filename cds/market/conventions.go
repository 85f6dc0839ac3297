package market

// BuySellProtection indicates which side of the protection the counterparty takes.
type BuySellProtection string

const (
	BuyProtection  BuySellProtection = "BUY"
	SellProtection BuySellProtection = "SELL"
)

// PriceType distinguishes clean (excluding accrued) and dirty quotations.
type PriceType string

const (
	PriceClean PriceType = "CLEAN"
	PriceDirty PriceType = "DIRTY"
)

// Frequency enumerates coupon frequencies in months.
type Frequency int

const (
	FreqAnnual    Frequency = 12
	FreqSemi      Frequency = 6
	FreqQuarterly Frequency = 3
	FreqMonthly   Frequency = 1
)

// StubType controls how a non-whole number of coupon periods is handled.
//
// Premium schedules are rolled backward from maturity, so the stub (if any)
// sits at the front of the schedule. A short stub keeps the partial first
// period; a long stub merges it into the following regular period.
type StubType string

const (
	StubShortFront StubType = "SHORT_FRONT"
	StubLongFront  StubType = "LONG_FRONT"
)

// DayCount enum.
type DayCount string

const (
	Act360   DayCount = "ACT/360"
	Act365   DayCount = "ACT/365"
	Act365F  DayCount = "ACT/365F"
	Dc30360  DayCount = "30/360"
	Dc30E360 DayCount = "30E/360"
)

// DebtSeniority of the reference obligation.
type DebtSeniority string

const (
	SeniorUnsecured DebtSeniority = "SENIOR"
	Subordinated    DebtSeniority = "SUBORDINATED"
)

// RestructuringClause governs which credit events trigger the contract.
type RestructuringClause string

const (
	NoRestructuring          RestructuringClause = "XR"
	ModifiedRestructuring    RestructuringClause = "MR"
	ModifiedModRestructuring RestructuringClause = "MM"
	CumulativeRestructuring  RestructuringClause = "CR"
)
