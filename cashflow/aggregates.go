/*
aggregates.go - Derived per-day and prefix aggregates

PURPOSE:
  Computed once from a Plan at solve start and never mutated: per-day
  deposit/bill/adjustment totals and the cumulative prefix sums the DP and
  CP-SAT use to turn "balance at end of day d" into a pure function of
  (d, net_so_far) instead of part of the search state.
*/
package cashflow

// Aggregates holds the per-day cashflow totals and prefix sums derived
// from a Plan. Index 0 corresponds to day 1.
type Aggregates struct {
	DepositsCents    [Horizon]int64
	BillsCents       [Horizon]int64
	AdjustmentsCents [Horizon]int64

	// PrefixCents[d] (1-indexed, PrefixCents[0] unused) is the cumulative
	// sum of (deposits + adjustments - bills) through day d, excluding any
	// action net.
	PrefixCents [Horizon + 1]int64
}

// BuildAggregates sums same-day deposits/bills/adjustments and computes the
// prefix sums used by both solvers.
func BuildAggregates(p *Plan) *Aggregates {
	agg := &Aggregates{}
	for _, d := range p.Deposits {
		agg.DepositsCents[d.Day-1] += d.AmountCents
	}
	for _, b := range p.Bills {
		agg.BillsCents[b.Day-1] += b.AmountCents
	}
	for _, a := range p.ManualAdjustments {
		agg.AdjustmentsCents[a.Day-1] += a.AmountCents
	}
	running := int64(0)
	for d := 1; d <= Horizon; d++ {
		running += agg.DepositsCents[d-1] + agg.AdjustmentsCents[d-1] - agg.BillsCents[d-1]
		agg.PrefixCents[d] = running
	}
	return agg
}

// ClosingAt returns the closing balance at the end of day d given the
// action-net accumulated through day d (net_so_far), a pure function of
// (d, net_so_far) per spec: no balance is threaded through search state.
func (a *Aggregates) ClosingAt(startCents int64, day int, netSoFar int64) int64 {
	return startCents + a.PrefixCents[day] + netSoFar
}

// PreRentBalance30 returns the balance on day 30 after that day's deposits
// and adjustments and action net, but before day-30 bills.
func (a *Aggregates) PreRentBalance30(closing30 int64) int64 {
	return closing30 + a.BillsCents[Horizon-1]
}
