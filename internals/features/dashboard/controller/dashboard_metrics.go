// file: internals/features/dashboard/controller/dashboard_metrics.go
package controller

import (
	"math"

	"github.com/shopspring/decimal"
)

// efficiencyRate: share of lines settled, in percent. Zero when nothing was
// billed in the window.
func efficiencyRate(paid, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(paid) / float64(total) * 100
}

// countToTarget: how many more lines must settle before the window reaches
// the target share. Zero when the target is already met or nothing is billed.
func countToTarget(paid, total int64, targetPct float64) int64 {
	if total <= 0 {
		return 0
	}
	need := int64(math.Ceil(targetPct / 100 * float64(total)))
	if d := need - paid; d > 0 {
		return d
	}
	return 0
}

// revenueDelta: absolute and percent change between two month sums. Percent
// is nil when the previous month collected nothing.
func revenueDelta(current, previous decimal.Decimal) (decimal.Decimal, *float64) {
	abs := current.Sub(previous)
	if previous.IsZero() {
		return abs, nil
	}
	pct, _ := abs.Div(previous).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return abs, &pct
}
