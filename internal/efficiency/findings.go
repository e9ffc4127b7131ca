package efficiency

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"pgcetcli/pkg/contracts/domain"
)

// Finding messages
const (
	highVacancyFormat     = "High seat vacancy: %s%% seats remain unfilled"
	moderateVacancyFormat = "Moderate seat vacancy: %s%% of seats are vacant"
	lowDemandPrefix       = "Courses with low demand: "
	highExamCostFormat    = "High examination costs (₹%s) may deter students"
	highStressFormat      = "High student stress index (%s/1.0) affecting participation"
	decliningTrendFormat  = "Declining trend: Seat fill rate dropped by %s%% year-over-year"
	performingWellMessage = "System is performing well with good seat utilization"
)

// generateFindings evaluates each rule in fixed order and appends its
// message when the rule fires. The positive finding is considered last and
// only when nothing else fired.
func generateFindings(metrics domain.EfficiencyMetrics, courses []domain.CourseStats, policy Policy) []string {
	reasons := make([]string, 0)
	vacancy := metrics.OverallVacancyRate.Float64()

	switch {
	case vacancy > policy.HighVacancyPct:
		reasons = append(reasons, fmt.Sprintf(highVacancyFormat, formatFixed(vacancy, 1)))
	case vacancy > policy.ModerateVacancyPct:
		reasons = append(reasons, fmt.Sprintf(moderateVacancyFormat, formatFixed(vacancy, 1)))
	}

	lowDemand := lo.Filter(courses, func(c domain.CourseStats, _ int) bool {
		return c.VacancyRate.Float64() > policy.LowDemandVacancyPct
	})
	if len(lowDemand) > 0 {
		names := lo.Map(lowDemand, func(c domain.CourseStats, _ int) string { return c.Course })
		reasons = append(reasons, lowDemandPrefix+strings.Join(names, ", "))
	}

	if metrics.AvgExamCost > policy.HighExamCost {
		reasons = append(reasons, fmt.Sprintf(highExamCostFormat, formatFixed(metrics.AvgExamCost, 0)))
	}

	if metrics.AvgStressIndex > policy.HighStressIndex {
		reasons = append(reasons, fmt.Sprintf(highStressFormat, formatFixed(metrics.AvgStressIndex, 2)))
	}

	trend := metrics.YearOverYearTrend.Float64()
	if trend < -policy.DecliningTrendPct {
		reasons = append(reasons, fmt.Sprintf(decliningTrendFormat, formatFixed(math.Abs(trend), 1)))
	}

	if len(reasons) == 0 && metrics.OverallFillRate.Float64() >= policy.HealthyFillRatePct {
		reasons = append(reasons, performingWellMessage)
	}

	return reasons
}

var half = big.NewFloat(0.5)

// formatFixed renders x with prec decimals. Exact halves round away from
// zero; strconv alone would round them to even.
func formatFixed(x float64, prec int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', prec, 64)
	}

	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(prec)), nil)
	scaled := new(big.Float).SetPrec(256).SetFloat64(x)
	scaled.Mul(scaled, new(big.Float).SetInt(pow))
	whole, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(scaled, new(big.Float).SetInt(whole))

	if frac.Abs(frac).Cmp(half) == 0 {
		// Any value past an exact tie rounds away from zero
		x = math.Nextafter(x, math.Copysign(math.Inf(1), x))
	}
	return strconv.FormatFloat(x, 'f', prec, 64)
}
