package efficiency

import (
	"math"

	"github.com/samber/lo"

	"pgcetcli/pkg/contracts/domain"
)

const (
	minScore = 0.0
	maxScore = 100.0
)

// computeScore subtracts every penalty from 100 and clamps once at the
// end, so intermediate values may go negative. A NaN score, from a dataset
// with zero total seats, is reported as the minimum.
func computeScore(metrics domain.EfficiencyMetrics, courses []domain.CourseStats, policy Policy) float64 {
	score := maxScore

	score -= metrics.OverallVacancyRate.Float64() * policy.VacancyWeight
	score -= math.Max(0, metrics.AvgExamCost-policy.ExamCostBaseline) / policy.ExamCostDivisor
	score -= math.Max(0, metrics.AvgStressIndex-policy.StressBaseline) * policy.StressWeight

	if trend := metrics.YearOverYearTrend.Float64(); trend < 0 {
		score -= math.Abs(trend) * policy.TrendWeight
	}

	underfilled := lo.CountBy(courses, func(c domain.CourseStats) bool {
		return c.FillPercentage.Float64() < policy.UnderfilledPct
	})
	score -= float64(underfilled) * policy.UnderfilledPenalty

	if math.IsNaN(score) {
		return minScore
	}
	return lo.Clamp(score, minScore, maxScore)
}

// verdictFor maps a clamped score onto the three verdict tiers
func verdictFor(score float64, policy Policy) domain.Verdict {
	switch {
	case score >= policy.EfficientScore:
		return domain.VerdictEfficient
	case score >= policy.ModerateScore:
		return domain.VerdictModeratelyEfficient
	default:
		return domain.VerdictNotEfficient
	}
}
