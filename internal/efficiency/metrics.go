package efficiency

import (
	"github.com/samber/lo"

	"pgcetcli/pkg/contracts/domain"
)

// deriveMetrics computes the dataset-wide figures. Overall rates and the
// optional-field averages come from the flat records; the trend comes from
// the year stats, which must already be sorted.
func deriveMetrics(records []domain.SeatRecord, years []domain.YearStats) domain.EfficiencyMetrics {
	totalSeats := lo.SumBy(records, func(r domain.SeatRecord) int { return r.TotalSeats })
	totalFilled := lo.SumBy(records, func(r domain.SeatRecord) int { return r.SeatsFilled })

	fillRate := percentOf(totalFilled, totalSeats)

	costs := lo.FilterMap(records, func(r domain.SeatRecord, _ int) (float64, bool) {
		if r.AvgExamCost == nil {
			return 0, false
		}
		return *r.AvgExamCost, true
	})
	stress := lo.FilterMap(records, func(r domain.SeatRecord, _ int) (float64, bool) {
		if r.StudentStressIndex == nil {
			return 0, false
		}
		return *r.StudentStressIndex, true
	})

	return domain.EfficiencyMetrics{
		OverallFillRate:    fillRate,
		OverallVacancyRate: 100 - fillRate,
		AvgExamCost:        mean(costs),
		AvgStressIndex:     mean(stress),
		YearOverYearTrend:  yearOverYearTrend(years),
	}
}

// mean returns the arithmetic mean, or 0 for no values. Terms are scaled
// before summing so finite inputs near the float64 limit stay finite.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	n := float64(len(values))
	return lo.SumBy(values, func(v float64) float64 { return v / n })
}

// yearOverYearTrend is the last year's fill percentage minus the first's,
// 0 when fewer than two years are present
func yearOverYearTrend(years []domain.YearStats) domain.Rate {
	if len(years) < 2 {
		return 0
	}
	return years[len(years)-1].AvgFillPercentage - years[0].AvgFillPercentage
}
