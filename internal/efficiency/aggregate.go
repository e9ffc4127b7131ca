package efficiency

import (
	"sort"

	"pgcetcli/pkg/contracts/domain"
)

// percentOf returns part/whole*100 with plain float division: a zero whole
// yields NaN or Inf
func percentOf(part, whole int) domain.Rate {
	return domain.Rate(float64(part) / float64(whole) * 100)
}

// aggregateCourses groups records by exact course label. Groups keep the
// order in which each course first appears.
func aggregateCourses(records []domain.SeatRecord) []domain.CourseStats {
	index := make(map[string]int)
	stats := make([]domain.CourseStats, 0)

	for _, r := range records {
		i, ok := index[r.Course]
		if !ok {
			i = len(stats)
			index[r.Course] = i
			stats = append(stats, domain.CourseStats{Course: r.Course})
		}
		stats[i].TotalSeats += r.TotalSeats
		stats[i].SeatsFilled += r.SeatsFilled
	}

	for i := range stats {
		s := &stats[i]
		s.FillPercentage = percentOf(s.SeatsFilled, s.TotalSeats)
		s.VacancyRate = 100 - s.FillPercentage
	}

	return stats
}

// aggregateYears groups records by year and sorts the groups ascending
func aggregateYears(records []domain.SeatRecord) []domain.YearStats {
	index := make(map[int]int)
	stats := make([]domain.YearStats, 0)

	for _, r := range records {
		i, ok := index[r.Year]
		if !ok {
			i = len(stats)
			index[r.Year] = i
			stats = append(stats, domain.YearStats{Year: r.Year})
		}
		stats[i].TotalSeats += r.TotalSeats
		stats[i].TotalFilled += r.SeatsFilled
		stats[i].VacantSeats += r.VacantSeats
	}

	for i := range stats {
		stats[i].AvgFillPercentage = percentOf(stats[i].TotalFilled, stats[i].TotalSeats)
	}

	sort.Slice(stats, func(a, b int) bool {
		return stats[a].Year < stats[b].Year
	})

	return stats
}
