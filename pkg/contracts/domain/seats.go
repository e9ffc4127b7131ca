package domain

// SeatRecord represents one row of a PGCET seat allocation dataset
type SeatRecord struct {
	Year        int    `json:"year" csv:"year"`
	Course      string `json:"course" csv:"course"`
	TotalSeats  int    `json:"total_seats" csv:"total_seats"`
	SeatsFilled int    `json:"seats_filled" csv:"seats_filled"`
	// VacantSeats is taken verbatim from the input when the column exists,
	// otherwise computed as TotalSeats - SeatsFilled. Never reconciled.
	VacantSeats int `json:"vacant_seats" csv:"vacant_seats"`

	// Optional fields: nil means the input did not supply a usable value
	AvgExamCost        *float64 `json:"avg_exam_cost,omitempty" csv:"-"`
	StudentStressIndex *float64 `json:"student_stress_index,omitempty" csv:"-"`
}

// HasExamCost reports whether the record carries an exam cost value
func (r SeatRecord) HasExamCost() bool {
	return r.AvgExamCost != nil
}

// HasStressIndex reports whether the record carries a stress index value
func (r SeatRecord) HasStressIndex() bool {
	return r.StudentStressIndex != nil
}

// CourseStats aggregates all records sharing a course label
type CourseStats struct {
	Course         string `json:"course"`
	TotalSeats     int    `json:"total_seats"`
	SeatsFilled    int    `json:"seats_filled"`
	FillPercentage Rate   `json:"fill_percentage"`
	VacancyRate    Rate   `json:"vacancy_rate"`
}

// YearStats aggregates all records sharing a year
type YearStats struct {
	Year              int  `json:"year"`
	TotalSeats        int  `json:"total_seats"`
	TotalFilled       int  `json:"total_filled"`
	VacantSeats       int  `json:"vacant_seats"`
	AvgFillPercentage Rate `json:"avg_fill_percentage"`
}

// EfficiencyMetrics holds the dataset-wide figures the score is built from
type EfficiencyMetrics struct {
	OverallFillRate    Rate    `json:"overall_fill_rate"`
	OverallVacancyRate Rate    `json:"overall_vacancy_rate"`
	AvgExamCost        float64 `json:"avg_exam_cost"`
	AvgStressIndex     float64 `json:"avg_stress_index"`
	YearOverYearTrend  Rate    `json:"year_over_year_trend"`
}

// Verdict is the three-tier classification of an efficiency score
type Verdict string

const (
	VerdictEfficient           Verdict = "Efficient"
	VerdictModeratelyEfficient Verdict = "Moderately Efficient"
	VerdictNotEfficient        Verdict = "Not Efficient"
)

// String returns the display label of the verdict
func (v Verdict) String() string {
	return string(v)
}

// AnalysisResult is the immutable output of one analysis run
type AnalysisResult struct {
	EfficiencyScore float64           `json:"efficiency_score"`
	Verdict         Verdict           `json:"verdict"`
	Reasons         []string          `json:"reasons"`
	CourseStats     []CourseStats     `json:"course_stats"`
	YearStats       []YearStats       `json:"year_stats"`
	Metrics         EfficiencyMetrics `json:"metrics"`
	RecordCount     int               `json:"record_count"`
	DroppedRows     int               `json:"dropped_rows"`
}
