package efficiency

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Policy carries the thresholds and weights the analyzer applies.
// Percent values are on a 0-100 scale.
type Policy struct {
	// Finding thresholds
	HighVacancyPct      float64 `json:"high_vacancy_pct" yaml:"high_vacancy_pct" envconfig:"HIGH_VACANCY_PCT" validate:"gte=0,lte=100"`
	ModerateVacancyPct  float64 `json:"moderate_vacancy_pct" yaml:"moderate_vacancy_pct" envconfig:"MODERATE_VACANCY_PCT" validate:"gte=0,ltefield=HighVacancyPct"`
	LowDemandVacancyPct float64 `json:"low_demand_vacancy_pct" yaml:"low_demand_vacancy_pct" envconfig:"LOW_DEMAND_VACANCY_PCT" validate:"gte=0,lte=100"`
	HighExamCost        float64 `json:"high_exam_cost" yaml:"high_exam_cost" envconfig:"HIGH_EXAM_COST" validate:"gte=0"`
	HighStressIndex     float64 `json:"high_stress_index" yaml:"high_stress_index" envconfig:"HIGH_STRESS_INDEX" validate:"gte=0"`
	DecliningTrendPct   float64 `json:"declining_trend_pct" yaml:"declining_trend_pct" envconfig:"DECLINING_TREND_PCT" validate:"gte=0"` // fires when trend < -DecliningTrendPct
	HealthyFillRatePct  float64 `json:"healthy_fill_rate_pct" yaml:"healthy_fill_rate_pct" envconfig:"HEALTHY_FILL_RATE_PCT" validate:"gte=0,lte=100"`

	// Score penalties
	VacancyWeight      float64 `json:"vacancy_weight" yaml:"vacancy_weight" envconfig:"VACANCY_WEIGHT" validate:"gte=0"`
	ExamCostBaseline   float64 `json:"exam_cost_baseline" yaml:"exam_cost_baseline" envconfig:"EXAM_COST_BASELINE" validate:"gte=0"`
	ExamCostDivisor    float64 `json:"exam_cost_divisor" yaml:"exam_cost_divisor" envconfig:"EXAM_COST_DIVISOR" validate:"gt=0"`
	StressBaseline     float64 `json:"stress_baseline" yaml:"stress_baseline" envconfig:"STRESS_BASELINE" validate:"gte=0"`
	StressWeight       float64 `json:"stress_weight" yaml:"stress_weight" envconfig:"STRESS_WEIGHT" validate:"gte=0"`
	TrendWeight        float64 `json:"trend_weight" yaml:"trend_weight" envconfig:"TREND_WEIGHT" validate:"gte=0"`
	UnderfilledPct     float64 `json:"underfilled_pct" yaml:"underfilled_pct" envconfig:"UNDERFILLED_PCT" validate:"gte=0,lte=100"`
	UnderfilledPenalty float64 `json:"underfilled_penalty" yaml:"underfilled_penalty" envconfig:"UNDERFILLED_PENALTY" validate:"gte=0"`

	// Verdict cut-offs on the clamped score
	EfficientScore float64 `json:"efficient_score" yaml:"efficient_score" envconfig:"EFFICIENT_SCORE" validate:"gte=0,lte=100"`
	ModerateScore  float64 `json:"moderate_score" yaml:"moderate_score" envconfig:"MODERATE_SCORE" validate:"gte=0,ltefield=EfficientScore"`
}

// DefaultPolicy returns the standard PGCET scoring policy
func DefaultPolicy() Policy {
	return Policy{
		HighVacancyPct:      30,
		ModerateVacancyPct:  20,
		LowDemandVacancyPct: 35,
		HighExamCost:        5000,
		HighStressIndex:     0.7,
		DecliningTrendPct:   5,
		HealthyFillRatePct:  85,

		VacancyWeight:      0.8,
		ExamCostBaseline:   3000,
		ExamCostDivisor:    100,
		StressBaseline:     0.5,
		StressWeight:       20,
		TrendWeight:        2,
		UnderfilledPct:     70,
		UnderfilledPenalty: 5,

		EfficientScore: 75,
		ModerateScore:  60,
	}
}

var policyValidator = validator.New()

// Validate checks every threshold and weight
func (p Policy) Validate() error {
	if err := policyValidator.Struct(p); err != nil {
		return fmt.Errorf("invalid analysis policy: %w", err)
	}
	return nil
}
