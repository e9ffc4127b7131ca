// Package efficiency scores PGCET seat utilisation.
//
// The analyzer runs a fixed pipeline over parsed records:
//
//  1. course aggregation, in first-appearance order
//  2. year aggregation, sorted ascending by year
//  3. dataset metrics (overall fill and vacancy, optional-field averages,
//     year-over-year trend)
//  4. findings, evaluated as an ordered rule list
//  5. a 0-100 score, clamped once after all penalties
//  6. a verdict derived from the score alone
//
// Every threshold and weight lives in Policy; DefaultPolicy returns the
// standard values. Analysis has no side effects beyond debug logging.
//
//	result, err := efficiency.Analyze(records)
//	if errors.Is(err, efficiency.ErrEmptyInput) {
//	    // nothing survived parsing
//	}
//	fmt.Println(result.EfficiencyScore, result.Verdict)
package efficiency
