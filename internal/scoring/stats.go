package scoring

import "math"

// ComputeZScores returns the population z-score of every value, computed
// against the sample mean and sample standard deviation (N-1 denominator).
// Output order matches input order. With fewer than two values, or when the
// spread is exactly zero, every z-score is 0. Scores are clamped to [-3, 3]
// so a single extreme outlier cannot dominate the composite.
func ComputeZScores(values []float64) []float64 {
	n := len(values)
	scores := make([]float64, n)
	if n < 2 {
		return scores
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(n - 1)
	stddev := math.Sqrt(variance)

	if stddev == 0 {
		return scores
	}

	for i, v := range values {
		z := (v - mean) / stddev
		scores[i] = math.Max(-3, math.Min(3, z))
	}
	return scores
}

// AssignGrade maps a composite score onto a letter grade using the fixed
// bracket table. Every real number maps to exactly one grade.
func AssignGrade(score float64) string {
	for _, b := range gradeBrackets {
		if score >= b.min {
			return b.grade
		}
	}
	return "C"
}
