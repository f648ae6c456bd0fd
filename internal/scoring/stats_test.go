package scoring

import (
	"math"
	"testing"
)

func TestComputeZScoresDegenerateInputs(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{"Empty", nil},
		{"Single value", []float64{42}},
		{"Zero variance", []float64{5, 5, 5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeZScores(tt.values)
			if len(got) != len(tt.values) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.values))
			}
			for i, z := range got {
				if z != 0 {
					t.Errorf("z[%d] = %f, want 0", i, z)
				}
			}
		})
	}
}

func TestComputeZScoresKnownValues(t *testing.T) {
	// Two values: sample stddev is |a-b|/sqrt(2), so z = ±sqrt(2)/2.
	got := ComputeZScores([]float64{10, 20})
	want := math.Sqrt2 / 2

	if math.Abs(got[0]+want) > 1e-9 || math.Abs(got[1]-want) > 1e-9 {
		t.Errorf("ComputeZScores([10 20]) = %v, want [-%f %f]", got, want, want)
	}
}

func TestComputeZScoresClamped(t *testing.T) {
	// One extreme outlier in a large uniform population would exceed 3
	// without clamping.
	values := make([]float64, 50)
	values[49] = 1e9

	for i, z := range ComputeZScores(values) {
		if z < -3 || z > 3 {
			t.Errorf("z[%d] = %f, outside [-3, 3]", i, z)
		}
	}
}

func TestComputeZScoresOrderPreserving(t *testing.T) {
	values := []float64{3, 1, 2}
	got := ComputeZScores(values)

	if !(got[1] < got[2] && got[2] < got[0]) {
		t.Errorf("z-scores %v do not preserve input ordering of %v", got, values)
	}
}

func TestAssignGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{2.5, "A+"},
		{2.0, "A+"},
		{1.999, "A"},
		{1.5, "A"},
		{1.2, "B+"},
		{1.0, "B+"},
		{0.5, "B"},
		{0.499, "C"},
		{0, "C"},
		{-5, "C"},
	}

	for _, tt := range tests {
		if got := AssignGrade(tt.score); got != tt.want {
			t.Errorf("AssignGrade(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestAssignGradeMonotonic(t *testing.T) {
	order := map[string]int{"C": 0, "B": 1, "B+": 2, "A": 3, "A+": 4}

	prev := "C"
	for score := -4.0; score <= 4.0; score += 0.01 {
		grade := AssignGrade(score)
		if order[grade] < order[prev] {
			t.Fatalf("grade regressed from %s to %s at score %f", prev, grade, score)
		}
		prev = grade
	}
}
