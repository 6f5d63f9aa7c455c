package model

// Tally counts trial verdicts.
type Tally struct {
	Survived int
	Detected int
	Errored  int
	Unknown  int
}

// Add counts one verdict.
func (t *Tally) Add(v Verdict) {
	switch v {
	case Survived:
		t.Survived++
	case Detected:
		t.Detected++
	case Errored:
		t.Errored++
	case Unknown:
		t.Unknown++
	}
}

// Total is the number of verdicts counted.
func (t Tally) Total() int {
	return t.Survived + t.Detected + t.Errored + t.Unknown
}

// Score is the percentage of detected mutants among those that either
// survived or were detected. Errored and unknown trials are excluded from
// the denominator. With nothing to score the result is 100.
func (t Tally) Score() float64 {
	total := t.Survived + t.Detected
	if total == 0 {
		return 100.0
	}

	return 100.0 * float64(t.Detected) / float64(total)
}
