package model

// Verdict classifies a trial outcome.
type Verdict int

// Verdicts. Unknown covers every exit status outside 0..2.
const (
	Survived Verdict = iota
	Detected
	Errored
	Unknown
)

// String returns the report name of the verdict.
func (v Verdict) String() string {
	switch v {
	case Survived:
		return "SURVIVED"
	case Detected:
		return "DETECTED"
	case Errored:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseVerdict maps a report name back to a Verdict.
func ParseVerdict(name string) Verdict {
	switch name {
	case "SURVIVED":
		return Survived
	case "DETECTED":
		return Detected
	case "ERROR":
		return Errored
	default:
		return Unknown
	}
}

// TrialResult carries a verdict with the mutant and exit status that produced it.
type TrialResult struct {
	Mutant   Mutant
	Status   int
	Verdict  Verdict
	Category Category
	Output   string
}
