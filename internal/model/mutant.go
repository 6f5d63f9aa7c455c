package model

// Mutant is a rendered source file with exactly one site substituted.
type Mutant struct {
	Source      Path
	Code        []byte
	CachePath   Path
	OverlayPath Path
	Site        Site
	Replacement string
}

// OverlayFlag returns the go command flag that makes a build observe this mutant.
func (mu Mutant) OverlayFlag() string {
	return "-overlay=" + string(mu.OverlayPath)
}
