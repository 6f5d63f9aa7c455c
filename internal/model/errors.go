package model

import "errors"

var (
	// ErrNoSource is returned when an operation needs a source file that was never bound.
	ErrNoSource = errors.New("no source bound")
	// ErrSiteNotFound is returned when a site does not exist in the tree being mutated.
	ErrSiteNotFound = errors.New("site not found")
	// ErrInvalidReplacement is returned when the replacement is not interchangeable with the original.
	ErrInvalidReplacement = errors.New("invalid replacement operator")
	// ErrInvalidSite is returned for incomplete or malformed sites.
	ErrInvalidSite = errors.New("invalid site")
	// ErrCoverageUnavailable is returned when the coverage file cannot be read.
	ErrCoverageUnavailable = errors.New("coverage data unavailable")
	// ErrCoverageCorrupt is returned when the coverage file cannot be parsed.
	ErrCoverageCorrupt = errors.New("coverage data corrupt")
	// ErrCompile is returned when a mutated tree does not render to valid Go.
	ErrCompile = errors.New("mutant does not compile")
)
