package config

const (
	// DefaultMaxRefinementIterations caps how many refinement passes a
	// single plan may go through. The cap disables further refinement but
	// never invalidates the plan itself.
	DefaultMaxRefinementIterations = 5

	// MaxPageTitleLength is the maximum length for page titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (titles should be short and descriptive).
	MaxPageTitleLength = 255

	// MaxSourceNameLength is the maximum length for uploaded file names
	// and scraped URLs recorded on a session.
	MaxSourceNameLength = 500

	// MaxUploadBytes bounds one uploaded source file. Extraction reads
	// the whole file into memory, so this keeps one request from pinning
	// the process.
	MaxUploadBytes = 10 << 20

	// MaxInstructionsLength bounds free-text refinement instructions.
	MaxInstructionsLength = 4000

	// MaxSessionAgeHours is how long an untouched session survives before
	// the stale sweep removes it.
	MaxSessionAgeHours = 24
)
