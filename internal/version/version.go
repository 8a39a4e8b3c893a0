package version

// Set at build time via -ldflags "-X jobpulse/internal/version.VERSION=... -X jobpulse/internal/version.COMMIT=..."
var (
	VERSION = "0.1.0"
	COMMIT  = "unknown"
)
