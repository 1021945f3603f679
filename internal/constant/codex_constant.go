package constant

import "time"

const (
	// RosterRefreshedTopic carries one message per successful load.
	RosterRefreshedTopic = "codex.roster.refreshed"

	// RosterSourceSheets and RosterSourceFallback tag where a load
	// came from in refresh events and health reports.
	RosterSourceSheets   = "sheets"
	RosterSourceFallback = "fallback"

	// DefaultCacheTTL applies when CACHE_TTL is unset or invalid.
	DefaultCacheTTL = 10 * time.Minute

	// Default sheet tab candidates tried after the configured one.
	SheetTabCharacters = "Characters"
	SheetTabDefault    = "Sheet1"
)
