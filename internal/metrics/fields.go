package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrCache    = "cache"
	AttrOutcome  = "outcome"
)

// Outcome values for cache lookups.
const (
	OutcomeHit  = "hit"
	OutcomeMiss = "miss"
)
