package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod    = "method"
	AttrPath      = "path"
	AttrStatus    = "status"
	AttrProvider  = "provider"
	AttrOperation = "operation"
	AttrOutcome   = "outcome"
)

// Cache outcomes.
const (
	OutcomeHit  = "hit"
	OutcomeMiss = "miss"
)
