package tracing

// Span names.
const (
	SpanServiceRun = "service.run"
	SpanCacheRun   = "service.cache"
)

// Span attribute keys.
const (
	AttrRequestID        = "relens.request.id"
	AttrSnapshotKey      = "relens.snapshot.key"
	AttrPatternBytes     = "relens.pattern.bytes"
	AttrConstraintsBytes = "relens.constraints.bytes"
	AttrTextBytes        = "relens.text.bytes"
	AttrAcceptedLines    = "relens.accepted.lines"
	AttrResultError      = "relens.result.error"
	AttrCacheHit         = "relens.cache.hit"
)

// Event names.
const (
	EventResultDiscarded = "result.discarded"
	EventCacheShared     = "cache.shared"
)
