package types

// Status is a type for the lifecycle status of a stored resource
// (product, promotion, discount rule, ...). Only StatusPublished
// resources participate in pricing.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)
