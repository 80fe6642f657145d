package types

// Status is a type for the lifecycle status of a configuration resource
// (e.g. service, promo code, experiment). Archived resources are kept for
// audit purposes but excluded from quote calculations.
type Status string

const (
	StatusPublished Status = "published"
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusArchived  Status = "archived"
)
