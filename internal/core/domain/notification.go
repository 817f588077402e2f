package domain

// NotificationKind classifies an alert raised after a recorded check.
type NotificationKind string

// Notification kinds.
const (
	// NotificationPriceDrop fires when the best price falls below the
	// immediately preceding history entry by at least the configured
	// threshold percentage.
	NotificationPriceDrop NotificationKind = "drop"

	// NotificationTargetReached fires when the best price crosses down
	// to or below the product's target price.
	NotificationTargetReached NotificationKind = "target"
)

// Notification is a structured alert for the presentation layer.
// Both kinds are edge-triggered: they fire once per crossing, not once
// per check while the condition holds.
type Notification struct {
	// Kind classifies the alert.
	Kind NotificationKind

	// ProductName is the display name of the affected product.
	ProductName string

	// PreviousPrice is the reference price before the crossing.
	PreviousPrice float64

	// CurrentPrice is the price that triggered the alert.
	CurrentPrice float64

	// URL is the canonical search URL of the source that produced
	// the current price.
	URL string
}

// PriceUpdate is emitted after every successful check, alert or not.
type PriceUpdate struct {
	// ProductID identifies the checked product.
	ProductID string

	// NewPrice is the best price recorded by the check.
	NewPrice float64

	// OldPrice is the best price before the check. Zero on the first check.
	OldPrice float64

	// Source identifies which source produced the new best price.
	Source Source
}
