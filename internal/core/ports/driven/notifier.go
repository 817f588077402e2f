package driven

import "github.com/meridian-labs/pricewatch-cli/internal/core/domain"

// Notifier renders alerts and per-check price updates.
// Implementations must not block the checking flow; delivery is
// best-effort and failures are never surfaced to the scheduler.
type Notifier interface {
	// Notify delivers an edge-triggered alert.
	Notify(n domain.Notification)

	// PriceUpdated reports a completed check, alert or not.
	PriceUpdated(u domain.PriceUpdate)
}
