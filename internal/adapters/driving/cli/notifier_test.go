package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
)

func TestConsoleNotifier_PriceDrop(t *testing.T) {
	buf := new(bytes.Buffer)
	n := NewConsoleNotifierWithWriter(buf)

	n.Notify(domain.Notification{
		Kind:          domain.NotificationPriceDrop,
		ProductName:   "Gaming Laptop",
		PreviousPrice: 100,
		CurrentPrice:  85,
		URL:           "https://www.amazon.com/s?k=gaming+laptop",
	})

	out := buf.String()
	assert.Contains(t, out, "PRICE DROP: Gaming Laptop fell from $100.00 to $85.00")
	assert.Contains(t, out, "https://www.amazon.com/s?k=gaming+laptop")
}

func TestConsoleNotifier_TargetReached(t *testing.T) {
	buf := new(bytes.Buffer)
	n := NewConsoleNotifierWithWriter(buf)

	n.Notify(domain.Notification{
		Kind:         domain.NotificationTargetReached,
		ProductName:  "Gaming Laptop",
		CurrentPrice: 85,
	})

	assert.Contains(t, buf.String(), "TARGET REACHED: Gaming Laptop is now $85.00")
}

func TestConsoleNotifier_UnknownKind(t *testing.T) {
	buf := new(bytes.Buffer)
	n := NewConsoleNotifierWithWriter(buf)

	n.Notify(domain.Notification{
		Kind:         domain.NotificationKind("other"),
		ProductName:  "Gaming Laptop",
		CurrentPrice: 85,
	})

	assert.Contains(t, buf.String(), "ALERT: Gaming Laptop at $85.00")
}
