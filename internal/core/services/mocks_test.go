package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
	"github.com/meridian-labs/pricewatch-cli/internal/core/ports/driven"
)

// --- Mock implementations shared across service tests ---
// Product persistence uses the real memory adapter; only the acquisition
// collaborators are scripted.

// mockSite implements driven.PriceSource with a scripted sequence of
// fetch outcomes. Once the script is exhausted the last step repeats.
type mockSite struct {
	mu     sync.Mutex
	source domain.Source
	script []fetchStep
	calls  int
}

type fetchStep struct {
	quote *domain.Quote
	err   error
}

func newMockSite(source domain.Source, script ...fetchStep) *mockSite {
	return &mockSite{source: source, script: script}
}

func (m *mockSite) Source() domain.Source {
	return m.source
}

func (m *mockSite) SearchURL(query string) string {
	return "https://" + string(m.source) + ".example/search?q=" + query
}

func (m *mockSite) Fetch(_ context.Context, _ string) (*domain.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.calls
	m.calls++
	if idx >= len(m.script) {
		idx = len(m.script) - 1
	}
	if idx < 0 {
		return nil, nil
	}
	step := m.script[idx]
	return step.quote, step.err
}

func (m *mockSite) fetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockRegistry implements driven.SourceRegistry over mock sites.
type mockRegistry struct {
	sites map[domain.Source]driven.PriceSource
}

func newMockRegistry(sites ...driven.PriceSource) *mockRegistry {
	r := &mockRegistry{sites: make(map[domain.Source]driven.PriceSource)}
	for _, s := range sites {
		r.sites[s.Source()] = s
	}
	return r
}

func (m *mockRegistry) Lookup(source domain.Source) (driven.PriceSource, error) {
	site, ok := m.sites[source]
	if !ok {
		return nil, fmt.Errorf("%w: source %q", domain.ErrNotFound, source)
	}
	return site, nil
}

// mockLimiter implements driven.RateLimiter, recording admissions.
type mockLimiter struct {
	mu         sync.Mutex
	admissions []domain.Source
	err        error
}

func (m *mockLimiter) Admit(_ context.Context, source domain.Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.admissions = append(m.admissions, source)
	return nil
}

func (m *mockLimiter) admitted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.admissions)
}

// mockCache implements driven.QuoteCache in memory, without expiry.
type mockCache struct {
	mu      sync.Mutex
	entries map[string]domain.Quote
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]domain.Quote)}
}

func (m *mockCache) key(source domain.Source, query string) string {
	return string(source) + "|" + domain.NormalizeQuery(query)
}

func (m *mockCache) Lookup(source domain.Source, query string) (*domain.Quote, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	quote, ok := m.entries[m.key(source, query)]
	if !ok {
		return nil, false
	}
	return &quote, true
}

func (m *mockCache) Store(source domain.Source, query string, quote domain.Quote) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[m.key(source, query)] = quote
}

// mockFallback implements driven.FallbackPricer with a fixed price.
type mockFallback struct {
	price float64
	calls int
}

func (m *mockFallback) Fallback(source domain.Source, query string) domain.Quote {
	m.calls++
	return domain.Quote{
		Title:     query + " - " + source.DisplayName() + " Result",
		Price:     m.price,
		Estimated: true,
	}
}

// mockNotifier implements driven.Notifier, recording everything emitted.
type mockNotifier struct {
	mu            sync.Mutex
	notifications []domain.Notification
	updates       []domain.PriceUpdate
}

func (m *mockNotifier) Notify(n domain.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, n)
}

func (m *mockNotifier) PriceUpdated(u domain.PriceUpdate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, u)
}

func (m *mockNotifier) notified() []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Notification(nil), m.notifications...)
}

func (m *mockNotifier) updated() []domain.PriceUpdate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.PriceUpdate(nil), m.updates...)
}

// stubSettings implements driving.SettingsService with fixed settings.
type stubSettings struct {
	settings domain.Settings
	updated  *domain.Settings
}

func newStubSettings() *stubSettings {
	return &stubSettings{settings: domain.DefaultSettings()}
}

func (s *stubSettings) Get() (*domain.Settings, error) {
	settingsCopy := s.settings
	return &settingsCopy, nil
}

func (s *stubSettings) Update(settings domain.Settings) error {
	s.settings = settings
	s.updated = &settings
	return nil
}

// mockConfigStore implements driven.ConfigStore in memory.
type mockConfigStore struct {
	data map[string]any
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{data: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if v, ok := m.data[key].(string); ok {
		return v
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	switch v := m.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

func (m *mockConfigStore) GetFloat(key string) float64 {
	switch v := m.data[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func (m *mockConfigStore) GetBool(key string) bool {
	if v, ok := m.data[key].(bool); ok {
		return v
	}
	return false
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.data[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }
func (m *mockConfigStore) Path() string {
	return "/tmp/pricewatch-test/config.toml"
}
