package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
	"github.com/meridian-labs/pricewatch-cli/internal/core/ports/driving"
)

// --- Stub services for command tests ---

// stubTracker implements driving.TrackerService over a product slice.
type stubTracker struct {
	products []domain.TrackedProduct
	added    []driving.AddProductRequest
	removed  []string
	cleared  bool
	imported *domain.ExportDocument
	err      error
}

func (s *stubTracker) AddProduct(_ context.Context, req driving.AddProductRequest) (*domain.TrackedProduct, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.added = append(s.added, req)
	product := domain.TrackedProduct{
		ID:          "test-id",
		Name:        req.Name,
		Query:       req.Query,
		Sources:     req.Sources,
		TargetPrice: req.TargetPrice,
		BestPrice:   99.99,
		Results: []domain.SourceResult{
			{Source: domain.SourceAmazon, Title: "Test Item", Price: 99.99},
		},
	}
	if product.Name == "" {
		product.Name = req.Query
	}
	return &product, nil
}

func (s *stubTracker) Get(_ context.Context, id string) (*domain.TrackedProduct, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
}

func (s *stubTracker) List(_ context.Context) ([]domain.TrackedProduct, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func (s *stubTracker) RemoveProduct(_ context.Context, id string) error {
	s.removed = append(s.removed, id)
	return s.err
}

func (s *stubTracker) ClearAll(_ context.Context) error {
	s.cleared = true
	return s.err
}

func (s *stubTracker) RecordCheck(_ context.Context, id string, results []domain.SourceResult) (*domain.CheckDelta, error) {
	return &domain.CheckDelta{ProductID: id}, nil
}

func (s *stubTracker) Export(_ context.Context) (*domain.ExportDocument, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.ExportDocument{
		Settings: domain.DefaultSettings(),
		Products: s.products,
	}, nil
}

func (s *stubTracker) Import(_ context.Context, doc *domain.ExportDocument) error {
	s.imported = doc
	return s.err
}

// stubChecker implements driving.CheckOrchestrator.
type stubChecker struct {
	checkedAll bool
	checked    []string
	err        error
}

func (s *stubChecker) CheckAll(_ context.Context) error {
	s.checkedAll = true
	return s.err
}

func (s *stubChecker) CheckProduct(_ context.Context, id string) error {
	s.checked = append(s.checked, id)
	return s.err
}

func (s *stubChecker) Run(_ context.Context) error {
	return s.err
}

// stubSettingsService implements driving.SettingsService.
type stubSettingsService struct {
	settings domain.Settings
	updated  *domain.Settings
}

func newStubSettingsService() *stubSettingsService {
	return &stubSettingsService{settings: domain.DefaultSettings()}
}

func (s *stubSettingsService) Get() (*domain.Settings, error) {
	settingsCopy := s.settings
	return &settingsCopy, nil
}

func (s *stubSettingsService) Update(settings domain.Settings) error {
	s.settings = settings
	s.updated = &settings
	return nil
}

// execute runs the root command with the given args and injected stubs,
// returning the combined output. Services are restored afterwards.
func execute(t *testing.T, services Services, args ...string) (string, error) {
	t.Helper()

	prevTracker := trackerService
	prevChecker := checkerService
	prevSettings := settingsService
	prevPath := configPath
	prevReload := configReload
	t.Cleanup(func() {
		trackerService = prevTracker
		checkerService = prevChecker
		settingsService = prevSettings
		configPath = prevPath
		configReload = prevReload
		rootCmd.SetArgs(nil)
	})

	SetServices(services)
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every command flag to its default so tests do not
// leak state into each other.
func resetFlags() {
	addName = ""
	addSources = nil
	addTarget = 0
	listJSON = false
	historyLimit = 20
	clearForce = false
	verbose = false
}

// testProduct builds a product for display tests.
func testProduct(id, name string) domain.TrackedProduct {
	return domain.TrackedProduct{
		ID:      id,
		Name:    name,
		Query:   name,
		Sources: []domain.Source{domain.SourceAmazon},
		Results: []domain.SourceResult{
			{Source: domain.SourceAmazon, Title: name, Price: 99.99, URL: "https://www.amazon.com/s?k=x"},
		},
		BestPrice: 99.99,
	}
}
