package sources

import (
	"fmt"

	"github.com/meridian-labs/pricewatch-cli/internal/core/domain"
	"github.com/meridian-labs/pricewatch-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.SourceRegistry = (*Registry)(nil)

// Registry resolves PriceSource implementations by source identifier.
type Registry struct {
	sites map[domain.Source]driven.PriceSource
}

// NewRegistry creates a registry over the given price sources.
func NewRegistry(sites ...driven.PriceSource) *Registry {
	r := &Registry{sites: make(map[domain.Source]driven.PriceSource, len(sites))}
	for _, site := range sites {
		r.sites[site.Source()] = site
	}
	return r
}

// NewDefaultRegistry creates a registry with every supported retail site
// sharing one fetch client.
func NewDefaultRegistry() *Registry {
	client := NewClient()
	return NewRegistry(
		NewAmazonSite(client),
		NewEbaySite(client),
		NewWalmartSite(client),
	)
}

// Lookup returns the PriceSource for the given source.
func (r *Registry) Lookup(source domain.Source) (driven.PriceSource, error) {
	site, ok := r.sites[source]
	if !ok {
		return nil, fmt.Errorf("%w: source %q", domain.ErrNotFound, source)
	}
	return site, nil
}
