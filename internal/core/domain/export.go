package domain

import "time"

// ExportDocument is the single serialisable document produced by the
// export operation: the full product collection plus settings. It
// round-trips through import unchanged.
type ExportDocument struct {
	// ExportedAt is when the document was produced.
	ExportedAt time.Time `json:"exported_at"`

	// Settings is the configuration at export time.
	Settings Settings `json:"settings"`

	// Products is the full tracked-product collection.
	Products []TrackedProduct `json:"products"`
}
