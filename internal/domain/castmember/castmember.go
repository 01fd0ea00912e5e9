package castmember

import (
	"context"

	"github.com/narwhalmedia/catalog/internal/domain/identifier"
)

// ID identifies a cast member
type ID string

// NewID generates a fresh cast member id
func NewID() ID {
	return ID(identifier.Generate())
}

// Gateway is the existence port used when other aggregates reference cast members.
type Gateway interface {
	// ExistsByIDs returns the subset of ids that are stored. Order is not guaranteed.
	ExistsByIDs(ctx context.Context, ids []ID) ([]ID, error)
}
