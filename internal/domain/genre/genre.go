package genre

import (
	"context"

	"github.com/narwhalmedia/catalog/internal/domain/identifier"
)

// ID identifies a genre
type ID string

func NewID() ID {
	return ID(identifier.Generate())
}

// Gateway is the existence port used when other aggregates reference genres.
type Gateway interface {
	// ExistsByIDs returns the subset of ids that are stored. Order is not guaranteed.
	ExistsByIDs(ctx context.Context, ids []ID) ([]ID, error)
}
