package video

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/narwhalmedia/catalog/internal/domain/identifier"
	"github.com/narwhalmedia/catalog/internal/domain/validation"
	"github.com/narwhalmedia/catalog/internal/domain/video"
)

// validateReferences checks that every referenced category, genre and cast member exists.
// All three checks run to completion; their errors are appended in that fixed order.
func (s *Service) validateReferences(ctx context.Context, m video.Metadata, n *validation.Notification) error {
	var (
		g       errgroup.Group
		results [3]*validation.Error
	)

	g.Go(func() (err error) {
		results[0], err = validateAggregateIDs(ctx, m.Categories, s.categories.ExistsByIDs, "categories")
		return err
	})
	g.Go(func() (err error) {
		results[1], err = validateAggregateIDs(ctx, m.Genres, s.genres.ExistsByIDs, "genres")
		return err
	})
	g.Go(func() (err error) {
		results[2], err = validateAggregateIDs(ctx, m.CastMembers, s.castMembers.ExistsByIDs, "cast members")
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}
	for _, r := range results {
		if r != nil {
			n.Append(*r)
		}
	}
	return nil
}

// validateAggregateIDs returns one error naming the ids that existsByIDs did not find.
// The checker is not called for an empty id set.
func validateAggregateIDs[T ~string](
	ctx context.Context,
	ids []T,
	existsByIDs func(context.Context, []T) ([]T, error),
	aggregateName string,
) (*validation.Error, error) {
	ids = identifier.Unique(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	found, err := existsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", aggregateName, err)
	}

	existing := make(map[T]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}
	missing := make([]string, 0)
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			missing = append(missing, string(id))
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}

	return &validation.Error{
		Message: fmt.Sprintf("Some %s could not be found: %s", aggregateName, strings.Join(missing, ", ")),
	}, nil
}
