package database

import (
	"context"
	"sort"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/pkg/utils"
)

const defaultNearbyLimit = 20

// nearby prefilters with a bounding box in SQL, then keeps the rows whose
// great-circle distance is within the radius, nearest first.
func nearby[T any](
	ctx context.Context,
	b base,
	columns []any,
	q repositories.NearbyQuery,
	scan func(scanner) (*T, error),
	point func(*T) entities.GeoPoint,
) ([]*T, error) {
	minLat, maxLat, minLng, maxLng := utils.BoundingBox(q.Latitude, q.Longitude, q.RadiusKm)
	ds := b.selectFrom(columns).Where(
		goqu.C("latitude").Between(goqu.Range(minLat, maxLat)),
		goqu.C("longitude").Between(goqu.Range(minLng, maxLng)),
	)
	candidates, err := queryAll(ctx, b, ds, scan)
	if err != nil {
		return nil, err
	}

	type hit struct {
		item     *T
		distance float64
	}
	hits := make([]hit, 0, len(candidates))
	for _, c := range candidates {
		p := point(c)
		d := utils.DistanceKm(q.Latitude, q.Longitude, p.Latitude(), p.Longitude())
		if d <= q.RadiusKm {
			hits = append(hits, hit{item: c, distance: d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].distance < hits[j].distance })

	limit := q.Limit
	if limit <= 0 {
		limit = defaultNearbyLimit
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]*T, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.item)
	}
	return out, nil
}
