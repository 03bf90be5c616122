package dexadapter

import (
	"github.com/pkg/errors"
)

// RouteHop is one leg of a stored swap route: which AMM pool to use and the
// token it produces.
type RouteHop struct {
	AmmIndex uint16
	TokenOut string
}

// RouteRecord is an ordered hop list keyed by the unsorted (first, last)
// mint pair as given. The key is direction-sensitive: the reverse path is a
// separate record. Whether the hops actually connect the two mints is the
// route author's responsibility and is not re-validated at swap time.
type RouteRecord struct {
	Id uint64

	MintFirst string
	MintLast  string

	Hops []RouteHop
}

func (r *RouteRecord) Validate() error {
	if len(r.MintFirst) == 0 {
		return errors.New("first mint is required")
	}

	if len(r.MintLast) == 0 {
		return errors.New("last mint is required")
	}

	if len(r.Hops) == 0 {
		return errors.New("at least one hop is required")
	}

	for _, hop := range r.Hops {
		if len(hop.TokenOut) == 0 {
			return errors.New("hop output token is required")
		}
	}

	return nil
}

func (r *RouteRecord) Clone() RouteRecord {
	hops := make([]RouteHop, len(r.Hops))
	copy(hops, r.Hops)

	return RouteRecord{
		Id:        r.Id,
		MintFirst: r.MintFirst,
		MintLast:  r.MintLast,
		Hops:      hops,
	}
}

func (r *RouteRecord) CopyTo(dst *RouteRecord) {
	dst.Id = r.Id
	dst.MintFirst = r.MintFirst
	dst.MintLast = r.MintLast

	dst.Hops = make([]RouteHop, len(r.Hops))
	copy(dst.Hops, r.Hops)
}
