package health

import "context"

// CachePinger checks ranking cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// Catalog reports the number of loaded movies.
type Catalog interface {
	Len() int
}
