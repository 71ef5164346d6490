package venue

import "context"

type Repository interface {
	CreateVenue(ctx context.Context, v *Venue) error
	GetAllVenues(ctx context.Context) ([]Venue, error)
	GetVenueByID(ctx context.Context, id string) (*Venue, error)
	VenueExists(ctx context.Context, id string) (bool, error)
}
