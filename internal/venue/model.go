package venue

import "time"

// Venue is a bookable place. Nil slot settings fall back to the service defaults.
type Venue struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Category     string    `db:"category" json:"category"`
	City         string    `db:"city" json:"city"`
	Address      string    `db:"address" json:"address"`
	OpenAt       *string   `db:"open_at" json:"open_at,omitempty"`
	CloseAt      *string   `db:"close_at" json:"close_at,omitempty"`
	SlotMinutes  *int      `db:"slot_minutes" json:"slot_minutes,omitempty"`
	SlotCapacity *int      `db:"slot_capacity" json:"slot_capacity,omitempty"`
	Timezone     *string   `db:"timezone" json:"timezone,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type CreateVenueRequest struct {
	ID           string `json:"id" validate:"omitempty,max=64,identifier"`
	Name         string `json:"name" validate:"required,max=200"`
	Category     string `json:"category" validate:"max=100"`
	City         string `json:"city" validate:"max=100"`
	Address      string `json:"address" validate:"max=300"`
	OpenAt       string `json:"open_at" validate:"omitempty,clock" example:"19:00"`
	CloseAt      string `json:"close_at" validate:"omitempty,clock" example:"23:00"`
	SlotMinutes  int    `json:"slot_minutes" validate:"omitempty,min=5,max=240"`
	SlotCapacity int    `json:"slot_capacity" validate:"omitempty,min=1,max=1000"`
	Timezone     string `json:"timezone" validate:"omitempty,timezone" example:"Europe/Istanbul"`
}

type DayResponse struct {
	Date    string `json:"date" example:"2025-08-08"`
	Weekday string `json:"weekday" example:"Friday"`
}
