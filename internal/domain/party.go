package domain

import "time"

type Party struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Contact   string    `json:"contact"`
	GSTNumber string    `json:"gstNumber"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Snapshot returns the subset of party data copied onto a booking.
func (p Party) Snapshot() PartySnapshot {
	return PartySnapshot{
		Name:      p.Name,
		Address:   p.Address,
		Contact:   p.Contact,
		GSTNumber: p.GSTNumber,
	}
}
