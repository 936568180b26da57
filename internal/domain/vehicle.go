package domain

import "time"

type Vehicle struct {
	ID           int64     `json:"id"`
	VehicleNo    string    `json:"vehicleNo"`
	OwnerName    string    `json:"ownerName"`
	OwnerContact string    `json:"ownerContact"`
	VehicleType  string    `json:"vehicleType"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (v Vehicle) Snapshot() VehicleSnapshot {
	return VehicleSnapshot{
		VehicleNo:    v.VehicleNo,
		OwnerName:    v.OwnerName,
		OwnerContact: v.OwnerContact,
		VehicleType:  v.VehicleType,
	}
}
