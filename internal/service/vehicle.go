package service

import (
	"context"
	"strings"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

func (s *vehicleService) CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if err := normalizeVehicle(vehicle); err != nil {
		return err
	}
	return s.vehicleRepo.Create(ctx, vehicle)
}

func (s *vehicleService) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if err := normalizeVehicle(vehicle); err != nil {
		return err
	}
	return s.vehicleRepo.Update(ctx, vehicle)
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, id int64) error {
	return s.vehicleRepo.Delete(ctx, id)
}

func (s *vehicleService) ListVehicles(ctx context.Context, query string, page, pageSize int32) ([]domain.Vehicle, int64, error) {
	return s.vehicleRepo.List(ctx, strings.TrimSpace(query), page, pageSize)
}

// Vehicle numbers are stored upper case without spaces so that the unique
// index catches "mh 12 ab 1234" and "MH12AB1234" as the same vehicle.
func normalizeVehicle(v *domain.Vehicle) error {
	v.VehicleNo = strings.ToUpper(strings.Join(strings.Fields(v.VehicleNo), ""))
	v.OwnerName = strings.TrimSpace(v.OwnerName)
	v.OwnerContact = strings.TrimSpace(v.OwnerContact)
	v.VehicleType = strings.TrimSpace(v.VehicleType)
	if v.VehicleNo == "" {
		return domain.ValidationError{Field: "vehicleNo", Msg: "is required"}
	}
	return nil
}
