package service_test

import (
	"context"
	"testing"

	"freight-booking-backend/internal/domain"
	"freight-booking-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPartyService(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPartyRepo)
	svc := service.NewPartyService(repo)

	t.Run("Create normalizes", func(t *testing.T) {
		repo.On("Create", ctx, mock.MatchedBy(func(p *domain.Party) bool {
			return p.Name == "Acme Traders" && p.GSTNumber == "27ABCDE1234F1Z5"
		})).Return(nil).Once()

		err := svc.CreateParty(ctx, &domain.Party{Name: "  Acme Traders ", GSTNumber: "27abcde1234f1z5"})
		assert.NoError(t, err)
	})

	t.Run("Name required", func(t *testing.T) {
		err := svc.CreateParty(ctx, &domain.Party{Name: "  "})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("List trims query", func(t *testing.T) {
		repo.On("List", ctx, "acme", int32(1), int32(20)).Return([]domain.Party{{ID: 1}}, int64(1), nil)

		parties, total, err := svc.ListParties(ctx, " acme ", 1, 20)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, parties, 1)
	})
}

func TestVehicleService(t *testing.T) {
	ctx := context.Background()
	repo := new(MockVehicleRepo)
	svc := service.NewVehicleService(repo)

	t.Run("Vehicle number is canonical", func(t *testing.T) {
		repo.On("Create", ctx, mock.MatchedBy(func(v *domain.Vehicle) bool {
			return v.VehicleNo == "MH12AB1234"
		})).Return(nil).Once()

		assert.NoError(t, svc.CreateVehicle(ctx, &domain.Vehicle{VehicleNo: "mh 12 ab 1234"}))
	})

	t.Run("Conflict is passed through", func(t *testing.T) {
		repo.On("Update", ctx, mock.Anything).Return(domain.ConflictError{Resource: "vehicle", Msg: "MH01 already exists"}).Once()

		err := svc.UpdateVehicle(ctx, &domain.Vehicle{ID: 2, VehicleNo: "MH01"})
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("Vehicle number required", func(t *testing.T) {
		assert.True(t, domain.IsValidation(svc.UpdateVehicle(ctx, &domain.Vehicle{ID: 2})))
	})
}
