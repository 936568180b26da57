package finance

import (
	"testing"

	"freight-booking-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legacyBooking() domain.Booking {
	b := *validBooking()
	b.Charges = domain.Charges{
		VehicleCharges:   amt(400),
		LocalCharges:     amt(150),
		VehicleCostParty: amt(12000),
		PartyAdvance:     amt(3000),
		OtherCharges:     amt(250),
		TotalAmount:      amt(12250),
		PartyBalance:     amt(9250),
	}
	return b
}

func TestMigrateLegacyCharges(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		migrated, ok := MigrateLegacyCharges(legacyBooking())
		require.True(t, ok)

		c := migrated.Charges
		assertAmount(t, "12000", c.DealAmount)
		assertAmount(t, "3000", c.AdvancePaid)
		assert.True(t, c.VehicleCharges.IsZero())
		assert.True(t, c.LocalCharges.IsZero())
		assertAmount(t, "250", c.Other)
		assertAmount(t, "9000", c.PendingAmount)
		assertAmount(t, "12250", c.SubTotal)
		assertAmount(t, "12000", c.PreviousAmount)
		assertAmount(t, "9250", c.FinalPendingAmount)
	})

	t.Run("Does not modify the input", func(t *testing.T) {
		in := legacyBooking()
		_, ok := MigrateLegacyCharges(in)
		require.True(t, ok)
		assert.True(t, in.Charges.DealAmount.IsZero())
	})

	t.Run("Booking with deal amount passes through", func(t *testing.T) {
		in := legacyBooking()
		in.Charges.DealAmount = amt(5000)

		out, ok := MigrateLegacyCharges(in)
		assert.False(t, ok)
		assert.Equal(t, in, out)
	})

	t.Run("Idempotent", func(t *testing.T) {
		once, ok := MigrateLegacyCharges(legacyBooking())
		require.True(t, ok)

		twice, ok := MigrateLegacyCharges(once)
		assert.False(t, ok)
		assert.Equal(t, once, twice)
	})

	t.Run("Empty charges are not legacy", func(t *testing.T) {
		_, ok := MigrateLegacyCharges(*validBooking())
		assert.False(t, ok)
	})
}
