package station_test

import (
	"testing"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/station"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStation(t *testing.T, capacity int) *station.Station {
	t.Helper()
	s, err := station.NewStation(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Grill 1",
		station.TypeGrill,
		capacity,
		[]string{"charbroil"},
		[]string{"grill", "salamander"},
		[]string{"Alice"},
		5,
	)
	require.NoError(t, err)
	return s
}

func TestNewStation(t *testing.T) {
	t.Run("creates active empty station", func(t *testing.T) {
		s := newTestStation(t, 3)

		assert.Equal(t, station.StatusActive, s.Status())
		assert.Equal(t, 0, s.Workload())
		assert.Equal(t, 3, s.Headroom())
		assert.Equal(t, 1, s.Version())
		require.NoError(t, s.Validate())
	})

	t.Run("rejects non-positive capacity", func(t *testing.T) {
		_, err := station.NewStation(
			kernel.NewUUID(), kernel.NewUUID(), "Grill", station.TypeGrill,
			0, nil, nil, nil, 5,
		)
		require.Error(t, err)
	})

	t.Run("rejects empty name and type", func(t *testing.T) {
		_, err := station.NewStation(
			kernel.NewUUID(), kernel.NewUUID(), "", "",
			2, nil, nil, nil, 5,
		)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var s station.Station
		require.ErrorIs(t, s.Validate(), station.ErrStationIsNotConstructed)
	})
}

func TestStation_Reserve(t *testing.T) {
	t.Run("increments workload up to capacity", func(t *testing.T) {
		s := newTestStation(t, 2)

		require.NoError(t, s.Reserve())
		assert.Equal(t, 1, s.Workload())
		assert.Equal(t, station.StatusActive, s.Status())

		require.NoError(t, s.Reserve())
		assert.Equal(t, 2, s.Workload())
		assert.Equal(t, station.StatusBusy, s.Status())
	})

	t.Run("fails at capacity without exceeding it", func(t *testing.T) {
		s := newTestStation(t, 1)
		require.NoError(t, s.Reserve())

		err := s.Reserve()

		require.ErrorIs(t, err, station.ErrStationAtCapacity)
		assert.Equal(t, 1, s.Workload())
	})

	t.Run("rejects reservation while in maintenance", func(t *testing.T) {
		s, err := station.RestoreStation(
			kernel.NewUUID(), kernel.NewUUID(), "Fryer", station.TypeFry,
			2, 0, nil, nil, nil, station.StatusMaintenance, 4, 3,
		)
		require.NoError(t, err)

		require.ErrorIs(t, s.Reserve(), station.ErrStationNotAssignable)
		assert.Equal(t, 0, s.Workload())
	})
}

func TestStation_Release(t *testing.T) {
	t.Run("decrements workload and reopens busy station", func(t *testing.T) {
		s := newTestStation(t, 1)
		require.NoError(t, s.Reserve())
		require.Equal(t, station.StatusBusy, s.Status())

		require.NoError(t, s.Release())

		assert.Equal(t, 0, s.Workload())
		assert.Equal(t, station.StatusActive, s.Status())
	})

	t.Run("fails on empty station", func(t *testing.T) {
		s := newTestStation(t, 2)
		require.ErrorIs(t, s.Release(), station.ErrNothingToRelease)
	})
}

func TestRestoreStation(t *testing.T) {
	t.Run("restores persisted state", func(t *testing.T) {
		id := kernel.NewUUID()
		s, err := station.RestoreStation(
			id, kernel.NewUUID(), "Salad", station.TypeSalad,
			4, 2, []string{"vegan"}, []string{"chiller"}, []string{"Bob"},
			station.StatusActive, 3, 7,
		)

		require.NoError(t, err)
		assert.True(t, s.ID().IsEqual(id))
		assert.Equal(t, 2, s.Workload())
		assert.Equal(t, 7, s.Version())
		assert.InDelta(t, 0.5, s.Utilization(), 1e-9)
	})

	t.Run("rejects workload above capacity", func(t *testing.T) {
		_, err := station.RestoreStation(
			kernel.NewUUID(), kernel.NewUUID(), "Salad", station.TypeSalad,
			2, 3, nil, nil, nil, station.StatusActive, 3, 1,
		)
		require.Error(t, err)
	})

	t.Run("rejects invalid status and version", func(t *testing.T) {
		_, err := station.RestoreStation(
			kernel.NewUUID(), kernel.NewUUID(), "Salad", station.TypeSalad,
			2, 0, nil, nil, nil, station.StatusUnknown, 3, 0,
		)
		require.Error(t, err)
	})
}

func TestStation_Matching(t *testing.T) {
	s := newTestStation(t, 3)

	assert.True(t, s.HasSpecialization("charbroil"))
	assert.False(t, s.HasSpecialization("pastry"))
	assert.True(t, s.HasEquipment("salamander"))
	assert.False(t, s.HasEquipment("wok"))
}

func TestStation_EstimatedWaitMinutes(t *testing.T) {
	s := newTestStation(t, 3)
	assert.Equal(t, 0, s.EstimatedWaitMinutes())

	require.NoError(t, s.Reserve())
	require.NoError(t, s.Reserve())
	assert.Equal(t, 10, s.EstimatedWaitMinutes())
}
