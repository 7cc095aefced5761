package entities

import (
	"testing"
	"time"

	"equipment-system/pkg/constants"

	"github.com/stretchr/testify/assert"
)

func TestMaintenanceEffectiveStatus(t *testing.T) {
	now := date("2025-08-12").Add(15 * time.Hour)

	t.Run("scheduled с датой в прошлом показывается как overdue", func(t *testing.T) {
		m := MaintenanceRecord{
			Status:        constants.MaintenanceStatusScheduled,
			ScheduledDate: datePtr("2025-08-01"),
		}
		assert.Equal(t, constants.MaintenanceStatusOverdue, m.EffectiveStatus(now))
		// хранимое поле не мутируется
		assert.Equal(t, constants.MaintenanceStatusScheduled, m.Status)
	})

	t.Run("scheduled на сегодня ещё не просрочено", func(t *testing.T) {
		m := MaintenanceRecord{
			Status:        constants.MaintenanceStatusScheduled,
			ScheduledDate: datePtr("2025-08-12"),
		}
		assert.Equal(t, constants.MaintenanceStatusScheduled, m.EffectiveStatus(now))
	})

	t.Run("scheduled в будущем", func(t *testing.T) {
		m := MaintenanceRecord{
			Status:        constants.MaintenanceStatusScheduled,
			ScheduledDate: datePtr("2025-09-01"),
		}
		assert.Equal(t, constants.MaintenanceStatusScheduled, m.EffectiveStatus(now))
	})

	t.Run("завершённая запись не бывает overdue", func(t *testing.T) {
		m := MaintenanceRecord{
			Status:        constants.MaintenanceStatusCompleted,
			ScheduledDate: datePtr("2025-08-01"),
		}
		assert.Equal(t, constants.MaintenanceStatusCompleted, m.EffectiveStatus(now))
	})

	t.Run("scheduled без даты", func(t *testing.T) {
		m := MaintenanceRecord{Status: constants.MaintenanceStatusScheduled}
		assert.Equal(t, constants.MaintenanceStatusScheduled, m.EffectiveStatus(now))
	})
}
