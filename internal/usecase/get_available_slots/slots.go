package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// generateTimeSlots генерирует слоты с начала работы с шагом длительности услуги
// Слот, заканчивающийся позже закрытия, не включается; на сегодня отбрасываются уже начавшиеся слоты
func generateTimeSlots(schedule *domain.Schedule, date time.Time, durationMinutes int, now time.Time) []domain.AvailableSlot {
	slots := make([]domain.AvailableSlot, 0)
	if schedule == nil || durationMinutes <= 0 {
		return slots
	}

	open := schedule.OpenAt(date)
	closeAt := schedule.CloseAt(date)
	step := time.Duration(durationMinutes) * time.Minute

	for start := open; !start.Add(step).After(closeAt); start = start.Add(step) {
		if start.Before(now) {
			continue
		}
		slots = append(slots, domain.AvailableSlot{
			StartTime:       start,
			EndTime:         start.Add(step),
			DurationMinutes: durationMinutes,
			Available:       true,
		})
	}

	return slots
}

// markTakenSlots помечает слоты, пересекающиеся с подтвержденными бронированиями
// Смежные интервалы (конец одного равен началу другого) не пересекаются
func markTakenSlots(slots []domain.AvailableSlot, windows []domain.ServiceBookingWindow) {
	for i := range slots {
		slot := domain.DateRange{Start: slots[i].StartTime, End: slots[i].EndTime}
		for _, w := range windows {
			if slot.Overlaps(domain.DateRange{Start: w.StartTime, End: w.EndTime}) {
				slots[i].Available = false
				break
			}
		}
	}
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
// isDateInPast сравнивает календарные дни в часовом поясе даты запроса
func isDateInPast(date, now time.Time) bool {
	return startOfDay(date).Before(startOfDay(now.In(date.Location())))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
