package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на получение слотов услуги
type Request struct {
	ServiceID string    // ID услуги (car-wash)
	Date      time.Time // Дата (время отбрасывается)
}

// Response модель ответа со списком слотов
type Response struct {
	Date        time.Time              // Дата, на которую запрашивались слоты
	ServiceID   string                 // ID услуги
	ServiceName string                 // Название услуги
	Slots       []domain.AvailableSlot // Слоты с шагом длительности услуги
}
