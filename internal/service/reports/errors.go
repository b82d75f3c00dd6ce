package reports

import "errors"

var (
	// ErrFetchBookings возвращается, когда не удалось получить бронирования
	ErrFetchBookings = errors.New("reports: failed to fetch bookings")

	// ErrWriteWorkbook возвращается при ошибке формирования XLSX
	ErrWriteWorkbook = errors.New("reports: failed to write workbook")
)
