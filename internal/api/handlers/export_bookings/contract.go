package export_bookings

import (
	"context"
	"io"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type ReportService interface {
	ExportBookings(ctx context.Context, w io.Writer, status *domain.BookingStatus) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
