package reports

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

const dateTimeLayout = "2006-01-02 15:04"

var (
	parkingColumns = []string{"UUID", "Confirmation", "Status", "Spot", "Start", "End", "Cost", "License plate"}
	serviceColumns = []string{"UUID", "Confirmation", "Status", "Service", "Start", "End", "Cost", "License plate"}
)

// Service выгрузка бронирований в XLSX
type Service struct {
	bookings BookingLister
	logger   Logger
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(bookings BookingLister, logger Logger) *Service {
	return &Service{
		bookings: bookings,
		logger:   logger,
	}
}

// ExportBookings пишет в w книгу с листами Parking и Services
// При status == nil выгружаются бронирования во всех статусах
func (s *Service) ExportBookings(ctx context.Context, w io.Writer, status *domain.BookingStatus) error {
	s.logger.Info("ExportBookings: status=%v", status)

	parking, err := s.bookings.List(ctx, domain.BookingsFilter{Kind: ptr.Ptr(domain.KindParking), Status: status})
	if err != nil {
		s.logger.Error("ExportBookings: failed to list parking bookings: %v", err)
		return fmt.Errorf("%w: %v", ErrFetchBookings, err)
	}
	services, err := s.bookings.List(ctx, domain.BookingsFilter{Kind: ptr.Ptr(domain.KindService), Status: status})
	if err != nil {
		s.logger.Error("ExportBookings: failed to list service bookings: %v", err)
		return fmt.Errorf("%w: %v", ErrFetchBookings, err)
	}

	file := excelize.NewFile()
	defer file.Close()

	if err := writeSheet(file, "Parking", true, parkingColumns, parking, func(b *domain.Booking) string {
		return ptr.Value(b.ParkingSpotID)
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteWorkbook, err)
	}
	if err := writeSheet(file, "Services", false, serviceColumns, services, func(b *domain.Booking) string {
		return ptr.Value(b.VehicleServiceID)
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteWorkbook, err)
	}

	if err := file.Write(w); err != nil {
		s.logger.Error("ExportBookings: failed to write workbook: %v", err)
		return fmt.Errorf("%w: %v", ErrWriteWorkbook, err)
	}

	s.logger.Info("ExportBookings: exported %d parking and %d service bookings", len(parking), len(services))
	return nil
}

func writeSheet(
	file *excelize.File,
	name string,
	first bool,
	columns []string,
	bookings []*domain.Booking,
	target func(b *domain.Booking) string,
) error {
	sheet, err := newSheet(file, name, first)
	if err != nil {
		return err
	}
	if err := sheet.header(columns); err != nil {
		return err
	}

	for _, b := range bookings {
		cost, _ := b.Cost.Round(2).Float64()
		err := sheet.write([]interface{}{
			b.ID,
			b.ConfirmationNumber,
			string(b.Status),
			target(b),
			b.StartTime.Format(dateTimeLayout),
			b.EndTime.Format(dateTimeLayout),
			cost,
			b.LicensePlate,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
