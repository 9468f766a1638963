package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/hms-api/internal/models"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
	"github.com/noah-isme/hms-api/pkg/export"
)

// ExportFormat selects the report output encoding.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

type exportStudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
}

type exportFeeRepository interface {
	List(ctx context.Context) ([]models.Fee, error)
}

type exportAttendanceRepository interface {
	ListInWindow(ctx context.Context, from, to time.Time) ([]models.Attendance, error)
}

// ExportService renders student, fee and attendance reports as CSV or
// PDF.
type ExportService struct {
	students   exportStudentRepository
	fees       exportFeeRepository
	attendance exportAttendanceRepository
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.SugaredLogger
	now        func() time.Time
}

// NewExportService builds an ExportService.
func NewExportService(students exportStudentRepository, fees exportFeeRepository, attendance exportAttendanceRepository, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		students:   students,
		fees:       fees,
		attendance: attendance,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger.Sugar(),
		now:        time.Now,
	}
}

// ExportResult bundles rendered bytes with HTTP metadata.
type ExportResult struct {
	ContentType string
	Filename    string
	Data        []byte
}

// Students renders the student roster.
func (s *ExportService) Students(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	dataset := export.NewDataset("Student Roster", "Student ID", "Name", "Email", "Phone", "Room")
	for _, student := range students {
		room := ""
		if student.Room != nil {
			room = *student.Room
		}
		dataset.Append(student.StudentID, student.Name, student.Email, student.Phone, room)
	}
	return s.render(dataset, format, "students")
}

// Fees renders the fee ledger.
func (s *ExportService) Fees(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	fees, err := s.fees.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	dataset := export.NewDataset("Fee Ledger", "Student ID", "Month", "Amount", "Status")
	for _, fee := range fees {
		dataset.Append(fee.StudentID, fee.Month, strconv.FormatFloat(fee.Amount, 'f', 2, 64), string(fee.Status))
	}
	return s.render(dataset, format, "fees")
}

// Attendance renders today's attendance log.
func (s *ExportService) Attendance(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	from, to := dayWindow(s.now())
	records, err := s.attendance.ListInWindow(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	dataset := export.NewDataset("Attendance Log", "Student ID", "Type", "Time")
	for _, record := range records {
		dataset.Append(record.StudentID, string(record.Type), record.Timestamp.Format(time.RFC3339))
	}
	return s.render(dataset, format, "attendance")
}

func (s *ExportService) render(dataset *export.Dataset, format ExportFormat, name string) (*ExportResult, error) {
	switch format {
	case FormatCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(appErrors.ErrInternal, err)
		}
		return &ExportResult{
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("%s.csv", name),
			Data:        data,
		}, nil
	case FormatPDF:
		data, err := s.pdf.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(appErrors.ErrInternal, err)
		}
		return &ExportResult{
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("%s.pdf", name),
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
