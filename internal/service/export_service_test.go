package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hms-api/internal/models"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
)

type staticStudentList []models.Student

func (s staticStudentList) List(context.Context) ([]models.Student, error) { return s, nil }

type staticFeeList []models.Fee

func (s staticFeeList) List(context.Context) ([]models.Fee, error) { return s, nil }

type staticAttendanceLog []models.Attendance

func (s staticAttendanceLog) ListInWindow(context.Context, time.Time, time.Time) ([]models.Attendance, error) {
	return s, nil
}

func newExportFixture() *ExportService {
	room := "A-101"
	students := staticStudentList{
		{StudentID: "STU001", Name: "Asha", Email: "asha@example.com", Phone: "9000000001", Room: &room},
		{StudentID: "STU002", Name: "Ravi", Email: "ravi@example.com", Phone: "9000000002"},
	}
	fees := staticFeeList{
		{StudentID: "STU001", Month: "2026-03", Amount: 1200, Status: models.FeePaid},
	}
	attendance := staticAttendanceLog{
		{StudentID: "STU001", Type: models.AttendanceCheckIn, Timestamp: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)},
	}
	return NewExportService(students, fees, attendance, nil)
}

func TestExportStudentsCSV(t *testing.T) {
	svc := newExportFixture()

	result, err := svc.Students(context.Background(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "students.csv", result.Filename)

	lines := strings.Split(strings.TrimSpace(string(result.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Student ID,Name,Email,Phone,Room", strings.TrimSpace(lines[0]))
	assert.Contains(t, string(result.Data), "STU001,Asha,asha@example.com,9000000001,A-101")
}

func TestExportFeesPDF(t *testing.T) {
	svc := newExportFixture()

	result, err := svc.Fees(context.Background(), FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, "fees.pdf", result.Filename)
	assert.True(t, strings.HasPrefix(string(result.Data), "%PDF"))
}

func TestExportAttendanceCSV(t *testing.T) {
	svc := newExportFixture()

	result, err := svc.Attendance(context.Background(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "attendance.csv", result.Filename)
	assert.Contains(t, string(result.Data), "STU001,checkin,2026-03-10T08:00:00Z")
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := newExportFixture()

	_, err := svc.Students(context.Background(), ExportFormat("xlsx"))
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
