package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/noah-isme/hms-api/internal/models"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
)

type fakeFeeRepo struct {
	fees map[string]*models.Fee
}

func newFakeFeeRepo() *fakeFeeRepo {
	return &fakeFeeRepo{fees: map[string]*models.Fee{}}
}

func (f *fakeFeeRepo) Create(_ context.Context, fee *models.Fee) error {
	f.fees[fee.ID] = fee
	return nil
}

func (f *fakeFeeRepo) GetByID(_ context.Context, id string) (*models.Fee, error) {
	if fee, ok := f.fees[id]; ok {
		copied := *fee
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeFeeRepo) List(_ context.Context) ([]models.Fee, error) {
	out := []models.Fee{}
	for _, fee := range f.fees {
		out = append(out, *fee)
	}
	return out, nil
}

func (f *fakeFeeRepo) ListByStudent(_ context.Context, studentID string) ([]models.Fee, error) {
	out := []models.Fee{}
	for _, fee := range f.fees {
		if fee.StudentID == studentID {
			out = append(out, *fee)
		}
	}
	return out, nil
}

func (f *fakeFeeRepo) ExistsForMonth(_ context.Context, studentID, month string) (bool, error) {
	for _, fee := range f.fees {
		if fee.StudentID == studentID && fee.Month == month {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFeeRepo) Update(_ context.Context, fee *models.Fee) error {
	if _, ok := f.fees[fee.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	copied := *fee
	f.fees[fee.ID] = &copied
	return nil
}

func (f *fakeFeeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.fees[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.fees, id)
	return nil
}

type fakeFeeStudentRepo struct {
	students map[string]*models.Student
}

func (f *fakeFeeStudentRepo) GetByStudentID(_ context.Context, studentID string) (*models.Student, error) {
	if student, ok := f.students[studentID]; ok {
		return student, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeFeeStudentRepo) List(_ context.Context) ([]models.Student, error) {
	out := []models.Student{}
	for _, student := range f.students {
		out = append(out, *student)
	}
	return out, nil
}

func newFeeFixture() (*FeeService, *fakeFeeRepo, *recordingNotifier) {
	fees := newFakeFeeRepo()
	students := &fakeFeeStudentRepo{students: map[string]*models.Student{
		"STU001": {ID: "s1", StudentID: "STU001", Name: "Asha"},
		"STU002": {ID: "s2", StudentID: "STU002", Name: "Ravi"},
	}}
	notify := &recordingNotifier{}
	return NewFeeService(fees, students, notify, nil, nil), fees, notify
}

func TestCreateFeeUnknownStudent(t *testing.T) {
	svc, _, _ := newFeeFixture()

	_, err := svc.Create(context.Background(), models.CreateFeeRequest{
		StudentID: "GHOST", Month: "2026-03", Amount: 1200,
	})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCreateFeeDuplicateMonth(t *testing.T) {
	svc, _, _ := newFeeFixture()

	_, err := svc.Create(context.Background(), models.CreateFeeRequest{
		StudentID: "STU001", Month: "2026-03", Amount: 1200,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), models.CreateFeeRequest{
		StudentID: "STU001", Month: "2026-03", Amount: 1200,
	})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestCreateFeeNormalizesStudentKey(t *testing.T) {
	svc, _, _ := newFeeFixture()

	fee, err := svc.Create(context.Background(), models.CreateFeeRequest{
		StudentID: "stu001", Month: "2026-03", Amount: 1200,
	})
	require.NoError(t, err)
	assert.Equal(t, "STU001", fee.StudentID)
}

func TestGenerateMonthlySkipsExisting(t *testing.T) {
	svc, fees, _ := newFeeFixture()

	_, err := svc.Create(context.Background(), models.CreateFeeRequest{
		StudentID: "STU001", Month: "2026-03", Amount: 1200,
	})
	require.NoError(t, err)

	created, err := svc.GenerateMonthly(context.Background(), models.GenerateFeesRequest{
		Month: "2026-03", Amount: 1200,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Len(t, fees.fees, 2)
}

func TestTogglePaidRoundTrip(t *testing.T) {
	svc, _, notify := newFeeFixture()

	fee, err := svc.Create(context.Background(), models.CreateFeeRequest{
		StudentID: "STU001", Month: "2026-03", Amount: 1200,
	})
	require.NoError(t, err)
	assert.Equal(t, models.FeePending, fee.Status)

	paid, err := svc.TogglePaid(context.Background(), fee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FeePaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)
	assert.NotEmpty(t, notify.personal)

	pending, err := svc.TogglePaid(context.Background(), fee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FeePending, pending.Status)
	assert.Nil(t, pending.PaidAt)
}

func TestUpdateFeeMonthConflict(t *testing.T) {
	svc, _, _ := newFeeFixture()

	first, err := svc.Create(context.Background(), models.CreateFeeRequest{
		StudentID: "STU001", Month: "2026-03", Amount: 1200,
	})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), models.CreateFeeRequest{
		StudentID: "STU001", Month: "2026-04", Amount: 1200,
	})
	require.NoError(t, err)

	taken := "2026-03"
	_, err = svc.Update(context.Background(), second.ID, models.UpdateFeeRequest{Month: &taken})
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	free := "2026-05"
	updated, err := svc.Update(context.Background(), first.ID, models.UpdateFeeRequest{Month: &free})
	require.NoError(t, err)
	assert.Equal(t, "2026-05", updated.Month)
}

func TestUpdateFeeStatusTracksPaidAt(t *testing.T) {
	svc, _, _ := newFeeFixture()

	fee, err := svc.Create(context.Background(), models.CreateFeeRequest{
		StudentID: "STU001", Month: "2026-03", Amount: 1200,
	})
	require.NoError(t, err)

	paid := models.FeePaid
	updated, err := svc.Update(context.Background(), fee.ID, models.UpdateFeeRequest{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, models.FeePaid, updated.Status)
	assert.NotNil(t, updated.PaidAt)

	pending := models.FeePending
	updated, err = svc.Update(context.Background(), fee.ID, models.UpdateFeeRequest{Status: &pending})
	require.NoError(t, err)
	assert.Equal(t, models.FeePending, updated.Status)
	assert.Nil(t, updated.PaidAt)
}

func TestListRepairsMissingStudentRef(t *testing.T) {
	svc, fees, _ := newFeeFixture()
	fees.fees["f1"] = &models.Fee{
		ID: "f1", StudentID: "STU001", Month: "2026-02", Amount: 1200, Status: models.FeePending,
	}

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "s1", listed[0].Student)
	assert.Equal(t, "s1", fees.fees["f1"].Student)
}
