package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/noah-isme/hms-api/internal/models"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
)

type fakeLeaveRepo struct {
	leaves map[string]*models.Leave
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{leaves: map[string]*models.Leave{}}
}

func (f *fakeLeaveRepo) Create(_ context.Context, leave *models.Leave) error {
	f.leaves[leave.ID] = leave
	return nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (*models.Leave, error) {
	if leave, ok := f.leaves[id]; ok {
		copied := *leave
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeLeaveRepo) List(_ context.Context) ([]models.Leave, error) {
	out := []models.Leave{}
	for _, leave := range f.leaves {
		out = append(out, *leave)
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListByStudent(_ context.Context, studentID string) ([]models.Leave, error) {
	out := []models.Leave{}
	for _, leave := range f.leaves {
		if leave.StudentID == studentID {
			out = append(out, *leave)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) UpdateStatus(_ context.Context, id string, status models.LeaveStatus) error {
	leave, ok := f.leaves[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	leave.Status = status
	return nil
}

func (f *fakeLeaveRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.leaves[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.leaves, id)
	return nil
}

type fakeLeaveStudentRepo struct{}

func (fakeLeaveStudentRepo) GetByStudentID(_ context.Context, studentID string) (*models.Student, error) {
	return &models.Student{ID: "doc-" + studentID, StudentID: studentID}, nil
}

func newLeaveFixture() (*LeaveService, *fakeLeaveRepo, *recordingNotifier) {
	repo := newFakeLeaveRepo()
	notify := &recordingNotifier{}
	return NewLeaveService(repo, fakeLeaveStudentRepo{}, notify, nil, nil), repo, notify
}

func TestApplyLeaveInvertedRange(t *testing.T) {
	svc, _, _ := newLeaveFixture()

	from := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.Apply(context.Background(), "STU001", models.CreateLeaveRequest{
		Category: models.LeaveHome,
		Reason:   "semester break",
		FromDate: from,
		ToDate:   from.Add(-48 * time.Hour),
	})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestApplyLeaveNotifiesAdmins(t *testing.T) {
	svc, _, notify := newLeaveFixture()

	from := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	leave, err := svc.Apply(context.Background(), "STU001", models.CreateLeaveRequest{
		Category: models.LeaveMedical,
		Reason:   "clinic visit",
		FromDate: from,
		ToDate:   from.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, models.LeavePending, leave.Status)
	assert.NotEmpty(t, notify.role)
}

func TestDecideLeaveApprove(t *testing.T) {
	svc, repo, notify := newLeaveFixture()
	repo.leaves["l1"] = &models.Leave{ID: "l1", StudentID: "STU001", Status: models.LeavePending}

	leave, err := svc.Decide(context.Background(), "l1", models.LeaveApproved)
	require.NoError(t, err)
	assert.Equal(t, models.LeaveApproved, leave.Status)
	assert.Contains(t, notify.personal, "doc-STU001:Leave approved")
}

func TestDecideLeaveAlreadyProcessed(t *testing.T) {
	svc, repo, _ := newLeaveFixture()
	repo.leaves["l1"] = &models.Leave{ID: "l1", StudentID: "STU001", Status: models.LeaveRejected}

	_, err := svc.Decide(context.Background(), "l1", models.LeaveApproved)
	assert.ErrorIs(t, err, appErrors.ErrAlreadyProcessed)
}

func TestDecideLeaveInvalidStatus(t *testing.T) {
	svc, repo, _ := newLeaveFixture()
	repo.leaves["l1"] = &models.Leave{ID: "l1", StudentID: "STU001", Status: models.LeavePending}

	_, err := svc.Decide(context.Background(), "l1", models.LeavePending)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestDeleteLeave(t *testing.T) {
	svc, repo, _ := newLeaveFixture()
	repo.leaves["l1"] = &models.Leave{ID: "l1", StudentID: "STU001", Status: models.LeavePending}

	require.NoError(t, svc.Delete(context.Background(), "l1"))
	assert.Empty(t, repo.leaves)

	err := svc.Delete(context.Background(), "l1")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
