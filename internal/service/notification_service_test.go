package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/noah-isme/hms-api/internal/models"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
	"github.com/noah-isme/hms-api/pkg/jobs"
)

type fakeNotificationRepo struct {
	notifications map[string]*models.Notification
	lastLimit     int64
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: map[string]*models.Notification{}}
}

func (f *fakeNotificationRepo) visible(n *models.Notification, userID string, role models.UserRole) bool {
	if n.User != nil {
		return *n.User == userID
	}
	return n.Role == role
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	copied := *n
	f.notifications[n.ID] = &copied
	return nil
}

func (f *fakeNotificationRepo) ListForUser(_ context.Context, userID string, role models.UserRole, limit int64) ([]models.Notification, error) {
	f.lastLimit = limit
	out := []models.Notification{}
	for _, n := range f.notifications {
		if f.visible(n, userID, role) && int64(len(out)) < limit {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) ListAll(_ context.Context, limit int64) ([]models.Notification, error) {
	f.lastLimit = limit
	out := []models.Notification{}
	for _, n := range f.notifications {
		if int64(len(out)) < limit {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.notifications[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.notifications, id)
	return nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID string, role models.UserRole) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if f.visible(n, userID, role) && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, userID string, role models.UserRole) error {
	n, ok := f.notifications[id]
	if !ok || !f.visible(n, userID, role) {
		return mongo.ErrNoDocuments
	}
	n.Read = true
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID string, role models.UserRole) error {
	for _, n := range f.notifications {
		if f.visible(n, userID, role) {
			n.Read = true
		}
	}
	return nil
}

type fakeNotificationUserRepo struct {
	byProfile map[string]*models.User
}

func (f *fakeNotificationUserRepo) GetByStudentProfile(_ context.Context, profileID string) (*models.User, error) {
	if user, ok := f.byProfile[profileID]; ok {
		return user, nil
	}
	return nil, mongo.ErrNoDocuments
}

func newNotificationFixture() (*NotificationService, *fakeNotificationRepo) {
	repo := newFakeNotificationRepo()
	users := &fakeNotificationUserRepo{byProfile: map[string]*models.User{
		"s1": {ID: "u1", Username: "asha", Role: models.RoleStudent, StudentProfile: strPtr("s1")},
	}}
	return NewNotificationService(repo, users, nil), repo
}

func strPtr(s string) *string { return &s }

func TestDeliverPersistsNotification(t *testing.T) {
	svc, repo := newNotificationFixture()

	userID := "u1"
	err := svc.deliver(context.Background(), jobs.Job{
		ID:      "j1",
		Type:    "notification",
		Payload: notificationJob{UserID: &userID, Role: models.RoleStudent, Title: "Fee paid", Message: "March fee marked paid"},
	})
	require.NoError(t, err)
	require.Len(t, repo.notifications, 1)

	listed, err := svc.List(context.Background(), "u1", models.RoleStudent, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Fee paid", listed[0].Title)
}

func TestBroadcastVisibleByRoleOnly(t *testing.T) {
	svc, _ := newNotificationFixture()

	err := svc.deliver(context.Background(), jobs.Job{
		ID:      "j1",
		Payload: notificationJob{Role: models.RoleStudent, Title: "Notice", Message: "Water outage tomorrow"},
	})
	require.NoError(t, err)

	students, err := svc.List(context.Background(), "u1", models.RoleStudent, 0)
	require.NoError(t, err)
	assert.Len(t, students, 1)

	admins, err := svc.List(context.Background(), "a1", models.RoleAdmin, 0)
	require.NoError(t, err)
	assert.Empty(t, admins)
}

func TestMarkReadEnforcesVisibility(t *testing.T) {
	svc, repo := newNotificationFixture()
	other := "u2"
	repo.notifications["n1"] = &models.Notification{ID: "n1", User: &other, Role: models.RoleStudent, Title: "Private"}

	err := svc.MarkRead(context.Background(), "n1", "u1", models.RoleStudent)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.False(t, repo.notifications["n1"].Read)

	require.NoError(t, svc.MarkRead(context.Background(), "n1", "u2", models.RoleStudent))
	assert.True(t, repo.notifications["n1"].Read)
}

func TestUnreadCountAndMarkAllRead(t *testing.T) {
	svc, repo := newNotificationFixture()
	userID := "u1"
	repo.notifications["n1"] = &models.Notification{ID: "n1", User: &userID, Title: "One"}
	repo.notifications["n2"] = &models.Notification{ID: "n2", Role: models.RoleStudent, Title: "Two"}

	count, err := svc.UnreadCount(context.Background(), "u1", models.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.MarkAllRead(context.Background(), "u1", models.RoleStudent))
	count, err = svc.UnreadCount(context.Background(), "u1", models.RoleStudent)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotifyStudentProfileSkipsUnlinked(t *testing.T) {
	svc, repo := newNotificationFixture()

	// No account is linked to this profile and no queue is started;
	// both paths must be silent no-ops.
	svc.NotifyStudentProfile("ghost", "Title", "Message")
	svc.NotifyStudentProfile("s1", "Title", "Message")
	assert.Empty(t, repo.notifications)
}

func TestListClampsLimit(t *testing.T) {
	svc, repo := newNotificationFixture()

	_, err := svc.List(context.Background(), "u1", models.RoleStudent, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(50), repo.lastLimit)

	_, err = svc.List(context.Background(), "u1", models.RoleStudent, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(20), repo.lastLimit)
}

func TestListAllUsesAdminCap(t *testing.T) {
	svc, repo := newNotificationFixture()
	userID := "u1"
	repo.notifications["n1"] = &models.Notification{ID: "n1", User: &userID, Title: "One"}
	repo.notifications["n2"] = &models.Notification{ID: "n2", Role: models.RoleAdmin, Title: "Two"}

	listed, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 2)
	assert.Equal(t, int64(100), repo.lastLimit)
}

func TestDeleteNotification(t *testing.T) {
	svc, repo := newNotificationFixture()
	repo.notifications["n1"] = &models.Notification{ID: "n1", Title: "Old notice"}

	require.NoError(t, svc.Delete(context.Background(), "n1"))
	assert.Empty(t, repo.notifications)

	err := svc.Delete(context.Background(), "n1")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
