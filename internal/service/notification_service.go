package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/hms-api/internal/models"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
	"github.com/noah-isme/hms-api/pkg/jobs"
)

type notificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListForUser(ctx context.Context, userID string, role models.UserRole, limit int64) ([]models.Notification, error)
	ListAll(ctx context.Context, limit int64) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID string, role models.UserRole) (int64, error)
	MarkRead(ctx context.Context, id, userID string, role models.UserRole) error
	MarkAllRead(ctx context.Context, userID string, role models.UserRole) error
	Delete(ctx context.Context, id string) error
}

type notificationUserRepository interface {
	GetByStudentProfile(ctx context.Context, profileID string) (*models.User, error)
}

// notificationJob is the queue payload for an outgoing notification.
type notificationJob struct {
	UserID  *string
	Role    models.UserRole
	Title   string
	Message string
}

// NotificationService delivers in-app notifications. Sends are
// fire-and-forget: they run on a background queue and failures are
// logged, never returned to the caller.
type NotificationService struct {
	notifications notificationRepository
	users         notificationUserRepository
	queue         *jobs.Queue
	logger        *zap.SugaredLogger
}

// NewNotificationService builds a NotificationService. Call Start to
// attach the background queue before sending.
func NewNotificationService(notifications notificationRepository, users notificationUserRepository, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		notifications: notifications,
		users:         users,
		logger:        logger.Sugar(),
	}
}

// Start wires and starts the delivery queue.
func (s *NotificationService) Start(ctx context.Context, cfg jobs.QueueConfig) {
	s.queue = jobs.NewQueue("notifications", s.deliver, cfg)
	s.queue.Start(ctx)
}

// Stop drains the delivery queue.
func (s *NotificationService) Stop() {
	if s.queue != nil {
		s.queue.Stop()
	}
}

func (s *NotificationService) deliver(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(notificationJob)
	if !ok {
		s.logger.Errorw("unexpected notification payload", "job_id", job.ID)
		return nil
	}
	n := &models.Notification{
		ID:      uuid.NewString(),
		User:    payload.UserID,
		Role:    payload.Role,
		Title:   payload.Title,
		Message: payload.Message,
	}
	return s.notifications.Create(ctx, n)
}

func (s *NotificationService) enqueue(payload notificationJob) {
	if s.queue == nil {
		s.logger.Warnw("notification dropped, queue not started", "title", payload.Title)
		return
	}
	job := jobs.Job{ID: uuid.NewString(), Type: "notification", Payload: payload}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warnw("notification enqueue failed", "title", payload.Title, "error", err)
	}
}

// NotifyStudentProfile sends a personal notification to the account
// linked to a student profile. Profiles without an account are skipped.
func (s *NotificationService) NotifyStudentProfile(profileID, title, message string) {
	user, err := s.users.GetByStudentProfile(context.Background(), profileID)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Warnw("notification target lookup failed", "profile_id", profileID, "error", err)
		}
		return
	}
	userID := user.ID
	s.enqueue(notificationJob{UserID: &userID, Role: user.Role, Title: title, Message: message})
}

// NotifyRole broadcasts a notification to every account with the role.
func (s *NotificationService) NotifyRole(role models.UserRole, title, message string) {
	s.enqueue(notificationJob{UserID: nil, Role: role, Title: title, Message: message})
}

// List returns the notifications visible to an account, newest first,
// at most 50 per call.
func (s *NotificationService) List(ctx context.Context, userID string, role models.UserRole, limit int64) ([]models.Notification, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	notifications, err := s.notifications.ListForUser(ctx, userID, role, limit)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return notifications, nil
}

// ListAll returns the most recent notifications across every account,
// capped at 100. Admin-only.
func (s *NotificationService) ListAll(ctx context.Context) ([]models.Notification, error) {
	notifications, err := s.notifications.ListAll(ctx, 100)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for an account.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string, role models.UserRole) (int64, error) {
	count, err := s.notifications.CountUnread(ctx, userID, role)
	if err != nil {
		return 0, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return count, nil
}

// MarkRead flags one of the account's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string, role models.UserRole) error {
	if err := s.notifications.MarkRead(ctx, id, userID, role); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
		}
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return nil
}

// MarkAllRead flags every visible notification as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string, role models.UserRole) error {
	if err := s.notifications.MarkAllRead(ctx, userID, role); err != nil {
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return nil
}

// Delete removes a notification. Admin-only.
func (s *NotificationService) Delete(ctx context.Context, id string) error {
	if err := s.notifications.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
		}
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return nil
}
