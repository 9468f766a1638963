package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/hms-api/internal/models"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
)

type announcementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	List(ctx context.Context) ([]models.Announcement, error)
	Delete(ctx context.Context, id string) error
}

// AnnouncementService manages admin announcements.
type AnnouncementService struct {
	announcements announcementRepository
	notify        notifier
	validate      *validator.Validate
	logger        *zap.SugaredLogger
}

// NewAnnouncementService builds an AnnouncementService.
func NewAnnouncementService(announcements announcementRepository, notify notifier, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{
		announcements: announcements,
		notify:        notify,
		validate:      validate,
		logger:        logger.Sugar(),
	}
}

// Create posts an announcement and broadcasts it to students.
func (s *AnnouncementService) Create(ctx context.Context, postedBy string, req models.CreateAnnouncementRequest) (*models.Announcement, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrValidation, err)
	}

	announcement := &models.Announcement{
		ID:       uuid.NewString(),
		Title:    req.Title,
		Body:     req.Body,
		PostedBy: postedBy,
	}
	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	if s.notify != nil {
		s.notify.NotifyRole(models.RoleStudent, req.Title, req.Body)
	}
	s.logger.Infow("announcement posted", "title", req.Title, "posted_by", postedBy)
	return announcement, nil
}

// List returns all announcements, newest first.
func (s *AnnouncementService) List(ctx context.Context) ([]models.Announcement, error) {
	announcements, err := s.announcements.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return announcements, nil
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	if err := s.announcements.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.Clone(appErrors.ErrNotFound, "announcement not found")
		}
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}
	return nil
}
