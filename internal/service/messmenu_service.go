package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/hms-api/internal/models"
	appErrors "github.com/noah-isme/hms-api/pkg/errors"
)

type settingRepository interface {
	GetMessMenu(ctx context.Context) (*models.MessMenu, error)
	UpsertMessMenu(ctx context.Context, menu models.MessMenu) error
}

// MessMenuService manages the weekly mess menu stored as a settings
// document.
type MessMenuService struct {
	settings settingRepository
	notify   notifier
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

// NewMessMenuService builds a MessMenuService.
func NewMessMenuService(settings settingRepository, notify notifier, validate *validator.Validate, logger *zap.Logger) *MessMenuService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessMenuService{
		settings: settings,
		notify:   notify,
		validate: validate,
		logger:   logger.Sugar(),
	}
}

// Get returns the weekly menu, falling back to an empty default when
// none is stored yet.
func (s *MessMenuService) Get(ctx context.Context) (*models.MessMenu, error) {
	menu, err := s.settings.GetMessMenu(ctx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			fallback := models.DefaultMessMenu()
			return &fallback, nil
		}
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}
	if menu.Week == nil {
		menu.Week = models.DefaultMessMenu().Week
	}
	return menu, nil
}

// UpdateDay replaces one weekday's meals and returns the full menu.
func (s *MessMenuService) UpdateDay(ctx context.Context, req models.UpdateMessMenuRequest) (*models.MessMenu, error) {
	req.Day = strings.ToLower(req.Day)
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrValidation, err)
	}

	menu, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	menu.Week[req.Day] = req.Menu

	if err := s.settings.UpsertMessMenu(ctx, *menu); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrInternal, err)
	}

	if s.notify != nil {
		s.notify.NotifyRole(models.RoleStudent, "Mess menu updated",
			"The menu for "+req.Day+" has changed")
	}
	s.logger.Infow("mess menu updated", "day", req.Day)
	return menu, nil
}

// EnsureDefault stores an empty weekly menu when none exists yet.
func (s *MessMenuService) EnsureDefault(ctx context.Context) error {
	_, err := s.settings.GetMessMenu(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}
	if err := s.settings.UpsertMessMenu(ctx, models.DefaultMessMenu()); err != nil {
		return appErrors.Wrap(appErrors.ErrInternal, err)
	}
	s.logger.Info("default mess menu created")
	return nil
}
