package service

import (
	"context"

	"github.com/deppfellow/printgallery/internal/lib/job"
	"github.com/deppfellow/printgallery/internal/logger"
	"github.com/deppfellow/printgallery/internal/model"
	"github.com/deppfellow/printgallery/internal/repository"
	"github.com/rs/zerolog"
)

type UserService struct {
	repo     repository.Users
	enqueuer Enqueuer
	logger   *zerolog.Logger
}

// NewUserService builds the service. enqueuer may be nil.
func NewUserService(repo repository.Users, enqueuer Enqueuer, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, enqueuer: enqueuer, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		logFailure(ctx, s.logger, "users.list", err)
		return nil, err
	}
	return users, nil
}

// GetByUsername returns nil without an error when no user has username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		logFailure(ctx, s.logger, "users.get", err)
		return nil, err
	}
	return user, nil
}

// Create inserts the user and queues the welcome email. A failed enqueue is
// logged and does not fail the mutation.
func (s *UserService) Create(ctx context.Context, in model.NewUser) (*model.User, error) {
	user, err := s.repo.Create(ctx, in)
	if err != nil {
		logFailure(ctx, s.logger, "users.create", err)
		return nil, err
	}

	s.enqueueWelcome(ctx, user)
	return user, nil
}

func (s *UserService) enqueueWelcome(ctx context.Context, user *model.User) {
	if s.enqueuer == nil {
		return
	}

	log := logger.FromContext(ctx, s.logger)

	task, err := job.NewWelcomeEmailTask(user.EmailAddress, user.Username, user.Fullname)
	if err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("failed to build welcome email task")
		return
	}

	info, err := s.enqueuer.EnqueueContext(ctx, task)
	if err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("failed to enqueue welcome email")
		return
	}

	log.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("welcome email enqueued")
}

func (s *UserService) Delete(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.DeleteByUsername(ctx, username)
	if err != nil {
		logFailure(ctx, s.logger, "users.delete", err)
		return nil, err
	}
	return user, nil
}

// Update changes one user field from its text form. "forename" names the
// fullname column.
func (s *UserService) Update(ctx context.Context, userID int32, field, newValue string) (*model.User, error) {
	patch, err := model.NewUserPatch(field, newValue)
	if err != nil {
		logFailure(ctx, s.logger, "users.update", err)
		return nil, err
	}
	return s.apply(ctx, userID, patch)
}

// UpdateFlag changes owns_printer or designer_tag.
func (s *UserService) UpdateFlag(ctx context.Context, userID int32, field string, newValue bool) (*model.User, error) {
	patch, err := model.NewUserFlagPatch(field, newValue)
	if err != nil {
		logFailure(ctx, s.logger, "users.update_flag", err)
		return nil, err
	}
	return s.apply(ctx, userID, patch)
}

func (s *UserService) apply(ctx context.Context, userID int32, patch model.Patch[model.User]) (*model.User, error) {
	user, err := s.repo.Update(ctx, userID, patch)
	if err != nil {
		logFailure(ctx, s.logger, "users.update", err)
		return nil, err
	}
	return user, nil
}
