package service

import (
	"context"
	"errors"

	"github.com/deppfellow/printgallery/internal/errs"
	"github.com/deppfellow/printgallery/internal/lib/job"
	"github.com/deppfellow/printgallery/internal/logger"
	"github.com/deppfellow/printgallery/internal/repository"
	"github.com/deppfellow/printgallery/internal/server"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Enqueuer pushes background tasks. *asynq.Client implements it.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Services struct {
	Categories *CategoryService
	Images     *ImageService
	Users      *UserService
	Job        *job.JobService
}

// NewService wires the services over repos. Without a job service the
// welcome email is skipped.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var enqueuer Enqueuer
	if s.Job != nil {
		enqueuer = s.Job.Client
	}

	return &Services{
		Categories: NewCategoryService(repos.Categories, s.Logger),
		Images:     NewImageService(repos.Images, s.Logger),
		Users:      NewUserService(repos.Users, enqueuer, s.Logger),
		Job:        s.Job,
	}, nil
}

// logFailure records a failed operation. Not-found and bad input are
// caller mistakes and logged at warn; everything else at error.
func logFailure(ctx context.Context, base *zerolog.Logger, operation string, err error) {
	log := logger.FromContext(ctx, base)

	event := log.Error()
	switch errs.KindOf(err) {
	case errs.KindNotFound, errs.KindInvalidArgument, errs.KindConstraintViolation:
		event = log.Warn()
	}

	var opErr *errs.Error
	if errors.As(err, &opErr) && opErr.Unwrap() != nil {
		event = event.AnErr("cause", opErr.Unwrap())
	}

	event.
		Str("operation", operation).
		Str("kind", string(errs.KindOf(err))).
		Err(err).
		Msg("store operation failed")
}

// isNotFound reports a single-row read that matched nothing. Those reads
// resolve to null rather than an error.
func isNotFound(err error) bool {
	return err != nil && errs.KindOf(err) == errs.KindNotFound
}
