package repository

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"dockside/internal/database"
	"dockside/internal/domain"
	"dockside/internal/models"

	"github.com/rs/zerolog"
)

func isNotFound(err error) bool {
	return errors.Is(err, database.ErrNotFound)
}

// recoveryInterval задает паузу между попытками вернуться на primary.
const recoveryInterval = time.Minute

// FailoverSessionRepository пишет в primary (Redis), при ошибке
// переключается на fallback (память) и периодически пробует вернуться.
type FailoverSessionRepository struct {
	primary   domain.SessionRepository
	fallback  domain.SessionRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix nano
}

func NewFailoverSessionRepository(primary, fallback domain.SessionRepository, logger *zerolog.Logger) *FailoverSessionRepository {
	return &FailoverSessionRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// usePrimary reports whether the call should go to the primary store,
// flipping back for a probe once the recovery interval has passed.
func (r *FailoverSessionRepository) usePrimary() bool {
	if !r.isDown.Load() {
		return true
	}
	last := time.Unix(0, r.lastCheck.Load())
	return time.Since(last) > recoveryInterval
}

func (r *FailoverSessionRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("Primary session repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}

func (r *FailoverSessionRepository) markUp() {
	if r.isDown.Swap(false) {
		r.logger.Info().Msg("Primary session repository recovered")
	}
}

func (r *FailoverSessionRepository) SaveSession(ctx context.Context, session *models.Session) error {
	if r.usePrimary() {
		err := r.primary.SaveSession(ctx, session)
		if err == nil {
			r.markUp()
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.SaveSession(ctx, session)
}

func (r *FailoverSessionRepository) GetSession(ctx context.Context, id string) (*models.Session, error) {
	if r.usePrimary() {
		session, err := r.primary.GetSession(ctx, id)
		if err == nil {
			r.markUp()
			return session, nil
		}
		if isNotFound(err) {
			r.markUp()
			// Сессия могла быть выдана во время простоя primary
			return r.fallback.GetSession(ctx, id)
		}
		r.markDown(err)
	}
	return r.fallback.GetSession(ctx, id)
}

func (r *FailoverSessionRepository) DeleteSession(ctx context.Context, id string) error {
	if r.usePrimary() {
		err := r.primary.DeleteSession(ctx, id)
		if err == nil {
			r.markUp()
		} else {
			r.markDown(err)
		}
	}
	// Удаляем в обоих, чтобы отзыв пережил переключение
	return r.fallback.DeleteSession(ctx, id)
}

func (r *FailoverSessionRepository) CheckLoginRate(ctx context.Context, email string, limit int, window time.Duration) (bool, error) {
	if r.usePrimary() {
		allowed, err := r.primary.CheckLoginRate(ctx, email, limit, window)
		if err == nil {
			r.markUp()
			return allowed, nil
		}
		r.markDown(err)
	}
	return r.fallback.CheckLoginRate(ctx, email, limit, window)
}
