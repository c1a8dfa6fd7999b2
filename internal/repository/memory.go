package repository

import (
	"context"
	"sync"
	"time"

	"dockside/internal/database"
	"dockside/internal/models"
)

// MemorySessionRepository — резервное хранилище сессий на случай
// недоступности Redis. Просроченные записи вычищаются лениво при чтении.
type MemorySessionRepository struct {
	sessions sync.Map
	attempts sync.Map
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{}
}

func (r *MemorySessionRepository) SaveSession(ctx context.Context, session *models.Session) error {
	r.sessions.Store(session.ID, session)
	return nil
}

func (r *MemorySessionRepository) GetSession(ctx context.Context, id string) (*models.Session, error) {
	val, ok := r.sessions.Load(id)
	if !ok {
		return nil, database.ErrNotFound
	}
	session := val.(*models.Session)
	if time.Now().After(session.ExpiresAt) {
		r.sessions.Delete(id)
		return nil, database.ErrNotFound
	}
	return session, nil
}

func (r *MemorySessionRepository) DeleteSession(ctx context.Context, id string) error {
	r.sessions.Delete(id)
	return nil
}

type attemptEntry struct {
	mu        sync.Mutex
	count     int
	expiresAt time.Time
}

func (r *MemorySessionRepository) CheckLoginRate(ctx context.Context, email string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	val, _ := r.attempts.LoadOrStore(email, &attemptEntry{})
	entry := val.(*attemptEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if now.After(entry.expiresAt) {
		entry.count = 0
		entry.expiresAt = now.Add(window)
	}
	entry.count++
	return entry.count <= limit, nil
}
