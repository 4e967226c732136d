package auth

import (
	"context"
	"sync"
	"time"

	"github.com/suPer8Hu/legal-assistant/internal/common"
	"github.com/suPer8Hu/legal-assistant/internal/models"
	"gorm.io/gorm"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}

// SessionStore holds one record per issued token so logout can revoke it.
type SessionStore interface {
	SaveSession(ctx context.Context, jti, userID string, ttl time.Duration) error
	LookupSession(ctx context.Context, jti string) (userID string, ok bool, err error)
	DeleteSession(ctx context.Context, jti string) error
}

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// CreateUser reports a unique violation as ErrDuplicateUser.
func (r *UserRepo) CreateUser(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if common.IsDuplicateKey(err) {
			return ErrDuplicateUser
		}
		return common.FromGorm(err)
	}
	return nil
}

func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, common.FromGorm(err)
	}
	return &u, nil
}

func (r *UserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, common.FromGorm(err)
	}
	return &u, nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]any{"password_hash": hash, "updated_at": time.Now()})
	if res.Error != nil {
		return common.FromGorm(res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// MemorySessions is a process-local SessionStore for single-instance runs
// and tests.
type MemorySessions struct {
	mu   sync.Mutex
	recs map[string]memorySession
}

type memorySession struct {
	userID  string
	expires time.Time
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{recs: make(map[string]memorySession)}
}

func (m *MemorySessions) SaveSession(ctx context.Context, jti, userID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[jti] = memorySession{userID: userID, expires: time.Now().Add(ttl)}
	return nil
}

func (m *MemorySessions) LookupSession(ctx context.Context, jti string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[jti]
	if !ok {
		return "", false, nil
	}
	if time.Now().After(rec.expires) {
		delete(m.recs, jti)
		return "", false, nil
	}
	return rec.userID, true, nil
}

func (m *MemorySessions) DeleteSession(ctx context.Context, jti string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recs, jti)
	return nil
}
