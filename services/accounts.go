package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"snapbook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAccountExists   = errors.New("email or phone already registered")
	ErrAccountNotFound = errors.New("account not found")
)

// Accounts stores photographer logins.
type Accounts interface {
	Create(ctx context.Context, u *models.User) error
	// FindByIdentifier matches an email or phone number.
	FindByIdentifier(ctx context.Context, identifier string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type GormAccounts struct {
	db *gorm.DB
}

func NewGormAccounts(db *gorm.DB) *GormAccounts {
	return &GormAccounts{db: db}
}

func (a *GormAccounts) Create(ctx context.Context, u *models.User) error {
	var existing models.User
	err := a.db.WithContext(ctx).
		Where("email = ? OR (phone <> '' AND phone = ?)", u.Email, u.Phone).
		First(&existing).Error
	if err == nil {
		return ErrAccountExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return a.db.WithContext(ctx).Create(u).Error
}

func (a *GormAccounts) FindByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	identifier = strings.TrimSpace(identifier)

	var u models.User
	err := a.db.WithContext(ctx).Where("email = ? OR phone = ?", identifier, identifier).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrAccountNotFound
	}
	return u, err
}

func (a *GormAccounts) FindByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := a.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrAccountNotFound
	}
	return u, err
}

func (a *GormAccounts) TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return a.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_login", at).Error
}

// MemoryAccounts keeps accounts in process memory for development and tests.
type MemoryAccounts struct {
	mu    sync.RWMutex
	users map[uuid.UUID]models.User
}

func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{users: make(map[uuid.UUID]models.User)}
}

func (a *MemoryAccounts) Create(_ context.Context, u *models.User) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, existing := range a.users {
		if existing.Email == u.Email || (u.Phone != "" && existing.Phone == u.Phone) {
			return ErrAccountExists
		}
	}
	// Same id and hashing as a gorm insert.
	if err := u.BeforeCreate(nil); err != nil {
		return err
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	u.IsActive = true
	a.users[u.ID] = *u
	return nil
}

func (a *MemoryAccounts) FindByIdentifier(_ context.Context, identifier string) (models.User, error) {
	identifier = strings.TrimSpace(identifier)

	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, u := range a.users {
		if u.Email == identifier || (u.Phone != "" && u.Phone == identifier) {
			return u, nil
		}
	}
	return models.User{}, ErrAccountNotFound
}

func (a *MemoryAccounts) FindByID(_ context.Context, id string) (models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return models.User{}, ErrAccountNotFound
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	u, ok := a.users[uid]
	if !ok {
		return models.User{}, ErrAccountNotFound
	}
	return u, nil
}

func (a *MemoryAccounts) TouchLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	u, ok := a.users[id]
	if !ok {
		return ErrAccountNotFound
	}
	u.LastLogin = &at
	a.users[id] = u
	return nil
}
