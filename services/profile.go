package services

import (
	"context"
	"slices"
	"strings"
	"sync"

	"snapbook-backend/models"
	"snapbook-backend/store"

	"go.uber.org/zap"
)

// ProfileManager backs the profile form. Changes are accepted only in edit
// mode and reach the store on Save.
type ProfileManager struct {
	mu      sync.Mutex
	repo    *store.Record[models.Profile]
	profile models.Profile
	editing bool
	deps    Deps
}

func NewProfileManager(ctx context.Context, s store.Store, key string, deps Deps) (*ProfileManager, error) {
	deps = deps.withDefaults()

	repo := store.NewRecord(s, key, defaultProfile(), deps.Logger)
	p, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if p.Specialties == nil {
		p.Specialties = []string{}
	}
	return &ProfileManager{
		repo:    repo,
		profile: p,
		deps:    deps,
	}, nil
}

func (m *ProfileManager) Profile() models.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneProfile(m.profile)
}

func (m *ProfileManager) Editing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editing
}

func (m *ProfileManager) Edit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editing = true
}

func (m *ProfileManager) Update(u models.ProfileUpdate) (models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.editing {
		return models.Profile{}, ErrNotEditing
	}
	m.profile.Apply(u)
	return cloneProfile(m.profile), nil
}

// AddSpecialty adds a trimmed tag. Blank and duplicate tags are ignored and
// reported as not added.
func (m *ProfileManager) AddSpecialty(specialty string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.editing {
		return false, ErrNotEditing
	}
	specialty = strings.TrimSpace(specialty)
	if specialty == "" || slices.Contains(m.profile.Specialties, specialty) {
		return false, nil
	}
	m.profile.Specialties = append(slices.Clone(m.profile.Specialties), specialty)
	return true, nil
}

func (m *ProfileManager) RemoveSpecialty(specialty string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.editing {
		return ErrNotEditing
	}
	m.profile.Specialties = slices.DeleteFunc(slices.Clone(m.profile.Specialties), func(s string) bool {
		return s == specialty
	})
	return nil
}

// SetAvatar replaces the avatar with an embeddable copy of the upload.
func (m *ProfileManager) SetAvatar(ctx context.Context, f UploadFile) (string, error) {
	if !m.Editing() {
		return "", ErrNotEditing
	}

	src, err := m.deps.Avatars.Encode(ctx, f.Name, f.Data)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// The form may have been saved while the image was decoding.
	if !m.editing {
		return "", ErrNotEditing
	}
	m.profile.Avatar = src
	return src, nil
}

// Save persists the profile and leaves edit mode.
func (m *ProfileManager) Save(ctx context.Context) (models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.editing {
		return models.Profile{}, ErrNotEditing
	}
	if err := m.repo.Save(ctx, m.profile); err != nil {
		m.deps.Logger.Error("failed to save profile", zap.Error(err))
		return models.Profile{}, err
	}
	m.editing = false
	return cloneProfile(m.profile), nil
}

func cloneProfile(p models.Profile) models.Profile {
	p.Specialties = slices.Clone(p.Specialties)
	if p.Specialties == nil {
		p.Specialties = []string{}
	}
	return p
}
