package services

import (
	"context"
	"math"
	"slices"
	"sync"

	"snapbook-backend/models"
	"snapbook-backend/store"

	"go.uber.org/zap"
)

// PricingManager owns the package list. At most one package is popular.
// It also holds the package open in the edit dialog, whose feature list
// changes only reach the list on CommitDraft.
type PricingManager struct {
	mu       sync.Mutex
	repo     *store.Collection[models.PricingPackage]
	packages []models.PricingPackage
	draft    *models.PricingPackage
	deps     Deps
}

func NewPricingManager(ctx context.Context, s store.Store, key string, deps Deps) (*PricingManager, error) {
	deps = deps.withDefaults()

	repo := store.NewCollection(s, key, store.DefaultSeeds, seedPackages(), deps.Logger)
	packages, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &PricingManager{repo: repo, packages: packages, deps: deps}, nil
}

func (m *PricingManager) Packages() []models.PricingPackage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.packages)
}

// NewDraft opens the edit dialog on a fresh package.
func (m *PricingManager) NewDraft() models.PricingPackage {
	draft := models.PricingPackage{
		ID:          m.deps.IDs.Next(),
		Name:        "New Package",
		Category:    "Wedding",
		Price:       500,
		Duration:    "2 hours",
		Description: "Package description",
		Features:    []string{"Feature 1", "Feature 2"},
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = clonePackage(draft)
	return draft
}

// Edit opens the edit dialog on a copy of an existing package.
func (m *PricingManager) Edit(id string) (models.PricingPackage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.index(id)
	if idx < 0 {
		return models.PricingPackage{}, ErrPackageNotFound
	}
	m.draft = clonePackage(m.packages[idx])
	return *clonePackage(*m.draft), nil
}

func (m *PricingManager) Draft() (models.PricingPackage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.draft == nil {
		return models.PricingPackage{}, ErrNoDraft
	}
	return *clonePackage(*m.draft), nil
}

// UpdateDraft replaces the draft's fields, keeping its id.
func (m *PricingManager) UpdateDraft(pkg models.PricingPackage) (models.PricingPackage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.draft == nil {
		return models.PricingPackage{}, ErrNoDraft
	}
	pkg.ID = m.draft.ID
	m.draft = clonePackage(pkg)
	return *clonePackage(pkg), nil
}

func (m *PricingManager) AddDraftFeature(feature string) (models.PricingPackage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.draft == nil {
		return models.PricingPackage{}, ErrNoDraft
	}
	m.draft.AddFeature(feature)
	return *clonePackage(*m.draft), nil
}

func (m *PricingManager) RemoveDraftFeature(index int) (models.PricingPackage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.draft == nil {
		return models.PricingPackage{}, ErrNoDraft
	}
	m.draft.RemoveFeature(index)
	return *clonePackage(*m.draft), nil
}

func (m *PricingManager) DiscardDraft() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = nil
}

// CommitDraft saves the draft and closes the dialog.
func (m *PricingManager) CommitDraft(ctx context.Context) (models.PricingPackage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.draft == nil {
		return models.PricingPackage{}, ErrNoDraft
	}
	pkg := *clonePackage(*m.draft)
	if err := m.save(ctx, pkg); err != nil {
		return models.PricingPackage{}, err
	}
	m.draft = nil
	return pkg, nil
}

// Save upserts pkg by id.
func (m *PricingManager) Save(ctx context.Context, pkg models.PricingPackage) (models.PricingPackage, error) {
	if pkg.ID == "" {
		pkg.ID = m.deps.IDs.Next()
	}
	if pkg.Features == nil {
		pkg.Features = []string{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.save(ctx, pkg); err != nil {
		return models.PricingPackage{}, err
	}
	return pkg, nil
}

func (m *PricingManager) save(ctx context.Context, pkg models.PricingPackage) error {
	next := slices.Clone(m.packages)
	if idx := m.index(pkg.ID); idx >= 0 {
		next[idx] = pkg
	} else {
		next = append(next, pkg)
	}
	if pkg.IsPopular {
		for i := range next {
			if next[i].ID != pkg.ID {
				next[i].IsPopular = false
			}
		}
	}
	return m.commit(ctx, next)
}

func (m *PricingManager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.index(id)
	if idx < 0 {
		return ErrPackageNotFound
	}
	next := slices.Delete(slices.Clone(m.packages), idx, idx+1)
	return m.commit(ctx, next)
}

// TogglePopular flips the target's flag and clears it everywhere else.
func (m *PricingManager) TogglePopular(ctx context.Context, id string) ([]models.PricingPackage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index(id) < 0 {
		return nil, ErrPackageNotFound
	}
	next := slices.Clone(m.packages)
	for i := range next {
		if next[i].ID == id {
			next[i].IsPopular = !next[i].IsPopular
		} else {
			next[i].IsPopular = false
		}
	}
	if err := m.commit(ctx, next); err != nil {
		return nil, err
	}
	return slices.Clone(next), nil
}

func (m *PricingManager) Analytics() models.PricingAnalytics {
	m.mu.Lock()
	defer m.mu.Unlock()

	a := models.PricingAnalytics{TotalPackages: len(m.packages)}
	if len(m.packages) == 0 {
		return a
	}
	sum := 0
	lowest := m.packages[0].Price
	for _, p := range m.packages {
		sum += p.Price
		lowest = min(lowest, p.Price)
	}
	a.AveragePrice = int(math.Round(float64(sum) / float64(len(m.packages))))
	a.StartingFrom = lowest
	return a
}

func (m *PricingManager) index(id string) int {
	return slices.IndexFunc(m.packages, func(p models.PricingPackage) bool { return p.ID == id })
}

func (m *PricingManager) commit(ctx context.Context, next []models.PricingPackage) error {
	if err := m.repo.Save(ctx, next); err != nil {
		m.deps.Logger.Error("failed to save packages", zap.Error(err))
		return err
	}
	m.packages = next
	return nil
}

func clonePackage(p models.PricingPackage) *models.PricingPackage {
	p.Features = slices.Clone(p.Features)
	if p.Features == nil {
		p.Features = []string{}
	}
	return &p
}
