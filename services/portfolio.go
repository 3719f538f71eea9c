package services

import (
	"context"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"snapbook-backend/models"
	"snapbook-backend/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultUploadCategory    = "Wedding"
	defaultUploadDescription = "New portfolio image"
	maxConcurrentDecodes     = 4
)

// UploadFile is one file picked in the upload dialog.
type UploadFile struct {
	Name string
	Data []byte
}

type PortfolioManager struct {
	mu     sync.Mutex
	repo   *store.Collection[models.PortfolioImage]
	images []models.PortfolioImage
	deps   Deps
}

func NewPortfolioManager(ctx context.Context, s store.Store, key string, deps Deps) (*PortfolioManager, error) {
	deps = deps.withDefaults()

	repo := store.NewCollection(s, key, store.DefaultSeeds, seedPortfolio(), deps.Logger)
	images, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &PortfolioManager{repo: repo, images: images, deps: deps}, nil
}

func (m *PortfolioManager) Images() []models.PortfolioImage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.images)
}

// Filter returns images in category, or all of them for "All".
func (m *PortfolioManager) Filter(category string) []models.PortfolioImage {
	m.mu.Lock()
	defer m.mu.Unlock()

	if category == "" || category == models.AllCategories {
		return slices.Clone(m.images)
	}
	out := []models.PortfolioImage{}
	for _, img := range m.images {
		if img.Category == category {
			out = append(out, img)
		}
	}
	return out
}

// CategoryCount is the number of suggested categories holding at least one image.
func (m *PortfolioManager) CategoryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range models.PortfolioCategories {
		if slices.ContainsFunc(m.images, func(img models.PortfolioImage) bool { return img.Category == c }) {
			n++
		}
	}
	return n
}

// Upload decodes files concurrently and appends them in the order they
// were submitted. Either every file is added or none is.
func (m *PortfolioManager) Upload(ctx context.Context, files []UploadFile) ([]models.PortfolioImage, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	srcs := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDecodes)
	for i, f := range files {
		g.Go(func() error {
			src, err := m.deps.Images.Encode(gctx, f.Name, f.Data)
			if err != nil {
				return err
			}
			srcs[i] = src
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	base := m.deps.IDs.Next()
	added := make([]models.PortfolioImage, len(files))
	for i, f := range files {
		added[i] = models.PortfolioImage{
			ID:          base + strconv.Itoa(i),
			Src:         srcs[i],
			Category:    defaultUploadCategory,
			Title:       titleFromFilename(f.Name),
			Description: defaultUploadDescription,
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := append(slices.Clone(m.images), added...)
	if err := m.commit(ctx, next); err != nil {
		return nil, err
	}
	m.deps.Logger.Info("portfolio images uploaded", zap.Int("count", len(added)))
	return added, nil
}

func (m *PortfolioManager) SetCategory(ctx context.Context, id, category string) (models.PortfolioImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := slices.IndexFunc(m.images, func(img models.PortfolioImage) bool { return img.ID == id })
	if idx < 0 {
		return models.PortfolioImage{}, ErrImageNotFound
	}

	next := slices.Clone(m.images)
	next[idx].Category = category
	if err := m.commit(ctx, next); err != nil {
		return models.PortfolioImage{}, err
	}
	return next[idx], nil
}

func (m *PortfolioManager) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := slices.IndexFunc(m.images, func(img models.PortfolioImage) bool { return img.ID == id })
	if idx < 0 {
		return ErrImageNotFound
	}
	next := slices.Delete(slices.Clone(m.images), idx, idx+1)
	return m.commit(ctx, next)
}

func (m *PortfolioManager) commit(ctx context.Context, next []models.PortfolioImage) error {
	if err := m.repo.Save(ctx, next); err != nil {
		m.deps.Logger.Error("failed to save portfolio", zap.Error(err))
		return err
	}
	m.images = next
	return nil
}

// titleFromFilename keeps everything before the first dot of the base name.
func titleFromFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}
	stem, _, _ := strings.Cut(base, ".")
	stem = strings.TrimSpace(stem)
	if stem != "" {
		return stem
	}
	if base = strings.Trim(base, ". "); base != "" {
		return base
	}
	return "Untitled"
}
