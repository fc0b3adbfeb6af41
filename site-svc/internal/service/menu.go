package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flavor-heaven/site-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrMenuReadOnly = errors.New("menu has no writable repository")

type Catalog struct {
	repo     MenuRepository
	fallback []domain.MenuItem
}

func NewCatalog(repo MenuRepository) *Catalog {
	return &Catalog{repo: repo, fallback: SampleMenu()}
}

// Items lists the menu, falling back to the sample menu when the repository
// fails or has nothing to offer.
func (c *Catalog) Items(ctx context.Context) []domain.MenuItem {
	if c.repo == nil {
		return c.sample()
	}

	items, err := c.repo.ListMenuItems(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("menu fetch failed, serving sample menu")
		return c.sample()
	}
	if len(items) == 0 {
		log.Warn().Msg("menu repository empty, serving sample menu")
		return c.sample()
	}
	return items
}

func (c *Catalog) Find(ctx context.Context, id string) (domain.MenuItem, error) {
	for _, item := range c.Items(ctx) {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.MenuItem{}, ErrNotFound
}

func (c *Catalog) ByCategory(ctx context.Context, category string) []domain.MenuItem {
	filters := domain.DefaultFilters()
	filters.Category = category
	filters.Sort = ""
	return ApplyFilters(c.Items(ctx), filters)
}

func (c *Catalog) Featured(ctx context.Context) []domain.MenuItem {
	var featured []domain.MenuItem
	for _, item := range c.Items(ctx) {
		if item.Popular {
			featured = append(featured, item)
		}
	}
	return featured
}

func (c *Catalog) Filter(ctx context.Context, filters domain.FilterState) []domain.MenuItem {
	return ApplyFilters(c.Items(ctx), filters)
}

func (c *Catalog) sample() []domain.MenuItem {
	out := make([]domain.MenuItem, len(c.fallback))
	copy(out, c.fallback)
	return out
}

// MenuItemPatch holds the fields of a partial menu update; nil fields are kept.
type MenuItemPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Image       *string
	Category    *string
	Dietary     *[]string
	Spicy       *bool
	Popular     *bool
	Available   *bool
}

// ApplyMenuPatch copies the set fields of patch onto item.
func ApplyMenuPatch(item *domain.MenuItem, p MenuItemPatch) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Dietary != nil {
		item.Dietary = append([]string(nil), (*p.Dietary)...)
	}
	if p.Spicy != nil {
		item.Spicy = *p.Spicy
	}
	if p.Popular != nil {
		item.Popular = *p.Popular
	}
	if p.Available != nil {
		item.Available = *p.Available
	}
}

func validateMenuItem(item *domain.MenuItem) error {
	item.Name = strings.TrimSpace(item.Name)
	item.Category = strings.TrimSpace(item.Category)
	if item.Name == "" {
		return newValidationError("name", "Name is required")
	}
	if item.Price < 0 {
		return newValidationError("price", "Price must not be negative")
	}
	for _, c := range domain.Categories {
		if item.Category == c {
			return nil
		}
	}
	return newValidationError("category", fmt.Sprintf("Category must be one of %s", strings.Join(domain.Categories, ", ")))
}

// Create stores a new item; an empty ID is generated.
func (c *Catalog) Create(ctx context.Context, item *domain.MenuItem) error {
	if c.repo == nil {
		return ErrMenuReadOnly
	}
	if err := validateMenuItem(item); err != nil {
		return err
	}
	item.ID = strings.TrimSpace(item.ID)
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Dietary == nil {
		item.Dietary = []string{}
	}
	return c.repo.CreateMenuItem(ctx, item)
}

func (c *Catalog) Update(ctx context.Context, id string, patch MenuItemPatch) (*domain.MenuItem, error) {
	if c.repo == nil {
		return nil, ErrMenuReadOnly
	}
	item, err := c.repo.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	ApplyMenuPatch(item, patch)
	if err := validateMenuItem(item); err != nil {
		return nil, err
	}
	if err := c.repo.UpdateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (c *Catalog) Delete(ctx context.Context, id string) error {
	if c.repo == nil {
		return ErrMenuReadOnly
	}
	return c.repo.DeleteMenuItem(ctx, id)
}
