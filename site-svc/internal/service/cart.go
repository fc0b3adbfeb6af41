package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"flavor-heaven/site-svc/internal/domain"

	"github.com/rs/zerolog/log"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// CartStore owns the cart lines of one session. Every mutation is written back
// to the KV slot before observers are notified.
type CartStore struct {
	kv        KV
	key       string
	lines     []domain.CartLine
	observers []func(units int)
}

// LoadCart reads the cart slot. A missing or malformed value yields an empty cart.
func LoadCart(ctx context.Context, kv KV, key string) (*CartStore, error) {
	store := &CartStore{kv: kv, key: key}

	raw, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return store, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}

	store.lines = decodeCartLines(raw)
	return store, nil
}

// decodeCartLines drops records that cannot be a cart line and merges duplicate ids.
func decodeCartLines(raw []byte) []domain.CartLine {
	var records []domain.CartLine
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Warn().Err(err).Msg("discarding malformed cart slot")
		return nil
	}

	lines := make([]domain.CartLine, 0, len(records))
	index := make(map[string]int, len(records))
	for _, rec := range records {
		if rec.ID == "" || rec.Price < 0 || math.IsNaN(rec.Price) || rec.Quantity < 0 {
			continue
		}
		if rec.Quantity == 0 {
			rec.Quantity = 1
		}
		if i, ok := index[rec.ID]; ok {
			lines[i].Quantity += rec.Quantity
			continue
		}
		index[rec.ID] = len(lines)
		lines = append(lines, rec)
	}
	return lines
}

// Subscribe registers fn to receive the total unit count after each mutation.
func (c *CartStore) Subscribe(fn func(units int)) {
	c.observers = append(c.observers, fn)
}

func (c *CartStore) Add(ctx context.Context, item domain.MenuItem, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	if i := c.indexOf(item.ID); i >= 0 {
		c.lines[i].Quantity += quantity
	} else {
		c.lines = append(c.lines, lineFromItem(item, quantity))
	}
	return c.save(ctx)
}

func (c *CartStore) Remove(ctx context.Context, id string) error {
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return c.save(ctx)
}

// SetQuantity removes the line when n <= 0. Unknown ids are ignored.
func (c *CartStore) SetQuantity(ctx context.Context, id string, n int) error {
	if n <= 0 {
		return c.Remove(ctx, id)
	}
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}
	c.lines[i].Quantity = n
	return c.save(ctx)
}

func (c *CartStore) Clear(ctx context.Context) error {
	c.lines = nil
	if err := c.kv.Delete(ctx, c.key); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	c.notify()
	return nil
}

func (c *CartStore) TotalUnitCount() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

func (c *CartStore) Snapshot() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	for i, line := range c.lines {
		line.DietaryTags = append([]string(nil), line.DietaryTags...)
		out[i] = line
	}
	return out
}

func (c *CartStore) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *CartStore) indexOf(id string) int {
	for i, line := range c.lines {
		if line.ID == id {
			return i
		}
	}
	return -1
}

func (c *CartStore) save(ctx context.Context) error {
	lines := c.lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := c.kv.Set(ctx, c.key, payload); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	c.notify()
	return nil
}

func (c *CartStore) notify() {
	units := c.TotalUnitCount()
	for _, fn := range c.observers {
		fn(units)
	}
}

func lineFromItem(item domain.MenuItem, quantity int) domain.CartLine {
	tags := append([]string(nil), item.Dietary...)
	if item.Spicy && !item.HasTag(domain.TagSpicy) {
		tags = append(tags, domain.TagSpicy)
	}
	return domain.CartLine{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price,
		Quantity:    quantity,
		Image:       item.Image,
		Description: item.Description,
		Category:    item.Category,
		DietaryTags: tags,
	}
}
