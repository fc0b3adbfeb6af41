package storage

import (
	"context"
	"sort"
	"sync"

	"flavor-heaven/site-svc/internal/domain"
	"flavor-heaven/site-svc/internal/service"

	"github.com/google/uuid"
)

// MemoryRepository keeps the menu, orders, reservations and contacts for the
// lifetime of the process. It backs every port whose database is not configured.
type MemoryRepository struct {
	mu           sync.RWMutex
	menu         []domain.MenuItem
	orders       []domain.Order
	reservations []domain.Reservation
	contacts     map[string]domain.Contact
	contactOrder []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{contacts: make(map[string]domain.Contact)}
}

func (m *MemoryRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order.ID = len(m.orders) + 1
	m.orders = append(m.orders, cloneOrder(*order))
	return nil
}

func (m *MemoryRepository) GetOrder(_ context.Context, id int) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id < 1 || id > len(m.orders) {
		return nil, service.ErrNotFound
	}
	order := cloneOrder(m.orders[id-1])
	return &order, nil
}

func (m *MemoryRepository) GetOrderByNumber(_ context.Context, orderNumber string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.orders {
		if o.OrderNumber == orderNumber {
			order := cloneOrder(o)
			return &order, nil
		}
	}
	return nil, service.ErrNotFound
}

func (m *MemoryRepository) ListOrders(_ context.Context) ([]domain.Order, error) {
	return m.filterOrders(func(domain.Order) bool { return true }), nil
}

func (m *MemoryRepository) ListOrdersByEmail(_ context.Context, email string) ([]domain.Order, error) {
	return m.filterOrders(func(o domain.Order) bool { return o.Customer.Email == email }), nil
}

func (m *MemoryRepository) filterOrders(keep func(domain.Order) bool) []domain.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Order{}
	for i := len(m.orders) - 1; i >= 0; i-- {
		if keep(m.orders[i]) {
			out = append(out, cloneOrder(m.orders[i]))
		}
	}
	return out
}

func (m *MemoryRepository) UpdateOrderStatus(_ context.Context, id int, status string) error {
	return m.updateOrder(id, func(o *domain.Order) { o.OrderStatus = status })
}

func (m *MemoryRepository) UpdatePaymentStatus(_ context.Context, id int, status string) error {
	return m.updateOrder(id, func(o *domain.Order) { o.PaymentStatus = status })
}

func (m *MemoryRepository) updateOrder(id int, apply func(*domain.Order)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id < 1 || id > len(m.orders) {
		return service.ErrNotFound
	}
	apply(&m.orders[id-1])
	return nil
}

func cloneOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.CartLine(nil), o.Items...)
	if o.EstimatedDeliveryTime != nil {
		eta := *o.EstimatedDeliveryTime
		o.EstimatedDeliveryTime = &eta
	}
	return o
}

func (m *MemoryRepository) CreateReservation(_ context.Context, res *domain.Reservation, capacity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if res.Status != service.ReservationStatusCancelled && m.bookedLocked(res.Date, res.Time, 0)+res.Guests > capacity {
		return service.ErrNoAvailability
	}
	res.ID = len(m.reservations) + 1
	m.reservations = append(m.reservations, *res)
	return nil
}

func (m *MemoryRepository) GetReservation(_ context.Context, id int) (*domain.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id < 1 || id > len(m.reservations) {
		return nil, service.ErrNotFound
	}
	res := m.reservations[id-1]
	return &res, nil
}

func (m *MemoryRepository) UpdateReservation(_ context.Context, res *domain.Reservation, capacity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if res.ID < 1 || res.ID > len(m.reservations) {
		return service.ErrNotFound
	}
	if res.Status != service.ReservationStatusCancelled && m.bookedLocked(res.Date, res.Time, res.ID)+res.Guests > capacity {
		return service.ErrNoAvailability
	}
	m.reservations[res.ID-1] = *res
	return nil
}

func (m *MemoryRepository) ListReservations(_ context.Context) ([]domain.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Reservation{}, m.reservations...), nil
}

func (m *MemoryRepository) GuestsBooked(_ context.Context, date, slot string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookedLocked(date, slot, 0), nil
}

// bookedLocked sums non-cancelled guests of a slot, leaving out reservation skipID.
func (m *MemoryRepository) bookedLocked(date, slot string, skipID int) int {
	total := 0
	for _, res := range m.reservations {
		if res.ID != skipID && res.Date == date && res.Time == slot && res.Status != service.ReservationStatusCancelled {
			total += res.Guests
		}
	}
	return total
}

// SeedMenu appends items whose ID is not stored yet.
func (m *MemoryRepository) SeedMenu(_ context.Context, items []domain.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		if m.menuIndexLocked(item.ID) < 0 {
			m.menu = append(m.menu, cloneMenuItem(item))
		}
	}
	return nil
}

// ListMenuItems returns available items in insertion order.
func (m *MemoryRepository) ListMenuItems(_ context.Context) ([]domain.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var items []domain.MenuItem
	for _, item := range m.menu {
		if item.Available {
			items = append(items, cloneMenuItem(item))
		}
	}
	return items, nil
}

func (m *MemoryRepository) GetMenuItem(_ context.Context, id string) (*domain.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.menuIndexLocked(id)
	if i < 0 {
		return nil, service.ErrNotFound
	}
	item := cloneMenuItem(m.menu[i])
	return &item, nil
}

func (m *MemoryRepository) CreateMenuItem(_ context.Context, item *domain.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.menuIndexLocked(item.ID) >= 0 {
		return service.ErrConflict
	}
	m.menu = append(m.menu, cloneMenuItem(*item))
	return nil
}

func (m *MemoryRepository) UpdateMenuItem(_ context.Context, item *domain.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.menuIndexLocked(item.ID)
	if i < 0 {
		return service.ErrNotFound
	}
	m.menu[i] = cloneMenuItem(*item)
	return nil
}

func (m *MemoryRepository) DeleteMenuItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.menuIndexLocked(id)
	if i < 0 {
		return service.ErrNotFound
	}
	m.menu = append(m.menu[:i], m.menu[i+1:]...)
	return nil
}

func (m *MemoryRepository) menuIndexLocked(id string) int {
	for i, item := range m.menu {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func cloneMenuItem(item domain.MenuItem) domain.MenuItem {
	item.Dietary = append([]string(nil), item.Dietary...)
	return item
}

func (m *MemoryRepository) CreateContact(_ context.Context, contact *domain.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	contact.ID = uuid.NewString()
	m.contacts[contact.ID] = *contact
	m.contactOrder = append(m.contactOrder, contact.ID)
	return nil
}

func (m *MemoryRepository) GetContact(_ context.Context, id string) (*domain.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	contact, ok := m.contacts[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &contact, nil
}

func (m *MemoryRepository) ListContacts(_ context.Context, status string) ([]domain.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Contact{}
	for _, id := range m.contactOrder {
		contact, ok := m.contacts[id]
		if !ok || (status != "" && contact.Status != status) {
			continue
		}
		out = append(out, contact)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepository) UpdateContactStatus(_ context.Context, id, status string) (*domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	contact, ok := m.contacts[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	contact.Status = status
	m.contacts[id] = contact
	return &contact, nil
}

func (m *MemoryRepository) DeleteContact(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.contacts[id]; !ok {
		return service.ErrNotFound
	}
	delete(m.contacts, id)
	for i, cid := range m.contactOrder {
		if cid == id {
			m.contactOrder = append(m.contactOrder[:i], m.contactOrder[i+1:]...)
			break
		}
	}
	return nil
}

var (
	_ service.MenuRepository        = (*MemoryRepository)(nil)
	_ service.OrderRepository       = (*MemoryRepository)(nil)
	_ service.ReservationRepository = (*MemoryRepository)(nil)
	_ service.ContactRepository     = (*MemoryRepository)(nil)
)
