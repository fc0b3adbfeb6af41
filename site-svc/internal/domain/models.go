package domain

import "time"

const (
	CategoryAll        = "all"
	CategoryStarters   = "starters"
	CategoryMainDishes = "main-dishes"
	CategoryFastFood   = "fast-food"
	CategoryDesserts   = "desserts"
)

var Categories = []string{CategoryStarters, CategoryMainDishes, CategoryFastFood, CategoryDesserts}

const (
	TagVegetarian = "vegetarian"
	TagVegan      = "vegan"
	TagGlutenFree = "gluten-free"
	TagDairyFree  = "dairy-free"
	TagNutFree    = "nut-free"
	TagSpicy      = "spicy"
)

type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Dietary     []string `json:"dietary"`
	Spicy       bool     `json:"spicy"`
	Popular     bool     `json:"popular"`
	Available   bool     `json:"available"`
}

func (m MenuItem) HasTag(tag string) bool {
	for _, t := range m.Dietary {
		if t == tag {
			return true
		}
	}
	return false
}

type PriceRange string

const (
	PriceAll     PriceRange = "all"
	PriceBudget  PriceRange = "budget"
	PricePremium PriceRange = "premium"
	PriceLuxury  PriceRange = "luxury"
)

type SortKey string

const (
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortPopular   SortKey = "popular"
)

type DietaryMatch string

const (
	MatchAny DietaryMatch = "any"
	MatchAll DietaryMatch = "all"
)

type FilterState struct {
	Category     string       `json:"category"`
	Dietary      []string     `json:"dietary"`
	DietaryMatch DietaryMatch `json:"dietaryMatch"`
	PriceRange   PriceRange   `json:"priceRange"`
	Search       string       `json:"search"`
	Sort         SortKey      `json:"sort"`
}

// DefaultFilters is the all-inclusive state a fresh menu page starts from.
func DefaultFilters() FilterState {
	return FilterState{
		Category:     CategoryAll,
		DietaryMatch: MatchAny,
		PriceRange:   PriceAll,
		Sort:         SortNameAsc,
	}
}

type CartLine struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	DietaryTags []string `json:"dietaryTags"`
}

type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePickup   OrderType = "pickup"
)

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit-card"
	PaymentPayPal     PaymentMethod = "paypal"
	PaymentCash       PaymentMethod = "cash"
)

type Customer struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	Zip        string `json:"zip,omitempty"`
	PickupTime string `json:"pickupTime,omitempty"`
}

type OrderDraft struct {
	OrderType           OrderType     `json:"orderType"`
	Customer            Customer      `json:"customer"`
	PaymentMethod       PaymentMethod `json:"paymentMethod"`
	SpecialInstructions string        `json:"specialInstructions"`
}

const (
	OrderStatusReceived   = "received"
	OrderStatusPreparing  = "preparing"
	OrderStatusReady      = "ready"
	OrderStatusInDelivery = "in-delivery"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

type Order struct {
	ID                    int           `json:"id,omitempty"`
	OrderNumber           string        `json:"orderNumber"`
	Items                 []CartLine    `json:"items"`
	Customer              Customer      `json:"customer"`
	OrderType             OrderType     `json:"orderType"`
	PaymentMethod         PaymentMethod `json:"paymentMethod"`
	SpecialInstructions   string        `json:"specialInstructions"`
	Subtotal              float64       `json:"subtotal"`
	Tax                   float64       `json:"tax"`
	DeliveryFee           float64       `json:"deliveryFee"`
	Total                 float64       `json:"total"`
	Timestamp             time.Time     `json:"timestamp"`
	OrderStatus           string        `json:"orderStatus,omitempty"`
	PaymentStatus         string        `json:"paymentStatus,omitempty"`
	EstimatedDeliveryTime *time.Time    `json:"estimatedDeliveryTime,omitempty"`
}

type Reservation struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Guests          int       `json:"guests"`
	SpecialRequests string    `json:"specialRequests"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

const (
	ContactStatusNew      = "new"
	ContactStatusRead     = "read"
	ContactStatusReplied  = "replied"
	ContactStatusArchived = "archived"
)

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Rating    int       `json:"rating,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	EventOrderPlaced        = "order_placed"
	EventReservationCreated = "reservation_created"
	EventContactSubmitted   = "contact_submitted"
)

type EventMessage struct {
	Type        string       `json:"type"`
	Order       *Order       `json:"order,omitempty"`
	Reservation *Reservation `json:"reservation,omitempty"`
	Contact     *Contact     `json:"contact,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}
