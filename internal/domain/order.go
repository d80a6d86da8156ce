package domain

import (
	"time"

	"github.com/google/uuid" // UUID primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// Order statuses (the full allow-list for admin transitions)
const (
	OrderPending    = "PENDING"    // Initial status at creation
	OrderValidating = "VALIDATING" // Payment proof under review
	OrderCompleted  = "COMPLETED"  // Paid and delivered; activates a linked service
	OrderCancelled  = "CANCELLED"  // Rejected or abandoned; cancels a linked service
	OrderRefunded   = "REFUNDED"   // Paid then refunded; suspends a linked service
)

// Order Model: a customer's purchase record, status-tracked by admins
type Order struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`        // Primary key (UUID)
	UserID        string     `gorm:"size:36;index" json:"userId"`         // Owning user
	StoreItemID   *string    `gorm:"size:36;index" json:"storeItemId"`    // Purchased catalog item, nullable
	ServiceID     *string    `gorm:"size:36;index" json:"serviceId"`      // Provisioned service, nullable
	Amount        int64      `gorm:"not null" json:"amount"`              // Immutable; equals item price at creation
	Status        string     `gorm:"size:16;default:PENDING" json:"status"` // Current order status
	PaymentMethod string     `gorm:"size:64" json:"paymentMethod"`        // Channel label chosen at checkout
	AdminNotes    *string    `json:"adminNotes"`                          // Optional notes set by admins
	User          *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`           // Owning user, preloaded on admin views
	StoreItem     *StoreItem `gorm:"foreignKey:StoreItemID" json:"storeItem,omitempty"` // Item, preloaded on admin views
	Service       *Service   `gorm:"foreignKey:ServiceID" json:"service,omitempty"`     // Service, preloaded on admin views
	CreatedAt     time.Time  `json:"createdAt"`                           // Creation timestamp
	UpdatedAt     time.Time  `json:"updatedAt"`                           // Last update timestamp
}

// BeforeCreate assigns a UUID primary key when none is set
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}

// orderStatuses is the allow-list for admin status transitions
var orderStatuses = map[string]bool{
	OrderPending:    true,
	OrderValidating: true,
	OrderCompleted:  true,
	OrderCancelled:  true,
	OrderRefunded:   true,
}

// ValidOrderStatus reports whether s is an accepted order status
func ValidOrderStatus(s string) bool {
	return orderStatuses[s]
}

// serviceStatusByOrder maps an order status to the status of its linked
// service. COMPLETED activates, CANCELLED cancels, REFUNDED suspends the
// service (it must stop serving but stays distinguishable from an operator
// cancellation); every other order status leaves the service pending.
var serviceStatusByOrder = map[string]string{
	OrderPending:    ServicePending,
	OrderValidating: ServicePending,
	OrderCompleted:  ServiceActive,
	OrderCancelled:  ServiceCancelled,
	OrderRefunded:   ServiceSuspended,
}

// ServiceStatusForOrder returns the linked-service status for an order status
func ServiceStatusForOrder(orderStatus string) string {
	if s, ok := serviceStatusByOrder[orderStatus]; ok {
		return s
	}
	return ServicePending
}
