// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Line items, the shipping address, and the tracking history
// are stored as JSONB documents on the orders row, so an order and its shipment
// record always load and save together.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The version column backs the optimistic-concurrency check in Update.
type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber   string          `gorm:"uniqueIndex"`
	CustomerID    string          `gorm:"index"`
	CustomerEmail string          ``
	Status        string          `gorm:"index"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2)"`

	Items           []ItemDTO   `gorm:"type:jsonb;serializer:json"`
	ShippingAddress *AddressDTO `gorm:"type:jsonb;serializer:json"`

	TrackingNumber string             `gorm:"uniqueIndex"`
	Carrier        string             ``
	TrackingStatus string             ``
	ETA            *time.Time         `gorm:"column:eta"`
	History        []TrackingEventDTO `gorm:"type:jsonb;serializer:json"`

	HasPhysicalItem bool       `gorm:"index"`
	ShipDueAt       *time.Time `gorm:"index"`
	DeliverDueAt    *time.Time `gorm:"index"`

	CreatedAt time.Time
	Version   int
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one line item inside the items JSONB document. The json tags are
// the storage contract shared with the read-side queries.
type ItemDTO struct {
	BookID             string          `json:"bookId"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	Intent             string          `json:"intent"`
	Format             string          `json:"format"`
	RentalDurationDays int             `json:"rentalDurationDays,omitempty"`
	RentalStartAt      *time.Time      `json:"rentalStartAt,omitempty"`
	RentalEndAt        *time.Time      `json:"rentalEndAt,omitempty"`
	ReturnDueAt        *time.Time      `json:"returnDueAt,omitempty"`
	DeliveryETA        time.Time       `json:"deliveryEta"`
	Snapshot           SnapshotDTO     `json:"snapshot"`
}

// SnapshotDTO is the catalog snapshot frozen on a line item.
type SnapshotDTO struct {
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	ImageURL  string          `json:"imageUrl"`
	Price     decimal.Decimal `json:"price"`
	RentPrice decimal.Decimal `json:"rentPrice"`
}

// AddressDTO is the shipping address JSONB document.
type AddressDTO struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	ContactEmail string `json:"contactEmail"`
}

// TrackingEventDTO is one entry of the history JSONB document.
type TrackingEventDTO struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		snapshot := item.Snapshot()
		itemDTOs = append(itemDTOs, ItemDTO{
			BookID:             item.BookID(),
			Quantity:           item.Quantity(),
			UnitPrice:          item.UnitPrice(),
			Intent:             string(item.Intent()),
			Format:             string(item.Format()),
			RentalDurationDays: item.RentalDurationDays(),
			RentalStartAt:      item.RentalStartAt(),
			RentalEndAt:        item.RentalEndAt(),
			ReturnDueAt:        item.ReturnDueAt(),
			DeliveryETA:        item.DeliveryETA(),
			Snapshot: SnapshotDTO{
				Title:     snapshot.Title,
				Author:    snapshot.Author,
				ImageURL:  snapshot.ImageURL,
				Price:     snapshot.Price,
				RentPrice: snapshot.RentPrice,
			},
		})
	}

	var address *AddressDTO
	if a := aggregate.ShippingAddress(); a != nil {
		address = &AddressDTO{
			Street:       a.Street(),
			City:         a.City(),
			PostalCode:   a.PostalCode(),
			Country:      a.Country(),
			ContactEmail: a.ContactEmail(),
		}
	}

	tracking := aggregate.Tracking()
	history := tracking.History()
	historyDTOs := make([]TrackingEventDTO, 0, len(history))
	for _, event := range history {
		historyDTOs = append(historyDTOs, TrackingEventDTO{
			Status:    string(event.Status),
			Message:   event.Message,
			Timestamp: event.Timestamp,
		})
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		OrderNumber:     aggregate.OrderNumber(),
		CustomerID:      aggregate.CustomerID(),
		CustomerEmail:   aggregate.CustomerEmail(),
		Status:          aggregate.Status().String(),
		TotalAmount:     aggregate.TotalAmount(),
		Items:           itemDTOs,
		ShippingAddress: address,
		TrackingNumber:  tracking.TrackingNumber(),
		Carrier:         tracking.Carrier(),
		TrackingStatus:  tracking.Status().String(),
		ETA:             tracking.ETA(),
		History:         historyDTOs,
		HasPhysicalItem: aggregate.HasPhysicalItem(),
		ShipDueAt:       tracking.ShipDueAt(),
		DeliverDueAt:    tracking.DeliverDueAt(),
		CreatedAt:       aggregate.CreatedAt(),
		Version:         aggregate.Version(),
	}
}

// toDomain converts a database DTO to an order domain aggregate via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.OrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.RestoreOrderItem(
			itemDTO.BookID,
			order.BookSnapshot{
				Title:     itemDTO.Snapshot.Title,
				Author:    itemDTO.Snapshot.Author,
				ImageURL:  itemDTO.Snapshot.ImageURL,
				Price:     itemDTO.Snapshot.Price,
				RentPrice: itemDTO.Snapshot.RentPrice,
			},
			order.Format(itemDTO.Format),
			itemDTO.Quantity,
			itemDTO.UnitPrice,
			order.FulfillmentIntent(itemDTO.Intent),
			itemDTO.RentalDurationDays,
			itemDTO.RentalStartAt,
			itemDTO.RentalEndAt,
			itemDTO.ReturnDueAt,
			itemDTO.DeliveryETA,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var address *order.Address
	if dto.ShippingAddress != nil {
		a, addrErr := order.NewAddress(
			dto.ShippingAddress.Street,
			dto.ShippingAddress.City,
			dto.ShippingAddress.PostalCode,
			dto.ShippingAddress.Country,
			dto.ShippingAddress.ContactEmail,
		)
		if addrErr != nil {
			return nil, addrErr
		}
		address = &a
	}

	history := make([]order.TrackingEvent, 0, len(dto.History))
	for _, event := range dto.History {
		history = append(history, order.TrackingEvent{
			Status:    order.Status(event.Status),
			Message:   event.Message,
			Timestamp: event.Timestamp,
		})
	}

	tracking := order.RestoreShippingTracking(
		dto.TrackingNumber,
		dto.Carrier,
		order.Status(dto.TrackingStatus),
		dto.ETA,
		history,
		dto.ShipDueAt,
		dto.DeliverDueAt,
	)

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		dto.CustomerID,
		dto.CustomerEmail,
		items,
		dto.TotalAmount,
		order.Status(dto.Status),
		address,
		tracking,
		dto.CreatedAt,
		dto.Version,
	)
}
