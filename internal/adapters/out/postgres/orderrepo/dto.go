// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and the relational schema.
// The whole aggregate tree is stored: line items, shipments, payments, the
// adjustment ledger and the state change audit log.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/adjustment"
	"orders/internal/core/domain/model/fee"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The monetary snapshot columns are denormalized caches; the adjustment rows
// remain the source of truth and a recalculation pass rebuilds the snapshot.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	DistributorID uuid.UUID `gorm:"type:uuid;index"`
	Status        int
	CompletedAt   *time.Time

	PaymentState  int
	ShipmentState int

	ItemTotal          decimal.Decimal `gorm:"type:numeric(12,2)"`
	ShipmentTotal      decimal.Decimal `gorm:"type:numeric(12,2)"`
	FeeTotal           decimal.Decimal `gorm:"type:numeric(12,2)"`
	AdjustmentTotal    decimal.Decimal `gorm:"type:numeric(12,2)"`
	IncludedTaxTotal   decimal.Decimal `gorm:"type:numeric(12,2)"`
	AdditionalTaxTotal decimal.Decimal `gorm:"type:numeric(12,2)"`
	PaymentTotal       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Total              decimal.Decimal `gorm:"type:numeric(12,2)"`

	NeedsRecalculation bool `gorm:"index"`

	LineItems    []LineItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Shipments    []ShipmentDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments     []PaymentDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Adjustments  []AdjustmentDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	StateChanges []StateChangeDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO represents one product position of an order.
type LineItemDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID  `gorm:"type:uuid;index"`
	VariantID     uuid.UUID  `gorm:"type:uuid;index"`
	ProductName   string
	Price         decimal.Decimal `gorm:"type:numeric(12,2)"`
	Quantity      int
	TaxCategoryID *uuid.UUID `gorm:"type:uuid"`
	StockPool     string

	AdjustmentTotal    decimal.Decimal `gorm:"type:numeric(12,2)"`
	FeeTotal           decimal.Decimal `gorm:"type:numeric(12,2)"`
	IncludedTaxTotal   decimal.Decimal `gorm:"type:numeric(12,2)"`
	AdditionalTaxTotal decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for line items.
func (LineItemDTO) TableName() string {
	return "line_items"
}

// ShipmentDTO represents a shipment row with its cached adjustment subtotals.
type ShipmentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Cost        decimal.Decimal `gorm:"type:numeric(12,2)"`
	Status      int
	Backordered bool

	AdjustmentTotal    decimal.Decimal `gorm:"type:numeric(12,2)"`
	FeeTotal           decimal.Decimal `gorm:"type:numeric(12,2)"`
	IncludedTaxTotal   decimal.Decimal `gorm:"type:numeric(12,2)"`
	AdditionalTaxTotal decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for shipments.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// PaymentDTO represents a payment row.
type PaymentDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`
	Amount  decimal.Decimal `gorm:"type:numeric(12,2)"`
	Status  int
}

// TableName specifies the database table name for payments.
func (PaymentDTO) TableName() string {
	return "payments"
}

// AdjustmentDTO represents one ledger entry. The adjustable it targets is
// encoded in the nullable reference columns: a line item, a shipment, a
// parent adjustment (tax on a fee), or the order itself when all three are
// null. Sources are not persisted; a restored adjustment keeps its stored
// amount until a source is re-bound from the originator reference.
type AdjustmentDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`

	LineItemID *uuid.UUID `gorm:"type:uuid;index"`
	ShipmentID *uuid.UUID `gorm:"type:uuid;index"`
	ParentID   *uuid.UUID `gorm:"type:uuid;index"`

	Label     string
	Amount    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Included  bool
	Mandatory bool
	Eligible  bool
	State     int

	OriginatorType string
	OriginatorID   uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for adjustments.
func (AdjustmentDTO) TableName() string {
	return "adjustments"
}

// StateChangeDTO represents one audit row of the payment/shipment label log.
// Rows are append-only and never restored into the aggregate.
type StateChangeDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Name      string
	Previous  string
	Next      string
	ChangedAt time.Time
}

// TableName specifies the database table name for state changes.
func (StateChangeDTO) TableName() string {
	return "state_changes"
}

// AdjustmentMetadataDTO represents the reporting record written alongside a
// fee adjustment.
type AdjustmentMetadataDTO struct {
	AdjustmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	EnterpriseID uuid.UUID `gorm:"type:uuid;index"`
	FeeName      string
	FeeType      string
	Role         string
}

// TableName specifies the database table name for adjustment metadata.
func (AdjustmentMetadataDTO) TableName() string {
	return "adjustment_metadata"
}

// fromDomain converts an order aggregate to its database representation,
// flattening the adjustment ledgers of every adjustable into one table.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	dto := OrderDTO{
		ID:                 orderID,
		DistributorID:      aggregate.DistributorID().Bytes(),
		Status:             int(aggregate.Status()),
		CompletedAt:        aggregate.CompletedAt(),
		PaymentState:       int(aggregate.PaymentState()),
		ShipmentState:      int(aggregate.ShipmentState()),
		ItemTotal:          aggregate.ItemTotal(),
		ShipmentTotal:      aggregate.ShipmentTotal(),
		FeeTotal:           aggregate.FeeTotal(),
		AdjustmentTotal:    aggregate.AdjustmentTotal(),
		IncludedTaxTotal:   aggregate.IncludedTaxTotal(),
		AdditionalTaxTotal: aggregate.AdditionalTaxTotal(),
		PaymentTotal:       aggregate.PaymentTotal(),
		Total:              aggregate.Total(),
		NeedsRecalculation: aggregate.NeedsRecalculation(),
	}

	for _, item := range aggregate.LineItems() {
		itemID := item.ID().Bytes()

		var taxCategoryID *uuid.UUID
		if id := item.TaxCategoryID(); id != nil {
			raw := id.Bytes()
			taxCategoryID = &raw
		}

		dto.LineItems = append(dto.LineItems, LineItemDTO{
			ID:                 itemID,
			OrderID:            orderID,
			VariantID:          item.VariantID().Bytes(),
			ProductName:        item.ProductName(),
			Price:              item.Price(),
			Quantity:           item.Quantity(),
			TaxCategoryID:      taxCategoryID,
			StockPool:          item.StockPool().String(),
			AdjustmentTotal:    item.AdjustmentTotal(),
			FeeTotal:           item.FeeTotal(),
			IncludedTaxTotal:   item.IncludedTaxTotal(),
			AdditionalTaxTotal: item.AdditionalTaxTotal(),
		})

		appendAdjustments(&dto, item.Adjustments(), &itemID, nil)
	}

	for _, shipment := range aggregate.Shipments() {
		shipmentID := shipment.ID().Bytes()

		dto.Shipments = append(dto.Shipments, ShipmentDTO{
			ID:                 shipmentID,
			OrderID:            orderID,
			Cost:               shipment.Cost(),
			Status:             int(shipment.Status()),
			Backordered:        shipment.IsBackordered(),
			AdjustmentTotal:    shipment.AdjustmentTotal(),
			FeeTotal:           shipment.FeeTotal(),
			IncludedTaxTotal:   shipment.IncludedTaxTotal(),
			AdditionalTaxTotal: shipment.AdditionalTaxTotal(),
		})

		appendShipmentAdjustments(&dto, shipment.Adjustments(), &shipmentID)
	}

	for _, payment := range aggregate.Payments() {
		dto.Payments = append(dto.Payments, PaymentDTO{
			ID:      payment.ID().Bytes(),
			OrderID: orderID,
			Amount:  payment.Amount(),
			Status:  int(payment.Status()),
		})
	}

	appendAdjustments(&dto, aggregate.Adjustments(), nil, nil)

	for _, change := range aggregate.StateChanges() {
		dto.StateChanges = append(dto.StateChanges, StateChangeDTO{
			ID:        change.ID().Bytes(),
			OrderID:   orderID,
			Name:      change.Name(),
			Previous:  change.Previous(),
			Next:      change.Next(),
			ChangedAt: change.ChangedAt(),
		})
	}

	return dto
}

func appendAdjustments(dto *OrderDTO, adjustments []*adjustment.Adjustment, lineItemID, parentID *uuid.UUID) {
	for _, adj := range adjustments {
		adjID := adj.ID().Bytes()

		dto.Adjustments = append(dto.Adjustments, AdjustmentDTO{
			ID:             adjID,
			OrderID:        dto.ID,
			LineItemID:     lineItemID,
			ParentID:       parentID,
			Label:          adj.Label(),
			Amount:         adj.Amount(),
			Included:       adj.Included(),
			Mandatory:      adj.Mandatory(),
			Eligible:       adj.Eligible(),
			State:          int(adj.State()),
			OriginatorType: adj.Originator().Type.String(),
			OriginatorID:   adj.Originator().ID.Bytes(),
		})

		appendAdjustments(dto, adj.Children(), nil, &adjID)
	}
}

func appendShipmentAdjustments(dto *OrderDTO, adjustments []*adjustment.Adjustment, shipmentID *uuid.UUID) {
	for _, adj := range adjustments {
		adjID := adj.ID().Bytes()

		dto.Adjustments = append(dto.Adjustments, AdjustmentDTO{
			ID:             adjID,
			OrderID:        dto.ID,
			ShipmentID:     shipmentID,
			Label:          adj.Label(),
			Amount:         adj.Amount(),
			Included:       adj.Included(),
			Mandatory:      adj.Mandatory(),
			Eligible:       adj.Eligible(),
			State:          int(adj.State()),
			OriginatorType: adj.Originator().Type.String(),
			OriginatorID:   adj.Originator().ID.Bytes(),
		})

		appendAdjustments(dto, adj.Children(), nil, &adjID)
	}
}

// metadataFromDomain converts a fee metadata record to its row form.
func metadataFromDomain(metadata *fee.AdjustmentMetadata) AdjustmentMetadataDTO {
	return AdjustmentMetadataDTO{
		AdjustmentID: metadata.AdjustmentID().Bytes(),
		EnterpriseID: metadata.EnterpriseID().Bytes(),
		FeeName:      metadata.FeeName(),
		FeeType:      metadata.FeeType(),
		Role:         string(metadata.Role()),
	}
}

// toDomain converts a database DTO tree back into an order aggregate.
// Adjustment sources stay unbound: restored amounts are served as stored
// until the owning originator re-binds a source for recomputation.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	distributorID, err := kernel.UUIDFromBytes(dto.DistributorID[:])
	if err != nil {
		return nil, err
	}

	aggregate, err := order.RestoreOrder(
		id,
		distributorID,
		order.Status(dto.Status),
		dto.CompletedAt,
		order.PaymentState(dto.PaymentState),
		order.ShipmentState(dto.ShipmentState),
		dto.ItemTotal,
		dto.ShipmentTotal,
		dto.FeeTotal,
		dto.AdjustmentTotal,
		dto.IncludedTaxTotal,
		dto.AdditionalTaxTotal,
		dto.PaymentTotal,
		dto.Total,
		dto.NeedsRecalculation,
	)
	if err != nil {
		return nil, err
	}

	adjustments, err := restoreAdjustments(dto.Adjustments)
	if err != nil {
		return nil, err
	}

	for _, itemDTO := range dto.LineItems {
		item, itemErr := restoreLineItem(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}

		for _, adj := range adjustments[itemDTO.ID] {
			if adjErr := item.AddAdjustment(adj); adjErr != nil {
				return nil, adjErr
			}
		}

		if addErr := aggregate.AddLineItem(item); addErr != nil {
			return nil, addErr
		}
	}

	for _, shipmentDTO := range dto.Shipments {
		shipment, shipErr := restoreShipment(shipmentDTO)
		if shipErr != nil {
			return nil, shipErr
		}

		for _, adj := range adjustments[shipmentDTO.ID] {
			if adjErr := shipment.AddAdjustment(adj); adjErr != nil {
				return nil, adjErr
			}
		}

		if addErr := aggregate.AddShipment(shipment); addErr != nil {
			return nil, addErr
		}
	}

	for _, paymentDTO := range dto.Payments {
		payment, payErr := restorePayment(paymentDTO)
		if payErr != nil {
			return nil, payErr
		}

		if addErr := aggregate.AddPayment(payment); addErr != nil {
			return nil, addErr
		}
	}

	for _, adj := range adjustments[dto.ID] {
		if adjErr := aggregate.AddAdjustment(adj); adjErr != nil {
			return nil, adjErr
		}
	}

	// attaching collections marks the order stale; the stored flag wins
	if !dto.NeedsRecalculation {
		aggregate.ClearRecalculation()
	}

	return aggregate, nil
}

// restoreAdjustments rebuilds the ledger entries grouped by the adjustable
// that owns them. Children are attached to their parent entries; top-level
// entries are keyed by line item, shipment or order id.
func restoreAdjustments(dtos []AdjustmentDTO) (map[uuid.UUID][]*adjustment.Adjustment, error) {
	restored := make(map[uuid.UUID]*adjustment.Adjustment, len(dtos))
	grouped := make(map[uuid.UUID][]*adjustment.Adjustment)

	for _, dto := range dtos {
		adj, err := restoreAdjustment(dto)
		if err != nil {
			return nil, err
		}
		restored[dto.ID] = adj
	}

	for _, dto := range dtos {
		adj := restored[dto.ID]

		switch {
		case dto.ParentID != nil:
			parent, ok := restored[*dto.ParentID]
			if !ok {
				return nil, errs.NewObjectNotFoundError("parent adjustment", dto.ParentID.String())
			}
			if err := parent.AddChild(adj); err != nil {
				return nil, err
			}
		case dto.LineItemID != nil:
			grouped[*dto.LineItemID] = append(grouped[*dto.LineItemID], adj)
		case dto.ShipmentID != nil:
			grouped[*dto.ShipmentID] = append(grouped[*dto.ShipmentID], adj)
		default:
			grouped[dto.OrderID] = append(grouped[dto.OrderID], adj)
		}
	}

	return grouped, nil
}

func restoreAdjustment(dto AdjustmentDTO) (*adjustment.Adjustment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	originatorID, err := kernel.UUIDFromBytes(dto.OriginatorID[:])
	if err != nil {
		return nil, err
	}

	return adjustment.RestoreAdjustment(
		id,
		orderID,
		dto.Label,
		dto.Amount,
		dto.Included,
		dto.Mandatory,
		dto.Eligible,
		adjustment.State(dto.State),
		adjustment.Originator{
			Type: adjustment.OriginatorType(dto.OriginatorType),
			ID:   originatorID,
		},
		nil,
	)
}

func restoreLineItem(dto LineItemDTO) (*order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return nil, err
	}

	var taxCategoryID *kernel.UUID
	if dto.TaxCategoryID != nil {
		tcID, tcErr := kernel.UUIDFromBytes((*dto.TaxCategoryID)[:])
		if tcErr != nil {
			return nil, tcErr
		}
		taxCategoryID = &tcID
	}

	stockPool, err := order.StockPoolFromString(dto.StockPool)
	if err != nil {
		return nil, err
	}

	return order.RestoreLineItem(
		id,
		variantID,
		dto.ProductName,
		dto.Price,
		dto.Quantity,
		taxCategoryID,
		stockPool,
		dto.AdjustmentTotal,
		dto.FeeTotal,
		dto.IncludedTaxTotal,
		dto.AdditionalTaxTotal,
	)
}

func restoreShipment(dto ShipmentDTO) (*order.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreShipment(
		id,
		dto.Cost,
		order.ShipmentStatus(dto.Status),
		dto.Backordered,
		dto.AdjustmentTotal,
		dto.FeeTotal,
		dto.IncludedTaxTotal,
		dto.AdditionalTaxTotal,
	)
}

func restorePayment(dto PaymentDTO) (*order.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.RestorePayment(id, dto.Amount, order.PaymentStatus(dto.Status))
}
