package enum

// ── Group A: State machines (enum typed in DB) ──

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCanceled  = "CANCELED"
)

const (
	TableStatusAvailable    = "AVAILABLE"
	TableStatusOccupied     = "OCCUPIED"
	TableStatusReserved     = "RESERVED"
	TableStatusOutOfService = "OUT_OF_SERVICE"
)

// ── Group B: Catalog and checkout labels (enum typed in DB) ──

const (
	OrderTypePrepaid  = "PREPAID"
	OrderTypePostpaid = "POSTPAID"
)

const (
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodQRIS     = "QRIS"
	PaymentMethodTransfer = "TRANSFER"
)

const (
	ProductTypeStandalone = "STANDALONE"
	ProductTypeBundle     = "BUNDLE"
	ProductTypeBundleItem = "BUNDLE_ITEM"
)

const (
	UnitPcs     = "PCS"
	UnitKg      = "KG"
	UnitLiter   = "LITER"
	UnitBox     = "BOX"
	UnitPortion = "PORTION"
)

// ── Group C: Order events (no DB constraint) ──

const (
	EventOrderCreated   = "order.created"
	EventOrderUpdated   = "order.updated"
	EventOrderCompleted = "order.completed"
	EventOrderCanceled  = "order.canceled"
	EventOrderDeleted   = "order.deleted"
)
