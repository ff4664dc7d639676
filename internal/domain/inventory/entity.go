package inventory

import (
	"encoding/json"
	"time"
)

type ItemKind string

const (
	KindGeneral    ItemKind = "general"
	KindRestricted ItemKind = "restricted"
)

type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "active"
	ItemStatusInactive ItemStatus = "inactive"
)

// Item is a catalog entry. Quantity-tracked items keep a scalar stock in
// QuantityOnHand; serial-tracked items (restricted only) keep one
// SerialUnit per physical piece and leave QuantityOnHand at zero.
type Item struct {
	ID             int64
	ItemCode       string
	Kind           ItemKind
	SerialTracked  bool
	Category       string
	Name           string
	UnitName       string
	QuantityOnHand int
	MinQuantity    *int
	Status         ItemStatus
	Images         []ItemImage
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (i Item) QuantityTracked() bool { return !i.SerialTracked }

// IsLowStock reports whether a quantity-tracked item fell below its minimum.
func (i Item) IsLowStock() bool {
	return i.QuantityTracked() && i.MinQuantity != nil && i.QuantityOnHand < *i.MinQuantity
}

// ItemImage links an item to a registered file handle.
type ItemImage struct {
	FileID    int64
	Filename  string
	Path      string
	MimeType  string
	CreatedAt time.Time
}

type SerialStatus string

const (
	SerialInStock     SerialStatus = "in_stock"
	SerialIssued      SerialStatus = "issued"
	SerialLost        SerialStatus = "lost"
	SerialMaintenance SerialStatus = "maintenance"
	SerialCleaning    SerialStatus = "cleaning"
)

// SerialUnit is one identifiable piece of a serial-tracked item.
// IssuedToEmployeeID is set exactly when Status is SerialIssued.
type SerialUnit struct {
	ID                 int64
	ItemID             int64
	SerialNumber       string
	Status             SerialStatus
	IssuedToEmployeeID *int64
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	ItemCode             string
	ItemName             string
	Category             string
	IssuedToEmployeeCode *string
}

// EmployeeItemBalance is how many units of a quantity-tracked item an
// employee currently holds.
type EmployeeItemBalance struct {
	EmployeeID     int64
	ItemID         int64
	QuantityIssued int
	UpdatedAt      time.Time

	// Joined fields
	ItemCode string
	ItemName string
	Category string
	UnitName string
}

type Action string

const (
	ActionIssue       Action = "ISSUE"
	ActionReturn      Action = "RETURN"
	ActionLost        Action = "LOST"
	ActionDamaged     Action = "DAMAGED"
	ActionMaintenance Action = "MAINTENANCE"
	ActionCleaning    Action = "CLEANING"
	ActionAdjust      Action = "ADJUST"
)

var Actions = []string{
	string(ActionIssue), string(ActionReturn), string(ActionLost), string(ActionDamaged),
	string(ActionMaintenance), string(ActionCleaning), string(ActionAdjust),
}

// Transaction is an append-only ledger line. For ADJUST the quantity is the
// signed delta; for every other action it is the positive amount moved.
type Transaction struct {
	ID            int64
	ItemID        int64
	EmployeeID    *int64
	SerialUnitID  *int64
	Action        Action
	Quantity      *int
	ConditionNote *string
	Notes         *string
	CreatedAt     time.Time

	// Joined fields
	ItemCode     string
	EmployeeCode *string
	SerialNumber *string
}

type ReturnCondition string

const (
	ConditionGood    ReturnCondition = "good"
	ConditionDamaged ReturnCondition = "damaged"
	ConditionLost    ReturnCondition = "lost"
)

// Action maps a return condition to its ledger action. Only good returns restock.
func (c ReturnCondition) Action() Action {
	switch c {
	case ConditionDamaged:
		return ActionDamaged
	case ConditionLost:
		return ActionLost
	default:
		return ActionReturn
	}
}

func (c ReturnCondition) Restocks() bool { return c == ConditionGood }

// AssignmentState is the single-row scratch document mirrored from the
// front end: employee code -> planned item assignments. It carries no
// ledger invariants.
type AssignmentState struct {
	Data      map[string][]AssignmentEntry `json:"data"`
	UpdatedAt *time.Time                   `json:"updated_at,omitempty"`
}

type AssignmentEntry struct {
	ItemID   json.Number `json:"itemId"`
	Quantity int         `json:"quantity"`
}
