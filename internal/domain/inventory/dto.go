package inventory

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/validator"
)

// ========== ITEM DTOs ==========

type CreateItemRequest struct {
	ItemCode        string  `json:"item_code" validate:"required,code"`
	Kind            string  `json:"kind" validate:"required,oneof=general restricted"`
	SerialTracked   bool    `json:"serial_tracked"`
	Category        string  `json:"category" validate:"required,max=100"`
	Name            string  `json:"name" validate:"required,max=150"`
	UnitName        string  `json:"unit_name" validate:"required,max=30"`
	OpeningQuantity int     `json:"opening_quantity" validate:"gte=0"`
	MinQuantity     *int    `json:"min_quantity,omitempty" validate:"omitempty,gte=0"`
	Notes           *string `json:"notes,omitempty"`
}

func (r *CreateItemRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.SerialTracked && r.Kind != string(KindRestricted) {
		errs = append(errs, validator.ValidationError{Field: "serial_tracked", Message: "only restricted items can be serial tracked"})
	}
	if r.SerialTracked && r.OpeningQuantity != 0 {
		errs = append(errs, validator.ValidationError{Field: "opening_quantity", Message: "serial tracked items start empty; register serial units instead"})
	}
	if len(errs) > 0 {
		return validator.Collect(validator.Struct(r), errs)
	}
	return validator.Struct(r)
}

// UpdateItemRequest changes catalog metadata. Stock only moves through ledger operations.
type UpdateItemRequest struct {
	ItemCode    string  `json:"-"`
	Category    *string `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	UnitName    *string `json:"unit_name,omitempty" validate:"omitempty,min=1,max=30"`
	MinQuantity *int    `json:"min_quantity,omitempty" validate:"omitempty,gte=0"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

func (r *UpdateItemRequest) Validate() error {
	return validator.Struct(r)
}

func (r *UpdateItemRequest) Apply(item *Item) {
	if r.Category != nil {
		item.Category = *r.Category
	}
	if r.Name != nil {
		item.Name = *r.Name
	}
	if r.UnitName != nil {
		item.UnitName = *r.UnitName
	}
	if r.MinQuantity != nil {
		item.MinQuantity = r.MinQuantity
	}
	if r.Status != nil {
		item.Status = ItemStatus(*r.Status)
	}
}

type ItemFilter struct {
	Kind     *string `json:"kind,omitempty"`
	Category *string `json:"category,omitempty"`
	Status   *string `json:"status,omitempty"`
	Search   *string `json:"search,omitempty"`
	LowStock bool    `json:"low_stock"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ItemFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Kind != nil && !validator.IsInSlice(*f.Kind, []string{string(KindGeneral), string(KindRestricted)}) {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "kind must be general or restricted"})
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{string(ItemStatusActive), string(ItemStatusInactive)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be active or inactive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ItemImageResponse struct {
	FileID   int64  `json:"file_id"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
	MimeType string `json:"mime_type"`
}

type ItemResponse struct {
	ID             int64               `json:"id"`
	ItemCode       string              `json:"item_code"`
	Kind           string              `json:"kind"`
	SerialTracked  bool                `json:"serial_tracked"`
	Category       string              `json:"category"`
	Name           string              `json:"name"`
	UnitName       string              `json:"unit_name"`
	QuantityOnHand int                 `json:"quantity_on_hand"`
	MinQuantity    *int                `json:"min_quantity,omitempty"`
	LowStock       bool                `json:"low_stock"`
	Status         string              `json:"status"`
	Images         []ItemImageResponse `json:"images"`
	CreatedAt      string              `json:"created_at"`
	UpdatedAt      string              `json:"updated_at"`
}

func NewItemResponse(i Item) ItemResponse {
	images := make([]ItemImageResponse, 0, len(i.Images))
	for _, img := range i.Images {
		images = append(images, ItemImageResponse{
			FileID:   img.FileID,
			Filename: img.Filename,
			Path:     img.Path,
			MimeType: img.MimeType,
		})
	}
	return ItemResponse{
		ID:             i.ID,
		ItemCode:       i.ItemCode,
		Kind:           string(i.Kind),
		SerialTracked:  i.SerialTracked,
		Category:       i.Category,
		Name:           i.Name,
		UnitName:       i.UnitName,
		QuantityOnHand: i.QuantityOnHand,
		MinQuantity:    i.MinQuantity,
		LowStock:       i.IsLowStock(),
		Status:         string(i.Status),
		Images:         images,
		CreatedAt:      i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      i.UpdatedAt.Format(time.RFC3339),
	}
}

type ListItemResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Items      []ItemResponse `json:"items"`
}

// ========== QUANTITY LEDGER DTOs ==========

// QuantityAction is the request body for quantity issue/return endpoints.
type QuantityAction struct {
	Quantity int     `json:"quantity" validate:"gt=0"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type IssueQuantityRequest struct {
	EmployeeCode string `json:"employee_code" validate:"required,code"`
	ItemCode     string `json:"item_code" validate:"required,code"`
	QuantityAction
}

func (r *IssueQuantityRequest) Validate() error {
	return validator.Struct(r)
}

type ReturnQuantityRequest struct {
	EmployeeCode  string  `json:"employee_code" validate:"required,code"`
	ItemCode      string  `json:"item_code" validate:"required,code"`
	Condition     string  `json:"condition" validate:"required,oneof=good damaged lost"`
	ConditionNote *string `json:"condition_note,omitempty" validate:"omitempty,max=500"`
	QuantityAction
}

func (r *ReturnQuantityRequest) Validate() error {
	return validator.Struct(r)
}

type AdjustRequest struct {
	ItemCode string  `json:"item_code" validate:"required,code"`
	Delta    int     `json:"delta" validate:"ne=0"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

func (r *AdjustRequest) Validate() error {
	return validator.Struct(r)
}

// StockMovementResponse reports the state after a ledger operation.
type StockMovementResponse struct {
	ItemCode       string              `json:"item_code"`
	QuantityOnHand int                 `json:"quantity_on_hand"`
	EmployeeCode   *string             `json:"employee_code,omitempty"`
	Balance        *int                `json:"balance,omitempty"`
	Transaction    TransactionResponse `json:"transaction"`
}

// ========== SERIAL DTOs ==========

type SerialAction struct {
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type CreateSerialUnitRequest struct {
	ItemCode     string `json:"item_code" validate:"required,code"`
	SerialNumber string `json:"serial_number" validate:"required,max=100"`
	SerialAction
}

func (r *CreateSerialUnitRequest) Validate() error {
	return validator.Struct(r)
}

type IssueSerialRequest struct {
	SerialUnitID int64  `json:"serial_unit_id" validate:"gt=0"`
	EmployeeCode string `json:"employee_code" validate:"required,code"`
	SerialAction
}

func (r *IssueSerialRequest) Validate() error {
	return validator.Struct(r)
}

type ReturnSerialRequest struct {
	SerialUnitID  int64   `json:"serial_unit_id" validate:"gt=0"`
	Target        string  `json:"target" validate:"required,oneof=in_stock lost maintenance cleaning"`
	ConditionNote *string `json:"condition_note,omitempty" validate:"omitempty,max=500"`
	SerialAction
}

func (r *ReturnSerialRequest) Validate() error {
	return validator.Struct(r)
}

type CompleteServiceRequest struct {
	SerialUnitID int64 `json:"serial_unit_id" validate:"gt=0"`
	SerialAction
}

func (r *CompleteServiceRequest) Validate() error {
	return validator.Struct(r)
}

type SerialUnitResponse struct {
	ID                   int64   `json:"id"`
	ItemCode             string  `json:"item_code"`
	SerialNumber         string  `json:"serial_number"`
	Status               string  `json:"status"`
	IssuedToEmployeeCode *string `json:"issued_to_employee_code"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

func NewSerialUnitResponse(u SerialUnit) SerialUnitResponse {
	return SerialUnitResponse{
		ID:                   u.ID,
		ItemCode:             u.ItemCode,
		SerialNumber:         u.SerialNumber,
		Status:               string(u.Status),
		IssuedToEmployeeCode: u.IssuedToEmployeeCode,
		CreatedAt:            u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            u.UpdatedAt.Format(time.RFC3339),
	}
}

type SerialMovementResponse struct {
	Unit        SerialUnitResponse  `json:"unit"`
	Transaction TransactionResponse `json:"transaction"`
}

// ========== TRANSACTION DTOs ==========

type TransactionFilter struct {
	ItemCode     *string `json:"item_code,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	Action       *string `json:"action,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *TransactionFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 50
	}
	if f.Limit > 200 {
		f.Limit = 200
	}
	if f.Action != nil && !validator.IsInSlice(*f.Action, Actions) {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "unknown transaction action"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TransactionResponse struct {
	ID            int64   `json:"id"`
	ItemCode      string  `json:"item_code"`
	EmployeeCode  *string `json:"employee_code,omitempty"`
	SerialUnitID  *int64  `json:"serial_unit_id,omitempty"`
	SerialNumber  *string `json:"serial_number,omitempty"`
	Action        string  `json:"action"`
	Quantity      *int    `json:"quantity,omitempty"`
	ConditionNote *string `json:"condition_note,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func NewTransactionResponse(t Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		ItemCode:      t.ItemCode,
		EmployeeCode:  t.EmployeeCode,
		SerialUnitID:  t.SerialUnitID,
		SerialNumber:  t.SerialNumber,
		Action:        string(t.Action),
		Quantity:      t.Quantity,
		ConditionNote: t.ConditionNote,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
	}
}

type ListTransactionResponse struct {
	TotalCount   int64                 `json:"total_count"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ========== EMPLOYEE VIEW ==========

type IssuedSerialItem struct {
	SerialUnitID int64  `json:"serial_unit_id"`
	ItemCode     string `json:"item_code"`
	ItemName     string `json:"item_name"`
	Category     string `json:"category"`
	SerialNumber string `json:"serial_number"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

type IssuedQuantityItem struct {
	ItemCode       string `json:"item_code"`
	ItemName       string `json:"item_name"`
	Category       string `json:"category"`
	UnitName       string `json:"unit_name"`
	QuantityIssued int    `json:"quantity_issued"`
}

// EmployeeIssuedInventory is everything an employee currently holds.
type EmployeeIssuedInventory struct {
	EmployeeCode  string               `json:"employee_code"`
	SerialItems   []IssuedSerialItem   `json:"serial_items"`
	QuantityItems []IssuedQuantityItem `json:"quantity_items"`
}

// ========== ASSIGNMENT STATE ==========

type SaveAssignmentStateRequest struct {
	Data map[string][]AssignmentEntry `json:"data"`
}

func (r *SaveAssignmentStateRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Data == nil {
		errs = append(errs, validator.ValidationError{Field: "data", Message: "is required"})
	}
	for employeeCode, entries := range r.Data {
		for i, e := range entries {
			if e.Quantity < 0 {
				errs = append(errs, validator.ValidationError{
					Field:   "data." + employeeCode + "[" + strconv.Itoa(i) + "].quantity",
					Message: "must be non-negative",
				})
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
