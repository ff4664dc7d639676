package inventory

import "errors"

var (
	ErrItemNotFound         = errors.New("item not found")
	ErrItemCodeExists       = errors.New("item code already exists")
	ErrItemHasDependents    = errors.New("item has balances, serial units or transactions")
	ErrSerialUnitNotFound   = errors.New("serial unit not found")
	ErrSerialNumberExists   = errors.New("serial number already exists for this item")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrInsufficientStock    = errors.New("insufficient stock on hand")
	ErrInsufficientBalance  = errors.New("employee holds fewer units than requested")
	ErrInvalidSerialState   = errors.New("serial unit transition not allowed")
	ErrNotQuantityTracked   = errors.New("item is serial tracked; use serial unit operations")
	ErrNotSerialTracked     = errors.New("item is not serial tracked")
	ErrSerialOnlyRestricted = errors.New("only restricted items can be serial tracked")
)
