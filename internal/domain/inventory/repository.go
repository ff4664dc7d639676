package inventory

import "context"

type ItemRepository interface {
	CreateItem(ctx context.Context, item Item) (Item, error)
	GetItemByID(ctx context.Context, id int64) (Item, error)
	GetItemByCode(ctx context.Context, itemCode string) (Item, error)

	// GetItemByCodeForUpdate locks the item row for the rest of the transaction
	GetItemByCodeForUpdate(ctx context.Context, itemCode string) (Item, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]Item, int64, error)
	ListLowStock(ctx context.Context) ([]Item, error)
	UpdateItem(ctx context.Context, item Item) (Item, error)
	UpdateItemQuantity(ctx context.Context, itemID int64, quantityOnHand int) error

	// DeleteItem fails with ErrItemHasDependents while balances, units or transactions exist
	DeleteItem(ctx context.Context, id int64) error
	AddItemImage(ctx context.Context, itemID int64, fileID int64) error
}

type SerialUnitRepository interface {
	CreateSerialUnit(ctx context.Context, unit SerialUnit) (SerialUnit, error)
	GetSerialUnitByID(ctx context.Context, id int64) (SerialUnit, error)
	GetSerialUnitForUpdate(ctx context.Context, id int64) (SerialUnit, error)
	ListSerialUnits(ctx context.Context, itemID int64) ([]SerialUnit, error)
	ListSerialUnitsByEmployee(ctx context.Context, employeeID int64) ([]SerialUnit, error)

	// UpdateSerialUnit writes status and issued_to_employee_id
	UpdateSerialUnit(ctx context.Context, unit SerialUnit) (SerialUnit, error)
}

type BalanceRepository interface {
	// GetBalance returns a zero balance when no row exists
	GetBalance(ctx context.Context, employeeID, itemID int64) (EmployeeItemBalance, error)

	// AdjustBalance upserts the pair and adds delta, returning the new quantity
	AdjustBalance(ctx context.Context, employeeID, itemID int64, delta int) (int, error)
	ListBalancesByItem(ctx context.Context, itemID int64) ([]EmployeeItemBalance, error)
	ListBalancesByEmployee(ctx context.Context, employeeID int64) ([]EmployeeItemBalance, error)
}

type TransactionRepository interface {
	AppendTransaction(ctx context.Context, txn Transaction) (Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, int64, error)
	ListTransactionsByItem(ctx context.Context, itemID int64) ([]Transaction, error)
}

type AssignmentStateRepository interface {
	GetAssignmentState(ctx context.Context) (AssignmentState, error)
	SaveAssignmentState(ctx context.Context, state AssignmentState) (AssignmentState, error)
}

// InventoryRepository groups every store the ledger touches.
type InventoryRepository interface {
	ItemRepository
	SerialUnitRepository
	BalanceRepository
	TransactionRepository
	AssignmentStateRepository
}
