package inventory

import (
	"context"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/file"
)

type InventoryService interface {
	// Catalog
	CreateItem(ctx context.Context, req CreateItemRequest) (ItemResponse, error)
	GetItem(ctx context.Context, itemCode string) (ItemResponse, error)
	ListItems(ctx context.Context, filter ItemFilter) (ListItemResponse, error)
	UpdateItem(ctx context.Context, req UpdateItemRequest) (ItemResponse, error)
	DeleteItem(ctx context.Context, itemCode string) error
	ListLowStock(ctx context.Context) ([]ItemResponse, error)
	AttachItemImage(ctx context.Context, itemCode string, upload file.Upload) (ItemResponse, error)

	// Quantity ledger
	IssueQuantity(ctx context.Context, req IssueQuantityRequest) (StockMovementResponse, error)
	ReturnQuantity(ctx context.Context, req ReturnQuantityRequest) (StockMovementResponse, error)
	Adjust(ctx context.Context, req AdjustRequest) (StockMovementResponse, error)

	// Serial units
	CreateSerialUnit(ctx context.Context, req CreateSerialUnitRequest) (SerialUnitResponse, error)
	GetSerialUnit(ctx context.Context, id int64) (SerialUnitResponse, error)
	ListSerialUnits(ctx context.Context, itemCode string) ([]SerialUnitResponse, error)
	IssueSerial(ctx context.Context, req IssueSerialRequest) (SerialMovementResponse, error)
	ReturnSerial(ctx context.Context, req ReturnSerialRequest) (SerialMovementResponse, error)
	CompleteService(ctx context.Context, req CompleteServiceRequest) (SerialMovementResponse, error)

	// Views
	Reconcile(ctx context.Context, itemCode string) (ReconcileReport, error)
	EmployeeIssuedInventory(ctx context.Context, employeeCode string) (EmployeeIssuedInventory, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) (ListTransactionResponse, error)

	GetAssignmentState(ctx context.Context) (AssignmentState, error)
	SaveAssignmentState(ctx context.Context, req SaveAssignmentStateRequest) (AssignmentState, error)
}
