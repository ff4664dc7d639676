package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/file"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/inventory"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/database"
)

const openingStockNote = "opening stock"

type InventoryServiceImpl struct {
	tx           database.Transactor
	repo         inventory.InventoryRepository
	employeeRepo employee.EmployeeRepository
	fileService  file.FileService
}

func NewInventoryService(
	tx database.Transactor,
	repo inventory.InventoryRepository,
	employeeRepo employee.EmployeeRepository,
	fileService file.FileService,
) inventory.InventoryService {
	return &InventoryServiceImpl{
		tx:           tx,
		repo:         repo,
		employeeRepo: employeeRepo,
		fileService:  fileService,
	}
}

func intPtr(v int) *int { return &v }

// employeeByCode maps the master-data miss onto the inventory error.
func (s *InventoryServiceImpl) employeeByCode(ctx context.Context, code string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, fmt.Errorf("%w: %s", inventory.ErrEmployeeNotFound, code)
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// ========== CATALOG ==========

// CreateItem implements inventory.InventoryService. Opening stock is written
// to the ledger as an ADJUST so the log accounts for every unit.
func (s *InventoryServiceImpl) CreateItem(ctx context.Context, req inventory.CreateItemRequest) (inventory.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return inventory.ItemResponse{}, err
	}

	var created inventory.Item
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repo.CreateItem(ctx, inventory.Item{
			ItemCode:       req.ItemCode,
			Kind:           inventory.ItemKind(req.Kind),
			SerialTracked:  req.SerialTracked,
			Category:       req.Category,
			Name:           req.Name,
			UnitName:       req.UnitName,
			QuantityOnHand: req.OpeningQuantity,
			MinQuantity:    req.MinQuantity,
			Status:         inventory.ItemStatusActive,
		})
		if err != nil {
			return err
		}

		if req.OpeningQuantity > 0 {
			note := openingStockNote
			if req.Notes != nil {
				note = *req.Notes
			}
			_, err = s.repo.AppendTransaction(ctx, inventory.Transaction{
				ItemID:   created.ID,
				Action:   inventory.ActionAdjust,
				Quantity: intPtr(req.OpeningQuantity),
				Notes:    &note,
			})
		}
		return err
	})
	if err != nil {
		return inventory.ItemResponse{}, err
	}
	return inventory.NewItemResponse(created), nil
}

// GetItem implements inventory.InventoryService.
func (s *InventoryServiceImpl) GetItem(ctx context.Context, itemCode string) (inventory.ItemResponse, error) {
	item, err := s.repo.GetItemByCode(ctx, itemCode)
	if err != nil {
		return inventory.ItemResponse{}, err
	}
	return inventory.NewItemResponse(item), nil
}

// ListItems implements inventory.InventoryService.
func (s *InventoryServiceImpl) ListItems(ctx context.Context, filter inventory.ItemFilter) (inventory.ListItemResponse, error) {
	if err := filter.Validate(); err != nil {
		return inventory.ListItemResponse{}, err
	}

	items, total, err := s.repo.ListItems(ctx, filter)
	if err != nil {
		return inventory.ListItemResponse{}, fmt.Errorf("failed to list items: %w", err)
	}

	responses := make([]inventory.ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, inventory.NewItemResponse(item))
	}

	return inventory.ListItemResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Items:      responses,
	}, nil
}

// UpdateItem implements inventory.InventoryService.
func (s *InventoryServiceImpl) UpdateItem(ctx context.Context, req inventory.UpdateItemRequest) (inventory.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return inventory.ItemResponse{}, err
	}

	var updated inventory.Item
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := s.repo.GetItemByCodeForUpdate(ctx, req.ItemCode)
		if err != nil {
			return err
		}
		req.Apply(&item)

		updated, err = s.repo.UpdateItem(ctx, item)
		return err
	})
	if err != nil {
		return inventory.ItemResponse{}, err
	}
	return inventory.NewItemResponse(updated), nil
}

// DeleteItem implements inventory.InventoryService. Items with any ledger
// history are kept; mark them inactive instead.
func (s *InventoryServiceImpl) DeleteItem(ctx context.Context, itemCode string) error {
	item, err := s.repo.GetItemByCode(ctx, itemCode)
	if err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, item.ID)
}

// ListLowStock implements inventory.InventoryService.
func (s *InventoryServiceImpl) ListLowStock(ctx context.Context) ([]inventory.ItemResponse, error) {
	items, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock items: %w", err)
	}

	responses := make([]inventory.ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, inventory.NewItemResponse(item))
	}
	return responses, nil
}

// AttachItemImage implements inventory.InventoryService.
func (s *InventoryServiceImpl) AttachItemImage(ctx context.Context, itemCode string, upload file.Upload) (inventory.ItemResponse, error) {
	item, err := s.repo.GetItemByCode(ctx, itemCode)
	if err != nil {
		return inventory.ItemResponse{}, err
	}

	upload.Folder = "items/" + item.ItemCode
	uploaded, err := s.fileService.UploadImage(ctx, upload)
	if err != nil {
		return inventory.ItemResponse{}, err
	}

	if err := s.repo.AddItemImage(ctx, item.ID, uploaded.ID); err != nil {
		if delErr := s.fileService.DeleteFile(ctx, uploaded.ID); delErr != nil {
			slog.WarnContext(ctx, "Failed to remove orphaned item image", "file_id", uploaded.ID, "error", delErr)
		}
		return inventory.ItemResponse{}, err
	}
	return s.GetItem(ctx, itemCode)
}

// ========== QUANTITY LEDGER ==========

// IssueQuantity implements inventory.InventoryService.
func (s *InventoryServiceImpl) IssueQuantity(ctx context.Context, req inventory.IssueQuantityRequest) (inventory.StockMovementResponse, error) {
	if err := req.Validate(); err != nil {
		return inventory.StockMovementResponse{}, err
	}

	var resp inventory.StockMovementResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employeeByCode(ctx, req.EmployeeCode)
		if err != nil {
			return err
		}
		item, err := s.quantityItemForUpdate(ctx, req.ItemCode)
		if err != nil {
			return err
		}
		if item.QuantityOnHand < req.Quantity {
			return fmt.Errorf("%w: %s has %d, requested %d", inventory.ErrInsufficientStock, item.ItemCode, item.QuantityOnHand, req.Quantity)
		}

		onHand := item.QuantityOnHand - req.Quantity
		if err := s.repo.UpdateItemQuantity(ctx, item.ID, onHand); err != nil {
			return err
		}
		balance, err := s.repo.AdjustBalance(ctx, emp.ID, item.ID, req.Quantity)
		if err != nil {
			return err
		}
		txn, err := s.repo.AppendTransaction(ctx, inventory.Transaction{
			ItemID:     item.ID,
			EmployeeID: &emp.ID,
			Action:     inventory.ActionIssue,
			Quantity:   intPtr(req.Quantity),
			Notes:      req.Notes,
		})
		if err != nil {
			return err
		}

		resp = movement(item.ItemCode, onHand, emp.EmployeeCode, balance, txn)
		return nil
	})
	if err != nil {
		return inventory.StockMovementResponse{}, err
	}
	return resp, nil
}

// ReturnQuantity implements inventory.InventoryService. Only good returns go
// back on the shelf; damaged and lost units leave the books.
func (s *InventoryServiceImpl) ReturnQuantity(ctx context.Context, req inventory.ReturnQuantityRequest) (inventory.StockMovementResponse, error) {
	if err := req.Validate(); err != nil {
		return inventory.StockMovementResponse{}, err
	}
	condition := inventory.ReturnCondition(req.Condition)

	var resp inventory.StockMovementResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employeeByCode(ctx, req.EmployeeCode)
		if err != nil {
			return err
		}
		item, err := s.quantityItemForUpdate(ctx, req.ItemCode)
		if err != nil {
			return err
		}

		held, err := s.repo.GetBalance(ctx, emp.ID, item.ID)
		if err != nil {
			return err
		}
		if held.QuantityIssued < req.Quantity {
			return fmt.Errorf("%w: %s holds %d of %s, returning %d",
				inventory.ErrInsufficientBalance, emp.EmployeeCode, held.QuantityIssued, item.ItemCode, req.Quantity)
		}

		balance, err := s.repo.AdjustBalance(ctx, emp.ID, item.ID, -req.Quantity)
		if err != nil {
			return err
		}
		onHand := item.QuantityOnHand
		if condition.Restocks() {
			onHand += req.Quantity
			if err := s.repo.UpdateItemQuantity(ctx, item.ID, onHand); err != nil {
				return err
			}
		}

		txn, err := s.repo.AppendTransaction(ctx, inventory.Transaction{
			ItemID:        item.ID,
			EmployeeID:    &emp.ID,
			Action:        condition.Action(),
			Quantity:      intPtr(req.Quantity),
			ConditionNote: req.ConditionNote,
			Notes:         req.Notes,
		})
		if err != nil {
			return err
		}
		if !condition.Restocks() {
			slog.WarnContext(ctx, "Inventory written off on return",
				"item_code", item.ItemCode, "employee_code", emp.EmployeeCode,
				"condition", req.Condition, "quantity", req.Quantity)
		}

		resp = movement(item.ItemCode, onHand, emp.EmployeeCode, balance, txn)
		return nil
	})
	if err != nil {
		return inventory.StockMovementResponse{}, err
	}
	return resp, nil
}

// Adjust implements inventory.InventoryService.
func (s *InventoryServiceImpl) Adjust(ctx context.Context, req inventory.AdjustRequest) (inventory.StockMovementResponse, error) {
	if err := req.Validate(); err != nil {
		return inventory.StockMovementResponse{}, err
	}

	var resp inventory.StockMovementResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := s.quantityItemForUpdate(ctx, req.ItemCode)
		if err != nil {
			return err
		}

		onHand := item.QuantityOnHand + req.Delta
		if onHand < 0 {
			return fmt.Errorf("%w: %s has %d, adjusting by %d", inventory.ErrInsufficientStock, item.ItemCode, item.QuantityOnHand, req.Delta)
		}
		if err := s.repo.UpdateItemQuantity(ctx, item.ID, onHand); err != nil {
			return err
		}
		txn, err := s.repo.AppendTransaction(ctx, inventory.Transaction{
			ItemID:   item.ID,
			Action:   inventory.ActionAdjust,
			Quantity: intPtr(req.Delta),
			Notes:    req.Notes,
		})
		if err != nil {
			return err
		}

		resp = inventory.StockMovementResponse{
			ItemCode:       item.ItemCode,
			QuantityOnHand: onHand,
			Transaction:    inventory.NewTransactionResponse(txn),
		}
		return nil
	})
	if err != nil {
		return inventory.StockMovementResponse{}, err
	}
	return resp, nil
}

func (s *InventoryServiceImpl) quantityItemForUpdate(ctx context.Context, itemCode string) (inventory.Item, error) {
	item, err := s.repo.GetItemByCodeForUpdate(ctx, itemCode)
	if err != nil {
		return inventory.Item{}, err
	}
	if item.SerialTracked {
		return inventory.Item{}, fmt.Errorf("%w: %s", inventory.ErrNotQuantityTracked, item.ItemCode)
	}
	return item, nil
}

func movement(itemCode string, onHand int, employeeCode string, balance int, txn inventory.Transaction) inventory.StockMovementResponse {
	return inventory.StockMovementResponse{
		ItemCode:       itemCode,
		QuantityOnHand: onHand,
		EmployeeCode:   &employeeCode,
		Balance:        &balance,
		Transaction:    inventory.NewTransactionResponse(txn),
	}
}

// ========== SERIAL UNITS ==========

// CreateSerialUnit implements inventory.InventoryService. A new unit is
// acquired stock and is logged as an ADJUST of one.
func (s *InventoryServiceImpl) CreateSerialUnit(ctx context.Context, req inventory.CreateSerialUnitRequest) (inventory.SerialUnitResponse, error) {
	if err := req.Validate(); err != nil {
		return inventory.SerialUnitResponse{}, err
	}

	var created inventory.SerialUnit
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := s.repo.GetItemByCodeForUpdate(ctx, req.ItemCode)
		if err != nil {
			return err
		}
		if !item.SerialTracked {
			return fmt.Errorf("%w: %s", inventory.ErrNotSerialTracked, item.ItemCode)
		}

		created, err = s.repo.CreateSerialUnit(ctx, inventory.SerialUnit{
			ItemID:       item.ID,
			SerialNumber: req.SerialNumber,
			Status:       inventory.SerialInStock,
		})
		if err != nil {
			return err
		}

		_, err = s.repo.AppendTransaction(ctx, inventory.Transaction{
			ItemID:       item.ID,
			SerialUnitID: &created.ID,
			Action:       inventory.ActionAdjust,
			Quantity:     intPtr(1),
			Notes:        req.Notes,
		})
		return err
	})
	if err != nil {
		return inventory.SerialUnitResponse{}, err
	}
	return inventory.NewSerialUnitResponse(created), nil
}

// GetSerialUnit implements inventory.InventoryService.
func (s *InventoryServiceImpl) GetSerialUnit(ctx context.Context, id int64) (inventory.SerialUnitResponse, error) {
	unit, err := s.repo.GetSerialUnitByID(ctx, id)
	if err != nil {
		return inventory.SerialUnitResponse{}, err
	}
	return inventory.NewSerialUnitResponse(unit), nil
}

// ListSerialUnits implements inventory.InventoryService.
func (s *InventoryServiceImpl) ListSerialUnits(ctx context.Context, itemCode string) ([]inventory.SerialUnitResponse, error) {
	item, err := s.repo.GetItemByCode(ctx, itemCode)
	if err != nil {
		return nil, err
	}
	units, err := s.repo.ListSerialUnits(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list serial units: %w", err)
	}

	responses := make([]inventory.SerialUnitResponse, 0, len(units))
	for _, u := range units {
		responses = append(responses, inventory.NewSerialUnitResponse(u))
	}
	return responses, nil
}

// IssueSerial implements inventory.InventoryService.
func (s *InventoryServiceImpl) IssueSerial(ctx context.Context, req inventory.IssueSerialRequest) (inventory.SerialMovementResponse, error) {
	if err := req.Validate(); err != nil {
		return inventory.SerialMovementResponse{}, err
	}

	var resp inventory.SerialMovementResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employeeByCode(ctx, req.EmployeeCode)
		if err != nil {
			return err
		}
		unit, err := s.repo.GetSerialUnitForUpdate(ctx, req.SerialUnitID)
		if err != nil {
			return err
		}
		action, err := inventory.IssueTransition(unit.Status)
		if err != nil {
			return err
		}

		unit.Status = inventory.SerialIssued
		unit.IssuedToEmployeeID = &emp.ID
		resp, err = s.moveSerial(ctx, unit, action, &emp.ID, nil, req.Notes)
		return err
	})
	if err != nil {
		return inventory.SerialMovementResponse{}, err
	}
	return resp, nil
}

// ReturnSerial implements inventory.InventoryService. The transaction is
// attributed to the employee who held the unit.
func (s *InventoryServiceImpl) ReturnSerial(ctx context.Context, req inventory.ReturnSerialRequest) (inventory.SerialMovementResponse, error) {
	if err := req.Validate(); err != nil {
		return inventory.SerialMovementResponse{}, err
	}
	target := inventory.SerialStatus(req.Target)

	var resp inventory.SerialMovementResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		unit, err := s.repo.GetSerialUnitForUpdate(ctx, req.SerialUnitID)
		if err != nil {
			return err
		}
		action, err := inventory.ReturnTransition(unit.Status, target)
		if err != nil {
			return err
		}

		holder := unit.IssuedToEmployeeID
		unit.Status = target
		unit.IssuedToEmployeeID = nil
		resp, err = s.moveSerial(ctx, unit, action, holder, req.ConditionNote, req.Notes)
		if err == nil && target == inventory.SerialLost {
			slog.WarnContext(ctx, "Serial unit reported lost", "item_code", unit.ItemCode, "serial_number", unit.SerialNumber)
		}
		return err
	})
	if err != nil {
		return inventory.SerialMovementResponse{}, err
	}
	return resp, nil
}

// CompleteService implements inventory.InventoryService.
func (s *InventoryServiceImpl) CompleteService(ctx context.Context, req inventory.CompleteServiceRequest) (inventory.SerialMovementResponse, error) {
	if err := req.Validate(); err != nil {
		return inventory.SerialMovementResponse{}, err
	}

	var resp inventory.SerialMovementResponse
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		unit, err := s.repo.GetSerialUnitForUpdate(ctx, req.SerialUnitID)
		if err != nil {
			return err
		}
		action, err := inventory.ServiceDoneTransition(unit.Status)
		if err != nil {
			return err
		}

		unit.Status = inventory.SerialInStock
		unit.IssuedToEmployeeID = nil
		resp, err = s.moveSerial(ctx, unit, action, nil, nil, req.Notes)
		return err
	})
	if err != nil {
		return inventory.SerialMovementResponse{}, err
	}
	return resp, nil
}

// moveSerial persists the unit's new state and appends its ledger line. It
// must run inside the caller's transaction.
func (s *InventoryServiceImpl) moveSerial(ctx context.Context, unit inventory.SerialUnit, action inventory.Action, employeeID *int64, conditionNote, notes *string) (inventory.SerialMovementResponse, error) {
	updated, err := s.repo.UpdateSerialUnit(ctx, unit)
	if err != nil {
		return inventory.SerialMovementResponse{}, err
	}
	txn, err := s.repo.AppendTransaction(ctx, inventory.Transaction{
		ItemID:        updated.ItemID,
		EmployeeID:    employeeID,
		SerialUnitID:  &updated.ID,
		Action:        action,
		Quantity:      intPtr(1),
		ConditionNote: conditionNote,
		Notes:         notes,
	})
	if err != nil {
		return inventory.SerialMovementResponse{}, err
	}
	return inventory.SerialMovementResponse{
		Unit:        inventory.NewSerialUnitResponse(updated),
		Transaction: inventory.NewTransactionResponse(txn),
	}, nil
}

// ========== VIEWS ==========

// Reconcile implements inventory.InventoryService.
func (s *InventoryServiceImpl) Reconcile(ctx context.Context, itemCode string) (inventory.ReconcileReport, error) {
	item, err := s.repo.GetItemByCode(ctx, itemCode)
	if err != nil {
		return inventory.ReconcileReport{}, err
	}
	txns, err := s.repo.ListTransactionsByItem(ctx, item.ID)
	if err != nil {
		return inventory.ReconcileReport{}, fmt.Errorf("failed to load ledger of %s: %w", item.ItemCode, err)
	}

	var report inventory.ReconcileReport
	if item.SerialTracked {
		units, err := s.repo.ListSerialUnits(ctx, item.ID)
		if err != nil {
			return inventory.ReconcileReport{}, fmt.Errorf("failed to list serial units: %w", err)
		}
		report = inventory.ReconcileSerial(item, units, txns)
	} else {
		balances, err := s.repo.ListBalancesByItem(ctx, item.ID)
		if err != nil {
			return inventory.ReconcileReport{}, fmt.Errorf("failed to list balances: %w", err)
		}
		report = inventory.ReconcileQuantity(item, balances, txns)
	}

	if !report.Consistent {
		slog.ErrorContext(ctx, "Inventory ledger out of balance",
			"item_code", item.ItemCode, "actual", report.Actual, "derived", report.Derived)
	}
	return report, nil
}

// EmployeeIssuedInventory implements inventory.InventoryService.
func (s *InventoryServiceImpl) EmployeeIssuedInventory(ctx context.Context, employeeCode string) (inventory.EmployeeIssuedInventory, error) {
	emp, err := s.employeeByCode(ctx, employeeCode)
	if err != nil {
		return inventory.EmployeeIssuedInventory{}, err
	}

	units, err := s.repo.ListSerialUnitsByEmployee(ctx, emp.ID)
	if err != nil {
		return inventory.EmployeeIssuedInventory{}, fmt.Errorf("failed to list issued serial units: %w", err)
	}
	balances, err := s.repo.ListBalancesByEmployee(ctx, emp.ID)
	if err != nil {
		return inventory.EmployeeIssuedInventory{}, fmt.Errorf("failed to list balances: %w", err)
	}

	view := inventory.EmployeeIssuedInventory{
		EmployeeCode:  emp.EmployeeCode,
		SerialItems:   make([]inventory.IssuedSerialItem, 0, len(units)),
		QuantityItems: make([]inventory.IssuedQuantityItem, 0, len(balances)),
	}
	for _, u := range units {
		view.SerialItems = append(view.SerialItems, inventory.IssuedSerialItem{
			SerialUnitID: u.ID,
			ItemCode:     u.ItemCode,
			ItemName:     u.ItemName,
			Category:     u.Category,
			SerialNumber: u.SerialNumber,
			Status:       string(u.Status),
			CreatedAt:    u.CreatedAt.Format(time.RFC3339),
		})
	}
	for _, b := range balances {
		if b.QuantityIssued <= 0 {
			continue
		}
		view.QuantityItems = append(view.QuantityItems, inventory.IssuedQuantityItem{
			ItemCode:       b.ItemCode,
			ItemName:       b.ItemName,
			Category:       b.Category,
			UnitName:       b.UnitName,
			QuantityIssued: b.QuantityIssued,
		})
	}
	return view, nil
}

// ListTransactions implements inventory.InventoryService.
func (s *InventoryServiceImpl) ListTransactions(ctx context.Context, filter inventory.TransactionFilter) (inventory.ListTransactionResponse, error) {
	if err := filter.Validate(); err != nil {
		return inventory.ListTransactionResponse{}, err
	}

	txns, total, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		return inventory.ListTransactionResponse{}, fmt.Errorf("failed to list transactions: %w", err)
	}

	responses := make([]inventory.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		responses = append(responses, inventory.NewTransactionResponse(t))
	}

	return inventory.ListTransactionResponse{
		TotalCount:   total,
		Page:         filter.Page,
		Limit:        filter.Limit,
		TotalPages:   int(math.Ceil(float64(total) / float64(filter.Limit))),
		Transactions: responses,
	}, nil
}

// ========== ASSIGNMENT STATE ==========

// GetAssignmentState implements inventory.InventoryService.
func (s *InventoryServiceImpl) GetAssignmentState(ctx context.Context) (inventory.AssignmentState, error) {
	return s.repo.GetAssignmentState(ctx)
}

// SaveAssignmentState implements inventory.InventoryService.
func (s *InventoryServiceImpl) SaveAssignmentState(ctx context.Context, req inventory.SaveAssignmentStateRequest) (inventory.AssignmentState, error) {
	if err := req.Validate(); err != nil {
		return inventory.AssignmentState{}, err
	}
	return s.repo.SaveAssignmentState(ctx, inventory.AssignmentState{Data: req.Data})
}
