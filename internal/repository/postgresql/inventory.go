package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/inventory"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type inventoryRepositoryImpl struct {
	db *database.DB
}

func NewInventoryRepository(db *database.DB) inventory.InventoryRepository {
	return &inventoryRepositoryImpl{db: db}
}

// ========== ITEMS ==========

const itemColumns = `
	id, item_code, kind, serial_tracked, category, name, unit_name, quantity_on_hand,
	min_quantity, status, created_at, updated_at`

func scanItem(row pgx.Row) (inventory.Item, error) {
	var i inventory.Item
	err := row.Scan(
		&i.ID, &i.ItemCode, &i.Kind, &i.SerialTracked, &i.Category, &i.Name, &i.UnitName, &i.QuantityOnHand,
		&i.MinQuantity, &i.Status, &i.CreatedAt, &i.UpdatedAt,
	)
	return i, err
}

func (r *inventoryRepositoryImpl) CreateItem(ctx context.Context, item inventory.Item) (inventory.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO items (item_code, kind, serial_tracked, category, name, unit_name, quantity_on_hand, min_quantity, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING` + itemColumns

	created, err := scanItem(q.QueryRow(ctx, query,
		item.ItemCode, item.Kind, item.SerialTracked, item.Category, item.Name, item.UnitName,
		item.QuantityOnHand, item.MinQuantity, item.Status,
	))
	if err != nil {
		if database.IsUniqueViolation(err, "uq_items_code") {
			return inventory.Item{}, inventory.ErrItemCodeExists
		}
		if database.IsCheckViolation(err, "ck_items_serial_restricted") {
			return inventory.Item{}, inventory.ErrSerialOnlyRestricted
		}
		return inventory.Item{}, fmt.Errorf("failed to create item: %w", err)
	}
	created.Images = []inventory.ItemImage{}
	return created, nil
}

func (r *inventoryRepositoryImpl) GetItemByID(ctx context.Context, id int64) (inventory.Item, error) {
	return r.getItem(ctx, "id = $1", id, "")
}

func (r *inventoryRepositoryImpl) GetItemByCode(ctx context.Context, itemCode string) (inventory.Item, error) {
	return r.getItem(ctx, "item_code = $1", itemCode, "")
}

// GetItemByCodeForUpdate implements inventory.ItemRepository.
func (r *inventoryRepositoryImpl) GetItemByCodeForUpdate(ctx context.Context, itemCode string) (inventory.Item, error) {
	return r.getItem(ctx, "item_code = $1", itemCode, " FOR UPDATE")
}

func (r *inventoryRepositoryImpl) getItem(ctx context.Context, where string, arg interface{}, lock string) (inventory.Item, error) {
	q := GetQuerier(ctx, r.db)

	item, err := scanItem(q.QueryRow(ctx, `SELECT`+itemColumns+` FROM items WHERE `+where+lock, arg))
	if err != nil {
		if err == pgx.ErrNoRows {
			return inventory.Item{}, inventory.ErrItemNotFound
		}
		return inventory.Item{}, fmt.Errorf("failed to get item: %w", err)
	}

	items := []inventory.Item{item}
	if err := r.loadImages(ctx, q, items); err != nil {
		return inventory.Item{}, err
	}
	return items[0], nil
}

// loadImages fills Images for every item in place.
func (r *inventoryRepositoryImpl) loadImages(ctx context.Context, q database.Querier, items []inventory.Item) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, len(items))
	byID := make(map[int64]int, len(items))
	for i := range items {
		ids[i] = items[i].ID
		byID[items[i].ID] = i
		items[i].Images = []inventory.ItemImage{}
	}

	query := `
		SELECT ii.item_id, f.id, f.filename, f.path, f.mime_type, ii.created_at
		FROM item_images ii JOIN files f ON f.id = ii.file_id
		WHERE ii.item_id = ANY($1)
		ORDER BY ii.created_at, f.id
	`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load item images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemID int64
		var img inventory.ItemImage
		if err := rows.Scan(&itemID, &img.FileID, &img.Filename, &img.Path, &img.MimeType, &img.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan item image: %w", err)
		}
		idx := byID[itemID]
		items[idx].Images = append(items[idx].Images, img)
	}
	return rows.Err()
}

func (r *inventoryRepositoryImpl) ListItems(ctx context.Context, filter inventory.ItemFilter) ([]inventory.Item, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1 = 1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Kind != nil && *filter.Kind != "" {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argIdx))
		args = append(args, *filter.Kind)
		argIdx++
	}
	if filter.Category != nil && *filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, *filter.Category)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(item_code ILIKE $%d OR name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.LowStock {
		conditions = append(conditions, "NOT serial_tracked AND min_quantity IS NOT NULL AND quantity_on_hand < min_quantity")
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM items WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT %s FROM items WHERE %s ORDER BY item_code LIMIT $%d OFFSET $%d`,
		itemColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	items, err := r.queryItems(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *inventoryRepositoryImpl) ListLowStock(ctx context.Context) ([]inventory.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + itemColumns + ` FROM items
		WHERE NOT serial_tracked AND status = 'active'
			AND min_quantity IS NOT NULL AND quantity_on_hand < min_quantity
		ORDER BY item_code`

	return r.queryItems(ctx, q, query)
}

func (r *inventoryRepositoryImpl) queryItems(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]inventory.Item, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]inventory.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.loadImages(ctx, q, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem writes catalog metadata only; item_code and stock are untouched.
func (r *inventoryRepositoryImpl) UpdateItem(ctx context.Context, item inventory.Item) (inventory.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE items SET category = $2, name = $3, unit_name = $4, min_quantity = $5, status = $6, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, item.ID, item.Category, item.Name, item.UnitName, item.MinQuantity, item.Status)
	if err != nil {
		return inventory.Item{}, fmt.Errorf("failed to update item %s: %w", item.ItemCode, err)
	}
	if tag.RowsAffected() == 0 {
		return inventory.Item{}, inventory.ErrItemNotFound
	}
	return r.GetItemByID(ctx, item.ID)
}

func (r *inventoryRepositoryImpl) UpdateItemQuantity(ctx context.Context, itemID int64, quantityOnHand int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE items SET quantity_on_hand = $2, updated_at = NOW() WHERE id = $1`, itemID, quantityOnHand)
	if err != nil {
		if database.IsCheckViolation(err, "ck_items_on_hand") {
			return inventory.ErrInsufficientStock
		}
		return fmt.Errorf("failed to update quantity of item %d: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return inventory.ErrItemNotFound
	}
	return nil
}

func (r *inventoryRepositoryImpl) DeleteItem(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return inventory.ErrItemHasDependents
		}
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return inventory.ErrItemNotFound
	}
	return nil
}

func (r *inventoryRepositoryImpl) AddItemImage(ctx context.Context, itemID int64, fileID int64) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `INSERT INTO item_images (item_id, file_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, itemID, fileID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return inventory.ErrItemNotFound
		}
		return fmt.Errorf("failed to attach image to item %d: %w", itemID, err)
	}
	return nil
}

// ========== SERIAL UNITS ==========

const serialUnitColumns = `
	su.id, su.item_id, su.serial_number, su.status, su.issued_to_employee_id, su.created_at, su.updated_at,
	i.item_code, i.name, i.category, e.employee_code`

const serialUnitFrom = `
	FROM serial_units su
	JOIN items i ON i.id = su.item_id
	LEFT JOIN employees e ON e.id = su.issued_to_employee_id`

func scanSerialUnit(row pgx.Row) (inventory.SerialUnit, error) {
	var u inventory.SerialUnit
	err := row.Scan(
		&u.ID, &u.ItemID, &u.SerialNumber, &u.Status, &u.IssuedToEmployeeID, &u.CreatedAt, &u.UpdatedAt,
		&u.ItemCode, &u.ItemName, &u.Category, &u.IssuedToEmployeeCode,
	)
	return u, err
}

func (r *inventoryRepositoryImpl) CreateSerialUnit(ctx context.Context, unit inventory.SerialUnit) (inventory.SerialUnit, error) {
	q := GetQuerier(ctx, r.db)

	var id int64
	err := q.QueryRow(ctx,
		`INSERT INTO serial_units (item_id, serial_number, status) VALUES ($1, $2, $3) RETURNING id`,
		unit.ItemID, unit.SerialNumber, unit.Status,
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err, "uq_serial_units_item_serial") {
			return inventory.SerialUnit{}, inventory.ErrSerialNumberExists
		}
		return inventory.SerialUnit{}, fmt.Errorf("failed to create serial unit: %w", err)
	}
	return r.GetSerialUnitByID(ctx, id)
}

func (r *inventoryRepositoryImpl) GetSerialUnitByID(ctx context.Context, id int64) (inventory.SerialUnit, error) {
	return r.getSerialUnit(ctx, id, "")
}

func (r *inventoryRepositoryImpl) GetSerialUnitForUpdate(ctx context.Context, id int64) (inventory.SerialUnit, error) {
	return r.getSerialUnit(ctx, id, " FOR UPDATE OF su")
}

func (r *inventoryRepositoryImpl) getSerialUnit(ctx context.Context, id int64, lock string) (inventory.SerialUnit, error) {
	q := GetQuerier(ctx, r.db)

	unit, err := scanSerialUnit(q.QueryRow(ctx, `SELECT`+serialUnitColumns+serialUnitFrom+` WHERE su.id = $1`+lock, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return inventory.SerialUnit{}, inventory.ErrSerialUnitNotFound
		}
		return inventory.SerialUnit{}, fmt.Errorf("failed to get serial unit %d: %w", id, err)
	}
	return unit, nil
}

func (r *inventoryRepositoryImpl) ListSerialUnits(ctx context.Context, itemID int64) ([]inventory.SerialUnit, error) {
	q := GetQuerier(ctx, r.db)
	return r.querySerialUnits(ctx, q, `SELECT`+serialUnitColumns+serialUnitFrom+` WHERE su.item_id = $1 ORDER BY su.serial_number`, itemID)
}

func (r *inventoryRepositoryImpl) ListSerialUnitsByEmployee(ctx context.Context, employeeID int64) ([]inventory.SerialUnit, error) {
	q := GetQuerier(ctx, r.db)
	return r.querySerialUnits(ctx, q,
		`SELECT`+serialUnitColumns+serialUnitFrom+` WHERE su.issued_to_employee_id = $1 AND su.status = 'issued' ORDER BY i.item_code, su.serial_number`,
		employeeID)
}

func (r *inventoryRepositoryImpl) querySerialUnits(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]inventory.SerialUnit, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list serial units: %w", err)
	}
	defer rows.Close()

	units := make([]inventory.SerialUnit, 0)
	for rows.Next() {
		u, err := scanSerialUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan serial unit: %w", err)
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return units, nil
}

// UpdateSerialUnit implements inventory.SerialUnitRepository.
func (r *inventoryRepositoryImpl) UpdateSerialUnit(ctx context.Context, unit inventory.SerialUnit) (inventory.SerialUnit, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE serial_units SET status = $2, issued_to_employee_id = $3, updated_at = NOW() WHERE id = $1`,
		unit.ID, unit.Status, unit.IssuedToEmployeeID,
	)
	if err != nil {
		if database.IsCheckViolation(err, "ck_serial_units_issued") {
			return inventory.SerialUnit{}, inventory.ErrInvalidSerialState
		}
		if database.IsForeignKeyViolation(err) {
			return inventory.SerialUnit{}, inventory.ErrEmployeeNotFound
		}
		return inventory.SerialUnit{}, fmt.Errorf("failed to update serial unit %d: %w", unit.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return inventory.SerialUnit{}, inventory.ErrSerialUnitNotFound
	}
	return r.GetSerialUnitByID(ctx, unit.ID)
}

// ========== BALANCES ==========

const balanceColumns = `
	b.employee_id, b.item_id, b.quantity_issued, b.updated_at, i.item_code, i.name, i.category, i.unit_name`

const balanceFrom = ` FROM employee_item_balances b JOIN items i ON i.id = b.item_id`

func scanBalance(row pgx.Row) (inventory.EmployeeItemBalance, error) {
	var b inventory.EmployeeItemBalance
	err := row.Scan(&b.EmployeeID, &b.ItemID, &b.QuantityIssued, &b.UpdatedAt, &b.ItemCode, &b.ItemName, &b.Category, &b.UnitName)
	return b, err
}

func (r *inventoryRepositoryImpl) GetBalance(ctx context.Context, employeeID, itemID int64) (inventory.EmployeeItemBalance, error) {
	q := GetQuerier(ctx, r.db)

	b, err := scanBalance(q.QueryRow(ctx,
		`SELECT`+balanceColumns+balanceFrom+` WHERE b.employee_id = $1 AND b.item_id = $2`,
		employeeID, itemID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return inventory.EmployeeItemBalance{EmployeeID: employeeID, ItemID: itemID}, nil
		}
		return inventory.EmployeeItemBalance{}, fmt.Errorf("failed to get balance: %w", err)
	}
	return b, nil
}

// AdjustBalance implements inventory.BalanceRepository. The non-negative
// check on quantity_issued rejects overdrawn returns.
func (r *inventoryRepositoryImpl) AdjustBalance(ctx context.Context, employeeID, itemID int64, delta int) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_item_balances (employee_id, item_id, quantity_issued)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id, item_id) DO UPDATE SET
			quantity_issued = employee_item_balances.quantity_issued + EXCLUDED.quantity_issued,
			updated_at = NOW()
		RETURNING quantity_issued
	`

	var quantity int
	if err := q.QueryRow(ctx, query, employeeID, itemID, delta).Scan(&quantity); err != nil {
		if database.IsCheckViolation(err, "ck_balances_non_negative") {
			return 0, inventory.ErrInsufficientBalance
		}
		if database.IsForeignKeyViolation(err) {
			return 0, inventory.ErrEmployeeNotFound
		}
		return 0, fmt.Errorf("failed to adjust balance: %w", err)
	}
	return quantity, nil
}

func (r *inventoryRepositoryImpl) ListBalancesByItem(ctx context.Context, itemID int64) ([]inventory.EmployeeItemBalance, error) {
	q := GetQuerier(ctx, r.db)
	return r.queryBalances(ctx, q, `SELECT`+balanceColumns+balanceFrom+` WHERE b.item_id = $1 ORDER BY b.employee_id`, itemID)
}

func (r *inventoryRepositoryImpl) ListBalancesByEmployee(ctx context.Context, employeeID int64) ([]inventory.EmployeeItemBalance, error) {
	q := GetQuerier(ctx, r.db)
	return r.queryBalances(ctx, q,
		`SELECT`+balanceColumns+balanceFrom+` WHERE b.employee_id = $1 AND b.quantity_issued > 0 ORDER BY i.item_code`,
		employeeID)
}

func (r *inventoryRepositoryImpl) queryBalances(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]inventory.EmployeeItemBalance, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	defer rows.Close()

	balances := make([]inventory.EmployeeItemBalance, 0)
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return balances, nil
}

// ========== TRANSACTIONS ==========

const transactionColumns = `
	t.id, t.item_id, t.employee_id, t.serial_unit_id, t.action, t.quantity, t.condition_note, t.notes, t.created_at,
	i.item_code, e.employee_code, su.serial_number`

const transactionFrom = `
	FROM inventory_transactions t
	JOIN items i ON i.id = t.item_id
	LEFT JOIN employees e ON e.id = t.employee_id
	LEFT JOIN serial_units su ON su.id = t.serial_unit_id`

func scanTransaction(row pgx.Row) (inventory.Transaction, error) {
	var t inventory.Transaction
	err := row.Scan(
		&t.ID, &t.ItemID, &t.EmployeeID, &t.SerialUnitID, &t.Action, &t.Quantity, &t.ConditionNote, &t.Notes, &t.CreatedAt,
		&t.ItemCode, &t.EmployeeCode, &t.SerialNumber,
	)
	return t, err
}

func (r *inventoryRepositoryImpl) AppendTransaction(ctx context.Context, txn inventory.Transaction) (inventory.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO inventory_transactions (item_id, employee_id, serial_unit_id, action, quantity, condition_note, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query,
		txn.ItemID, txn.EmployeeID, txn.SerialUnitID, txn.Action, txn.Quantity, txn.ConditionNote, txn.Notes,
	).Scan(&id)
	if err != nil {
		return inventory.Transaction{}, fmt.Errorf("failed to append transaction: %w", err)
	}

	created, err := scanTransaction(q.QueryRow(ctx, `SELECT`+transactionColumns+transactionFrom+` WHERE t.id = $1`, id))
	if err != nil {
		return inventory.Transaction{}, fmt.Errorf("failed to read back transaction %d: %w", id, err)
	}
	return created, nil
}

func (r *inventoryRepositoryImpl) ListTransactions(ctx context.Context, filter inventory.TransactionFilter) ([]inventory.Transaction, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1 = 1"}
	args := []interface{}{}
	argIdx := 1

	if filter.ItemCode != nil && *filter.ItemCode != "" {
		conditions = append(conditions, fmt.Sprintf("i.item_code = $%d", argIdx))
		args = append(args, *filter.ItemCode)
		argIdx++
	}
	if filter.EmployeeCode != nil && *filter.EmployeeCode != "" {
		conditions = append(conditions, fmt.Sprintf("e.employee_code = $%d", argIdx))
		args = append(args, *filter.EmployeeCode)
		argIdx++
	}
	if filter.Action != nil && *filter.Action != "" {
		conditions = append(conditions, fmt.Sprintf("t.action = $%d", argIdx))
		args = append(args, *filter.Action)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+transactionFrom+" WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY t.id DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, transactionFrom, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	txns, err := r.queryTransactions(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

func (r *inventoryRepositoryImpl) ListTransactionsByItem(ctx context.Context, itemID int64) ([]inventory.Transaction, error) {
	q := GetQuerier(ctx, r.db)
	return r.queryTransactions(ctx, q, `SELECT`+transactionColumns+transactionFrom+` WHERE t.item_id = $1 ORDER BY t.id`, itemID)
}

func (r *inventoryRepositoryImpl) queryTransactions(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]inventory.Transaction, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]inventory.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return txns, nil
}

// ========== ASSIGNMENT STATE ==========

func (r *inventoryRepositoryImpl) GetAssignmentState(ctx context.Context) (inventory.AssignmentState, error) {
	q := GetQuerier(ctx, r.db)

	var state inventory.AssignmentState
	err := q.QueryRow(ctx, `SELECT data, updated_at FROM inventory_assignment_state WHERE id = 1`).Scan(&state.Data, &state.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return inventory.AssignmentState{Data: map[string][]inventory.AssignmentEntry{}}, nil
		}
		return inventory.AssignmentState{}, fmt.Errorf("failed to get assignment state: %w", err)
	}
	if state.Data == nil {
		state.Data = map[string][]inventory.AssignmentEntry{}
	}
	return state, nil
}

func (r *inventoryRepositoryImpl) SaveAssignmentState(ctx context.Context, state inventory.AssignmentState) (inventory.AssignmentState, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO inventory_assignment_state (id, data) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
		RETURNING data, updated_at
	`

	var saved inventory.AssignmentState
	if err := q.QueryRow(ctx, query, state.Data).Scan(&saved.Data, &saved.UpdatedAt); err != nil {
		return inventory.AssignmentState{}, fmt.Errorf("failed to save assignment state: %w", err)
	}
	return saved, nil
}
