package servicetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/inventory"
)

type balanceKey struct {
	employeeID, itemID int64
}

// Inventory is an in-memory inventory.InventoryRepository. It mirrors the
// postgres constraints the services rely on: unique codes and serials, the
// non-negative checks and the issued/holder pairing on serial units.
type Inventory struct {
	mu        sync.Mutex
	nextID    int64
	items     map[int64]inventory.Item
	units     map[int64]inventory.SerialUnit
	balances  map[balanceKey]inventory.EmployeeItemBalance
	txns      []inventory.Transaction
	state     inventory.AssignmentState
	employees *Employees

	// FailAppendAfter makes the n-th AppendTransaction from now fail; 0 disables it
	FailAppendAfter int
}

func NewInventory(employees *Employees) *Inventory {
	return &Inventory{
		items:     map[int64]inventory.Item{},
		units:     map[int64]inventory.SerialUnit{},
		balances:  map[balanceKey]inventory.EmployeeItemBalance{},
		state:     inventory.AssignmentState{Data: map[string][]inventory.AssignmentEntry{}},
		employees: employees,
	}
}

func (m *Inventory) Snapshot() func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make(map[int64]inventory.Item, len(m.items))
	for k, v := range m.items {
		items[k] = v
	}
	units := make(map[int64]inventory.SerialUnit, len(m.units))
	for k, v := range m.units {
		units[k] = v
	}
	balances := make(map[balanceKey]inventory.EmployeeItemBalance, len(m.balances))
	for k, v := range m.balances {
		balances[k] = v
	}
	txns := append([]inventory.Transaction(nil), m.txns...)
	state := m.state

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.items, m.units, m.balances, m.txns, m.state = items, units, balances, txns, state
	}
}

// Transactions returns a copy of the ledger in append order.
func (m *Inventory) Transactions() []inventory.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]inventory.Transaction(nil), m.txns...)
}

func (m *Inventory) employeeCode(employeeID *int64) *string {
	if employeeID == nil {
		return nil
	}
	emp, err := m.employees.GetByID(context.Background(), *employeeID)
	if err != nil {
		return nil
	}
	return &emp.EmployeeCode
}

// ========== ITEMS ==========

func (m *Inventory) CreateItem(ctx context.Context, item inventory.Item) (inventory.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.items {
		if existing.ItemCode == item.ItemCode {
			return inventory.Item{}, inventory.ErrItemCodeExists
		}
	}
	if item.SerialTracked && item.Kind != inventory.KindRestricted {
		return inventory.Item{}, inventory.ErrSerialOnlyRestricted
	}
	m.nextID++
	item.ID = m.nextID
	item.Images = []inventory.ItemImage{}
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	m.items[item.ID] = item
	return item, nil
}

func (m *Inventory) GetItemByID(ctx context.Context, id int64) (inventory.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return inventory.Item{}, inventory.ErrItemNotFound
	}
	return item, nil
}

func (m *Inventory) GetItemByCode(ctx context.Context, itemCode string) (inventory.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.ItemCode == itemCode {
			return item, nil
		}
	}
	return inventory.Item{}, inventory.ErrItemNotFound
}

func (m *Inventory) GetItemByCodeForUpdate(ctx context.Context, itemCode string) (inventory.Item, error) {
	return m.GetItemByCode(ctx, itemCode)
}

func (m *Inventory) ListItems(ctx context.Context, filter inventory.ItemFilter) ([]inventory.Item, int64, error) {
	var out []inventory.Item
	for _, item := range m.sortedItems() {
		if filter.Kind != nil && string(item.Kind) != *filter.Kind {
			continue
		}
		if filter.Category != nil && item.Category != *filter.Category {
			continue
		}
		if filter.Status != nil && string(item.Status) != *filter.Status {
			continue
		}
		if filter.Search != nil && !strings.Contains(strings.ToLower(item.ItemCode+" "+item.Name), strings.ToLower(*filter.Search)) {
			continue
		}
		if filter.LowStock && !item.IsLowStock() {
			continue
		}
		out = append(out, item)
	}
	total := int64(len(out))
	start := (filter.Page - 1) * filter.Limit
	if start > len(out) {
		start = len(out)
	}
	end := start + filter.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (m *Inventory) ListLowStock(ctx context.Context) ([]inventory.Item, error) {
	var out []inventory.Item
	for _, item := range m.sortedItems() {
		if item.Status == inventory.ItemStatusActive && item.IsLowStock() {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *Inventory) sortedItems() []inventory.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]inventory.Item, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemCode < out[j].ItemCode })
	return out
}

func (m *Inventory) UpdateItem(ctx context.Context, item inventory.Item) (inventory.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[item.ID]
	if !ok {
		return inventory.Item{}, inventory.ErrItemNotFound
	}
	existing.Category = item.Category
	existing.Name = item.Name
	existing.UnitName = item.UnitName
	existing.MinQuantity = item.MinQuantity
	existing.Status = item.Status
	existing.UpdatedAt = time.Now()
	m.items[item.ID] = existing
	return existing, nil
}

func (m *Inventory) UpdateItemQuantity(ctx context.Context, itemID int64, quantityOnHand int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[itemID]
	if !ok {
		return inventory.ErrItemNotFound
	}
	if quantityOnHand < 0 {
		return inventory.ErrInsufficientStock
	}
	item.QuantityOnHand = quantityOnHand
	item.UpdatedAt = time.Now()
	m.items[itemID] = item
	return nil
}

func (m *Inventory) DeleteItem(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return inventory.ErrItemNotFound
	}
	for _, t := range m.txns {
		if t.ItemID == id {
			return inventory.ErrItemHasDependents
		}
	}
	for _, u := range m.units {
		if u.ItemID == id {
			return inventory.ErrItemHasDependents
		}
	}
	for k := range m.balances {
		if k.itemID == id {
			return inventory.ErrItemHasDependents
		}
	}
	delete(m.items, id)
	return nil
}

func (m *Inventory) AddItemImage(ctx context.Context, itemID int64, fileID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[itemID]
	if !ok {
		return inventory.ErrItemNotFound
	}
	for _, img := range item.Images {
		if img.FileID == fileID {
			return nil
		}
	}
	item.Images = append(append([]inventory.ItemImage(nil), item.Images...), inventory.ItemImage{FileID: fileID, CreatedAt: time.Now()})
	m.items[itemID] = item
	return nil
}

// ========== SERIAL UNITS ==========

func (m *Inventory) CreateSerialUnit(ctx context.Context, unit inventory.SerialUnit) (inventory.SerialUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[unit.ItemID]
	if !ok {
		return inventory.SerialUnit{}, inventory.ErrItemNotFound
	}
	for _, u := range m.units {
		if u.ItemID == unit.ItemID && u.SerialNumber == unit.SerialNumber {
			return inventory.SerialUnit{}, inventory.ErrSerialNumberExists
		}
	}
	m.nextID++
	unit.ID = m.nextID
	unit.ItemCode, unit.ItemName, unit.Category = item.ItemCode, item.Name, item.Category
	unit.CreatedAt = time.Now()
	unit.UpdatedAt = unit.CreatedAt
	m.units[unit.ID] = unit
	return unit, nil
}

func (m *Inventory) GetSerialUnitByID(ctx context.Context, id int64) (inventory.SerialUnit, error) {
	m.mu.Lock()
	unit, ok := m.units[id]
	m.mu.Unlock()
	if !ok {
		return inventory.SerialUnit{}, inventory.ErrSerialUnitNotFound
	}
	unit.IssuedToEmployeeCode = m.employeeCode(unit.IssuedToEmployeeID)
	return unit, nil
}

func (m *Inventory) GetSerialUnitForUpdate(ctx context.Context, id int64) (inventory.SerialUnit, error) {
	return m.GetSerialUnitByID(ctx, id)
}

func (m *Inventory) ListSerialUnits(ctx context.Context, itemID int64) ([]inventory.SerialUnit, error) {
	return m.filterUnits(func(u inventory.SerialUnit) bool { return u.ItemID == itemID }), nil
}

func (m *Inventory) ListSerialUnitsByEmployee(ctx context.Context, employeeID int64) ([]inventory.SerialUnit, error) {
	return m.filterUnits(func(u inventory.SerialUnit) bool {
		return u.Status == inventory.SerialIssued && u.IssuedToEmployeeID != nil && *u.IssuedToEmployeeID == employeeID
	}), nil
}

func (m *Inventory) filterUnits(keep func(inventory.SerialUnit) bool) []inventory.SerialUnit {
	m.mu.Lock()
	out := make([]inventory.SerialUnit, 0)
	for _, u := range m.units {
		if keep(u) {
			out = append(out, u)
		}
	}
	m.mu.Unlock()

	for i := range out {
		out[i].IssuedToEmployeeCode = m.employeeCode(out[i].IssuedToEmployeeID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SerialNumber < out[j].SerialNumber })
	return out
}

func (m *Inventory) UpdateSerialUnit(ctx context.Context, unit inventory.SerialUnit) (inventory.SerialUnit, error) {
	if (unit.Status == inventory.SerialIssued) != (unit.IssuedToEmployeeID != nil) {
		return inventory.SerialUnit{}, inventory.ErrInvalidSerialState
	}

	m.mu.Lock()
	existing, ok := m.units[unit.ID]
	if !ok {
		m.mu.Unlock()
		return inventory.SerialUnit{}, inventory.ErrSerialUnitNotFound
	}
	existing.Status = unit.Status
	existing.IssuedToEmployeeID = unit.IssuedToEmployeeID
	existing.UpdatedAt = time.Now()
	m.units[unit.ID] = existing
	m.mu.Unlock()

	return m.GetSerialUnitByID(ctx, unit.ID)
}

// ========== BALANCES ==========

func (m *Inventory) GetBalance(ctx context.Context, employeeID, itemID int64) (inventory.EmployeeItemBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.balances[balanceKey{employeeID, itemID}]
	if !ok {
		return inventory.EmployeeItemBalance{EmployeeID: employeeID, ItemID: itemID}, nil
	}
	return b, nil
}

func (m *Inventory) AdjustBalance(ctx context.Context, employeeID, itemID int64, delta int) (int, error) {
	if _, err := m.employees.GetByID(ctx, employeeID); err != nil {
		return 0, inventory.ErrEmployeeNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[itemID]
	if !ok {
		return 0, inventory.ErrItemNotFound
	}
	key := balanceKey{employeeID, itemID}
	b, ok := m.balances[key]
	if !ok {
		b = inventory.EmployeeItemBalance{
			EmployeeID: employeeID,
			ItemID:     itemID,
			ItemCode:   item.ItemCode,
			ItemName:   item.Name,
			Category:   item.Category,
			UnitName:   item.UnitName,
		}
	}
	if b.QuantityIssued+delta < 0 {
		return 0, inventory.ErrInsufficientBalance
	}
	b.QuantityIssued += delta
	b.UpdatedAt = time.Now()
	m.balances[key] = b
	return b.QuantityIssued, nil
}

func (m *Inventory) ListBalancesByItem(ctx context.Context, itemID int64) ([]inventory.EmployeeItemBalance, error) {
	return m.filterBalances(func(k balanceKey, b inventory.EmployeeItemBalance) bool { return k.itemID == itemID }), nil
}

func (m *Inventory) ListBalancesByEmployee(ctx context.Context, employeeID int64) ([]inventory.EmployeeItemBalance, error) {
	return m.filterBalances(func(k balanceKey, b inventory.EmployeeItemBalance) bool {
		return k.employeeID == employeeID && b.QuantityIssued > 0
	}), nil
}

func (m *Inventory) filterBalances(keep func(balanceKey, inventory.EmployeeItemBalance) bool) []inventory.EmployeeItemBalance {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]inventory.EmployeeItemBalance, 0)
	for k, b := range m.balances {
		if keep(k, b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemCode < out[j].ItemCode })
	return out
}

// ========== TRANSACTIONS ==========

func (m *Inventory) AppendTransaction(ctx context.Context, txn inventory.Transaction) (inventory.Transaction, error) {
	employeeCode := m.employeeCode(txn.EmployeeID)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAppendAfter > 0 {
		m.FailAppendAfter--
		if m.FailAppendAfter == 0 {
			return inventory.Transaction{}, errTransactionLog
		}
	}
	item, ok := m.items[txn.ItemID]
	if !ok {
		return inventory.Transaction{}, inventory.ErrItemNotFound
	}
	m.nextID++
	txn.ID = m.nextID
	txn.ItemCode = item.ItemCode
	txn.EmployeeCode = employeeCode
	if txn.SerialUnitID != nil {
		if u, ok := m.units[*txn.SerialUnitID]; ok {
			serial := u.SerialNumber
			txn.SerialNumber = &serial
		}
	}
	txn.CreatedAt = time.Now()
	m.txns = append(m.txns, txn)
	return txn, nil
}

func (m *Inventory) ListTransactions(ctx context.Context, filter inventory.TransactionFilter) ([]inventory.Transaction, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []inventory.Transaction
	for i := len(m.txns) - 1; i >= 0; i-- {
		t := m.txns[i]
		if filter.ItemCode != nil && t.ItemCode != *filter.ItemCode {
			continue
		}
		if filter.EmployeeCode != nil && (t.EmployeeCode == nil || *t.EmployeeCode != *filter.EmployeeCode) {
			continue
		}
		if filter.Action != nil && string(t.Action) != *filter.Action {
			continue
		}
		out = append(out, t)
	}
	total := int64(len(out))
	start := (filter.Page - 1) * filter.Limit
	if start > len(out) {
		start = len(out)
	}
	end := start + filter.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (m *Inventory) ListTransactionsByItem(ctx context.Context, itemID int64) ([]inventory.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []inventory.Transaction
	for _, t := range m.txns {
		if t.ItemID == itemID {
			out = append(out, t)
		}
	}
	return out, nil
}

// ========== ASSIGNMENT STATE ==========

func (m *Inventory) GetAssignmentState(ctx context.Context) (inventory.AssignmentState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, nil
}

func (m *Inventory) SaveAssignmentState(ctx context.Context, state inventory.AssignmentState) (inventory.AssignmentState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	state.UpdatedAt = &now
	m.state = state
	return state, nil
}
