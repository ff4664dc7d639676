package inventory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/file"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/inventory"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFiles struct {
	nextID  int64
	deleted []int64
	folders []string
	err     error
}

func (s *stubFiles) Upload(ctx context.Context, upload file.Upload) (file.FileResponse, error) {
	return s.UploadImage(ctx, upload)
}

func (s *stubFiles) UploadImage(ctx context.Context, upload file.Upload) (file.FileResponse, error) {
	if s.err != nil {
		return file.FileResponse{}, s.err
	}
	if _, err := io.ReadAll(upload.Reader); err != nil {
		return file.FileResponse{}, err
	}
	s.nextID++
	s.folders = append(s.folders, upload.Folder)
	return file.FileResponse{ID: s.nextID, Filename: upload.Filename, MimeType: "image/jpeg"}, nil
}

func (s *stubFiles) GetFile(ctx context.Context, id int64) (file.FileResponse, error) {
	return file.FileResponse{ID: id}, nil
}

func (s *stubFiles) ListFiles(ctx context.Context, filter file.FileFilter) (file.ListFileResponse, error) {
	return file.ListFileResponse{}, nil
}

func (s *stubFiles) DeleteFile(ctx context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type fixture struct {
	svc   inventory.InventoryService
	repo  *servicetest.Inventory
	tx    *servicetest.Transactor
	files *stubFiles
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	employees := servicetest.NewEmployees(
		employee.Employee{EmployeeCode: "EMP-001", FullName: "Rahim Uddin"},
		employee.Employee{EmployeeCode: "EMP-002", FullName: "Karim Ali"},
	)
	repo := servicetest.NewInventory(employees)
	tx := servicetest.NewTransactor(repo)
	files := &stubFiles{}
	return fixture{
		svc:   NewInventoryService(tx, repo, employees, files),
		repo:  repo,
		tx:    tx,
		files: files,
	}
}

func strPtr(s string) *string { return &s }

func (f fixture) createItem(t *testing.T, code string, opening int) inventory.ItemResponse {
	t.Helper()
	item, err := f.svc.CreateItem(context.Background(), inventory.CreateItemRequest{
		ItemCode:        code,
		Kind:            string(inventory.KindGeneral),
		Category:        "Uniform",
		Name:            "Shirt",
		UnitName:        "pcs",
		OpeningQuantity: opening,
	})
	require.NoError(t, err)
	return item
}

func (f fixture) createRifle(t *testing.T, serials ...string) []inventory.SerialUnitResponse {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.CreateItem(ctx, inventory.CreateItemRequest{
		ItemCode:      "GUN-01",
		Kind:          string(inventory.KindRestricted),
		SerialTracked: true,
		Category:      "Weapon",
		Name:          "Shotgun",
		UnitName:      "unit",
	})
	require.NoError(t, err)

	units := make([]inventory.SerialUnitResponse, 0, len(serials))
	for _, serial := range serials {
		u, err := f.svc.CreateSerialUnit(ctx, inventory.CreateSerialUnitRequest{ItemCode: "GUN-01", SerialNumber: serial})
		require.NoError(t, err)
		units = append(units, u)
	}
	return units
}

func issue(qty int) inventory.QuantityAction { return inventory.QuantityAction{Quantity: qty} }

func TestInventoryService_CreateItemLogsOpeningStock(t *testing.T) {
	f := newFixture(t)
	item := f.createItem(t, "UNI-01", 10)
	assert.Equal(t, 10, item.QuantityOnHand)
	assert.Equal(t, "active", item.Status)

	txns := f.repo.Transactions()
	require.Len(t, txns, 1)
	assert.Equal(t, inventory.ActionAdjust, txns[0].Action)
	assert.Equal(t, 10, *txns[0].Quantity)
	assert.Equal(t, "opening stock", *txns[0].Notes)

	f.createItem(t, "UNI-02", 0)
	assert.Len(t, f.repo.Transactions(), 1, "an empty item has nothing to log")
}

func TestInventoryService_CreateItemValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateItem(context.Background(), inventory.CreateItemRequest{
		ItemCode:      "BAD-01",
		Kind:          string(inventory.KindGeneral),
		SerialTracked: true,
		Category:      "Uniform",
		Name:          "Belt",
		UnitName:      "pcs",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "serial_tracked")

	f.createItem(t, "UNI-01", 1)
	_, err = f.svc.CreateItem(context.Background(), inventory.CreateItemRequest{
		ItemCode: "UNI-01", Kind: "general", Category: "Uniform", Name: "Cap", UnitName: "pcs",
	})
	assert.ErrorIs(t, err, inventory.ErrItemCodeExists)
}

func TestInventoryService_QuantityIssueAndReturn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createItem(t, "UNI-01", 10)

	issued, err := f.svc.IssueQuantity(ctx, inventory.IssueQuantityRequest{
		EmployeeCode: "EMP-001", ItemCode: "UNI-01", QuantityAction: issue(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 6, issued.QuantityOnHand)
	assert.Equal(t, 4, *issued.Balance)
	assert.Equal(t, "ISSUE", issued.Transaction.Action)
	assert.Equal(t, "EMP-001", *issued.Transaction.EmployeeCode)

	returned, err := f.svc.ReturnQuantity(ctx, inventory.ReturnQuantityRequest{
		EmployeeCode: "EMP-001", ItemCode: "UNI-01", Condition: "good", QuantityAction: issue(3),
	})
	require.NoError(t, err)
	assert.Equal(t, 9, returned.QuantityOnHand)
	assert.Equal(t, 1, *returned.Balance)
	assert.Equal(t, "RETURN", returned.Transaction.Action)

	_, err = f.svc.ReturnQuantity(ctx, inventory.ReturnQuantityRequest{
		EmployeeCode: "EMP-001", ItemCode: "UNI-01", Condition: "good", QuantityAction: issue(2),
	})
	assert.ErrorIs(t, err, inventory.ErrInsufficientBalance)

	item, err := f.svc.GetItem(ctx, "UNI-01")
	require.NoError(t, err)
	assert.Equal(t, 9, item.QuantityOnHand)
	held, err := f.svc.EmployeeIssuedInventory(ctx, "EMP-001")
	require.NoError(t, err)
	require.Len(t, held.QuantityItems, 1)
	assert.Equal(t, 1, held.QuantityItems[0].QuantityIssued)
	assert.Len(t, f.repo.Transactions(), 3)
}

func TestInventoryService_IssueMoreThanOnHand(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createItem(t, "UNI-01", 2)

	_, err := f.svc.IssueQuantity(ctx, inventory.IssueQuantityRequest{
		EmployeeCode: "EMP-001", ItemCode: "UNI-01", QuantityAction: issue(3),
	})
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)

	_, err = f.svc.IssueQuantity(ctx, inventory.IssueQuantityRequest{
		EmployeeCode: "EMP-404", ItemCode: "UNI-01", QuantityAction: issue(1),
	})
	assert.ErrorIs(t, err, inventory.ErrEmployeeNotFound)

	_, err = f.svc.IssueQuantity(ctx, inventory.IssueQuantityRequest{
		EmployeeCode: "EMP-001", ItemCode: "UNI-01", QuantityAction: issue(0),
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "quantity")
}

func TestInventoryService_DamagedReturnWritesOff(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createItem(t, "UNI-01", 5)

	_, err := f.svc.IssueQuantity(ctx, inventory.IssueQuantityRequest{
		EmployeeCode: "EMP-002", ItemCode: "UNI-01", QuantityAction: issue(3),
	})
	require.NoError(t, err)

	resp, err := f.svc.ReturnQuantity(ctx, inventory.ReturnQuantityRequest{
		EmployeeCode: "EMP-002", ItemCode: "UNI-01", Condition: "damaged",
		ConditionNote: strPtr("torn sleeve"), QuantityAction: issue(2),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.QuantityOnHand)
	assert.Equal(t, 1, *resp.Balance)
	assert.Equal(t, "DAMAGED", resp.Transaction.Action)
	assert.Equal(t, "torn sleeve", *resp.Transaction.ConditionNote)

	report, err := f.svc.Reconcile(ctx, "UNI-01")
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.Equal(t, 3, report.Actual)
	assert.Equal(t, 3, report.Derived)
}

func TestInventoryService_FailedIssueRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createItem(t, "UNI-01", 10)

	f.repo.FailAppendAfter = 1
	_, err := f.svc.IssueQuantity(ctx, inventory.IssueQuantityRequest{
		EmployeeCode: "EMP-001", ItemCode: "UNI-01", QuantityAction: issue(4),
	})
	require.Error(t, err)
	assert.Equal(t, 1, f.tx.Rollbacks)

	item, err := f.svc.GetItem(ctx, "UNI-01")
	require.NoError(t, err)
	assert.Equal(t, 10, item.QuantityOnHand)
	held, err := f.svc.EmployeeIssuedInventory(ctx, "EMP-001")
	require.NoError(t, err)
	assert.Empty(t, held.QuantityItems)

	report, err := f.svc.Reconcile(ctx, "UNI-01")
	require.NoError(t, err)
	assert.True(t, report.Consistent)
}

func TestInventoryService_Adjust(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createItem(t, "UNI-01", 3)

	resp, err := f.svc.Adjust(ctx, inventory.AdjustRequest{ItemCode: "UNI-01", Delta: -2, Notes: strPtr("stocktake")})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.QuantityOnHand)
	assert.Equal(t, -2, *resp.Transaction.Quantity)

	_, err = f.svc.Adjust(ctx, inventory.AdjustRequest{ItemCode: "UNI-01", Delta: -5})
	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)

	report, err := f.svc.Reconcile(ctx, "UNI-01")
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.Equal(t, 1, report.Derived)
}

func TestInventoryService_QuantityOpsRejectSerialItems(t *testing.T) {
	f := newFixture(t)
	f.createRifle(t, "SN-1")

	_, err := f.svc.IssueQuantity(context.Background(), inventory.IssueQuantityRequest{
		EmployeeCode: "EMP-001", ItemCode: "GUN-01", QuantityAction: issue(1),
	})
	assert.ErrorIs(t, err, inventory.ErrNotQuantityTracked)

	_, err = f.svc.CreateSerialUnit(context.Background(), inventory.CreateSerialUnitRequest{ItemCode: "GUN-01", SerialNumber: "SN-1"})
	assert.ErrorIs(t, err, inventory.ErrSerialNumberExists)

	f.createItem(t, "UNI-01", 1)
	_, err = f.svc.CreateSerialUnit(context.Background(), inventory.CreateSerialUnitRequest{ItemCode: "UNI-01", SerialNumber: "X"})
	assert.ErrorIs(t, err, inventory.ErrNotSerialTracked)
}

func TestInventoryService_SerialLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	units := f.createRifle(t, "SN-1", "SN-2")
	unit := units[0]
	assert.Equal(t, "in_stock", unit.Status)

	issued, err := f.svc.IssueSerial(ctx, inventory.IssueSerialRequest{SerialUnitID: unit.ID, EmployeeCode: "EMP-001"})
	require.NoError(t, err)
	assert.Equal(t, "issued", issued.Unit.Status)
	assert.Equal(t, "EMP-001", *issued.Unit.IssuedToEmployeeCode)
	assert.Equal(t, "ISSUE", issued.Transaction.Action)
	assert.Equal(t, "SN-1", *issued.Transaction.SerialNumber)

	_, err = f.svc.IssueSerial(ctx, inventory.IssueSerialRequest{SerialUnitID: unit.ID, EmployeeCode: "EMP-002"})
	assert.ErrorIs(t, err, inventory.ErrInvalidSerialState)

	held, err := f.svc.EmployeeIssuedInventory(ctx, "EMP-001")
	require.NoError(t, err)
	require.Len(t, held.SerialItems, 1)
	assert.Equal(t, "SN-1", held.SerialItems[0].SerialNumber)

	lost, err := f.svc.ReturnSerial(ctx, inventory.ReturnSerialRequest{SerialUnitID: unit.ID, Target: "lost"})
	require.NoError(t, err)
	assert.Equal(t, "lost", lost.Unit.Status)
	assert.Nil(t, lost.Unit.IssuedToEmployeeCode)
	assert.Equal(t, "LOST", lost.Transaction.Action)
	assert.Equal(t, "EMP-001", *lost.Transaction.EmployeeCode, "the loss is charged to the last holder")

	_, err = f.svc.ReturnSerial(ctx, inventory.ReturnSerialRequest{SerialUnitID: unit.ID, Target: "in_stock"})
	assert.ErrorIs(t, err, inventory.ErrInvalidSerialState)

	report, err := f.svc.Reconcile(ctx, "GUN-01")
	require.NoError(t, err)
	assert.True(t, report.SerialTracked)
	assert.True(t, report.Consistent)
	assert.Equal(t, 1, report.Actual)
	assert.Equal(t, 1, report.Derived)
}

func TestInventoryService_SerialMaintenanceRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	unit := f.createRifle(t, "SN-9")[0]

	_, err := f.svc.CompleteService(ctx, inventory.CompleteServiceRequest{SerialUnitID: unit.ID})
	assert.ErrorIs(t, err, inventory.ErrInvalidSerialState)

	_, err = f.svc.IssueSerial(ctx, inventory.IssueSerialRequest{SerialUnitID: unit.ID, EmployeeCode: "EMP-002"})
	require.NoError(t, err)
	sent, err := f.svc.ReturnSerial(ctx, inventory.ReturnSerialRequest{SerialUnitID: unit.ID, Target: "maintenance"})
	require.NoError(t, err)
	assert.Equal(t, "MAINTENANCE", sent.Transaction.Action)

	done, err := f.svc.CompleteService(ctx, inventory.CompleteServiceRequest{SerialUnitID: unit.ID})
	require.NoError(t, err)
	assert.Equal(t, "in_stock", done.Unit.Status)
	assert.Equal(t, "RETURN", done.Transaction.Action)
	assert.Nil(t, done.Transaction.EmployeeCode)

	report, err := f.svc.Reconcile(ctx, "GUN-01")
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.Equal(t, 1, report.OnHand)
}

func TestInventoryService_DeleteItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createItem(t, "UNI-01", 0)
	f.createItem(t, "UNI-02", 4)

	require.NoError(t, f.svc.DeleteItem(ctx, "UNI-01"))
	_, err := f.svc.GetItem(ctx, "UNI-01")
	assert.ErrorIs(t, err, inventory.ErrItemNotFound)

	assert.ErrorIs(t, f.svc.DeleteItem(ctx, "UNI-02"), inventory.ErrItemHasDependents)

	inactive := "inactive"
	updated, err := f.svc.UpdateItem(ctx, inventory.UpdateItemRequest{ItemCode: "UNI-02", Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "inactive", updated.Status)
	assert.Equal(t, 4, updated.QuantityOnHand)
}

func TestInventoryService_LowStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createItem(t, "UNI-01", 2)
	f.createItem(t, "UNI-02", 9)

	minQty := 5
	for _, code := range []string{"UNI-01", "UNI-02"} {
		_, err := f.svc.UpdateItem(ctx, inventory.UpdateItemRequest{ItemCode: code, MinQuantity: &minQty})
		require.NoError(t, err)
	}

	low, err := f.svc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "UNI-01", low[0].ItemCode)
	assert.True(t, low[0].LowStock)

	list, err := f.svc.ListItems(ctx, inventory.ItemFilter{LowStock: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.TotalCount)
}

func TestInventoryService_ListTransactionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createItem(t, "UNI-01", 10)
	_, err := f.svc.IssueQuantity(ctx, inventory.IssueQuantityRequest{
		EmployeeCode: "EMP-001", ItemCode: "UNI-01", QuantityAction: issue(1),
	})
	require.NoError(t, err)

	list, err := f.svc.ListTransactions(ctx, inventory.TransactionFilter{ItemCode: strPtr("UNI-01")})
	require.NoError(t, err)
	require.Len(t, list.Transactions, 2)
	assert.Equal(t, "ISSUE", list.Transactions[0].Action)
	assert.Equal(t, "ADJUST", list.Transactions[1].Action)

	bad := "BORROW"
	_, err = f.svc.ListTransactions(ctx, inventory.TransactionFilter{Action: &bad})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestInventoryService_AttachItemImage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createItem(t, "UNI-01", 1)

	item, err := f.svc.AttachItemImage(ctx, "UNI-01", file.Upload{
		Reader: strings.NewReader("jpeg bytes"), Filename: "shirt.jpg", ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	require.Len(t, item.Images, 1)
	assert.Equal(t, []string{"items/UNI-01"}, f.files.folders)

	f.files.err = file.ErrInvalidFileType
	_, err = f.svc.AttachItemImage(ctx, "UNI-01", file.Upload{Reader: strings.NewReader("x"), Filename: "a.gif"})
	assert.ErrorIs(t, err, file.ErrInvalidFileType)

	_, err = f.svc.AttachItemImage(ctx, "UNI-404", file.Upload{Reader: strings.NewReader("x")})
	assert.True(t, errors.Is(err, inventory.ErrItemNotFound))
}

func TestInventoryService_AssignmentState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.SaveAssignmentState(ctx, inventory.SaveAssignmentStateRequest{
		Data: map[string][]inventory.AssignmentEntry{"EMP-001": {{ItemID: "3", Quantity: -1}}},
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	saved, err := f.svc.SaveAssignmentState(ctx, inventory.SaveAssignmentStateRequest{
		Data: map[string][]inventory.AssignmentEntry{"EMP-001": {{ItemID: "3", Quantity: 2}}},
	})
	require.NoError(t, err)
	assert.NotNil(t, saved.UpdatedAt)

	got, err := f.svc.GetAssignmentState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Data["EMP-001"][0].Quantity)
}
