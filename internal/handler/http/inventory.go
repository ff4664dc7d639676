package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/file"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/inventory"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type InventoryHandler interface {
	CreateItem(w http.ResponseWriter, r *http.Request)
	GetItem(w http.ResponseWriter, r *http.Request)
	ListItems(w http.ResponseWriter, r *http.Request)
	UpdateItem(w http.ResponseWriter, r *http.Request)
	DeleteItem(w http.ResponseWriter, r *http.Request)
	ListLowStock(w http.ResponseWriter, r *http.Request)
	UploadItemImage(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)

	IssueQuantity(w http.ResponseWriter, r *http.Request)
	ReturnQuantity(w http.ResponseWriter, r *http.Request)
	Adjust(w http.ResponseWriter, r *http.Request)

	CreateSerialUnit(w http.ResponseWriter, r *http.Request)
	GetSerialUnit(w http.ResponseWriter, r *http.Request)
	ListSerialUnits(w http.ResponseWriter, r *http.Request)
	IssueSerial(w http.ResponseWriter, r *http.Request)
	ReturnSerial(w http.ResponseWriter, r *http.Request)
	CompleteService(w http.ResponseWriter, r *http.Request)

	ListTransactions(w http.ResponseWriter, r *http.Request)
	GetAssignmentState(w http.ResponseWriter, r *http.Request)
	SaveAssignmentState(w http.ResponseWriter, r *http.Request)
}

type inventoryHandlerImpl struct {
	inventoryService inventory.InventoryService
}

func NewInventoryHandler(inventoryService inventory.InventoryService) InventoryHandler {
	return &inventoryHandlerImpl{
		inventoryService: inventoryService,
	}
}

// ========== CATALOG ==========

// CreateItem implements InventoryHandler.
func (h *inventoryHandlerImpl) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req inventory.CreateItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.inventoryService.CreateItem(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Item created successfully", result)
}

// GetItem implements InventoryHandler.
func (h *inventoryHandlerImpl) GetItem(w http.ResponseWriter, r *http.Request) {
	result, err := h.inventoryService.GetItem(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListItems implements InventoryHandler.
func (h *inventoryHandlerImpl) ListItems(w http.ResponseWriter, r *http.Request) {
	filter := inventory.ItemFilter{
		Kind:     optionalQuery(r, "kind"),
		Category: optionalQuery(r, "category"),
		Status:   optionalQuery(r, "status"),
		Search:   optionalQuery(r, "search"),
		LowStock: r.URL.Query().Get("low_stock") == "true",
	}
	filter.Page, filter.Limit = pageQuery(r)

	result, err := h.inventoryService.ListItems(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Items, meta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// UpdateItem implements InventoryHandler.
func (h *inventoryHandlerImpl) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req inventory.UpdateItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ItemCode = chi.URLParam(r, "code")

	result, err := h.inventoryService.UpdateItem(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Item updated successfully", result)
}

// DeleteItem implements InventoryHandler.
func (h *inventoryHandlerImpl) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.inventoryService.DeleteItem(r.Context(), chi.URLParam(r, "code")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Item deleted successfully", nil)
}

// ListLowStock implements InventoryHandler.
func (h *inventoryHandlerImpl) ListLowStock(w http.ResponseWriter, r *http.Request) {
	result, err := h.inventoryService.ListLowStock(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UploadItemImage implements InventoryHandler. Expects multipart field "image".
func (h *inventoryHandlerImpl) UploadItemImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, file.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(file.MaxUploadSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	image, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "Field 'image' is required", nil)
		return
	}
	defer image.Close()

	result, err := h.inventoryService.AttachItemImage(r.Context(), chi.URLParam(r, "code"), file.Upload{
		Reader:      image,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Image attached successfully", result)
}

// Reconcile implements InventoryHandler.
func (h *inventoryHandlerImpl) Reconcile(w http.ResponseWriter, r *http.Request) {
	result, err := h.inventoryService.Reconcile(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== QUANTITY LEDGER ==========

// IssueQuantity implements InventoryHandler.
func (h *inventoryHandlerImpl) IssueQuantity(w http.ResponseWriter, r *http.Request) {
	var req inventory.IssueQuantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.inventoryService.IssueQuantity(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Items issued", result)
}

// ReturnQuantity implements InventoryHandler.
func (h *inventoryHandlerImpl) ReturnQuantity(w http.ResponseWriter, r *http.Request) {
	var req inventory.ReturnQuantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.inventoryService.ReturnQuantity(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Items returned", result)
}

// Adjust implements InventoryHandler.
func (h *inventoryHandlerImpl) Adjust(w http.ResponseWriter, r *http.Request) {
	var req inventory.AdjustRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.inventoryService.Adjust(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Stock adjusted", result)
}

// ========== SERIAL UNITS ==========

// CreateSerialUnit implements InventoryHandler.
func (h *inventoryHandlerImpl) CreateSerialUnit(w http.ResponseWriter, r *http.Request) {
	var req inventory.CreateSerialUnitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ItemCode = chi.URLParam(r, "code")

	result, err := h.inventoryService.CreateSerialUnit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Serial unit registered", result)
}

// GetSerialUnit implements InventoryHandler.
func (h *inventoryHandlerImpl) GetSerialUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.inventoryService.GetSerialUnit(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListSerialUnits implements InventoryHandler.
func (h *inventoryHandlerImpl) ListSerialUnits(w http.ResponseWriter, r *http.Request) {
	result, err := h.inventoryService.ListSerialUnits(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// IssueSerial implements InventoryHandler.
func (h *inventoryHandlerImpl) IssueSerial(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req inventory.IssueSerialRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.SerialUnitID = id

	result, err := h.inventoryService.IssueSerial(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Serial unit issued", result)
}

// ReturnSerial implements InventoryHandler.
func (h *inventoryHandlerImpl) ReturnSerial(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req inventory.ReturnSerialRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.SerialUnitID = id

	result, err := h.inventoryService.ReturnSerial(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Serial unit returned", result)
}

// CompleteService implements InventoryHandler. The body is optional.
func (h *inventoryHandlerImpl) CompleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req inventory.CompleteServiceRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}
	req.SerialUnitID = id

	result, err := h.inventoryService.CompleteService(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Serial unit back in stock", result)
}

// ========== VIEWS ==========

// ListTransactions implements InventoryHandler.
func (h *inventoryHandlerImpl) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filter := inventory.TransactionFilter{
		ItemCode:     optionalQuery(r, "item_code"),
		EmployeeCode: optionalQuery(r, "employee_code"),
		Action:       optionalQuery(r, "action"),
	}
	filter.Page, filter.Limit = pageQuery(r)

	result, err := h.inventoryService.ListTransactions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Transactions, meta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// GetAssignmentState implements InventoryHandler.
func (h *inventoryHandlerImpl) GetAssignmentState(w http.ResponseWriter, r *http.Request) {
	result, err := h.inventoryService.GetAssignmentState(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SaveAssignmentState implements InventoryHandler.
func (h *inventoryHandlerImpl) SaveAssignmentState(w http.ResponseWriter, r *http.Request) {
	var req inventory.SaveAssignmentStateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.inventoryService.SaveAssignmentState(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Assignment state saved", result)
}
