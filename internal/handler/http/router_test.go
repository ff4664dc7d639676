package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/sse"
	employeeService "github.com/cmlabs-hris/guardforce-backend-go/internal/service/employee"
	inventoryService "github.com/cmlabs-hris/guardforce-backend-go/internal/service/inventory"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	server   *httptest.Server
	jwt      jwt.Service
	repo     *servicetest.Inventory
	hub      *sse.Hub
	operator string
	admin    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	employees := servicetest.NewEmployees(
		employee.Employee{EmployeeCode: "EMP-001", FullName: "Rahim Uddin"},
	)
	repo := servicetest.NewInventory(employees)
	tx := servicetest.NewTransactor(repo)
	invSvc := inventoryService.NewInventoryService(tx, repo, employees, nil)

	hub := sse.NewHub()
	jwtService := jwt.NewJWTService("router-test-secret", "15m")
	router := NewRouter(RouterConfig{AllowedOrigins: []string{"*"}}, jwtService, Handlers{
		Employee:   NewEmployeeHandler(employeeService.NewEmployeeService(employees), invSvc),
		Inventory:  NewInventoryHandler(invSvc),
		Attendance: NewAttendanceHandler(nil, 14),
		Advance:    NewAdvanceHandler(nil),
		Payroll:    NewPayrollHandler(nil),
		File:       NewFileHandler(nil),
		Events:     NewEventHandler(hub),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	operator, _, err := jwtService.GenerateAccessToken("desk-1", jwt.RoleOperator)
	require.NoError(t, err)
	admin, _, err := jwtService.GenerateAccessToken("office", jwt.RoleAdmin)
	require.NoError(t, err)

	return &testServer{server: srv, jwt: jwtService, repo: repo, hub: hub, operator: operator, admin: admin}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, response.Response) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out response.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodGet, "/api/v1/inventory/items", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, body.Success)

	status, _ = s.do(t, http.MethodGet, "/api/v1/inventory/items", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRouter_AdminOnlyRoutes(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/v1/inventory/items", s.operator, map[string]interface{}{
		"item_code": "SHOE-01", "kind": "general", "category": "Uniform",
		"name": "Boots", "unit_name": "pair", "opening_quantity": 4,
	})
	require.Equal(t, http.StatusCreated, status, "%+v", body.Error)

	adjust := map[string]interface{}{"item_code": "SHOE-01", "delta": 2}
	status, body = s.do(t, http.MethodPost, "/api/v1/inventory/adjust", s.operator, adjust)
	assert.Equal(t, http.StatusForbidden, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)

	status, _ = s.do(t, http.MethodPost, "/api/v1/inventory/adjust", s.admin, adjust)
	assert.Equal(t, http.StatusOK, status)

	item, err := s.repo.GetItemByCode(t.Context(), "SHOE-01")
	require.NoError(t, err)
	assert.Equal(t, 6, item.QuantityOnHand)
}

func TestRouter_OperatorCannotDeleteOrSettle(t *testing.T) {
	s := newTestServer(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodDelete, "/api/v1/employees/1"},
		{http.MethodDelete, "/api/v1/inventory/items/BELT-01"},
		{http.MethodDelete, "/api/v1/attendance/1"},
		{http.MethodDelete, "/api/v1/leave-periods/1"},
		{http.MethodDelete, "/api/v1/advances/1"},
		{http.MethodDelete, "/api/v1/files/1"},
		{http.MethodPost, "/api/v1/inventory/adjust"},
		{http.MethodPut, "/api/v1/payroll/payments"},
		{http.MethodPost, "/api/v1/payroll/payments/paid"},
		{http.MethodPost, "/api/v1/payroll/payments/unpaid"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			status, body := s.do(t, rt.method, rt.path, s.operator, nil)
			assert.Equal(t, http.StatusForbidden, status)
			require.NotNil(t, body.Error)
			assert.Equal(t, "FORBIDDEN", body.Error.Code)
		})
	}

	// the employee is still there
	status, _ := s.do(t, http.MethodGet, "/api/v1/employees/by-code/EMP-001", s.operator, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRouter_IssueFlow(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodPost, "/api/v1/inventory/items", s.operator, map[string]interface{}{
		"item_code": "BELT-01", "kind": "general", "category": "Uniform",
		"name": "Belt", "unit_name": "pc", "opening_quantity": 2,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := s.do(t, http.MethodPost, "/api/v1/inventory/issue", s.operator, map[string]interface{}{
		"employee_code": "EMP-001", "item_code": "BELT-01", "quantity": 0,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Contains(t, body.Error.Details, "quantity")

	status, body = s.do(t, http.MethodPost, "/api/v1/inventory/issue", s.operator, map[string]interface{}{
		"employee_code": "EMP-001", "item_code": "BELT-01", "quantity": 3,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "RULE_VIOLATION", body.Error.Code)

	status, _ = s.do(t, http.MethodPost, "/api/v1/inventory/issue", s.operator, map[string]interface{}{
		"employee_code": "EMP-001", "item_code": "BELT-01", "quantity": 2,
	})
	assert.Equal(t, http.StatusOK, status)

	status, body = s.do(t, http.MethodGet, "/api/v1/inventory/items/BELT-01/reconcile", s.operator, nil)
	require.Equal(t, http.StatusOK, status)
	report, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, report["consistent"])
	assert.EqualValues(t, 2, report["issued"])

	status, body = s.do(t, http.MethodGet, "/api/v1/employees/by-code/EMP-001/inventory", s.operator, nil)
	require.Equal(t, http.StatusOK, status)
	view, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	held, ok := view["quantity_items"].([]interface{})
	require.True(t, ok)
	require.Len(t, held, 1)
	assert.Equal(t, "BELT-01", held[0].(map[string]interface{})["item_code"])

	status, _ = s.do(t, http.MethodPost, "/api/v1/inventory/issue", s.operator, map[string]interface{}{
		"employee_code": "EMP-404", "item_code": "BELT-01", "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_EmployeeRoutes(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/v1/employees", s.operator, map[string]interface{}{
		"employee_code": "EMP-002", "full_name": "Karim Ali", "base_salary": "18000", "ot_rate": "100",
	})
	require.Equal(t, http.StatusCreated, status, "%+v", body.Error)

	status, _ = s.do(t, http.MethodPost, "/api/v1/employees", s.operator, map[string]interface{}{
		"employee_code": "EMP-002", "full_name": "Duplicate", "base_salary": "1", "ot_rate": "1",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, body = s.do(t, http.MethodGet, "/api/v1/employees/by-code/EMP-002", s.operator, nil)
	require.Equal(t, http.StatusOK, status)
	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Karim Ali", data["full_name"])

	status, _ = s.do(t, http.MethodGet, "/api/v1/employees/abc", s.operator, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRouter_EventStream(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.server.Client().Get(s.server.URL + "/api/v1/events")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.server.URL+"/api/v1/events?topics=low_stock&jwt="+s.operator, nil)
	require.NoError(t, err)

	resp, err = s.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	nextEvent := func() string {
		var lines []string
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			line = strings.TrimRight(line, "\n")
			if line == "" {
				return strings.Join(lines, "\n")
			}
			lines = append(lines, line)
		}
	}

	assert.Contains(t, nextEvent(), "event: connected")
	require.Eventually(t, func() bool { return s.hub.SubscriberCount(sse.TopicLowStock) == 1 }, time.Second, 10*time.Millisecond)
	assert.Zero(t, s.hub.SubscriberCount(sse.TopicLeaveAlerts))

	s.hub.Publish(sse.Event{Topic: sse.TopicLowStock, Name: "low_stock", Data: map[string]string{"item_code": "SHOE-01"}})
	got := nextEvent()
	assert.Contains(t, got, "event: low_stock")
	assert.Contains(t, got, `"item_code":"SHOE-01"`)
}
