package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var tables = []string{
	"inventory_transactions",
	"employee_item_balances",
	"serial_units",
	"item_images",
	"items",
	"inventory_assignment_state",
	"files",
	"attendance_records",
	"leave_periods",
	"employee_advance_deductions",
	"employee_advances",
	"payroll_sheet_entries",
	"payroll_payment_statuses",
	"employees",
}

// openTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	ctx := context.Background()
	require.NoError(t, postgresql.ApplySchema(ctx, db))

	query := "TRUNCATE TABLE "
	for i, table := range tables {
		if i > 0 {
			query += ", "
		}
		query += table
	}
	_, err = db.Exec(ctx, query+" RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	return db
}

func seedEmployee(t *testing.T, db *database.DB, code string) employee.Employee {
	t.Helper()
	emp, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		EmployeeCode: code,
		FullName:     "Guard " + code,
		Status:       employee.StatusActive,
		BaseSalary:   decimal.NewFromInt(31000),
		OTRate:       decimal.NewFromInt(100),
		BankCash:     employee.PayByCash,
	})
	require.NoError(t, err)
	return emp
}
