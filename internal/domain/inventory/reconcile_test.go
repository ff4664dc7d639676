package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func qty(v int) *int { return &v }

func TestDeriveStock(t *testing.T) {
	txns := []Transaction{
		{Action: ActionAdjust, Quantity: qty(10)},
		{Action: ActionIssue, Quantity: qty(4)},
		{Action: ActionReturn, Quantity: qty(1)},
		{Action: ActionDamaged, Quantity: qty(1)},
		{Action: ActionLost, Quantity: qty(1)},
		{Action: ActionAdjust, Quantity: qty(-2)},
	}
	assert.Equal(t, 6, DeriveStock(txns))
}

func TestReconcileQuantity(t *testing.T) {
	// opening 10, issue 4, return 3 good, return 1 damaged
	item := Item{ItemCode: "INV-0001", QuantityOnHand: 9}
	txns := []Transaction{
		{Action: ActionAdjust, Quantity: qty(10)},
		{Action: ActionIssue, Quantity: qty(4)},
		{Action: ActionReturn, Quantity: qty(3)},
		{Action: ActionDamaged, Quantity: qty(1)},
	}
	balances := []EmployeeItemBalance{{QuantityIssued: 0}}

	report := ReconcileQuantity(item, balances, txns)
	assert.True(t, report.Consistent)
	assert.Equal(t, 9, report.Actual)
	assert.Equal(t, 9, report.Derived)

	item.QuantityOnHand = 8
	report = ReconcileQuantity(item, balances, txns)
	assert.False(t, report.Consistent)
}

func TestReconcileSerial(t *testing.T) {
	item := Item{ItemCode: "REST-005", SerialTracked: true}
	units := []SerialUnit{
		{Status: SerialInStock},
		{Status: SerialIssued},
		{Status: SerialMaintenance},
		{Status: SerialLost},
	}
	txns := []Transaction{
		{Action: ActionAdjust, Quantity: qty(1)},
		{Action: ActionAdjust, Quantity: qty(1)},
		{Action: ActionAdjust, Quantity: qty(1)},
		{Action: ActionAdjust, Quantity: qty(1)},
		{Action: ActionIssue, Quantity: qty(1)},
		{Action: ActionLost, Quantity: qty(1)},
	}

	report := ReconcileSerial(item, units, txns)
	assert.Equal(t, 2, report.OnHand)
	assert.Equal(t, 1, report.Issued)
	assert.Equal(t, 3, report.Derived)
	assert.True(t, report.Consistent)
}

func TestItem_IsLowStock(t *testing.T) {
	item := Item{QuantityOnHand: 2, MinQuantity: qty(5)}
	assert.True(t, item.IsLowStock())

	item.QuantityOnHand = 5
	assert.False(t, item.IsLowStock())

	item.QuantityOnHand = 0
	item.SerialTracked = true
	assert.False(t, item.IsLowStock())
}
