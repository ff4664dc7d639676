package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2026-01-01", "2000-12-31"}
	invalid := []string{"2026-13-01", "2026-01-32", "2026/01/01", "01-01-2026", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	valid := []string{"2026-01", "1999-12"}
	invalid := []string{"2026-1", "2026-13", "2026-00", "26-01", "2026-01-01", ""}
	for _, s := range valid {
		if !IsValidMonth(s) {
			t.Errorf("IsValidMonth(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidMonth(s) {
			t.Errorf("IsValidMonth(%q) = true, want false", s)
		}
	}
}

func TestParseMonth(t *testing.T) {
	got, ok := ParseMonth("2026-02")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), got)

	_, ok = ParseMonth("2026-2")
	assert.False(t, ok)
}

func TestIsValidCode(t *testing.T) {
	for _, c := range []string{"EMP-001", "INV-0001", "REST-005", "SU-7"} {
		assert.True(t, IsValidCode(c), c)
	}
	for _, c := range []string{"", "-EMP", "EMP 001"} {
		assert.False(t, IsValidCode(c), c)
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "invalid"},
		{Field: "quantity", Message: "required"},
	}
	assert.Equal(t, "month: invalid; quantity: required", errs.Error())
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "invalid"},
		{Field: "quantity", Message: "required"},
	}
	assert.Equal(t, map[string]string{"month": "invalid", "quantity": "required"}, errs.ToMap())
}

type statusRequest struct {
	Month        string `json:"month" validate:"required,yyyymm"`
	EmployeeCode string `json:"employee_code" validate:"required,code"`
	Status       string `json:"status" validate:"required,oneof=paid unpaid"`
	Quantity     int    `json:"quantity" validate:"gt=0"`
}

func TestStruct(t *testing.T) {
	ok := statusRequest{Month: "2026-01", EmployeeCode: "EMP-003", Status: "paid", Quantity: 1}
	require.NoError(t, Struct(ok))

	bad := statusRequest{Month: "2026-1", EmployeeCode: "", Status: "settled", Quantity: 0}
	err := Struct(bad)
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	m := verrs.ToMap()
	assert.Equal(t, "must be a month in YYYY-MM format", m["month"])
	assert.Equal(t, "is required", m["employee_code"])
	assert.Equal(t, "must be one of: paid unpaid", m["status"])
	assert.Equal(t, "must be greater than 0", m["quantity"])
}

func TestCollect(t *testing.T) {
	assert.NoError(t, Collect(nil, nil))

	err := Collect(
		ValidationErrors{{Field: "a", Message: "x"}},
		nil,
		ValidationErrors{{Field: "b", Message: "y"}},
	)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)

	plain := assert.AnError
	assert.Equal(t, plain, Collect(ValidationErrors{{Field: "a", Message: "x"}}, plain))
}

type QuantityBody struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

type embeddedRequest struct {
	ItemCode string `json:"item_code" validate:"required,code"`
	QuantityBody
}

func TestStruct_EmbeddedFieldNames(t *testing.T) {
	err := Struct(embeddedRequest{ItemCode: "INV-0001"})
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "quantity", verrs[0].Field)
	assert.Equal(t, "must be greater than 0", verrs[0].Message)
}
