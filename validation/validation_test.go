package validation

import (
	"testing"
	"time"
)

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	Required("reason", "vacation", v)
	if v["name"] != "required" {
		t.Errorf("expected name required, got %v", v)
	}
	if _, ok := v["reason"]; ok {
		t.Error("reason should be valid")
	}
}

func TestEmail(t *testing.T) {
	tests := map[string]string{
		"jane@example.com":        "",
		"":                        "required",
		"not-an-email":            "invalid_email",
		"Jane <jane@example.com>": "invalid_email",
	}
	for in, want := range tests {
		v := Violations{}
		Email("email", in, v)
		if got := v["email"]; got != want {
			t.Errorf("Email(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNonNegative(t *testing.T) {
	v := Violations{}
	NonNegative("salary", 0, v)
	if !v.Empty() {
		t.Errorf("zero salary should be valid, got %v", v)
	}
	NonNegative("salary", -1, v)
	if v["salary"] != "must_not_be_negative" {
		t.Errorf("expected negative salary violation, got %v", v)
	}
}

func TestOneOf(t *testing.T) {
	type status string
	allowed := []status{"active", "inactive"}
	v := Violations{}
	OneOf("status", status("active"), allowed, v)
	OneOf("status", status(""), allowed, v)
	if !v.Empty() {
		t.Fatalf("unexpected violations %v", v)
	}
	OneOf("status", status("retired"), allowed, v)
	if v["status"] != "invalid_value" {
		t.Errorf("expected invalid_value, got %v", v)
	}
}

func TestDateAndNotBefore(t *testing.T) {
	v := Violations{}
	start := Date("startDate", "2024-01-10", v)
	end := Date("endDate", "2024-01-12T00:00:00Z", v)
	if !v.Empty() {
		t.Fatalf("unexpected violations %v", v)
	}
	if !start.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %v", start)
	}
	NotBefore("endDate", start, end, v)
	if !v.Empty() {
		t.Errorf("end after start should be valid, got %v", v)
	}
	NotBefore("endDate", end, start, v)
	if v["endDate"] != "before_start" {
		t.Errorf("expected before_start, got %v", v)
	}

	v = Violations{}
	Date("startDate", "10/01/2024", v)
	if v["startDate"] != "invalid_date" {
		t.Errorf("expected invalid_date, got %v", v)
	}
}

func TestAddKeepsFirst(t *testing.T) {
	v := Violations{}
	v.Add("email", "required")
	v.Add("email", "invalid_email")
	if v["email"] != "required" {
		t.Errorf("expected first violation kept, got %q", v["email"])
	}
}
