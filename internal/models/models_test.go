package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/diewo77/go-hr/gate"
)

func TestEmployee_BeforeCreateAssignsID(t *testing.T) {
	e := &Employee{}
	if err := e.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate: %v", err)
	}
	if len(e.ID) != 36 {
		t.Errorf("expected uuid, got %q", e.ID)
	}

	keep := &Employee{ID: "fixed"}
	_ = keep.BeforeCreate(nil)
	if keep.ID != "fixed" {
		t.Errorf("expected existing id kept, got %q", keep.ID)
	}
}

func TestEmployee_JSONHidesPassword(t *testing.T) {
	e := Employee{ID: "e1", Email: "e@x.io", PasswordHash: "$2a$secret", Role: gate.RoleEmployee}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "secret") {
		t.Errorf("password hash leaked: %s", b)
	}
	if !strings.Contains(string(b), `"personalDetails"`) {
		t.Errorf("expected camelCase nested block: %s", b)
	}
}

func TestEmployee_Principal(t *testing.T) {
	e := &Employee{ID: "a1", Role: gate.RoleAdmin}
	if p := e.Principal(); p.ID != "a1" || !p.IsAdmin() {
		t.Errorf("unexpected principal %+v", p)
	}
	if e.OwnerID() != "a1" {
		t.Errorf("OwnerID() = %q, want a1", e.OwnerID())
	}
}

func TestLeaveRequest_Resolved(t *testing.T) {
	tests := []struct {
		status LeaveStatus
		want   bool
	}{
		{LeavePending, false},
		{LeaveApproved, true},
		{LeaveRejected, true},
	}
	for _, tt := range tests {
		if got := (LeaveRequest{Status: tt.status}).Resolved(); got != tt.want {
			t.Errorf("Resolved() for %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestDepartment_BeforeCreateAssignsID(t *testing.T) {
	d := &Department{Name: "HR"}
	_ = d.BeforeCreate(nil)
	if d.ID == "" {
		t.Error("expected id assigned")
	}
}
