package enums

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCompleted, true},
		{OrderStatusProcessing, OrderStatusCompleted, true},
		{OrderStatusProcessing, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusProcessing, false},
		{OrderStatusPending, OrderStatusPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	status, err := ParseOrderStatus("processing")
	if err != nil {
		t.Fatalf("parse processing: %v", err)
	}
	if status != OrderStatusProcessing {
		t.Fatalf("unexpected status %s", status)
	}
}

func TestParseUserRole(t *testing.T) {
	if _, err := ParseUserRole("superuser"); err == nil {
		t.Fatal("expected error for unknown role")
	}
	role, err := ParseUserRole("admin")
	if err != nil {
		t.Fatalf("parse admin: %v", err)
	}
	if !role.IsValid() {
		t.Fatalf("admin should be valid")
	}
}
