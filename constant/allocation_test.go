package constant

import "testing"

func TestAllocationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from AllocationStatus
		to   AllocationStatus
		want bool
	}{
		{AllocationStatusReserved, AllocationStatusConsumed, true},
		{AllocationStatusReserved, AllocationStatusReleased, true},
		{AllocationStatusReserved, AllocationStatusReserved, false},
		{AllocationStatusConsumed, AllocationStatusReleased, false},
		{AllocationStatusConsumed, AllocationStatusReserved, false},
		{AllocationStatusReleased, AllocationStatusConsumed, false},
		{AllocationStatusReleased, AllocationStatusReserved, false},
		{AllocationStatus("BOGUS"), AllocationStatusReleased, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestAllocationStatus_IsTerminal(t *testing.T) {
	if AllocationStatusReserved.IsTerminal() {
		t.Fatal("RESERVED must not be terminal")
	}
	if !AllocationStatusConsumed.IsTerminal() || !AllocationStatusReleased.IsTerminal() {
		t.Fatal("CONSUMED and RELEASED must be terminal")
	}
	if AllocationStatus("").Valid() {
		t.Fatal("empty status must be invalid")
	}
}

func TestOrderStatus_String(t *testing.T) {
	if OrderStatusBackordered.String() != "BACKORDERED" {
		t.Fatalf("got %s", OrderStatusBackordered.String())
	}
	if OrderStatus(99).String() != "UNKNOWN" {
		t.Fatalf("got %s", OrderStatus(99).String())
	}
}
