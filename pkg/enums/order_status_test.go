package enums

import "testing"

func TestOrderStatusForwardTransitions(t *testing.T) {
	t.Parallel()

	forward := []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
	}

	for i := 0; i < len(forward)-1; i++ {
		if !forward[i].CanTransitionTo(forward[i+1]) {
			t.Fatalf("expected %s -> %s to be allowed", forward[i], forward[i+1])
		}
	}

	// skipping forward is allowed, moving backward never is
	if !OrderStatusPending.CanTransitionTo(OrderStatusShipped) {
		t.Fatal("expected forward skip to be allowed")
	}
	if OrderStatusConfirmed.CanTransitionTo(OrderStatusPending) {
		t.Fatal("confirmed must never revert to pending")
	}
	if OrderStatusDelivered.CanTransitionTo(OrderStatusProcessing) {
		t.Fatal("delivered must never move backward")
	}
}

func TestOrderStatusCancellation(t *testing.T) {
	t.Parallel()

	if !OrderStatusPending.CanTransitionTo(OrderStatusCancelled) {
		t.Fatal("pending should be cancellable")
	}
	if !OrderStatusConfirmed.CanTransitionTo(OrderStatusCancelled) {
		t.Fatal("confirmed should be cancellable")
	}
	for _, from := range []OrderStatus{OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered} {
		if from.CanTransitionTo(OrderStatusCancelled) {
			t.Fatalf("%s should not be cancellable", from)
		}
	}
	if OrderStatusCancelled.CanTransitionTo(OrderStatusConfirmed) {
		t.Fatal("cancelled is terminal")
	}
}

func TestParseOrderStatus(t *testing.T) {
	t.Parallel()

	status, err := ParseOrderStatus("shipped")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != OrderStatusShipped {
		t.Fatalf("unexpected status %s", status)
	}

	if _, err := ParseOrderStatus("returned"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
