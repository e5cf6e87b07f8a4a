package enums

import "testing"

func TestPlanMaxLeadsMapping(t *testing.T) {
	tests := []struct {
		plan Plan
		want int
	}{
		{PlanFree, 50},
		{PlanStarter, 600},
		{PlanPro, ProLeadSentinel},
		{Plan("Enterprise"), 50},
	}
	for _, tt := range tests {
		if got := tt.plan.MaxLeads(); got != tt.want {
			t.Fatalf("plan %s: expected %d leads, got %d", tt.plan, tt.want, got)
		}
	}
}

func TestParsePlan(t *testing.T) {
	plan, err := ParsePlan("Starter")
	if err != nil {
		t.Fatalf("parse starter: %v", err)
	}
	if plan != PlanStarter {
		t.Fatalf("expected Starter, got %s", plan)
	}

	if _, err := ParsePlan("starter"); err == nil {
		t.Fatal("expected case-sensitive parse to reject lowercase")
	}
	if _, err := ParsePlan(""); err == nil {
		t.Fatal("expected empty plan to be rejected")
	}
}

func TestPlanUnlimited(t *testing.T) {
	if PlanFree.Unlimited() || PlanStarter.Unlimited() {
		t.Fatal("free/starter must not be unlimited")
	}
	if !PlanPro.Unlimited() {
		t.Fatal("pro must be unlimited")
	}
}
