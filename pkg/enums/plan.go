package enums

import "fmt"

// Plan represents the commercial tier a store is subscribed to.
type Plan string

const (
	PlanFree    Plan = "Free"
	PlanStarter Plan = "Starter"
	PlanPro     Plan = "Pro"
)

// ProLeadSentinel stands in for "unlimited" on the Pro plan. Billing copy
// renders it as Unlimited; the quota math treats it as a very large cap.
const ProLeadSentinel = 999999

var validPlans = []Plan{
	PlanFree,
	PlanStarter,
	PlanPro,
}

var planLeadLimits = map[Plan]int{
	PlanFree:    50,
	PlanStarter: 600,
	PlanPro:     ProLeadSentinel,
}

// String implements fmt.Stringer.
func (p Plan) String() string {
	return string(p)
}

// IsValid reports whether the value is a known Plan.
func (p Plan) IsValid() bool {
	for _, candidate := range validPlans {
		if candidate == p {
			return true
		}
	}
	return false
}

// MaxLeads returns the monthly lead cap for the plan. Unknown plans fall back
// to the Free cap so a corrupted row never grants extra quota.
func (p Plan) MaxLeads() int {
	if limit, ok := planLeadLimits[p]; ok {
		return limit
	}
	return planLeadLimits[PlanFree]
}

// Unlimited reports whether the plan uses the sentinel cap.
func (p Plan) Unlimited() bool {
	return p.MaxLeads() >= ProLeadSentinel
}

// ParsePlan converts raw input into a Plan.
func ParsePlan(value string) (Plan, error) {
	for _, candidate := range validPlans {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid plan %q", value)
}

// Plans returns the known plans in display order.
func Plans() []Plan {
	out := make([]Plan, len(validPlans))
	copy(out, validPlans)
	return out
}
