// Package entitlement maps subscription plans to the capability set they
// unlock, and tracks which plan each customer is on.
package entitlement

// Plan is a subscription plan identifier.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
	PlanOrg  Plan = "org"
)

// ValidPlan reports whether p is a known plan.
func ValidPlan(p Plan) bool {
	return p == PlanFree || p == PlanPro || p == PlanOrg
}

// Entitlements is the fixed capability record unlocked by a plan.
type Entitlements struct {
	Teams     int  `json:"teams"`
	Players   int  `json:"players"`
	Templates bool `json:"templates"`
	Analytics bool `json:"analytics"`
	AI        bool `json:"ai"`
}

// planEntitlements is the fixed policy table.
var planEntitlements = map[Plan]Entitlements{
	PlanFree: {Teams: 1, Players: 20, Templates: false, Analytics: false, AI: false},
	PlanPro:  {Teams: 5, Players: 200, Templates: true, Analytics: true, AI: false},
	PlanOrg:  {Teams: 50, Players: 2000, Templates: true, Analytics: true, AI: true},
}

// ForPlan resolves a plan to its capability record. Unknown plans resolve to
// the free tier.
func ForPlan(p Plan) Entitlements {
	if ent, ok := planEntitlements[p]; ok {
		return ent
	}
	return planEntitlements[PlanFree]
}

// Capability names a feature a plan may or may not unlock.
type Capability string

const (
	CapabilityTemplates Capability = "templates"
	CapabilityAnalytics Capability = "analytics"
	CapabilityAI        Capability = "ai"
)

// Allows is the explicit gate: it evaluates the requested capability against
// the plan's entitlement record. Callers route denials to an upgrade prompt.
func Allows(p Plan, c Capability) bool {
	ent := ForPlan(p)
	switch c {
	case CapabilityTemplates:
		return ent.Templates
	case CapabilityAnalytics:
		return ent.Analytics
	case CapabilityAI:
		return ent.AI
	default:
		return false
	}
}
