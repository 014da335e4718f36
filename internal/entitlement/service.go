package entitlement

import (
	"context"
	"sync"

	"allball/practice-server/internal/store"
)

// PlanChange is the stable contract a subscription-lifecycle event reduces
// to: which customer, and the plan they are now on. A nil NewPlan means the
// subscription ended and the customer reverts to free.
type PlanChange struct {
	CustomerID string
	NewPlan    *Plan
}

// PriceTable maps the two configured subscription price ids to plans.
type PriceTable struct {
	ProMonth string
	OrgMonth string
}

// PlanForPrice resolves a price id to a plan; unknown prices resolve to pro,
// the cheaper paid tier, rather than granting org by accident.
func (t PriceTable) PlanForPrice(priceID string) Plan {
	switch priceID {
	case t.OrgMonth:
		return PlanOrg
	case t.ProMonth:
		return PlanPro
	default:
		return PlanPro
	}
}

// PlanChangeFromEvent maps a provider event to a PlanChange. The second
// return value is false for event kinds that do not affect entitlements.
func PlanChangeFromEvent(eventType, customerID, priceID string, prices PriceTable) (PlanChange, bool) {
	if customerID == "" {
		return PlanChange{}, false
	}
	switch eventType {
	case "checkout.session.completed", "customer.subscription.updated", "customer.subscription.created":
		plan := prices.PlanForPrice(priceID)
		return PlanChange{CustomerID: customerID, NewPlan: &plan}, true
	case "customer.subscription.deleted":
		return PlanChange{CustomerID: customerID, NewPlan: nil}, true
	default:
		return PlanChange{}, false
	}
}

// Service resolves and updates per-customer plans, persisted as one blob in
// the store.
type Service interface {
	// PlanFor resolves a customer's plan. An empty id is the anonymous
	// single-coach local mode and resolves to the configured default plan;
	// an authenticated customer with no record is on the free tier.
	PlanFor(ctx context.Context, customerID string) Plan
	EntitlementsFor(ctx context.Context, customerID string) Entitlements
	Apply(ctx context.Context, change PlanChange)
}

type service struct {
	mu          sync.RWMutex
	plans       map[string]Plan
	st          store.Store
	defaultPlan Plan
}

// NewService hydrates the customer-plan table from the store.
func NewService(ctx context.Context, st store.Store, defaultPlan Plan) Service {
	if !ValidPlan(defaultPlan) {
		defaultPlan = PlanFree
	}
	return &service{
		plans:       store.LoadJSON(ctx, st, store.KeyEntitlements, map[string]Plan{}),
		st:          st,
		defaultPlan: defaultPlan,
	}
}

func (s *service) PlanFor(_ context.Context, customerID string) Plan {
	if customerID == "" {
		return s.defaultPlan
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if plan, ok := s.plans[customerID]; ok && ValidPlan(plan) {
		return plan
	}
	return PlanFree
}

func (s *service) EntitlementsFor(ctx context.Context, customerID string) Entitlements {
	return ForPlan(s.PlanFor(ctx, customerID))
}

// Apply writes a plan change through to the store. This is the webhook's
// write path.
func (s *service) Apply(ctx context.Context, change PlanChange) {
	if change.CustomerID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if change.NewPlan == nil {
		delete(s.plans, change.CustomerID)
	} else {
		s.plans[change.CustomerID] = *change.NewPlan
	}
	store.SaveJSON(ctx, s.st, store.KeyEntitlements, s.plans)
}
