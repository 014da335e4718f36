package api

import (
	"io"
	"log"
	"net/http"

	"allball/practice-server/internal/billing"
	"allball/practice-server/internal/entitlement"

	"github.com/gin-gonic/gin"
)

// BillingHandler exposes the checkout, portal and webhook endpoints. These
// live at the server root, outside the versioned API, because the payment
// provider calls the webhook directly.
type BillingHandler struct {
	billing      billing.Service
	entitlements entitlement.Service
	prices       entitlement.PriceTable
}

func NewBillingHandler(b billing.Service, e entitlement.Service, prices entitlement.PriceTable) *BillingHandler {
	return &BillingHandler{billing: b, entitlements: e, prices: prices}
}

type checkoutRequest struct {
	PriceID       string            `json:"priceId" binding:"required"`
	CustomerEmail string            `json:"customerEmail"`
	Metadata      map[string]string `json:"metadata"`
}

type portalRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
}

// CreateCheckoutSession starts a subscription checkout and returns the hosted
// payment page URL.
func (h *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "priceId is required")
		return
	}
	url, err := h.billing.CreateCheckoutSession(c.Request.Context(), req.PriceID, req.CustomerEmail, req.Metadata)
	if err != nil {
		log.Printf("ERROR: create checkout session: %v", err)
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// CreatePortalLink opens the billing portal for an existing customer.
func (h *BillingHandler) CreatePortalLink(c *gin.Context) {
	var req portalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "customerId is required")
		return
	}
	url, err := h.billing.CreatePortalLink(c.Request.Context(), req.CustomerID)
	if err != nil {
		log.Printf("ERROR: create portal link: %v", err)
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Webhook ingests subscription-lifecycle events and writes the resulting
// plan changes through to the entitlement table. Events that don't affect
// entitlements are acknowledged and ignored.
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "could not read webhook payload")
		return
	}
	event, err := h.billing.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		log.Printf("ERROR: webhook rejected: %v", err)
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	customerID, priceID := billing.SubscriptionInfo(event)
	if change, ok := entitlement.PlanChangeFromEvent(string(event.Type), customerID, priceID, h.prices); ok {
		h.entitlements.Apply(c.Request.Context(), change)
		if change.NewPlan != nil {
			log.Printf("Plan change: customer %s -> %s (%s)", change.CustomerID, *change.NewPlan, event.Type)
		} else {
			log.Printf("Plan change: customer %s -> free (%s)", change.CustomerID, event.Type)
		}
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
