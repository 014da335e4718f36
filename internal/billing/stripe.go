// Package billing wraps the payment provider: checkout and portal session
// creation plus webhook event parsing. It holds no state of its own; plan
// changes derived from webhooks are written through the entitlement service.
package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	portalsession "github.com/stripe/stripe-go/v76/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Service is the billing glue surface used by the HTTP handlers.
type Service interface {
	CreateCheckoutSession(ctx context.Context, priceID, customerEmail string, metadata map[string]string) (string, error)
	CreatePortalLink(ctx context.Context, customerID string) (string, error)
	// ParseWebhook verifies and decodes a raw webhook payload. With no
	// signing secret configured the event is accepted unauthenticated.
	ParseWebhook(payload []byte, signatureHeader string) (*stripe.Event, error)
}

type stripeService struct {
	clientURL     string
	webhookSecret string
}

// NewStripeService configures the global Stripe client with the secret key.
// clientURL is the SPA origin used for redirect URLs.
func NewStripeService(secretKey, clientURL, webhookSecret string) Service {
	stripe.Key = secretKey
	return &stripeService{clientURL: clientURL, webhookSecret: webhookSecret}
}

// CreateCheckoutSession starts a subscription checkout for the given price.
// The price id is echoed into the session metadata so the completion webhook
// can resolve the purchased plan without an extra API round trip.
func (s *stripeService) CreateCheckoutSession(ctx context.Context, priceID, customerEmail string, metadata map[string]string) (string, error) {
	if priceID == "" {
		return "", fmt.Errorf("priceId is required")
	}
	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(s.clientURL + "/?checkout=success"),
		CancelURL:  stripe.String(s.clientURL + "/?checkout=cancel"),
	}
	if customerEmail != "" {
		params.CustomerEmail = stripe.String(customerEmail)
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	params.AddMetadata("priceId", priceID)

	sess, err := checkoutsession.New(params)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

// CreatePortalLink opens a billing-portal session for an existing customer.
func (s *stripeService) CreatePortalLink(ctx context.Context, customerID string) (string, error) {
	if customerID == "" {
		return "", fmt.Errorf("customerId is required")
	}
	params := &stripe.BillingPortalSessionParams{
		Params:    stripe.Params{Context: ctx},
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(s.clientURL),
	}
	portal, err := portalsession.New(params)
	if err != nil {
		return "", err
	}
	return portal.URL, nil
}

func (s *stripeService) ParseWebhook(payload []byte, signatureHeader string) (*stripe.Event, error) {
	if s.webhookSecret != "" {
		event, err := webhook.ConstructEvent(payload, signatureHeader, s.webhookSecret)
		if err != nil {
			return nil, fmt.Errorf("webhook signature verification failed: %w", err)
		}
		return &event, nil
	}
	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("malformed webhook payload: %w", err)
	}
	return &event, nil
}

// eventObject is the slice of a webhook event's object we care about:
// enough to identify the customer and the subscribed price.
type eventObject struct {
	Customer string            `json:"customer"`
	Metadata map[string]string `json:"metadata"`
	Items    struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

// SubscriptionInfo pulls the customer id and price id out of a
// subscription-lifecycle event. Checkout sessions carry the price in the
// metadata we set at creation; subscription events carry it in their items.
func SubscriptionInfo(event *stripe.Event) (customerID, priceID string) {
	var obj eventObject
	if err := json.Unmarshal(event.Data.Raw, &obj); err != nil {
		return "", ""
	}
	priceID = obj.Metadata["priceId"]
	if priceID == "" && len(obj.Items.Data) > 0 {
		priceID = obj.Items.Data[0].Price.ID
	}
	return obj.Customer, priceID
}
