package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"allball/practice-server/internal/entitlement"
	"allball/practice-server/internal/runner"
	"allball/practice-server/internal/service"
	"allball/practice-server/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

// stubBilling replaces the payment provider in handler tests.
type stubBilling struct {
	event    *stripe.Event
	parseErr error
}

func (s *stubBilling) CreateCheckoutSession(_ context.Context, priceID, _ string, _ map[string]string) (string, error) {
	if priceID == "" {
		return "", fmt.Errorf("priceId is required")
	}
	return "https://checkout.example/s1", nil
}

func (s *stubBilling) CreatePortalLink(_ context.Context, customerID string) (string, error) {
	if customerID == "" {
		return "", fmt.Errorf("customerId is required")
	}
	return "https://portal.example/p1", nil
}

func (s *stubBilling) ParseWebhook(_ []byte, _ string) (*stripe.Event, error) {
	return s.event, s.parseErr
}

type testApp struct {
	router       *gin.Engine
	entitlements entitlement.Service
	sessions     service.SessionService
}

// newTestApp wires the full route surface on a fresh in-memory store, in
// anonymous local mode resolving to defaultPlan.
func newTestApp(t *testing.T, defaultPlan entitlement.Plan, billing *stubBilling) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	st := store.NewMemoryStore()

	players := service.NewPlayerService(ctx, st)
	drills := service.NewDrillService(ctx, st, players)
	sessions := service.NewSessionService(ctx, st, players)
	templates := service.NewTemplateService(ctx, st, sessions)
	settings := service.NewSettingsService(ctx, st)
	players.AttachCleanups(drills, sessions)
	entitlements := entitlement.NewService(ctx, st, defaultPlan)

	if billing == nil {
		billing = &stubBilling{}
	}

	router := gin.New()
	SetupRoutes(router, Services{
		Players:      players,
		Drills:       drills,
		Sessions:     sessions,
		Templates:    templates,
		Settings:     settings,
		Entitlements: entitlements,
		Billing:      billing,
		Prices:       entitlement.PriceTable{ProMonth: "price_pro", OrgMonth: "price_org"},
		Runner:       runner.New(nil),
		Timer:        runner.NewPracticeTimer(),
		JWTSecret:    "",
		ClientOrigin: "http://localhost:3000",
	})
	return &testApp{router: router, entitlements: entitlements, sessions: sessions}
}

func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestPing(t *testing.T) {
	app := newTestApp(t, entitlement.PlanPro, nil)
	w := app.do(t, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestPlayerDeleteRequiresConfirmation(t *testing.T) {
	app := newTestApp(t, entitlement.PlanPro, nil)

	w := app.do(t, http.MethodPost, "/api/v1/players", gin.H{"name": "Jordan", "jersey": "23"})
	require.Equal(t, http.StatusCreated, w.Code)
	playerID := decode(t, w)["player"].(map[string]any)["id"].(string)

	w = app.do(t, http.MethodDelete, "/api/v1/players/"+playerID, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	require.Equal(t, true, body["confirmationRequired"])
	require.Contains(t, body["error"], "Are you sure")

	w = app.do(t, http.MethodDelete, "/api/v1/players/"+playerID+"?confirm=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAddPlayerValidationMessage(t *testing.T) {
	app := newTestApp(t, entitlement.PlanPro, nil)
	w := app.do(t, http.MethodPost, "/api/v1/players", gin.H{"jersey": "23"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Player name cannot be empty.", decode(t, w)["error"])
}

func TestTemplatesGatedByPlan(t *testing.T) {
	free := newTestApp(t, entitlement.PlanFree, nil)
	w := free.do(t, http.MethodGet, "/api/v1/templates", nil)
	require.Equal(t, http.StatusPaymentRequired, w.Code)
	require.Equal(t, true, decode(t, w)["upgrade"])

	pro := newTestApp(t, entitlement.PlanPro, nil)
	w = pro.do(t, http.MethodGet, "/api/v1/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardGatedByPlan(t *testing.T) {
	free := newTestApp(t, entitlement.PlanFree, nil)
	w := free.do(t, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestSettingsIncludePlanAndEntitlements(t *testing.T) {
	app := newTestApp(t, entitlement.PlanPro, nil)
	w := app.do(t, http.MethodGet, "/api/v1/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	require.Equal(t, "simple", body["mode"])
	require.Equal(t, false, body["onboardingSeen"])
	require.Equal(t, "pro", body["plan"])
	ents := body["entitlements"].(map[string]any)
	require.Equal(t, true, ents["templates"])
	require.Equal(t, false, ents["ai"])
}

func TestSetModeRejectsUnknownValue(t *testing.T) {
	app := newTestApp(t, entitlement.PlanPro, nil)
	w := app.do(t, http.MethodPut, "/api/v1/settings/mode", gin.H{"mode": "turbo"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPut, "/api/v1/settings/mode", gin.H{"mode": "pro"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDraftSaveFlow(t *testing.T) {
	app := newTestApp(t, entitlement.PlanPro, nil)

	// The library is seeded on first run; pick a drill from it.
	w := app.do(t, http.MethodGet, "/api/v1/drills", nil)
	require.Equal(t, http.StatusOK, w.Code)
	drillList := decode(t, w)["drills"].([]any)
	require.NotEmpty(t, drillList)
	drillID := drillList[0].(map[string]any)["id"].(string)

	w = app.do(t, http.MethodPost, "/api/v1/draft/drills", gin.H{"drillId": drillID})
	require.Equal(t, http.StatusCreated, w.Code)

	// Saving without date and name is rejected.
	w = app.do(t, http.MethodPost, "/api/v1/draft/save", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPut, "/api/v1/draft", gin.H{"date": "2026-03-01", "name": "Morning Practice", "category": "Skills"})
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/draft/save", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "Session saved!", decode(t, w)["message"])
	require.Len(t, app.sessions.List(), 1)
}

func TestDrillVideoToastWhenMissing(t *testing.T) {
	app := newTestApp(t, entitlement.PlanPro, nil)

	w := app.do(t, http.MethodGet, "/api/v1/drills", nil)
	drillID := decode(t, w)["drills"].([]any)[0].(map[string]any)["id"].(string)

	w = app.do(t, http.MethodGet, "/api/v1/drills/"+drillID+"/video", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "No video available for this drill.", decode(t, w)["error"])
}

func TestStationRotationEndpoint(t *testing.T) {
	app := newTestApp(t, entitlement.PlanPro, nil)

	w := app.do(t, http.MethodPost, "/api/v1/stations/rotation", gin.H{
		"playerIds":   []string{"p1", "p2", "p3", "p4", "p5"},
		"numStations": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.Len(t, body["groups"], 2)
	require.Len(t, body["schedule"], 2)
	require.Len(t, body["stations"], 2) // auto-named when not configured

	// Named stations drive the station count.
	w = app.do(t, http.MethodPost, "/api/v1/stations/rotation", gin.H{
		"playerIds": []string{"p1", "p2", "p3"},
		"stations": []gin.H{
			{"name": "Shooting", "drillId": "d1"},
			{"name": "Defense"},
			{"name": "Handles"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode(t, w)["schedule"], 3)

	// Zero stations with no configs is rejected.
	w = app.do(t, http.MethodPost, "/api/v1/stations/rotation", gin.H{"numStations": 0})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMediaRoutesDisabledWithoutBucket(t *testing.T) {
	app := newTestApp(t, entitlement.PlanPro, nil)

	w := app.do(t, http.MethodPost, "/api/v1/drills/d1/video/upload", gin.H{
		"filename":    "demo.mp4",
		"contentType": "video/mp4",
	})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCreateCheckoutSession(t *testing.T) {
	app := newTestApp(t, entitlement.PlanPro, nil)

	w := app.do(t, http.MethodPost, "/create-checkout-session", gin.H{"priceId": "price_pro"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "https://checkout.example/s1", decode(t, w)["url"])

	w = app.do(t, http.MethodPost, "/create-checkout-session", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "priceId is required", decode(t, w)["error"])
}

func TestCreatePortalLink(t *testing.T) {
	app := newTestApp(t, entitlement.PlanPro, nil)

	w := app.do(t, http.MethodPost, "/create-portal-link", gin.H{"customerId": "cus_1"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "https://portal.example/p1", decode(t, w)["url"])
}

func TestWebhookAppliesPlanChange(t *testing.T) {
	event := &stripe.Event{
		Type: "checkout.session.completed",
		Data: &stripe.EventData{
			Raw: json.RawMessage(`{"customer":"cus_1","metadata":{"priceId":"price_org"}}`),
		},
	}
	app := newTestApp(t, entitlement.PlanPro, &stubBilling{event: event})

	w := app.do(t, http.MethodPost, "/webhook", gin.H{"ignored": true})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, decode(t, w)["received"])
	require.Equal(t, entitlement.PlanOrg, app.entitlements.PlanFor(context.Background(), "cus_1"))
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	app := newTestApp(t, entitlement.PlanPro, &stubBilling{parseErr: fmt.Errorf("webhook signature verification failed")})

	w := app.do(t, http.MethodPost, "/webhook", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookIgnoresUnrelatedEvents(t *testing.T) {
	event := &stripe.Event{
		Type: "invoice.paid",
		Data: &stripe.EventData{Raw: json.RawMessage(`{"customer":"cus_1"}`)},
	}
	app := newTestApp(t, entitlement.PlanPro, &stubBilling{event: event})

	w := app.do(t, http.MethodPost, "/webhook", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, entitlement.PlanFree, app.entitlements.PlanFor(context.Background(), "cus_1"))
}

func TestOnCourtRunnerFlow(t *testing.T) {
	app := newTestApp(t, entitlement.PlanPro, nil)

	// Build and save a session to run.
	w := app.do(t, http.MethodGet, "/api/v1/drills", nil)
	drillID := decode(t, w)["drills"].([]any)[0].(map[string]any)["id"].(string)
	app.do(t, http.MethodPost, "/api/v1/draft/drills", gin.H{"drillId": drillID})
	app.do(t, http.MethodPut, "/api/v1/draft", gin.H{"date": "2026-03-01", "name": "Run Day"})
	w = app.do(t, http.MethodPost, "/api/v1/draft/save", nil)
	sessionID := decode(t, w)["session"].(map[string]any)["id"].(string)

	w = app.do(t, http.MethodPost, "/api/v1/oncourt/load", gin.H{"sessionId": sessionID})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "idle", decode(t, w)["state"])

	w = app.do(t, http.MethodPost, "/api/v1/oncourt/start", nil)
	body := decode(t, w)
	require.Equal(t, "running", body["state"])
	require.Greater(t, body["remaining"].(float64), 0.0)

	w = app.do(t, http.MethodPost, "/api/v1/oncourt/done", nil)
	require.Equal(t, "complete", decode(t, w)["state"])
}

func TestSessionExport(t *testing.T) {
	app := newTestApp(t, entitlement.PlanPro, nil)

	w := app.do(t, http.MethodGet, "/api/v1/drills", nil)
	drillID := decode(t, w)["drills"].([]any)[0].(map[string]any)["id"].(string)
	app.do(t, http.MethodPost, "/api/v1/draft/drills", gin.H{"drillId": drillID})
	app.do(t, http.MethodPut, "/api/v1/draft", gin.H{"date": "2026-03-01", "name": "Export Day"})
	w = app.do(t, http.MethodPost, "/api/v1/draft/save", nil)
	sessionID := decode(t, w)["session"].(map[string]any)["id"].(string)

	w = app.do(t, http.MethodGet, "/api/v1/sessions/"+sessionID+"/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Practice Plan: Export Day")
	require.Contains(t, w.Header().Get("Content-Disposition"), "Export Day.txt")
}
