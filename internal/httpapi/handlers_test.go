package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trekora/trekdesk/internal/auth"
	"github.com/trekora/trekdesk/internal/booking"
	"github.com/trekora/trekdesk/internal/catalog"
	"github.com/trekora/trekdesk/internal/httpapi"
	"github.com/trekora/trekdesk/internal/ledger"
	"github.com/trekora/trekdesk/internal/model"
	"github.com/trekora/trekdesk/internal/store"
)

const (
	testSessionSecretValue  = "test-session-secret"
	testAdminEmailValue     = "admin@trekora.com"
	testUserEmailValue      = "trekker@example.com"
	testFixedUnixMilliValue = int64(1700000000000)
)

type testHarness struct {
	router       *gin.Engine
	backingStore store.Store
}

func newTestHarness(testingT *testing.T) *testHarness {
	testingT.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	memoryStore := store.NewMemoryStore()
	clock := func() time.Time { return time.UnixMilli(testFixedUnixMilliValue) }

	catalogRepository := catalog.NewRepository(memoryStore, logger).WithClock(clock)
	bookingLedger := ledger.NewLedger(memoryStore, logger).WithClock(clock)
	bookingWorkflow := booking.NewWorkflow(catalogRepository, bookingLedger)
	authService := auth.NewService(memoryStore, logger, []string{testAdminEmailValue}).WithLoginLatency(0)
	signupClient := auth.NewSignupClient("")
	sessionManager := httpapi.NewSessionManager(logger, memoryStore, testSessionSecretValue)

	handlers := httpapi.NewHandlers(logger, sessionManager, catalogRepository, bookingLedger, bookingWorkflow, authService, signupClient)

	router := gin.New()
	handlers.Register(router)

	return &testHarness{router: router, backingStore: memoryStore}
}

func (harness *testHarness) signIn(testingT *testing.T, email string, role model.Role) {
	testingT.Helper()
	require.NoError(testingT, auth.SaveIdentity(harness.backingStore, model.Identity{Email: email, Role: role}))
}

func (harness *testHarness) do(testingT *testing.T, method string, target string, payload any) *httptest.ResponseRecorder {
	testingT.Helper()
	var body *bytes.Reader
	if payload != nil {
		encoded, encodeErr := json.Marshal(payload)
		require.NoError(testingT, encodeErr)
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}
	request := httptest.NewRequest(method, target, body)
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	harness.router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(testingT *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	testingT.Helper()
	var decoded map[string]any
	require.NoError(testingT, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	return decoded
}

func TestLandingView(testingT *testing.T) {
	harness := newTestHarness(testingT)

	recorder := harness.do(testingT, http.MethodGet, "/", nil)
	require.Equal(testingT, http.StatusOK, recorder.Code)
	require.Equal(testingT, "landing", decodeBody(testingT, recorder)["view"])
}

func TestUnknownPathReturnsNotFoundView(testingT *testing.T) {
	harness := newTestHarness(testingT)

	recorder := harness.do(testingT, http.MethodGet, "/no-such-page", nil)
	require.Equal(testingT, http.StatusNotFound, recorder.Code)
	require.Equal(testingT, "not-found", decodeBody(testingT, recorder)["view"])
}

func TestDashboardRedirectsByRole(testingT *testing.T) {
	harness := newTestHarness(testingT)

	recorder := harness.do(testingT, http.MethodGet, "/dashboard", nil)
	require.Equal(testingT, http.StatusFound, recorder.Code)
	require.Equal(testingT, "/login", recorder.Header().Get("Location"))

	harness.signIn(testingT, testUserEmailValue, model.RoleUser)
	recorder = harness.do(testingT, http.MethodGet, "/dashboard", nil)
	require.Equal(testingT, http.StatusFound, recorder.Code)
	require.Equal(testingT, "/user-dashboard", recorder.Header().Get("Location"))

	harness.signIn(testingT, testAdminEmailValue, model.RoleAdmin)
	recorder = harness.do(testingT, http.MethodGet, "/dashboard", nil)
	require.Equal(testingT, http.StatusFound, recorder.Code)
	require.Equal(testingT, "/admin", recorder.Header().Get("Location"))
}

func TestAdminDashboardRejectsPlainUser(testingT *testing.T) {
	harness := newTestHarness(testingT)
	harness.signIn(testingT, testUserEmailValue, model.RoleUser)

	recorder := harness.do(testingT, http.MethodGet, "/admin", nil)
	require.Equal(testingT, http.StatusFound, recorder.Code)
	require.Equal(testingT, "/user-dashboard", recorder.Header().Get("Location"))
}

func TestAdminDashboardPayload(testingT *testing.T) {
	harness := newTestHarness(testingT)
	harness.signIn(testingT, testAdminEmailValue, model.RoleAdmin)

	recorder := harness.do(testingT, http.MethodGet, "/admin", nil)
	require.Equal(testingT, http.StatusOK, recorder.Code)

	payload := decodeBody(testingT, recorder)
	require.Equal(testingT, "admin-dashboard", payload["view"])
	require.Len(testingT, payload["bookings"], 6)

	catalogs, ok := payload["items"].(map[string]any)
	require.True(testingT, ok)
	require.Len(testingT, catalogs["hotels"], 4)
	require.Len(testingT, catalogs["equipment"], 8)
	require.Len(testingT, catalogs["routes"], 4)
}

func TestHotelsViewSupportsFilters(testingT *testing.T) {
	harness := newTestHarness(testingT)

	recorder := harness.do(testingT, http.MethodGet, "/user-dashboard/hotels?location=everest", nil)
	require.Equal(testingT, http.StatusOK, recorder.Code)
	require.Len(testingT, decodeBody(testingT, recorder)["items"], 2)
}

func TestEquipmentViewFootwearUnderMaxPrice(testingT *testing.T) {
	harness := newTestHarness(testingT)

	recorder := harness.do(testingT, http.MethodGet, "/user-dashboard/equipment?category=Footwear&maxPrice=20", nil)
	require.Equal(testingT, http.StatusOK, recorder.Code)

	items, ok := decodeBody(testingT, recorder)["items"].([]any)
	require.True(testingT, ok)
	require.Len(testingT, items, 1)
	first, ok := items[0].(map[string]any)
	require.True(testingT, ok)
	require.Equal(testingT, "E001", first["id"])
}

func TestWeatherViewFiltersByLocation(testingT *testing.T) {
	harness := newTestHarness(testingT)

	recorder := harness.do(testingT, http.MethodGet, "/user-dashboard/weather", nil)
	require.Equal(testingT, http.StatusOK, recorder.Code)
	require.Len(testingT, decodeBody(testingT, recorder)["weather"], 4)

	recorder = harness.do(testingT, http.MethodGet, "/user-dashboard/weather?search=annapurna", nil)
	require.Equal(testingT, http.StatusOK, recorder.Code)
	require.Len(testingT, decodeBody(testingT, recorder)["weather"], 1)
}

func TestMapsViewListsRoutes(testingT *testing.T) {
	harness := newTestHarness(testingT)

	recorder := harness.do(testingT, http.MethodGet, "/user-dashboard/maps?search=hard", nil)
	require.Equal(testingT, http.StatusOK, recorder.Code)
	require.Len(testingT, decodeBody(testingT, recorder)["routes"], 2)
}

func TestLoginStoresIdentityAndRedirects(testingT *testing.T) {
	harness := newTestHarness(testingT)

	recorder := harness.do(testingT, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    testAdminEmailValue,
		"password": "whatever",
	})
	require.Equal(testingT, http.StatusOK, recorder.Code)
	require.Equal(testingT, "/admin", decodeBody(testingT, recorder)["redirect"])
}

func TestLoginRejectsMissingFields(testingT *testing.T) {
	harness := newTestHarness(testingT)

	recorder := harness.do(testingT, http.MethodPost, "/api/auth/login", map[string]string{"email": testUserEmailValue})
	require.Equal(testingT, http.StatusBadRequest, recorder.Code)
}

func TestBookingEndpointsRequireAuthentication(testingT *testing.T) {
	harness := newTestHarness(testingT)

	recorder := harness.do(testingT, http.MethodGet, "/api/bookings", nil)
	require.Equal(testingT, http.StatusUnauthorized, recorder.Code)
}

func TestCreateBookingThroughAPI(testingT *testing.T) {
	harness := newTestHarness(testingT)
	harness.signIn(testingT, testUserEmailValue, model.RoleUser)

	recorder := harness.do(testingT, http.MethodPost, "/api/bookings", map[string]any{
		"type":      "equipment",
		"itemId":    "E001",
		"startDate": "2024-01-01",
		"endDate":   "2024-01-04",
		"quantity":  2,
	})
	require.Equal(testingT, http.StatusCreated, recorder.Code)

	confirmation := decodeBody(testingT, recorder)
	require.Equal(testingT, 90.0, confirmation["total"])
	require.Equal(testingT, "Professional Trekking Boots", confirmation["subjectName"])

	recorder = harness.do(testingT, http.MethodGet, "/api/bookings", nil)
	require.Equal(testingT, http.StatusOK, recorder.Code)
	payload := decodeBody(testingT, recorder)
	require.Len(testingT, payload["bookings"], 1)
	require.Len(testingT, payload["seedBookings"], 6)
}

func TestCreateBookingReversedDatesReturnsBadRequest(testingT *testing.T) {
	harness := newTestHarness(testingT)
	harness.signIn(testingT, testUserEmailValue, model.RoleUser)

	recorder := harness.do(testingT, http.MethodPost, "/api/bookings", map[string]any{
		"type":      "hotel",
		"itemId":    "H001",
		"startDate": "2024-01-04",
		"endDate":   "2024-01-01",
	})
	require.Equal(testingT, http.StatusBadRequest, recorder.Code)
}

func TestAdminEndpointsRequireAdminRole(testingT *testing.T) {
	harness := newTestHarness(testingT)

	recorder := harness.do(testingT, http.MethodGet, "/api/admin/bookings", nil)
	require.Equal(testingT, http.StatusUnauthorized, recorder.Code)

	harness.signIn(testingT, testUserEmailValue, model.RoleUser)
	recorder = harness.do(testingT, http.MethodGet, "/api/admin/bookings", nil)
	require.Equal(testingT, http.StatusForbidden, recorder.Code)
}

func TestAdminAddsHotelCloudNine(testingT *testing.T) {
	harness := newTestHarness(testingT)
	harness.signIn(testingT, testAdminEmailValue, model.RoleAdmin)

	recorder := harness.do(testingT, http.MethodPost, "/api/admin/catalog/hotels", map[string]any{
		"name":  "Cloud Nine",
		"price": 180,
	})
	require.Equal(testingT, http.StatusCreated, recorder.Code)

	recorder = harness.do(testingT, http.MethodGet, "/api/catalog/hotels", nil)
	require.Equal(testingT, http.StatusOK, recorder.Code)
	require.Len(testingT, decodeBody(testingT, recorder)["items"], 5)
}

func TestDeleteSeedBookingReturnsForbidden(testingT *testing.T) {
	harness := newTestHarness(testingT)
	harness.signIn(testingT, testAdminEmailValue, model.RoleAdmin)

	recorder := harness.do(testingT, http.MethodDelete, "/api/admin/bookings/BK001", nil)
	require.Equal(testingT, http.StatusForbidden, recorder.Code)

	recorder = harness.do(testingT, http.MethodGet, "/api/admin/bookings", nil)
	require.Equal(testingT, http.StatusOK, recorder.Code)
	require.Len(testingT, decodeBody(testingT, recorder)["bookings"], 6)
}

func TestUpdateSeedCatalogItemReturnsForbidden(testingT *testing.T) {
	harness := newTestHarness(testingT)
	harness.signIn(testingT, testAdminEmailValue, model.RoleAdmin)

	recorder := harness.do(testingT, http.MethodPut, "/api/admin/catalog/hotels/H001", map[string]any{
		"name": "Renamed Lodge",
	})
	require.Equal(testingT, http.StatusForbidden, recorder.Code)
}

func TestCancelBookingConflictWhenNotPending(testingT *testing.T) {
	harness := newTestHarness(testingT)
	harness.signIn(testingT, testUserEmailValue, model.RoleUser)

	recorder := harness.do(testingT, http.MethodPost, "/api/bookings", map[string]any{
		"type":      "trekking",
		"itemId":    "TR001",
		"startDate": "2024-04-01",
		"endDate":   "2024-04-14",
	})
	require.Equal(testingT, http.StatusCreated, recorder.Code)
	bookingID, ok := decodeBody(testingT, recorder)["bookingId"].(string)
	require.True(testingT, ok)

	recorder = harness.do(testingT, http.MethodPost, "/api/bookings/"+bookingID+"/cancel", nil)
	require.Equal(testingT, http.StatusNoContent, recorder.Code)

	recorder = harness.do(testingT, http.MethodPost, "/api/bookings/"+bookingID+"/cancel", nil)
	require.Equal(testingT, http.StatusConflict, recorder.Code)
}

func TestCancelForeignBookingReturnsForbidden(testingT *testing.T) {
	harness := newTestHarness(testingT)
	harness.signIn(testingT, testUserEmailValue, model.RoleUser)

	recorder := harness.do(testingT, http.MethodPost, "/api/bookings", map[string]any{
		"type":      "trekking",
		"itemId":    "TR001",
		"startDate": "2024-04-01",
		"endDate":   "2024-04-14",
	})
	require.Equal(testingT, http.StatusCreated, recorder.Code)
	bookingID, ok := decodeBody(testingT, recorder)["bookingId"].(string)
	require.True(testingT, ok)

	harness.signIn(testingT, "intruder@example.com", model.RoleUser)
	recorder = harness.do(testingT, http.MethodPost, "/api/bookings/"+bookingID+"/cancel", nil)
	require.Equal(testingT, http.StatusForbidden, recorder.Code)

	harness.signIn(testingT, testAdminEmailValue, model.RoleAdmin)
	recorder = harness.do(testingT, http.MethodPost, "/api/bookings/"+bookingID+"/cancel", nil)
	require.Equal(testingT, http.StatusNoContent, recorder.Code)
}

func TestMapsViewDerivesRouteBookingCounts(testingT *testing.T) {
	harness := newTestHarness(testingT)
	harness.signIn(testingT, testUserEmailValue, model.RoleUser)

	routeCountByID := func() map[string]float64 {
		recorder := harness.do(testingT, http.MethodGet, "/user-dashboard/maps", nil)
		require.Equal(testingT, http.StatusOK, recorder.Code)
		routes, ok := decodeBody(testingT, recorder)["routes"].([]any)
		require.True(testingT, ok)
		counts := make(map[string]float64, len(routes))
		for _, rawRoute := range routes {
			route, routeOK := rawRoute.(map[string]any)
			require.True(testingT, routeOK)
			count, _ := route["bookings"].(float64)
			counts[route["id"].(string)] = count
		}
		return counts
	}

	require.Equal(testingT, 23.0, routeCountByID()["TR001"])

	recorder := harness.do(testingT, http.MethodPost, "/api/bookings", map[string]any{
		"type":      "trekking",
		"itemId":    "TR001",
		"startDate": "2024-04-01",
		"endDate":   "2024-04-14",
	})
	require.Equal(testingT, http.StatusCreated, recorder.Code)

	counts := routeCountByID()
	require.Equal(testingT, 24.0, counts["TR001"])
	require.Equal(testingT, 18.0, counts["TR002"])
}

func TestAdminPartialBookingUpdateKeepsOwner(testingT *testing.T) {
	harness := newTestHarness(testingT)
	harness.signIn(testingT, testUserEmailValue, model.RoleUser)

	recorder := harness.do(testingT, http.MethodPost, "/api/bookings", map[string]any{
		"type":      "trekking",
		"itemId":    "TR001",
		"startDate": "2024-04-01",
		"endDate":   "2024-04-14",
	})
	require.Equal(testingT, http.StatusCreated, recorder.Code)
	bookingID, ok := decodeBody(testingT, recorder)["bookingId"].(string)
	require.True(testingT, ok)

	harness.signIn(testingT, testAdminEmailValue, model.RoleAdmin)
	recorder = harness.do(testingT, http.MethodPut, "/api/admin/bookings/"+bookingID, map[string]any{
		"status": "confirmed",
	})
	require.Equal(testingT, http.StatusOK, recorder.Code)
	merged := decodeBody(testingT, recorder)
	require.Equal(testingT, "confirmed", merged["status"])
	require.Equal(testingT, "Everest Base Camp Trek", merged["subjectName"])

	harness.signIn(testingT, testUserEmailValue, model.RoleUser)
	recorder = harness.do(testingT, http.MethodGet, "/api/bookings", nil)
	require.Equal(testingT, http.StatusOK, recorder.Code)
	ownedBookings, ownedOK := decodeBody(testingT, recorder)["bookings"].([]any)
	require.True(testingT, ownedOK)
	require.Len(testingT, ownedBookings, 1)
	ownedBooking, bookingOK := ownedBookings[0].(map[string]any)
	require.True(testingT, bookingOK)
	require.Equal(testingT, "confirmed", ownedBooking["status"])
}

func TestCancelUnknownBookingReturnsNotFound(testingT *testing.T) {
	harness := newTestHarness(testingT)
	harness.signIn(testingT, testUserEmailValue, model.RoleUser)

	recorder := harness.do(testingT, http.MethodPost, "/api/bookings/BK999/cancel", nil)
	require.Equal(testingT, http.StatusNotFound, recorder.Code)
}
