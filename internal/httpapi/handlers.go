// Package httpapi exposes the dashboard's navigation surface and view
// payloads over HTTP. Views are JSON view-models assembled from the store;
// mutation endpoints drive the catalog, the ledger and the booking workflow.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trekora/trekdesk/internal/auth"
	"github.com/trekora/trekdesk/internal/booking"
	"github.com/trekora/trekdesk/internal/catalog"
	"github.com/trekora/trekdesk/internal/filter"
	"github.com/trekora/trekdesk/internal/ledger"
	"github.com/trekora/trekdesk/internal/model"
)

const (
	routePathRoot              = "/"
	routePathLogin             = "/login"
	routePathSignup            = "/signup"
	routePathDashboard         = "/dashboard"
	routePathAdmin             = "/admin"
	routePathUserDashboard     = "/user-dashboard"
	routeSuffixHotels          = "/hotels"
	routeSuffixEquipment       = "/equipment"
	routeSuffixAgencies        = "/agencies"
	routeSuffixWeather         = "/weather"
	routeSuffixMaps            = "/maps"
	routeSuffixBookings        = "/bookings"
	apiRouteLogin              = "/api/auth/login"
	apiRouteLogout             = "/api/auth/logout"
	apiRouteSignup             = "/api/auth/signup"
	apiRouteCatalogByCategory  = "/api/catalog/:category"
	apiRouteBookings           = "/api/bookings"
	apiRouteBookingCancel      = "/api/bookings/:id/cancel"
	adminRoutePrefix           = "/api/admin"
	adminRouteCatalog          = "/catalog/:category"
	adminRouteCatalogItem      = "/catalog/:category/:id"
	adminRouteBookings         = "/bookings"
	adminRouteBookingItem      = "/bookings/:id"
	routeParameterNameCategory = "category"
	routeParameterNameID       = "id"

	jsonKeyError          = "error"
	jsonKeyView           = "view"
	jsonKeyIdentity       = "identity"
	jsonKeyItems          = "items"
	jsonKeyBookings       = "bookings"
	jsonKeySeedBookings   = "seedBookings"
	jsonKeyWeather        = "weather"
	jsonKeyRoutes         = "routes"
	jsonKeyRedirect       = "redirect"
	authErrorUnauthorized = "unauthorized"
	authErrorForbidden    = "forbidden"

	viewNameLanding       = "landing"
	viewNameLogin         = "login"
	viewNameSignup        = "signup"
	viewNameAdmin         = "admin-dashboard"
	viewNameUserDashboard = "user-dashboard"
	viewNameHotels        = "hotels"
	viewNameEquipment     = "equipment"
	viewNameAgencies      = "agencies"
	viewNameWeather       = "weather"
	viewNameMaps          = "maps"
	viewNameBookings      = "bookings"
	viewNameNotFound      = "not-found"

	logEventViewLoadFailed = "view_load_failed"
	logFieldView           = "view"
)

// Handlers wires the dashboard services into gin routes.
type Handlers struct {
	logger          *zap.Logger
	sessions        *SessionManager
	catalogs        *catalog.Repository
	bookings        *ledger.Ledger
	bookingWorkflow *booking.Workflow
	authService     *auth.Service
	signupClient    *auth.SignupClient
}

// NewHandlers constructs the HTTP handler set.
func NewHandlers(logger *zap.Logger, sessionManager *SessionManager, catalogRepository *catalog.Repository, bookingLedger *ledger.Ledger, bookingWorkflow *booking.Workflow, authService *auth.Service, signupClient *auth.SignupClient) *Handlers {
	return &Handlers{
		logger:          logger,
		sessions:        sessionManager,
		catalogs:        catalogRepository,
		bookings:        bookingLedger,
		bookingWorkflow: bookingWorkflow,
		authService:     authService,
		signupClient:    signupClient,
	}
}

// Register mounts every route on the engine.
func (handlers *Handlers) Register(router *gin.Engine) {
	router.GET(routePathRoot, handlers.handleLanding)
	router.GET(routePathLogin, handlers.handleLoginView)
	router.GET(routePathSignup, handlers.handleSignupView)
	router.GET(routePathDashboard, handlers.handleDashboardRedirect)
	router.GET(routePathAdmin, handlers.handleAdminDashboard)

	userGroup := router.Group(routePathUserDashboard)
	userGroup.GET("", handlers.handleUserDashboard)
	userGroup.GET(routeSuffixHotels, handlers.catalogViewHandler(viewNameHotels, model.CategoryHotels))
	userGroup.GET(routeSuffixEquipment, handlers.catalogViewHandler(viewNameEquipment, model.CategoryEquipment))
	userGroup.GET(routeSuffixAgencies, handlers.catalogViewHandler(viewNameAgencies, model.CategoryAgencies))
	userGroup.GET(routeSuffixWeather, handlers.handleWeatherView)
	userGroup.GET(routeSuffixMaps, handlers.handleMapsView)
	userGroup.GET(routeSuffixBookings, handlers.handleBookingsView)

	router.POST(apiRouteLogin, handlers.handleLogin)
	router.POST(apiRouteLogout, handlers.handleLogout)
	router.POST(apiRouteSignup, handlers.handleSignup)
	router.GET(apiRouteCatalogByCategory, handlers.handleCatalogList)
	router.GET(apiRouteBookings, handlers.sessions.RequireAuthenticated(), handlers.handleOwnerBookings)
	router.POST(apiRouteBookings, handlers.sessions.RequireAuthenticated(), handlers.handleCreateBooking)
	router.POST(apiRouteBookingCancel, handlers.sessions.RequireAuthenticated(), handlers.handleCancelBooking)

	adminGroup := router.Group(adminRoutePrefix, handlers.sessions.RequireAdmin())
	adminGroup.GET(adminRouteCatalog, handlers.handleCatalogList)
	adminGroup.POST(adminRouteCatalog, handlers.handleCatalogAdd)
	adminGroup.PUT(adminRouteCatalogItem, handlers.handleCatalogUpdate)
	adminGroup.DELETE(adminRouteCatalogItem, handlers.handleCatalogDelete)
	adminGroup.GET(adminRouteBookings, handlers.handleAdminBookings)
	adminGroup.POST(adminRouteBookings, handlers.handleCreateAdminBooking)
	adminGroup.PUT(adminRouteBookingItem, handlers.handleUpdateBooking)
	adminGroup.DELETE(adminRouteBookingItem, handlers.handleDeleteBooking)

	router.NoRoute(handlers.handleNotFound)
}

func (handlers *Handlers) handleLanding(context *gin.Context) {
	context.JSON(http.StatusOK, gin.H{
		jsonKeyView:     viewNameLanding,
		jsonKeyIdentity: handlers.sessions.CurrentIdentity(context),
	})
}

func (handlers *Handlers) handleLoginView(context *gin.Context) {
	context.JSON(http.StatusOK, gin.H{jsonKeyView: viewNameLogin})
}

func (handlers *Handlers) handleSignupView(context *gin.Context) {
	context.JSON(http.StatusOK, gin.H{jsonKeyView: viewNameSignup})
}

func (handlers *Handlers) handleDashboardRedirect(context *gin.Context) {
	currentIdentity := handlers.sessions.CurrentIdentity(context)
	context.Redirect(http.StatusFound, auth.DashboardPathForRole(currentIdentity))
}

func (handlers *Handlers) handleAdminDashboard(context *gin.Context) {
	currentIdentity := handlers.sessions.CurrentIdentity(context)
	if currentIdentity.IsZero() {
		context.Redirect(http.StatusFound, auth.PathLogin)
		return
	}
	if !currentIdentity.IsAdmin() {
		context.Redirect(http.StatusFound, auth.PathUserDashboard)
		return
	}

	bookingViews, listErr := handlers.bookings.ListAdminViews()
	if listErr != nil {
		handlers.respondError(context, viewNameAdmin, listErr)
		return
	}
	catalogsByCategory := make(map[string][]model.CatalogItem, len(model.AllCatalogCategories))
	for _, category := range model.AllCatalogCategories {
		items, categoryErr := handlers.catalogs.List(category)
		if categoryErr != nil {
			handlers.respondError(context, viewNameAdmin, categoryErr)
			return
		}
		counted, countErr := handlers.withRouteBookingCounts(category, items)
		if countErr != nil {
			handlers.respondError(context, viewNameAdmin, countErr)
			return
		}
		catalogsByCategory[string(category)] = counted
	}

	context.JSON(http.StatusOK, gin.H{
		jsonKeyView:     viewNameAdmin,
		jsonKeyIdentity: currentIdentity,
		jsonKeyItems:    catalogsByCategory,
		jsonKeyBookings: bookingViews,
	})
}

func (handlers *Handlers) handleUserDashboard(context *gin.Context) {
	currentIdentity := handlers.sessions.CurrentIdentity(context)
	if currentIdentity.IsZero() {
		context.Redirect(http.StatusFound, auth.PathLogin)
		return
	}
	ownedBookings, listErr := handlers.bookings.ListOwnerBookings(currentIdentity.Email)
	if listErr != nil {
		handlers.respondError(context, viewNameUserDashboard, listErr)
		return
	}
	context.JSON(http.StatusOK, gin.H{
		jsonKeyView:     viewNameUserDashboard,
		jsonKeyIdentity: currentIdentity,
		jsonKeyBookings: ownedBookings,
	})
}

func (handlers *Handlers) catalogViewHandler(viewName string, category model.CatalogCategory) gin.HandlerFunc {
	return func(context *gin.Context) {
		items, listErr := handlers.catalogs.List(category)
		if listErr != nil {
			handlers.respondError(context, viewName, listErr)
			return
		}
		filtered := filter.Apply(items, predicatesFromQuery(context))
		context.JSON(http.StatusOK, gin.H{
			jsonKeyView:  viewName,
			jsonKeyItems: filtered,
		})
	}
}

func (handlers *Handlers) handleWeatherView(context *gin.Context) {
	reports := weatherReports()
	if searchTerm := strings.TrimSpace(context.Query("search")); searchTerm != "" {
		matched := make([]WeatherReport, 0, len(reports))
		for _, report := range reports {
			if strings.Contains(strings.ToLower(report.Location), strings.ToLower(searchTerm)) {
				matched = append(matched, report)
			}
		}
		reports = matched
	}
	context.JSON(http.StatusOK, gin.H{
		jsonKeyView:    viewNameWeather,
		jsonKeyWeather: reports,
	})
}

func (handlers *Handlers) handleMapsView(context *gin.Context) {
	routes, listErr := handlers.catalogs.List(model.CategoryRoutes)
	if listErr != nil {
		handlers.respondError(context, viewNameMaps, listErr)
		return
	}
	counted, countErr := handlers.withRouteBookingCounts(model.CategoryRoutes, routes)
	if countErr != nil {
		handlers.respondError(context, viewNameMaps, countErr)
		return
	}
	filtered := filter.Apply(counted, predicatesFromQuery(context))
	context.JSON(http.StatusOK, gin.H{
		jsonKeyView:   viewNameMaps,
		jsonKeyRoutes: filtered,
	})
}

func (handlers *Handlers) handleBookingsView(context *gin.Context) {
	currentIdentity := handlers.sessions.CurrentIdentity(context)
	if currentIdentity.IsZero() {
		context.Redirect(http.StatusFound, auth.PathLogin)
		return
	}
	ownedBookings, listErr := handlers.bookings.ListOwnerBookings(currentIdentity.Email)
	if listErr != nil {
		handlers.respondError(context, viewNameBookings, listErr)
		return
	}
	context.JSON(http.StatusOK, gin.H{
		jsonKeyView:         viewNameBookings,
		jsonKeyBookings:     ownedBookings,
		jsonKeySeedBookings: handlers.bookings.ListSeedBookings(),
	})
}

func (handlers *Handlers) handleNotFound(context *gin.Context) {
	context.JSON(http.StatusNotFound, gin.H{
		jsonKeyView:     viewNameNotFound,
		jsonKeyRedirect: routePathRoot,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (handlers *Handlers) handleLogin(context *gin.Context) {
	var request loginRequest
	if bindErr := context.ShouldBindJSON(&request); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: bindErr.Error()})
		return
	}
	identity, loginErr := handlers.authService.Login(context.Request.Context(), request.Email, request.Password)
	if loginErr != nil {
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: loginErr.Error()})
		return
	}
	handlers.sessions.SaveIdentity(context, identity)
	context.JSON(http.StatusOK, gin.H{
		jsonKeyIdentity: identity,
		jsonKeyRedirect: auth.DashboardPathForRole(identity),
	})
}

func (handlers *Handlers) handleLogout(context *gin.Context) {
	if logoutErr := handlers.authService.Logout(); logoutErr != nil {
		context.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: logoutErr.Error()})
		return
	}
	handlers.sessions.ClearIdentity(context)
	context.JSON(http.StatusOK, gin.H{jsonKeyRedirect: auth.PathLogin})
}

func (handlers *Handlers) handleSignup(context *gin.Context) {
	var request auth.SignupRequest
	if bindErr := context.ShouldBindJSON(&request); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: bindErr.Error()})
		return
	}
	result, signupErr := handlers.signupClient.Register(context.Request.Context(), request)
	if signupErr != nil {
		context.JSON(http.StatusBadGateway, gin.H{jsonKeyError: signupErr.Error()})
		return
	}
	if !result.Succeeded {
		context.JSON(http.StatusUnprocessableEntity, gin.H{jsonKeyError: result.Message})
		return
	}
	context.JSON(http.StatusOK, gin.H{jsonKeyRedirect: auth.PathLogin})
}

func (handlers *Handlers) handleCatalogList(context *gin.Context) {
	category := model.CatalogCategory(context.Param(routeParameterNameCategory))
	items, listErr := handlers.catalogs.List(category)
	if listErr != nil {
		handlers.respondError(context, string(category), listErr)
		return
	}
	counted, countErr := handlers.withRouteBookingCounts(category, items)
	if countErr != nil {
		handlers.respondError(context, string(category), countErr)
		return
	}
	filtered := filter.Apply(counted, predicatesFromQuery(context))
	context.JSON(http.StatusOK, gin.H{jsonKeyItems: filtered})
}

// withRouteBookingCounts overlays each route's seed booking counter with the
// tally derived from the ledger. Other categories pass through untouched.
func (handlers *Handlers) withRouteBookingCounts(category model.CatalogCategory, items []model.CatalogItem) ([]model.CatalogItem, error) {
	if category != model.CategoryRoutes {
		return items, nil
	}
	storedBookings, listErr := handlers.bookings.ListStoredBookings()
	if listErr != nil {
		return nil, listErr
	}
	counted := make([]model.CatalogItem, len(items))
	for index, routeItem := range items {
		routeItem.SeedBookings = catalog.RouteBookingCount(routeItem, storedBookings)
		counted[index] = routeItem
	}
	return counted, nil
}

func (handlers *Handlers) handleCatalogAdd(context *gin.Context) {
	category := model.CatalogCategory(context.Param(routeParameterNameCategory))
	var item model.CatalogItem
	if bindErr := context.ShouldBindJSON(&item); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: bindErr.Error()})
		return
	}
	added, addErr := handlers.catalogs.Add(category, item)
	if addErr != nil {
		handlers.respondError(context, string(category), addErr)
		return
	}
	context.JSON(http.StatusCreated, added)
}

func (handlers *Handlers) handleCatalogUpdate(context *gin.Context) {
	category := model.CatalogCategory(context.Param(routeParameterNameCategory))
	var item model.CatalogItem
	if bindErr := context.ShouldBindJSON(&item); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: bindErr.Error()})
		return
	}
	item.ID = context.Param(routeParameterNameID)
	if updateErr := handlers.catalogs.Update(category, item); updateErr != nil {
		handlers.respondError(context, string(category), updateErr)
		return
	}
	context.JSON(http.StatusOK, item)
}

func (handlers *Handlers) handleCatalogDelete(context *gin.Context) {
	category := model.CatalogCategory(context.Param(routeParameterNameCategory))
	if deleteErr := handlers.catalogs.Delete(category, context.Param(routeParameterNameID)); deleteErr != nil {
		handlers.respondError(context, string(category), deleteErr)
		return
	}
	context.Status(http.StatusNoContent)
}

func (handlers *Handlers) handleOwnerBookings(context *gin.Context) {
	currentIdentity := handlers.sessions.CurrentIdentity(context)
	ownedBookings, listErr := handlers.bookings.ListOwnerBookings(currentIdentity.Email)
	if listErr != nil {
		handlers.respondError(context, viewNameBookings, listErr)
		return
	}
	context.JSON(http.StatusOK, gin.H{
		jsonKeyBookings:     ownedBookings,
		jsonKeySeedBookings: handlers.bookings.ListSeedBookings(),
	})
}

func (handlers *Handlers) handleCreateBooking(context *gin.Context) {
	var request booking.Request
	if bindErr := context.ShouldBindJSON(&request); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: bindErr.Error()})
		return
	}
	request.OwnerIdentity = handlers.sessions.CurrentIdentity(context).Email
	confirmation, bookErr := handlers.bookingWorkflow.Book(request)
	if bookErr != nil {
		handlers.respondError(context, viewNameBookings, bookErr)
		return
	}
	context.JSON(http.StatusCreated, confirmation)
}

func (handlers *Handlers) handleCancelBooking(context *gin.Context) {
	currentIdentity := handlers.sessions.CurrentIdentity(context)
	ownerScope := currentIdentity.Email
	if currentIdentity.IsAdmin() {
		ownerScope = ""
	}
	if cancelErr := handlers.bookings.CancelBooking(ownerScope, context.Param(routeParameterNameID)); cancelErr != nil {
		handlers.respondError(context, viewNameBookings, cancelErr)
		return
	}
	context.Status(http.StatusNoContent)
}

func (handlers *Handlers) handleAdminBookings(context *gin.Context) {
	bookingViews, listErr := handlers.bookings.ListAdminViews()
	if listErr != nil {
		handlers.respondError(context, viewNameAdmin, listErr)
		return
	}
	context.JSON(http.StatusOK, gin.H{jsonKeyBookings: bookingViews})
}

func (handlers *Handlers) handleCreateAdminBooking(context *gin.Context) {
	var request model.Booking
	if bindErr := context.ShouldBindJSON(&request); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: bindErr.Error()})
		return
	}
	created, createErr := handlers.bookings.CreateAdminBooking(request)
	if createErr != nil {
		handlers.respondError(context, viewNameAdmin, createErr)
		return
	}
	context.JSON(http.StatusCreated, created)
}

func (handlers *Handlers) handleUpdateBooking(context *gin.Context) {
	var updated model.Booking
	if bindErr := context.ShouldBindJSON(&updated); bindErr != nil {
		context.JSON(http.StatusBadRequest, gin.H{jsonKeyError: bindErr.Error()})
		return
	}
	updated.ID = context.Param(routeParameterNameID)
	merged, updateErr := handlers.bookings.UpdateBooking(updated)
	if updateErr != nil {
		handlers.respondError(context, viewNameAdmin, updateErr)
		return
	}
	context.JSON(http.StatusOK, merged)
}

func (handlers *Handlers) handleDeleteBooking(context *gin.Context) {
	if deleteErr := handlers.bookings.DeleteBooking(context.Param(routeParameterNameID)); deleteErr != nil {
		handlers.respondError(context, viewNameAdmin, deleteErr)
		return
	}
	context.Status(http.StatusNoContent)
}

func (handlers *Handlers) respondError(context *gin.Context, viewName string, err error) {
	status := http.StatusInternalServerError
	switch {
	case ledger.IsValidationError(err):
		status = http.StatusBadRequest
	case errors.Is(err, catalog.ErrUnknownCategory):
		status = http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, ledger.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, catalog.ErrSeedItem), errors.Is(err, ledger.ErrImmutableRecord), errors.Is(err, ledger.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, ledger.ErrCancelNotPending):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		handlers.logger.Error(logEventViewLoadFailed,
			zap.String(logFieldView, viewName),
			zap.Error(err),
		)
	}
	context.JSON(status, gin.H{jsonKeyError: err.Error()})
}

func predicatesFromQuery(context *gin.Context) filter.PredicateSet {
	predicates := filter.PredicateSet{
		Location:   context.Query("location"),
		Speciality: context.Query("speciality"),
		Search:     context.Query("search"),
		Category:   context.Query("category"),
		Brand:      context.Query("brand"),
	}
	predicates.MinPrice = floatQuery(context, "minPrice")
	predicates.MaxPrice = floatQuery(context, "maxPrice")
	predicates.MinRating = floatQuery(context, "minRating")
	return predicates
}

func floatQuery(context *gin.Context, name string) *float64 {
	rawValue := strings.TrimSpace(context.Query(name))
	if rawValue == "" || rawValue == filter.SentinelAny {
		return nil
	}
	parsed, parseErr := strconv.ParseFloat(rawValue, 64)
	if parseErr != nil {
		return nil
	}
	return &parsed
}
