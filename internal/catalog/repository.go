// Package catalog resolves the effective list of bookable items per category
// by overlaying admin-added entries from the store on top of built-in seed
// entries.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/trekora/trekdesk/internal/model"
	"github.com/trekora/trekdesk/internal/store"
)

const (
	errorMessageUnknownCategory = "catalog: unknown category"
	errorMessageItemNotFound    = "catalog: item not found"
	errorMessageSeedItem        = "catalog: seed items are immutable"

	logEventCorruptCatalog = "corrupt_catalog_value"
	logFieldCategory       = "category"
)

var (
	// ErrUnknownCategory indicates a category outside the catalog set.
	ErrUnknownCategory = errors.New(errorMessageUnknownCategory)
	// ErrNotFound indicates a lookup of a catalog item id that does not exist.
	ErrNotFound = errors.New(errorMessageItemNotFound)
	// ErrSeedItem indicates an attempted edit or delete of a built-in item.
	ErrSeedItem = errors.New(errorMessageSeedItem)
)

var storeKeyByCategory = map[model.CatalogCategory]string{
	model.CategoryHotels:    store.KeyAdminHotels,
	model.CategoryEquipment: store.KeyAdminEquipment,
	model.CategoryRoutes:    store.KeyAdminRoutes,
	model.CategoryAgencies:  store.KeyAdminAgencies,
	model.CategoryGuides:    store.KeyAdminGuides,
}

var idPrefixByCategory = map[model.CatalogCategory]string{
	model.CategoryHotels:    "H",
	model.CategoryEquipment: "E",
	model.CategoryRoutes:    "TR",
	model.CategoryAgencies:  "AG",
	model.CategoryGuides:    "GD",
}

var displayLabelByCategory = map[model.CatalogCategory]string{
	model.CategoryHotels:    "Hotel",
	model.CategoryEquipment: "Equipment",
	model.CategoryRoutes:    "Route",
	model.CategoryAgencies:  "Agency",
	model.CategoryGuides:    "Guide",
}

// Repository reads and writes per-category catalog arrays in the store.
type Repository struct {
	backingStore store.Store
	logger       *zap.Logger
	now          func() time.Time
}

// NewRepository creates a catalog repository over the given store.
func NewRepository(backingStore store.Store, logger *zap.Logger) *Repository {
	return &Repository{backingStore: backingStore, logger: logger, now: time.Now}
}

// WithClock overrides the clock used for time-derived identifiers.
func (repository *Repository) WithClock(now func() time.Time) *Repository {
	repository.now = now
	return repository
}

// List resolves the effective catalog for a category: seeds first, then
// admin-added items in store insertion order. The routes catalog is
// materialized into the store on first read and the stored array becomes the
// source of truth; other categories concatenate without write-back. Duplicate
// ids across seeds and stored items are tolerated.
func (repository *Repository) List(category model.CatalogCategory) ([]model.CatalogItem, error) {
	storeKey, known := storeKeyByCategory[category]
	if !known {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	storedItems, readErr := repository.readStored(category, storeKey)
	if readErr != nil {
		return nil, readErr
	}

	if category == model.CategoryRoutes {
		if len(storedItems) == 0 {
			materialized := Defaults(category)
			if writeErr := store.WriteJSON(repository.backingStore, storeKey, materialized); writeErr != nil {
				return nil, writeErr
			}
			return materialized, nil
		}
		return storedItems, nil
	}

	return append(Defaults(category), storedItems...), nil
}

// ItemByID looks up a catalog item strictly, returning ErrNotFound when the id
// does not resolve.
func (repository *Repository) ItemByID(category model.CatalogCategory, itemID string) (model.CatalogItem, error) {
	items, listErr := repository.List(category)
	if listErr != nil {
		return model.CatalogItem{}, listErr
	}
	for _, item := range items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return model.CatalogItem{}, fmt.Errorf("%w: %s %s", ErrNotFound, category, itemID)
}

// DisplayName resolves an item's name leniently, falling back to
// "Unknown <category>" when the id does not resolve.
func (repository *Repository) DisplayName(category model.CatalogCategory, itemID string) string {
	item, lookupErr := repository.ItemByID(category, itemID)
	if lookupErr != nil {
		return "Unknown " + displayLabelByCategory[category]
	}
	return item.Name
}

// Add appends an admin-authored item to the category's stored array. An empty
// id is assigned from the category prefix and the current timestamp.
func (repository *Repository) Add(category model.CatalogCategory, item model.CatalogItem) (model.CatalogItem, error) {
	storeKey, known := storeKeyByCategory[category]
	if !known {
		return model.CatalogItem{}, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	if category == model.CategoryRoutes {
		// Materialize the route list first so seeds and additions share one array.
		if _, listErr := repository.List(category); listErr != nil {
			return model.CatalogItem{}, listErr
		}
	}

	if strings.TrimSpace(item.ID) == "" {
		item.ID = fmt.Sprintf("%s%d", idPrefixByCategory[category], repository.now().UnixMilli())
	}

	storedItems, readErr := repository.readStored(category, storeKey)
	if readErr != nil {
		return model.CatalogItem{}, readErr
	}
	updatedItems := append(storedItems, item)
	if writeErr := store.WriteJSON(repository.backingStore, storeKey, updatedItems); writeErr != nil {
		return model.CatalogItem{}, writeErr
	}
	return item, nil
}

// Update merges changed fields into a stored item. Seed items of
// non-materialized categories never live in the store and report ErrSeedItem.
func (repository *Repository) Update(category model.CatalogCategory, updated model.CatalogItem) error {
	return repository.mutateStored(category, updated.ID, func(storedItems []model.CatalogItem, index int) []model.CatalogItem {
		storedItems[index] = updated
		return storedItems
	})
}

// Delete removes a stored item. Deletion is allowed though the original
// dashboard exposed no removal control for most categories.
func (repository *Repository) Delete(category model.CatalogCategory, itemID string) error {
	return repository.mutateStored(category, itemID, func(storedItems []model.CatalogItem, index int) []model.CatalogItem {
		return append(storedItems[:index], storedItems[index+1:]...)
	})
}

func (repository *Repository) mutateStored(category model.CatalogCategory, itemID string, mutate func([]model.CatalogItem, int) []model.CatalogItem) error {
	storeKey, known := storeKeyByCategory[category]
	if !known {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	storedItems, readErr := repository.readStored(category, storeKey)
	if readErr != nil {
		return readErr
	}
	for index, storedItem := range storedItems {
		if storedItem.ID == itemID {
			return store.WriteJSON(repository.backingStore, storeKey, mutate(storedItems, index))
		}
	}

	if category != model.CategoryRoutes {
		for _, seedItem := range Defaults(category) {
			if seedItem.ID == itemID {
				return fmt.Errorf("%w: %s %s", ErrSeedItem, category, itemID)
			}
		}
	}
	return fmt.Errorf("%w: %s %s", ErrNotFound, category, itemID)
}

func (repository *Repository) readStored(category model.CatalogCategory, storeKey string) ([]model.CatalogItem, error) {
	var storedItems []model.CatalogItem
	found, readErr := store.ReadJSON(repository.backingStore, storeKey, &storedItems)
	if readErr != nil {
		if errors.Is(readErr, store.ErrCorruptValue) {
			if repository.logger != nil {
				repository.logger.Warn(logEventCorruptCatalog,
					zap.String(logFieldCategory, string(category)),
					zap.Error(readErr),
				)
			}
			return nil, nil
		}
		return nil, readErr
	}
	if !found {
		return nil, nil
	}
	if storedItems == nil {
		storedItems = []model.CatalogItem{}
	}
	return storedItems, nil
}

// RouteBookingCount derives a route's booking tally on read: the seed baseline
// plus every trekking booking in the ledger that references the route by name.
// Nothing increments a stored counter, so the count cannot drift.
func RouteBookingCount(route model.CatalogItem, bookings []model.Booking) int {
	count := route.SeedBookings
	for _, booking := range bookings {
		if booking.Type == model.BookingTypeTrekking && booking.SubjectName == route.Name {
			count++
		}
	}
	return count
}
