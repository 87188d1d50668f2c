package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const (
	// DriverNameSQLite identifies the SQLite driver implementation.
	DriverNameSQLite = "sqlite"

	errorMessageMissingDatabaseDriverName = "store: missing database driver name"
	errorMessageUnsupportedDatabaseDriver = "store: unsupported database driver"
	errorMessageMissingDataSourceName     = "store: missing database data source name"
	errorMessageOpenDatabase              = "store: open database"
	errorMessageOpenSQLiteDatabase        = "store: open sqlite database"
)

var (
	// ErrMissingDatabaseDriverName indicates the database driver name configuration was omitted.
	ErrMissingDatabaseDriverName = errors.New(errorMessageMissingDatabaseDriverName)
	// ErrUnsupportedDatabaseDriver indicates the provided database driver is not supported.
	ErrUnsupportedDatabaseDriver = errors.New(errorMessageUnsupportedDatabaseDriver)
	// ErrMissingDataSourceName indicates the database data source name configuration was omitted.
	ErrMissingDataSourceName = errors.New(errorMessageMissingDataSourceName)
)

type databaseOpener func(Config) (*gorm.DB, error)

var databaseOpeners = map[string]databaseOpener{
	DriverNameSQLite: openSQLiteDatabase,
}

// Config captures database connection configuration for the durable store.
type Config struct {
	DriverName     string
	DataSourceName string
}

// Entry is one persisted key/value pair.
type Entry struct {
	Key   string `gorm:"primaryKey;size:200"`
	Value string `gorm:"not null"`
}

// TableName keeps the persisted layout stable regardless of struct naming.
func (Entry) TableName() string {
	return "store_entries"
}

// OpenDatabase opens a database connection using the configured driver and data source name.
func OpenDatabase(configuration Config) (*gorm.DB, error) {
	trimmedDriverName := strings.TrimSpace(configuration.DriverName)
	if trimmedDriverName == "" {
		return nil, ErrMissingDatabaseDriverName
	}

	opener, driverSupported := databaseOpeners[trimmedDriverName]
	if !driverSupported {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDatabaseDriver, trimmedDriverName)
	}

	database, openErr := opener(Config{
		DriverName:     trimmedDriverName,
		DataSourceName: strings.TrimSpace(configuration.DataSourceName),
	})
	if openErr != nil {
		return nil, fmt.Errorf("%s: %w", errorMessageOpenDatabase, openErr)
	}

	return database, nil
}

func openSQLiteDatabase(configuration Config) (*gorm.DB, error) {
	if configuration.DataSourceName == "" {
		return nil, ErrMissingDataSourceName
	}

	database, openErr := gorm.Open(sqlite.Open(configuration.DataSourceName), &gorm.Config{})
	if openErr != nil {
		return nil, fmt.Errorf("%s: %w", errorMessageOpenSQLiteDatabase, openErr)
	}

	return database, nil
}

// AutoMigrate runs database migrations for the store entry table.
func AutoMigrate(database *gorm.DB) error {
	return database.AutoMigrate(&Entry{})
}

// DatabaseStore is the sqlite-backed Store. Writes are serialized per process;
// concurrent writers in separate processes keep the original read-modify-write
// lost-update possibility.
type DatabaseStore struct {
	database   *gorm.DB
	writeMutex sync.Mutex
}

// NewDatabaseStore wraps an opened gorm database as a Store.
func NewDatabaseStore(database *gorm.DB) *DatabaseStore {
	return &DatabaseStore{database: database}
}

// Get returns the value at key and whether it exists.
func (databaseStore *DatabaseStore) Get(key string) (string, bool, error) {
	if strings.TrimSpace(key) == "" {
		return "", false, ErrMissingKey
	}
	var entry Entry
	queryErr := databaseStore.database.First(&entry, "key = ?", key).Error
	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("store: get %s: %w", key, queryErr)
	}
	return entry.Value, true, nil
}

// Set stores value at key, replacing any existing value.
func (databaseStore *DatabaseStore) Set(key string, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrMissingKey
	}
	databaseStore.writeMutex.Lock()
	defer databaseStore.writeMutex.Unlock()

	entry := Entry{Key: key, Value: value}
	saveErr := databaseStore.database.Save(&entry).Error
	if saveErr != nil {
		return fmt.Errorf("store: set %s: %w", key, saveErr)
	}
	return nil
}

// Remove deletes the value at key; removing an absent key is a no-op.
func (databaseStore *DatabaseStore) Remove(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrMissingKey
	}
	databaseStore.writeMutex.Lock()
	defer databaseStore.writeMutex.Unlock()

	deleteErr := databaseStore.database.Delete(&Entry{}, "key = ?", key).Error
	if deleteErr != nil {
		return fmt.Errorf("store: remove %s: %w", key, deleteErr)
	}
	return nil
}
