package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trekora/trekdesk/internal/store"
	"github.com/trekora/trekdesk/internal/testutil"
)

const (
	testStoreKeyValue    = "userBookings"
	testStoredJSONValue  = `["a","b"]`
	testCorruptJSONValue = `{"unterminated`
)

func TestMemoryStoreRoundTrip(testingT *testing.T) {
	memoryStore := store.NewMemoryStore()

	_, found, getErr := memoryStore.Get(testStoreKeyValue)
	require.NoError(testingT, getErr)
	require.False(testingT, found)

	require.NoError(testingT, memoryStore.Set(testStoreKeyValue, testStoredJSONValue))

	storedValue, found, getErr := memoryStore.Get(testStoreKeyValue)
	require.NoError(testingT, getErr)
	require.True(testingT, found)
	require.Equal(testingT, testStoredJSONValue, storedValue)

	require.NoError(testingT, memoryStore.Remove(testStoreKeyValue))
	_, found, getErr = memoryStore.Get(testStoreKeyValue)
	require.NoError(testingT, getErr)
	require.False(testingT, found)
}

func TestMemoryStoreRejectsEmptyKey(testingT *testing.T) {
	memoryStore := store.NewMemoryStore()

	_, _, getErr := memoryStore.Get(" ")
	require.ErrorIs(testingT, getErr, store.ErrMissingKey)
	require.ErrorIs(testingT, memoryStore.Set("", "value"), store.ErrMissingKey)
	require.ErrorIs(testingT, memoryStore.Remove(""), store.ErrMissingKey)
}

func TestReadJSONAbsentKeyLeavesTargetUntouched(testingT *testing.T) {
	memoryStore := store.NewMemoryStore()

	target := []string{"seed"}
	found, readErr := store.ReadJSON(memoryStore, testStoreKeyValue, &target)
	require.NoError(testingT, readErr)
	require.False(testingT, found)
	require.Equal(testingT, []string{"seed"}, target)
}

func TestReadJSONCorruptValue(testingT *testing.T) {
	memoryStore := store.NewMemoryStore()
	require.NoError(testingT, memoryStore.Set(testStoreKeyValue, testCorruptJSONValue))

	var target []string
	found, readErr := store.ReadJSON(memoryStore, testStoreKeyValue, &target)
	require.True(testingT, found)
	require.ErrorIs(testingT, readErr, store.ErrCorruptValue)
}

func TestWriteJSONThenReadJSON(testingT *testing.T) {
	memoryStore := store.NewMemoryStore()
	require.NoError(testingT, store.WriteJSON(memoryStore, testStoreKeyValue, []string{"a", "b"}))

	var decoded []string
	found, readErr := store.ReadJSON(memoryStore, testStoreKeyValue, &decoded)
	require.NoError(testingT, readErr)
	require.True(testingT, found)
	require.Equal(testingT, []string{"a", "b"}, decoded)
}

func TestDatabaseStoreRoundTrip(testingT *testing.T) {
	sqliteDatabase := testutil.NewSQLiteTestDatabase(testingT)

	database, openErr := store.OpenDatabase(sqliteDatabase.Configuration())
	require.NoError(testingT, openErr)
	database = testutil.ConfigureDatabaseLogger(testingT, database)
	require.NoError(testingT, store.AutoMigrate(database))

	databaseStore := store.NewDatabaseStore(database)

	_, found, getErr := databaseStore.Get(testStoreKeyValue)
	require.NoError(testingT, getErr)
	require.False(testingT, found)

	require.NoError(testingT, databaseStore.Set(testStoreKeyValue, testStoredJSONValue))

	storedValue, found, getErr := databaseStore.Get(testStoreKeyValue)
	require.NoError(testingT, getErr)
	require.True(testingT, found)
	require.Equal(testingT, testStoredJSONValue, storedValue)

	require.NoError(testingT, databaseStore.Set(testStoreKeyValue, `[]`))
	storedValue, _, getErr = databaseStore.Get(testStoreKeyValue)
	require.NoError(testingT, getErr)
	require.Equal(testingT, `[]`, storedValue)

	require.NoError(testingT, databaseStore.Remove(testStoreKeyValue))
	_, found, getErr = databaseStore.Get(testStoreKeyValue)
	require.NoError(testingT, getErr)
	require.False(testingT, found)

	// removing an absent key stays a no-op
	require.NoError(testingT, databaseStore.Remove(testStoreKeyValue))
}

func TestOpenDatabaseRejectsMissingDriver(testingT *testing.T) {
	_, openErr := store.OpenDatabase(store.Config{})
	require.ErrorIs(testingT, openErr, store.ErrMissingDatabaseDriverName)
}

func TestOpenDatabaseRejectsUnsupportedDriver(testingT *testing.T) {
	_, openErr := store.OpenDatabase(store.Config{DriverName: "oracle", DataSourceName: "x"})
	require.ErrorIs(testingT, openErr, store.ErrUnsupportedDatabaseDriver)
}

func TestOpenDatabaseRejectsMissingDataSource(testingT *testing.T) {
	_, openErr := store.OpenDatabase(store.Config{DriverName: store.DriverNameSQLite})
	require.ErrorIs(testingT, openErr, store.ErrMissingDataSourceName)
}
