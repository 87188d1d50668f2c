package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/trekora/trekdesk/internal/auth"
	"github.com/trekora/trekdesk/internal/booking"
	"github.com/trekora/trekdesk/internal/catalog"
	"github.com/trekora/trekdesk/internal/httpapi"
	"github.com/trekora/trekdesk/internal/ledger"
	"github.com/trekora/trekdesk/internal/refresh"
	"github.com/trekora/trekdesk/internal/store"
)

const (
	commandUseName              = "server"
	commandShortDescription     = "Run the trekking services dashboard server"
	commandLongDescription      = "Launch the HTTP server for the trekking catalog and booking dashboard"
	missingConfigurationMessage = "missing required configuration"
	loggerCreationErrorMessage  = "logger"
	logEventListening           = "listening"
	logEventViewsRefreshed      = "views_refreshed"
	logFieldAddress             = "addr"

	flagNameApplicationAddress     = "app-addr"
	flagNameDatabaseDataSourceName = "db-dsn"
	flagNameAdminEmails            = "admin-emails"
	flagNameSignupEndpoint         = "signup-endpoint"
	flagNameSessionSecret          = "session-secret"
	flagNameRefreshInterval        = "refresh-interval"

	flagUsageApplicationAddress     = "address for the HTTP server to listen on"
	flagUsageDatabaseDataSourceName = "SQLite data source name for the durable store"
	flagUsageAdminEmails            = "comma separated emails that receive the admin role"
	flagUsageSignupEndpoint         = "base URL of the external registration endpoint"
	flagUsageSessionSecret          = "secret used to sign session cookies"
	flagUsageRefreshInterval        = "poll interval for background view refresh"

	environmentKeyApplicationAddress = "APP_ADDR"
	environmentKeyDatabaseDataSource = "DB_DSN"
	environmentKeyAdminEmails        = "ADMIN_EMAILS"
	environmentKeySignupEndpoint     = "SIGNUP_ENDPOINT"
	environmentKeySessionSecret      = "SESSION_SECRET"
	environmentKeyRefreshInterval    = "REFRESH_INTERVAL"

	defaultApplicationAddress = ":8080"

	corsOriginWildcard      = "*"
	corsHeaderAuthorization = "Authorization"
	corsHeaderContentType   = "Content-Type"
	httpMethodGet           = "GET"
	httpMethodOptions       = "OPTIONS"
	httpMethodPost          = "POST"
	httpMethodPut           = "PUT"
	httpMethodDelete        = "DELETE"

	loggerContextOpenDatabase     = "open_db"
	loggerContextAutoMigrate      = "migrate"
	loggerContextServer           = "server"
	readHeaderTimeoutSeconds      = 5
	unexpectedArgumentsMessage    = "unexpected command arguments"
	commandInitializationFailure  = "failed to configure command"
	flagNotDefinedMessage         = "flag %s not defined"
	environmentConfigurationError = "failed to apply environment configuration"
)

var (
	corsAllowedMethods = []string{httpMethodPost, httpMethodGet, httpMethodPut, httpMethodDelete, httpMethodOptions}
	corsAllowedHeaders = []string{corsHeaderAuthorization, corsHeaderContentType}
	corsExposedHeaders = []string{corsHeaderContentType}
	corsAllowOrigins   = []string{corsOriginWildcard}
)

// ServerConfig captures configuration needed to run the server.
type ServerConfig struct {
	ApplicationAddress     string
	DatabaseDataSourceName string
	AdminEmails            []string
	SignupEndpoint         string
	SessionSecret          string
	RefreshInterval        time.Duration
}

// DatabaseOpener opens a database connection using the provided configuration.
type DatabaseOpener func(store.Config) (*gorm.DB, error)

// ServerApplication constructs and executes the server command.
type ServerApplication struct {
	configurationLoader *viper.Viper
	databaseOpener      DatabaseOpener
}

// NewServerApplication creates a ServerApplication with default dependencies.
func NewServerApplication() *ServerApplication {
	return &ServerApplication{
		configurationLoader: viper.New(),
		databaseOpener:      store.OpenDatabase,
	}
}

// WithDatabaseOpener overrides the database opener dependency.
func (application *ServerApplication) WithDatabaseOpener(databaseOpener DatabaseOpener) *ServerApplication {
	application.databaseOpener = databaseOpener
	return application
}

// Command builds the Cobra command for the server.
func (application *ServerApplication) Command() (*cobra.Command, error) {
	rootCommand := &cobra.Command{
		Use:   commandUseName,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		RunE:  application.runCommand,
	}

	if configurationErr := application.configureCommand(rootCommand); configurationErr != nil {
		return nil, configurationErr
	}

	return rootCommand, nil
}

func (application *ServerApplication) configureCommand(command *cobra.Command) error {
	application.configurationLoader.SetDefault(environmentKeyApplicationAddress, defaultApplicationAddress)
	application.configurationLoader.SetDefault(environmentKeyDatabaseDataSource, "")
	application.configurationLoader.SetDefault(environmentKeyAdminEmails, "")
	application.configurationLoader.SetDefault(environmentKeySignupEndpoint, "")
	application.configurationLoader.SetDefault(environmentKeySessionSecret, "")
	application.configurationLoader.SetDefault(environmentKeyRefreshInterval, refresh.DefaultInterval.String())
	application.configurationLoader.AutomaticEnv()

	commandFlags := command.Flags()
	commandFlags.String(flagNameApplicationAddress, defaultApplicationAddress, flagUsageApplicationAddress)
	commandFlags.String(flagNameDatabaseDataSourceName, "", flagUsageDatabaseDataSourceName)
	commandFlags.String(flagNameAdminEmails, "", flagUsageAdminEmails)
	commandFlags.String(flagNameSignupEndpoint, "", flagUsageSignupEndpoint)
	commandFlags.String(flagNameSessionSecret, "", flagUsageSessionSecret)
	commandFlags.Duration(flagNameRefreshInterval, refresh.DefaultInterval, flagUsageRefreshInterval)

	flagBindings := []struct {
		environmentKey string
		flagName       string
	}{
		{environmentKeyApplicationAddress, flagNameApplicationAddress},
		{environmentKeyDatabaseDataSource, flagNameDatabaseDataSourceName},
		{environmentKeyAdminEmails, flagNameAdminEmails},
		{environmentKeySignupEndpoint, flagNameSignupEndpoint},
		{environmentKeySessionSecret, flagNameSessionSecret},
		{environmentKeyRefreshInterval, flagNameRefreshInterval},
	}
	for _, binding := range flagBindings {
		if bindErr := application.bindFlag(commandFlags, binding.environmentKey, binding.flagName); bindErr != nil {
			return bindErr
		}
		if environmentErr := application.applyEnvironmentConfiguration(commandFlags, binding.environmentKey, binding.flagName); environmentErr != nil {
			return environmentErr
		}
	}

	if markErr := command.MarkFlagRequired(flagNameDatabaseDataSourceName); markErr != nil {
		return markErr
	}

	if markErr := command.MarkFlagRequired(flagNameSessionSecret); markErr != nil {
		return markErr
	}

	return nil
}

func (application *ServerApplication) bindFlag(flagSet *pflag.FlagSet, environmentKey string, flagName string) error {
	flag := flagSet.Lookup(flagName)
	if flag == nil {
		return fmt.Errorf(flagNotDefinedMessage, flagName)
	}

	if bindErr := application.configurationLoader.BindPFlag(environmentKey, flag); bindErr != nil {
		return bindErr
	}

	return nil
}

func (application *ServerApplication) applyEnvironmentConfiguration(flagSet *pflag.FlagSet, environmentKey string, flagName string) error {
	environmentValue, environmentFound := os.LookupEnv(environmentKey)
	if !environmentFound {
		return nil
	}

	if setErr := flagSet.Set(flagName, environmentValue); setErr != nil {
		return fmt.Errorf("%s: %w", environmentConfigurationError, setErr)
	}

	return nil
}

func (application *ServerApplication) loadConfiguration() ServerConfig {
	adminEmailsValue := strings.TrimSpace(application.configurationLoader.GetString(environmentKeyAdminEmails))
	var adminEmails []string
	if adminEmailsValue != "" {
		for _, adminEmail := range strings.Split(adminEmailsValue, ",") {
			trimmed := strings.TrimSpace(adminEmail)
			if trimmed != "" {
				adminEmails = append(adminEmails, trimmed)
			}
		}
	}

	return ServerConfig{
		ApplicationAddress:     application.configurationLoader.GetString(environmentKeyApplicationAddress),
		DatabaseDataSourceName: strings.TrimSpace(application.configurationLoader.GetString(environmentKeyDatabaseDataSource)),
		AdminEmails:            adminEmails,
		SignupEndpoint:         strings.TrimSpace(application.configurationLoader.GetString(environmentKeySignupEndpoint)),
		SessionSecret:          strings.TrimSpace(application.configurationLoader.GetString(environmentKeySessionSecret)),
		RefreshInterval:        application.configurationLoader.GetDuration(environmentKeyRefreshInterval),
	}
}

func (application *ServerApplication) runCommand(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return fmt.Errorf("%s: %s", unexpectedArgumentsMessage, strings.Join(arguments, " "))
	}

	serverConfig := application.loadConfiguration()

	if validationErr := application.ensureRequiredConfiguration(serverConfig); validationErr != nil {
		return validationErr
	}

	logger, loggerErr := zap.NewProduction()
	if loggerErr != nil {
		return fmt.Errorf("%s: %w", loggerCreationErrorMessage, loggerErr)
	}
	defer func() {
		_ = logger.Sync()
	}()

	database, databaseErr := application.databaseOpener(store.Config{
		DriverName:     store.DriverNameSQLite,
		DataSourceName: serverConfig.DatabaseDataSourceName,
	})
	if databaseErr != nil {
		logger.Fatal(loggerContextOpenDatabase, zap.Error(databaseErr))
	}

	if migrateErr := store.AutoMigrate(database); migrateErr != nil {
		logger.Fatal(loggerContextAutoMigrate, zap.Error(migrateErr))
	}

	changeBroadcaster := store.NewChangeBroadcaster()
	defer changeBroadcaster.Close()
	backingStore := store.NewNotifyingStore(store.NewDatabaseStore(database), changeBroadcaster)

	catalogRepository := catalog.NewRepository(backingStore, logger)
	bookingLedger := ledger.NewLedger(backingStore, logger)
	bookingWorkflow := booking.NewWorkflow(catalogRepository, bookingLedger)
	authService := auth.NewService(backingStore, logger, serverConfig.AdminEmails)
	signupClient := auth.NewSignupClient(serverConfig.SignupEndpoint)
	sessionManager := httpapi.NewSessionManager(logger, backingStore, serverConfig.SessionSecret)

	viewRefresher := refresh.NewRefresher(serverConfig.RefreshInterval, func(context.Context) {
		logger.Debug(logEventViewsRefreshed)
	})
	viewRefresher.Watch(changeBroadcaster)
	viewRefresher.Start(command.Context())
	defer viewRefresher.Stop()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(httpapi.RequestLogger(logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsAllowOrigins,
		AllowMethods:     corsAllowedMethods,
		AllowHeaders:     corsAllowedHeaders,
		ExposeHeaders:    corsExposedHeaders,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	handlers := httpapi.NewHandlers(logger, sessionManager, catalogRepository, bookingLedger, bookingWorkflow, authService, signupClient)
	handlers.Register(router)

	httpServer := &http.Server{
		Addr:              serverConfig.ApplicationAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeoutSeconds * time.Second,
	}

	logger.Info(logEventListening, zap.String(logFieldAddress, serverConfig.ApplicationAddress))
	if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		logger.Fatal(loggerContextServer, zap.Error(serveErr))
	}

	return nil
}

func (application *ServerApplication) ensureRequiredConfiguration(configuration ServerConfig) error {
	var missingParameters []string

	if configuration.DatabaseDataSourceName == "" {
		missingParameters = append(missingParameters, flagNameDatabaseDataSourceName)
	}

	if configuration.SessionSecret == "" {
		missingParameters = append(missingParameters, flagNameSessionSecret)
	}

	if len(missingParameters) == 0 {
		return nil
	}

	return fmt.Errorf("%s: %s", missingConfigurationMessage, strings.Join(missingParameters, ", "))
}

func main() {
	application := NewServerApplication()
	rootCommand, commandErr := application.Command()
	if commandErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", commandInitializationFailure, commandErr)
		os.Exit(1)
	}

	if executeErr := rootCommand.Execute(); executeErr != nil {
		os.Exit(1)
	}
}
