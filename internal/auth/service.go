package auth

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/trekora/trekdesk/internal/model"
	"github.com/trekora/trekdesk/internal/store"
)

// defaultLoginLatency mimics the original sign-in delay so the UI's loading
// state stays exercised.
const defaultLoginLatency = time.Second

const (
	logEventLoginCompleted  = "login_completed"
	logEventLogoutCompleted = "logout_completed"
	logFieldEmail           = "email"
	logFieldRole            = "role"
)

// Service signs identities in and out against the store. Any email and
// password pair is accepted; the role derives from the configured admin email
// set.
type Service struct {
	backingStore store.Store
	logger       *zap.Logger
	adminEmails  map[string]struct{}
	loginLatency time.Duration
}

// NewService creates an auth service. adminEmails lists the addresses that
// land on the admin dashboard.
func NewService(backingStore store.Store, logger *zap.Logger, adminEmails []string) *Service {
	adminSet := make(map[string]struct{}, len(adminEmails))
	for _, adminEmail := range adminEmails {
		normalized := strings.ToLower(strings.TrimSpace(adminEmail))
		if normalized != "" {
			adminSet[normalized] = struct{}{}
		}
	}
	return &Service{
		backingStore: backingStore,
		logger:       logger,
		adminEmails:  adminSet,
		loginLatency: defaultLoginLatency,
	}
}

// WithLoginLatency overrides the simulated sign-in delay.
func (service *Service) WithLoginLatency(latency time.Duration) *Service {
	service.loginLatency = latency
	return service
}

// Login stores the identity after the simulated delay. The password is
// accepted unchecked.
func (service *Service) Login(ctx context.Context, email string, _ string) (model.Identity, error) {
	if service.loginLatency > 0 {
		latencyTimer := time.NewTimer(service.loginLatency)
		defer latencyTimer.Stop()
		select {
		case <-ctx.Done():
			return model.Identity{}, ctx.Err()
		case <-latencyTimer.C:
		}
	}

	identity := model.Identity{Email: strings.TrimSpace(email), Role: model.RoleUser}
	if _, isAdmin := service.adminEmails[strings.ToLower(identity.Email)]; isAdmin {
		identity.Role = model.RoleAdmin
	}
	if saveErr := SaveIdentity(service.backingStore, identity); saveErr != nil {
		return model.Identity{}, saveErr
	}
	if service.logger != nil {
		service.logger.Info(logEventLoginCompleted,
			zap.String(logFieldEmail, identity.Email),
			zap.String(logFieldRole, string(identity.Role)),
		)
	}
	return identity, nil
}

// Logout removes the stored identity.
func (service *Service) Logout() error {
	if clearErr := ClearIdentity(service.backingStore); clearErr != nil {
		return clearErr
	}
	if service.logger != nil {
		service.logger.Info(logEventLogoutCompleted)
	}
	return nil
}
