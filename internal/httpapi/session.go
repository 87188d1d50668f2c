package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/trekora/trekdesk/internal/auth"
	"github.com/trekora/trekdesk/internal/model"
	"github.com/trekora/trekdesk/internal/store"
)

const (
	sessionName         = "trekdesk_session"
	sessionKeyUserEmail = "user_email"
	sessionKeyUserRole  = "user_role"

	logEventLoadSession = "load_session"
	logEventSaveSession = "save_session"
)

// SessionManager mirrors the stored identity into a cookie for HTTP callers.
// The store stays the source of truth; the cookie only names who is asking.
type SessionManager struct {
	logger       *zap.Logger
	sessionStore *sessions.CookieStore
	backingStore store.Store
}

// NewSessionManager creates a cookie-backed session manager.
func NewSessionManager(logger *zap.Logger, backingStore store.Store, sessionSecret string) *SessionManager {
	return &SessionManager{
		logger:       logger,
		sessionStore: sessions.NewCookieStore([]byte(sessionSecret)),
		backingStore: backingStore,
	}
}

// CurrentIdentity resolves the caller's identity: session cookie first, then
// the stored identity. Legacy values normalize on read.
func (sessionManager *SessionManager) CurrentIdentity(context *gin.Context) model.Identity {
	sessionInstance, sessionErr := sessionManager.sessionStore.Get(context.Request, sessionName)
	if sessionErr != nil {
		sessionManager.logger.Warn(logEventLoadSession, zap.Error(sessionErr))
	} else {
		email := extractString(sessionInstance.Values[sessionKeyUserEmail])
		if email != "" {
			role := model.Role(extractString(sessionInstance.Values[sessionKeyUserRole]))
			if role != model.RoleAdmin {
				role = model.RoleUser
			}
			return model.Identity{Email: email, Role: role}
		}
	}

	storedIdentity, identityErr := auth.CurrentIdentity(sessionManager.backingStore)
	if identityErr != nil {
		sessionManager.logger.Warn(logEventLoadSession, zap.Error(identityErr))
		return model.Identity{}
	}
	return storedIdentity
}

// SaveIdentity writes the identity into the session cookie.
func (sessionManager *SessionManager) SaveIdentity(context *gin.Context, identity model.Identity) {
	sessionInstance, sessionErr := sessionManager.sessionStore.Get(context.Request, sessionName)
	if sessionErr != nil {
		sessionManager.logger.Warn(logEventLoadSession, zap.Error(sessionErr))
		return
	}
	sessionInstance.Values[sessionKeyUserEmail] = identity.Email
	sessionInstance.Values[sessionKeyUserRole] = string(identity.Role)
	if saveErr := sessionInstance.Save(context.Request, context.Writer); saveErr != nil {
		sessionManager.logger.Warn(logEventSaveSession, zap.Error(saveErr))
	}
}

// ClearIdentity drops the session cookie.
func (sessionManager *SessionManager) ClearIdentity(context *gin.Context) {
	sessionInstance, sessionErr := sessionManager.sessionStore.Get(context.Request, sessionName)
	if sessionErr != nil {
		sessionManager.logger.Warn(logEventLoadSession, zap.Error(sessionErr))
		return
	}
	sessionInstance.Options.MaxAge = -1
	if saveErr := sessionInstance.Save(context.Request, context.Writer); saveErr != nil {
		sessionManager.logger.Warn(logEventSaveSession, zap.Error(saveErr))
	}
}

// RequireAuthenticated rejects callers without an identity.
func (sessionManager *SessionManager) RequireAuthenticated() gin.HandlerFunc {
	return func(context *gin.Context) {
		if sessionManager.CurrentIdentity(context).IsZero() {
			context.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{jsonKeyError: authErrorUnauthorized})
			return
		}
		context.Next()
	}
}

// RequireAdmin rejects callers without the admin role.
func (sessionManager *SessionManager) RequireAdmin() gin.HandlerFunc {
	return func(context *gin.Context) {
		currentIdentity := sessionManager.CurrentIdentity(context)
		if currentIdentity.IsZero() {
			context.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{jsonKeyError: authErrorUnauthorized})
			return
		}
		if !currentIdentity.IsAdmin() {
			context.AbortWithStatusJSON(http.StatusForbidden, gin.H{jsonKeyError: authErrorForbidden})
			return
		}
		context.Next()
	}
}

func extractString(value interface{}) string {
	text, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}
