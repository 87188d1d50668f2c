package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	signupRegisterPath    = "/api/auth/register"
	signupRequestTimeout  = 10 * time.Second
	contentTypeJSON       = "application/json"
	headerNameContentType = "Content-Type"

	errorMessageSignupEndpointMissing = "auth: signup endpoint not configured"
)

// ErrSignupEndpointMissing indicates the signup base URL was never configured.
var ErrSignupEndpointMissing = errors.New(errorMessageSignupEndpointMissing)

// SignupRequest is the registration payload posted to the signup endpoint.
type SignupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// SignupResult reports the outcome of a registration attempt.
type SignupResult struct {
	Succeeded bool
	Message   string
}

// SignupClient posts registrations to an external endpoint. This is the one
// genuine outbound call in the system.
type SignupClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSignupClient creates a signup client for the given base URL.
func NewSignupClient(baseURL string) *SignupClient {
	return &SignupClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: signupRequestTimeout},
	}
}

// Register posts the signup request and reports success or the upstream
// failure message.
func (client *SignupClient) Register(ctx context.Context, request SignupRequest) (SignupResult, error) {
	if client.baseURL == "" {
		return SignupResult{}, ErrSignupEndpointMissing
	}

	encoded, encodeErr := json.Marshal(request)
	if encodeErr != nil {
		return SignupResult{}, fmt.Errorf("auth: encode signup request: %w", encodeErr)
	}

	httpRequest, requestErr := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+signupRegisterPath, bytes.NewReader(encoded))
	if requestErr != nil {
		return SignupResult{}, fmt.Errorf("auth: build signup request: %w", requestErr)
	}
	httpRequest.Header.Set(headerNameContentType, contentTypeJSON)

	httpResponse, sendErr := client.httpClient.Do(httpRequest)
	if sendErr != nil {
		return SignupResult{}, fmt.Errorf("auth: signup request failed: %w", sendErr)
	}
	defer httpResponse.Body.Close()

	responseBody, readErr := io.ReadAll(io.LimitReader(httpResponse.Body, 1<<16))
	if readErr != nil {
		return SignupResult{}, fmt.Errorf("auth: read signup response: %w", readErr)
	}

	if httpResponse.StatusCode >= http.StatusOK && httpResponse.StatusCode < http.StatusMultipleChoices {
		return SignupResult{Succeeded: true, Message: string(responseBody)}, nil
	}
	return SignupResult{Succeeded: false, Message: string(responseBody)}, nil
}
