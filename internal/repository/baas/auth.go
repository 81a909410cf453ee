package baas

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/repository"
)

// ErrInvalidCredentials is returned by SignInWithPassword on any rejection by
// the identity service. It deliberately carries no detail about which half of
// the credential pair failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthClient talks to the platform's identity API. Password hashing happens
// inside the service; this client never hashes or stores a password itself.
type AuthClient struct {
	client *Client
	log    *logrus.Logger
}

// NewAuthClient builds the identity client over the shared REST client.
func NewAuthClient(client *Client, log *logrus.Logger) *AuthClient {
	return &AuthClient{client: client, log: log}
}

// Session is an authenticated identity session.
type Session struct {
	UserID      string
	Email       string
	AccessToken string
}

type authUserBody struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type authSessionBody struct {
	AccessToken string       `json:"access_token"`
	User        authUserBody `json:"user"`
	// Some deployments return the user object at the top level on signup.
	ID string `json:"id"`
}

type authErrorBody struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	Code             int    `json:"code"`
}

// SignUp registers a new identity. The service owns hashing and duplicate
// detection; an already-registered email surfaces as a constraint violation.
func (a *AuthClient) SignUp(email, password string) (string, error) {
	a.log.WithFields(logrus.Fields{
		"op":    "SignUp",
		"email": logger.RedactEmail(email),
	}).Info("delegating identity creation")

	body, status, err := a.post("signup", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", repository.WrapError(repository.ErrConnection, "baas.SignUp", err)
	}
	if status >= 400 {
		if status == http.StatusUnprocessableEntity || status == http.StatusConflict ||
			status == http.StatusBadRequest {
			return "", repository.WrapError(repository.ErrConstraintViolation, "baas.SignUp", authError(body))
		}
		return "", fmt.Errorf("baas.SignUp: %w", authError(body))
	}

	var session authSessionBody
	if err := json.Unmarshal(body, &session); err != nil {
		return "", fmt.Errorf("baas.SignUp: decoding response: %w", err)
	}
	if session.User.ID != "" {
		return session.User.ID, nil
	}
	return session.ID, nil
}

// SignInWithPassword authenticates against the identity service and returns
// the session. Any rejection maps to ErrInvalidCredentials.
func (a *AuthClient) SignInWithPassword(email, password string) (*Session, error) {
	body, status, err := a.post("token", "grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, repository.WrapError(repository.ErrConnection, "baas.SignInWithPassword", err)
	}
	if status >= 400 {
		a.log.WithFields(logrus.Fields{
			"op":    "SignInWithPassword",
			"email": logger.RedactEmail(email),
		}).Info("identity service rejected sign-in")
		return nil, ErrInvalidCredentials
	}

	var session authSessionBody
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("baas.SignInWithPassword: decoding response: %w", err)
	}
	return &Session{
		UserID:      session.User.ID,
		Email:       session.User.Email,
		AccessToken: session.AccessToken,
	}, nil
}

// SignOut revokes the session's access token.
func (a *AuthClient) SignOut(accessToken string) error {
	req, err := http.NewRequest(http.MethodPost, a.client.baseURL+authPath+"logout", nil)
	if err != nil {
		return fmt.Errorf("baas.SignOut: %w", err)
	}
	req.Header.Set("apikey", a.client.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := a.client.http.Do(req)
	if err != nil {
		return repository.WrapError(repository.ErrConnection, "baas.SignOut", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("baas.SignOut: %w", authError(body))
	}
	return nil
}

func (a *AuthClient) post(endpoint, rawQuery string, payload map[string]string) ([]byte, int, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	u := a.client.baseURL + authPath + endpoint
	if rawQuery != "" {
		u += "?" + rawQuery
	}
	req, err := http.NewRequest(http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("apikey", a.client.anonKey)
	req.Header.Set("Authorization", "Bearer "+a.client.anonKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

func authError(body []byte) error {
	var e authErrorBody
	if err := json.Unmarshal(body, &e); err == nil {
		if e.Message != "" {
			return errors.New(e.Message)
		}
		if e.ErrorDescription != "" {
			return errors.New(e.ErrorDescription)
		}
	}
	return errors.New(string(body))
}
