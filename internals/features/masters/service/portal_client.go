// file: internals/features/masters/service/portal_client.go
//
// Credential validation is delegated to the external resident portal. The
// shim proxies the login, then issues its own bearer token carrying the
// portal uid and customer access list.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"nitihub_backend/internals/configs"
)

var (
	ErrPortalUnavailable  = errors.New("portal unreachable")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var portalHTTP = &http.Client{Timeout: 10 * time.Second}

type PortalUser struct {
	UID         string   `json:"uid"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	CustomerIDs []string `json:"customer_ids"`
}

// PortalLogin posts the credentials to the portal and returns the verified
// identity. Portal failures are External errors; business state is never
// touched.
func PortalLogin(ctx context.Context, username, password string) (*PortalUser, error) {
	if configs.PortalBaseURL == "" {
		return nil, ErrPortalUnavailable
	}
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, configs.PortalBaseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := portalHTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPortalUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("%w: status %d", ErrPortalUnavailable, resp.StatusCode)
	}

	var payload struct {
		Data PortalUser `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: bad response", ErrPortalUnavailable)
	}
	if payload.Data.UID == "" {
		return nil, ErrInvalidCredentials
	}
	return &payload.Data, nil
}

// IssueToken signs a bearer token for a portal-verified user.
func IssueToken(u *PortalUser, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid":          u.UID,
		"name":         u.Name,
		"role":         u.Role,
		"customer_ids": u.CustomerIDs,
		"iat":          now.Unix(),
		"exp":          now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
