package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "venueops/internal/delivery/http/helpers"
	"venueops/internal/domain"
)

// tokenTTL is the lifetime of issued access tokens.
const tokenTTL = time.Hour

// TokenRequest is the request body for POST /auth/token
type TokenRequest struct {
	ClientID string `json:"client_id"`
	APIKey   string `json:"api_key"`
}

// Validate implements Validator.
func (t TokenRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(t.ClientID) == "" {
		errs = append(errs, "client_id is required")
	}
	if t.APIKey == "" {
		errs = append(errs, "api_key is required")
	}
	return errs
}

// TokenResponse is the response body for POST /auth/token
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

type AuthController struct {
	Logger *slog.Logger
	Keys   domain.APIKeyVerifier
	Tokens domain.TokenIssuer
}

func NewAuthController(logger *slog.Logger, keys domain.APIKeyVerifier, tokens domain.TokenIssuer) *AuthController {
	return &AuthController{
		Logger: logger,
		Keys:   keys,
		Tokens: tokens,
	}
}

// IssueToken godoc
// @Summary Exchange an API key for an access token
// @Description Verifies the presented API key and returns a short-lived bearer token for the given client ID.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body TokenRequest true "Client credentials"
// @Success 200 {object} helpers.APIResponse "data contains token, token_type, expires_in"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/token [post]
func (c *AuthController) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Keys.VerifyKey(req.APIKey); err != nil {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid api key")
		return
	}
	token, err := c.Tokens.Issue(strings.TrimSpace(req.ClientID), tokenTTL)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(tokenTTL.Seconds()),
	})
}
