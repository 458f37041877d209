package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"enroll/internal/domain/accounts"
	"enroll/internal/domain/auth"
	cryptoutil "enroll/internal/platform/crypto"
	"enroll/internal/platform/metrics"
	"enroll/internal/platform/requestctx"
	"enroll/internal/transport/http/api"
	"enroll/internal/transport/http/middleware"
)

type Handler struct {
	Accounts *accounts.Service
	Crypto   *cryptoutil.Service
	Metrics  *metrics.Metrics
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(accountsSvc *accounts.Service, crypto *cryptoutil.Service, collector *metrics.Metrics, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{Accounts: accountsSvc, Crypto: crypto, Metrics: collector, Secret: secret, TokenTTL: tokenTTL}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	MFACode  string `json:"mfaCode"`
}

type mfaCodeRequest struct {
	Code string `json:"code"`
}

// HandleLogin verifies the credentials and issues a signed token. Unknown
// username and wrong password produce the identical response.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.Username == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "username and password are required", reqID)
		return
	}

	account, err := h.Accounts.FindByUsername(r.Context(), payload.Username)
	if errors.Is(err, accounts.ErrNotFound) {
		h.Metrics.LoginFailures.Inc()
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "server_error", "login failed", reqID)
		return
	}

	if err := auth.CheckPassword(account.PasswordHash, payload.Password); err != nil {
		h.Metrics.LoginFailures.Inc()
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
		return
	}

	if account.MFAEnabled {
		if payload.MFACode == "" {
			api.Fail(w, http.StatusUnauthorized, "mfa_required", "mfa code required", reqID)
			return
		}
		secret, err := h.Crypto.DecryptString(account.MFASecretEnc)
		if err != nil || secret == "" || !totp.Validate(payload.MFACode, secret) {
			h.Metrics.LoginFailures.Inc()
			api.Fail(w, http.StatusUnauthorized, "mfa_invalid", "invalid mfa code", reqID)
			return
		}
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID:   account.ID,
		Username: account.Username,
		Role:     account.Role,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", reqID)
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"role":  account.Role,
	}, reqID)
}

// HandleMFASetup generates a fresh TOTP secret for the caller and stores it
// encrypted; MFA stays disabled until the first code is confirmed.
func (h *Handler) HandleMFASetup(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "enroll",
		AccountName: user.Username,
		Period:      30,
		Digits:      otp.DigitsSix,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_setup_failed", "failed to generate mfa secret", reqID)
		return
	}
	secret := key.Secret()
	encrypted, err := h.Crypto.EncryptString(secret)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_setup_failed", "failed to store mfa secret", reqID)
		return
	}
	if err := h.Accounts.Store.UpdateMFASecret(r.Context(), user.UserID, encrypted); err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_setup_failed", "failed to store mfa secret", reqID)
		return
	}

	api.Success(w, map[string]string{"secret": secret, "otpauthUrl": key.URL()}, reqID)
}

func (h *Handler) HandleMFAEnable(w http.ResponseWriter, r *http.Request) {
	h.toggleMFA(w, r, true)
}

func (h *Handler) HandleMFADisable(w http.ResponseWriter, r *http.Request) {
	h.toggleMFA(w, r, false)
}

func (h *Handler) toggleMFA(w http.ResponseWriter, r *http.Request, enable bool) {
	reqID := requestctx.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload mfaCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	secretEnc, err := h.Accounts.Store.GetMFASecret(r.Context(), user.UserID)
	if err != nil || len(secretEnc) == 0 {
		api.Fail(w, http.StatusBadRequest, "mfa_missing", "mfa setup required", reqID)
		return
	}
	secret, err := h.Crypto.DecryptString(secretEnc)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "mfa_invalid", "invalid mfa secret", reqID)
		return
	}
	if !totp.Validate(payload.Code, secret) {
		api.Fail(w, http.StatusBadRequest, "mfa_invalid", "invalid mfa code", reqID)
		return
	}

	if err := h.Accounts.Store.SetMFAEnabled(r.Context(), user.UserID, enable); err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_update_failed", "failed to update mfa state", reqID)
		return
	}
	status := "disabled"
	if enable {
		status = "enabled"
	}
	api.Success(w, map[string]string{"status": status}, reqID)
}
