package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/brizzai/profile-viewer/internal/auth/constants"
	"github.com/brizzai/profile-viewer/internal/auth/middleware"
	"github.com/brizzai/profile-viewer/internal/auth/models"
	"github.com/brizzai/profile-viewer/internal/auth/providers"
	"github.com/brizzai/profile-viewer/internal/logger"
	"github.com/brizzai/profile-viewer/internal/metrics"
	"github.com/brizzai/profile-viewer/internal/utils"
	"go.uber.org/zap"
)

// maxRequestBytes bounds the token request body.
const maxRequestBytes = 64 << 10

// Handler serves the three proxy endpoints. It keeps no per-request state.
type Handler struct {
	public   models.PublicConfig
	provider providers.Provider
	metrics  *metrics.Metrics
}

// NewHandler creates a new Handler instance
func NewHandler(public models.PublicConfig, provider providers.Provider, m *metrics.Metrics) *Handler {
	return &Handler{
		public:   public,
		provider: provider,
		metrics:  m,
	}
}

// HandleConfig returns the public client parameters.
func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.public)
}

// HandleToken exchanges an authorization code for an access token. Only the
// access token is returned; refresh token and expiry are dropped.
func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	code, err := readCode(w, r)
	if err != nil {
		logger.Warn("Rejected token request body", zap.Error(err))
		h.metrics.RecordTokenExchange(metrics.OutcomeBadRequest)
		utils.WriteError(w, http.StatusBadRequest, constants.MsgInvalidBody)
		return
	}
	if code == "" {
		h.metrics.RecordTokenExchange(metrics.OutcomeBadRequest)
		utils.WriteError(w, http.StatusBadRequest, constants.MsgCodeRequired)
		return
	}

	start := time.Now()
	token, err := h.provider.ExchangeCode(r.Context(), code)
	h.metrics.ObserveProvider(providers.EndpointToken, time.Since(start).Seconds())
	if err != nil {
		h.logProviderFailure("Token exchange failed", err)
		h.metrics.RecordTokenExchange(outcomeOf(err))
		utils.WriteError(w, http.StatusInternalServerError, constants.MsgExchangeFailed)
		return
	}

	h.metrics.RecordTokenExchange(metrics.OutcomeSuccess)
	utils.WriteJSON(w, http.StatusOK, models.TokenResponse{AccessToken: token.AccessToken})
}

// HandleProfile proxies the userinfo call. It must sit behind
// middleware.RequireBearer.
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		h.metrics.RecordProfileFetch(metrics.OutcomeUnauthorized)
		utils.WriteError(w, http.StatusUnauthorized, constants.MsgAuthHeaderRequired)
		return
	}

	start := time.Now()
	body, err := h.provider.FetchUserInfo(r.Context(), token)
	h.metrics.ObserveProvider(providers.EndpointUserInfo, time.Since(start).Seconds())
	if err != nil {
		h.logProviderFailure("Profile fetch failed", err)
		h.metrics.RecordProfileFetch(outcomeOf(err))
		utils.WriteError(w, http.StatusInternalServerError, constants.MsgProfileFailed)
		return
	}

	h.metrics.RecordProfileFetch(metrics.OutcomeSuccess)
	logger.Debug("Fetched profile", zap.Int("bytes", len(body)))
	utils.WriteRawJSON(w, http.StatusOK, body)
}

// HandleUnauthorized counts profile requests rejected by the bearer
// middleware.
func (h *Handler) HandleUnauthorized(w http.ResponseWriter, r *http.Request) {
	h.metrics.RecordProfileFetch(metrics.OutcomeUnauthorized)
	utils.WriteError(w, http.StatusUnauthorized, constants.MsgAuthHeaderRequired)
}

func (h *Handler) logProviderFailure(msg string, err error) {
	fields := []zap.Field{zap.String("provider", h.provider.Name()), zap.Error(err)}
	if pe, ok := providers.AsProviderError(err); ok {
		fields = append(fields,
			zap.String("endpoint", pe.Endpoint),
			zap.Int("status", pe.StatusCode),
			zap.String("status_text", pe.Status),
			zap.String("body", pe.Body),
		)
	}
	logger.Error(msg, fields...)
}

func outcomeOf(err error) string {
	if _, ok := providers.AsProviderError(err); ok || errors.Is(err, providers.ErrInvalidUserInfo) {
		return metrics.OutcomeProviderError
	}
	return metrics.OutcomeTransportError
}

// readCode accepts the code as JSON or as a urlencoded form.
func readCode(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return "", err
		}
		return r.PostForm.Get("code"), nil
	}

	var req models.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", err
	}
	return req.Code, nil
}
