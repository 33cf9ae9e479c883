package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/middleware"
)

// AdmissionService is the application surface this handler exposes.
type AdmissionService interface {
	IsNumberBlockedByFDN(ctx context.Context, subscriptionID int, destinationAddress string) bool
	SendTextForSubscriber(ctx context.Context, caller domain.Caller, req *domain.SendRequest) error
	SendVisualVoicemailSms(ctx context.Context, caller domain.Caller, req *domain.SendRequest) error
	GetWapMessageSize(ctx context.Context, compositeKeyText string) (int64, error)
}

// SmsHandler serves the public send/query endpoints.
type SmsHandler struct {
	service  AdmissionService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewSmsHandler creates the handler.
func NewSmsHandler(service AdmissionService, logger *slog.Logger) *SmsHandler {
	return &SmsHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("handler", "sms"),
	}
}

// RegisterRoutes registers the SMS admission routes.
func (h *SmsHandler) RegisterRoutes(r chi.Router) {
	r.Post("/subscriptions/{subscriptionID}/messages", h.handleSendText)
	r.Post("/subscriptions/{subscriptionID}/vvm-messages", h.handleSendVisualVoicemail)
	r.Get("/subscriptions/{subscriptionID}/fdn-block", h.handleFdnBlockQuery)
	r.Get("/wap-messages/size", h.handleWapMessageSize)
}

func (h *SmsHandler) handleSendText(w http.ResponseWriter, r *http.Request) {
	h.handleSend(w, r, h.service.SendTextForSubscriber)
}

func (h *SmsHandler) handleSendVisualVoicemail(w http.ResponseWriter, r *http.Request) {
	h.handleSend(w, r, h.service.SendVisualVoicemailSms)
}

func (h *SmsHandler) handleSend(w http.ResponseWriter, r *http.Request, send func(context.Context, domain.Caller, *domain.SendRequest) error) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		logger.ErrorContext(ctx, "Caller missing from context; CallerIdentity middleware must run first")
		h.respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	subscriptionID, err := h.subscriptionID(r)
	if err != nil {
		h.respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid subscription id"})
		return
	}

	var dto SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		h.respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	req := &domain.SendRequest{
		SubscriptionID:       subscriptionID,
		DestinationAddress:   dto.DestinationAddress,
		ServiceCenterAddress: dto.ServiceCenterAddress,
		Text:                 dto.Text,
		SentIntentToken:      dto.SentIntentToken,
		DeliveryIntentToken:  dto.DeliveryIntentToken,
		PersistMessage:       dto.PersistMessage,
	}

	if err := send(ctx, caller, req); err != nil {
		if errors.Is(err, domain.ErrCapabilityMissing) {
			h.respondJSON(w, http.StatusNotImplemented, ErrorResponse{Error: err.Error()})
			return
		}
		logger.ErrorContext(ctx, "Send request failed", "error", err)
		h.respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	// A silent denial also lands here: the pipeline accepted the request for
	// evaluation and intentionally reveals nothing about the outcome.
	h.respondJSON(w, http.StatusAccepted, SendMessageResponse{RequestID: req.ID, Status: "accepted"})
}

func (h *SmsHandler) handleFdnBlockQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := middleware.CallerFromContext(ctx); !ok {
		h.respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	subscriptionID, err := h.subscriptionID(r)
	if err != nil {
		h.respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid subscription id"})
		return
	}

	destination := r.URL.Query().Get("destination")
	if destination == "" {
		h.respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "destination query parameter required"})
		return
	}

	blocked := h.service.IsNumberBlockedByFDN(ctx, subscriptionID, destination)
	h.respondJSON(w, http.StatusOK, FdnBlockResponse{
		SubscriptionID:     subscriptionID,
		DestinationAddress: destination,
		Blocked:            blocked,
	})
}

func (h *SmsHandler) handleWapMessageSize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key := r.URL.Query().Get("key")
	if key == "" {
		h.respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "key query parameter required"})
		return
	}

	size, err := h.service.GetWapMessageSize(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheKeyNotFound) {
			h.respondJSON(w, http.StatusNotFound, ErrorResponse{Error: "no size recorded for key"})
			return
		}
		h.logger.ErrorContext(ctx, "WAP size lookup failed", "error", err)
		h.respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.respondJSON(w, http.StatusOK, WapMessageSizeResponse{Size: size})
}

func (h *SmsHandler) subscriptionID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "subscriptionID"))
}

func (h *SmsHandler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}
