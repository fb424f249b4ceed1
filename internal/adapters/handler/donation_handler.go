package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
	"github.com/muhammadMilon/BloodBridge/internal/core/ports"
)

type DonationHandler struct {
	donationService ports.DonationService
}

func NewDonationHandler(donations ports.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donations}
}

// CreateRequest stores a new donation request. The donor shortlist is
// computed here on the server from the live pool, not supplied by the
// client.
func (h *DonationHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req domain.DonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.donationService.CreateRequest(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "failed to create donation request", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *DonationHandler) MyRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.donationService.ListMine(r.Context(), callerEmail(r))
	if err != nil {
		http.Error(w, "failed to list requests", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *DonationHandler) AllRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.donationService.ListAll(r.Context())
	if err != nil {
		http.Error(w, "failed to list requests", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// PublicRequests is unauthenticated and only exposes pending requests.
func (h *DonationHandler) PublicRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.donationService.ListPublic(r.Context())
	if err != nil {
		http.Error(w, "failed to list requests", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *DonationHandler) Details(w http.ResponseWriter, r *http.Request) {
	req, err := h.donationService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		http.Error(w, "donation request not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *DonationHandler) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	var req domain.DonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.donationService.Update(r.Context(), r.PathValue("id"), req); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "update failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "request updated"})
}

type DonationStatusRequest struct {
	ID             string `json:"id"`
	DonationStatus string `json:"donationStatus"`
	DonorName      string `json:"donorName,omitempty"`
	DonorEmail     string `json:"donorEmail,omitempty"`
}

// UpdateStatus applies a lifecycle transition. Out-of-order transitions
// come back as 409 so clients can distinguish them from bad payloads.
func (h *DonationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req DonationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	err := h.donationService.UpdateStatus(r.Context(), req.ID,
		domain.DonationStatus(req.DonationStatus), req.DonorName, req.DonorEmail)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransition):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, domain.ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "status update failed", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "status updated"})
}

func (h *DonationHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.donationService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			http.Error(w, "invalid request ID", http.StatusBadRequest)
			return
		}
		http.Error(w, "deletion failed", http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "donation request not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deletedCount": 1})
}
