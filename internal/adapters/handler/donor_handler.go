package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
	"github.com/muhammadMilon/BloodBridge/internal/core/ports"
)

type DonorHandler struct {
	donorService ports.DonorService
}

func NewDonorHandler(donors ports.DonorService) *DonorHandler {
	return &DonorHandler{donorService: donors}
}

// Search filters active donors on exact-match query parameters. Each hit
// carries an eligibility note for display; ineligible donors are still
// listed.
func (h *DonorHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ports.DonorSearchFilter{
		BloodGroup:   domain.BloodGroup(q.Get("bloodGroup")),
		District:     q.Get("district"),
		Upazila:      q.Get("upazila"),
		Availability: domain.AvailabilityStatus(q.Get("availability")),
	}

	results, err := h.donorService.Search(r.Context(), filter)
	if err != nil {
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *DonorHandler) GetDonors(w http.ResponseWriter, r *http.Request) {
	donors, err := h.donorService.ListDonors(r.Context())
	if err != nil {
		http.Error(w, "failed to list donors", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, donors)
}

// AddDonor records a verified donation that happened outside a platform
// request. Records created by completed requests do not pass through here.
func (h *DonorHandler) AddDonor(w http.ResponseWriter, r *http.Request) {
	var record domain.DonorHistoryRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.donorService.AddHistoryRecord(r.Context(), record)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "failed to record donation", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type DonorHistoryEntry struct {
	domain.DonorHistorySummary
	Badge domain.Badge `json:"badge,omitempty"`
}

// History returns the per-donor aggregate with the reward tier derived
// from the donation count.
func (h *DonorHandler) History(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.donorService.HistorySummaries(r.Context())
	if err != nil {
		http.Error(w, "failed to aggregate history", http.StatusInternalServerError)
		return
	}

	entries := make([]DonorHistoryEntry, 0, len(summaries))
	for _, s := range summaries {
		entries = append(entries, DonorHistoryEntry{
			DonorHistorySummary: s,
			Badge:               domain.BadgeFor(s.TotalDonations),
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *DonorHandler) HistoryByEmail(w http.ResponseWriter, r *http.Request) {
	records, err := h.donorService.HistoryByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		http.Error(w, "failed to fetch history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *DonorHandler) FindDonor(w http.ResponseWriter, r *http.Request) {
	donationID := r.URL.Query().Get("donationId")
	records, err := h.donorService.FindByDonationID(r.Context(), donationID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			http.Error(w, "donationId is required", http.StatusBadRequest)
			return
		}
		http.Error(w, "lookup failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
