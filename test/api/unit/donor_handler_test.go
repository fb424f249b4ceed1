package unit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/muhammadMilon/BloodBridge/internal/adapters/handler"
	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
	"github.com/muhammadMilon/BloodBridge/internal/core/services"
	"github.com/muhammadMilon/BloodBridge/test/mocks"
)

func newDonorHandler(userRepo *mocks.MockUserRepository, historyRepo *mocks.MockDonorHistoryRepository) *handler.DonorHandler {
	return handler.NewDonorHandler(services.NewDonorService(userRepo, historyRepo))
}

func TestDonorHandler_Search(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.SeedUser(mocks.CreateTestDonor("match@example.com", domain.BloodOPositive))
	userRepo.SeedUser(mocks.CreateTestDonor("other@example.com", domain.BloodANegative))

	h := newDonorHandler(userRepo, mocks.NewMockDonorHistoryRepository())

	req := httptest.NewRequest("GET", "/search-donors?bloodGroup=O%2B&district=Dhaka", nil)
	rec := httptest.NewRecorder()

	h.Search(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var results []struct {
		Email       string                   `json:"email"`
		Eligibility domain.EligibilityResult `json:"eligibility"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&results); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(results) != 1 || results[0].Email != "match@example.com" {
		t.Errorf("unexpected search results: %+v", results)
	}
	if !results[0].Eligibility.Eligible {
		t.Error("expected matching donor to be flagged eligible")
	}
}

func TestDonorHandler_History_Badges(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	historyRepo := mocks.NewMockDonorHistoryRepository()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := func(email string, count int) {
		for i := 0; i < count; i++ {
			historyRepo.SeedRecord(domain.DonorHistoryRecord{
				DonorEmail: email,
				CreatedAt:  base.AddDate(0, i, 0),
			})
		}
	}
	seed("gold@example.com", 6)
	seed("silver@example.com", 3)
	seed("bronze@example.com", 1)

	h := newDonorHandler(userRepo, historyRepo)

	req := httptest.NewRequest("GET", "/donor-history", nil)
	rec := httptest.NewRecorder()

	h.History(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var entries []struct {
		DonorEmail     string `json:"donorEmail"`
		TotalDonations int    `json:"totalDonations"`
		Badge          string `json:"badge"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	wantBadges := map[string]string{
		"gold@example.com":   "Gold",
		"silver@example.com": "Silver",
		"bronze@example.com": "Bronze",
	}
	if len(entries) != len(wantBadges) {
		t.Fatalf("expected %d entries, got %d", len(wantBadges), len(entries))
	}
	for _, e := range entries {
		if want := wantBadges[e.DonorEmail]; e.Badge != want {
			t.Errorf("%s badge = %q, want %q", e.DonorEmail, e.Badge, want)
		}
	}
}

func TestDonorHandler_FindDonor(t *testing.T) {
	historyRepo := mocks.NewMockDonorHistoryRepository()
	historyRepo.SeedRecord(domain.DonorHistoryRecord{
		DonorEmail: "donor@example.com",
		DonationID: "req-7",
	})

	h := newDonorHandler(mocks.NewMockUserRepository(), historyRepo)

	req := httptest.NewRequest("GET", "/find-donor?donationId=req-7", nil)
	rec := httptest.NewRecorder()

	h.FindDonor(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var records []domain.DonorHistoryRecord
	if err := json.NewDecoder(rec.Body).Decode(&records); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(records) != 1 || records[0].DonorEmail != "donor@example.com" {
		t.Errorf("unexpected records: %+v", records)
	}

	// Missing donationId is a client error.
	req = httptest.NewRequest("GET", "/find-donor", nil)
	rec = httptest.NewRecorder()
	h.FindDonor(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing donationId status = %d, want 400", rec.Code)
	}
}
