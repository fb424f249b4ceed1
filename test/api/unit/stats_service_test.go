package unit

import (
	"context"
	"testing"
	"time"

	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
	"github.com/muhammadMilon/BloodBridge/internal/core/services"
	"github.com/muhammadMilon/BloodBridge/test/mocks"
)

func seedStatsFixtures(userRepo *mocks.MockUserRepository, donationRepo *mocks.MockDonationRepository) {
	active := mocks.CreateTestDonor("active@example.com", domain.BloodOPositive)
	userRepo.SeedUser(active)

	blocked := mocks.CreateTestDonor("blocked@example.com", domain.BloodAPositive)
	blocked.Status = domain.StatusBlocked
	userRepo.SeedUser(blocked)

	receiver := mocks.CreateTestDonor("receiver@example.com", domain.BloodBPositive)
	receiver.Role = domain.RoleReceiver
	userRepo.SeedUser(receiver)

	done := mocks.CreateTestRequest("req-done", "a@example.com", domain.BloodOPositive)
	done.DonationStatus = domain.DonationDone
	donationRepo.SeedRequest(done)

	donationRepo.SeedRequest(mocks.CreateTestRequest("req-pending", "b@example.com", domain.BloodOPositive))
}

func TestCachedStatsService_ComputesOnMiss(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	donationRepo := mocks.NewMockDonationRepository()
	cache := mocks.NewMockRedisClient()
	seedStatsFixtures(userRepo, donationRepo)

	service := services.NewCachedStatsService(userRepo, donationRepo, cache)

	stats, err := service.PublicStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalDonors != 2 {
		t.Errorf("TotalDonors = %d, want 2", stats.TotalDonors)
	}
	if stats.ActiveDonors != 1 {
		t.Errorf("ActiveDonors = %d, want 1", stats.ActiveDonors)
	}
	if stats.TotalRequests != 2 {
		t.Errorf("TotalRequests = %d, want 2", stats.TotalRequests)
	}
	if stats.CompletedRequests != 1 {
		t.Errorf("CompletedRequests = %d, want 1", stats.CompletedRequests)
	}

	// A successful computation populates the cache.
	if !cache.HasKey("public-stats") {
		t.Error("expected stats to be cached after a miss")
	}
}

func TestCachedStatsService_ServesFromCache(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	donationRepo := mocks.NewMockDonationRepository()
	cache := mocks.NewMockRedisClient()

	cache.SetKey("public-stats", `{"totalDonors":99,"activeDonors":42,"totalRequests":7,"completedRequests":3}`, 30*time.Second)

	service := services.NewCachedStatsService(userRepo, donationRepo, cache)

	stats, err := service.PublicStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalDonors != 99 || stats.ActiveDonors != 42 {
		t.Errorf("expected cached counters, got %+v", stats)
	}
	if len(userRepo.ListByRoleCalls) != 0 {
		t.Error("cache hit must not touch the database")
	}
}

func TestCachedStatsService_CacheFailureFallsThrough(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	donationRepo := mocks.NewMockDonationRepository()
	cache := mocks.NewMockRedisClient()
	cache.GetError = context.DeadlineExceeded
	cache.SetError = context.DeadlineExceeded
	seedStatsFixtures(userRepo, donationRepo)

	service := services.NewCachedStatsService(userRepo, donationRepo, cache)

	// A broken cache degrades to a direct computation, never an error.
	stats, err := service.PublicStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalDonors != 2 {
		t.Errorf("TotalDonors = %d, want 2", stats.TotalDonors)
	}
}

func TestCachedStatsService_DatabaseErrorPropagates(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	donationRepo := mocks.NewMockDonationRepository()
	cache := mocks.NewMockRedisClient()
	userRepo.ListByRoleError = context.DeadlineExceeded

	service := services.NewCachedStatsService(userRepo, donationRepo, cache)

	if _, err := service.PublicStats(context.Background()); err == nil {
		t.Fatal("expected error when donor listing fails")
	}
}
