package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/muhammadMilon/BloodBridge/internal/core/domain"
	"github.com/muhammadMilon/BloodBridge/internal/core/ports"
)

const (
	statsCacheKey = "public-stats"
	statsCacheTTL = 30 * time.Second
)

// CachedStatsService recomputes the public counters from the current
// collections on every cache miss. The aggregation itself is pure; the
// Redis layer only bounds how often the database gets hit.
type CachedStatsService struct {
	userRepo     ports.UserRepository
	donationRepo ports.DonationRepository
	cache        ports.TokenCache
}

func NewCachedStatsService(
	userRepo ports.UserRepository,
	donationRepo ports.DonationRepository,
	cache ports.TokenCache,
) *CachedStatsService {
	return &CachedStatsService{
		userRepo:     userRepo,
		donationRepo: donationRepo,
		cache:        cache,
	}
}

var _ ports.StatsService = (*CachedStatsService)(nil)

func (s *CachedStatsService) PublicStats(ctx context.Context) (domain.PlatformStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats domain.PlatformStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return stats, nil
			}
		}
	}

	donors, err := s.userRepo.ListByRole(ctx, domain.RoleDonor)
	if err != nil {
		return domain.PlatformStats{}, err
	}
	requests, err := s.donationRepo.ListAll(ctx)
	if err != nil {
		return domain.PlatformStats{}, err
	}

	stats := domain.ComputeStats(donors, requests)

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				log.Printf("stats: failed to cache public stats: %v", err)
			}
		}
	}
	return stats, nil
}
