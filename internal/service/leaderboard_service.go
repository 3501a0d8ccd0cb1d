package service

import (
	"context"
	"sort"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// leaderboardSize caps every ranked list.
const leaderboardSize = 3

// LeaderboardEntry is one ranked user with their metric total.
type LeaderboardEntry struct {
	Username string
	Total    float64
}

// Leaderboard holds the three independent rankings for a period. A user
// may rank differently (or not at all) per metric.
type Leaderboard struct {
	Period   domain.TimePeriod
	Calories []LeaderboardEntry
	Distance []LeaderboardEntry
	Duration []LeaderboardEntry
}

// LeaderboardService ranks users by aggregated metrics over a period.
type LeaderboardService interface {
	Leaderboard(ctx context.Context, period domain.TimePeriod) (*Leaderboard, error)
}

// --- Service Implementation ---

type leaderboardService struct {
	activityRepo repository.ActivityRepository
	userRepo     repository.UserRepository
	now          func() time.Time
}

// NewLeaderboardService creates a new instance of leaderboardService.
func NewLeaderboardService(activityRepo repository.ActivityRepository, userRepo repository.UserRepository) LeaderboardService {
	return &leaderboardService{
		activityRepo: activityRepo,
		userRepo:     userRepo,
		now:          time.Now,
	}
}

// userTotals accumulates the three metric sums for one user during the
// activity scan.
type userTotals struct {
	userID   primitive.ObjectID
	calories float64
	distance float64
	duration float64
}

// Leaderboard scans all activities in the period window, groups them by
// owner and ranks the top 3 per metric.
//
// Tie-break: the repository returns activities in creation-time
// ascending order and the sort is stable, so users with equal totals
// keep the order in which they first appeared in the scan.
func (s *leaderboardService) Leaderboard(ctx context.Context, period domain.TimePeriod) (*Leaderboard, error) {
	if !period.IsValid() {
		return nil, ErrInvalidPeriod
	}

	since := period.WindowStart(s.now().UTC())
	activities, err := s.activityRepo.GetAllSince(ctx, since)
	if err != nil {
		return nil, err
	}

	totalsByUser := make(map[primitive.ObjectID]*userTotals)
	order := make([]*userTotals, 0) // first-seen order, the tie-break base
	for i := range activities {
		a := &activities[i]
		totals, ok := totalsByUser[a.UserID]
		if !ok {
			totals = &userTotals{userID: a.UserID}
			totalsByUser[a.UserID] = totals
			order = append(order, totals)
		}
		totals.calories += float64(a.CaloriesBurned)
		totals.duration += float64(a.Duration)
		if a.Distance != nil {
			totals.distance += *a.Distance
		}
	}

	caloriesTop := rank(order, func(t *userTotals) float64 { return t.calories })
	distanceTop := rank(order, func(t *userTotals) float64 { return t.distance })
	durationTop := rank(order, func(t *userTotals) float64 { return t.duration })

	usernames, err := s.resolveUsernames(ctx, caloriesTop, distanceTop, durationTop)
	if err != nil {
		return nil, err
	}

	return &Leaderboard{
		Period:   period,
		Calories: entries(caloriesTop, func(t *userTotals) float64 { return t.calories }, usernames),
		Distance: entries(distanceTop, func(t *userTotals) float64 { return t.distance }, usernames),
		Duration: entries(durationTop, func(t *userTotals) float64 { return t.duration }, usernames),
	}, nil
}

// rank sorts a copy of the scan order descending by one metric (stable,
// preserving first-seen order on ties) and truncates to the top 3.
func rank(order []*userTotals, metric func(*userTotals) float64) []*userTotals {
	ranked := make([]*userTotals, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return metric(ranked[i]) > metric(ranked[j])
	})
	if len(ranked) > leaderboardSize {
		ranked = ranked[:leaderboardSize]
	}
	return ranked
}

func (s *leaderboardService) resolveUsernames(ctx context.Context, rankings ...[]*userTotals) (map[primitive.ObjectID]string, error) {
	seen := make(map[primitive.ObjectID]bool)
	ids := make([]primitive.ObjectID, 0)
	for _, ranking := range rankings {
		for _, t := range ranking {
			if !seen[t.userID] {
				seen[t.userID] = true
				ids = append(ids, t.userID)
			}
		}
	}

	if len(ids) == 0 {
		return map[primitive.ObjectID]string{}, nil
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	usernames := make(map[primitive.ObjectID]string, len(users))
	for i := range users {
		usernames[users[i].ID] = users[i].Username
	}
	return usernames, nil
}

func entries(ranked []*userTotals, metric func(*userTotals) float64, usernames map[primitive.ObjectID]string) []LeaderboardEntry {
	result := make([]LeaderboardEntry, 0, len(ranked))
	for _, t := range ranked {
		username, ok := usernames[t.userID]
		if !ok {
			// Owner record gone between scan and lookup; fall back to the ID.
			username = t.userID.Hex()
		}
		result = append(result, LeaderboardEntry{Username: username, Total: metric(t)})
	}
	return result
}
