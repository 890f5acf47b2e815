package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lfpcrew/lfp-admin/internal/repository"
)

type DashboardStats struct {
	Members int64 `json:"members"`
	Cars    int64 `json:"cars"`
	Events  int64 `json:"events"`
	Users   int64 `json:"users"`
}

type StatsService struct {
	members repository.MemberRepository
	cars    repository.CarRepository
	events  repository.EventRepository
	users   repository.UserRepository
}

func NewStatsService(members repository.MemberRepository, cars repository.CarRepository, events repository.EventRepository, users repository.UserRepository) *StatsService {
	return &StatsService{members: members, cars: cars, events: events, users: users}
}

// Dashboard counts active rows of each kind concurrently.
func (s *StatsService) Dashboard(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { stats.Members, err = s.members.CountActive(gctx); return })
	g.Go(func() (err error) { stats.Cars, err = s.cars.CountActive(gctx); return })
	g.Go(func() (err error) { stats.Events, err = s.events.CountActive(gctx); return })
	g.Go(func() (err error) { stats.Users, err = s.users.CountActive(gctx); return })
	if err := g.Wait(); err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}
