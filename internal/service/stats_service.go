package service

import (
	"context"

	"github.com/cybervibe/helpdesk/internal/domain"
)

// DashboardStats aggregates the caller's visible ticket set.
type DashboardStats struct {
	Total      int
	Open       int
	Closed     int
	ByPriority map[domain.TicketPriority]int
	ByCategory map[string]int
}

// StatsService computes dashboard aggregates over the ticket gateway, so the
// numbers always respect the caller's visibility scope.
type StatsService struct {
	tickets *TicketService
}

// NewStatsService constructs the service.
func NewStatsService(tickets *TicketService) *StatsService {
	return &StatsService{tickets: tickets}
}

// Dashboard returns counts by status, priority and category for the caller's
// visible tickets.
func (s *StatsService) Dashboard(ctx context.Context, callerID string, isAdmin bool) DashboardStats {
	tickets := s.tickets.List(ctx, callerID, isAdmin)

	stats := DashboardStats{
		Total:      len(tickets),
		ByPriority: make(map[domain.TicketPriority]int),
		ByCategory: make(map[string]int),
	}
	for _, t := range tickets {
		switch t.RequestStatus {
		case domain.TicketStatusClosed:
			stats.Closed++
		default:
			stats.Open++
		}
		stats.ByPriority[t.Priority]++
		if t.IssueCategory != "" {
			stats.ByCategory[t.IssueCategory]++
		}
	}
	return stats
}
