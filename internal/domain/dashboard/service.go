package dashboard

import "context"

type DashboardService interface {
	// GetDashboard builds today's headline numbers and listings
	GetDashboard(ctx context.Context) (DashboardResponse, error)
}
