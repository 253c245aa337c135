package dashboard

import "context"

// DashboardService builds the home screen summary.
type DashboardService interface {
	// GetDashboard runs the six summary reads concurrently and joins them
	// into one response stamped with GeneratedAt. Any failed read fails the
	// whole call.
	GetDashboard(ctx context.Context) (*DashboardResponse, error)
}
