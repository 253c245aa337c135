package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard writes the home screen summary for the current business day
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /api/v1/dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
