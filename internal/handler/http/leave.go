package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
)

type LeaveHandler interface {
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	UpdateRequest(w http.ResponseWriter, r *http.Request)
	DeleteRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	GetPending(w http.ResponseWriter, r *http.Request)
	GetStats(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// ListRequests handles GET /leave, narrowed to one employee by ?employee_id=
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	var (
		requests []leave.LeaveRequestWithEmployee
		err      error
	)

	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		employeeID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || employeeID <= 0 {
			response.HandleError(w, validator.FieldError("employee_id", "employee_id must be a positive integer"))
			return
		}
		requests, err = l.leaveService.GetByEmployeeID(r.Context(), employeeID)
	} else {
		requests, err = l.leaveService.List(r.Context())
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, leave.ToResponses(requests), &response.Meta{TotalItems: len(requests)})
}

// GetRequest handles GET /leave/{id}
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	request, err := l.leaveService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToResponse(request))
}

// CreateRequest handles POST /leave
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := l.leaveService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", leave.ToResponse(leave.LeaveRequestWithEmployee{LeaveRequest: created}))
}

// UpdateRequest handles PUT /leave/{id}
func (l *LeaveHandlerImpl) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.UpdateLeaveRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := l.leaveService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated", leave.ToResponse(leave.LeaveRequestWithEmployee{LeaveRequest: updated}))
}

// DeleteRequest handles DELETE /leave/{id}
func (l *LeaveHandlerImpl) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := l.leaveService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted", nil)
}

// approverID takes the body's approver_id, falling back to the token's employee.
func approverID(r *http.Request) (int64, error) {
	var req leave.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return 0, validator.FieldError("body", "invalid request format")
	}
	if req.ApproverID == 0 {
		if actor, ok := middleware.ActorEmployeeID(r.Context()); ok {
			req.ApproverID = actor
		}
	}
	if err := req.Validate(); err != nil {
		return 0, err
	}
	return req.ApproverID, nil
}

// ApproveRequest handles POST /leave/{id}/approve
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	l.decide(w, r, l.leaveService.Approve, "Leave request approved")
}

// RejectRequest handles POST /leave/{id}/reject
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	l.decide(w, r, l.leaveService.Reject, "Leave request rejected")
}

type decisionFunc func(ctx context.Context, id int64, approverID int64) (leave.LeaveRequest, error)

func (l *LeaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request, fn decisionFunc, message string) {
	id, err := urlID(r, "id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	approver, err := approverID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	decided, err := fn(r.Context(), id, approver)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, leave.ToResponse(leave.LeaveRequestWithEmployee{LeaveRequest: decided}))
}

// GetPending handles GET /leave/pending
func (l *LeaveHandlerImpl) GetPending(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.GetPendingRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, leave.ToResponses(requests), &response.Meta{TotalItems: len(requests)})
}

// GetStats handles GET /leave/stats
func (l *LeaveHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := l.leaveService.GetLeaveStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// GetBalance handles GET /leave/balance/{employeeID}
func (l *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := urlID(r, "employeeID")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	balance, err := l.leaveService.GetLeaveBalance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}
