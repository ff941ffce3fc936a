package endpoints

import (
	"crm-console-backend/internal/database"
	"crm-console-backend/internal/dto"
	"crm-console-backend/internal/model"
	submissionservice "crm-console-backend/internal/service/submission"
	"crm-console-backend/internal/websocket"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type SubmissionEndpoints interface {
	Submissions(http.ResponseWriter, *http.Request) error
	Submission(http.ResponseWriter, *http.Request) error
}

type SubmissionPaths struct {
	SubmissionsPath  string
	SubmissionPrefix string
}

type submissionEndpoints struct {
	service *submissionservice.Service
	handler *websocket.Handler
	paths   SubmissionPaths
}

func NewSubmissionEndpoints(db *database.Database, handler *websocket.Handler, prefix string) SubmissionEndpoints {
	return NewSubmissionEndpointsWithService(submissionservice.New(db), handler, prefix)
}

func NewSubmissionEndpointsWithService(service *submissionservice.Service, handler *websocket.Handler, prefix string) SubmissionEndpoints {
	base := strings.TrimRight(prefix, "/")
	return &submissionEndpoints{
		service: service,
		handler: handler,
		paths: SubmissionPaths{
			SubmissionsPath:  base + "/submissions",
			SubmissionPrefix: base + "/submissions/",
		},
	}
}

func (h *submissionEndpoints) Submissions(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:  h.handleList,
		http.MethodPost: h.handleCreate,
	})
}

// Submission dispatches /submissions/{id} and its sub-resources, plus the
// /submissions/stats counters.
func (h *submissionEndpoints) Submission(w http.ResponseWriter, r *http.Request) error {
	id, action, err := h.extractSubmissionPath(r.URL.Path)
	if err != nil {
		return err
	}

	if id == "stats" && action == "" {
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodGet: h.handleStats,
		})
	}

	switch action {
	case "":
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodGet: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleGet(w, r, id)
			},
		})
	case "status":
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodPatch: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleUpdateStatus(w, r, id)
			},
		})
	case "assignee":
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodPost: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleAssign(w, r, id)
			},
			http.MethodDelete: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleUnassign(w, r, id)
			},
		})
	case "schedule":
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodPost: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleSchedule(w, r, id)
			},
		})
	case "verification":
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodPost: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleVerify(w, r, id)
			},
		})
	default:
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Submission not found",
			ErrorLog:   fmt.Errorf("unknown submission action: %s", action),
		}
	}
}

// handleList requires a staff token even though the collection route is
// open for intake POSTs, so the check happens here rather than in the
// router middleware.
func (h *submissionEndpoints) handleList(w http.ResponseWriter, r *http.Request) error {
	if _, err := identityFromRequest(r); err != nil {
		return err
	}

	query := r.URL.Query()
	filter := submissionservice.Filter{
		Type:     query.Get("type"),
		Search:   query.Get("search"),
		Status:   query.Get("status"),
		Assignee: query.Get("assignee"),
	}

	items, err := h.service.ListSubmissions(r.Context(), filter)
	if err != nil {
		return h.serviceError(err)
	}

	out := make([]dto.SubmissionResponse, len(items))
	for i, item := range items {
		out[i] = toSubmissionResponse(item)
	}

	return WriteJSON(w, http.StatusOK, dto.ListSubmissionsResponse{Submissions: out})
}

func (h *submissionEndpoints) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req dto.CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode create submission request: %w", err),
		}
	}

	var item model.SubmissionItem
	var err error

	switch model.SubmissionType(req.Type) {
	case model.SubmissionTypeInquiry:
		if req.Inquiry == nil {
			return missingPayloadError(req.Type)
		}
		item, err = h.service.CreateInquiry(r.Context(), submissionservice.CreateInquiryParams{
			CustomerName:  req.Inquiry.CustomerName,
			CustomerEmail: req.Inquiry.CustomerEmail,
			CustomerPhone: req.Inquiry.CustomerPhone,
			Country:       req.Inquiry.Country,
			Subject:       req.Inquiry.Subject,
			Message:       req.Inquiry.Message,
			ItemRef:       req.Inquiry.ItemRef,
			Price:         req.Inquiry.Price,
			Mileage:       req.Inquiry.Mileage,
			Category:      model.InquiryCategory(req.Inquiry.Category),
		})
	case model.SubmissionTypeSignup:
		if req.Signup == nil {
			return missingPayloadError(req.Type)
		}
		item, err = h.service.CreateSignup(r.Context(), submissionservice.CreateSignupParams{
			FirstName: req.Signup.FirstName,
			LastName:  req.Signup.LastName,
			Email:     req.Signup.Email,
			Phone:     req.Signup.Phone,
			Company:   req.Signup.Company,
			Country:   req.Signup.Country,
			City:      req.Signup.City,
			Source:    req.Signup.Source,
		})
	case model.SubmissionTypeOnboarding:
		if req.Onboarding == nil {
			return missingPayloadError(req.Type)
		}
		vehicles := make([]model.VehicleSpec, len(req.Onboarding.Vehicles))
		for i, v := range req.Onboarding.Vehicles {
			vehicles[i] = model.VehicleSpec{
				Make:     v.Make,
				Model:    v.Model,
				YearFrom: v.YearFrom,
				YearTo:   v.YearTo,
			}
		}
		item, err = h.service.CreateOnboarding(r.Context(), submissionservice.CreateOnboardingParams{
			CustomerName:  req.Onboarding.CustomerName,
			CustomerEmail: req.Onboarding.CustomerEmail,
			CustomerPhone: req.Onboarding.CustomerPhone,
			Country:       req.Onboarding.Country,
			Vehicles:      vehicles,
			Destination:   req.Onboarding.Destination,
			PreferCall:    req.Onboarding.PreferCall,
			PreferredDate: req.Onboarding.PreferredDate,
			PreferredTime: req.Onboarding.PreferredTime,
			Message:       req.Onboarding.Message,
		})
	default:
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Unknown submission type",
			ErrorLog:   fmt.Errorf("create submission: unknown type %q", req.Type),
		}
	}
	if err != nil {
		return h.serviceError(err)
	}

	h.broadcastEvent("submission.created", item)

	return WriteJSON(w, http.StatusCreated, toSubmissionResponse(item))
}

func (h *submissionEndpoints) handleStats(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		return h.serviceError(err)
	}

	byType := make(map[string]int, len(stats.ByType))
	for t, n := range stats.ByType {
		byType[string(t)] = n
	}

	return WriteJSON(w, http.StatusOK, dto.SubmissionStatsResponse{
		Total:             stats.Total,
		ByType:            byType,
		PendingAssignment: stats.PendingAssignment,
		AwaitingResponse:  stats.AwaitingResponse,
	})
}

func (h *submissionEndpoints) handleGet(w http.ResponseWriter, r *http.Request, id string) error {
	item, err := h.service.GetSubmission(r.Context(), id)
	if err != nil {
		return h.serviceError(err)
	}
	return WriteJSON(w, http.StatusOK, toSubmissionResponse(item))
}

func (h *submissionEndpoints) handleUpdateStatus(w http.ResponseWriter, r *http.Request, id string) error {
	var req dto.UpdateSubmissionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode status request: %w", err),
		}
	}

	item, err := h.service.UpdateStatus(r.Context(), id, model.SubmissionStatus(req.Status))
	if err != nil {
		return h.serviceError(err)
	}

	h.broadcastEvent("submission.updated", item)

	return WriteJSON(w, http.StatusOK, toSubmissionResponse(item))
}

func (h *submissionEndpoints) handleAssign(w http.ResponseWriter, r *http.Request, id string) error {
	var req dto.AssignSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode assign request: %w", err),
		}
	}

	identity, err := identityFromRequest(r)
	if err != nil {
		return err
	}

	item, err := h.service.AssignStaff(r.Context(), id, req.StaffID, identity.StaffID)
	if err != nil {
		return h.serviceError(err)
	}

	h.broadcastEvent("submission.updated", item)

	return WriteJSON(w, http.StatusOK, toSubmissionResponse(item))
}

func (h *submissionEndpoints) handleUnassign(w http.ResponseWriter, r *http.Request, id string) error {
	item, err := h.service.UnassignStaff(r.Context(), id)
	if err != nil {
		return h.serviceError(err)
	}

	h.broadcastEvent("submission.updated", item)

	return WriteJSON(w, http.StatusOK, toSubmissionResponse(item))
}

func (h *submissionEndpoints) handleSchedule(w http.ResponseWriter, r *http.Request, id string) error {
	var req dto.ScheduleOnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode schedule request: %w", err),
		}
	}

	item, err := h.service.ScheduleOnboarding(r.Context(), id, req.Date, req.Time)
	if err != nil {
		return h.serviceError(err)
	}

	h.broadcastEvent("submission.updated", item)

	return WriteJSON(w, http.StatusOK, toSubmissionResponse(item))
}

func (h *submissionEndpoints) handleVerify(w http.ResponseWriter, r *http.Request, id string) error {
	var req dto.VerifySignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode verification request: %w", err),
		}
	}

	item, err := h.service.VerifySignup(r.Context(), id, model.VerificationStatus(req.Status))
	if err != nil {
		return h.serviceError(err)
	}

	h.broadcastEvent("submission.updated", item)

	return WriteJSON(w, http.StatusOK, toSubmissionResponse(item))
}

func (h *submissionEndpoints) extractSubmissionPath(path string) (string, string, error) {
	trimmed := strings.TrimPrefix(path, h.paths.SubmissionPrefix)
	if trimmed == path {
		return "", "", &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Submission not found",
			ErrorLog:   fmt.Errorf("submission path mismatch: %s", path),
		}
	}

	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return "", "", &HTTPError{
				StatusCode: http.StatusNotFound,
				Message:    "Submission not found",
				ErrorLog:   fmt.Errorf("submission id missing: %s", path),
			}
		}
		return parts[0], "", nil
	case 2:
		return parts[0], parts[1], nil
	default:
		return "", "", &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Submission not found",
			ErrorLog:   fmt.Errorf("invalid submission path: %s", path),
		}
	}
}

func (h *submissionEndpoints) broadcastEvent(eventType string, item model.SubmissionItem) {
	payload := map[string]interface{}{
		"type":          eventType,
		"submission":    toSubmissionResponse(item),
		"broadcastedAt": time.Now().UTC().Format(time.RFC3339),
	}
	notifyInbox(h.handler, payload)
}

func missingPayloadError(subType string) error {
	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		Message:    "Missing submission payload",
		ErrorLog:   fmt.Errorf("create submission: %s payload missing", subType),
	}
}

func (h *submissionEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*submissionservice.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("submission service: %w", err),
		}
	}

	var logErr error
	if svcErr.Err != nil {
		logErr = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		logErr = svcErr
	}

	switch svcErr.Code {
	case submissionservice.ErrorCodeValidation:
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: svcErr.Message, ErrorLog: logErr}
	case submissionservice.ErrorCodeNotFound:
		return &HTTPError{StatusCode: http.StatusNotFound, Message: svcErr.Message, ErrorLog: logErr}
	case submissionservice.ErrorCodeConflict:
		return &HTTPError{StatusCode: http.StatusConflict, Message: svcErr.Message, ErrorLog: logErr}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal server error", ErrorLog: logErr}
	}
}

func toSubmissionResponse(item model.SubmissionItem) dto.SubmissionResponse {
	resp := dto.SubmissionResponse{
		SubmissionID:  item.SubmissionID,
		Number:        item.Number,
		Type:          string(item.Type),
		CustomerName:  item.CustomerName,
		CustomerEmail: item.CustomerEmail,
		CustomerPhone: item.CustomerPhone,
		Country:       item.Country,
		Subject:       item.Subject,
		Message:       item.Message,
		Status:        string(item.Status),
		DisplayStatus: string(model.ResolveDisplayStatus(item)),
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
		RespondedAt:   item.RespondedAt,
	}

	if item.Assignee != nil {
		resp.Assignee = &dto.AssigneePayload{
			StaffID:    item.Assignee.StaffID,
			Name:       item.Assignee.Name,
			AssignedBy: item.Assignee.AssignedBy,
			AssignedAt: item.Assignee.AssignedAt,
		}
	}

	if item.Inquiry != nil {
		resp.Inquiry = &dto.InquiryDetailsPayload{
			ItemRef:  item.Inquiry.ItemRef,
			Price:    item.Inquiry.Price,
			Mileage:  item.Inquiry.Mileage,
			Category: string(item.Inquiry.Category),
		}
	}

	if item.Signup != nil {
		resp.Signup = &dto.SignupDetailsPayload{
			FirstName:          item.Signup.FirstName,
			LastName:           item.Signup.LastName,
			Company:            item.Signup.Company,
			City:               item.Signup.City,
			Source:             item.Signup.Source,
			VerificationStatus: string(item.Signup.VerificationStatus),
		}
	}

	if item.Onboarding != nil {
		vehicles := make([]dto.VehicleSpecPayload, len(item.Onboarding.Vehicles))
		for i, v := range item.Onboarding.Vehicles {
			vehicles[i] = dto.VehicleSpecPayload{
				Make:     v.Make,
				Model:    v.Model,
				YearFrom: v.YearFrom,
				YearTo:   v.YearTo,
			}
		}
		resp.Onboarding = &dto.OnboardingDetailsPayload{
			Vehicles:      vehicles,
			Destination:   item.Onboarding.Destination,
			PreferCall:    item.Onboarding.PreferCall,
			PreferredDate: item.Onboarding.PreferredDate,
			PreferredTime: item.Onboarding.PreferredTime,
			ScheduledDate: item.Onboarding.ScheduledDate,
			ScheduledTime: item.Onboarding.ScheduledTime,
		}
	}

	return resp
}
