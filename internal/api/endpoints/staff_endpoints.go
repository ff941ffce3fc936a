package endpoints

import (
	"crm-console-backend/internal/database"
	"crm-console-backend/internal/dto"
	internaljwt "crm-console-backend/internal/jwt"
	"crm-console-backend/internal/model"
	staffservice "crm-console-backend/internal/service/staff"
	"encoding/json"
	"fmt"
	"net/http"
)

type StaffEndpoints interface {
	Register(http.ResponseWriter, *http.Request) error
	Login(http.ResponseWriter, *http.Request) error
	Refresh(http.ResponseWriter, *http.Request) error
	Me(http.ResponseWriter, *http.Request) error
	Staff(http.ResponseWriter, *http.Request) error
	Presence(http.ResponseWriter, *http.Request) error
}

type staffEndpoints struct {
	service *staffservice.Service
}

func NewStaffEndpoints(db *database.Database) StaffEndpoints {
	return &staffEndpoints{service: staffservice.New(db)}
}

func NewStaffEndpointsWithService(service *staffservice.Service) StaffEndpoints {
	return &staffEndpoints{service: service}
}

func (h *staffEndpoints) Register(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleRegister,
	})
}

func (h *staffEndpoints) Login(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleLogin,
	})
}

func (h *staffEndpoints) Refresh(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleRefresh,
	})
}

func (h *staffEndpoints) Me(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleMe,
	})
}

func (h *staffEndpoints) Staff(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleListStaff,
	})
}

func (h *staffEndpoints) Presence(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPatch: h.handleSetPresence,
	})
}

func (h *staffEndpoints) handleRegister(w http.ResponseWriter, r *http.Request) error {
	var req dto.RegisterStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode register request: %w", err),
		}
	}

	result, err := h.service.Register(r.Context(), staffservice.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, toAuthResponse(result))
}

func (h *staffEndpoints) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode login request: %w", err),
		}
	}

	result, err := h.service.Login(r.Context(), staffservice.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, toAuthResponse(result))
}

func (h *staffEndpoints) handleRefresh(w http.ResponseWriter, r *http.Request) error {
	var req dto.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode refresh request: %w", err),
		}
	}

	accessToken, err := internaljwt.RefreshToken(req.RefreshToken, internaljwt.RoleStaff)
	if err != nil {
		return &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Invalid refresh token",
			ErrorLog:   fmt.Errorf("refresh token: %w", err),
		}
	}

	return WriteJSON(w, http.StatusOK, dto.RefreshTokenResponse{AccessToken: accessToken})
}

func (h *staffEndpoints) handleMe(w http.ResponseWriter, r *http.Request) error {
	identity, err := identityFromRequest(r)
	if err != nil {
		return err
	}

	member, err := h.service.Profile(r.Context(), identity)
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.MeResponse{Staff: toStaffResponse(member)})
}

func (h *staffEndpoints) handleListStaff(w http.ResponseWriter, r *http.Request) error {
	members, err := h.service.ListStaff(r.Context())
	if err != nil {
		return h.serviceError(err)
	}

	out := make([]dto.StaffResponse, len(members))
	for i, member := range members {
		out[i] = toStaffResponse(member)
	}

	return WriteJSON(w, http.StatusOK, dto.ListStaffResponse{Staff: out})
}

func (h *staffEndpoints) handleSetPresence(w http.ResponseWriter, r *http.Request) error {
	identity, err := identityFromRequest(r)
	if err != nil {
		return err
	}

	var req dto.SetPresenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode presence request: %w", err),
		}
	}

	member, err := h.service.SetOnline(r.Context(), identity.StaffID, req.Online)
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, toStaffResponse(member))
}

// identityFromRequest reads the caller out of the bearer token. It doubles
// as the auth check on handlers whose route cannot sit behind the JWT
// middleware.
func identityFromRequest(r *http.Request) (staffservice.Identity, error) {
	token := ExtractTokenFromHeaders(r)
	if token == "" {
		return staffservice.Identity{}, &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Unauthorized",
			ErrorLog:   fmt.Errorf("missing bearer token"),
		}
	}

	claims, err := internaljwt.ParseToken(token, internaljwt.RoleStaff)
	if err != nil {
		return staffservice.Identity{}, &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Unauthorized",
			ErrorLog:   fmt.Errorf("parse token: %w", err),
		}
	}

	identity := staffservice.Identity{}
	if id, ok := claims["id"].(string); ok {
		identity.StaffID = id
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	return identity, nil
}

func (h *staffEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*staffservice.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("staff service: %w", err),
		}
	}

	var logErr error
	if svcErr.Err != nil {
		logErr = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		logErr = svcErr
	}

	switch svcErr.Code {
	case staffservice.ErrorCodeValidation:
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: svcErr.Message, ErrorLog: logErr}
	case staffservice.ErrorCodeUnauthorized:
		return &HTTPError{StatusCode: http.StatusUnauthorized, Message: svcErr.Message, ErrorLog: logErr}
	case staffservice.ErrorCodeNotFound:
		return &HTTPError{StatusCode: http.StatusNotFound, Message: svcErr.Message, ErrorLog: logErr}
	case staffservice.ErrorCodeConflict:
		return &HTTPError{StatusCode: http.StatusConflict, Message: svcErr.Message, ErrorLog: logErr}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal server error", ErrorLog: logErr}
	}
}

func toAuthResponse(result staffservice.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		Staff:        toStaffResponse(result.Staff),
	}
}

func toStaffResponse(member model.StaffItem) dto.StaffResponse {
	return dto.StaffResponse{
		StaffID:   member.StaffID,
		Email:     member.Email,
		FirstName: member.FirstName,
		LastName:  member.LastName,
		Name:      member.DisplayName(),
		Role:      member.Role,
		Online:    member.Online,
		CreatedAt: member.CreatedAt,
	}
}
