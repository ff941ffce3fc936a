package staff

import (
	"context"
	"errors"
	"strings"
	"time"

	"crm-console-backend/internal/database"
	internaljwt "crm-console-backend/internal/jwt"
	"crm-console-backend/internal/model"

	"github.com/google/uuid"
)

const defaultRole = "agent"

type Service struct {
	repo Repository
	now  func() time.Time
}

var createTokenWithRefresh = internaljwt.CreateTokenWithRefresh

// SetTokenIssuer swaps the token issuing function, used by tests to avoid
// the Redis-backed refresh store. Passing nil restores the default.
func SetTokenIssuer(issuer func(internaljwt.Staff, internaljwt.Role, int64) (internaljwt.TokenResponse, error)) {
	if issuer == nil {
		createTokenWithRefresh = internaljwt.CreateTokenWithRefresh
		return
	}
	createTokenWithRefresh = issuer
}

func New(db *database.Database) *Service {
	return &Service{
		repo: NewDynamoRepository(db),
		now:  time.Now,
	}
}

func NewWithRepository(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{
		repo: repo,
		now:  now,
	}
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (AuthResult, error) {
	email := normalizeEmail(params.Email)
	password := strings.TrimSpace(params.Password)
	firstName := strings.TrimSpace(params.FirstName)
	lastName := strings.TrimSpace(params.LastName)

	if email == "" || password == "" || firstName == "" || lastName == "" {
		return AuthResult{}, newError(ErrorCodeValidation, "missing required fields", nil)
	}

	if _, err := s.repo.FindStaffByEmail(ctx, email); err == nil {
		return AuthResult{}, newError(ErrorCodeConflict, "email already registered", nil)
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to check email", err)
	}

	role := strings.TrimSpace(params.Role)
	if role == "" {
		role = defaultRole
	}

	jwtStaff, err := internaljwt.NewStaff(internaljwt.RegisterStaff{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to prepare staff member", err)
	}
	jwtStaff.Id = uuid.NewString()

	member := model.StaffItem{
		StaffID:      jwtStaff.Id,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		PasswordHash: jwtStaff.PasswordHash,
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.CreateStaff(ctx, member); err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to save staff member", err)
	}

	tokens, err := createTokenWithRefresh(jwtStaff, internaljwt.RoleStaff, 0)
	if err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to issue tokens", err)
	}

	return AuthResult{Staff: member, Tokens: tokens}, nil
}

func (s *Service) Login(ctx context.Context, params LoginParams) (AuthResult, error) {
	email := normalizeEmail(params.Email)
	password := strings.TrimSpace(params.Password)

	if email == "" || password == "" {
		return AuthResult{}, newError(ErrorCodeValidation, "missing required fields", nil)
	}

	member, err := s.repo.FindStaffByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, newError(ErrorCodeUnauthorized, "invalid credentials", nil)
		}
		return AuthResult{}, newError(ErrorCodeInternal, "failed to load staff member", err)
	}

	if !internaljwt.ValidatePassword(member.PasswordHash, password) {
		return AuthResult{}, newError(ErrorCodeUnauthorized, "invalid credentials", nil)
	}

	jwtStaff := internaljwt.Staff{
		Id:           member.StaffID,
		Email:        member.Email,
		PasswordHash: member.PasswordHash,
	}

	tokens, err := createTokenWithRefresh(jwtStaff, internaljwt.RoleStaff, 0)
	if err != nil {
		return AuthResult{}, newError(ErrorCodeInternal, "failed to issue tokens", err)
	}

	return AuthResult{Staff: member, Tokens: tokens}, nil
}

// Profile resolves the caller's own record from a verified identity.
func (s *Service) Profile(ctx context.Context, identity Identity) (model.StaffItem, error) {
	staffID := strings.TrimSpace(identity.StaffID)
	if staffID == "" {
		return model.StaffItem{}, newError(ErrorCodeUnauthorized, "invalid identity", nil)
	}

	member, err := s.repo.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.StaffItem{}, newError(ErrorCodeUnauthorized, "staff member not found", err)
		}
		return model.StaffItem{}, newError(ErrorCodeInternal, "failed to load staff member", err)
	}

	return member, nil
}

func (s *Service) GetStaff(ctx context.Context, staffID string) (model.StaffItem, error) {
	member, err := s.repo.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.StaffItem{}, newError(ErrorCodeNotFound, "staff member not found", err)
		}
		return model.StaffItem{}, newError(ErrorCodeInternal, "failed to load staff member", err)
	}
	return member, nil
}

// ListStaff returns the directory ordered by display name.
func (s *Service) ListStaff(ctx context.Context) ([]model.StaffItem, error) {
	members, err := s.repo.ListStaff(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list staff", err)
	}
	return members, nil
}

// SetOnline flips the presence flag for the member.
func (s *Service) SetOnline(ctx context.Context, staffID string, online bool) (model.StaffItem, error) {
	member, err := s.GetStaff(ctx, staffID)
	if err != nil {
		return model.StaffItem{}, err
	}

	member.Online = online

	if err := s.repo.PutStaff(ctx, member); err != nil {
		return model.StaffItem{}, newError(ErrorCodeInternal, "failed to save presence", err)
	}
	return member, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
