package router

import (
	"crm-console-backend/internal/api"
	"crm-console-backend/internal/api/endpoints"
	"crm-console-backend/internal/api/middleware"
	"net/http"
)

func StaffRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		staffEndpoints := endpoints.NewStaffEndpoints(s.Database())
		mux.HandleFunc(prefix+"/auth/register", s.MakeHTTPHandleFunc(staffEndpoints.Register))
		mux.HandleFunc(prefix+"/auth/login", s.MakeHTTPHandleFunc(staffEndpoints.Login))
		mux.HandleFunc(prefix+"/auth/refresh", s.MakeHTTPHandleFunc(staffEndpoints.Refresh))
		mux.HandleFunc(prefix+"/auth/me", s.MakeHTTPHandleFunc(staffEndpoints.Me, middleware.ValidateStaffJWT))
		mux.HandleFunc(prefix+"/staff", s.MakeHTTPHandleFunc(staffEndpoints.Staff, middleware.ValidateStaffJWT))
		mux.HandleFunc(prefix+"/staff/presence", s.MakeHTTPHandleFunc(staffEndpoints.Presence, middleware.ValidateStaffJWT))
	}
}
