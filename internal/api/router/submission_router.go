package router

import (
	"crm-console-backend/internal/api"
	"crm-console-backend/internal/api/endpoints"
	"crm-console-backend/internal/api/middleware"
	"net/http"
)

func SubmissionRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		submissionEndpoints := endpoints.NewSubmissionEndpoints(s.Database(), s.Handler(), prefix)

		// Intake POSTs arrive from public forms, so the collection route
		// stays open; everything under an id is console-only.
		mux.HandleFunc(prefix+"/submissions", s.MakeHTTPHandleFunc(submissionEndpoints.Submissions))
		mux.HandleFunc(prefix+"/submissions/", s.MakeHTTPHandleFunc(submissionEndpoints.Submission, middleware.ValidateStaffJWT))
	}
}
