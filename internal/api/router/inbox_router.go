package router

import (
	"crm-console-backend/internal/api"
	"crm-console-backend/internal/api/endpoints"
	"crm-console-backend/internal/api/middleware"
	"net/http"
)

func InboxRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		inboxEndpoints := endpoints.NewInboxEndpoints(s.Database(), s.Handler(), prefix)

		mux.HandleFunc(prefix+"/chats", s.MakeHTTPHandleFunc(inboxEndpoints.Chats, middleware.ValidateStaffJWT))
		mux.HandleFunc(prefix+"/chats/", s.MakeHTTPHandleFunc(inboxEndpoints.Chat, middleware.ValidateStaffJWT))
		mux.HandleFunc(prefix+"/labels", s.MakeHTTPHandleFunc(inboxEndpoints.Labels, middleware.ValidateStaffJWT))
	}
}

func InboxWebsocketRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		inboxEndpoints := endpoints.NewInboxEndpoints(s.Database(), s.Handler(), prefix)

		// Browsers cannot attach Authorization headers to websocket
		// upgrades, so the endpoint validates the token query parameter
		// itself.
		mux.HandleFunc(prefix+"/ws/inbox", s.MakeHTTPHandleFunc(inboxEndpoints.Websocket))
	}
}
