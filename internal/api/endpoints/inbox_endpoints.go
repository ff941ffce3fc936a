package endpoints

import (
	"context"
	"crm-console-backend/internal/database"
	"crm-console-backend/internal/dto"
	internaljwt "crm-console-backend/internal/jwt"
	"crm-console-backend/internal/model"
	inboxservice "crm-console-backend/internal/service/inbox"
	"crm-console-backend/internal/websocket"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// InboxRoomID is the single websocket room all console sessions join for
// chat and submission events.
const InboxRoomID = "inbox"

type InboxEndpoints interface {
	Chats(http.ResponseWriter, *http.Request) error
	Chat(http.ResponseWriter, *http.Request) error
	Labels(http.ResponseWriter, *http.Request) error
	Websocket(http.ResponseWriter, *http.Request) error
}

type InboxPaths struct {
	ChatsPath  string
	ChatPrefix string
	LabelsPath string
}

type inboxEndpoints struct {
	service *inboxservice.Service
	handler *websocket.Handler
	paths   InboxPaths
}

func NewInboxEndpoints(db *database.Database, handler *websocket.Handler, prefix string) InboxEndpoints {
	return NewInboxEndpointsWithService(inboxservice.New(db), handler, prefix)
}

func NewInboxEndpointsWithService(service *inboxservice.Service, handler *websocket.Handler, prefix string) InboxEndpoints {
	base := strings.TrimRight(prefix, "/")
	return &inboxEndpoints{
		service: service,
		handler: handler,
		paths: InboxPaths{
			ChatsPath:  base + "/chats",
			ChatPrefix: base + "/chats/",
			LabelsPath: base + "/labels",
		},
	}
}

func (h *inboxEndpoints) Chats(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleListChats,
	})
}

// Chat dispatches /chats/{id} and its action sub-paths.
func (h *inboxEndpoints) Chat(w http.ResponseWriter, r *http.Request) error {
	id, action, err := h.extractChatPath(r.URL.Path)
	if err != nil {
		return err
	}

	switch action {
	case "":
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodGet: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleGetChat(w, r, id)
			},
		})
	case "archive":
		return h.handleTransition(w, r, id, h.service.ArchiveChat)
	case "unarchive":
		return h.handleTransition(w, r, id, h.service.UnarchiveChat)
	case "read":
		return h.handleTransition(w, r, id, h.service.MarkChatRead)
	case "unread":
		return h.handleTransition(w, r, id, h.service.MarkChatUnread)
	case "snooze":
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodPost: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleSnooze(w, r, id)
			},
		})
	case "snooze/cancel":
		return h.handleTransition(w, r, id, h.service.CancelChatSnooze)
	case "assignee":
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodPost: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleAssign(w, r, id)
			},
			http.MethodDelete: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleUnassign(w, r, id)
			},
		})
	case "labels":
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodPut: func(w http.ResponseWriter, r *http.Request) error {
				return h.handleSetLabels(w, r, id)
			},
		})
	default:
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Chat not found",
			ErrorLog:   fmt.Errorf("unknown chat action: %s", action),
		}
	}
}

func (h *inboxEndpoints) Labels(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:  h.handleListLabels,
		http.MethodPost: h.handleCreateLabel,
	})
}

func (h *inboxEndpoints) Websocket(w http.ResponseWriter, r *http.Request) error {
	if h.handler == nil {
		return &HTTPError{
			StatusCode: http.StatusServiceUnavailable,
			Message:    "Websocket not available",
			ErrorLog:   fmt.Errorf("inbox websocket handler missing"),
		}
	}

	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		token = ExtractTokenFromHeaders(r)
	}
	if token == "" {
		return &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Missing token",
			ErrorLog:   fmt.Errorf("inbox websocket missing token"),
		}
	}

	claims, err := internaljwt.ParseToken(token, internaljwt.RoleStaff)
	if err != nil {
		return &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Unauthorized",
			ErrorLog:   fmt.Errorf("inbox websocket token: %w", err),
		}
	}

	staffID, _ := claims["id"].(string)
	if staffID == "" {
		return &HTTPError{
			StatusCode: http.StatusUnauthorized,
			Message:    "Unauthorized",
			ErrorLog:   fmt.Errorf("inbox websocket token missing id claim"),
		}
	}

	h.handler.CreateRoom(InboxRoomID)
	h.handler.JoinRoom(w, r, InboxRoomID, staffID)
	return nil
}

func (h *inboxEndpoints) handleListChats(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()

	var labelIDs []string
	if raw := strings.TrimSpace(query.Get("labels")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				labelIDs = append(labelIDs, id)
			}
		}
	}

	filter := inboxservice.ChatFilter{
		Tab:        inboxservice.Tab(query.Get("tab")),
		Search:     query.Get("search"),
		LabelIDs:   labelIDs,
		Assignment: query.Get("assignee"),
	}

	chats, err := h.service.ListChats(r.Context(), filter)
	if err != nil {
		return h.serviceError(err)
	}

	now := time.Now()
	out := make([]dto.ChatResponse, len(chats))
	for i, chat := range chats {
		out[i] = toChatResponse(chat, now)
	}

	return WriteJSON(w, http.StatusOK, dto.ListChatsResponse{Chats: out})
}

func (h *inboxEndpoints) handleGetChat(w http.ResponseWriter, r *http.Request, id string) error {
	chat, err := h.service.GetChat(r.Context(), id)
	if err != nil {
		return h.serviceError(err)
	}
	return WriteJSON(w, http.StatusOK, toChatResponse(chat, time.Now()))
}

func (h *inboxEndpoints) handleTransition(
	w http.ResponseWriter,
	r *http.Request,
	id string,
	apply func(ctx context.Context, contactID string) (model.ChatItem, error),
) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: func(w http.ResponseWriter, r *http.Request) error {
			chat, err := apply(r.Context(), id)
			if err != nil {
				return h.serviceError(err)
			}
			h.broadcastChatEvent("chat.updated", chat)
			return WriteJSON(w, http.StatusOK, toChatResponse(chat, time.Now()))
		},
	})
}

func (h *inboxEndpoints) handleSnooze(w http.ResponseWriter, r *http.Request, id string) error {
	var req dto.SnoozeChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode snooze request: %w", err),
		}
	}

	chat, err := h.service.SnoozeChat(r.Context(), id, inboxservice.SnoozeParams{
		Preset: req.Preset,
		Date:   req.Date,
		Time:   req.Time,
	})
	if err != nil {
		return h.serviceError(err)
	}

	h.broadcastChatEvent("chat.updated", chat)

	return WriteJSON(w, http.StatusOK, toChatResponse(chat, time.Now()))
}

func (h *inboxEndpoints) handleAssign(w http.ResponseWriter, r *http.Request, id string) error {
	var req dto.AssignChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode assign chat request: %w", err),
		}
	}

	identity, err := identityFromRequest(r)
	if err != nil {
		return err
	}

	chat, err := h.service.AssignChat(r.Context(), id, req.StaffID, identity.StaffID)
	if err != nil {
		return h.serviceError(err)
	}

	h.broadcastChatEvent("chat.updated", chat)

	return WriteJSON(w, http.StatusOK, toChatResponse(chat, time.Now()))
}

func (h *inboxEndpoints) handleUnassign(w http.ResponseWriter, r *http.Request, id string) error {
	chat, err := h.service.UnassignChat(r.Context(), id)
	if err != nil {
		return h.serviceError(err)
	}

	h.broadcastChatEvent("chat.updated", chat)

	return WriteJSON(w, http.StatusOK, toChatResponse(chat, time.Now()))
}

func (h *inboxEndpoints) handleSetLabels(w http.ResponseWriter, r *http.Request, id string) error {
	var req dto.SetChatLabelsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode labels request: %w", err),
		}
	}

	chat, err := h.service.SetChatLabels(r.Context(), id, req.LabelIDs)
	if err != nil {
		return h.serviceError(err)
	}

	h.broadcastChatEvent("chat.updated", chat)

	return WriteJSON(w, http.StatusOK, toChatResponse(chat, time.Now()))
}

func (h *inboxEndpoints) handleListLabels(w http.ResponseWriter, r *http.Request) error {
	labels, err := h.service.ListLabels(r.Context())
	if err != nil {
		return h.serviceError(err)
	}

	out := make([]dto.LabelResponse, len(labels))
	for i, label := range labels {
		out[i] = toLabelResponse(label)
	}

	return WriteJSON(w, http.StatusOK, dto.ListLabelsResponse{Labels: out})
}

func (h *inboxEndpoints) handleCreateLabel(w http.ResponseWriter, r *http.Request) error {
	var req dto.CreateLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode create label request: %w", err),
		}
	}

	label, err := h.service.CreateLabel(r.Context(), req.Name, model.LabelColor(req.Color))
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, toLabelResponse(label))
}

func (h *inboxEndpoints) extractChatPath(path string) (string, string, error) {
	trimmed := strings.TrimPrefix(path, h.paths.ChatPrefix)
	if trimmed == path {
		return "", "", &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Chat not found",
			ErrorLog:   fmt.Errorf("chat path mismatch: %s", path),
		}
	}

	parts := strings.SplitN(strings.Trim(trimmed, "/"), "/", 2)
	if parts[0] == "" {
		return "", "", &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Chat not found",
			ErrorLog:   fmt.Errorf("chat id missing: %s", path),
		}
	}
	if len(parts) == 1 {
		return parts[0], "", nil
	}
	return parts[0], parts[1], nil
}

func (h *inboxEndpoints) broadcastChatEvent(eventType string, chat model.ChatItem) {
	payload := map[string]interface{}{
		"type":          eventType,
		"chat":          toChatResponse(chat, time.Now()),
		"broadcastedAt": time.Now().UTC().Format(time.RFC3339),
	}
	notifyInbox(h.handler, payload)
}

// notifyInbox fans an event out through the Redis publisher and the local
// hub so every server instance delivers it to its connected sessions.
func notifyInbox(handler *websocket.Handler, payload interface{}) {
	if err := websocket.Publish(InboxRoomID, payload); err != nil {
		fmt.Printf("failed to publish websocket payload for room %s: %v\n", InboxRoomID, err)
	}

	if handler != nil {
		handler.NotifyRoom(InboxRoomID, payload)
	}
}

func (h *inboxEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*inboxservice.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("inbox service: %w", err),
		}
	}

	var logErr error
	if svcErr.Err != nil {
		logErr = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		logErr = svcErr
	}

	switch svcErr.Code {
	case inboxservice.ErrorCodeValidation:
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: svcErr.Message, ErrorLog: logErr}
	case inboxservice.ErrorCodeNotFound:
		return &HTTPError{StatusCode: http.StatusNotFound, Message: svcErr.Message, ErrorLog: logErr}
	case inboxservice.ErrorCodeConflict:
		return &HTTPError{StatusCode: http.StatusConflict, Message: svcErr.Message, ErrorLog: logErr}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal server error", ErrorLog: logErr}
	}
}

func toChatResponse(chat model.ChatItem, now time.Time) dto.ChatResponse {
	resp := dto.ChatResponse{
		ContactID:     chat.ContactID,
		ContactName:   chat.ContactName,
		ContactNumber: chat.ContactNumber,
		AvatarURL:     chat.AvatarURL,
		LastMessage:   chat.LastMessage,
		LastMessageAt: chat.LastMessageAt,
		Unread:        chat.Unread,
		Bucket:        string(inboxservice.Bucket(chat, now)),
		LabelIDs:      chat.LabelIDs,
		CreatedAt:     chat.CreatedAt,
		UpdatedAt:     chat.UpdatedAt,
	}
	if resp.LabelIDs == nil {
		resp.LabelIDs = []string{}
	}

	if chat.Snooze != nil {
		resp.Snooze = &dto.SnoozePayload{
			Preset:   string(chat.Snooze.Preset),
			ReturnAt: chat.Snooze.ReturnAt,
		}
	}

	if chat.Assignment != nil {
		resp.Assignment = &dto.ChatAssignmentPayload{
			AssignedTo: dto.StaffRefPayload{
				StaffID: chat.Assignment.AssignedTo.StaffID,
				Name:    chat.Assignment.AssignedTo.Name,
			},
			AssignedBy: dto.StaffRefPayload{
				StaffID: chat.Assignment.AssignedBy.StaffID,
				Name:    chat.Assignment.AssignedBy.Name,
			},
			AssignedAt: chat.Assignment.AssignedAt,
		}
	}

	return resp
}

func toLabelResponse(label model.LabelItem) dto.LabelResponse {
	return dto.LabelResponse{
		LabelID:   label.LabelID,
		Name:      label.Name,
		Color:     string(label.Color),
		CreatedAt: label.CreatedAt,
	}
}
