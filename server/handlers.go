package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"urbangpt/engine"
	"urbangpt/storage"
)

type turnRequest struct {
	Message                     string            `json:"message"`
	OriginalConversationHistory []storage.Message `json:"originalConversationHistory"`
	ChatID                      string            `json:"chatId"`
}

type turnFunc func(ctx context.Context, req engine.TurnRequest) (*engine.TurnReply, error)

// handleTurn adapts an engine turn to HTTP. Engine errors mean the store
// itself failed; the client still gets the standard failure reply rather
// than a bare 5xx, so the chat UI renders something.
func (s *Server) handleTurn(turn turnFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req turnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.ChatID == "" {
			http.Error(w, "chatId is required", http.StatusBadRequest)
			return
		}

		reply, err := turn(r.Context(), engine.TurnRequest{
			Message: req.Message,
			History: req.OriginalConversationHistory,
			ChatID:  req.ChatID,
		})
		if err != nil {
			s.log.Errorf("turn on chat %s failed: %v", req.ChatID, err)
			writeJSON(w, http.StatusOK, engine.TurnReply{Reply: engine.MsgFailed})
			return
		}
		writeJSON(w, http.StatusOK, reply)
	}
}

func (s *Server) handleCreateChat(w http.ResponseWriter, r *http.Request) {
	chat, err := s.store.CreateChat(userID(r))
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, chat)
}

func (s *Server) handleListChats(w http.ResponseWriter, r *http.Request) {
	chats, err := s.store.ListChats(userID(r))
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	chat, err := s.store.GetChat(chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "chat not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

type createProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	project, err := s.store.CreateProject(userID(r), req.Title, req.Description)
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(userID(r))
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteProject(chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListStages(w http.ResponseWriter, r *http.Request) {
	stages, err := s.store.ListStages(chi.URLParam(r, "id"))
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stages)
}

type attachChatRequest struct {
	ChatID string `json:"chatId"`
}

func (s *Server) handleAttachChat(w http.ResponseWriter, r *http.Request) {
	var req attachChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	err := s.store.AttachChatToStage(chi.URLParam(r, "id"), req.ChatID)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "stage not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type stageStatusRequest struct {
	Status int `json:"status"`
}

func (s *Server) handleStageStatus(w http.ResponseWriter, r *http.Request) {
	var req stageStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	err := s.store.UpdateStageStatus(chi.URLParam(r, "id"), req.Status)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "stage not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.log.Errorf("request failed: %v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
