package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	app_errors "mediadeck/backend/internal/errors"
	"mediadeck/backend/internal/interfaces"
	"mediadeck/backend/internal/media"
	"mediadeck/backend/internal/model"
)

// MediaHandler handles HTTP requests for the media overview and resolver
// endpoints.
type MediaHandler struct {
	service interfaces.MediaService
}

func NewMediaHandler(svc interfaces.MediaService) *MediaHandler {
	return &MediaHandler{service: svc}
}

// QueryFilesRequest is the DTO for the filter/sort endpoint.
type QueryFilesRequest struct {
	Tab     string `json:"tab" validate:"omitempty,oneof=all image video audio other" example:"image"`
	Query   string `json:"query" example:"cat"`
	Mode    string `json:"mode" validate:"omitempty,oneof=all chat orphans" example:"orphans"`
	ChatID  string `json:"chat_id" example:"chat-42"`
	SortBy  string `json:"sort_by" validate:"omitempty,oneof=name type size updated" example:"size"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=asc desc" example:"desc"`
}

// QueryFilesResponse carries the narrowed file set plus the passthrough
// grouping contract consumers rely on.
type QueryFilesResponse struct {
	Files  []*model.File          `json:"files"`
	Total  int                    `json:"total"`
	Groups map[string]media.Group `json:"groups"`
}

// FileChatResponse reports a file's resolved owner. ChatID null means a
// confirmed orphan.
type FileChatResponse struct {
	FileID string      `json:"file_id"`
	ChatID *string     `json:"chat_id"`
	Chat   *model.Chat `json:"chat,omitempty"`
}

// FilePromptResponse reports a recovered prompt, if any.
type FilePromptResponse struct {
	FileID string  `json:"file_id"`
	Prompt *string `json:"prompt"`
	Found  bool    `json:"found"`
}

// DeleteFilesRequest is the DTO for the batch delete endpoint.
type DeleteFilesRequest struct {
	FileIDs []string `json:"file_ids" validate:"required,min=1,dive,required"`
}

// DeleteFilesResponse reports batch outcome; failures are data, not errors.
type DeleteFilesResponse struct {
	BatchID   string   `json:"batch_id"`
	Requested int      `json:"requested"`
	FailedIDs []string `json:"failed_ids"`
}

// GetOverview godoc
// @Summary      Fetch the media overview
// @Description  Returns files, chats and folders in one shot, with the derived file-to-chat association map and per-tab counts.
// @Tags         Media
// @Produce      json
// @Param        skip   query  int  false  "Pagination offset"
// @Param        limit  query  int  false  "Page size, 0 means no limit"
// @Success      200  {object}  media.OverviewResult
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse
// @Router       /v1/media/overview [get]
func (h *MediaHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		respondWithError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		respondWithError(w, err)
		return
	}

	overview, err := h.service.FetchOverview(r.Context(), skip, limit)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, overview)
}

// QueryFiles godoc
// @Summary      Filter and sort the current file set
// @Description  Applies tab, search, and chat-ownership filters, then sorts. Operates on the file set from the last overview fetch.
// @Tags         Media
// @Accept       json
// @Produce      json
// @Param        queryRequest  body  QueryFilesRequest  true  "Filter and sort options"
// @Success      200  {object}  QueryFilesResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/media/files/query [post]
func (h *MediaHandler) QueryFiles(w http.ResponseWriter, r *http.Request) {
	var req QueryFilesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	tab := media.TabAll
	if req.Tab != "" {
		tab = media.Tab(req.Tab)
	}
	mode := media.ModeAll
	if req.Mode != "" {
		mode = media.Mode(req.Mode)
	}
	sortBy := media.SortByUpdated
	if req.SortBy != "" {
		sortBy = media.SortKey(req.SortBy)
	}
	sortDir := media.SortDesc
	if req.SortDir != "" {
		sortDir = media.SortDir(req.SortDir)
	}

	files := h.service.QueryFiles(tab, req.Query, mode, req.ChatID, sortBy, sortDir)
	respondWithJSON(w, http.StatusOK, QueryFilesResponse{
		Files:  files,
		Total:  len(files),
		Groups: media.GroupFiles(files),
	})
}

// GetFileChat godoc
// @Summary      Resolve a file's owning chat
// @Description  Returns the cached association when present; otherwise checks metadata hints and falls back to a server-side text search. A null chat_id is a confirmed orphan.
// @Tags         Media
// @Produce      json
// @Param        fileID   path   string  true   "File ID"
// @Param        refresh  query  bool    false  "Drop the cached association and re-resolve"
// @Success      200  {object}  FileChatResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/media/files/{fileID}/chat [get]
func (h *MediaHandler) GetFileChat(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	if r.URL.Query().Get("refresh") == "true" {
		h.service.InvalidateFile(r.Context(), fileID)
	}

	chatID, err := h.service.ResolveFileChat(r.Context(), fileID)
	if err != nil {
		respondWithError(w, err)
		return
	}

	resp := FileChatResponse{FileID: fileID, ChatID: chatID}
	if chatID != nil {
		resp.Chat = h.service.ChatByID(*chatID)
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// GetFilePrompt godoc
// @Summary      Recover the prompt that produced a file
// @Description  Searches the user's chat history for the message that produced or referenced the file and walks its lineage to the originating prompt. Best effort; a null prompt means the search was exhausted.
// @Tags         Media
// @Produce      json
// @Param        fileID  path  string  true  "File ID"
// @Success      200  {object}  FilePromptResponse
// @Router       /v1/media/files/{fileID}/prompt [get]
func (h *MediaHandler) GetFilePrompt(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	prompt := h.service.FetchPrompt(r.Context(), fileID)
	respondWithJSON(w, http.StatusOK, FilePromptResponse{
		FileID: fileID,
		Prompt: prompt,
		Found:  prompt != nil,
	})
}

// DeleteFiles godoc
// @Summary      Delete files by id
// @Description  Deletes files one at a time, collecting per-item failures so partial success is reported instead of aborting the batch.
// @Tags         Media
// @Accept       json
// @Produce      json
// @Param        deleteRequest  body  DeleteFilesRequest  true  "File IDs to delete"
// @Success      200  {object}  DeleteFilesResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/media/files [delete]
func (h *MediaHandler) DeleteFiles(w http.ResponseWriter, r *http.Request) {
	var req DeleteFilesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	failed := h.service.DeleteFiles(r.Context(), req.FileIDs)
	respondWithJSON(w, http.StatusOK, DeleteFilesResponse{
		BatchID:   uuid.NewString(),
		Requested: len(req.FileIDs),
		FailedIDs: failed,
	})
}

// queryInt parses a non-negative integer query parameter with a default.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%w: parameter '%s' must be a non-negative integer", app_errors.ErrValidation, name)
	}
	return value, nil
}
