package media

import (
	"context"
	"log/slog"
	"sync"

	app_errors "mediadeck/backend/internal/errors"
	"mediadeck/backend/internal/metrics"
	"mediadeck/backend/internal/model"
	"mediadeck/backend/internal/repository"
	"mediadeck/backend/internal/upstream"
)

// orphanSentinel is the backend's explicit "no owning chat" marker in file
// metadata. It maps to a nil association, never to the literal string.
const orphanSentinel = "orphan"

// defaultScanLimit bounds the prompt search when no limit is configured.
const defaultScanLimit = 100

// Service is the media reconciliation core: it fetches the bulk overview,
// resolves file->chat associations and recovers prompts, maintaining the
// session-scoped caches. The association map, chat index and prompt cache are
// mutated in place across calls; entries are never invalidated here — a
// caller must reset the service if backend state changes under it.
type Service struct {
	client      upstream.Client
	store       repository.AssociationStore
	classifier  *Classifier
	promptCache *PromptCache
	metrics     *metrics.Metrics
	scanLimit   int

	mu          sync.RWMutex
	files       []*model.File
	assoc       AssociationMap
	chatsByID   map[string]*model.Chat
	foldersByID map[string]*model.Folder
}

// NewService wires the resolver core. store may be nil to run without
// persistence; scanLimit <= 0 falls back to the default cap of 100 chats.
func NewService(client upstream.Client, store repository.AssociationStore, m *metrics.Metrics, scanLimit int) *Service {
	if scanLimit <= 0 {
		scanLimit = defaultScanLimit
	}
	return &Service{
		client:      client,
		store:       store,
		classifier:  NewClassifier(),
		promptCache: NewPromptCache(),
		metrics:     m,
		scanLimit:   scanLimit,
		assoc:       make(AssociationMap),
		chatsByID:   make(map[string]*model.Chat),
		foldersByID: make(map[string]*model.Folder),
	}
}

// Classifier exposes the service's classifier for filter and sort calls.
func (s *Service) Classifier() *Classifier { return s.classifier }

// WarmFromStore loads persisted associations and prompts into the in-memory
// caches. Best effort: a store failure only costs repeat upstream lookups.
func (s *Service) WarmFromStore(ctx context.Context) {
	if s.store == nil {
		return
	}

	associations, err := s.store.LoadAssociations(ctx)
	if err != nil {
		slog.Warn("Could not load persisted associations", "error", err)
	} else {
		s.mu.Lock()
		for fileID, chatID := range associations {
			s.assoc[fileID] = chatID
		}
		s.mu.Unlock()
	}

	prompts, err := s.store.LoadPrompts(ctx)
	if err != nil {
		slog.Warn("Could not load persisted prompts", "error", err)
		return
	}
	for fileID, prompt := range prompts {
		s.promptCache.Put(fileID, prompt)
	}
	slog.Info("Warmed resolver caches from store", "associations", len(associations), "prompts", len(prompts))
}

// OverviewResult is the reconciled overview handed to callers: the raw file
// list plus the three derived indexes and per-tab counts.
type OverviewResult struct {
	Files       []*model.File            `json:"files"`
	ChatsByID   map[string]*model.Chat   `json:"chats_by_id"`
	FoldersByID map[string]*model.Folder `json:"folders_by_id"`
	FileToChat  AssociationMap           `json:"file_to_chat"`
	Counts      Counts                   `json:"counts"`
	Total       int                      `json:"total"`
	Skip        int                      `json:"skip"`
	Limit       int                      `json:"limit"`
}

// FetchOverview issues exactly one upstream call and derives the chat index,
// folder index and association map as a pure fold over the response — no
// extra round trips. An empty upstream response yields an all-empty result;
// only transport failures propagate to the caller.
func (s *Service) FetchOverview(ctx context.Context, skip, limit int) (*OverviewResult, error) {
	overview, err := s.client.GetMediaOverview(ctx, skip, limit)
	if err != nil {
		s.countUpstream("get_media_overview", "error")
		return nil, err
	}
	s.countUpstream("get_media_overview", "ok")

	if overview == nil {
		overview = &model.Overview{}
	}

	chatsByID := make(map[string]*model.Chat, len(overview.Chats))
	for _, chat := range overview.Chats {
		if chat != nil && chat.ID != "" {
			chatsByID[chat.ID] = chat
		}
	}

	foldersByID := make(map[string]*model.Folder, len(overview.Folders))
	for _, folder := range overview.Folders {
		if folder != nil && folder.ID != "" {
			foldersByID[folder.ID] = folder
		}
	}

	assoc := make(AssociationMap, len(overview.Files))
	for _, f := range overview.Files {
		if f == nil || f.ID == "" {
			continue
		}
		assoc[f.ID] = deriveChatID(f)
	}

	files := overview.Files
	if files == nil {
		files = []*model.File{}
	}

	s.persistAssociations(ctx, assoc)

	s.mu.Lock()
	s.files = files
	s.assoc = assoc
	s.chatsByID = chatsByID
	s.foldersByID = foldersByID
	s.mu.Unlock()

	return &OverviewResult{
		Files:       files,
		ChatsByID:   chatsByID,
		FoldersByID: foldersByID,
		FileToChat:  assoc,
		Counts:      CalculateCounts(s.classifier, files),
		Total:       overview.Total,
		Skip:        overview.Skip,
		Limit:       overview.Limit,
	}, nil
}

// deriveChatID extracts the owning chat from embedded metadata, checking
// meta.chat_id, then meta.source_chat_id, then the top-level chat_id. The
// literal "orphan" value and complete absence both derive to nil.
func deriveChatID(f *model.File) *string {
	for _, candidate := range []string{f.Meta.ChatID.String(), f.Meta.SourceChatID.String(), f.ChatID.String()} {
		if candidate == "" {
			continue
		}
		if candidate == orphanSentinel {
			return nil
		}
		id := candidate
		return &id
	}
	return nil
}

// ResolveFileChat resolves one file's owning chat when the bulk fetch did not
// yield an answer. Idempotent: a cached result, nil included, is returned
// without touching the network. Unknown file ids return ErrNotFound without
// caching, since that is a precondition failure rather than a resolution.
// The search fallback is best effort; its failures are logged and swallowed.
func (s *Service) ResolveFileChat(ctx context.Context, fileID string) (*string, error) {
	s.mu.RLock()
	chatID, resolved := s.assoc.Resolved(fileID)
	s.mu.RUnlock()
	if resolved {
		s.countCache(metrics.CacheAssociation, metrics.ResultHit)
		return chatID, nil
	}
	s.countCache(metrics.CacheAssociation, metrics.ResultMiss)

	file := s.fileByID(fileID)
	if file == nil {
		return nil, app_errors.ErrNotFound
	}

	// Metadata hints may have appeared on a fresher file record even when
	// the overview pass left this id unresolved.
	if hinted, found := hintedChatID(file); found {
		s.cacheAssociation(ctx, fileID, hinted)
		return hinted, nil
	}

	chats, err := s.client.SearchChats(ctx, fileID, 1)
	if err != nil {
		s.countUpstream("search_chats", "error")
		slog.Warn("Chat search failed during association resolution", "file_id", fileID, "error", err)
	} else {
		s.countUpstream("search_chats", "ok")
		if len(chats) > 0 && chats[0] != nil && chats[0].ID != "" {
			hit := chats[0]
			s.mu.Lock()
			if _, known := s.chatsByID[hit.ID]; !known {
				s.chatsByID[hit.ID] = hit
			}
			s.mu.Unlock()
			id := hit.ID
			s.cacheAssociation(ctx, fileID, &id)
			return &id, nil
		}
	}

	s.cacheAssociation(ctx, fileID, nil)
	return nil, nil
}

// hintedChatID mirrors deriveChatID but reports whether any hint was present
// at all, so "no hint" and "orphan hint" can be told apart.
func hintedChatID(f *model.File) (chatID *string, found bool) {
	for _, candidate := range []string{f.Meta.ChatID.String(), f.Meta.SourceChatID.String(), f.ChatID.String()} {
		if candidate == "" {
			continue
		}
		if candidate == orphanSentinel {
			return nil, true
		}
		id := candidate
		return &id, true
	}
	return nil, false
}

func (s *Service) fileByID(fileID string) *model.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.files {
		if f != nil && f.ID == fileID {
			return f
		}
	}
	return nil
}

func (s *Service) cacheAssociation(ctx context.Context, fileID string, chatID *string) {
	s.mu.Lock()
	s.assoc[fileID] = chatID
	s.mu.Unlock()

	if s.store == nil {
		return
	}
	if err := s.store.UpsertAssociation(ctx, fileID, chatID); err != nil {
		slog.Warn("Could not persist association", "file_id", fileID, "error", err)
	}
}

func (s *Service) persistAssociations(ctx context.Context, assoc AssociationMap) {
	if s.store == nil {
		return
	}
	for fileID, chatID := range assoc {
		if err := s.store.UpsertAssociation(ctx, fileID, chatID); err != nil {
			slog.Warn("Could not persist association", "file_id", fileID, "error", err)
			return
		}
	}
}

// ChatByID returns a chat summary from the session index.
func (s *Service) ChatByID(chatID string) *model.Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chatsByID[chatID]
}

// Files returns the current session file set.
func (s *Service) Files() []*model.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.files
}

// Associations returns the live association map. Callers treat it as
// read-only; the service keeps mutating it as resolutions land.
func (s *Service) Associations() AssociationMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assoc
}

// QueryFiles filters and sorts the session file set in one call.
func (s *Service) QueryFiles(tab Tab, query string, mode Mode, selectedChatID string, by SortKey, dir SortDir) []*model.File {
	s.mu.RLock()
	files := s.files
	assoc := s.assoc
	s.mu.RUnlock()

	filtered := FilterFiles(s.classifier, files, tab, query, mode, selectedChatID, assoc)
	return SortFiles(s.classifier, filtered, by, dir)
}

// DeleteFile deletes one file upstream and drops its cache entries.
// Upstream failures propagate.
func (s *Service) DeleteFile(ctx context.Context, fileID string) error {
	if err := s.client.DeleteFile(ctx, fileID); err != nil {
		s.countDelete("error")
		return err
	}
	s.countDelete("ok")
	s.forgetFile(ctx, fileID)
	return nil
}

// DeleteFiles deletes files strictly one at a time, so a large batch cannot
// flood the backend and each failure is isolated. Failed ids are returned as
// data; the batch never aborts early.
func (s *Service) DeleteFiles(ctx context.Context, fileIDs []string) []string {
	failed := []string{}
	for _, fileID := range fileIDs {
		if err := s.DeleteFile(ctx, fileID); err != nil {
			slog.Warn("Failed to delete file", "file_id", fileID, "error", err)
			failed = append(failed, fileID)
		}
	}
	return failed
}

// InvalidateFile drops the cached association and prompt for one file so the
// next lookup re-resolves against the backend. Nothing in the core expires
// entries on its own; this is the external clearing hook for callers that
// know backend state changed.
func (s *Service) InvalidateFile(ctx context.Context, fileID string) {
	s.mu.Lock()
	delete(s.assoc, fileID)
	s.mu.Unlock()

	s.promptCache.Delete(fileID)

	if s.store == nil {
		return
	}
	if err := s.store.RemoveFile(ctx, fileID); err != nil {
		slog.Warn("Could not remove persisted file entries", "file_id", fileID, "error", err)
	}
}

// forgetFile removes a deleted file from session state and both caches.
func (s *Service) forgetFile(ctx context.Context, fileID string) {
	s.InvalidateFile(ctx, fileID)

	s.mu.Lock()
	kept := make([]*model.File, 0, len(s.files))
	for _, f := range s.files {
		if f == nil || f.ID != fileID {
			kept = append(kept, f)
		}
	}
	s.files = kept
	s.mu.Unlock()
}

func (s *Service) countCache(cache, result string) {
	if s.metrics != nil {
		s.metrics.CacheLookupsTotal.WithLabelValues(cache, result).Inc()
	}
}

func (s *Service) countUpstream(operation, status string) {
	if s.metrics != nil {
		s.metrics.UpstreamRequestsTotal.WithLabelValues(operation, status).Inc()
	}
}

func (s *Service) countDelete(status string) {
	if s.metrics != nil {
		s.metrics.FilesDeletedTotal.WithLabelValues(status).Inc()
	}
}
