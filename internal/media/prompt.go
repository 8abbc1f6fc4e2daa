package media

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"mediadeck/backend/internal/metrics"
	"mediadeck/backend/internal/model"
)

const (
	roleUser      = "user"
	roleAssistant = "assistant"
	roleTool      = "tool"
)

// FetchPrompt recovers the natural-language prompt that produced a file by
// searching the owning user's chat history. Best effort by contract: every
// failure along the way is logged, negatively cached and reported as "not
// found" — this function never surfaces an error. Results, nil included, are
// cached per file id for the life of the process.
func (s *Service) FetchPrompt(ctx context.Context, fileID string) *string {
	if cached, ok := s.promptCache.Get(fileID); ok {
		s.countCache(metrics.CachePrompt, metrics.ResultHit)
		return cached
	}
	s.countCache(metrics.CachePrompt, metrics.ResultMiss)

	prompt := s.searchPrompt(ctx, fileID)

	s.promptCache.Put(fileID, prompt)
	if s.store != nil {
		if err := s.store.UpsertPrompt(ctx, fileID, prompt); err != nil {
			slog.Warn("Could not persist prompt", "file_id", fileID, "error", err)
		}
	}
	if s.metrics != nil {
		outcome := "found"
		if prompt == nil {
			outcome = "not_found"
		}
		s.metrics.PromptResolutionsTotal.WithLabelValues(outcome).Inc()
	}
	return prompt
}

// searchPrompt walks candidate chats newest-first until one yields a prompt.
func (s *Service) searchPrompt(ctx context.Context, fileID string) *string {
	for _, chat := range s.candidateChats(ctx, fileID) {
		if chat == nil || chat.ID == "" {
			continue
		}

		full, err := s.client.GetChat(ctx, chat.ID)
		if err != nil {
			s.countUpstream("get_chat", "error")
			slog.Warn("Could not fetch chat during prompt search", "chat_id", chat.ID, "error", err)
			continue
		}
		s.countUpstream("get_chat", "ok")
		if full == nil {
			continue
		}

		if prompt := extractPromptForFile(full, fileID); prompt != "" {
			return &prompt
		}
	}
	return nil
}

// candidateChats narrows the search space: a server-side text search for the
// file id first, the full chat list as fallback. Sorted newest-first on the
// assumption that recently touched chats are the likely producers, and capped
// to bound the scan.
func (s *Service) candidateChats(ctx context.Context, fileID string) []*model.Chat {
	candidates, err := s.client.SearchChats(ctx, fileID, 1)
	if err != nil {
		s.countUpstream("search_chats", "error")
		slog.Warn("Chat search failed during prompt search", "file_id", fileID, "error", err)
		candidates = nil
	} else {
		s.countUpstream("search_chats", "ok")
	}

	if len(candidates) == 0 {
		candidates, err = s.client.ListChats(ctx)
		if err != nil {
			s.countUpstream("list_chats", "error")
			slog.Warn("Could not list chats during prompt search", "file_id", fileID, "error", err)
			return nil
		}
		s.countUpstream("list_chats", "ok")
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		var a, b int64
		if candidates[i] != nil {
			a = candidates[i].UpdatedAt
		}
		if candidates[j] != nil {
			b = candidates[j].UpdatedAt
		}
		return a > b
	})

	if len(candidates) > s.scanLimit {
		candidates = candidates[:s.scanLimit]
	}
	return candidates
}

// extractPromptForFile finds the message that produced or referenced the file
// in one chat and recovers its prompt. Empty result means this chat had no
// answer.
func extractPromptForFile(chat *model.Chat, fileID string) string {
	messages, byID := flattenMessages(chat)
	if len(messages) == 0 {
		return ""
	}

	matchedIdx, matched := matchMessage(messages, fileID)
	if matched == nil {
		return ""
	}

	// Priority 1: lineage walk from the matched message toward the root.
	if prompt := extractFromLineage(byID, matched); prompt != "" {
		return prompt
	}

	// Priority 2: chronological fallback over the flat list.
	if prompt := extractChronological(messages); prompt != "" {
		return prompt
	}

	// Last resort: when the match was an exact /files/{id} reference,
	// re-scan backward from the matched message itself.
	if strings.Contains(stringifyContent(matched), "/files/"+fileID) {
		return extractBackwardFrom(messages, matchedIdx)
	}
	return ""
}

// flattenMessages normalizes the two history shapes into a flat slice plus an
// id index. The dict shape has no inherent order, so the active path (root to
// currentId leaf) is placed last, keeping the newest-first scan meaningful;
// off-path branches precede it ordered by id for determinism. Ids are
// back-filled from dict keys when a message lacks one.
func flattenMessages(chat *model.Chat) ([]model.Message, map[string]*model.Message) {
	byID := make(map[string]*model.Message)

	if len(chat.Messages) > 0 {
		messages := make([]model.Message, len(chat.Messages))
		copy(messages, chat.Messages)
		for i := range messages {
			if messages[i].ID != "" {
				byID[messages[i].ID] = &messages[i]
			}
		}
		return messages, byID
	}

	if chat.History == nil || len(chat.History.Messages) == 0 {
		return nil, byID
	}

	dict := make(map[string]model.Message, len(chat.History.Messages))
	for id, msg := range chat.History.Messages {
		if msg.ID == "" {
			msg.ID = id
		}
		dict[id] = msg
	}

	// Active path, leaf to root, cycle-guarded.
	onPath := make(map[string]bool)
	var path []model.Message
	for id := chat.History.CurrentID; id != "" && !onPath[id]; {
		msg, ok := dict[id]
		if !ok {
			break
		}
		onPath[id] = true
		path = append(path, msg)
		if msg.ParentID == nil {
			break
		}
		id = *msg.ParentID
	}

	rest := make([]string, 0, len(dict))
	for id := range dict {
		if !onPath[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)

	messages := make([]model.Message, 0, len(dict))
	for _, id := range rest {
		messages = append(messages, dict[id])
	}
	for i := len(path) - 1; i >= 0; i-- {
		messages = append(messages, path[i])
	}
	for i := range messages {
		byID[messages[i].ID] = &messages[i]
	}
	return messages, byID
}

// filesURLPattern extracts an id sitting between "/files/" and the next "/".
var filesURLPattern = regexp.MustCompile(`/files/([^/]+)/`)

// messageMatcher tests whether a message produced or referenced a file. The
// matchers run in a fixed order per message; the first hit wins.
type messageMatcher struct {
	name  string
	match func(m *model.Message, fileID string) bool
}

var messageMatchers = []messageMatcher{
	{"content-substring", matchContentSubstring},
	{"files-url-id", matchFilesURLID},
	{"file-attachment", matchFileAttachment},
	{"content-part", matchContentPart},
	{"generated-file-ids", matchGeneratedFileIDs},
}

// matchMessage scans assistant and tool messages newest-first; the most
// recent reference to the file wins over older ones.
func matchMessage(messages []model.Message, fileID string) (int, *model.Message) {
	for i := len(messages) - 1; i >= 0; i-- {
		m := &messages[i]
		if m.Role != roleAssistant && m.Role != roleTool {
			continue
		}
		for _, matcher := range messageMatchers {
			if matcher.match(m, fileID) {
				return i, m
			}
		}
	}
	return -1, nil
}

// stringifyContent renders the content in its original serialized form when
// available, falling back to the flattened text.
func stringifyContent(m *model.Message) string {
	if len(m.Content.Raw) > 0 {
		return string(m.Content.Raw)
	}
	return m.Content.Flatten()
}

func matchContentSubstring(m *model.Message, fileID string) bool {
	text := stringifyContent(m)
	return strings.Contains(text, fileID) || strings.Contains(text, "/files/"+fileID)
}

func matchFilesURLID(m *model.Message, fileID string) bool {
	for _, groups := range filesURLPattern.FindAllStringSubmatch(stringifyContent(m), -1) {
		if groups[1] == fileID {
			return true
		}
	}
	return false
}

func matchFileAttachment(m *model.Message, fileID string) bool {
	for _, ref := range m.Files {
		if ref.ID.String() == fileID {
			return true
		}
	}
	return false
}

func matchContentPart(m *model.Message, fileID string) bool {
	if m.Content.Kind != model.ContentParts {
		return false
	}
	urlFragment := "/files/" + fileID
	for _, part := range m.Content.Parts {
		if part.ID.String() == fileID {
			return true
		}
		if part.File != nil && part.File.ID.String() == fileID {
			return true
		}
		raw := string(part.Raw())
		if strings.Contains(raw, fileID) || strings.Contains(raw, urlFragment) {
			return true
		}
	}
	return false
}

func matchGeneratedFileIDs(m *model.Message, fileID string) bool {
	for _, id := range m.Meta.GeneratedFileIDs {
		if id.String() == fileID {
			return true
		}
	}
	return false
}

// extractFromLineage follows parentId back-links from the matched message
// toward the root, visiting each node once. An assistant-authored "Prompt:"
// block wins immediately; the first user message on the path is remembered
// and returned only if no assistant block appears before the root.
func extractFromLineage(byID map[string]*model.Message, matched *model.Message) string {
	seen := make(map[string]bool)
	userFallback := ""

	for cur := matched; cur != nil; {
		if cur.ID != "" {
			if seen[cur.ID] {
				break
			}
			seen[cur.ID] = true
		}

		switch cur.Role {
		case roleAssistant:
			if prompt := ExtractAssistantPrompt(cur.Content.Flatten()); prompt != "" {
				return prompt
			}
		case roleUser:
			if userFallback == "" {
				userFallback = strings.TrimSpace(cur.Content.Flatten())
			}
		}

		if cur.ParentID == nil || *cur.ParentID == "" {
			break
		}
		cur = byID[*cur.ParentID]
	}
	return userFallback
}

// extractChronological scans the flat list backward for the nearest assistant
// message with an extractable prompt, then for the nearest user message.
func extractChronological(messages []model.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != roleAssistant {
			continue
		}
		if prompt := ExtractAssistantPrompt(messages[i].Content.Flatten()); prompt != "" {
			return prompt
		}
	}
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != roleUser {
			continue
		}
		if text := strings.TrimSpace(messages[i].Content.Flatten()); text != "" {
			return text
		}
	}
	return ""
}

// extractBackwardFrom re-scans from the matched index toward the start:
// assistant prompt blocks first, user content as last resort.
func extractBackwardFrom(messages []model.Message, from int) string {
	for i := from; i >= 0; i-- {
		if messages[i].Role != roleAssistant {
			continue
		}
		if prompt := ExtractAssistantPrompt(messages[i].Content.Flatten()); prompt != "" {
			return prompt
		}
	}
	for i := from; i >= 0; i-- {
		if messages[i].Role != roleUser {
			continue
		}
		if text := strings.TrimSpace(messages[i].Content.Flatten()); text != "" {
			return text
		}
	}
	return ""
}

// promptStopMarkers terminate an extracted prompt. The earliest occurrence
// wins; matching is case-insensitive.
var promptStopMarkers = []string{
	"\n---",
	"\n**aspect ratio",
	"\n**parameters",
	"\n**model",
	"\n**notes",
	"\n\n",
}

// ExtractAssistantPrompt pulls the prompt text out of an assistant message
// that announces it with a "Prompt:" marker, e.g.
//
//	**Prompt:** a cat on a skateboard
//	**Model:** v2
//
// The text after the marker is stripped of markdown emphasis and truncated at
// the first stop marker. Empty result means no prompt block was present.
func ExtractAssistantPrompt(text string) string {
	idx := strings.Index(strings.ToLower(text), "prompt:")
	if idx < 0 {
		return ""
	}

	rest := text[idx+len("prompt:"):]
	rest = strings.TrimLeft(rest, "*_ \t")

	lower := strings.ToLower(rest)
	cut := len(rest)
	for _, marker := range promptStopMarkers {
		if i := strings.Index(lower, marker); i >= 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(rest[:cut])
}
