package media

import (
	"sort"
	"strings"

	"mediadeck/backend/internal/model"
)

// Tab selects a media type to display; TabAll shows everything.
type Tab string

const (
	TabAll   Tab = "all"
	TabImage Tab = Tab(TypeImage)
	TabVideo Tab = Tab(TypeVideo)
	TabAudio Tab = Tab(TypeAudio)
	TabOther Tab = Tab(TypeOther)
)

// Mode selects how files are narrowed by chat ownership.
type Mode string

const (
	ModeAll     Mode = "all"
	ModeChat    Mode = "chat"
	ModeOrphans Mode = "orphans"
)

// SortKey selects the primary sort column.
type SortKey string

const (
	SortByName    SortKey = "name"
	SortByType    SortKey = "type"
	SortBySize    SortKey = "size"
	SortByUpdated SortKey = "updated"
)

// SortDir selects ascending or descending order.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// AssociationMap is the derived file->chat ownership index. Three states per
// file id: absent means not yet resolved, present with nil means confirmed
// orphan, present with a value means owned by that chat. Resolver code must
// distinguish absence from nil before treating a miss as unresolved.
type AssociationMap map[string]*string

// Resolved reports whether fileID has been resolved, and to what. A nil
// chatID with ok=true is a confirmed orphan.
func (m AssociationMap) Resolved(fileID string) (chatID *string, ok bool) {
	chatID, ok = m[fileID]
	return chatID, ok
}

// Set records fileID as owned by chatID.
func (m AssociationMap) Set(fileID, chatID string) {
	m[fileID] = &chatID
}

// SetOrphan records fileID as resolved with no owning chat.
func (m AssociationMap) SetOrphan(fileID string) {
	m[fileID] = nil
}

// FilterFiles narrows files by tab, search query and chat-ownership mode.
// The filters compose as sequential AND narrowing; order does not change the
// result set. Files still unresolved in assoc are excluded by both ModeChat
// and ModeOrphans: they are neither confirmed owned nor confirmed orphans.
func FilterFiles(c *Classifier, files []*model.File, tab Tab, query string, mode Mode, selectedChatID string, assoc AssociationMap) []*model.File {
	out := files

	if tab != TabAll {
		kept := make([]*model.File, 0, len(out))
		for _, f := range out {
			if Tab(c.Classify(f)) == tab {
				kept = append(kept, f)
			}
		}
		out = kept
	}

	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		kept := make([]*model.File, 0, len(out))
		for _, f := range out {
			if strings.Contains(strings.ToLower(displayName(f)), q) {
				kept = append(kept, f)
			}
		}
		out = kept
	}

	switch {
	case mode == ModeChat && selectedChatID != "":
		kept := make([]*model.File, 0, len(out))
		for _, f := range out {
			if chatID, ok := assoc.Resolved(f.ID); ok && chatID != nil && *chatID == selectedChatID {
				kept = append(kept, f)
			}
		}
		out = kept
	case mode == ModeOrphans:
		kept := make([]*model.File, 0, len(out))
		for _, f := range out {
			if chatID, ok := assoc.Resolved(f.ID); ok && chatID == nil {
				kept = append(kept, f)
			}
		}
		out = kept
	}

	return out
}

// SortFiles returns a stably sorted copy of files. Ties on the primary key
// fall back to the updated timestamp in the same direction, so equal primary
// keys still order deterministically. SortByType compares the classifier's
// string label, not a semantic rank.
func SortFiles(c *Classifier, files []*model.File, by SortKey, dir SortDir) []*model.File {
	out := make([]*model.File, len(files))
	copy(out, files)

	desc := dir == SortDesc

	compare := func(a, b *model.File) int {
		switch by {
		case SortByName:
			return strings.Compare(strings.ToLower(displayName(a)), strings.ToLower(displayName(b)))
		case SortByType:
			return strings.Compare(string(c.Classify(a)), string(c.Classify(b)))
		case SortBySize:
			return compareInt64(a.Meta.Size, b.Meta.Size)
		default:
			return compareInt64(a.UpdatedAt, b.UpdatedAt)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		cmp := compare(out[i], out[j])
		if cmp == 0 && by != SortByUpdated {
			cmp = compareInt64(out[i].UpdatedAt, out[j].UpdatedAt)
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})

	return out
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Counts summarizes the file set per media type. Files classified as "other"
// count only toward All.
type Counts struct {
	All   int `json:"all"`
	Image int `json:"image"`
	Video int `json:"video"`
	Audio int `json:"audio"`
}

// CalculateCounts tallies the tab counters in a single pass.
func CalculateCounts(c *Classifier, files []*model.File) Counts {
	counts := Counts{All: len(files)}
	for _, f := range files {
		switch c.Classify(f) {
		case TypeImage:
			counts.Image++
		case TypeVideo:
			counts.Video++
		case TypeAudio:
			counts.Audio++
		}
	}
	return counts
}

// Group is one bucket of grouped files.
type Group struct {
	Items []*model.File `json:"items"`
}

// GroupAllKey is the single bucket key when no grouping is applied.
const GroupAllKey = "__all__"

// GroupFiles places every file under the GroupAllKey bucket. Folder and chat
// hierarchies are grouped by the caller; the flat contract here is relied on
// by consumers rendering the ungrouped view.
func GroupFiles(files []*model.File) map[string]Group {
	return map[string]Group{GroupAllKey: {Items: files}}
}
