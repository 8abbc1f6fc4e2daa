package model

// File is a read-only view of a stored media file as the platform reports it.
// Identity is ID; everything else is advisory metadata.
type File struct {
	ID        string   `json:"id"`
	Filename  string   `json:"filename,omitempty"`
	Mime      string   `json:"mime,omitempty"`
	Meta      FileMeta `json:"meta,omitempty"`
	ChatID    FlexID   `json:"chat_id,omitempty"`
	UpdatedAt int64    `json:"updated_at,omitempty"`
}

// FileMeta carries the upload-time metadata block. Upstream populates it
// inconsistently (content_type vs mime_type, chat_id vs source_chat_id),
// so every field is optional.
type FileMeta struct {
	Name         string `json:"name,omitempty"`
	Size         int64  `json:"size,omitempty"`
	ContentType  string `json:"content_type,omitempty"`
	MimeType     string `json:"mime_type,omitempty"`
	ChatID       FlexID `json:"chat_id,omitempty"`
	SourceChatID FlexID `json:"source_chat_id,omitempty"`
}

// Chat is a conversation record. List and search endpoints return only the
// summary fields; GetChat fills History or Messages as well.
type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	CreatedAt int64     `json:"created_at,omitempty"`
	UpdatedAt int64     `json:"updated_at,omitempty"`
	Models    []string  `json:"models,omitempty"`
	Files     []File    `json:"files,omitempty"`
	History   *History  `json:"history,omitempty"`
	Messages  []Message `json:"messages,omitempty"`
}

// History is the branching message tree: a dict of messages keyed by id plus
// the id of the leaf on the active path. ParentID back-links define lineage.
type History struct {
	Messages  map[string]Message `json:"messages,omitempty"`
	CurrentID string             `json:"currentId,omitempty"`
}

// Message is a single node in a chat's message tree.
type Message struct {
	ID          string      `json:"id,omitempty"`
	ParentID    *string     `json:"parentId,omitempty"`
	ChildrenIDs []string    `json:"childrenIds,omitempty"`
	Role        string      `json:"role,omitempty"`
	Content     Content     `json:"content,omitempty"`
	Files       []FileRef   `json:"files,omitempty"`
	Meta        MessageMeta `json:"meta,omitempty"`
}

// FileRef is a file attachment entry on a message.
type FileRef struct {
	ID   FlexID `json:"id,omitempty"`
	Type string `json:"type,omitempty"`
	URL  string `json:"url,omitempty"`
	Name string `json:"name,omitempty"`
}

// MessageMeta holds generation bookkeeping attached to assistant/tool messages.
type MessageMeta struct {
	GeneratedFileIDs []FlexID `json:"generated_file_ids,omitempty"`
}

// Folder groups chats. Referenced by id from the overview payload.
type Folder struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	ParentID FlexID `json:"parent_id,omitempty"`
}

// Overview is the single-shot media overview payload: every file, chat
// summary and folder the caller can see, in one response.
type Overview struct {
	Files   []*File   `json:"files"`
	Chats   []*Chat   `json:"chats"`
	Folders []*Folder `json:"folders"`
	Total   int       `json:"total"`
	Skip    int       `json:"skip"`
	Limit   int       `json:"limit"`
}
