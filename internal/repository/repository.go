package repository

import "context"

// AssociationStore persists resolved file->chat associations and recovered
// prompts so a restarted process keeps its cache. A nil value is a valid
// persisted result: it records "resolved, nothing found" (orphan file or
// prompt search exhausted) and prevents repeat upstream scans.
type AssociationStore interface {
	UpsertAssociation(ctx context.Context, fileID string, chatID *string) error
	UpsertPrompt(ctx context.Context, fileID string, prompt *string) error

	// LoadAssociations and LoadPrompts return every persisted entry,
	// keyed by file id. Absent key means the file was never resolved.
	LoadAssociations(ctx context.Context) (map[string]*string, error)
	LoadPrompts(ctx context.Context) (map[string]*string, error)

	// RemoveFile drops both entries for a deleted file.
	RemoveFile(ctx context.Context, fileID string) error
}
