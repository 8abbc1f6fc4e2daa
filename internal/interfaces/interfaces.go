package interfaces

import (
	"context"

	"mediadeck/backend/internal/media"
	"mediadeck/backend/internal/model"
)

// This file defines the interfaces for our core services.
// Depending on these interfaces, instead of concrete implementations, allows
// for decoupling (e.g., API layer from Service layer) and easier testing via
// mocking.

// MediaService defines the contract for the media reconciliation core.
type MediaService interface {
	FetchOverview(ctx context.Context, skip, limit int) (*media.OverviewResult, error)
	QueryFiles(tab media.Tab, query string, mode media.Mode, selectedChatID string, by media.SortKey, dir media.SortDir) []*model.File
	ResolveFileChat(ctx context.Context, fileID string) (*string, error)
	FetchPrompt(ctx context.Context, fileID string) *string
	InvalidateFile(ctx context.Context, fileID string)
	DeleteFile(ctx context.Context, fileID string) error
	DeleteFiles(ctx context.Context, fileIDs []string) []string
	ChatByID(chatID string) *model.Chat
}
