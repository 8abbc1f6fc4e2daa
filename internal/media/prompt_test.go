package media_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mediadeck/backend/internal/media"
	"mediadeck/backend/internal/model"
	"mediadeck/backend/internal/upstream/mocks"
)

func TestExtractAssistantPrompt(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			"bold marker with trailing sections",
			"Some text\n**Prompt:** A cat on a skateboard\n**Model:** v2",
			"A cat on a skateboard",
		},
		{
			"case insensitive marker",
			"PROMPT: neon city at night",
			"neon city at night",
		},
		{
			"stops at horizontal rule",
			"Prompt: a lighthouse in fog\n---\nseed 42",
			"a lighthouse in fog",
		},
		{
			"stops at blank line",
			"Prompt: mountain lake\n\nAnything after is ignored.",
			"mountain lake",
		},
		{
			"stops at earliest marker",
			"Prompt: a red door\n**Parameters:** none\n**Model:** v2",
			"a red door",
		},
		{
			"underscore emphasis stripped",
			"__Prompt:__ watercolor birds",
			"watercolor birds",
		},
		{
			"no marker",
			"Here is the image you asked for.",
			"",
		},
		{
			"marker with nothing after it",
			"Prompt:   ",
			"",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, media.ExtractAssistantPrompt(tc.text))
		})
	}
}

func textContent(s string) model.Content {
	return model.Content{Kind: model.ContentText, Text: s}
}

func TestFetchPrompt_LineageWalkFindsUserMessage(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	chat := &model.Chat{
		ID: "chat1",
		Messages: []model.Message{
			{ID: "u1", Role: "user", Content: textContent("draw a cat")},
			{
				ID:       "a1",
				ParentID: strPtr("u1"),
				Role:     "assistant",
				Content:  textContent("Here you go."),
				Meta:     model.MessageMeta{GeneratedFileIDs: []model.FlexID{"file-1"}},
			},
		},
	}

	client.On("SearchChats", mock.Anything, "file-1", 1).
		Return([]*model.Chat{{ID: "chat1"}}, nil).Once()
	client.On("GetChat", mock.Anything, "chat1").Return(chat, nil).Once()

	prompt := svc.FetchPrompt(ctx, "file-1")
	require.NotNil(t, prompt)
	assert.Equal(t, "draw a cat", *prompt)
}

func TestFetchPrompt_AssistantPromptBlockWinsOverUserText(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	chat := &model.Chat{
		ID: "chat1",
		Messages: []model.Message{
			{ID: "u1", Role: "user", Content: textContent("make me something nice")},
			{
				ID:       "a1",
				ParentID: strPtr("u1"),
				Role:     "assistant",
				Content:  textContent("Done!\n**Prompt:** a red fox in snow\n**Model:** v2"),
				Meta:     model.MessageMeta{GeneratedFileIDs: []model.FlexID{"file-1"}},
			},
		},
	}

	client.On("SearchChats", mock.Anything, "file-1", 1).
		Return([]*model.Chat{{ID: "chat1"}}, nil).Once()
	client.On("GetChat", mock.Anything, "chat1").Return(chat, nil).Once()

	prompt := svc.FetchPrompt(ctx, "file-1")
	require.NotNil(t, prompt)
	assert.Equal(t, "a red fox in snow", *prompt)
}

// When a file is referenced by several messages, the most recent reference is
// the one whose lineage defines the prompt.
func TestFetchPrompt_NewestMatchWins(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	chat := &model.Chat{
		ID: "chat1",
		Messages: []model.Message{
			{ID: "u1", Role: "user", Content: textContent("first request")},
			{
				ID: "a1", ParentID: strPtr("u1"), Role: "assistant",
				Content: textContent("see /files/file-1/preview"),
			},
			{ID: "u2", Role: "user", Content: textContent("second request")},
			{
				ID: "a2", ParentID: strPtr("u2"), Role: "assistant",
				Content: textContent("regenerated: /files/file-1/preview"),
			},
		},
	}

	client.On("SearchChats", mock.Anything, "file-1", 1).
		Return([]*model.Chat{{ID: "chat1"}}, nil).Once()
	client.On("GetChat", mock.Anything, "chat1").Return(chat, nil).Once()

	prompt := svc.FetchPrompt(ctx, "file-1")
	require.NotNil(t, prompt)
	assert.Equal(t, "second request", *prompt)
}

func TestFetchPrompt_FileAttachmentMatch(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	chat := &model.Chat{
		ID: "chat1",
		Messages: []model.Message{
			{ID: "u1", Role: "user", Content: textContent("upscale this image")},
			{
				ID: "a1", ParentID: strPtr("u1"), Role: "tool",
				Content: textContent("done"),
				Files:   []model.FileRef{{ID: "file-9", Type: "image"}},
			},
		},
	}

	client.On("SearchChats", mock.Anything, "file-9", 1).
		Return([]*model.Chat{{ID: "chat1"}}, nil).Once()
	client.On("GetChat", mock.Anything, "chat1").Return(chat, nil).Once()

	prompt := svc.FetchPrompt(ctx, "file-9")
	require.NotNil(t, prompt)
	assert.Equal(t, "upscale this image", *prompt)
}

// The branching dict shape: ids are back-filled from the map keys and the
// lineage is followed through parentId back-links on the active path.
func TestFetchPrompt_DictHistoryShape(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	chat := &model.Chat{
		ID: "chat1",
		History: &model.History{
			CurrentID: "a1",
			Messages: map[string]model.Message{
				"u1": {Role: "user", Content: textContent("paint a sunset over the bay")},
				"a1": {
					ParentID: strPtr("u1"),
					Role:     "assistant",
					Content:  textContent("Here it is."),
					Meta:     model.MessageMeta{GeneratedFileIDs: []model.FlexID{"img-9"}},
				},
				"x1": {Role: "user", Content: textContent("an abandoned branch")},
			},
		},
	}

	client.On("SearchChats", mock.Anything, "img-9", 1).
		Return([]*model.Chat{{ID: "chat1"}}, nil).Once()
	client.On("GetChat", mock.Anything, "chat1").Return(chat, nil).Once()

	prompt := svc.FetchPrompt(ctx, "img-9")
	require.NotNil(t, prompt)
	assert.Equal(t, "paint a sunset over the bay", *prompt)
}

func TestFetchPrompt_ResultsAreCached(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	chat := &model.Chat{
		ID: "chat1",
		Messages: []model.Message{
			{ID: "u1", Role: "user", Content: textContent("draw a dog")},
			{
				ID: "a1", ParentID: strPtr("u1"), Role: "assistant",
				Meta: model.MessageMeta{GeneratedFileIDs: []model.FlexID{"file-1"}},
			},
		},
	}

	// Both upstream calls are Once(): the second FetchPrompt must be served
	// entirely from the cache.
	client.On("SearchChats", mock.Anything, "file-1", 1).
		Return([]*model.Chat{{ID: "chat1"}}, nil).Once()
	client.On("GetChat", mock.Anything, "chat1").Return(chat, nil).Once()

	first := svc.FetchPrompt(ctx, "file-1")
	second := svc.FetchPrompt(ctx, "file-1")
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
}

func TestFetchPrompt_NotFoundIsCachedToo(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	chat := &model.Chat{
		ID: "chat1",
		Messages: []model.Message{
			{ID: "u1", Role: "user", Content: textContent("unrelated chatter")},
		},
	}

	client.On("SearchChats", mock.Anything, "ghost", 1).
		Return([]*model.Chat{{ID: "chat1"}}, nil).Once()
	client.On("GetChat", mock.Anything, "chat1").Return(chat, nil).Once()

	assert.Nil(t, svc.FetchPrompt(ctx, "ghost"))

	// The miss was cached: no second search happens.
	assert.Nil(t, svc.FetchPrompt(ctx, "ghost"))
	client.AssertNumberOfCalls(t, "SearchChats", 1)
}

// With no search hit the full chat list is scanned, most recently updated
// first, so the producing chat is usually found on the first fetch.
func TestFetchPrompt_ListFallbackScansNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	newChat := &model.Chat{
		ID: "new",
		Messages: []model.Message{
			{ID: "u1", Role: "user", Content: textContent("fresh prompt")},
			{
				ID: "a1", ParentID: strPtr("u1"), Role: "assistant",
				Meta: model.MessageMeta{GeneratedFileIDs: []model.FlexID{"file-1"}},
			},
		},
	}

	client.On("SearchChats", mock.Anything, "file-1", 1).Return(nil, nil).Once()
	client.On("ListChats", mock.Anything).Return([]*model.Chat{
		{ID: "old", UpdatedAt: 10},
		{ID: "new", UpdatedAt: 20},
	}, nil).Once()
	// Only the newest chat is fetched; a hit there ends the scan, so no
	// GetChat expectation exists for "old".
	client.On("GetChat", mock.Anything, "new").Return(newChat, nil).Once()

	prompt := svc.FetchPrompt(ctx, "file-1")
	require.NotNil(t, prompt)
	assert.Equal(t, "fresh prompt", *prompt)
}

func TestFetchPrompt_ScanLimitCapsTheWalk(t *testing.T) {
	ctx := context.Background()
	client := mocks.NewMockClient(t)
	svc := media.NewService(client, nil, nil, 1)

	client.On("SearchChats", mock.Anything, "file-1", 1).Return(nil, nil).Once()
	client.On("ListChats", mock.Anything).Return([]*model.Chat{
		{ID: "older", UpdatedAt: 10},
		{ID: "newest", UpdatedAt: 20},
	}, nil).Once()
	// Cap of one: only the newest candidate is ever fetched.
	client.On("GetChat", mock.Anything, "newest").Return(&model.Chat{ID: "newest"}, nil).Once()

	assert.Nil(t, svc.FetchPrompt(ctx, "file-1"))
	client.AssertNumberOfCalls(t, "GetChat", 1)
}

func TestFetchPrompt_ChatFetchFailureSkipsToNextCandidate(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	found := &model.Chat{
		ID: "backup",
		Messages: []model.Message{
			{ID: "u1", Role: "user", Content: textContent("recovered prompt")},
			{
				ID: "a1", ParentID: strPtr("u1"), Role: "assistant",
				Meta: model.MessageMeta{GeneratedFileIDs: []model.FlexID{"file-1"}},
			},
		},
	}

	client.On("SearchChats", mock.Anything, "file-1", 1).Return(nil, nil).Once()
	client.On("ListChats", mock.Anything).Return([]*model.Chat{
		{ID: "flaky", UpdatedAt: 20},
		{ID: "backup", UpdatedAt: 10},
	}, nil).Once()
	client.On("GetChat", mock.Anything, "flaky").Return(nil, errors.New("timeout")).Once()
	client.On("GetChat", mock.Anything, "backup").Return(found, nil).Once()

	prompt := svc.FetchPrompt(ctx, "file-1")
	require.NotNil(t, prompt)
	assert.Equal(t, "recovered prompt", *prompt)
}

func TestFetchPrompt_ListFailureYieldsNil(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	client.On("SearchChats", mock.Anything, "file-1", 1).Return(nil, errors.New("down")).Once()
	client.On("ListChats", mock.Anything).Return(nil, errors.New("down")).Once()

	// Total upstream failure degrades to "not found", never to an error.
	assert.Nil(t, svc.FetchPrompt(ctx, "file-1"))
}
