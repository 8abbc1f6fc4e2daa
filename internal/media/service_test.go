package media_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "mediadeck/backend/internal/errors"
	"mediadeck/backend/internal/media"
	"mediadeck/backend/internal/model"
	"mediadeck/backend/internal/upstream/mocks"
)

func setupService(t *testing.T) (*media.Service, *mocks.MockClient) {
	client := mocks.NewMockClient(t)
	svc := media.NewService(client, nil, nil, 0)
	return svc, client
}

// overviewFixture has one file per derivation case: explicit owner in meta,
// the orphan sentinel, a top-level chat id, and no hint at all.
func overviewFixture() *model.Overview {
	return &model.Overview{
		Files: []*model.File{
			{ID: "f1", Filename: "a.png", Meta: model.FileMeta{ContentType: "image/png", ChatID: "chatA"}},
			{ID: "f2", Filename: "b.mp4", Meta: model.FileMeta{ContentType: "video/mp4", ChatID: "orphan"}},
			{ID: "f3", Filename: "c.mp3", Meta: model.FileMeta{ContentType: "audio/mpeg"}, ChatID: "chatB"},
			{ID: "f4", Filename: "d.pdf"},
		},
		Chats:   []*model.Chat{{ID: "chatA", Title: "Chat A", UpdatedAt: 100}},
		Folders: []*model.Folder{{ID: "fold1", Name: "Projects"}},
		Total:   4,
	}
}

func TestService_FetchOverview_DerivesAssociations(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	client.On("GetMediaOverview", mock.Anything, 0, 0).Return(overviewFixture(), nil).Once()

	result, err := svc.FetchOverview(ctx, 0, 0)
	require.NoError(t, err)

	require.Len(t, result.FileToChat, 4)
	require.NotNil(t, result.FileToChat["f1"])
	assert.Equal(t, "chatA", *result.FileToChat["f1"])

	// The "orphan" sentinel derives to nil, not to the literal string.
	chatID, resolved := result.FileToChat.Resolved("f2")
	assert.True(t, resolved)
	assert.Nil(t, chatID)

	require.NotNil(t, result.FileToChat["f3"])
	assert.Equal(t, "chatB", *result.FileToChat["f3"])

	// No hint at all still resolves, to nil.
	chatID, resolved = result.FileToChat.Resolved("f4")
	assert.True(t, resolved)
	assert.Nil(t, chatID)

	assert.Equal(t, "Chat A", result.ChatsByID["chatA"].Title)
	assert.Equal(t, "Projects", result.FoldersByID["fold1"].Name)
	assert.Equal(t, media.Counts{All: 4, Image: 1, Video: 1, Audio: 1}, result.Counts)
	assert.Equal(t, 4, result.Total)
}

func TestService_FetchOverview_MetaChatIDWinsOverTopLevel(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	overview := &model.Overview{
		Files: []*model.File{
			{ID: "f1", Meta: model.FileMeta{ChatID: "metaChat"}, ChatID: "topChat"},
			{ID: "f2", Meta: model.FileMeta{SourceChatID: "sourceChat"}, ChatID: "topChat"},
		},
	}
	client.On("GetMediaOverview", mock.Anything, 0, 0).Return(overview, nil).Once()

	result, err := svc.FetchOverview(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "metaChat", *result.FileToChat["f1"])
	assert.Equal(t, "sourceChat", *result.FileToChat["f2"])
}

func TestService_FetchOverview_EmptyResponse(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	client.On("GetMediaOverview", mock.Anything, 0, 0).Return(nil, nil).Once()

	result, err := svc.FetchOverview(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Empty(t, result.ChatsByID)
	assert.Empty(t, result.FoldersByID)
	assert.Empty(t, result.FileToChat)
}

func TestService_FetchOverview_TransportErrorPropagates(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	client.On("GetMediaOverview", mock.Anything, 0, 0).Return(nil, app_errors.ErrUpstream).Once()

	_, err := svc.FetchOverview(ctx, 0, 0)
	assert.ErrorIs(t, err, app_errors.ErrUpstream)
}

func TestService_ResolveFileChat_CachedValueSkipsNetwork(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	client.On("GetMediaOverview", mock.Anything, 0, 0).Return(overviewFixture(), nil).Once()
	_, err := svc.FetchOverview(ctx, 0, 0)
	require.NoError(t, err)

	// Both calls hit the cache; no SearchChats expectation is registered,
	// so any network call would fail the test.
	first, err := svc.ResolveFileChat(ctx, "f1")
	require.NoError(t, err)
	second, err := svc.ResolveFileChat(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "chatA", *second)

	// Cached nil (confirmed orphan) is returned as-is, also without
	// touching the network.
	chatID, err := svc.ResolveFileChat(ctx, "f2")
	require.NoError(t, err)
	assert.Nil(t, chatID)
}

func TestService_ResolveFileChat_UnknownFile(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	client.On("GetMediaOverview", mock.Anything, 0, 0).Return(overviewFixture(), nil).Once()
	_, err := svc.FetchOverview(ctx, 0, 0)
	require.NoError(t, err)

	_, err = svc.ResolveFileChat(ctx, "missing")
	assert.ErrorIs(t, err, app_errors.ErrNotFound)
}

func TestService_ResolveFileChat_MetadataHintAfterInvalidation(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	client.On("GetMediaOverview", mock.Anything, 0, 0).Return(overviewFixture(), nil).Once()
	_, err := svc.FetchOverview(ctx, 0, 0)
	require.NoError(t, err)

	// f3 carries a top-level chat id, so re-resolution succeeds from the
	// hint alone, without a search call.
	svc.InvalidateFile(ctx, "f3")
	chatID, err := svc.ResolveFileChat(ctx, "f3")
	require.NoError(t, err)
	require.NotNil(t, chatID)
	assert.Equal(t, "chatB", *chatID)
}

func TestService_ResolveFileChat_SearchFallback(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	client.On("GetMediaOverview", mock.Anything, 0, 0).Return(overviewFixture(), nil).Once()
	_, err := svc.FetchOverview(ctx, 0, 0)
	require.NoError(t, err)

	svc.InvalidateFile(ctx, "f4")
	client.On("SearchChats", mock.Anything, "f4", 1).
		Return([]*model.Chat{{ID: "chatX", Title: "Found"}}, nil).Once()

	chatID, err := svc.ResolveFileChat(ctx, "f4")
	require.NoError(t, err)
	require.NotNil(t, chatID)
	assert.Equal(t, "chatX", *chatID)

	// The hit's minimal chat record is opportunistically indexed.
	require.NotNil(t, svc.ChatByID("chatX"))
	assert.Equal(t, "Found", svc.ChatByID("chatX").Title)

	// Second call is served from the cache; SearchChats is Once().
	again, err := svc.ResolveFileChat(ctx, "f4")
	require.NoError(t, err)
	assert.Equal(t, "chatX", *again)
}

func TestService_ResolveFileChat_SearchFailureCachesOrphan(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	client.On("GetMediaOverview", mock.Anything, 0, 0).Return(overviewFixture(), nil).Once()
	_, err := svc.FetchOverview(ctx, 0, 0)
	require.NoError(t, err)

	svc.InvalidateFile(ctx, "f4")
	client.On("SearchChats", mock.Anything, "f4", 1).
		Return(nil, errors.New("search unavailable")).Once()

	// The search failure degrades to "no owner" instead of propagating.
	chatID, err := svc.ResolveFileChat(ctx, "f4")
	require.NoError(t, err)
	assert.Nil(t, chatID)

	// And the nil result was cached: no second search happens.
	chatID, err = svc.ResolveFileChat(ctx, "f4")
	require.NoError(t, err)
	assert.Nil(t, chatID)
}

func TestService_DeleteFiles_PartialFailure(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	client.On("DeleteFile", mock.Anything, "a").Return(nil).Once()
	client.On("DeleteFile", mock.Anything, "b").Return(errors.New("boom")).Once()
	client.On("DeleteFile", mock.Anything, "c").Return(nil).Once()

	failed := svc.DeleteFiles(ctx, []string{"a", "b", "c"})

	// "b" failed, but "c" was still attempted.
	assert.Equal(t, []string{"b"}, failed)
	client.AssertNumberOfCalls(t, "DeleteFile", 3)
}

func TestService_DeleteFile_DropsCaches(t *testing.T) {
	ctx := context.Background()
	svc, client := setupService(t)

	client.On("GetMediaOverview", mock.Anything, 0, 0).Return(overviewFixture(), nil).Once()
	_, err := svc.FetchOverview(ctx, 0, 0)
	require.NoError(t, err)

	client.On("DeleteFile", mock.Anything, "f1").Return(nil).Once()
	require.NoError(t, svc.DeleteFile(ctx, "f1"))

	_, resolved := svc.Associations().Resolved("f1")
	assert.False(t, resolved)
	assert.Len(t, svc.Files(), 3)
}
