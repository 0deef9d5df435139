package library

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xcode96/SOC/internal/content"
	"github.com/xcode96/SOC/internal/logger"
	"github.com/xcode96/SOC/internal/store"
)

func newTestLibrary(t *testing.T) (*Library, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	return New(s, logger.Discard()), s
}

func TestCreateGuide(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := context.Background()

	guide, err := lib.CreateGuide(ctx, "soc", "SOC")
	require.NoError(t, err)

	assert.Equal(t, "SOC Interactive Guide", guide.Title)
	require.Len(t, guide.Topics, 1)
	assert.Equal(t, "toc", guide.Topics[0].ID)
	assert.Equal(t, "Welcome to SOC", guide.Topics[0].Title)

	loaded, err := lib.Guide(ctx, "soc")
	require.NoError(t, err)
	assert.Equal(t, guide, loaded)

	_, err = lib.CreateGuide(ctx, "soc", "Again")
	assert.ErrorIs(t, err, ErrGuideExists)
}

func TestGuideNotFound(t *testing.T) {
	lib, _ := newTestLibrary(t)

	_, err := lib.Guide(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrGuideNotFound)
}

func TestAddTopic(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := context.Background()
	_, err := lib.CreateGuide(ctx, "soc", "SOC")
	require.NoError(t, err)

	topic, err := lib.AddTopic(ctx, "soc", "Log Sources", "Log Sources")
	require.NoError(t, err)
	assert.Equal(t, "logsources", topic.ID)
	assert.Equal(t, content.Blocks{
		content.Heading{Level: 2, Text: "Log Sources"},
		content.Paragraph{Parts: []content.Part{content.Text{Text: "Content for this topic is coming soon."}}},
	}, topic.Content)

	_, err = lib.AddTopic(ctx, "soc", "logsources", "Other")
	assert.ErrorIs(t, err, ErrDuplicateTopic)

	_, err = lib.AddTopic(ctx, "missing", "x", "X")
	assert.ErrorIs(t, err, ErrGuideNotFound)

	guide, err := lib.Guide(ctx, "soc")
	require.NoError(t, err)
	assert.Len(t, guide.Topics, 2)
}

func TestTopicID(t *testing.T) {
	assert.Equal(t, "incidentresponse", TopicID("Incident Response", "ignored"))
	assert.Equal(t, "my-topic", TopicID("My.Topic", ""))
	assert.Equal(t, "threat-hunting", TopicID("", "Threat Hunting"))

	random := TopicID("", "???")
	_, err := uuid.Parse(random)
	assert.NoError(t, err, "expected a uuid fallback, got %q", random)
}

func TestSaveTopic(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := context.Background()
	_, err := lib.CreateGuide(ctx, "soc", "SOC")
	require.NoError(t, err)

	markup := "## Overview\n\n- [x] read the **runbook**\n\n> [!TIP]\n> ask for help"
	topic, err := lib.SaveTopic(ctx, "soc", "toc", markup)
	require.NoError(t, err)
	assert.Equal(t, content.Parse(markup), topic.Content)

	got, err := lib.TopicMarkup(ctx, "soc", "toc")
	require.NoError(t, err)
	assert.Equal(t, content.Parse(markup), content.Parse(got))

	_, err = lib.SaveTopic(ctx, "soc", "missing", markup)
	assert.ErrorIs(t, err, ErrTopicNotFound)
}

func TestImportReplacesWholesale(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := context.Background()
	_, err := lib.CreateGuide(ctx, "soc", "SOC")
	require.NoError(t, err)

	doc := "# Imported\n\n## First\n\nbody\n\n---\n\n## Second\n\n1. a\n2. b\n"
	guide, err := lib.Import(ctx, "soc", doc)
	require.NoError(t, err)

	assert.Equal(t, "Imported", guide.Title)
	require.Len(t, guide.Topics, 2)
	assert.Equal(t, "first", guide.Topics[0].ID)
	assert.Equal(t, "second", guide.Topics[1].ID)

	loaded, err := lib.Guide(ctx, "soc")
	require.NoError(t, err)
	assert.Equal(t, guide, loaded)
}

func TestImportKeepsTitleWhenDocumentHasNone(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := context.Background()
	_, err := lib.CreateGuide(ctx, "soc", "SOC")
	require.NoError(t, err)

	guide, err := lib.Import(ctx, "soc", "## Only\n\ntext")
	require.NoError(t, err)
	assert.Equal(t, "SOC Interactive Guide", guide.Title)
}

func TestImportWithoutTopicsLeavesStateUntouched(t *testing.T) {
	s := store.NewMemoryStore()
	var logs bytes.Buffer
	lib := New(s, logger.New(&logs))
	ctx := context.Background()

	_, err := lib.CreateGuide(ctx, "soc", "SOC")
	require.NoError(t, err)
	before, err := s.Get(ctx, "guide:soc")
	require.NoError(t, err)

	_, err = lib.Import(ctx, "soc", "# Title\n\nno topic headings here\n\n### nor here")
	require.Error(t, err)
	assert.True(t, errors.Is(err, content.ErrNoTopics))
	assert.Contains(t, err.Error(), "could not parse any topics")

	after, err := s.Get(ctx, "guide:soc")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Contains(t, logs.String(), "import rejected")
}

func TestExportRoundtrip(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := context.Background()
	_, err := lib.CreateGuide(ctx, "soc", "SOC")
	require.NoError(t, err)
	_, err = lib.AddTopic(ctx, "soc", "", "Playbooks")
	require.NoError(t, err)
	_, err = lib.SaveTopic(ctx, "soc", "playbooks", "| step | owner |\n|---|:-:|\n| triage | {tier 1}[green] |")
	require.NoError(t, err)

	doc, err := lib.Export(ctx, "soc")
	require.NoError(t, err)

	original, err := lib.Guide(ctx, "soc")
	require.NoError(t, err)

	_, err = lib.Import(ctx, "copy", doc)
	require.NoError(t, err)
	copied, err := lib.Guide(ctx, "copy")
	require.NoError(t, err)

	assert.Equal(t, original, copied)
}

func TestExportMissingGuide(t *testing.T) {
	lib, _ := newTestLibrary(t)
	_, err := lib.Export(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrGuideNotFound)
}

type failingStore struct{ store.Store }

func (failingStore) Set(ctx context.Context, key, value string) error {
	return errors.New("disk full")
}

func TestStoreErrorsAreWrapped(t *testing.T) {
	lib := New(failingStore{store.NewMemoryStore()}, nil)

	_, err := lib.CreateGuide(context.Background(), "soc", "SOC")
	assert.ErrorContains(t, err, "failed to save guide soc: disk full")
}
