package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/xcode96/SOC/internal/content"
	"github.com/xcode96/SOC/internal/logger"
	"github.com/xcode96/SOC/internal/store"
)

var (
	ErrGuideNotFound  = errors.New("guide not found")
	ErrGuideExists    = errors.New("guide already exists")
	ErrTopicNotFound  = errors.New("topic not found")
	ErrDuplicateTopic = errors.New("a topic with this id already exists")
)

// Library manages guides persisted as JSON documents in a Store
type Library struct {
	store store.Store
	log   *logger.Logger

	// serializes read-modify-write cycles within this process
	mu sync.Mutex
}

// New creates a library over s
func New(s store.Store, log *logger.Logger) *Library {
	if log == nil {
		log = logger.Discard()
	}
	return &Library{store: s, log: log}
}

func guideKey(id string) string {
	return "guide:" + id
}

// Guide loads a guide
func (l *Library) Guide(ctx context.Context, id string) (*content.Guide, error) {
	raw, err := l.store.Get(ctx, guideKey(id))
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrGuideNotFound, id)
	}
	if err != nil {
		l.log.StoreError("get", guideKey(id), err)
		return nil, fmt.Errorf("failed to load guide %s: %w", id, err)
	}

	var guide content.Guide
	if err := json.Unmarshal([]byte(raw), &guide); err != nil {
		return nil, fmt.Errorf("failed to decode guide %s: %w", id, err)
	}
	return &guide, nil
}

func (l *Library) put(ctx context.Context, id string, guide *content.Guide) error {
	data, err := json.Marshal(guide)
	if err != nil {
		return fmt.Errorf("failed to encode guide %s: %w", id, err)
	}
	if err := l.store.Set(ctx, guideKey(id), string(data)); err != nil {
		l.log.StoreError("set", guideKey(id), err)
		return fmt.Errorf("failed to save guide %s: %w", id, err)
	}
	return nil
}

// CreateGuide stores a new guide holding a single welcome topic
func (l *Library) CreateGuide(ctx context.Context, id, title string) (*content.Guide, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("guide id and title are required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.Guide(ctx, id); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrGuideExists, id)
	} else if !errors.Is(err, ErrGuideNotFound) {
		return nil, err
	}

	guide := &content.Guide{
		Title: title + " Interactive Guide",
		Topics: []content.Topic{{
			ID:    "toc",
			Title: "Welcome to " + title,
			Content: content.Blocks{
				content.Heading{Level: 2, Text: "Welcome to the " + title + " Guide"},
				content.Paragraph{Parts: []content.Part{content.Text{Text: "This is a new guide. Start adding topics!"}}},
			},
		}},
	}
	if err := l.put(ctx, id, guide); err != nil {
		return nil, err
	}

	l.log.GuideCreated(id, guide.Title)
	return guide, nil
}

// TopicID normalizes a requested topic id to a slug with whitespace removed. An empty
// request falls back to the title's slug, then to a random id.
func TopicID(requested, title string) string {
	id := content.Slug(strings.Join(strings.Fields(requested), ""))
	if id == "" {
		id = content.Slug(title)
	}
	if id == "" {
		id = uuid.NewString()
	}
	return id
}

// AddTopic appends a placeholder topic to a guide
func (l *Library) AddTopic(ctx context.Context, guideID, topicID, title string) (*content.Topic, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("topic title is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	guide, err := l.Guide(ctx, guideID)
	if err != nil {
		return nil, err
	}

	id := TopicID(topicID, title)
	if _, exists := guide.Topic(id); exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTopic, id)
	}

	guide.Topics = append(guide.Topics, content.Topic{
		ID:    id,
		Title: title,
		Content: content.Blocks{
			content.Heading{Level: 2, Text: title},
			content.Paragraph{Parts: []content.Part{content.Text{Text: "Content for this topic is coming soon."}}},
		},
	})
	if err := l.put(ctx, guideID, guide); err != nil {
		return nil, err
	}

	topic, _ := guide.Topic(id)
	return topic, nil
}

// TopicMarkup returns a topic's content as markup for editing
func (l *Library) TopicMarkup(ctx context.Context, guideID, topicID string) (string, error) {
	guide, err := l.Guide(ctx, guideID)
	if err != nil {
		return "", err
	}
	topic, ok := guide.Topic(topicID)
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrTopicNotFound, guideID, topicID)
	}
	return content.Serialize(topic.Content), nil
}

// SaveTopic parses markup and replaces the content of an existing topic
func (l *Library) SaveTopic(ctx context.Context, guideID, topicID, markup string) (*content.Topic, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	guide, err := l.Guide(ctx, guideID)
	if err != nil {
		return nil, err
	}
	topic, ok := guide.Topic(topicID)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrTopicNotFound, guideID, topicID)
	}

	topic.Content = content.Parse(markup)
	l.log.TopicParsed(guideID, topicID, len(topic.Content))

	if err := l.put(ctx, guideID, guide); err != nil {
		return nil, err
	}

	l.log.TopicSaved(guideID, topicID)
	return topic, nil
}

// Import replaces a guide wholesale with the one parsed from doc, creating it if needed.
// A document without topics is rejected and the stored guide is left as it was.
func (l *Library) Import(ctx context.Context, guideID, doc string) (*content.Guide, error) {
	guide, err := content.ParseGuide(doc)
	if err != nil {
		l.log.ImportRejected(guideID, err)
		return nil, fmt.Errorf("failed to import guide %s: %w", guideID, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if guide.Title == "" {
		if existing, err := l.Guide(ctx, guideID); err == nil {
			guide.Title = existing.Title
		}
	}
	for _, topic := range guide.Topics {
		l.log.TopicParsed(guideID, topic.ID, len(topic.Content))
	}

	if err := l.put(ctx, guideID, guide); err != nil {
		return nil, err
	}

	l.log.GuideImported(guideID, len(guide.Topics))
	return guide, nil
}

// Export renders a stored guide as a markup document
func (l *Library) Export(ctx context.Context, guideID string) (string, error) {
	guide, err := l.Guide(ctx, guideID)
	if err != nil {
		return "", err
	}

	doc := content.SerializeGuide(guide)
	l.log.GuideExported(guideID, len(doc))
	return doc, nil
}
