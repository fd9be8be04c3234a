// Package search publishes documents to the site search index.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Document is one entry in the search index, keyed by its link.
type Document struct {
	ContentID        string `json:"content_id"`
	Link             string `json:"link"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Format           string `json:"format"`
	IndexableContent string `json:"indexable_content"`
}

// Indexer adds documents to the search index.
type Indexer interface {
	Add(ctx context.Context, doc Document) error
}

// KafkaIndexer produces search documents to a topic consumed by the search
// service. Records are keyed by link so later versions compact earlier ones.
type KafkaIndexer struct {
	client *kgo.Client
	topic  string
}

func NewKafkaIndexer(client *kgo.Client, topic string) (*KafkaIndexer, error) {
	if client == nil {
		return nil, errors.New("kafka client is required")
	}
	if topic == "" {
		return nil, errors.New("search topic is required")
	}
	return &KafkaIndexer{client: client, topic: topic}, nil
}

// Add produces doc and waits for the broker acknowledgement.
func (k *KafkaIndexer) Add(ctx context.Context, doc Document) error {
	if doc.Link == "" {
		return errors.New("search document link is required")
	}
	value, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode search document: %w", err)
	}
	record := &kgo.Record{Topic: k.topic, Key: []byte(doc.Link), Value: value}
	if err := k.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce search document: %w", err)
	}
	return nil
}

// MemoryIndexer keeps documents in process, for local runs and tests.
type MemoryIndexer struct {
	mu   sync.RWMutex
	docs map[string]Document
	log  []string
}

func NewMemoryIndexer() *MemoryIndexer {
	return &MemoryIndexer{docs: make(map[string]Document)}
}

func (m *MemoryIndexer) Add(_ context.Context, doc Document) error {
	if doc.Link == "" {
		return errors.New("search document link is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.Link] = doc
	m.log = append(m.log, doc.Link)
	return nil
}

// Get returns the document indexed under link.
func (m *MemoryIndexer) Get(link string) (Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[link]
	return doc, ok
}

// Links returns every added link in the order Add was called.
func (m *MemoryIndexer) Links() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.log...)
}
