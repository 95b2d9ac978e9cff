package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"github.com/project-tktt/jobby/internal/domain"
)

const DefaultIndex = "job_snapshots"

const indexMapping = `{
	"settings": {
		"analysis": {
			"analyzer": {
				"folding": {
					"type": "custom",
					"tokenizer": "standard",
					"filter": ["lowercase", "asciifolding"]
				}
			}
		}
	},
	"mappings": {
		"properties": {
			"id": {"type": "keyword"},
			"title": {
				"type": "text",
				"analyzer": "folding",
				"fields": {"keyword": {"type": "keyword"}}
			},
			"company_logo_url": {"type": "keyword", "index": false},
			"rating": {"type": "float"},
			"employment_type": {"type": "keyword"},
			"location": {"type": "text", "analyzer": "folding", "fields": {"keyword": {"type": "keyword"}}},
			"package_per_annum": {"type": "keyword"},
			"job_description": {"type": "text", "analyzer": "folding"},
			"captured_at": {"type": "date"}
		}
	}
}`

// ElasticsearchIndexer bulk-indexes job snapshots
type ElasticsearchIndexer struct {
	client    *elasticsearch.Client
	indexName string
	logger    *zap.Logger
	now       func() time.Time
}

// NewElasticsearchIndexer connects to the cluster at addresses
func NewElasticsearchIndexer(addresses []string, indexName string, logger *zap.Logger) (*ElasticsearchIndexer, error) {
	if indexName == "" {
		indexName = DefaultIndex
	}
	if err := validName("index", indexName); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: addresses})
	if err != nil {
		return nil, fmt.Errorf("create es client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("es info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("es error: %s", res.Status())
	}

	return &ElasticsearchIndexer{client: client, indexName: indexName, logger: logger, now: time.Now}, nil
}

// EnsureIndex creates the index with its mapping if it does not exist
func (i *ElasticsearchIndexer) EnsureIndex(ctx context.Context) error {
	res, err := i.client.Indices.Exists([]string{i.indexName}, i.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	res, err = i.client.Indices.Create(
		i.indexName,
		i.client.Indices.Create.WithBody(strings.NewReader(indexMapping)),
		i.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index error: %s", res.Status())
	}
	return nil
}

// BulkIndex indexes jobs keyed by id. Per-item failures are logged and
// counted in the returned error.
func (i *ElasticsearchIndexer) BulkIndex(ctx context.Context, jobs []domain.JobSummary) error {
	if len(jobs) == 0 {
		return nil
	}

	body, err := bulkBody(i.indexName, documents(jobs, i.now()))
	if err != nil {
		return err
	}

	res, err := i.client.Bulk(bytes.NewReader(body), i.client.Bulk.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("bulk request: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("bulk error: %s", res.Status())
	}

	var bulkRes struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				ID     string `json:"_id"`
				Status int    `json:"status"`
				Error  struct {
					Type   string `json:"type"`
					Reason string `json:"reason"`
				} `json:"error"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulkRes); err != nil {
		return fmt.Errorf("parse bulk response: %w", err)
	}

	if bulkRes.Errors {
		failed := 0
		for _, item := range bulkRes.Items {
			if item.Index.Status >= 400 {
				failed++
				i.logger.Warn("bulk index item failed",
					zap.String("job_id", item.Index.ID),
					zap.String("type", item.Index.Error.Type),
					zap.String("reason", item.Index.Error.Reason))
			}
		}
		return fmt.Errorf("bulk index: %d of %d items failed", failed, len(jobs))
	}
	return nil
}

// bulkBody renders the NDJSON payload for the _bulk endpoint
func bulkBody(index string, docs []Document) ([]byte, error) {
	var buf bytes.Buffer
	for _, doc := range docs {
		meta := map[string]any{
			"index": map[string]any{
				"_index": index,
				"_id":    doc.ID,
			},
		}
		metaBytes, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("marshal meta %s: %w", doc.ID, err)
		}
		buf.Write(metaBytes)
		buf.WriteByte('\n')

		docBytes, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("marshal job %s: %w", doc.ID, err)
		}
		buf.Write(docBytes)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
