package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// Indexer is the slice of the search client the product service depends on.
type Indexer interface {
	IndexProduct(ctx context.Context, doc ProductDocument) error
	DeleteProduct(ctx context.Context, id int64) error
}

// productMapping is the index mapping for the flat product document.
const productMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	},
	"mappings": {
		"properties": {
			"id":            {"type": "long"},
			"name":          {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
			"slug":          {"type": "keyword"},
			"description":   {"type": "text"},
			"price":         {"type": "double"},
			"sale_price":    {"type": "double"},
			"category_id":   {"type": "long"},
			"category_name": {"type": "keyword"},
			"is_featured":   {"type": "boolean"},
			"view_count":    {"type": "long"},
			"rating":        {"type": "double"},
			"created_at":    {"type": "date"}
		}
	}
}`

// Client wraps the Elasticsearch client for product indexing and search.
type Client struct {
	es     *elasticsearch.Client
	index  string
	logger *zap.Logger
}

// NewClient creates a search client for the given addresses and index name.
func NewClient(addresses []string, index string, logger *zap.Logger) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: addresses})
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}
	return &Client{es: es, index: index, logger: logger}, nil
}

// EnsureIndex creates the product index with its mapping if it does not
// already exist.
func (c *Client) EnsureIndex(ctx context.Context) error {
	res, err := c.es.Indices.Exists([]string{c.index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		c.logger.Info("Search index already exists", zap.String("index", c.index))
		return nil
	}

	res, err = c.es.Indices.Create(
		c.index,
		c.es.Indices.Create.WithBody(bytes.NewReader([]byte(productMapping))),
		c.es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index creation rejected: %s", res.String())
	}

	c.logger.Info("Search index created", zap.String("index", c.index))
	return nil
}

// IndexProduct indexes a product document under its ID, replacing any
// previous version.
func (c *Client) IndexProduct(ctx context.Context, doc ProductDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode product document: %w", err)
	}

	res, err := c.es.Index(
		c.index,
		bytes.NewReader(body),
		c.es.Index.WithDocumentID(strconv.FormatInt(doc.ID, 10)),
		c.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to index product: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("indexing rejected: %s", res.String())
	}

	return nil
}

// DeleteProduct removes a product document from the index. A missing
// document is not an error.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	res, err := c.es.Delete(
		c.index,
		strconv.FormatInt(id, 10),
		c.es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to delete product document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("document deletion rejected: %s", res.String())
	}

	return nil
}

// SearchResult carries one page of matching documents.
type SearchResult struct {
	Total    int64             `json:"total"`
	Products []ProductDocument `json:"products"`
}

// SearchProducts runs a multi-field match over name and description.
func (c *Client) SearchProducts(ctx context.Context, query string, page, pageSize int) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}
	from := (page - 1) * pageSize

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^3", "description"},
			},
		},
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search query: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(encoded)),
		c.es.Search.WithFrom(from),
		c.es.Search.WithSize(pageSize),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search rejected: %s", res.String())
	}

	var decoded struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source ProductDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	result := &SearchResult{Total: decoded.Hits.Total.Value}
	for _, hit := range decoded.Hits.Hits {
		result.Products = append(result.Products, hit.Source)
	}

	return result, nil
}
