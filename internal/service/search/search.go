package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/dsmolkov/ecommerce_backend/internal/models"
)

// Search runs a fuzzy keyword query over product name and description with
// an optional price range filter. minPrice/maxPrice are nil when the caller
// did not set the corresponding bound.
func Search(ctx context.Context, es *elasticsearch.Client, index, query string, minPrice, maxPrice *float64, from, size int) (int64, []models.Product, error) {
	must := []map[string]any{
		{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
	}

	var filter []map[string]any
	if minPrice != nil || maxPrice != nil {
		rng := map[string]any{}
		if minPrice != nil {
			rng["gte"] = *minPrice
		}
		if maxPrice != nil {
			rng["lte"] = *maxPrice
		}
		filter = append(filter, map[string]any{
			"range": map[string]any{"price": rng},
		})
	}

	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must":   must,
				"filter": filter,
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}
