// Package schemes searches the government scheme index in Elasticsearch.
package schemes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "krishi-assistant/internal/common/errors"
	apphttp "krishi-assistant/internal/common/http"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/common/providers"
	"krishi-assistant/internal/models"
)

const (
	DefaultIndex = "agri_schemes"
	// NationalState tags schemes open to farmers in every state.
	NationalState = "ALL"
	maxResults    = 5
)

// IndexMapping is the mapping EnsureIndex creates the scheme index with.
const IndexMapping = `{
  "mappings": {
    "properties": {
      "name":        {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "tags":        {"type": "text"},
      "description": {"type": "text"},
      "benefit":     {"type": "text", "index": false},
      "url":         {"type": "keyword", "index": false},
      "states":      {"type": "text", "fields": {"keyword": {"type": "keyword"}}}
    }
  }
}`

type document struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Benefit     string   `json:"benefit"`
	URL         string   `json:"url"`
	States      []string `json:"states"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type Client struct {
	es       *elasticsearch.Client
	index    string
	throttle apphttp.Throttle
	logger   logger.Logger
}

func New(es *elasticsearch.Client, index string, throttle apphttp.Throttle, log logger.Logger) *Client {
	if index == "" {
		index = DefaultIndex
	}
	return &Client{
		es:       es,
		index:    index,
		throttle: throttle,
		logger:   log.WithFields(map[string]interface{}{"provider": providers.NameSchemes}),
	}
}

func (c *Client) Name() string {
	return providers.NameSchemes
}

// EnsureIndex creates the scheme index when it does not exist yet.
func (c *Client) EnsureIndex(ctx context.Context) error {
	exists, err := esapi.IndicesExistsRequest{Index: []string{c.index}}.Do(ctx, c.es)
	if err != nil {
		return providers.WrapError(c.Name(), err)
	}
	exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}

	res, err := esapi.IndicesCreateRequest{Index: c.index, Body: strings.NewReader(IndexMapping)}.Do(ctx, c.es)
	if err != nil {
		return providers.WrapError(c.Name(), err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return apperrors.NewProviderUnavailableError(c.Name(), fmt.Errorf("create index %s: %s", c.index, res.Status()))
	}

	c.logger.Info("scheme index created", map[string]interface{}{"index": c.index})
	return nil
}

func (c *Client) Fetch(ctx context.Context, req models.FetchRequest) (models.Payload, error) {
	if _, err := c.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	state := ""
	if req.Location != nil {
		state = req.Location.State
	}

	body, err := json.Marshal(buildQuery(req.Query, state))
	if err != nil {
		return nil, apperrors.NewInvalidRequestError(err.Error())
	}

	search := esapi.SearchRequest{
		Index: []string{c.index},
		Body:  bytes.NewReader(body),
	}
	res, err := search.Do(ctx, c.es)
	if err != nil {
		return nil, providers.WrapError(c.Name(), err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, apperrors.NewProviderUnavailableError(c.Name(), fmt.Errorf("search failed: %s", res.Status()))
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, apperrors.NewMalformedPayloadError(c.Name(), err.Error())
	}

	list := &models.SchemeList{Query: req.Query, State: state}
	for _, hit := range sr.Hits.Hits {
		d := hit.Source
		if d.Name == "" {
			continue
		}
		list.Schemes = append(list.Schemes, models.Scheme{
			Name:        d.Name,
			Description: d.Description,
			Benefit:     d.Benefit,
			URL:         d.URL,
		})
	}
	if len(list.Schemes) == 0 {
		return nil, apperrors.NewProviderUnavailableError(c.Name(), fmt.Errorf("no schemes matched"))
	}

	c.logger.Debug("schemes searched", map[string]interface{}{
		"state":   state,
		"results": len(list.Schemes),
	})
	return list, nil
}

// buildQuery matches free text against name, tags and description, restricted
// to national schemes plus the caller's state when known.
func buildQuery(text, state string) map[string]interface{} {
	var must []interface{}
	if text != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     text,
				"fields":    []string{"name^3", "tags^2", "description"},
				"fuzziness": "AUTO",
			},
		})
	} else {
		must = append(must, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	states := []string{NationalState}
	if state != "" {
		states = append(states, state)
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": must,
				"filter": []interface{}{
					map[string]interface{}{
						"terms": map[string]interface{}{"states.keyword": states},
					},
				},
			},
		},
		"size": maxResults,
	}
}
