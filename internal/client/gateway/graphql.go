package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/repslog/internal/client/models"
	"github.com/dmitrijs2005/repslog/internal/common"
	"github.com/dmitrijs2005/repslog/internal/logging"
	"github.com/machinebox/graphql"
)

type GraphQLGateway struct {
	client *graphql.Client
	log    logging.Logger
}

// NewGraphQLGateway builds a gateway for endpoint. tokens may be nil for
// unauthenticated use; timeout <= 0 means no client-side timeout.
func NewGraphQLGateway(endpoint string, tokens TokenSource, timeout time.Duration, log logging.Logger) *GraphQLGateway {
	if log == nil {
		log = logging.Discard()
	}
	hc := &http.Client{
		Timeout:   timeout,
		Transport: &authTransport{base: http.DefaultTransport, tokens: tokens},
	}
	c := graphql.NewClient(endpoint, graphql.WithHTTPClient(hc))
	c.Log = func(s string) { log.Debug(context.Background(), "graphql", "msg", s) }

	return &GraphQLGateway{client: c, log: log}
}

func (g *GraphQLGateway) Query(ctx context.Context, document string, vars map[string]any, decodePath string) (json.RawMessage, error) {
	return g.run(ctx, document, vars, decodePath)
}

func (g *GraphQLGateway) Mutate(ctx context.Context, document string, vars map[string]any, decodePath string) (json.RawMessage, error) {
	return g.run(ctx, document, vars, decodePath)
}

func (g *GraphQLGateway) run(ctx context.Context, document string, vars map[string]any, decodePath string) (json.RawMessage, error) {
	req := graphql.NewRequest(document)
	for k, v := range vars {
		req.Var(k, v)
	}

	var data json.RawMessage
	if err := g.client.Run(ctx, req, &data); err != nil {
		return nil, err
	}

	return extractPath(data, decodePath)
}

// extractPath walks a dotted path of object keys inside data.
func extractPath(data json.RawMessage, path string) (json.RawMessage, error) {
	cur := data
	if path != "" {
		for _, key := range strings.Split(path, ".") {
			if isNull(cur) {
				return nil, fmt.Errorf("%w: %s", common.ErrNotFound, path)
			}
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(cur, &obj); err != nil {
				return nil, fmt.Errorf("decode %s: %w", path, err)
			}
			next, ok := obj[key]
			if !ok {
				return nil, fmt.Errorf("%w: %s", common.ErrNotFound, path)
			}
			cur = next
		}
	}
	if isNull(cur) {
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, path)
	}
	return cur, nil
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func decodeInto[T any](raw json.RawMessage, err error) (T, error) {
	var v T
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode response: %w", err)
	}
	return v, nil
}

// decodeItems decodes a list connection, dropping null members.
func decodeItems[T any](raw json.RawMessage, err error) ([]T, error) {
	ptrs, err := decodeInto[[]*T](raw, err)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(ptrs))
	for _, p := range ptrs {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (g *GraphQLGateway) ListProperties(ctx context.Context) ([]models.Property, error) {
	return decodeItems[models.Property](g.Query(ctx, ListPropertiesQuery, nil, "listProperties.items"))
}

func (g *GraphQLGateway) GetProperty(ctx context.Context, id string) (models.Property, error) {
	return decodeInto[models.Property](g.Query(ctx, GetPropertyQuery, map[string]any{"id": id}, "getProperty"))
}

func (g *GraphQLGateway) CreateProperty(ctx context.Context, in PropertyInput) (models.Property, error) {
	return decodeInto[models.Property](g.Mutate(ctx, CreatePropertyMutation, map[string]any{"input": in}, "createProperty"))
}

func (g *GraphQLGateway) UpdateProperty(ctx context.Context, in PropertyInput) (models.Property, error) {
	return decodeInto[models.Property](g.Mutate(ctx, UpdatePropertyMutation, map[string]any{"input": in.updateVars()}, "updateProperty"))
}

func (g *GraphQLGateway) DeleteProperty(ctx context.Context, id string) error {
	_, err := g.Mutate(ctx, DeletePropertyMutation, map[string]any{"input": map[string]any{"id": id}}, "deleteProperty")
	return err
}

func (g *GraphQLGateway) ListCategories(ctx context.Context) ([]models.Category, error) {
	return decodeItems[models.Category](g.Query(ctx, ListCategoriesQuery, nil, "listCategories.items"))
}

func (g *GraphQLGateway) GetCategory(ctx context.Context, id string) (models.Category, error) {
	return decodeInto[models.Category](g.Query(ctx, GetCategoryQuery, map[string]any{"id": id}, "getCategory"))
}

func (g *GraphQLGateway) ListEntries(ctx context.Context) ([]models.Entry, error) {
	return decodeItems[models.Entry](g.Query(ctx, ListEntriesQuery, nil, "listEntries.items"))
}
