package handlers

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// DocsHandler serves the OpenAPI description of the API.
type DocsHandler struct {
	document any
}

// NewDocsHandler parses the embedded document once.
func NewDocsHandler() (*DocsHandler, error) {
	var doc any
	if err := yaml.Unmarshal(openAPIDocument, &doc); err != nil {
		return nil, fmt.Errorf("parse openapi document: %w", err)
	}
	return &DocsHandler{document: jsonCompatible(doc)}, nil
}

// JSON handles GET /api/v1/docs.
func (h *DocsHandler) JSON(c *gin.Context) {
	c.JSON(http.StatusOK, h.document)
}

// YAML handles GET /api/v1/docs/openapi.yaml.
func (h *DocsHandler) YAML(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml", openAPIDocument)
}

// jsonCompatible turns yaml maps with non-string keys into string keyed maps.
func jsonCompatible(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = jsonCompatible(item)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = jsonCompatible(item)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = jsonCompatible(item)
		}
		return t
	}
	return v
}
