package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/apitest/backend/internal/domain/spec"
)

// Postman-style collection export. Folders nest via "item"; leaf items
// carry a "request".
type collection struct {
	Info struct {
		Name string `json:"name"`
	} `json:"info"`
	Items []collectionItem `json:"item"`
}

type collectionItem struct {
	Name    string             `json:"name"`
	Items   []collectionItem   `json:"item"`
	Request *collectionRequest `json:"request"`
}

type collectionRequest struct {
	Method string         `json:"method"`
	URL    collectionURL  `json:"url"`
	Header []keyValueItem `json:"header"`
	Body   collectionBody `json:"body"`
}

type collectionURL struct {
	Raw   string         `json:"raw"`
	Path  []string       `json:"path"`
	Query []keyValueItem `json:"query"`
}

type collectionBody struct {
	Mode       string          `json:"mode"`
	Raw        string          `json:"raw"`
	FormData   []keyValueItem  `json:"formdata"`
	URLEncoded []keyValueItem  `json:"urlencoded"`
	GraphQL    json.RawMessage `json:"graphql"`
}

type keyValueItem struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled"`
}

// ParseCollection reads a Postman-style collection export. Folder paths
// become interface names ("folder/request"); ":param" URL segments
// become required PATH parameters; query, header and body entries
// become tagged trees for normalization. Raw JSON bodies are decoded
// into nested trees so nested object parameters flatten into dotted
// paths downstream.
func ParseCollection(r io.Reader) (*ParseResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, shared.NewDomainError("PARSE_ERROR", fmt.Sprintf("Cannot read collection: %v", err))
	}

	var col collection
	if err := json.Unmarshal(raw, &col); err != nil {
		return nil, shared.NewDomainError("PARSE_ERROR", fmt.Sprintf("Collection is not valid JSON: %v", err))
	}
	if len(col.Items) == 0 {
		return nil, shared.NewDomainError("PARSE_ERROR", "Collection contains no items")
	}

	result := &ParseResult{}
	for _, item := range col.Items {
		walkItem(item, "", result)
	}
	if len(result.Interfaces) == 0 {
		return nil, shared.NewDomainError("PARSE_ERROR", "Collection contains no requests")
	}
	return result, nil
}

func walkItem(item collectionItem, parentPath string, result *ParseResult) {
	name := item.Name
	if name == "" {
		name = "unnamed"
	}
	currentPath := name
	if parentPath != "" {
		currentPath = parentPath + "/" + name
	}

	if len(item.Items) > 0 {
		for _, sub := range item.Items {
			walkItem(sub, currentPath, result)
		}
		return
	}
	if item.Request == nil {
		return
	}

	parsed := ParsedInterface{
		Name:           currentPath,
		URL:            buildURL(item.Request.URL),
		Method:         item.Request.Method,
		DefaultHeaders: headerMap(item.Request.Header),
	}

	if tree, optional := pathTree(item.Request.URL.Path); len(tree) > 0 {
		parsed.Trees = append(parsed.Trees, TaggedTree{Location: spec.LocationPath, Tree: tree, OptionalKeys: optional})
	}
	if tree, optional := keyValueTree(item.Request.URL.Query); len(tree) > 0 {
		parsed.Trees = append(parsed.Trees, TaggedTree{Location: spec.LocationQuery, Tree: tree, OptionalKeys: optional})
	}
	if tree, optional := keyValueTree(item.Request.Header); len(tree) > 0 {
		parsed.Trees = append(parsed.Trees, TaggedTree{Location: spec.LocationHeader, Tree: tree, OptionalKeys: optional})
	}
	if tree, optional, warn := bodyTree(item.Request.Body); len(tree) > 0 || warn != "" {
		if warn != "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", currentPath, warn))
		}
		if len(tree) > 0 {
			parsed.Trees = append(parsed.Trees, TaggedTree{Location: spec.LocationBody, Tree: tree, OptionalKeys: optional})
		}
	}

	result.Interfaces = append(result.Interfaces, parsed)
}

// buildURL reconstructs the request path with ":param" segments turned
// into "{param}" placeholders. Falls back to the raw URL when no path
// segments are present.
func buildURL(u collectionURL) string {
	if len(u.Path) == 0 {
		return u.Raw
	}
	segments := make([]string, len(u.Path))
	for i, seg := range u.Path {
		if strings.HasPrefix(seg, ":") {
			segments[i] = "{" + seg[1:] + "}"
		} else {
			segments[i] = seg
		}
	}
	return "/" + strings.Join(segments, "/")
}

func pathTree(segments []string) (map[string]any, []string) {
	tree := make(map[string]any)
	for _, seg := range segments {
		if strings.HasPrefix(seg, ":") && len(seg) > 1 {
			name := seg[1:]
			tree[name] = "{" + name + "}"
		}
	}
	return tree, nil
}

func keyValueTree(items []keyValueItem) (map[string]any, []string) {
	tree := make(map[string]any)
	var optional []string
	for _, item := range items {
		if item.Key == "" {
			continue
		}
		tree[item.Key] = item.Value
		if item.Disabled {
			optional = append(optional, item.Key)
		}
	}
	return tree, optional
}

func bodyTree(body collectionBody) (map[string]any, []string, string) {
	switch body.Mode {
	case "formdata":
		tree, optional := keyValueTree(body.FormData)
		return tree, optional, ""
	case "urlencoded":
		tree, optional := keyValueTree(body.URLEncoded)
		return tree, optional, ""
	case "raw":
		if strings.TrimSpace(body.Raw) == "" {
			return nil, nil, ""
		}
		var tree map[string]any
		if err := json.Unmarshal([]byte(body.Raw), &tree); err != nil {
			return nil, nil, fmt.Sprintf("raw body is not a JSON object, skipped: %v", err)
		}
		return tree, nil, ""
	case "":
		return nil, nil, ""
	default:
		return nil, nil, fmt.Sprintf("unsupported body mode %q, skipped", body.Mode)
	}
}

func headerMap(items []keyValueItem) map[string]string {
	if len(items) == 0 {
		return nil
	}
	headers := make(map[string]string, len(items))
	for _, item := range items {
		if item.Key == "" || item.Disabled {
			continue
		}
		headers[item.Key] = item.Value
	}
	return headers
}
