package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// SafeJoin joins target under root/sub, refusing paths that escape it.
func SafeJoin(root, sub, target string) string {
	cleanTarget := filepath.Clean(target)
	if strings.Contains(cleanTarget, "..") || filepath.IsAbs(cleanTarget) {
		return ""
	}
	return filepath.Join(root, sub, cleanTarget)
}

// ParseFrontMatter splits a content file into front matter, body and the
// detected format (yaml, toml or json).
func ParseFrontMatter(content []byte) (map[string]interface{}, string, string, error) {
	str := normalizeLineEndings(string(content))
	// Check for YAML (---)
	if fmText, body, ok := splitFence(str, "---"); ok {
		var fm map[string]interface{}
		if err := yaml.Unmarshal([]byte(fmText), &fm); err == nil {
			return sanitizeFrontMatter(fm), strings.TrimSpace(body), "yaml", nil
		}
	}
	// Check for TOML (+++)
	if fmText, body, ok := splitFence(str, "+++"); ok {
		var fm map[string]interface{}
		if err := toml.Unmarshal([]byte(fmText), &fm); err == nil {
			return sanitizeFrontMatter(fm), strings.TrimSpace(body), "toml", nil
		}
	}
	// JSON front matter is a leading object followed by the body.
	if strings.HasPrefix(strings.TrimSpace(str), "{") {
		dec := json.NewDecoder(strings.NewReader(str))
		var fm map[string]interface{}
		if err := dec.Decode(&fm); err == nil {
			rest := str[dec.InputOffset():]
			return fm, strings.TrimSpace(rest), "json", nil
		}
	}

	return nil, "", "", fmt.Errorf("unknown format")
}

// splitFence cuts str into the block between two fence lines and the rest.
func splitFence(str, fence string) (string, string, bool) {
	if !strings.HasPrefix(str, fence+"\n") {
		return "", "", false
	}
	rest := str[len(fence)+1:]
	if rest == fence || strings.HasPrefix(rest, fence+"\n") {
		return "", strings.TrimPrefix(rest, fence), true
	}
	idx := strings.Index(rest, "\n"+fence+"\n")
	if idx < 0 {
		if strings.HasSuffix(rest, "\n"+fence) {
			return strings.TrimSuffix(rest, "\n"+fence), "", true
		}
		return "", "", false
	}
	return rest[:idx], rest[idx+len(fence)+2:], true
}

// ConstructFileContent renders front matter and body in the given format.
func ConstructFileContent(fm map[string]interface{}, body string, format string) ([]byte, error) {
	normalizedFM := sanitizeFrontMatter(fm)
	if normalizedFM == nil {
		normalizedFM = map[string]interface{}{}
	}

	var buf bytes.Buffer
	switch format {
	case "yaml":
		buf.WriteString("---\n")
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		buf.WriteString("---\n")
	case "toml":
		buf.WriteString("+++\n")
		enc := toml.NewEncoder(&buf)
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
		buf.WriteString("+++\n")
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(normalizedFM); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

func sanitizeFrontMatter(fm map[string]interface{}) map[string]interface{} {
	if fm == nil {
		return nil
	}
	sanitized := make(map[string]interface{}, len(fm))
	for k, v := range fm {
		sanitized[k] = sanitizeFrontMatterValue(v)
	}
	return sanitized
}

// sanitizeFrontMatterValue makes decoded front matter JSON friendly.
func sanitizeFrontMatterValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return sanitizeFrontMatter(v)
	case map[interface{}]interface{}:
		normalized := make(map[string]interface{}, len(v))
		for key, inner := range v {
			normalized[fmt.Sprint(key)] = sanitizeFrontMatterValue(inner)
		}
		return normalized
	case []interface{}:
		slice := make([]interface{}, len(v))
		for i := range v {
			slice[i] = sanitizeFrontMatterValue(v[i])
		}
		return slice
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	default:
		return v
	}
}

func normalizeLineEndings(input string) string {
	return strings.ReplaceAll(input, "\r\n", "\n")
}

// pruneEmptyFields drops empty strings and lists so equivalent documents
// render the same front matter.
func pruneEmptyFields(val interface{}) interface{} {
	switch v := val.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{})
		for k, elem := range v {
			if pruned := pruneEmptyFields(elem); pruned != nil {
				out[k] = pruned
			}
		}
		return out
	case []interface{}:
		if len(v) == 0 {
			return nil
		}
		for i := range v {
			v[i] = pruneEmptyFields(v[i])
		}
		return v
	case string:
		if v == "" {
			return nil
		}
		return v
	default:
		return v
	}
}
