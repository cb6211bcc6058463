package parsers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/newscat-core/server/internal/category"
	errx "github.com/newscat-core/server/internal/core/error"
	logx "github.com/newscat-core/server/pkg/logger"
)

// basic safety limits to avoid pathological inputs
const (
	maxContentLen = 64 * 1024 // 64KB
	maxItems      = 100       // maximum number of list items to inspect
	maxErrSnippet = 200       // limit error snippet size
)

var ErrNoJSONObject = errors.New("no json object in model response")

// CategoryResponse is the parsed model output plus what the parser had to fix.
type CategoryResponse struct {
	Categories category.List
	Metadata   map[string]any
}

type rawResponse struct {
	RelevantCategories *[]any `json:"relevant_categories"`
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// decodeObject finds the first JSON object in s that decodes and carries
// relevant_categories, tolerating prose and other objects around it. When
// objects decode but none has the key, the first of them is returned.
func decodeObject(s string) (*rawResponse, error) {
	var first *rawResponse
	for start := strings.IndexByte(s, '{'); start >= 0; {
		var raw rawResponse
		dec := json.NewDecoder(strings.NewReader(s[start:]))
		if err := dec.Decode(&raw); err == nil {
			if raw.RelevantCategories != nil {
				return &raw, nil
			}
			if first == nil {
				first = &raw
			}
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	if first != nil {
		return first, nil
	}
	return nil, ErrNoJSONObject
}

// ParseCategoryResponse turns the model's reply into a category list that
// satisfies the classifier output rules: known codes only, no duplicates,
// baseline present.
func ParseCategoryResponse(content string) (resp *CategoryResponse, err error) {
	// panic safety
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Str("component", "category_parser").Msgf("panic recovered: %v", r)
			err = errx.New(fmt.Errorf("category parser panic"), http.StatusInternalServerError, errx.SystemErrorMessage)
			resp = nil
		}
	}()

	resp = &CategoryResponse{Metadata: map[string]any{"parser": "json"}}

	if len(content) > maxContentLen {
		logx.Warn().
			Str("component", "category_parser").
			Int("max_len", maxContentLen).
			Int("orig_len", len(content)).
			Msg("content truncated due to size limit")
		content = truncate(content, maxContentLen)
		resp.Metadata["truncated"] = true
	}
	if !utf8.ValidString(content) {
		content = strings.ToValidUTF8(content, "")
	}

	raw, err := decodeObject(stripFences(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, safeSnippet(content))
	}
	if raw.RelevantCategories == nil {
		return nil, fmt.Errorf("model response missing relevant_categories: %q", safeSnippet(content))
	}

	var dropped []string
	seen := category.NewSet()
	for i, item := range *raw.RelevantCategories {
		if i >= maxItems {
			resp.Metadata["items_capped"] = true
			break
		}
		s, ok := item.(string)
		if !ok {
			dropped = append(dropped, fmt.Sprint(item))
			continue
		}
		code, perr := category.Parse(s)
		if perr != nil {
			dropped = append(dropped, s)
			continue
		}
		if seen.Has(code) {
			continue
		}
		seen.Add(code)
		resp.Categories = append(resp.Categories, code)
	}

	if len(dropped) > 0 {
		logx.Warn().
			Str("component", "category_parser").
			Strs("dropped", dropped).
			Msg("model returned unknown categories")
		resp.Metadata["dropped"] = dropped
	}
	if !seen.Has(category.Baseline) {
		resp.Categories = append(resp.Categories, category.Baseline)
		resp.Metadata["baseline_added"] = true
	}
	return resp, nil
}

// --- helpers ---

func safeSnippet(s string) string {
	return truncate(strings.TrimSpace(s), maxErrSnippet)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
