package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/user/book-classifier/internal/entity"
)

const analysisSchemaJSON = `{
	"type": "object",
	"required": ["jenjang", "confidence_score", "alasan", "saran", "badge_color"],
	"properties": {
		"jenjang":          {"type": "string", "minLength": 1},
		"confidence_score": {"type": "number", "minimum": 0, "maximum": 100},
		"alasan":           {"type": "string"},
		"saran":            {"type": "string"},
		"badge_color":      {"type": "string"}
	}
}`

var (
	ErrEmptyResponse   = errors.New("model returned no content")
	ErrInvalidResponse = errors.New("model response does not match the analysis schema")
)

var analysisSchema = mustSchema(analysisSchemaJSON)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("gemini: invalid analysis schema: %v", err))
	}
	return schema
}

// ParseAnalysis strips markdown code fences from raw model output, validates it and decodes it.
func ParseAnalysis(raw string) (entity.AIAnalysis, error) {
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return entity.AIAnalysis{}, ErrEmptyResponse
	}

	result, err := analysisSchema.Validate(gojsonschema.NewStringLoader(clean))
	if err != nil {
		return entity.AIAnalysis{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return entity.AIAnalysis{}, fmt.Errorf("%w: %s", ErrInvalidResponse, strings.Join(problems, "; "))
	}

	var analysis entity.AIAnalysis
	if err := json.Unmarshal([]byte(clean), &analysis); err != nil {
		return entity.AIAnalysis{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	analysis.BadgeColor = strings.ToUpper(strings.TrimSpace(analysis.BadgeColor))
	return analysis, nil
}
