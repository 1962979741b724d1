package content

import (
	"github.com/sashabaranov/go-openai/jsonschema"
	"google.golang.org/genai"
)

// SchemaType is the JSON type of a schema node
type SchemaType string

const (
	TypeObject SchemaType = "object"
	TypeArray  SchemaType = "array"
	TypeString SchemaType = "string"
)

// Schema describes the shape of a structured response.
// Providers translate it into their own request format.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	Required    []string
	Items       *Schema
}

// DefinitionSchema is the response structure of a definition request
func DefinitionSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"definition":       {Type: TypeString, Description: "Definition in the target language"},
			"nativeDefinition": {Type: TypeString, Description: "Definition in the native language"},
			"usageNote":        {Type: TypeString, Description: "Fun, casual usage note in the native language"},
			"examples": {
				Type: TypeArray,
				Items: &Schema{
					Type: TypeObject,
					Properties: map[string]*Schema{
						"sentence":    {Type: TypeString},
						"translation": {Type: TypeString},
					},
					Required: []string{"sentence", "translation"},
				},
			},
		},
		Required: []string{"definition", "nativeDefinition", "usageNote", "examples"},
	}
}

// toGenai converts the schema for the Gemini API
func (s *Schema) toGenai() *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Description: s.Description,
		Required:    s.Required,
		Items:       s.Items.toGenai(),
	}
	switch s.Type {
	case TypeObject:
		out.Type = genai.TypeObject
	case TypeArray:
		out.Type = genai.TypeArray
	default:
		out.Type = genai.TypeString
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.toGenai()
		}
	}
	return out
}

// toJSONSchema converts the schema for OpenAI structured outputs
func (s *Schema) toJSONSchema() jsonschema.Definition {
	out := jsonschema.Definition{
		Description: s.Description,
		Required:    s.Required,
	}
	switch s.Type {
	case TypeObject:
		out.Type = jsonschema.Object
	case TypeArray:
		out.Type = jsonschema.Array
	default:
		out.Type = jsonschema.String
	}

	if s.Items != nil {
		items := s.Items.toJSONSchema()
		out.Items = &items
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]jsonschema.Definition, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.toJSONSchema()
		}
	}
	return out
}
