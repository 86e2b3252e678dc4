package llm

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_prompt.yaml
var defaultPromptYAML []byte

// Prompt is the fixed instruction and output schema sent with every message.
type Prompt struct {
	SystemInstruction string `yaml:"system_instruction"`
	Schema            Schema `yaml:"schema"`
}

// Schema is the provider-neutral subset of JSON Schema the relay needs.
type Schema struct {
	Type        string             `yaml:"type"`
	Description string             `yaml:"description,omitempty"`
	Properties  map[string]*Schema `yaml:"properties,omitempty"`
	Required    []string           `yaml:"required,omitempty"`
	Enum        []string           `yaml:"enum,omitempty"`
	Items       *Schema            `yaml:"items,omitempty"`
}

// DefaultPrompt returns the embedded prompt.
func DefaultPrompt() Prompt {
	p, err := ParsePrompt(defaultPromptYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded prompt invalid: %v", err))
	}
	return p
}

// LoadPrompt reads a prompt file, or the embedded default when path is empty.
func LoadPrompt(path string) (Prompt, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPrompt(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Prompt{}, fmt.Errorf("read prompt config: %w", err)
	}
	return ParsePrompt(data)
}

// ParsePrompt decodes and validates a YAML prompt document.
func ParsePrompt(data []byte) (Prompt, error) {
	var p Prompt
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Prompt{}, fmt.Errorf("parse prompt config: %w", err)
	}
	p.SystemInstruction = strings.TrimSpace(p.SystemInstruction)
	if err := p.Validate(); err != nil {
		return Prompt{}, err
	}
	return p, nil
}

// Validate checks the instruction is present and the schema is an object
// whose required names are all defined.
func (p Prompt) Validate() error {
	if p.SystemInstruction == "" {
		return errors.New("prompt config: system_instruction is required")
	}
	if p.Schema.Type != "object" {
		return fmt.Errorf("prompt config: schema type must be object, got %q", p.Schema.Type)
	}
	if len(p.Schema.Properties) == 0 {
		return errors.New("prompt config: schema needs at least one property")
	}
	for _, name := range p.Schema.Required {
		if _, ok := p.Schema.Properties[name]; !ok {
			return fmt.Errorf("prompt config: required property %q is not defined", name)
		}
	}
	return nil
}

// PropertyNames returns schema property names in stable order.
func (s Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// JSONSchema renders the schema as a strict JSON Schema document, closing
// every object with additionalProperties=false.
func (s Schema) JSONSchema() (json.RawMessage, error) {
	data, err := json.Marshal(s.jsonSchema())
	if err != nil {
		return nil, fmt.Errorf("encode json schema: %w", err)
	}
	return data, nil
}

func (s Schema) jsonSchema() map[string]any {
	out := map[string]any{"type": s.Type}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if s.Items != nil {
		out["items"] = s.Items.jsonSchema()
	}
	if s.Type == "object" {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			if prop != nil {
				props[name] = prop.jsonSchema()
			}
		}
		out["properties"] = props
		out["additionalProperties"] = false
		required := s.Required
		if required == nil {
			required = []string{}
		}
		out["required"] = required
	}
	return out
}
