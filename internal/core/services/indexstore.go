package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/custodia-labs/kbbot/internal/core/domain"
	"github.com/custodia-labs/kbbot/internal/core/ports/driven"
	"github.com/custodia-labs/kbbot/internal/logger"
)

// DefaultIndexKey is the property the index payload is stored under.
// Bump the version suffix when the payload shape changes.
const DefaultIndexKey = "kbIndex_v1"

// payloadSchema describes a stored index payload. Loading validates against
// it before decoding so a hand-edited or truncated value is reported
// field by field.
const payloadSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["ts", "rootId", "index"],
  "properties": {
    "ts": {"type": "string", "format": "date-time"},
    "rootId": {"type": "string"},
    "buildId": {"type": "string"},
    "index": {
      "type": "object",
      "additionalProperties": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["id", "name", "url"],
          "properties": {
            "id": {"type": "string", "minLength": 1},
            "name": {"type": "string"},
            "url": {"type": "string"},
            "lastUpdated": {"type": ["string", "null"]},
            "snippet": {"type": "string"}
          }
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

func loadPayloadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(payloadSchema))
	})
	return compiledSchema, schemaErr
}

// IndexStore persists the index payload as one JSON property.
type IndexStore struct {
	props driven.PropertyStore
	key   string
}

// NewIndexStore creates an index store over props using DefaultIndexKey.
func NewIndexStore(props driven.PropertyStore) *IndexStore {
	return &IndexStore{props: props, key: DefaultIndexKey}
}

// Save serialises payload and replaces the stored value.
func (s *IndexStore) Save(ctx context.Context, payload *domain.IndexPayload) error {
	if payload == nil {
		return fmt.Errorf("%w: nil payload", domain.ErrInvalidInput)
	}
	if payload.Index == nil {
		p := *payload
		p.Index = domain.NewTitleIndex()
		payload = &p
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode index payload: %w", err)
	}

	if err := s.props.SetProperty(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("store index payload: %w", err)
	}

	logger.Debug("Stored index payload under %s (%d bytes)", s.key, len(data))
	return nil
}

// Load returns the stored payload, or nil when there is none or it cannot
// be read. Failures are logged.
func (s *IndexStore) Load(ctx context.Context) *domain.IndexPayload {
	payload, err := s.LoadPayload(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoIndex) {
			logger.Error("Failed to parse KB index: %v", err)
		}
		return nil
	}
	return payload
}

// LoadPayload returns the stored payload. It fails with domain.ErrNoIndex
// when nothing is stored and with domain.ErrPayloadCorrupt when the value
// does not parse.
func (s *IndexStore) LoadPayload(ctx context.Context) (*domain.IndexPayload, error) {
	raw, ok, err := s.props.GetProperty(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read index payload: %w", err)
	}
	if !ok || raw == "" {
		return nil, domain.ErrNoIndex
	}

	return DecodePayload(raw)
}

// Clear removes the stored payload.
func (s *IndexStore) Clear(ctx context.Context) error {
	return s.props.DeleteProperty(ctx, s.key)
}

// DecodePayload validates raw against the payload schema and decodes it.
func DecodePayload(raw string) (*domain.IndexPayload, error) {
	schema, err := loadPayloadSchema()
	if err != nil {
		return nil, fmt.Errorf("compile payload schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPayloadCorrupt, err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrPayloadCorrupt, strings.Join(problems, "; "))
	}

	var payload domain.IndexPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPayloadCorrupt, err)
	}
	if payload.Index == nil {
		payload.Index = domain.NewTitleIndex()
	}

	return &payload, nil
}
