package storage

import (
	"encoding/json"
	"fmt"

	"github.com/theysh/startpage/internal/model"
)

// Keys of the two persisted records.
const (
	LinksKey  = "theysh_links"
	EngineKey = "theysh_engine"
)

// LoadLinks reads the shortcut collection from s.
// The returned collection is always usable: a missing record yields the seed
// list, and so does an unreadable or malformed one, in which case the error
// explains why.
func LoadLinks(s Store) (model.Collection, error) {
	raw, found, err := s.Get(LinksKey)
	if err != nil {
		return model.SeedShortcuts(), fmt.Errorf("read %s: %w", LinksKey, err)
	}
	if !found {
		return model.SeedShortcuts(), nil
	}

	links, err := DecodeLinks(raw)
	if err != nil {
		return model.SeedShortcuts(), err
	}
	return links, nil
}

// SaveLinks serializes the full collection under LinksKey.
func SaveLinks(s Store, links model.Collection) error {
	raw, err := EncodeLinks(links)
	if err != nil {
		return err
	}
	return s.Set(LinksKey, raw)
}

// EncodeLinks returns the JSON array form of links.
func EncodeLinks(links model.Collection) (string, error) {
	if links == nil {
		links = model.Collection{}
	}
	data, err := json.Marshal(links)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", LinksKey, err)
	}
	return string(data), nil
}

// DecodeLinks parses the JSON array form of a collection.
func DecodeLinks(raw string) (model.Collection, error) {
	var links model.Collection
	if err := json.Unmarshal([]byte(raw), &links); err != nil {
		return nil, fmt.Errorf("decode %s: %w", LinksKey, err)
	}
	if links == nil {
		// "null" is valid JSON but not a collection
		return nil, fmt.Errorf("decode %s: not an array", LinksKey)
	}
	return links, nil
}

// LoadEngine returns the raw persisted engine identifier, or "" when absent.
func LoadEngine(s Store) (string, error) {
	raw, _, err := s.Get(EngineKey)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", EngineKey, err)
	}
	return raw, nil
}

// SaveEngine persists the raw engine identifier.
func SaveEngine(s Store, id string) error {
	return s.Set(EngineKey, id)
}
