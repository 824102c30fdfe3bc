// Package manifest reads the bundle packing manifest produced by the asset
// build and extracts the ordered list of pack names from it.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNotObject is returned when the manifest's top level is not a JSON object.
var ErrNotObject = errors.New("manifest is not a JSON object")

// Pack is a single entry of FullPatchPacks or UpdatePacks. Fields other than
// PackName are ignored.
type Pack struct {
	PackName string `json:"PackName,omitempty"`
}

// Manifest is the typed view of BundlePackingInfo-*.json.
type Manifest struct {
	FullPatchPacks []Pack `json:"FullPatchPacks,omitempty"`
	UpdatePacks    []Pack `json:"UpdatePacks,omitempty"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest document. The top level must be an object. A pack
// list that is missing or not an array is treated as empty, and records that
// are not objects or whose PackName is not a string are kept with an empty
// name so PackNames drops them.
func Parse(data []byte) (*Manifest, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, ok := doc.(map[string]any); !ok {
		return nil, ErrNotObject
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	return &Manifest{
		FullPatchPacks: decodePacks(fields["FullPatchPacks"]),
		UpdatePacks:    decodePacks(fields["UpdatePacks"]),
	}, nil
}

func decodePacks(raw json.RawMessage) []Pack {
	if len(raw) == 0 {
		return nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil
	}

	packs := make([]Pack, 0, len(records))
	for _, record := range records {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(record, &fields); err != nil {
			packs = append(packs, Pack{})
			continue
		}
		var name string
		if rawName, ok := fields["PackName"]; ok {
			// null and non-string names leave name empty
			_ = json.Unmarshal(rawName, &name)
		}
		packs = append(packs, Pack{PackName: name})
	}
	return packs
}

// PackNames returns the non-empty pack names, full patch packs first, each
// list in manifest order.
func (m *Manifest) PackNames() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.FullPatchPacks)+len(m.UpdatePacks))
	for _, packs := range [][]Pack{m.FullPatchPacks, m.UpdatePacks} {
		for _, pack := range packs {
			if pack.PackName == "" {
				continue
			}
			names = append(names, pack.PackName)
		}
	}
	return names
}
