package audit

import (
	"encoding/json"
	"fmt"
)

// Variation is one product variant row inside a change payload.
type Variation struct {
	ColorCode string `json:"colorCode"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// FAQ is one question/answer pair attached to a product.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SubCategory is one sub-category reference inside a category payload.
type SubCategory struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Media carries the image URLs captured with a product mutation.
type Media struct {
	MainImage string   `json:"mainImage,omitempty"`
	SubImages []string `json:"subImages,omitempty"`
}

// Snapshot is the entity state captured at mutation time: flat scalar fields
// plus the well-known nested collections. Every part is optional; the encoder
// simply omits what is absent.
type Snapshot struct {
	Fields        map[string]any
	Variations    []Variation
	FAQs          []FAQ
	SubCategories []SubCategory
	Media         *Media
}

// EncodeSnapshot produces the flat creation/deletion payload shape: field
// values at top level, nested collections under their reserved keys.
func EncodeSnapshot(s Snapshot) (json.RawMessage, error) {
	obj := make(map[string]any, len(s.Fields)+5)
	for k, v := range s.Fields {
		obj[k] = v
	}
	if len(s.Variations) > 0 {
		obj["variations"] = s.Variations
	}
	if len(s.FAQs) > 0 {
		obj["faqs"] = s.FAQs
	}
	if len(s.SubCategories) > 0 {
		obj["subCategories"] = s.SubCategories
	}
	if s.Media != nil {
		if s.Media.MainImage != "" {
			obj["mainImage"] = s.Media.MainImage
		}
		if len(s.Media.SubImages) > 0 {
			obj["subImages"] = s.Media.SubImages
		}
	}

	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return raw, nil
}

// EncodeUpdate produces the update wrapper shape. original is optional; when
// nil the wrapper carries updatedData only. Callers must never rely on
// originalData being present, even for update kinds.
func EncodeUpdate(updated Snapshot, original *Snapshot) (json.RawMessage, error) {
	updatedRaw, err := EncodeSnapshot(updated)
	if err != nil {
		return nil, err
	}

	wrapper := map[string]json.RawMessage{"updatedData": updatedRaw}
	if original != nil {
		originalRaw, err := EncodeSnapshot(*original)
		if err != nil {
			return nil, err
		}
		wrapper["originalData"] = originalRaw
	}

	raw, err := json.Marshal(wrapper)
	if err != nil {
		return nil, fmt.Errorf("encode update wrapper: %w", err)
	}
	return raw, nil
}
