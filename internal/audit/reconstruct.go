package audit

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"backoffice/internal/device"
)

// DisplayTime is the timestamp rendering shown in the log viewer. Search
// deliberately matches against this string, not the raw instant, so users can
// find "Mar 2024"-style fragments.
func DisplayTime(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}

// View is the normalized, displayable reconstruction of one audit record.
// The actor header and device panel render regardless of payload health.
type View struct {
	Title      string       `json:"title"`
	Actor      ActorInfo    `json:"actor"`
	Device     *DevicePanel `json:"device,omitempty"`
	Sections   []Section    `json:"sections,omitempty"`
	ParseError *ParsePanel  `json:"parseError,omitempty"`
}

// ActorInfo is the header block: who did what, when, with which badge.
type ActorInfo struct {
	Name        string     `json:"name"`
	ActionKind  string     `json:"actionKind"`
	Badge       BadgeStyle `json:"badge"`
	Timestamp   time.Time  `json:"timestamp"`
	DisplayTime string     `json:"displayTime"`
}

// DevicePanel carries the raw fingerprint plus a parsed summary.
type DevicePanel struct {
	Raw     string `json:"raw"`
	Summary string `json:"summary"`
}

// ParsePanel is the recoverable rendering of an unparseable change payload.
// The raw string is shown so nothing is silently lost.
type ParsePanel struct {
	Raw string `json:"raw"`
}

// SectionKind identifies the logical grouping of a section.
type SectionKind string

const (
	SectionBasicInfo     SectionKind = "basicInformation"
	SectionImages        SectionKind = "images"
	SectionSubCategories SectionKind = "subCategories"
	SectionVariations    SectionKind = "variations"
	SectionFAQs          SectionKind = "faqs"
	SectionAdditional    SectionKind = "additionalInformation"
	SectionOriginal      SectionKind = "originalInformation"
)

// Pair is one humanized key/value row.
type Pair struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// ImageSet groups the media URLs of a product payload.
type ImageSet struct {
	Main string   `json:"main,omitempty"`
	Sub  []string `json:"sub,omitempty"`
}

// Section is one independently collapsible block of a reconstructed view.
// Exactly one of the content fields is populated, matching Kind. Collapsed is
// the default presentation state; toggling is the client's local concern.
type Section struct {
	ID            string        `json:"id"`
	Kind          SectionKind   `json:"kind"`
	Label         string        `json:"label"`
	Collapsed     bool          `json:"collapsed"`
	Pairs         []Pair        `json:"pairs,omitempty"`
	Images        *ImageSet     `json:"images,omitempty"`
	Variations    []Variation   `json:"variations,omitempty"`
	FAQs          []FAQ         `json:"faqs,omitempty"`
	SubCategories []SubCategory `json:"subCategories,omitempty"`
}

// RenderFunc turns a decoded payload into sections for one action kind.
type RenderFunc func(rec Record, payload map[string]any) []Section

// Reconstructor dispatches on action kind to a rendering strategy. The table
// always carries a fallback, so rendering is total: adding a new kind means
// registering a renderer, never touching existing branches, and an
// unregistered kind still renders generically.
type Reconstructor struct {
	renderers map[string]RenderFunc
	fallback  RenderFunc
}

// NewReconstructor builds the dispatch table for every known action kind.
func NewReconstructor() *Reconstructor {
	r := &Reconstructor{
		renderers: make(map[string]RenderFunc),
		fallback:  renderGeneric,
	}

	r.Register(KindCreatedProduct, renderProductCreated)
	r.Register(KindUpdatedProduct, renderProductUpdated)
	r.Register(KindDeletedProduct, renderProductDeleted)

	for _, kind := range []string{
		KindCreatedCategory, KindUpdatedCategory, KindDeletedCategory,
		KindToggledCategory,
		KindCreatedSubCategory, KindUpdatedSubCategory, KindDeletedSubCategory,
		KindCreatedBrand, KindUpdatedBrand, KindDeletedBrand,
		KindCreatedDiscount, KindUpdatedDiscount, KindDeletedDiscount,
		KindCreatedCustomer, KindUpdatedCustomer, KindDeletedCustomer,
		KindCreatedNotification, KindUpdatedNotification, KindDeletedNotification,
	} {
		r.Register(kind, renderGeneric)
	}

	r.Register(KindLoggedIn, renderGeneric)
	r.Register(KindAddedNewUser, renderGeneric)

	return r
}

// Register adds or replaces the renderer for a kind.
func (r *Reconstructor) Register(kind string, fn RenderFunc) {
	r.renderers[kind] = fn
}

// Reconstruct renders a record. It never fails: malformed payloads become a
// parse panel, unknown kinds use the fallback, and the actor header always
// renders.
func (r *Reconstructor) Reconstruct(rec Record) View {
	view := View{
		Title: TitleFor(rec.ActionKind),
		Actor: ActorInfo{
			Name:        rec.ActorDisplayName(),
			ActionKind:  rec.ActionKind,
			Badge:       BadgeFor(rec.ActionKind),
			Timestamp:   rec.Timestamp,
			DisplayTime: DisplayTime(rec.Timestamp),
		},
	}
	if rec.DeviceInfo != "" {
		view.Device = &DevicePanel{
			Raw:     rec.DeviceInfo,
			Summary: device.ParseUserAgent(rec.DeviceInfo),
		}
	}

	if len(rec.ChangePayload) == 0 {
		return view
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.ChangePayload, &payload); err != nil {
		view.ParseError = &ParsePanel{Raw: string(rec.ChangePayload)}
		return view
	}

	render, ok := r.renderers[rec.ActionKind]
	if !ok {
		render = r.fallback
	}
	view.Sections = render(rec, payload)
	return view
}

// nestedKeys are the payload keys rendered as dedicated sections rather than
// basic-information rows.
var nestedKeys = map[string]bool{
	"variations":    true,
	"faqs":          true,
	"subCategories": true,
	"mainImage":     true,
	"subImages":     true,
}

func renderProductCreated(rec Record, payload map[string]any) []Section {
	return productSections(rec, payload, nestedKeys)
}

// renderProductUpdated reads the same sectioning from the updatedData
// wrapper. Each section is independently absent when its data is absent.
func renderProductUpdated(rec Record, payload map[string]any) []Section {
	if updated, ok := payload["updatedData"].(map[string]any); ok {
		return productSections(rec, updated, nestedKeys)
	}
	return productSections(rec, payload, nestedKeys)
}

// renderProductDeleted keeps media and sub-category values inline in the
// basic section; only variations and faqs get their own tables.
func renderProductDeleted(rec Record, payload map[string]any) []Section {
	excluded := map[string]bool{"variations": true, "faqs": true}
	basic := kvSection(rec, SectionBasicInfo, "Basic Information", payload, excluded)

	sections := make([]Section, 0, 3)
	if basic != nil {
		sections = append(sections, *basic)
	}
	sections = appendVariationSection(sections, rec, payload)
	sections = appendFAQSection(sections, rec, payload)
	return sections
}

func productSections(rec Record, payload map[string]any, excluded map[string]bool) []Section {
	sections := make([]Section, 0, 5)

	if basic := kvSection(rec, SectionBasicInfo, "Basic Information", payload, excluded); basic != nil {
		sections = append(sections, *basic)
	}

	images := ImageSet{}
	if main, ok := payload["mainImage"].(string); ok {
		images.Main = main
	}
	if subs, ok := payload["subImages"].([]any); ok {
		for _, s := range subs {
			if url, ok := s.(string); ok {
				images.Sub = append(images.Sub, url)
			}
		}
	}
	if images.Main != "" || len(images.Sub) > 0 {
		sections = append(sections, Section{
			ID:        sectionID(rec, SectionImages),
			Kind:      SectionImages,
			Label:     "Images",
			Collapsed: true,
			Images:    &images,
		})
	}

	if subCats := decodeSubCategories(payload["subCategories"]); len(subCats) > 0 {
		sections = append(sections, Section{
			ID:            sectionID(rec, SectionSubCategories),
			Kind:          SectionSubCategories,
			Label:         "Sub Categories",
			Collapsed:     true,
			SubCategories: subCats,
		})
	}

	sections = appendVariationSection(sections, rec, payload)
	sections = appendFAQSection(sections, rec, payload)
	return sections
}

func appendVariationSection(sections []Section, rec Record, payload map[string]any) []Section {
	variations := decodeVariations(payload["variations"])
	if len(variations) == 0 {
		return sections
	}
	return append(sections, Section{
		ID:         sectionID(rec, SectionVariations),
		Kind:       SectionVariations,
		Label:      "Variations",
		Collapsed:  true,
		Variations: variations,
	})
}

func appendFAQSection(sections []Section, rec Record, payload map[string]any) []Section {
	faqs := decodeFAQs(payload["faqs"])
	if len(faqs) == 0 {
		return sections
	}
	return append(sections, Section{
		ID:        sectionID(rec, SectionFAQs),
		Kind:      SectionFAQs,
		Label:     "FAQs",
		Collapsed: true,
		FAQs:      faqs,
	})
}

// renderGeneric is the two-column rendering used for the simpler entities and
// for any kind without a dedicated strategy. Wrapped update payloads render
// updatedData as the main section and originalData, when present, separately;
// originalData is never assumed to exist.
func renderGeneric(rec Record, payload map[string]any) []Section {
	label := TitleFor(rec.ActionKind)
	if _, known := titles[rec.ActionKind]; !known {
		label = "Additional Information"
	}

	updated, hasUpdated := payload["updatedData"].(map[string]any)
	if !hasUpdated {
		if s := kvSection(rec, SectionAdditional, label, payload, nil); s != nil {
			return []Section{*s}
		}
		return nil
	}

	sections := make([]Section, 0, 2)
	if s := kvSection(rec, SectionAdditional, label, updated, nil); s != nil {
		sections = append(sections, *s)
	}
	if original, ok := payload["originalData"].(map[string]any); ok {
		if s := kvSection(rec, SectionOriginal, "Original Information", original, nil); s != nil {
			sections = append(sections, *s)
		}
	}
	return sections
}

// kvSection renders payload entries as humanized key/value pairs, skipping
// excluded keys. Returns nil when nothing remains to show.
func kvSection(rec Record, kind SectionKind, label string, payload map[string]any, excluded map[string]bool) *Section {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		if excluded[k] {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)

	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, Pair{Key: k, Label: humanizeKey(k), Value: formatValue(payload[k])})
	}
	return &Section{
		ID:        sectionID(rec, kind),
		Kind:      kind,
		Label:     label,
		Collapsed: true,
		Pairs:     pairs,
	}
}

func sectionID(rec Record, kind SectionKind) string {
	return rec.ID.String() + "-" + string(kind)
}

// humanizeKey turns snake_case keys into title-cased labels.
func humanizeKey(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// formatValue renders a decoded JSON value as display text. Objects and
// arrays are JSON-stringified rather than flattened.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

func decodeVariations(v any) []Variation {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Variation, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		variation := Variation{}
		if s, ok := m["colorCode"].(string); ok {
			variation.ColorCode = s
		}
		if s, ok := m["size"].(string); ok {
			variation.Size = s
		}
		if q, ok := m["quantity"].(float64); ok {
			variation.Quantity = int(q)
		}
		out = append(out, variation)
	}
	return out
}

func decodeFAQs(v any) []FAQ {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]FAQ, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		faq := FAQ{}
		if s, ok := m["question"].(string); ok {
			faq.Question = s
		}
		if s, ok := m["answer"].(string); ok {
			faq.Answer = s
		}
		out = append(out, faq)
	}
	return out
}

func decodeSubCategories(v any) []SubCategory {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]SubCategory, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		sc := SubCategory{}
		if s, ok := m["id"].(string); ok {
			sc.ID = s
		}
		if s, ok := m["description"].(string); ok {
			sc.Description = s
		}
		out = append(out, sc)
	}
	return out
}
