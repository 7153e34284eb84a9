package models

import (
	"encoding/json"
	"strings"
)

// Position is a zero-based location inside a Lean source file.
type Position struct {
	Line *int `json:"line"`
}

// Range is the extent of a declaration in its source file. Only the start
// is ever populated by the extractor.
type Range struct {
	Start Position `json:"start"`
}

// Declaration is a cross-reference from a blueprint item to a named
// construct in the Lean codebase.
type Declaration struct {
	FullName string `json:"full_name"`
	RealFile string `json:"real_file"`
	Range    *Range `json:"range"`
}

// Resolvable reports whether the declaration carries enough location
// information to jump to (a source file and a start line).
func (d Declaration) Resolvable() bool {
	return d.RealFile != "" && d.Range != nil && d.Range.Start.Line != nil
}

// Line returns the one-based source line for display and navigation.
// Only meaningful when Resolvable is true.
func (d Declaration) Line() int {
	if d.Range == nil || d.Range.Start.Line == nil {
		return 0
	}
	return *d.Range.Start.Line + 1
}

// Item is one extracted blueprint record: a statement, definition, or
// proof step from the blueprint LaTeX source. Almost every field is
// optional; the extractor emits whatever the source happened to declare.
type Item struct {
	Label         string
	Title         string
	StmtType      string
	ProcessedText string
	RawText       string
	Uses          []string
	LeanNames     []string
	LeanOK        bool
	FullyProved   bool
	Declarations  []Declaration
	Children      []*Item
	Proof         *Item

	// Extra holds fields the schema doesn't know about, preserved verbatim
	// for the detail view. Logic never reads them.
	Extra map[string]json.RawMessage
}

// UnmarshalJSON decodes the loosely structured extractor output. Known
// fields that fail to decode are left at their zero value; unknown fields
// are kept raw in Extra.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	take := func(dst any, keys ...string) {
		for _, key := range keys {
			if val, ok := raw[key]; ok {
				delete(raw, key)
				if json.Unmarshal(val, dst) == nil {
					return
				}
			}
		}
	}

	take(&it.Label, "label")
	take(&it.Title, "title")
	take(&it.StmtType, "stmt_type")
	take(&it.ProcessedText, "processed_text", "text")
	take(&it.RawText, "raw_text", "source")
	take(&it.Uses, "uses")
	take(&it.LeanNames, "lean_names", "lean")
	take(&it.LeanOK, "leanok")
	take(&it.FullyProved, "fully_proved")
	take(&it.Declarations, "lean_declarations")
	take(&it.Children, "children")
	take(&it.Proof, "proof")

	if len(raw) > 0 {
		it.Extra = raw
	}
	return nil
}

// Labeled reports whether the item has been assigned a blueprint label.
// Unlabeled records are still being drafted upstream and are ignored.
func (it *Item) Labeled() bool {
	return it != nil && it.Label != ""
}

// DisplayTitle picks the node text: the first non-empty of title, label,
// statement type, and processed text, falling back to a literal "Item".
func (it *Item) DisplayTitle() string {
	for _, s := range []string{it.Title, it.Label, it.StmtType, it.ProcessedText} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return "Item"
}

// DetailJSON renders the item's own fields (children and proof excluded)
// as indented JSON for hover/inspection views. Unknown extractor fields
// come through verbatim.
func (it *Item) DetailJSON() (string, error) {
	detail := make(map[string]any)
	if it.Label != "" {
		detail["label"] = it.Label
	}
	if it.Title != "" {
		detail["title"] = it.Title
	}
	if it.StmtType != "" {
		detail["stmt_type"] = it.StmtType
	}
	if it.ProcessedText != "" {
		detail["processed_text"] = it.ProcessedText
	}
	if it.RawText != "" {
		detail["raw_text"] = it.RawText
	}
	if len(it.Uses) > 0 {
		detail["uses"] = it.Uses
	}
	if len(it.LeanNames) > 0 {
		detail["lean_names"] = it.LeanNames
	}
	if it.LeanOK {
		detail["leanok"] = true
	}
	if it.FullyProved {
		detail["fully_proved"] = true
	}
	if len(it.Declarations) > 0 {
		detail["lean_declarations"] = it.Declarations
	}
	for key, val := range it.Extra {
		detail[key] = val
	}

	data, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
