package records

import (
	"errors"
	"fmt"
	"io"
	"kill-chain-service/internal/domain"
	"slices"

	"gopkg.in/yaml.v3"
)

// DecodeYAML reads a document of the form
//
//	missions:
//	  - targetName: T-1
//	    targetLatitude: N68°47′48″
//	reconnaissance: [...]
//	strike: [...]
//
// Scalars are kept as text; sequences inside a row are joined with the
// multi-value separator.
func DecodeYAML(r io.Reader) (*Document, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return &Document{}, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	if len(root.Content) == 0 {
		return &Document{}, nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("decode yaml: line %d: top level must be a mapping of sections", top.Line)
	}

	doc := &Document{}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i], top.Content[i+1]

		var rows []map[string]any
		if err := val.Decode(&rows); err != nil {
			return nil, fmt.Errorf("decode yaml: section %q: %w", key.Value, err)
		}

		doc.Sections = append(doc.Sections, NewSection(key.Value, rows))
	}

	return doc, nil
}

// NewSection builds a section from decoded rows, e.g. a JSON request body.
func NewSection(name string, rows []map[string]any) Section {
	s := Section{Name: name, Rows: make([]domain.RawRecord, 0, len(rows))}
	for _, row := range rows {
		s.Rows = append(s.Rows, rawRecord(row))
	}
	return s
}

func rawRecord(row map[string]any) domain.RawRecord {
	rec := make(domain.RawRecord, len(row))
	for k, v := range row {
		rec[k] = scalarText(v)
	}
	return rec
}

func scalarText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, scalarText(p))
		}
		return domain.JoinMulti(parts)
	default:
		return fmt.Sprint(t)
	}
}

// EncodeYAML writes a document with rows keyed in column order.
func EncodeYAML(w io.Writer, doc *Document) error {
	top := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range doc.Sections {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, row := range s.Rows {
			seq.Content = append(seq.Content, rowNode(row, orderedKeys(columnsFor(s.Name), row)))
		}
		top.Content = append(top.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: s.Name},
			seq,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(top); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

type assignmentYAML struct {
	Mission        string  `yaml:"mission"`
	Reconnaissance string  `yaml:"reconnaissance"`
	Controller     string  `yaml:"controller"`
	Strike         string  `yaml:"strike"`
	Score          float64 `yaml:"score"`
	Status         string  `yaml:"status"`
	Reason         string  `yaml:"reason,omitempty"`
}

// EncodeAssignmentsYAML writes assignment rows under an "assignments" key.
func EncodeAssignmentsYAML(w io.Writer, rows []domain.Assignment) error {
	out := struct {
		Assignments []assignmentYAML `yaml:"assignments"`
	}{Assignments: make([]assignmentYAML, 0, len(rows))}

	for _, a := range rows {
		out.Assignments = append(out.Assignments, assignmentYAML{
			Mission:        a.MissionName,
			Reconnaissance: a.ReconLabel,
			Controller:     a.ControllerLabel,
			Strike:         a.StrikeLabel,
			Score:          a.Score,
			Status:         string(a.Status),
			Reason:         a.Reason,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode assignments yaml: %w", err)
	}
	return enc.Close()
}

func rowNode(row domain.RawRecord, keys []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Value: row[k]},
		)
	}
	return n
}

// orderedKeys lists known columns first, then any extra fields, leaving out
// empty optional values.
func orderedKeys(columns []string, row domain.RawRecord) []string {
	keys := make([]string, 0, len(row))
	seen := make(map[string]bool, len(row))
	for _, c := range columns {
		if v, ok := row[c]; ok && v != "" {
			keys = append(keys, c)
		}
		seen[c] = true
	}
	extra := make([]string, 0)
	for k, v := range row {
		if !seen[k] && v != "" {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}
