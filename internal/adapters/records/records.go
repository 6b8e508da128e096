// Package records reads mission and equipment files into typed records and
// writes assignment results back out. YAML and XLSX share one layout: named
// sections ("missions", "reconnaissance", "strike") of named-field rows.
package records

import (
	"errors"
	"fmt"
	"kill-chain-service/internal/domain"
	"kill-chain-service/internal/services"
	"strings"
)

// SectionMissions names the mission section; every other section name is an
// equipment category.
const SectionMissions = "missions"

// FieldCategory optionally overrides the mission category of a mission row.
const FieldCategory = "category"

// Section is one named block of raw rows, a YAML key or a workbook sheet.
type Section struct {
	Name string
	Rows []domain.RawRecord
}

// Document is a decoded file, sections in file order.
type Document struct {
	Sections []Section
}

// Records is a document turned into typed records. Rows that could not be
// built are left out and reported in Warnings.
type Records struct {
	Missions []domain.Mission
	Recon    []domain.ReconAsset
	Strike   []domain.StrikeAsset
	Warnings []error
}

func (r *Records) Input() services.AssignInput {
	return services.AssignInput{
		Missions: r.Missions,
		Recon:    r.Recon,
		Strike:   r.Strike,
	}
}

// Build turns a document into typed records. A section name that is not a
// known category fails the whole document; a bad row only drops that row.
func Build(doc *Document) (*Records, error) {
	if doc == nil {
		return nil, errors.New("build records: document is nil")
	}

	out := &Records{}
	for _, s := range doc.Sections {
		name := strings.TrimSpace(s.Name)
		if strings.EqualFold(name, SectionMissions) {
			out.addMissions(s.Rows)
			continue
		}

		c, err := domain.ParseCategory("equipment", name)
		if err != nil {
			return nil, fmt.Errorf("build records: section %q: %w", s.Name, err)
		}

		switch c {
		case domain.CategoryReconnaissance:
			out.addRecon(s.Rows)
		case domain.CategoryStrike:
			out.addStrike(s.Rows)
		default:
			if len(s.Rows) > 0 {
				out.Warnings = append(out.Warnings,
					fmt.Errorf("section %q: %d %s rows ignored, category takes no part in chain selection", s.Name, len(s.Rows), c))
			}
		}
	}

	return out, nil
}

func (r *Records) addMissions(rows []domain.RawRecord) {
	for i, row := range rows {
		c := domain.CategoryStrike
		if raw := strings.TrimSpace(row[FieldCategory]); raw != "" {
			parsed, err := domain.ParseCategory("mission", raw)
			if err != nil {
				r.Warnings = append(r.Warnings, fmt.Errorf("drop mission row %d: %w", i+1, err))
				continue
			}
			c = parsed
		}

		m, err := domain.NewMission(c, row)
		if err != nil {
			r.Warnings = append(r.Warnings, fmt.Errorf("drop mission row %d: %w", i+1, err))
			continue
		}
		r.Missions = append(r.Missions, m)
	}
}

func (r *Records) addRecon(rows []domain.RawRecord) {
	for i, row := range rows {
		a, err := domain.NewReconAsset(row)
		if err != nil {
			r.Warnings = append(r.Warnings, fmt.Errorf("drop reconnaissance row %d: %w", i+1, err))
			continue
		}
		r.Recon = append(r.Recon, a)
	}
}

func (r *Records) addStrike(rows []domain.RawRecord) {
	for i, row := range rows {
		a, err := domain.NewStrikeAsset(row)
		if err != nil {
			r.Warnings = append(r.Warnings, fmt.Errorf("drop strike row %d: %w", i+1, err))
			continue
		}
		r.Strike = append(r.Strike, a)
	}
}

// NewDocument renders typed records into a document with the standard
// section names, the inverse of Build.
func NewDocument(missions []domain.Mission, recon []domain.ReconAsset, strike []domain.StrikeAsset) *Document {
	doc := &Document{Sections: []Section{
		{Name: SectionMissions},
		{Name: domain.CategoryReconnaissance.String()},
		{Name: domain.CategoryStrike.String()},
	}}
	for _, m := range missions {
		rec := m.Record()
		if m.Category != domain.CategoryStrike {
			rec[FieldCategory] = m.Category.String()
		}
		doc.Sections[0].Rows = append(doc.Sections[0].Rows, rec)
	}
	for _, a := range recon {
		doc.Sections[1].Rows = append(doc.Sections[1].Rows, a.Record())
	}
	for _, a := range strike {
		doc.Sections[2].Rows = append(doc.Sections[2].Rows, a.Record())
	}
	return doc
}

// Column headers of an assignment table.
var AssignmentColumns = []string{"mission", "reconnaissance", "controller", "strike", "score", "status", "reason"}

func assignmentRow(a domain.Assignment) []string {
	return []string{
		a.MissionName,
		a.ReconLabel,
		a.ControllerLabel,
		a.StrikeLabel,
		fmt.Sprintf("%.4f", a.Score),
		string(a.Status),
		a.Reason,
	}
}

// columnsFor returns the header row for a section.
func columnsFor(section string) []string {
	switch strings.ToLower(section) {
	case SectionMissions:
		return append(append([]string{}, domain.MissionFields...), FieldCategory)
	case domain.CategoryReconnaissance.String():
		return domain.ReconFields
	case domain.CategoryStrike.String():
		return domain.StrikeFields
	}
	return nil
}
