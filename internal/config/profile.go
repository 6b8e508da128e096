package config

import (
	"fmt"
	"kill-chain-service/internal/domain"
	"kill-chain-service/internal/services"
	"os"

	"gopkg.in/yaml.v3"
)

// ScoringProfile is the YAML document selected by SCORING_PROFILE:
//
//	controller: Fleet C2
//	weights: {time: 0.3, precision: 0.3, damage: 0.4}
//	bounds:
//	  time: {min: 0, max: 2}
//	target_domains:
//	  ship: [sea, surface]
type ScoringProfile struct {
	Controller    string                   `yaml:"controller"`
	Weights       domain.ScoringWeights    `yaml:"weights"`
	Bounds        domain.CalibrationBounds `yaml:"bounds"`
	TargetDomains map[string]DomainList    `yaml:"target_domains"`
}

func DefaultScoringProfile() ScoringProfile {
	return ScoringProfile{
		Controller: services.DefaultController,
		Weights:    domain.DefaultWeights(),
		Bounds:     domain.DefaultBounds(),
	}
}

// LoadScoringProfile reads a profile file. Sections left out keep their
// defaults; the result is validated.
func LoadScoringProfile(path string) (*ScoringProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scoring profile: %w", err)
	}

	return ParseScoringProfile(data)
}

func ParseScoringProfile(data []byte) (*ScoringProfile, error) {
	var p ScoringProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse scoring profile: %w", err)
	}

	p.applyDefaults()

	if err := p.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("scoring profile: %w", err)
	}
	if err := p.Bounds.Validate(); err != nil {
		return nil, fmt.Errorf("scoring profile: %w", err)
	}
	return &p, nil
}

func (p *ScoringProfile) applyDefaults() {
	def := DefaultScoringProfile()

	if p.Controller == "" {
		p.Controller = def.Controller
	}
	if p.Weights == (domain.ScoringWeights{}) {
		p.Weights = def.Weights
	}
	if p.Bounds.Time == (domain.Range{}) {
		p.Bounds.Time = def.Bounds.Time
	}
	if p.Bounds.Precision == (domain.Range{}) {
		p.Bounds.Precision = def.Bounds.Precision
	}
	if p.Bounds.Damage == (domain.Range{}) {
		p.Bounds.Damage = def.Bounds.Damage
	}
}

// DomainList accepts a YAML sequence or a single multi-valued scalar such as
// "sea、surface".
type DomainList []string

func (d *DomainList) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*d = domain.SplitMulti(n.Value)
		return nil
	}

	var v []string
	if err := n.Decode(&v); err != nil {
		return err
	}
	*d = v
	return nil
}

// Domains converts the profile mapping for the filters.
func (p ScoringProfile) Domains() domain.TargetDomains {
	if len(p.TargetDomains) == 0 {
		return nil
	}
	out := make(domain.TargetDomains, len(p.TargetDomains))
	for k, v := range p.TargetDomains {
		out[k] = []string(v)
	}
	return out
}
