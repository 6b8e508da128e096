package domain

import "strings"

// Category is the closed set of mission, capability and equipment kinds.
type Category int

const (
	CategoryCommand Category = iota
	CategoryDecision
	CategoryJudgment
	CategoryReconnaissance
	CategoryStrike
)

var categoryNames = [...]string{
	CategoryCommand:        "command",
	CategoryDecision:       "decision",
	CategoryJudgment:       "judgment",
	CategoryReconnaissance: "reconnaissance",
	CategoryStrike:         "strike",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// Categories lists every category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryCommand,
		CategoryDecision,
		CategoryJudgment,
		CategoryReconnaissance,
		CategoryStrike,
	}
}

// ParseCategory maps a raw category string to a Category. "command_control"
// is accepted as the equipment-file spelling of command.
func ParseCategory(kind, s string) (Category, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "command_control" {
		return CategoryCommand, nil
	}
	for _, c := range Categories() {
		if c.String() == v {
			return c, nil
		}
	}
	return 0, &UnknownCategoryError{Kind: kind, Value: s}
}
