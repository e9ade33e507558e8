package orgunit

import "fmt"

// Level is the hierarchy echelon of an organizational unit. Levels are
// ordered: a unit's parent sits exactly one level above it.
type Level int

const (
	LevelBattalion Level = iota
	LevelCompany
	LevelSection
	LevelSubsection
)

var levelNames = map[Level]string{
	LevelBattalion:  "battalion",
	LevelCompany:    "company",
	LevelSection:    "section",
	LevelSubsection: "subsection",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

func (l Level) Valid() bool {
	_, ok := levelNames[l]
	return ok
}

// ChildOf reports whether l is exactly one level below parent, the only
// legal parent/child pairing in a well-formed hierarchy.
func (l Level) ChildOf(parent Level) bool {
	return l == parent+1
}

func ParseLevel(s string) (Level, error) {
	for level, name := range levelNames {
		if name == s {
			return level, nil
		}
	}
	return 0, fmt.Errorf("unknown hierarchy level %q", s)
}
