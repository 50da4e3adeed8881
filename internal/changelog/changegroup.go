package changelog

// ChangeGroup is one of the six fixed Keep a Changelog categories.
//
// The set is closed on purpose: the canonical serialization order below is the
// single source of truth, and matching is exact and case-sensitive.
type ChangeGroup int

const (
	GroupAdded ChangeGroup = iota
	GroupChanged
	GroupDeprecated
	GroupRemoved
	GroupFixed
	GroupSecurity
)

// CanonicalGroups lists every change group in serialization rank order.
var CanonicalGroups = [...]ChangeGroup{
	GroupAdded,
	GroupChanged,
	GroupDeprecated,
	GroupRemoved,
	GroupFixed,
	GroupSecurity,
}

var groupNames = map[ChangeGroup]string{
	GroupAdded:      "Added",
	GroupChanged:    "Changed",
	GroupDeprecated: "Deprecated",
	GroupRemoved:    "Removed",
	GroupFixed:      "Fixed",
	GroupSecurity:   "Security",
}

// String returns the canonical display name.
func (g ChangeGroup) String() string {
	if name, ok := groupNames[g]; ok {
		return name
	}
	return "Unknown"
}

// ResolveGroup maps a heading name onto a change group. Matching is exact and
// case-sensitive; anything else reports ok=false and is the caller's
// diagnostic to raise.
func ResolveGroup(name string) (ChangeGroup, bool) {
	switch name {
	case "Added":
		return GroupAdded, true
	case "Changed":
		return GroupChanged, true
	case "Deprecated":
		return GroupDeprecated, true
	case "Removed":
		return GroupRemoved, true
	case "Fixed":
		return GroupFixed, true
	case "Security":
		return GroupSecurity, true
	}
	return 0, false
}
