package domain

// EventKind groups templates and changes prompt wording. Values are the
// Korean labels shown to users and sent to the model.
type EventKind string

const (
	KindSchool EventKind = "학교 행사"
	KindOffice EventKind = "교육청 행사"
)

// ValidEventKinds lists every accepted kind.
var ValidEventKinds = map[EventKind]bool{
	KindSchool: true,
	KindOffice: true,
}

// EventKinds returns kinds in display order.
func EventKinds() []EventKind {
	return []EventKind{KindSchool, KindOffice}
}

// HasVIPs reports whether events of this kind carry a VIP attendee roster.
func (k EventKind) HasVIPs() bool {
	return k == KindOffice
}

// ParseEventKind accepts the Korean label or the short aliases "school"
// and "office".
func ParseEventKind(s string) (EventKind, bool) {
	switch s {
	case string(KindSchool), "school":
		return KindSchool, true
	case string(KindOffice), "office":
		return KindOffice, true
	}
	return "", false
}
