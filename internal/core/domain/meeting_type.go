package domain

// MeetingType is the closed taxonomy of recognised meeting kinds.
// The declaration order below is the canonical priority order used to
// break score ties during classification, so new types must be
// appended with care.
type MeetingType string

const (
	MeetingStatus     MeetingType = "status"
	MeetingPlanning   MeetingType = "planning"
	MeetingDesign     MeetingType = "design"
	MeetingDemo       MeetingType = "demo"
	MeetingTalk       MeetingType = "talk"
	MeetingIncident   MeetingType = "incident"
	MeetingDiscovery  MeetingType = "discovery"
	MeetingOneOnOne   MeetingType = "oneonone"
	MeetingBrainstorm MeetingType = "brainstorm"
)

// AllMeetingTypes returns the taxonomy in canonical order.
func AllMeetingTypes() []MeetingType {
	return []MeetingType{
		MeetingStatus,
		MeetingPlanning,
		MeetingDesign,
		MeetingDemo,
		MeetingTalk,
		MeetingIncident,
		MeetingDiscovery,
		MeetingOneOnOne,
		MeetingBrainstorm,
	}
}

// IsValid reports whether t is a member of the taxonomy.
func (t MeetingType) IsValid() bool {
	for _, mt := range AllMeetingTypes() {
		if t == mt {
			return true
		}
	}
	return false
}

// Description returns a short human-readable label for the type,
// used by the picker UI and the notes header.
func (t MeetingType) Description() string {
	switch t {
	case MeetingStatus:
		return "Status update / stand-up"
	case MeetingPlanning:
		return "Planning session"
	case MeetingDesign:
		return "Design discussion"
	case MeetingDemo:
		return "Demo / walkthrough"
	case MeetingTalk:
		return "Talk / presentation"
	case MeetingIncident:
		return "Incident review"
	case MeetingDiscovery:
		return "Discovery / user interview"
	case MeetingOneOnOne:
		return "One-on-one"
	case MeetingBrainstorm:
		return "Brainstorm"
	default:
		return string(t)
	}
}

// ParseMeetingType converts a string to a MeetingType, reporting
// whether it names a taxonomy member.
func ParseMeetingType(s string) (MeetingType, bool) {
	t := MeetingType(s)
	if t.IsValid() {
		return t, true
	}
	return "", false
}
