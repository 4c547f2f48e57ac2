package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAllMeetingTypes tests the canonical taxonomy order
func TestAllMeetingTypes(t *testing.T) {
	want := []MeetingType{
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

	assert.Equal(t, want, AllMeetingTypes())
	assert.Len(t, AllMeetingTypes(), 9)
}

// TestMeetingType_IsValid tests taxonomy membership
func TestMeetingType_IsValid(t *testing.T) {
	for _, mt := range AllMeetingTypes() {
		assert.True(t, mt.IsValid(), "expected %q to be valid", mt)
	}

	assert.False(t, MeetingType("retrospective").IsValid())
	assert.False(t, MeetingType("").IsValid())
}

// TestParseMeetingType tests string conversion
func TestParseMeetingType(t *testing.T) {
	mt, ok := ParseMeetingType("incident")
	assert.True(t, ok)
	assert.Equal(t, MeetingIncident, mt)

	_, ok = ParseMeetingType("Incident")
	assert.False(t, ok)
}

// TestMeetingType_Description tests that every type has a label
func TestMeetingType_Description(t *testing.T) {
	for _, mt := range AllMeetingTypes() {
		assert.NotEmpty(t, mt.Description())
	}
	assert.Equal(t, "One-on-one", MeetingOneOnOne.Description())
}
