package services

import "github.com/scrivia-labs/scrivia-cli/internal/core/domain"

// KeywordTable maps each meeting type to its weighted indicator
// phrases. Weights reflect signal strength: 3.0 phrases are nearly
// decisive on their own, 1.0 phrases only tip close calls. Matching
// is case-insensitive substring counting, so multi-word phrases match
// across word boundaries.
type KeywordTable map[domain.MeetingType]map[string]float64

// DefaultKeywords returns the built-in keyword table.
func DefaultKeywords() KeywordTable {
	return KeywordTable{
		domain.MeetingStatus: {
			// Progress and updates
			"status":      2.5,
			"update":      2.5,
			"progress":    2.0,
			"blockers":    2.5,
			"blocked":     2.0,
			"impediments": 2.0,
			"stand-up":    3.0,
			"standup":     3.0,
			"scrum":       2.5,
			"sprint":      2.0,
			// Time-based indicators
			"yesterday": 2.0,
			"today":     1.5,
			"tomorrow":  1.5,
			"this week": 1.0,
			"last week": 1.0,
			"next week": 1.0,
			// Status-specific phrases
			"working on":  1.5,
			"finished":    1.0,
			"completed":   1.0,
			"in progress": 1.5,
			"waiting for": 1.5,
		},
		domain.MeetingPlanning: {
			// Planning vocabulary
			"roadmap":         2.5,
			"milestone":       2.0,
			"sprint planning": 3.0,
			"backlog":         2.5,
			"prioritize":      2.0,
			"priority":        1.5,
			"estimate":        2.0,
			"timeline":        2.0,
			"deadline":        1.5,
			"dependencies":    1.5,
			// Future-focused
			"next quarter": 2.0,
			"next sprint":  2.0,
			"upcoming":     1.5,
			"plan":         1.5,
			"schedule":     1.5,
			"allocate":     1.5,
			"resource":     1.0,
			// Story/task language
			"story points": 2.5,
			"velocity":     2.0,
			"capacity":     1.5,
			"commitment":   1.5,
		},
		domain.MeetingDesign: {
			// Technical design
			"architecture": 2.5,
			"design":       2.0,
			"technical":    1.5,
			"approach":     1.5,
			"pattern":      2.0,
			"trade-offs":   2.5,
			"tradeoffs":    2.5,
			// System components
			"component":  1.5,
			"module":     1.5,
			"interface":  2.0,
			"api":        2.0,
			"schema":     2.0,
			"data model": 2.5,
			// Design process
			"diagram":     2.0,
			"whiteboard":  2.0,
			"mock":        1.5,
			"mockup":      1.5,
			"prototype":   2.0,
			"proposal":    1.5,
			"scalability": 2.0,
			"performance": 1.5,
		},
		domain.MeetingDemo: {
			// Demonstration
			"demo":        3.0,
			"demonstrate": 2.5,
			"show":        1.5,
			"presentation": 2.0,
			"showcase":    2.5,
			"walkthrough": 2.0,
			// Interaction
			"let me show":    2.5,
			"you can see":    2.0,
			"as you can see": 2.0,
			"here's how":     2.0,
			"click":          1.5,
			"screen":         1.5,
			"feature":        1.5,
			// Feedback
			"feedback":  1.5,
			"questions": 1.0,
			"thoughts":  1.0,
			"works":     1.0,
		},
		domain.MeetingTalk: {
			// Presentation/lecture
			"presentation": 2.0,
			"talk":         1.5,
			"lecture":      2.5,
			"today i'll":   2.0,
			"agenda":       2.0,
			"introducing":  2.0,
			"overview":     2.0,
			// Speaker patterns
			"thank you for": 1.5,
			"questions":     1.0,
			"slides":        2.5,
			"next slide":    2.5,
			// Educational
			"explain":    1.5,
			"learn":      1.5,
			"understand": 1.0,
		},
		domain.MeetingIncident: {
			// Urgency
			"incident":  3.0,
			"outage":    3.0,
			"down":      2.0,
			"critical":  2.5,
			"urgent":    2.0,
			"emergency": 2.5,
			"broken":    2.0,
			// Investigation
			"root cause":   2.5,
			"rca":          2.5,
			"investigate":  2.0,
			"debug":        2.0,
			"troubleshoot": 2.0,
			"logs":         1.5,
			"error":        1.5,
			"failure":      1.5,
			// Response
			"mitigate":   2.0,
			"rollback":   2.0,
			"hotfix":     2.5,
			"restore":    2.0,
			"recovering": 2.0,
		},
		domain.MeetingDiscovery: {
			// Research/exploration
			"discovery":    2.5,
			"research":     2.0,
			"explore":      2.0,
			"investigate":  1.5,
			"understand":   1.5,
			"requirements": 2.0,
			"user needs":   2.5,
			"pain points":  2.5,
			// Interview/probing
			"tell me about": 2.0,
			"how do you":    1.5,
			"why do you":    1.5,
			"workflow":      1.5,
			"process":       1.0,
			"challenges":    1.5,
			// Insights
			"insights": 2.0,
			"findings": 2.0,
			"learned":  1.5,
		},
		domain.MeetingOneOnOne: {
			// Personal connection
			"1:1":            3.0,
			"one-on-one":     3.0,
			"check-in":       2.5,
			"check in":       2.5,
			"how are you":    2.0,
			"how's it going": 2.0,
			// Career/growth
			"career":      2.5,
			"growth":      2.0,
			"feedback":    1.5,
			"performance": 1.5,
			"goals":       1.5,
			"development": 1.5,
			// Personal concerns
			"feeling":     1.5,
			"comfortable": 1.0,
			"support":     1.0,
			"concerns":    1.5,
		},
		domain.MeetingBrainstorm: {
			// Ideation
			"brainstorm": 3.0,
			"ideas":      2.5,
			"creative":   2.0,
			"think":      1.5,
			"what if":    2.5,
			"could we":   2.0,
			"maybe":      1.5,
			// Exploration
			"possibilities": 2.0,
			"options":       1.5,
			"alternatives":  1.5,
			"crazy idea":    2.5,
			"wild idea":     2.5,
			// No wrong answers
			"no bad ideas": 2.5,
			"throw out":    2.0,
			"building on":  1.5,
		},
	}
}
