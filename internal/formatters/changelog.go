package formatters

import (
	"fmt"
	"strings"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
)

// RenderChangesLog formats a change list as a markdown document with
// a summary and per-kind sections, normalization first.
func RenderChangesLog(changes []domain.TranscriptChange) string {
	var normalization, repair []domain.TranscriptChange
	for _, c := range changes {
		if c.ChangeType == domain.ChangeRepair {
			repair = append(repair, c)
		} else {
			normalization = append(normalization, c)
		}
	}

	var b strings.Builder
	b.WriteString("# Transcript Changes Log\n\n")
	b.WriteString("This document logs all modifications made to the transcript during normalization and/or repair.\n\n")

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Total Changes**: %d\n", len(changes))
	fmt.Fprintf(&b, "- **Normalization Changes**: %d\n", len(normalization))
	fmt.Fprintf(&b, "- **Repair Changes**: %d\n\n", len(repair))

	if len(normalization) > 0 {
		b.WriteString("## Normalization Changes\n\n")
		b.WriteString("Deterministic changes applied during transcript normalization:\n\n")
		for _, c := range normalization {
			writeChange(&b, "Change", c)
		}
	}

	if len(repair) > 0 {
		b.WriteString("## LLM Repair Changes\n\n")
		b.WriteString("ASR error corrections applied by LLM:\n\n")
		for _, c := range repair {
			writeChange(&b, "Repair", c)
		}
	}

	return b.String()
}

func writeChange(b *strings.Builder, label string, c domain.TranscriptChange) {
	fmt.Fprintf(b, "### %s #%d @ %s\n\n", label, c.SegmentID, c.Timestamp)
	fmt.Fprintf(b, "**Reason**: %s\n\n", c.Reason)
	fmt.Fprintf(b, "**Before**:\n```\n%s\n```\n\n", c.Before)
	fmt.Fprintf(b, "**After**:\n```\n%s\n```\n\n", c.After)
}
