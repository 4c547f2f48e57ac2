package transforms

import (
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driving"
	"github.com/scrivia-labs/scrivia-cli/internal/transforms/fillers"
	"github.com/scrivia-labs/scrivia-cli/internal/transforms/numbers"
	"github.com/scrivia-labs/scrivia-cli/internal/transforms/stitch"
	"github.com/scrivia-labs/scrivia-cli/internal/transforms/stutter"
)

// NewDefaultPipeline builds the standard four-stage pipeline in its
// fixed order: stutter reduction, filler removal, sentence stitching,
// number/date normalization. Stutter reduction and stitching always
// run; the other two stages are gated by opts.
func NewDefaultPipeline(opts driving.NormalizeOptions) *Pipeline {
	p := NewPipeline(stutter.New())
	if opts.RemoveFillers {
		p.Add(fillers.New())
	}
	p.Add(stitch.New())
	if opts.NormalizeNumbers {
		p.Add(numbers.New())
	}
	return p
}
