package scripts

import (
	"github.com/wolfman30/yt-re-growth-api/internal/validation"
)

// CallToAction closes every script. The hyphen in "15‑min" is U+2011.
const CallToAction = "Thinking about moving? Schedule a free 15‑min call in the link below."

var outline = [...]string{
	"Hook (5-7s): Bold claim referencing the market and pain point",
	"Pattern interrupt: quick b-roll of neighborhoods / skyline",
	"Authority: who you are and why to trust you",
	"Value chunk #1: actionable tip with concrete example",
	"Value chunk #2: local insight only a realtor knows",
	"Soft CTA: mention free relocation guide",
	"Value chunk #3: address common misconception",
	"CTA: invite to book a call / download guide",
}

// OutlineLength is the number of beats in every script.
const OutlineLength = len(outline)

// Outline returns the fixed beats in order.
func Outline() []string {
	out := make([]string, len(outline))
	copy(out, outline[:])
	return out
}

// Request is the script generation input. Niche is accepted but does not
// influence the output.
type Request struct {
	Title  string `json:"title" validate:"required"`
	Market string `json:"market" validate:"required"`
	Angle  string `json:"angle" validate:"required"`
	Niche  string `json:"niche,omitempty"`
}

// Script is a generated outline for one video.
type Script struct {
	Title        string   `json:"title"`
	Market       string   `json:"market"`
	Angle        string   `json:"angle"`
	CallToAction string   `json:"call_to_action"`
	Outline      []string `json:"outline"`
}

// Generate echoes title, market and angle and attaches the fixed call to
// action and outline.
func Generate(req Request) (*Script, error) {
	if err := validation.Struct(req).Err(); err != nil {
		return nil, err
	}
	return &Script{
		Title:        req.Title,
		Market:       req.Market,
		Angle:        req.Angle,
		CallToAction: CallToAction,
		Outline:      Outline(),
	}, nil
}
