package ideas

import (
	"strings"
	"unicode"

	"github.com/wolfman30/yt-re-growth-api/internal/validation"
)

const (
	// DefaultNiche is used when the request carries no niche.
	DefaultNiche = "buyers"
	// DefaultGoal is used when the request carries no goal.
	DefaultGoal = "leads"

	// IdeasPerRequest is the number of ideas every request yields.
	IdeasPerRequest = 5

	priceHookMarker = "What $"
)

// hooks seed every generated idea, in output order.
var hooks = [IdeasPerRequest]string{
	"Avoid These Costly Mistakes",
	"Ultimate Guide",
	"Pros & Cons No One Tells You",
	"What $500k Buys You",
	"Top Neighborhoods Ranked",
}

// Hooks returns the hook phrases in generation order.
func Hooks() []string {
	out := make([]string, len(hooks))
	copy(out, hooks[:])
	return out
}

// Request is the idea generation input.
type Request struct {
	Market string `json:"market"`
	Niche  string `json:"niche,omitempty"`
	Goal   string `json:"goal,omitempty"`
}

// Normalize trims every field and fills in the niche and goal defaults.
func (r Request) Normalize() Request {
	out := Request{
		Market: strings.TrimSpace(r.Market),
		Niche:  strings.TrimSpace(r.Niche),
		Goal:   strings.TrimSpace(r.Goal),
	}
	if out.Niche == "" {
		out.Niche = DefaultNiche
	}
	if out.Goal == "" {
		out.Goal = DefaultGoal
	}
	return out
}

// VideoIdea is one generated suggestion.
type VideoIdea struct {
	Market string `json:"market"`
	Niche  string `json:"niche"`
	Title  string `json:"title"`
	Angle  string `json:"angle"`
	Goal   string `json:"goal"`
}

// Generate maps a request onto one idea per hook. It is deterministic and
// rejects a market that is blank after trimming.
func Generate(req Request) ([]VideoIdea, error) {
	req = req.Normalize()
	if req.Market == "" {
		return nil, validation.Missing("market")
	}

	niche := TitleCase(req.Niche)
	ideas := make([]VideoIdea, 0, len(hooks))
	for _, hook := range hooks {
		ideas = append(ideas, VideoIdea{
			Market: req.Market,
			Niche:  req.Niche,
			Title:  ideaTitle(hook, req.Market),
			Angle:  niche + " in " + req.Market + ": " + hook,
			Goal:   req.Goal,
		})
	}
	return ideas, nil
}

func ideaTitle(hook, market string) string {
	if strings.Contains(hook, priceHookMarker) {
		return hook + " in " + market
	}
	return hook + " When Buying in " + market
}

// TitleCase upper-cases the first letter of each whitespace-separated word
// and lower-cases the rest. Whitespace is preserved as-is.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	atWordStart := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			atWordStart = true
			b.WriteRune(r)
		case atWordStart:
			atWordStart = false
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
