// Package capability holds the closed service taxonomy and the keyword
// detector that maps a visitor query onto at most one tag.
package capability

import "strings"

// a tag from the fixed taxonomy; the zero value means "none"
type Capability string

const (
	NarrativeFrameworks    Capability = "narrative-frameworks"
	GTMStrategy            Capability = "gtm-strategy"
	BrandPositioning       Capability = "brand-positioning"
	MessagingArchitecture  Capability = "messaging-architecture"
	SalesEnablement        Capability = "sales-enablement"
	ProductMarketing       Capability = "product-marketing"
	DemandGeneration       Capability = "demand-generation"
	ContentStrategy        Capability = "content-strategy"
	ExecutiveComms         Capability = "executive-communications"
	AnalystRelations       Capability = "analyst-relations"
	CustomerStorytelling   Capability = "customer-storytelling"
	PitchDevelopment       Capability = "pitch-development"
	MarketResearch         Capability = "market-research"
	CategoryDesign         Capability = "category-design"
	ThoughtLeadership      Capability = "thought-leadership"
	WebsiteStrategy        Capability = "website-strategy"
	VideoProduction        Capability = "video-production"
	InformationDesign      Capability = "information-design"
	EventStrategy          Capability = "event-strategy"
	InternalCommunications Capability = "internal-communications"
	None                   Capability = ""
)

type entry struct {
	capability Capability
	keywords   []string
}

// iteration order is part of the detector's contract: when keywords overlap,
// the earlier entry wins
var table = []entry{
	{NarrativeFrameworks, []string{"narrative", "storyline", "story arc", "framework"}},
	{GTMStrategy, []string{"go-to-market", "go to market", "gtm", "launch plan", "market entry"}},
	{BrandPositioning, []string{"positioning", "brand", "differentiat"}},
	{MessagingArchitecture, []string{"messaging", "message house", "value prop", "tagline"}},
	{SalesEnablement, []string{"sales enablement", "sales deck", "battlecard", "sales team", "objection"}},
	{ProductMarketing, []string{"product marketing", "product launch", "feature launch", "pmm"}},
	{DemandGeneration, []string{"demand gen", "lead gen", "pipeline", "campaign"}},
	{ContentStrategy, []string{"content strategy", "editorial", "blog", "content calendar"}},
	{ExecutiveComms, []string{"ceo", "executive", "keynote", "leadership team"}},
	{AnalystRelations, []string{"analyst", "gartner", "forrester", "magic quadrant"}},
	{CustomerStorytelling, []string{"case study", "customer story", "testimonial", "success story"}},
	{PitchDevelopment, []string{"pitch", "investor", "fundrais", "series a", "series b"}},
	{MarketResearch, []string{"research", "survey", "persona", "competitive analysis"}},
	{CategoryDesign, []string{"category", "new market", "category creation"}},
	{ThoughtLeadership, []string{"thought leadership", "point of view", "whitepaper", "white paper"}},
	{WebsiteStrategy, []string{"website", "homepage", "landing page", "web copy"}},
	{VideoProduction, []string{"video", "animation", "explainer"}},
	{InformationDesign, []string{"diagram", "infographic", "visualiz", "data story"}},
	{EventStrategy, []string{"event", "conference", "summit", "webinar"}},
	{InternalCommunications, []string{"internal comms", "employee", "all-hands", "change management"}},
}

// returns the first capability whose keywords appear in the query, or None
func Detect(query string) Capability {
	q := strings.ToLower(query)

	for _, e := range table {
		for _, kw := range e.keywords {
			if strings.Contains(q, kw) {
				return e.capability
			}
		}
	}

	return None
}

// lists the taxonomy in detection order
func All() []Capability {
	out := make([]Capability, 0, len(table))

	for _, e := range table {
		out = append(out, e.capability)
	}

	return out
}

// reports whether c is a member of the taxonomy
func Valid(c Capability) bool {
	for _, e := range table {
		if e.capability == c {
			return true
		}
	}

	return false
}

// returns the keyword phrases for a capability
func Keywords(c Capability) []string {
	for _, e := range table {
		if e.capability == c {
			return append([]string(nil), e.keywords...)
		}
	}

	return nil
}

func (c Capability) String() string {
	return string(c)
}

// nil for None so JSON renders null
func (c Capability) Ptr() *string {
	if c == None {
		return nil
	}

	s := string(c)
	return &s
}
