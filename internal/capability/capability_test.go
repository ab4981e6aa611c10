package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Capability
	}{
		{"empty query", "", None},
		{"no keywords", "hello there", None},
		{"single match", "help with our go-to-market motion", GTMStrategy},
		{"case insensitive", "Need a BRAND refresh", BrandPositioning},
		{"substring inside word", "how do we differentiate?", BrandPositioning},
		{"video", "an explainer for our platform", VideoProduction},
		{"case study phrase", "show me a customer story", CustomerStorytelling},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.query))
		})
	}
}

// overlapping keywords resolve to the earliest table entry
func TestDetect_FirstEntryWins(t *testing.T) {
	// "narrative" (first entry) and "brand" (third entry) both match
	assert.Equal(t, NarrativeFrameworks, Detect("a brand narrative for our launch"))

	// "gtm" beats "campaign" and "video"
	assert.Equal(t, GTMStrategy, Detect("GTM campaign video"))

	// "pitch" is before "research"
	assert.Equal(t, PitchDevelopment, Detect("investor research pitch"))
}

func TestDetect_Idempotent(t *testing.T) {
	queries := []string{"CrowdStrike case study", "webinar series", "nothing relevant", ""}

	for _, q := range queries {
		assert.Equal(t, Detect(q), Detect(q), "query %q", q)
	}
}

func TestAllAndValid(t *testing.T) {
	all := All()

	assert.Len(t, all, len(table))
	assert.Equal(t, NarrativeFrameworks, all[0])

	seen := make(map[Capability]bool)
	for _, c := range all {
		assert.False(t, seen[c], "duplicate capability %s", c)
		seen[c] = true
		assert.True(t, Valid(c))
		assert.NotEmpty(t, Keywords(c))
	}

	assert.False(t, Valid(None))
	assert.False(t, Valid("not-a-capability"))
	assert.Nil(t, Keywords("not-a-capability"))
}

func TestPtr(t *testing.T) {
	assert.Nil(t, None.Ptr())

	p := GTMStrategy.Ptr()
	if assert.NotNil(t, p) {
		assert.Equal(t, "gtm-strategy", *p)
	}
}
