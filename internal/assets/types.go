package assets

import (
	"time"

	"codeberg.org/showcase/server/internal/capability"
)

type Type string

const (
	TypeCaseStudy Type = "case_study"
	TypeArticle   Type = "article"
	TypeVideo     Type = "video"
	TypeDeck      Type = "deck"
	TypeDiagram   Type = "diagram"
)

var knownTypes = map[Type]bool{
	TypeCaseStudy: true,
	TypeArticle:   true,
	TypeVideo:     true,
	TypeDeck:      true,
	TypeDiagram:   true,
}

func (t Type) Valid() bool {
	return knownTypes[t]
}

// a content item shown on the marketing site
type Asset struct {
	ID           string    `json:"id"`
	Type         Type      `json:"type"`
	Title        string    `json:"title"`
	ClientName   *string   `json:"client_name,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Content      *string   `json:"content,omitempty"`
	Metadata     Metadata  `json:"metadata"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	SourceURL    *string   `json:"source_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// derived fields written by ingestion
type Metadata struct {
	PrimaryCapability     capability.Capability   `json:"primary_capability,omitempty"`
	SecondaryCapabilities []capability.Capability `json:"secondary_capabilities,omitempty"`
	IsCaseStudy           bool                    `json:"is_case_study"`
	QualityScore          *float64                `json:"quality_score,omitempty"` // 1..5, fractional allowed
	ContentTypeOverride   Type                    `json:"content_type,omitempty"`
}

// the type shown to visitors, honouring the metadata override
func (a Asset) EffectiveType() Type {
	if a.Metadata.ContentTypeOverride.Valid() {
		return a.Metadata.ContentTypeOverride
	}

	return a.Type
}

func (a Asset) IsCaseStudy() bool {
	return a.Type == TypeCaseStudy || a.Metadata.IsCaseStudy || a.EffectiveType() == TypeCaseStudy
}
