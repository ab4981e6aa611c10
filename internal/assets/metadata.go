package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"codeberg.org/showcase/server/internal/capability"
	"github.com/go-playground/validator/v10"
)

// at most this many secondary capabilities are kept per asset
const maxSecondaryCapabilities = 2

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func metadataValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		if err := capability.RegisterValidation(validate); err != nil {
			panic(fmt.Sprintf("register capability validation: %v", err))
		}
	})

	return validate
}

const (
	keyPrimaryCapability     = "primary_capability"
	keySecondaryCapabilities = "secondary_capabilities"
	keyIsCaseStudy           = "is_case_study"
	keyQualityScore          = "quality_score"
	keyContentType           = "content_type"
)

// decodes the stored metadata map into its typed form.
// each field is decoded and validated on its own: a field with the wrong JSON
// type or an out-of-range value is dropped and reported in the returned error,
// the others are kept. the Metadata value is always usable.
func ParseMetadata(raw []byte) (Metadata, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return Metadata{}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Metadata{}, fmt.Errorf("failed to decode metadata: %w", err)
	}

	var (
		md   Metadata
		errs []error
	)

	if s, ok := decodeField[string](fields, keyPrimaryCapability, "omitempty,capability", &errs); ok {
		md.PrimaryCapability = capability.Capability(s)
	}

	if list, ok := decodeField[[]string](fields, keySecondaryCapabilities, "", &errs); ok {
		for i, s := range list {
			c := capability.Capability(s)
			if !capability.Valid(c) {
				errs = append(errs, fmt.Errorf("metadata field %s[%d] failed on 'capability'", keySecondaryCapabilities, i))
				continue
			}

			if c == md.PrimaryCapability || slices.Contains(md.SecondaryCapabilities, c) {
				continue
			}

			if len(md.SecondaryCapabilities) == maxSecondaryCapabilities {
				errs = append(errs, fmt.Errorf("metadata has more than %d secondary capabilities", maxSecondaryCapabilities))
				break
			}

			md.SecondaryCapabilities = append(md.SecondaryCapabilities, c)
		}
	}

	if b, ok := decodeField[bool](fields, keyIsCaseStudy, "", &errs); ok {
		md.IsCaseStudy = b
	}

	if q, ok := decodeField[float64](fields, keyQualityScore, "min=1,max=5", &errs); ok {
		md.QualityScore = &q
	}

	if s, ok := decodeField[string](fields, keyContentType, "omitempty,oneof=case_study article video deck diagram", &errs); ok {
		md.ContentTypeOverride = Type(s)
	}

	return md, errors.Join(errs...)
}

// decodes fields[key] into a T and checks it against a validator tag.
// absent and null fields report false without an error.
func decodeField[T any](fields map[string]json.RawMessage, key, tag string, errs *[]error) (T, bool) {
	var v T

	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return v, false
	}

	if err := json.Unmarshal(raw, &v); err != nil {
		*errs = append(*errs, fmt.Errorf("metadata field %s has the wrong type: %w", key, err))
		return v, false
	}

	if tag == "" {
		return v, true
	}

	if err := metadataValidator().Var(v, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			err = fmt.Errorf("metadata field %s failed on '%s'", key, verrs[0].Tag())
		}

		*errs = append(*errs, err)

		var zero T

		return zero, false
	}

	return v, true
}

// row_to_json shape of the assets table
type record struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Title        string          `json:"title"`
	ClientName   *string         `json:"client_name"`
	Description  *string         `json:"description"`
	Content      *string         `json:"content"`
	Metadata     json.RawMessage `json:"metadata"`
	ThumbnailURL *string         `json:"thumbnail_url"`
	SourceURL    *string         `json:"source_url"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// decodes an asset serialized as a JSON record (as returned by the match functions).
// a metadata validation problem is returned alongside a usable Asset.
func DecodeRecord(raw []byte) (Asset, error) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Asset{}, fmt.Errorf("failed to decode asset record: %w", err)
	}

	if r.ID == "" {
		return Asset{}, fmt.Errorf("asset record has no id")
	}

	md, mdErr := ParseMetadata(r.Metadata)

	return Asset{
		ID:           r.ID,
		Type:         Type(r.Type),
		Title:        r.Title,
		ClientName:   r.ClientName,
		Description:  r.Description,
		Content:      r.Content,
		Metadata:     md,
		ThumbnailURL: r.ThumbnailURL,
		SourceURL:    r.SourceURL,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}, mdErr
}
