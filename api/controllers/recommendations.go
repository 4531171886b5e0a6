package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/velvetcrown/wigmatch-backend/api/middleware"
	"github.com/velvetcrown/wigmatch-backend/api/responses"
	"github.com/velvetcrown/wigmatch-backend/api/validators"
	"github.com/velvetcrown/wigmatch-backend/internal/colorsci"
	"github.com/velvetcrown/wigmatch-backend/internal/recommend"
	"github.com/velvetcrown/wigmatch-backend/internal/scoring"
	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
	pkgerrors "github.com/velvetcrown/wigmatch-backend/pkg/errors"
	"github.com/velvetcrown/wigmatch-backend/pkg/logger"
)

type labEstimateRequest struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

type stylePreferencesRequest struct {
	Silhouette  string `json:"silhouette"`
	Formality   string `json:"formality"`
	Maintenance string `json:"maintenance"`
}

type profileRequest struct {
	ColorFamily      string                  `json:"color_family" validate:"required"`
	ShadeDescription string                  `json:"shade_description"`
	Undertone        string                  `json:"undertone"`
	Lightness        string                  `json:"lightness"`
	LabEstimate      *labEstimateRequest     `json:"lab_estimate"`
	Length           string                  `json:"length"`
	Texture          string                  `json:"texture"`
	CapPreferences   []string                `json:"cap_preferences" validate:"max=8"`
	StylePreferences stylePreferencesRequest `json:"style_preferences"`
}

type recommendationRequest struct {
	Profile            profileRequest `json:"profile" validate:"required"`
	Limit              int            `json:"limit" validate:"min=0,max=100"`
	IncludeUnavailable bool           `json:"include_unavailable"`
}

func (r profileRequest) toProfile() (scoring.UserProfile, error) {
	family, err := enums.ParseColorFamily(strings.TrimSpace(r.ColorFamily))
	if err != nil {
		return scoring.UserProfile{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid color family")
	}

	profile := scoring.UserProfile{
		ColorFamily:      family,
		ShadeDescription: strings.TrimSpace(r.ShadeDescription),
		StylePreferences: scoring.StylePreferences{
			Silhouette:  strings.TrimSpace(r.StylePreferences.Silhouette),
			Formality:   strings.TrimSpace(r.StylePreferences.Formality),
			Maintenance: strings.TrimSpace(r.StylePreferences.Maintenance),
		},
	}

	if raw := strings.TrimSpace(r.Undertone); raw != "" {
		undertone, err := enums.ParseUndertone(raw)
		if err != nil {
			return scoring.UserProfile{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid undertone")
		}
		profile.Undertone = undertone
	}

	if raw := strings.TrimSpace(r.Lightness); raw != "" {
		lightness, err := enums.ParseLightness(raw)
		if err != nil {
			return scoring.UserProfile{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid lightness")
		}
		profile.Lightness = lightness
	}

	if raw := strings.TrimSpace(r.Length); raw != "" {
		length, err := enums.ParseWigLength(raw)
		if err != nil {
			return scoring.UserProfile{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid length")
		}
		profile.Length = length
	}

	if raw := strings.TrimSpace(r.Texture); raw != "" {
		texture, err := enums.ParseHairTexture(raw)
		if err != nil {
			return scoring.UserProfile{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid texture")
		}
		profile.Texture = texture
	}

	for _, raw := range r.CapPreferences {
		pref, err := enums.ParseCapConstruction(strings.TrimSpace(raw))
		if err != nil {
			return scoring.UserProfile{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cap preference")
		}
		profile.CapPreferences = append(profile.CapPreferences, pref)
	}

	if r.LabEstimate != nil {
		profile.LabEstimate = &colorsci.Lab{L: r.LabEstimate.L, A: r.LabEstimate.A, B: r.LabEstimate.B}
	}

	return profile, nil
}

// Recommendations runs the full matching pipeline for the calling tenant and
// returns the ordered, explained result list.
func Recommendations(svc recommend.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recommendation service unavailable"))
			return
		}

		tenantID := middleware.TenantIDFromContext(r.Context())
		if tenantID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "tenant context missing"))
			return
		}

		var payload recommendationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := payload.Profile.toProfile()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Recommend(r.Context(), recommend.Request{
			TenantID:           tenantID,
			RequestID:          w.Header().Get("X-Request-Id"),
			Profile:            profile,
			Limit:              payload.Limit,
			IncludeUnavailable: payload.IncludeUnavailable,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}
