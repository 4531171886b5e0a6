package attributes

import (
	"testing"

	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
)

func TestNormalize(t *testing.T) {
	t.Run("dedicated fields win", func(t *testing.T) {
		attrs, fallbacks := Normalize(map[string]string{
			"length":   "18\" Long Layered",
			"texture":  "Beach Wavy",
			"color":    "Honey Blonde",
			"cap":      "Lace Front",
			"density":  "150% Thick",
			"material": "100% Remy Human Hair",
			"style":    "Layered Cut",
		})
		if attrs.Length != enums.WigLengthLong {
			t.Fatalf("expected long, got %s", attrs.Length)
		}
		if attrs.Texture != enums.HairTextureWavy {
			t.Fatalf("expected wavy, got %s", attrs.Texture)
		}
		if attrs.ColorFamily != enums.ColorFamilyBlonde {
			t.Fatalf("expected blonde, got %s", attrs.ColorFamily)
		}
		if attrs.CapConstruction != enums.CapConstructionLaceFront {
			t.Fatalf("expected lace_front, got %s", attrs.CapConstruction)
		}
		if attrs.Density != enums.HairDensityHeavy {
			t.Fatalf("expected heavy, got %s", attrs.Density)
		}
		if attrs.HairType != enums.HairTypeRemyHumanHair {
			t.Fatalf("expected remy, got %s", attrs.HairType)
		}
		if attrs.Style != enums.WigStyleLayered {
			t.Fatalf("expected layered, got %s", attrs.Style)
		}
		if len(fallbacks) != 0 {
			t.Fatalf("expected no fallbacks, got %v", fallbacks)
		}
	})

	t.Run("haystack rescue from title", func(t *testing.T) {
		attrs, _ := Normalize(map[string]string{
			"title": "Espresso Curly Bob with Mono Top",
		})
		if attrs.ColorFamily != enums.ColorFamilyBrunette {
			t.Fatalf("expected brunette from espresso, got %s", attrs.ColorFamily)
		}
		if attrs.Texture != enums.HairTextureCurly {
			t.Fatalf("expected curly, got %s", attrs.Texture)
		}
		if attrs.Length != enums.WigLengthBob {
			t.Fatalf("expected bob, got %s", attrs.Length)
		}
		if attrs.CapConstruction != enums.CapConstructionMonofilament {
			t.Fatalf("expected monofilament, got %s", attrs.CapConstruction)
		}
	})

	t.Run("empty input resolves to all defaults", func(t *testing.T) {
		attrs, fallbacks := Normalize(map[string]string{})
		if attrs.Length != enums.WigLengthMedium ||
			attrs.Texture != enums.HairTextureStraight ||
			attrs.ColorFamily != enums.ColorFamilyBrunette ||
			attrs.CapConstruction != enums.CapConstructionBasic ||
			attrs.Density != enums.HairDensityMedium ||
			attrs.HairType != enums.HairTypeSynthetic ||
			attrs.Style != enums.WigStyleClassic {
			t.Fatalf("unexpected defaults: %+v", attrs)
		}
		if len(fallbacks) != 7 {
			t.Fatalf("expected 7 fallback records, got %d", len(fallbacks))
		}
		// fallbacks are sorted by attribute name
		for i := 1; i < len(fallbacks); i++ {
			if fallbacks[i-1].Attribute > fallbacks[i].Attribute {
				t.Fatalf("fallbacks not sorted: %v", fallbacks)
			}
		}
	})

	t.Run("extra long beats long", func(t *testing.T) {
		attrs, _ := Normalize(map[string]string{"length": "Extra Long Straight"})
		if attrs.Length != enums.WigLengthExtraLong {
			t.Fatalf("expected extra_long, got %s", attrs.Length)
		}
	})

	t.Run("every field is always valid", func(t *testing.T) {
		inputs := []map[string]string{
			nil,
			{"title": "???"},
			{"color": "zzz", "texture": "zzz"},
			{"title": "Platinum Pixie Kinky Hand Tied Heat Friendly"},
		}
		for _, raw := range inputs {
			attrs, _ := Normalize(raw)
			if !attrs.Length.IsValid() || !attrs.Texture.IsValid() ||
				!attrs.ColorFamily.IsValid() || !attrs.CapConstruction.IsValid() ||
				!attrs.Density.IsValid() || !attrs.HairType.IsValid() || !attrs.Style.IsValid() {
				t.Fatalf("invalid enum produced for %v: %+v", raw, attrs)
			}
		}
	})
}
