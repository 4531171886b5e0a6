package attributes

import (
	"sort"
	"strings"

	"github.com/velvetcrown/wigmatch-backend/pkg/enums"
)

// WigAttributes is the fully normalized attribute set. Every field always
// holds a valid enum value; unresolved input degrades to the field default,
// never to an empty value.
type WigAttributes struct {
	Length          enums.WigLength       `json:"length"`
	Texture         enums.HairTexture     `json:"texture"`
	ColorFamily     enums.ColorFamily     `json:"colorFamily"`
	CapConstruction enums.CapConstruction `json:"capConstruction"`
	Density         enums.HairDensity     `json:"density"`
	HairType        enums.HairType        `json:"hairType"`
	Style           enums.WigStyle        `json:"style"`
}

// Fallback records one attribute that resolved to its default because no
// rule matched the raw input. Scoring surfaces these in reasons when the
// defaulted attribute materially affected the score.
type Fallback struct {
	Attribute string `json:"attribute"`
	Default   string `json:"default"`
}

// Field defaults applied when no rule matches.
const (
	defaultLength          = enums.WigLengthMedium
	defaultTexture         = enums.HairTextureStraight
	defaultColorFamily     = enums.ColorFamilyBrunette
	defaultCapConstruction = enums.CapConstructionBasic
	defaultDensity         = enums.HairDensityMedium
	defaultHairType        = enums.HairTypeSynthetic
	defaultStyle           = enums.WigStyleClassic
)

type rule struct {
	substrings []string
	value      string
}

// Rules are evaluated top to bottom; the first substring hit wins. Order
// matters where terms overlap ("extra long" must be checked before "long").
var lengthRules = []rule{
	{[]string{"extra long", "extra-long", "xlong", "34\"", "36\""}, string(enums.WigLengthExtraLong)},
	{[]string{"pixie"}, string(enums.WigLengthPixie)},
	{[]string{"bob"}, string(enums.WigLengthBob)},
	{[]string{"shoulder"}, string(enums.WigLengthShoulder)},
	{[]string{"long"}, string(enums.WigLengthLong)},
	{[]string{"short", "cropped"}, string(enums.WigLengthShort)},
	{[]string{"medium", "mid length", "mid-length"}, string(enums.WigLengthMedium)},
}

var textureRules = []rule{
	{[]string{"kinky"}, string(enums.HairTextureKinky)},
	{[]string{"coily", "coil"}, string(enums.HairTextureCoily)},
	{[]string{"curly", "curl", "spiral"}, string(enums.HairTextureCurly)},
	{[]string{"wavy", "wave", "beach"}, string(enums.HairTextureWavy)},
	{[]string{"mixed", "multi-texture"}, string(enums.HairTextureMixed)},
	{[]string{"straight", "sleek", "silky"}, string(enums.HairTextureStraight)},
}

var colorFamilyRules = []rule{
	{[]string{"fantasy", "pastel", "rainbow", "pink", "blue", "purple", "green"}, string(enums.ColorFamilyFantasy)},
	{[]string{"platinum", "blonde", "blond", "honey", "golden", "champagne"}, string(enums.ColorFamilyBlonde)},
	{[]string{"white"}, string(enums.ColorFamilyWhite)},
	{[]string{"gray", "grey", "silver", "salt and pepper"}, string(enums.ColorFamilyGray)},
	{[]string{"red", "auburn", "copper", "ginger", "burgundy"}, string(enums.ColorFamilyRed)},
	{[]string{"black", "jet", "raven", "ebony"}, string(enums.ColorFamilyBlack)},
	{[]string{"brunette", "brown", "chocolate", "chestnut", "espresso", "mocha"}, string(enums.ColorFamilyBrunette)},
}

var capConstructionRules = []rule{
	{[]string{"hand tied", "hand-tied", "handtied"}, string(enums.CapConstructionHandTied)},
	{[]string{"full lace", "full-lace"}, string(enums.CapConstructionFullLace)},
	{[]string{"lace front", "lace-front", "lacefront"}, string(enums.CapConstructionLaceFront)},
	{[]string{"monofilament", "mono top", "mono part", "mono"}, string(enums.CapConstructionMonofilament)},
	{[]string{"basic", "open cap", "wefted", "capless"}, string(enums.CapConstructionBasic)},
}

var densityRules = []rule{
	{[]string{"heavy", "thick", "full density", "150%", "180%", "200%"}, string(enums.HairDensityHeavy)},
	{[]string{"light density", "thin", "fine", "low density"}, string(enums.HairDensityLight)},
	{[]string{"medium density", "average"}, string(enums.HairDensityMedium)},
}

var hairTypeRules = []rule{
	{[]string{"remy"}, string(enums.HairTypeRemyHumanHair)},
	{[]string{"human blend", "blended", "blend"}, string(enums.HairTypeHumanBlend)},
	{[]string{"human hair", "human"}, string(enums.HairTypeHumanHair)},
	{[]string{"heat friendly", "heat-friendly", "heat defiant", "heat safe"}, string(enums.HairTypeHeatFriendly)},
	{[]string{"synthetic", "fiber", "fibre", "kanekalon"}, string(enums.HairTypeSynthetic)},
}

var styleRules = []rule{
	{[]string{"pixie"}, string(enums.WigStylePixieCut)},
	{[]string{"bob"}, string(enums.WigStyleBobCut)},
	{[]string{"shag"}, string(enums.WigStyleShag)},
	{[]string{"updo", "up-do"}, string(enums.WigStyleUpdo)},
	{[]string{"braid"}, string(enums.WigStyleBraided)},
	{[]string{"layer"}, string(enums.WigStyleLayered)},
	{[]string{"classic"}, string(enums.WigStyleClassic)},
}

// Normalize maps free-form source attributes into the closed enum set. It is
// total: every field resolves to either a rule hit or its documented default.
// Returned fallbacks list the fields that defaulted, in field-name order.
func Normalize(raw map[string]string) (WigAttributes, []Fallback) {
	haystack := buildHaystack(raw)

	var fallbacks []Fallback
	resolve := func(field string, keys []string, rules []rule, def string) string {
		for _, key := range keys {
			if v, ok := raw[key]; ok {
				if hit, ok := match(strings.ToLower(v), rules); ok {
					return hit
				}
			}
		}
		if hit, ok := match(haystack, rules); ok {
			return hit
		}
		fallbacks = append(fallbacks, Fallback{Attribute: field, Default: def})
		return def
	}

	attrs := WigAttributes{
		Length:          enums.WigLength(resolve("length", []string{"length"}, lengthRules, string(defaultLength))),
		Texture:         enums.HairTexture(resolve("texture", []string{"texture", "style"}, textureRules, string(defaultTexture))),
		ColorFamily:     enums.ColorFamily(resolve("colorFamily", []string{"color", "colour", "shade"}, colorFamilyRules, string(defaultColorFamily))),
		CapConstruction: enums.CapConstruction(resolve("capConstruction", []string{"cap", "cap_construction", "construction"}, capConstructionRules, string(defaultCapConstruction))),
		Density:         enums.HairDensity(resolve("density", []string{"density"}, densityRules, string(defaultDensity))),
		HairType:        enums.HairType(resolve("hairType", []string{"hair_type", "material", "fiber"}, hairTypeRules, string(defaultHairType))),
		Style:           enums.WigStyle(resolve("style", []string{"style", "silhouette"}, styleRules, string(defaultStyle))),
	}

	sort.Slice(fallbacks, func(i, j int) bool { return fallbacks[i].Attribute < fallbacks[j].Attribute })
	return attrs, fallbacks
}

func match(value string, rules []rule) (string, bool) {
	for _, r := range rules {
		for _, sub := range r.substrings {
			if strings.Contains(value, sub) {
				return r.value, true
			}
		}
	}
	return "", false
}

// buildHaystack joins all raw values in key order so rules can match terms
// that live in the wrong source field (e.g. texture words in the title).
func buildHaystack(raw map[string]string) string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(strings.ToLower(raw[k]))
		b.WriteByte(' ')
	}
	return b.String()
}
