package model

import "github.com/rotisserie/eris"

// Gender is one value of the gender dimension.
type Gender string

const (
	GenderAll    Gender = "all"
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders returns all gender values in canonical order.
func Genders() []Gender {
	return []Gender{GenderAll, GenderMale, GenderFemale, GenderOther}
}

// ParseGender validates a gender value from an external surface.
func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderAll, GenderMale, GenderFemale, GenderOther:
		return Gender(s), nil
	}
	return "", eris.Errorf("model: unknown gender %q", s)
}

// AgeBand is one value of the age dimension.
type AgeBand string

const (
	AgeAll    AgeBand = "all"
	Age0To18  AgeBand = "0_18"
	Age19To35 AgeBand = "19_35"
	Age36To50 AgeBand = "36_50"
	Age51Plus AgeBand = "51_plus"
)

// AgeBands returns all age bands in canonical order.
func AgeBands() []AgeBand {
	return []AgeBand{AgeAll, Age0To18, Age19To35, Age36To50, Age51Plus}
}

// ParseAgeBand validates an age band value from an external surface.
func ParseAgeBand(s string) (AgeBand, error) {
	switch AgeBand(s) {
	case AgeAll, Age0To18, Age19To35, Age36To50, Age51Plus:
		return AgeBand(s), nil
	}
	return "", eris.Errorf("model: unknown age band %q", s)
}

// SocialCategory is one value of the social category dimension.
type SocialCategory string

const (
	CategoryAll SocialCategory = "all"
	CategoryOBC SocialCategory = "obc"
	CategorySC  SocialCategory = "sc"
	CategoryST  SocialCategory = "st"
	CategoryOC  SocialCategory = "oc"
)

// SocialCategories returns all social categories in canonical order.
func SocialCategories() []SocialCategory {
	return []SocialCategory{CategoryAll, CategoryOBC, CategorySC, CategoryST, CategoryOC}
}

// ParseSocialCategory validates a social category value from an external surface.
func ParseSocialCategory(s string) (SocialCategory, error) {
	switch SocialCategory(s) {
	case CategoryAll, CategoryOBC, CategorySC, CategoryST, CategoryOC:
		return SocialCategory(s), nil
	}
	return "", eris.Errorf("model: unknown social category %q", s)
}

// EconomicClass is one value of the socio-economic class dimension.
type EconomicClass string

const (
	ClassAll      EconomicClass = "all"
	ClassBPL      EconomicClass = "bpl"
	ClassLow      EconomicClass = "low"
	ClassMiddle   EconomicClass = "middle"
	ClassHigh     EconomicClass = "high"
	ClassAffluent EconomicClass = "affluent"
)

// EconomicClasses returns all economic classes in canonical order.
func EconomicClasses() []EconomicClass {
	return []EconomicClass{ClassAll, ClassBPL, ClassLow, ClassMiddle, ClassHigh, ClassAffluent}
}

// ParseEconomicClass validates an economic class value from an external surface.
func ParseEconomicClass(s string) (EconomicClass, error) {
	switch EconomicClass(s) {
	case ClassAll, ClassBPL, ClassLow, ClassMiddle, ClassHigh, ClassAffluent:
		return EconomicClass(s), nil
	}
	return "", eris.Errorf("model: unknown economic class %q", s)
}

// DemographicKey is the canonical composite of all four dimension values.
// Reproducible byte-for-byte from the same Selection; used to address the
// metric repository.
type DemographicKey string

// Selection is the immutable set of dimension choices driving every derived
// view. Derivation functions receive it by value; no component caches its
// own copy.
type Selection struct {
	Gender         Gender         `json:"gender"`
	AgeBand        AgeBand        `json:"age_band"`
	SocialCategory SocialCategory `json:"social_category"`
	EconomicClass  EconomicClass  `json:"economic_class"`
}

// DefaultSelection is the unsegmented all/all/all/all selection.
func DefaultSelection() Selection {
	return Selection{
		Gender:         GenderAll,
		AgeBand:        AgeAll,
		SocialCategory: CategoryAll,
		EconomicClass:  ClassAll,
	}
}

// Key composes the lookup key from all four dimensions. Earlier renditions
// of this system keyed on gender and age only, silently ignoring the other
// two selectors; every exposed dimension participates here.
func (s Selection) Key() DemographicKey {
	return DemographicKey(
		"g:" + string(s.Gender) +
			"|a:" + string(s.AgeBand) +
			"|c:" + string(s.SocialCategory) +
			"|e:" + string(s.EconomicClass),
	)
}

// AllSelections enumerates the full dimension cross product in a fixed
// order. The repository holds one vector per area for every key this
// produces.
func AllSelections() []Selection {
	sels := make([]Selection, 0,
		len(Genders())*len(AgeBands())*len(SocialCategories())*len(EconomicClasses()))
	for _, g := range Genders() {
		for _, a := range AgeBands() {
			for _, c := range SocialCategories() {
				for _, e := range EconomicClasses() {
					sels = append(sels, Selection{
						Gender:         g,
						AgeBand:        a,
						SocialCategory: c,
						EconomicClass:  e,
					})
				}
			}
		}
	}
	return sels
}
