package enums

import "fmt"

// StrainType classifies a product's cannabis strain.
type StrainType string

const (
	StrainTypeSativa StrainType = "Sativa"
	StrainTypeIndica StrainType = "Indica"
	StrainTypeHybrid StrainType = "Hybrid"
)

var validStrainTypes = []StrainType{
	StrainTypeSativa,
	StrainTypeIndica,
	StrainTypeHybrid,
}

// String implements fmt.Stringer.
func (s StrainType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StrainType.
func (s StrainType) IsValid() bool {
	for _, candidate := range validStrainTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStrainType converts raw input into a StrainType.
func ParseStrainType(value string) (StrainType, error) {
	for _, candidate := range validStrainTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid strain type %q", value)
}
