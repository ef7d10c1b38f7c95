package utils

import "strings"

// ------------------------------------------------------------------------
// EnumField names every closed enumeration stored on a buyer.
// ------------------------------------------------------------------------
type EnumField string

const (
	EnumCity         EnumField = "city"
	EnumPropertyType EnumField = "propertyType"
	EnumBHK          EnumField = "bhk"
	EnumPurpose      EnumField = "purpose"
	EnumTimeline     EnumField = "timeline"
	EnumSource       EnumField = "source"
	EnumStatus       EnumField = "status"
)

// Stored codes referenced directly by the service layer.
const (
	PropertyTypeApartment = "Apartment"
	PropertyTypeVilla     = "Villa"

	StatusNew = "New"
)

type enumOption struct {
	code  string
	label string
}

// enumTable keeps the ordered codes plus every label (and alias) that maps
// onto them. Reverse lookups only ever yield the primary label.
type enumTable struct {
	options []enumOption
	aliases map[string]string
}

func newEnumTable(options []enumOption, aliases map[string]string) *enumTable {
	t := &enumTable{options: options, aliases: map[string]string{}}
	for _, o := range options {
		t.aliases[o.label] = o.code
	}
	for label, code := range aliases {
		t.aliases[label] = code
	}
	return t
}

func identity(codes ...string) []enumOption {
	out := make([]enumOption, len(codes))
	for i, c := range codes {
		out[i] = enumOption{code: c, label: c}
	}
	return out
}

var enumTables = map[EnumField]*enumTable{
	EnumCity:         newEnumTable(identity("Chandigarh", "Mohali", "Zirakpur", "Panchkula", "Other"), nil),
	EnumPropertyType: newEnumTable(identity(PropertyTypeApartment, PropertyTypeVilla, "Plot", "Land", "Other"), nil),
	EnumBHK: newEnumTable([]enumOption{
		{code: "One", label: "1"},
		{code: "Two", label: "2"},
		{code: "Three", label: "3"},
		{code: "Four", label: "4"},
		{code: "Studio", label: "Studio"},
	}, nil),
	EnumPurpose: newEnumTable(identity("Buy", "Rent"), nil),
	EnumTimeline: newEnumTable([]enumOption{
		{code: "M0_3", label: "0-3 Months"},
		{code: "M3_6", label: "3-6 Months"},
		{code: "M6_plus", label: ">6 Months"},
		{code: "Exploring", label: "Exploring"},
	}, map[string]string{
		"0-3m": "M0_3",
		"3-6m": "M3_6",
		">6m":  "M6_plus",
	}),
	EnumSource: newEnumTable([]enumOption{
		{code: "Website", label: "Website"},
		{code: "Referral", label: "Referral"},
		{code: "Walk_in", label: "Walk In"},
		{code: "Call", label: "Call"},
		{code: "Other", label: "Other"},
	}, nil),
	EnumStatus: newEnumTable(identity(
		StatusNew, "Qualified", "Contacted", "Visited", "Negotiation", "Converted", "Dropped",
	), nil),
}

// EnumFields lists the fields in a stable order.
func EnumFields() []EnumField {
	return []EnumField{
		EnumCity, EnumPropertyType, EnumBHK, EnumPurpose, EnumTimeline, EnumSource, EnumStatus,
	}
}

// NormalizeEnum maps a human label onto its stored code. Unknown values are
// returned unchanged; validation decides whether they are acceptable.
func NormalizeEnum(field EnumField, label string) string {
	t, ok := enumTables[field]
	if !ok {
		return label
	}
	if code, ok := t.aliases[label]; ok {
		return code
	}
	return label
}

// EnumLabel is the reverse of NormalizeEnum: stored code to display label.
func EnumLabel(field EnumField, code string) string {
	t, ok := enumTables[field]
	if !ok {
		return code
	}
	for _, o := range t.options {
		if o.code == code {
			return o.label
		}
	}
	return code
}

// IsEnumCode reports whether value is one of the stored codes for field.
func IsEnumCode(field EnumField, value string) bool {
	t, ok := enumTables[field]
	if !ok {
		return false
	}
	for _, o := range t.options {
		if o.code == value {
			return true
		}
	}
	return false
}

// EnumCodes returns the stored codes for field in display order.
func EnumCodes(field EnumField) []string {
	t, ok := enumTables[field]
	if !ok {
		return nil
	}
	out := make([]string, len(t.options))
	for i, o := range t.options {
		out[i] = o.code
	}
	return out
}

// IsResidential reports whether the property type requires a BHK value.
func IsResidential(propertyType string) bool {
	return propertyType == PropertyTypeApartment || propertyType == PropertyTypeVilla
}

// EnumCodeList is the "[A B C]" rendering used in validation messages.
func EnumCodeList(field EnumField) string {
	return "[" + strings.Join(EnumCodes(field), " ") + "]"
}
