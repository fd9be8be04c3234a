// Package orgtype is the fixed registry of organisation types.
//
// Instances are built once at package init and never mutated. Each key maps
// to exactly one *Type, so pointer comparison is identity comparison.
package orgtype

import (
	"fmt"
	"slices"

	"govpub/pkg/platform/sentinel"
)

// Key identifies an organisation type.
type Key string

const (
	ExecutiveOffice           Key = "executive_office"
	MinisterialDepartment     Key = "ministerial_department"
	NonMinisterialDepartment  Key = "non_ministerial_department"
	ExecutiveAgency           Key = "executive_agency"
	ExecutiveNDPB             Key = "executive_ndpb"
	AdvisoryNDPB              Key = "advisory_ndpb"
	TribunalNDPB              Key = "tribunal_ndpb"
	PublicCorporation         Key = "public_corporation"
	IndependentMonitoringBody Key = "independent_monitoring_body"
	AdhocAdvisoryGroup        Key = "adhoc_advisory_group"
	DevolvedAdministration    Key = "devolved_administration"
	SubOrganisation           Key = "sub_organisation"
	Other                     Key = "other"
)

// Type is one organisation type.
type Type struct {
	Key             Key
	Name            string
	AnalyticsPrefix string
}

type definition struct {
	key    Key
	name   string
	prefix string
}

// definitions is in declaration order, which All preserves.
var definitions = []definition{
	{ExecutiveOffice, "Executive office", "EO"},
	{MinisterialDepartment, "Ministerial department", "D"},
	{NonMinisterialDepartment, "Non-ministerial department", "D"},
	{ExecutiveAgency, "Executive agency", "EA"},
	{ExecutiveNDPB, "Executive non-departmental public body", "PB"},
	{AdvisoryNDPB, "Advisory non-departmental public body", "PB"},
	{TribunalNDPB, "Tribunal non-departmental public body", "PB"},
	{PublicCorporation, "Public corporation", "PC"},
	{IndependentMonitoringBody, "Independent monitoring body", "IM"},
	{AdhocAdvisoryGroup, "Ad-hoc advisory group", "AG"},
	{DevolvedAdministration, "Devolved administration", "DA"},
	{SubOrganisation, "Sub-organisation", "OT"},
	{Other, "Other", "OT"},
}

var listingOrder = []Key{
	ExecutiveOffice,
	MinisterialDepartment,
	NonMinisterialDepartment,
	ExecutiveAgency,
	ExecutiveNDPB,
	AdvisoryNDPB,
	TribunalNDPB,
	PublicCorporation,
	IndependentMonitoringBody,
	AdhocAdvisoryGroup,
	DevolvedAdministration,
	SubOrganisation,
	Other,
}

var agencyOrPublicBodyTypes = []Key{
	ExecutiveAgency,
	ExecutiveNDPB,
	AdvisoryNDPB,
	TribunalNDPB,
	IndependentMonitoringBody,
	AdhocAdvisoryGroup,
	Other,
}

var nonDepartmentalPublicBodyTypes = []Key{
	ExecutiveNDPB,
	AdvisoryNDPB,
	TribunalNDPB,
}

var (
	instances = make(map[Key]*Type, len(definitions))
	all       = make([]*Type, 0, len(definitions))
)

func init() {
	for _, d := range definitions {
		t := &Type{Key: d.key, Name: d.name, AnalyticsPrefix: d.prefix}
		instances[d.key] = t
		all = append(all, t)
	}
}

// UnknownKeyError is returned for keys outside the registry.
type UnknownKeyError struct {
	Key Key
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("%s is not a known organisation type.", e.Key)
}

func (e *UnknownKeyError) Unwrap() error {
	return sentinel.ErrNotFound
}

// Get returns the registered type for key.
func Get(key Key) (*Type, error) {
	t, ok := instances[key]
	if !ok {
		return nil, &UnknownKeyError{Key: key}
	}
	return t, nil
}

// MustGet is Get for keys known at compile time. It panics on unknown keys.
func MustGet(key Key) *Type {
	t, err := Get(key)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse looks up a type by its string key, as stored on organisations.
func Parse(key string) (*Type, error) {
	return Get(Key(key))
}

// All returns every type in declaration order.
func All() []*Type {
	return slices.Clone(all)
}

// InListingOrder returns every type in public listing order.
func InListingOrder() []*Type {
	out := make([]*Type, 0, len(listingOrder))
	for _, k := range listingOrder {
		out = append(out, instances[k])
	}
	return out
}

// ValidKeys returns every registered key in declaration order.
func ValidKeys() []Key {
	keys := make([]Key, 0, len(definitions))
	for _, d := range definitions {
		keys = append(keys, d.key)
	}
	return keys
}

// ListingPosition is the zero-based index of t in the listing order.
func (t *Type) ListingPosition() int {
	return slices.Index(listingOrder, t.Key)
}

// Is reports whether t has the given key.
func (t *Type) Is(key Key) bool {
	return t.Key == key
}

func (t *Type) IsExecutiveOffice() bool           { return t.Is(ExecutiveOffice) }
func (t *Type) IsMinisterialDepartment() bool     { return t.Is(MinisterialDepartment) }
func (t *Type) IsNonMinisterialDepartment() bool  { return t.Is(NonMinisterialDepartment) }
func (t *Type) IsExecutiveAgency() bool           { return t.Is(ExecutiveAgency) }
func (t *Type) IsExecutiveNDPB() bool             { return t.Is(ExecutiveNDPB) }
func (t *Type) IsAdvisoryNDPB() bool              { return t.Is(AdvisoryNDPB) }
func (t *Type) IsTribunalNDPB() bool              { return t.Is(TribunalNDPB) }
func (t *Type) IsPublicCorporation() bool         { return t.Is(PublicCorporation) }
func (t *Type) IsIndependentMonitoringBody() bool { return t.Is(IndependentMonitoringBody) }
func (t *Type) IsAdhocAdvisoryGroup() bool        { return t.Is(AdhocAdvisoryGroup) }
func (t *Type) IsDevolvedAdministration() bool    { return t.Is(DevolvedAdministration) }
func (t *Type) IsSubOrganisation() bool           { return t.Is(SubOrganisation) }
func (t *Type) IsOther() bool                     { return t.Is(Other) }

// IsNonDepartmentalPublicBody covers the three NDPB variants.
func (t *Type) IsNonDepartmentalPublicBody() bool {
	return slices.Contains(nonDepartmentalPublicBodyTypes, t.Key)
}

// IsAgencyOrPublicBody reports membership of the agencies and public bodies listing.
func (t *Type) IsAgencyOrPublicBody() bool {
	return slices.Contains(agencyOrPublicBodyTypes, t.Key)
}
