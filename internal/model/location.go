package model

import (
	"marketapi/internal/query"
	"marketapi/internal/repository"
)

// Location is a place items are offered at. Locations carry no natural key;
// identity is the id alone.
type Location struct {
	ID      int64   `json:"id"`
	City    string  `json:"city"`
	Region  string  `json:"region"`
	Country *string `json:"country,omitempty"`
	Address *string `json:"address,omitempty"`
}

// LocationCreate is the validated payload for creating a location.
type LocationCreate struct {
	City    string  `json:"city"`
	Region  string  `json:"region"`
	Country *string `json:"country"`
	Address *string `json:"address"`
}

// Fields returns the insert columns for the payload.
func (l LocationCreate) Fields() repository.Fields {
	return repository.Fields{
		"city":    l.City,
		"region":  l.Region,
		"country": query.Value(l.Country),
		"address": query.Value(l.Address),
	}
}

// LocationUpdate serves both full updates and sparse patches.
type LocationUpdate struct {
	City    *string `json:"city"`
	Region  *string `json:"region"`
	Country *string `json:"country"`
	Address *string `json:"address"`
}

// EditFields implements repository.FieldSource.
func (u LocationUpdate) EditFields(excludeUnset bool) repository.Fields {
	f := repository.Fields{}
	if !excludeUnset || u.City != nil {
		f["city"] = query.Value(u.City)
	}
	if !excludeUnset || u.Region != nil {
		f["region"] = query.Value(u.Region)
	}
	if !excludeUnset || u.Country != nil {
		f["country"] = query.Value(u.Country)
	}
	if !excludeUnset || u.Address != nil {
		f["address"] = query.Value(u.Address)
	}
	return f
}

// LocationFilter narrows location listings; unset fields match everything.
type LocationFilter struct {
	City   *string `json:"city"`
	Region *string `json:"region"`
}

// Filters returns the equality predicates for the set fields.
func (f LocationFilter) Filters() repository.Filters {
	return query.New().
		String("city", f.City).
		String("region", f.Region).
		Filters()
}
