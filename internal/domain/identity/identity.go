// Package identity normalizes identifier references. API clients may send a
// related record as a bare ID string, an embedded object carrying one of
// several identifier fields, or a list of either; every component that
// resolves a tenant, user, or event reference goes through Normalize so the
// resolution rules live in exactly one place.
package identity

import "encoding/json"

// Ref is a reference to a record that has not yet been resolved to a
// canonical ID. The zero value is the missing reference.
type Ref struct {
	raw  string
	obj  *refObject
	list []Ref
}

// refObject holds the identifier-bearing fields an embedded record may carry,
// in priority order: id, then _id, then value.
type refObject struct {
	ID    string `json:"id"`
	AltID string `json:"_id"`
	Value string `json:"value"`
}

// FromString returns a Ref wrapping a bare identifier.
func FromString(id string) Ref {
	return Ref{raw: id}
}

// Normalize resolves the reference to a canonical identifier string.
// A list resolves to its first element, an object to its highest-priority
// identifier field. Unresolvable references yield "". Normalize is total and
// idempotent: Normalize(FromString(r.Normalize())) == r.Normalize().
func (r Ref) Normalize() string {
	switch {
	case r.raw != "":
		return r.raw
	case r.obj != nil:
		if r.obj.ID != "" {
			return r.obj.ID
		}
		if r.obj.AltID != "" {
			return r.obj.AltID
		}
		return r.obj.Value
	case len(r.list) > 0:
		return r.list[0].Normalize()
	default:
		return ""
	}
}

// IsZero reports whether the reference is missing entirely.
func (r Ref) IsZero() bool {
	return r.raw == "" && r.obj == nil && len(r.list) == 0
}

// UnmarshalJSON accepts a string, an object with id/_id/value fields, an
// array of either, or null.
func (r *Ref) UnmarshalJSON(data []byte) error {
	*r = Ref{}
	if string(data) == "null" {
		return nil
	}

	switch data[0] {
	case '"':
		return json.Unmarshal(data, &r.raw)
	case '[':
		return json.Unmarshal(data, &r.list)
	case '{':
		r.obj = &refObject{}
		return json.Unmarshal(data, r.obj)
	default:
		// Numeric or boolean IDs are not used by this system; treat as missing.
		return nil
	}
}

// MarshalJSON emits the canonical identifier as a JSON string, or null when
// the reference is missing.
func (r Ref) MarshalJSON() ([]byte, error) {
	id := r.Normalize()
	if id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(id)
}

// FirstNonEmpty returns the first reference in the chain that resolves to a
// non-empty identifier. It implements the resolution priority used when
// admitting bookings (request value, then principal, then previous record).
func FirstNonEmpty(refs ...Ref) string {
	for _, r := range refs {
		if id := r.Normalize(); id != "" {
			return id
		}
	}
	return ""
}
