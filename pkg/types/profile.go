package types

import "time"

// CurrentProfileVersion is the schema version stamped on profiles by the
// migration engine and on newly created profiles.
const CurrentProfileVersion = "2.0.0"

// Profile is a versioned, uniquely identified character record. The store
// manages ID, Version, CreatedAt, and UpdatedAt; everything else is domain
// payload it carries but does not interpret.
type Profile struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Profession string         `json:"profession,omitempty"`
	Level      int            `json:"level,omitempty"`
	Breed      string         `json:"breed,omitempty"`
	Faction    string         `json:"faction,omitempty"`
	Version    string         `json:"version,omitempty"`
	CreatedAt  time.Time      `json:"created_at,omitzero"`
	UpdatedAt  time.Time      `json:"updated_at,omitzero"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// Clone returns a deep copy of the profile. The payload map is copied one
// level deep; nested payload values are shared, which is safe because the
// store never mutates payload contents.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Payload != nil {
		cp.Payload = make(map[string]any, len(p.Payload))
		for k, v := range p.Payload {
			cp.Payload[k] = v
		}
	}
	return &cp
}

// Summary returns the lightweight projection of the profile exposed by
// Store.ListSummaries. The payload is never included.
func (p *Profile) Summary() ProfileSummary {
	return ProfileSummary{
		ID:         p.ID,
		Name:       p.Name,
		Profession: p.Profession,
		Level:      p.Level,
		Breed:      p.Breed,
		Faction:    p.Faction,
		Version:    p.Version,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ProfileSummary is the stable read-only projection of a profile returned
// by Store.ListSummaries. Callers outside the store must treat this as the
// summary contract; the full payload is only available through Load.
type ProfileSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Profession string    `json:"profession,omitempty"`
	Level      int       `json:"level,omitempty"`
	Breed      string    `json:"breed,omitempty"`
	Faction    string    `json:"faction,omitempty"`
	Version    string    `json:"version,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
	UpdatedAt  time.Time `json:"updated_at,omitzero"`
}
