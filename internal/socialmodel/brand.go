package socialmodel

// Persona is one voice a brand can reply as; the first entry in
// BrandContext.Personas is the default.
type Persona struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Voice string `json:"voice"`
}

// Playbook carries the brand's voice/tone rules and a version used to
// invalidate cached BrandContext on change.
type Playbook struct {
	Voice   string   `json:"voice"`
	Tone    string   `json:"tone"`
	Rules   []string `json:"rules"`
	Version string   `json:"version"`
}

// Asset is a brand-owned creative asset (logo, template, canned response)
// available to the action executor.
type Asset struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

// BrandContext is a read-only, on-demand-loaded and cached description of a
// brand's operating context. The core never writes it back; it is owned by
// the brand service collaborator.
type BrandContext struct {
	BrandID  string    `json:"brand_id"`
	Playbook Playbook  `json:"playbook"`
	Personas []Persona `json:"personas"`
	Assets   []Asset   `json:"assets"`
}

// DefaultPersona returns the first persona, or the zero value if none are
// configured.
func (b BrandContext) DefaultPersona() Persona {
	if len(b.Personas) == 0 {
		return Persona{}
	}
	return b.Personas[0]
}
