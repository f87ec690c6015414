package config

import "github.com/m-mizutani/goerr/v2"

// Persona configures the voice of the coach. Loaded from a TOML file;
// every field has a usable default so the file is optional.
type Persona struct {
	Name         string   `toml:"name"`
	Role         string   `toml:"role"`
	Tone         string   `toml:"tone"`
	Language     string   `toml:"language"`
	Instructions []string `toml:"instructions"`
}

// DefaultPersona returns the built-in coach persona
func DefaultPersona() *Persona {
	return &Persona{
		Name: "Mnemosyne",
		Role: "an experienced life coach and advisor",
		Tone: "direct, wise, and encouraging",
	}
}

// Validate checks if the Persona is valid
func (p *Persona) Validate() error {
	if p.Name == "" {
		return goerr.New("persona name is required")
	}
	if p.Role == "" {
		return goerr.New("persona role is required")
	}
	return nil
}

// Normalize fills empty fields from the default persona
func (p *Persona) Normalize() {
	def := DefaultPersona()
	if p.Name == "" {
		p.Name = def.Name
	}
	if p.Role == "" {
		p.Role = def.Role
	}
	if p.Tone == "" {
		p.Tone = def.Tone
	}
}
