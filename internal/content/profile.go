// Package content loads the CV profile rendered by the site from a YAML file.
package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the full CV content: identity, sections, and the certificate
// gallery shown in the lightbox.
type Profile struct {
	Name     string   `yaml:"name"`
	Title    string   `yaml:"title"`
	Location string   `yaml:"location"`
	Email    string   `yaml:"email"`
	Links    []Link   `yaml:"links"`
	About    []string `yaml:"about"` // paragraphs

	Experience   []Experience  `yaml:"experience"`
	Education    []Education   `yaml:"education"`
	Skills       []SkillGroup  `yaml:"skills"`
	Certificates []Certificate `yaml:"certificates"`
}

// Link is an external profile link (GitHub, LinkedIn, ...).
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Experience is one role in the work history section.
type Experience struct {
	Role       string   `yaml:"role"`
	Company    string   `yaml:"company"`
	Period     string   `yaml:"period"` // free-form, e.g. "2021 — present"
	Highlights []string `yaml:"highlights"`
}

// Education is one entry in the education section.
type Education struct {
	Degree      string `yaml:"degree"`
	Institution string `yaml:"institution"`
	Period      string `yaml:"period"`
}

// SkillGroup is a named cluster of skills.
type SkillGroup struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

// Certificate is one gallery item. Source is the image path served under
// /static; entries with an empty Source are kept in the data but the lightbox
// ignores them.
type Certificate struct {
	Source string `yaml:"source"`
	Alt    string `yaml:"alt"`
	Title  string `yaml:"title"`
}

// Load reads and parses a profile YAML file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes profile YAML and validates the minimum the pages need.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("parse profile: name is required")
	}
	return &p, nil
}
