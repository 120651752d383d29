package model

import "strings"

// Suggestion is one entry of the search reply. Models answer with Spanish keys
// most of the time; the English ones are accepted as well.
type Suggestion struct {
	NombreCompleto string   `json:"nombre_completo"`
	Nombre         string   `json:"nombre"`
	Name           string   `json:"name"`
	Municipio      string   `json:"municipio"`
	Municipality   string   `json:"municipality"`
	Departamento   string   `json:"departamento"`
	Department     string   `json:"department"`
	Sector         string   `json:"sector"`
	Nivel          string   `json:"nivel"`
	Level          string   `json:"level"`
	Confianza      *float64 `json:"confianza"`
	Confidence     *float64 `json:"confidence"`
}

// SearchReply is the object the search prompt asks for. Suggestions is a
// pointer so a reply without the key can be told apart from an empty list.
type SearchReply struct {
	Suggestions *[]Suggestion `json:"suggestions"`
}

// ValidationReply is the object the validation prompt asks for.
type ValidationReply struct {
	Existe        *bool    `json:"existe"`
	NombreOficial string   `json:"nombre_oficial"`
	Municipio     string   `json:"municipio"`
	Departamento  string   `json:"departamento"`
	Sector        string   `json:"sector"`
	Nivel         string   `json:"nivel"`
	CodigoDane    string   `json:"codigo_dane"`
	Confianza     *float64 `json:"confianza"`
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func firstScore(values ...*float64) float64 {
	for _, v := range values {
		if v != nil {
			return ClampConfidence(*v)
		}
	}
	return 0
}

// Candidate maps the suggestion to a fresh AI-sourced candidate.
func (s Suggestion) Candidate() Candidate {
	return Candidate{
		FullName:     firstNonBlank(s.NombreCompleto, s.Nombre, s.Name),
		Municipality: firstNonBlank(s.Municipio, s.Municipality),
		Department:   firstNonBlank(s.Departamento, s.Department),
		Sector:       ParseSector(s.Sector),
		Level:        firstNonBlank(s.Nivel, s.Level),
		Confidence:   firstScore(s.Confianza, s.Confidence),
		Source:       SourceAI,
	}
}

// Candidate maps the validation reply to a candidate. fallbackName is used
// when the model confirms existence without an official name.
func (v ValidationReply) Candidate(fallbackName string) Candidate {
	return Candidate{
		FullName:     firstNonBlank(v.NombreOficial, fallbackName),
		Municipality: strings.TrimSpace(v.Municipio),
		Department:   strings.TrimSpace(v.Departamento),
		Sector:       ParseSector(v.Sector),
		Level:        strings.TrimSpace(v.Nivel),
		Confidence:   firstScore(v.Confianza),
		DaneCode:     strings.TrimSpace(v.CodigoDane),
		Source:       SourceAI,
	}
}
