package model

import (
	"math"
	"strings"
)

type Sector string

const (
	SectorPublic  Sector = "Público"
	SectorPrivate Sector = "Privado"
)

// ParseSector maps the spellings models and data files use onto the two
// canonical sectors. Unknown values are kept as trimmed text.
func ParseSector(raw string) Sector {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "publico", "público", "oficial", "public", "publica", "pública":
		return SectorPublic
	case "privado", "privada", "no oficial", "private":
		return SectorPrivate
	}
	return Sector(s)
}

type Source string

const (
	SourceAI    Source = "ai"
	SourceLocal Source = "local"
)

// Candidate is a normalized institution record produced by search or validation.
type Candidate struct {
	FullName     string  `json:"full_name"`
	Municipality string  `json:"municipality"`
	Department   string  `json:"department"`
	Sector       Sector  `json:"sector"`
	Level        string  `json:"level"`
	Confidence   float64 `json:"confidence"`
	DaneCode     string  `json:"dane_code"`
	Source       Source  `json:"source"`
}

// ClampConfidence keeps a self-reported score inside [0,1].
func ClampConfidence(c float64) float64 {
	switch {
	case math.IsNaN(c), c < 0:
		return 0
	case c > 1:
		return 1
	}
	return c
}
