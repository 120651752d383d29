package config

// Placeholders substituted into prompt templates. Any other text, including
// a literal "%", is sent as written.
const (
	PlaceholderQuery = "{query}"
	PlaceholderName  = "{name}"
	PlaceholderHint  = "{municipality_hint}"
)

// DefaultSearchPrompt takes the partial institution name as {query}.
const DefaultSearchPrompt = `Eres un asistente experto en el sistema educativo de Colombia.
Un estudiante que se prepara para la prueba ICFES Saber 11 está escribiendo el nombre de su colegio.
Texto parcial escrito: "{query}"

Contexto útil:
- "IE" o "I.E." significa Institución Educativa; "IED" es Institución Educativa Distrital (Bogotá).
- "ENS" es Escuela Normal Superior; "INEM" es Instituto Nacional de Educación Media Diversificada.
- Colombia tiene 32 departamentos y Bogotá D.C. como distrito capital.
- El sector es "Público" (oficial) o "Privado" (no oficial).
- El nivel describe la oferta educativa, por ejemplo "Preescolar, Básica y Media".

Sugiere hasta 5 instituciones educativas reales de Colombia que coincidan con el texto.
Responde SOLO con un objeto JSON con esta forma exacta, sin texto adicional:
{"suggestions": [{"nombre_completo": "...", "municipio": "...", "departamento": "...", "sector": "Público", "nivel": "...", "confianza": 0.9}]}
"confianza" es un número entre 0 y 1. Si no encuentras coincidencias responde {"suggestions": []}.`

// DefaultValidatePrompt takes the institution name as {name} and a
// municipality hint sentence, possibly empty, as {municipality_hint}.
const DefaultValidatePrompt = `Eres un asistente experto en el sistema educativo de Colombia.
Verifica si existe la siguiente institución educativa colombiana: "{name}".{municipality_hint}

Responde SOLO con un objeto JSON con esta forma exacta, sin texto adicional:
{"existe": true, "nombre_oficial": "...", "municipio": "...", "departamento": "...", "sector": "Público", "nivel": "...", "codigo_dane": "...", "confianza": 0.9}
Si no tienes certeza de que exista, responde {"existe": false}.
Omite "codigo_dane" si no lo conoces. "confianza" es un número entre 0 y 1.`
