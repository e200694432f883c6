// Package lenientjson extrae JSON de respuestas de modelos generativos que no garantizan esquema:
// texto alrededor, bloques ```json ... ``` o explicaciones antes y después del objeto.
package lenientjson

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	objectRe = regexp.MustCompile(`(?s)\{.*\}`)
	arrayRe  = regexp.MustCompile(`(?s)\[.*\]`)
)

// stripFences elimina delimitadores de bloque de código markdown.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```JSON")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// Object localiza el primer substring {...} y lo decodifica en dst.
// Devuelve false (y deja dst sin tocar) si no hay objeto o no es JSON válido.
func Object(raw string, dst any) bool {
	return decode(objectRe, raw, dst)
}

// Array localiza el primer substring [...] y lo decodifica en dst.
func Array(raw string, dst any) bool {
	return decode(arrayRe, raw, dst)
}

func decode(re *regexp.Regexp, raw string, dst any) bool {
	match := re.FindString(stripFences(raw))
	if match == "" {
		return false
	}
	if err := json.Unmarshal([]byte(match), dst); err != nil {
		return false
	}
	return true
}

// ObjectOrEmpty devuelve el objeto decodificado o un mapa vacío.
func ObjectOrEmpty(raw string) map[string]any {
	out := map[string]any{}
	if !Object(raw, &out) {
		return map[string]any{}
	}
	return out
}

// ArrayOrEmpty devuelve el arreglo decodificado o uno vacío.
func ArrayOrEmpty(raw string) []any {
	out := []any{}
	if !Array(raw, &out) {
		return []any{}
	}
	return out
}
