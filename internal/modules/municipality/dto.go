package municipality

import "strings"

// Municipality pairs the canonical code with the display name as returned by
// the external source. Codes are the uppercased names. Held only in the
// cache, never persisted.
type Municipality struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func NewMunicipality(name string) Municipality {
	return Municipality{Code: strings.ToUpper(name), Name: name}
}
