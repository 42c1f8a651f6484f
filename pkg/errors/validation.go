package errors

import "strings"

// ValidateAccession validates a GO term accession.
// Accessions have the fixed form "GO:" followed by seven decimal digits
// (e.g. "GO:0008150"). The universal root placeholder "all" is accepted
// because it appears in some snapshots before removal.
func ValidateAccession(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "term accession cannot be empty")
	}
	if id == "all" {
		return nil
	}
	rest, ok := strings.CutPrefix(id, "GO:")
	if !ok {
		return New(ErrCodeInvalidInput, "term accession %q must start with GO:", id)
	}
	if len(rest) != 7 {
		return New(ErrCodeInvalidInput, "term accession %q must have seven digits", id)
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return New(ErrCodeInvalidInput, "term accession %q contains non-digit characters", id)
		}
	}
	return nil
}
