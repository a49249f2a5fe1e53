package domain

// Document is a parsed configuration file and its canonical text.
type Document struct {
	// Source is the path or name the document was read from.
	Source string `json:"source"`
	// Value is the generic mapping/sequence/scalar tree.
	Value any `json:"-"`
	// Canonical is the re-serialized form sent to the linter.
	Canonical string `json:"canonical"`
}
