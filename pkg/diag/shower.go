package diag

// Shower wraps the Show function.
type Shower interface {
	// Show takes an indentation string and shows the receiver with all lines
	// after the first prefixed with the indentation.
	Show(indent string) string
}
