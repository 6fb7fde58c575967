package models

// Plan holds the values resolved for a single invocation. Nothing here is
// persisted; only the image written to OutputPath outlives the process.
type Plan struct {
	// InputText is the trimmed, non-empty payload to encode.
	InputText string
	// OutputDirectory is absolute and exists once resolution succeeds.
	OutputDirectory string
	// OutputPath is absolute or explicitly user supplied and always ends in
	// .png, .jpg or .jpeg (any case).
	OutputPath string
}

// NameResult is the outcome of deriving a file name from input text.
type NameResult struct {
	// Name is the final file name including the .png extension.
	Name string
	// Host is the network location the name was built from, empty on fallback.
	Host string
	// Parsed reports whether a network location was found. When false the
	// name is the "qr" fallback.
	Parsed bool
	// Err holds the URL parse error, if parsing failed outright.
	Err error
}
