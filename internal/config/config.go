package config

const IsDev = false

const (
	// PointerFile redirects the state dir somewhere else, e.g. a shared
	// disk. Its content is a path, absolute or relative to the project root.
	PointerFile = ".cssfix-pointer"
)
