package repositories

// AudioStore abstracts out-of-line storage for synthesized audio blobs.
// Blobs are keyed by filename; the HTTP layer derives a retrievable
// locator from the filename.
type AudioStore interface {
	// Save writes the audio bytes under the given filename.
	Save(filename string, data []byte) error
	// Remove deletes the blob. Removing an absent blob is not an error.
	Remove(filename string) error
	// Exists reports whether a blob with the given filename is present.
	Exists(filename string) bool
}
