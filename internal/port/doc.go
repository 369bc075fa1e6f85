// Package port suggests non-conflicting host port assignments for new
// instances. Suggestions are advisory: the registry re-validates uniqueness
// at commit time.
package port
