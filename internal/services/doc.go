// Package services holds cross-cutting helpers shared by the engine
// components: sentinel error markers with a Wrap helper for consistent
// classification, and context carriers for run, stage, and track metadata
// that the logging package turns into structured fields.
package services
