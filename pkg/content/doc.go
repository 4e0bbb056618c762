/*
Package content extracts structured context data for template rendering.

ParseResume understands the Markdown resume layout: an H1 name, followed by
H2 sections for personal info, summary, skills, certifications, education,
acknowledgments, recent experience and keywords. Extraction is permissive,
matching the engine's missing-data policy: a section that is absent or
malformed yields an absent field, not an error.

LoadContext accepts an already-extracted context document in JSON or YAML
form, for callers that bypass Markdown entirely.
*/
package content
