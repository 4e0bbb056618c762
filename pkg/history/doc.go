/*
Package history provides a SQLite-backed log of completed renders.

Each entry records which content and template produced which output file,
along with a hash of the content at render time and the output size. The
store lets a user answer "when did I last regenerate this document, and from
what" without keeping old outputs around.
*/
package history
