// Package document persists JSON configuration documents.
//
// FileRepository loads a document as a generic object, accepting comments and
// trailing commas, and writes it back as indented JSON. Unknown keys survive a
// load/save cycle, which lets commands edit one section of a document without
// disturbing the rest.
package document
