// Package merge implements JSON Merge Patch (RFC 7396) over decoded JSON documents.
//
// Documents are the generic values produced by encoding/json: map[string]any,
// []any and scalars. Objects merge key by key, an explicit nil deletes a key,
// and everything else (arrays included) replaces the target wholesale.
package merge
