// Package digest binds document content to a claimed identity.
//
// The digest of a document is SHA-256 over
//
//	document || '|' || utf8(identitySeed)
//
// rendered as "0x" followed by 64 lowercase hex digits. The same content
// hashed for two different seeds yields unrelated digests, so a digest
// issued to one identity cannot be replayed for another.
//
// Scope:
//   - Pure in-memory binding (Bind)
//   - Streaming binding over readers and files with the same result (BindReader, BindFile)
//
// Non-goals:
//   - No persistence of records
//   - No verification of previously issued digests
package digest
