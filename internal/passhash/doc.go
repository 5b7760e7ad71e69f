// Package passhash turns plaintext passwords into storable credential digests
// and back-checks them.
//
// A credential is a per-identity Salt plus a Digest. The Digest is produced by
// Argon2id with an explicit Cost and is serialized to a fixed-width byte layout
// that carries the scheme and the cost it was computed with:
//
//	offset  size  field
//	0       1     scheme (1 = argon2id, version 0x13)
//	1       1     memory, log2 of KiB
//	2       1     time (passes)
//	3       1     threads
//	4       32    key
//
// Because the cost is stored per record, raising the default cost never makes
// previously stored credentials unreadable.
package passhash
