// Package hash provides the CRC32-Castagnoli checksums used to protect blob
// uploads.
//
// Go's crc32 package uses SSE4.2 or the ARM CRC extension when available.
//
//	sum := hash.CRC32C(data)
//	header := hash.CRC32CBase64(data) // x-amz-checksum-crc32c
package hash
