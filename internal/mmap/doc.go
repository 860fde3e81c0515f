// Package mmap provides read-only memory-mapped file access.
//
// blobstore.LocalStore maps chunk files instead of reading them so that a
// fault-in decompresses straight out of the page cache.
//
//	m, err := mmap.Open("0_0_0_31_31_31")
//	if err != nil { ... }
//	defer m.Close()
//	data := m.Bytes() // valid until Close
package mmap
