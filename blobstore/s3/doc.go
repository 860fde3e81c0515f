// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.NewStoreFromConfig(ctx, "my-bucket", "volumes/terrain/")
//	if err != nil {
//	    return err
//	}
//	vol, err := voxgo.NewPagedVolume[uint8](voxgo.WithPager(pager.NewBlobPager(store)))
//
// Uploads go through the feature/s3/manager uploader, so large blobs are
// split into multipart uploads automatically. Small blobs carry a CRC32C
// checksum that S3 verifies on write.
package s3
