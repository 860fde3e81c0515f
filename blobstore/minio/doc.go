// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible stores such as Ceph, Garage and
// SeaweedFS, without pulling in the AWS SDK.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "my-bucket", "chunks/")
//	vol, err := voxgo.NewPagedVolume[uint8](voxgo.WithPager(pager.NewBlobPager(store)))
//
// Chunk payloads are small, so every blob is written with a single PutObject
// call of known size.
package minio
