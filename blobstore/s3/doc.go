// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "runs/")
//
//	rec := sink.NewRecorder(store, "demo")
//
// # Features
//
//   - Range reads for point sets stored as CSV
//   - Streaming uploads through the transfer manager
//   - CRC32C integrity checks on Put
//   - Automatic pagination for listing
package s3
