// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible services such as Ceph or
// Garage, without pulling in the AWS SDK.
//
// # Basic Usage
//
//	store, err := minio.Connect(ctx, minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	    Bucket:    "kmeans3d",
//	    Prefix:    "runs/",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Connect creates the bucket when it does not exist yet. Use NewStore to
// wrap an existing *minio.Client.
package minio
