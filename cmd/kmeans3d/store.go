package main

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v2"

	"github.com/hupe1980/kmeans3d/blobstore"
	"github.com/hupe1980/kmeans3d/blobstore/minio"
	"github.com/hupe1980/kmeans3d/blobstore/s3"
)

const (
	storeLocal = "local"
	storeS3    = "s3"
	storeMinIO = "minio"
)

func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: flagStore, Value: storeLocal, Usage: "blob store backend (local|s3|minio)", EnvVars: env(flagStore)},
		&cli.StringFlag{Name: flagRoot, Value: ".", Usage: "root `DIR` of the local store", EnvVars: env(flagRoot)},
		&cli.StringFlag{Name: flagBucket, Usage: "bucket for s3 and minio", EnvVars: env(flagBucket)},
		&cli.StringFlag{Name: flagPrefix, Usage: "key prefix inside the bucket", EnvVars: env(flagPrefix)},
		&cli.StringFlag{Name: flagEndpoint, Usage: "minio endpoint (host:port) or custom s3 endpoint URL", EnvVars: env(flagEndpoint)},
		&cli.StringFlag{Name: flagAccessKey, Usage: "minio access key", EnvVars: env(flagAccessKey)},
		&cli.StringFlag{Name: flagSecretKey, Usage: "minio secret key", EnvVars: env(flagSecretKey)},
		&cli.StringFlag{Name: flagRegion, Usage: "bucket region", EnvVars: env(flagRegion)},
		&cli.BoolFlag{Name: flagSecure, Value: true, Usage: "use TLS for minio", EnvVars: env(flagSecure)},
	}
}

func openStore(c *cli.Context) (blobstore.BlobStore, error) {
	switch backend := c.String(flagStore); backend {
	case storeLocal:
		return blobstore.NewLocalStore(c.String(flagRoot)), nil

	case storeS3:
		if c.String(flagBucket) == "" {
			return nil, fmt.Errorf("--%s is required for the s3 store", flagBucket)
		}

		var loadOpts []func(*config.LoadOptions) error
		if region := c.String(flagRegion); region != "" {
			loadOpts = append(loadOpts, config.WithRegion(region))
		}
		cfg, err := config.LoadDefaultConfig(c.Context, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}

		client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
			if endpoint := c.String(flagEndpoint); endpoint != "" {
				o.BaseEndpoint = &endpoint
				o.UsePathStyle = true
			}
		})
		return s3.NewStore(client, c.String(flagBucket), c.String(flagPrefix)), nil

	case storeMinIO:
		return minio.Connect(c.Context, minio.Config{
			Endpoint:  c.String(flagEndpoint),
			AccessKey: c.String(flagAccessKey),
			SecretKey: c.String(flagSecretKey),
			Region:    c.String(flagRegion),
			Secure:    c.Bool(flagSecure),
			Bucket:    c.String(flagBucket),
			Prefix:    c.String(flagPrefix),
		})

	default:
		return nil, fmt.Errorf("invalid --%s %q (want %s, %s or %s)", flagStore, backend, storeLocal, storeS3, storeMinIO)
	}
}
