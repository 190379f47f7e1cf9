package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/stagekit-dev/stagekit/pkg/document"
	"github.com/stagekit-dev/stagekit/pkg/stagedef"
	"github.com/stagekit-dev/stagekit/pkg/state"
	"github.com/stagekit-dev/stagekit/pkg/view"
)

// loadDefinition reads a stage definition from a local file path or an
// s3://bucket/key URL.
func loadDefinition(ctx context.Context, ref string) (*stagedef.Definition, error) {
	var data []byte
	var err error
	if strings.HasPrefix(ref, "s3://") {
		data, err = loadFromS3(ctx, ref)
	} else {
		data, err = os.ReadFile(ref)
	}
	if err != nil {
		return nil, fmt.Errorf("load definition %q: %w", ref, err)
	}
	return stagedef.Parse(data)
}

func loadFromS3(ctx context.Context, ref string) ([]byte, error) {
	rest := strings.TrimPrefix(ref, "s3://")
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return nil, fmt.Errorf("malformed s3 url, want s3://bucket/key")
	}
	// Keys may carry their own extension; the store appends ".yaml", so
	// strip it from the name we hand over.
	name := strings.TrimSuffix(key, ".yaml")
	store := stagedef.NewS3Store(s3ClientFromEnv(), bucket, "")
	return store.Load(ctx, name)
}

// s3ClientFromEnv builds an S3 client from AWS_REGION and the standard
// credential environment variables.
func s3ClientFromEnv() *s3.Client {
	cfg := aws.Config{
		Region: os.Getenv("AWS_REGION"),
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
				SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			}, nil
		}),
	}
	return s3.NewFromConfig(cfg)
}

// buildEngine materializes a definition and tracks it.
func buildEngine(def *stagedef.Definition) (*state.Engine, *view.Node, error) {
	doc := document.NewMemoryDocument()
	stage, err := def.Build(doc)
	if err != nil {
		return nil, nil, err
	}
	return state.For(stage, doc), stage, nil
}
