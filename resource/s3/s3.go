// Package s3 provides a resource backed by an S3 object.
package s3

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/hashicorp/golang-lru/simplelru"
)

// Interface is the subset of the S3 API the resource needs.
type Interface interface {
	GetObjectWithContext(ctx aws.Context, input *awss3.GetObjectInput, opts ...request.Option) (*awss3.GetObjectOutput, error)
	PutObjectWithContext(ctx aws.Context, input *awss3.PutObjectInput, opts ...request.Option) (*awss3.PutObjectOutput, error)
	HeadObjectWithContext(ctx aws.Context, input *awss3.HeadObjectInput, opts ...request.Option) (*awss3.HeadObjectOutput, error)
}

// Resource reads and writes a single S3 object. Writes of keys already seen
// are skipped through a small LRU, which suits content-addressed use where
// object contents never change under a given key.
type Resource struct {
	s3         Interface
	BucketName string
	Key        string
	known      *simplelru.LRU
}

// New returns a resource for the given object.
func New(client Interface, bucketName, key string) *Resource {
	known, err := simplelru.NewLRU(1000, nil)
	if err != nil {
		panic(err)
	}
	return &Resource{s3: client, BucketName: bucketName, Key: key, known: known}
}

func (r *Resource) Open(ctx context.Context) (io.ReadCloser, error) {
	input := awss3.GetObjectInput{
		Bucket: &r.BucketName,
		Key:    aws.String(r.Key),
	}
	output, err := r.s3.GetObjectWithContext(ctx, &input)
	if err != nil {
		return nil, err
	}
	return output.Body, nil
}

func (r *Resource) Create(ctx context.Context) (io.WriteCloser, error) {
	return &objectWriter{ctx: ctx, dst: r}, nil
}

func (r *Resource) Exists(ctx context.Context) bool {
	input := awss3.HeadObjectInput{
		Bucket: &r.BucketName,
		Key:    aws.String(r.Key),
	}
	_, err := r.s3.HeadObjectWithContext(ctx, &input)
	return err == nil
}

func (r *Resource) String() string {
	return "s3://" + r.BucketName + "/" + r.Key
}

// StoreOnce writes the bytes under the resource's key unless the key was
// already stored through this resource.
func (r *Resource) StoreOnce(ctx context.Context, b []byte) error {
	if _, present := r.known.Get(r.Key); present {
		return nil
	}
	if err := r.put(ctx, b); err != nil {
		return err
	}
	r.known.Add(r.Key, nil)
	return nil
}

func (r *Resource) put(ctx context.Context, b []byte) error {
	input := awss3.PutObjectInput{
		Bucket: &r.BucketName,
		Key:    aws.String(r.Key),
		Body:   bytes.NewReader(b),
	}
	_, err := r.s3.PutObjectWithContext(ctx, &input)
	return err
}

type objectWriter struct {
	buf bytes.Buffer
	ctx context.Context
	dst *Resource
}

func (w *objectWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }

func (w *objectWriter) Close() error {
	return w.dst.put(w.ctx, w.buf.Bytes())
}
