package s3_test

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbracewell/mango/resource"
	"github.com/dbracewell/mango/resource/s3"
)

func testS3Client() (*awss3.S3, string, func()) {
	backend := s3mem.New()
	faker := gofakes3.New(backend)
	ts := httptest.NewServer(faker.Server())

	s3Config := &aws.Config{
		Credentials: credentials.NewStaticCredentials(
			"TEST-ACCESSKEYID",
			"TEST-SECRETACCESSKEY",
			"",
		),
		Endpoint:         aws.String(ts.URL),
		Region:           aws.String("ca-west-1"),
		DisableSSL:       aws.Bool(true),
		S3ForcePathStyle: aws.Bool(true),
	}
	newSession := session.New(s3Config)
	bucketName := randBucketName()
	client := awss3.New(newSession)
	client.CreateBucket(&awss3.CreateBucketInput{
		Bucket: &bucketName,
	})
	return client, bucketName, func() { ts.Close() }
}

func randBucketName() string {
	i, err := rand.Int(rand.Reader, big.NewInt(math.MaxUint32))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("bucket-%s", i)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	client, bucketName, closer := testS3Client()
	defer closer()
	ctx := context.Background()

	r := s3.New(client, bucketName, "some/key")
	assert.False(t, r.Exists(ctx))

	err := resource.WriteAll(ctx, r, []byte("here is some stuff"))
	require.NoError(t, err)
	assert.True(t, r.Exists(ctx))

	b, err := resource.ReadAll(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, []byte("here is some stuff"), b)

	assert.Equal(t, "s3://"+bucketName+"/some/key", r.String())
}

func TestStoreOnce(t *testing.T) {
	t.Parallel()
	client, bucketName, closer := testS3Client()
	defer closer()
	ctx := context.Background()

	r := s3.New(client, bucketName, "immutable")
	require.NoError(t, r.StoreOnce(ctx, []byte("v1")))
	// second store of the same key is a no-op
	require.NoError(t, r.StoreOnce(ctx, []byte("v2")))

	b, err := resource.ReadAll(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), b)
}

func TestOpenMissing(t *testing.T) {
	t.Parallel()
	client, bucketName, closer := testS3Client()
	defer closer()

	r := s3.New(client, bucketName, "nope")
	_, err := resource.ReadAll(context.Background(), r)
	require.Error(t, err)
}
