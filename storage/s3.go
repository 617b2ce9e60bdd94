package storage

import (
	"io"
	"mime"
	"path"
	"strings"

	"github.com/MattiooFR/1pic1day/config"
	"github.com/MattiooFR/1pic1day/utils"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

type S3Storage struct {
	s3Client *s3.S3
}

func NewS3Storage() *S3Storage {
	awsConfig := aws.Config{
		Region:      aws.String(config.S3_REGION),
		Credentials: credentials.NewStaticCredentials(config.S3_KEY, config.S3_SECRET, ""),
	}
	if config.S3_ENDPOINT != "" {
		awsConfig.Endpoint = aws.String(config.S3_ENDPOINT)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	sess := session.Must(session.NewSession(&awsConfig))
	return &S3Storage{
		s3Client: s3.New(sess),
	}
}

// InitAlbum creates one bucket per album. The random suffix keeps two albums
// with colliding slugs (or a re-created slug) from fighting over one bucket.
func (s *S3Storage) InitAlbum(slug string) (string, error) {
	bucket := strings.ToLower(slug + "-" + utils.Rand8BytesToBase62())
	_, err := s.s3Client.CreateBucket(&s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return "", err
	}
	return bucket, nil
}

func (s *S3Storage) Save(bucket, slug, name string, reader io.Reader) (string, error) {
	mimeType := mime.TypeByExtension(path.Ext(name))
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	result, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(name),
		ACL:         aws.String("public-read"),
		ContentType: aws.String(mimeType),
		Body:        reader,
	})
	if err != nil {
		return "", err
	}
	return result.Location, nil
}

// URL is a no-op for S3 - the locator already is the public object URL
func (s *S3Storage) URL(slug, locator string) string {
	return locator
}

func (s *S3Storage) Delete(bucket, slug, locator string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path.Base(locator)),
	})
	return err
}

// DeleteAlbum empties every object version in the album bucket and then
// removes the bucket itself
func (s *S3Storage) DeleteAlbum(bucket, slug string) error {
	if bucket == "" {
		return nil
	}
	var pageErr error
	err := s.s3Client.ListObjectVersionsPages(&s3.ListObjectVersionsInput{
		Bucket: aws.String(bucket),
	}, func(page *s3.ListObjectVersionsOutput, lastPage bool) bool {
		objects := []*s3.ObjectIdentifier{}
		for _, version := range page.Versions {
			objects = append(objects, &s3.ObjectIdentifier{
				Key:       version.Key,
				VersionId: version.VersionId,
			})
		}
		for _, marker := range page.DeleteMarkers {
			objects = append(objects, &s3.ObjectIdentifier{
				Key:       marker.Key,
				VersionId: marker.VersionId,
			})
		}
		if len(objects) == 0 {
			return true
		}
		_, pageErr = s.s3Client.DeleteObjects(&s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &s3.Delete{Objects: objects},
		})
		return pageErr == nil
	})
	if err != nil {
		return err
	}
	if pageErr != nil {
		return pageErr
	}
	_, err = s.s3Client.DeleteBucket(&s3.DeleteBucketInput{
		Bucket: aws.String(bucket),
	})
	return err
}
