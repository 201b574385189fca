package s3client

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"norya.com/report/logger"
)

type EnvironmentConfig struct {
	BucketName  string `envconfig:"NORYA_COMN_STORAGE_CONTAINER_NAME" required:"true"`
	NoryaEnv    string `envconfig:"NORYA_ENV" required:"true"`
	Region      string `envconfig:"NORYA_COMN_AWS_REGION_NAME" required:"true"`
	AwsEndpoint string `envconfig:"NORYA_COMN_AWS_ENDPOINT_URL" default:""`
	AccessKeyID string `envconfig:"NORYA_COMN_AWS_ACCESS_ID" default:""`
	AccessKey   string `envconfig:"NORYA_COMN_AWS_ACCESS_KEY" default:""`
}

var clientLogger = logger.NewLogger("S3 client")
var sdkLogger = logger.NewLogger("S3-SDK")

// Client wraps the bucket holding narratives and composed contexts. The
// session is acquired through the EC2 role first, env credentials second, and
// is re-acquired once when a transfer fails.
type Client struct {
	mu     sync.Mutex
	sess   *session.Session
	env    EnvironmentConfig
	closed bool
}

func New() (*Client, error) {
	var env EnvironmentConfig
	if err := envconfig.Process("", &env); err != nil {
		clientLogger.Err(err).Msg("Failed to get proper variables from environment")
		return nil, err
	}
	client := Client{env: env}
	if err := client.refreshSession(); err != nil {
		return nil, err
	}
	return &client, nil
}

func (client *Client) Upload(data string, key string) (*s3manager.UploadOutput, error) {
	params := &s3manager.UploadInput{
		Bucket: &client.env.BucketName,
		Key:    &key,
		Body:   strings.NewReader(data),
	}
	sess, err := client.session()
	if err != nil {
		return nil, err
	}
	output, err := client.upload(sess, params)
	if err == nil {
		return output, nil
	}
	sess, err = client.sessionAfterError(err)
	if err != nil {
		return nil, err
	}
	params.Body = strings.NewReader(data)
	return client.upload(sess, params)
}

func (client *Client) Download(key string) ([]byte, error) {
	params := &s3.GetObjectInput{
		Bucket: &client.env.BucketName,
		Key:    &key,
	}
	sess, err := client.session()
	if err != nil {
		return nil, err
	}
	data, err := client.download(sess, params)
	if err == nil {
		return data, nil
	}
	sess, err = client.sessionAfterError(err)
	if err != nil {
		return nil, err
	}
	return client.download(sess, params)
}

func (client *Client) Close() {
	client.mu.Lock()
	defer client.mu.Unlock()
	client.closed = true
	client.sess = nil
}

func (client *Client) upload(sess *session.Session, params *s3manager.UploadInput) (*s3manager.UploadOutput, error) {
	transferLogger := clientLogger.With().
		Str("key", *params.Key).
		Str("bucket", *params.Bucket).Logger()
	uploader := s3manager.NewUploader(sess.Copy(&aws.Config{Logger: getLogger(sdkLogger)}))
	transferLogger.Debug().Msg("Uploading the file")
	return uploader.Upload(params)
}

func (client *Client) download(sess *session.Session, params *s3.GetObjectInput) ([]byte, error) {
	transferLogger := clientLogger.With().
		Str("key", *params.Key).
		Str("bucket", *params.Bucket).Logger()
	downloader := s3manager.NewDownloader(sess.Copy(&aws.Config{Logger: getLogger(sdkLogger)}))
	buf := aws.NewWriteAtBuffer([]byte{})
	transferLogger.Debug().Msg("Downloading file")
	size, err := downloader.Download(buf, params)
	if err != nil {
		transferLogger.Error().Err(err).Msg("Failed to download file")
		return nil, err
	}
	transferLogger.Debug().Msgf("Downloaded %v bytes", size)
	return buf.Bytes(), nil
}

func (client *Client) session() (*session.Session, error) {
	client.mu.Lock()
	defer client.mu.Unlock()
	if client.closed {
		return nil, errors.New("client is closed")
	}
	if client.sess == nil {
		return nil, errors.New("could not get session")
	}
	return client.sess, nil
}

func (client *Client) sessionAfterError(cause error) (*session.Session, error) {
	clientLogger.Error().Err(cause).Msg("Caught error while using S3 session, trying to refresh it")
	client.mu.Lock()
	defer client.mu.Unlock()
	if client.closed {
		return nil, errors.New("client is closed")
	}
	if err := client.acquire(); err != nil {
		return nil, err
	}
	clientLogger.Info().Msg("Successfully refreshed session")
	return client.sess, nil
}

func (client *Client) refreshSession() error {
	client.mu.Lock()
	defer client.mu.Unlock()
	return client.acquire()
}

// acquire must be called with the mutex held.
func (client *Client) acquire() error {
	sess, err := session.NewSession(client.ec2Config())
	if err == nil && sessionValid(sess) {
		client.sess = sess
		clientLogger.Info().Msg("S3 session successfully initialized using EC2")
		return nil
	}
	clientLogger.Info().Msg("Could not initialize S3 session using EC2, trying env credentials")
	envCfg, err := client.envConfig()
	if err != nil {
		client.sess = nil
		return err
	}
	sess, err = session.NewSession(envCfg)
	if err != nil || !sessionValid(sess) {
		client.sess = nil
		clientLogger.Error().Err(err).Msg("Could not initialize S3 session")
		return errors.New("could not initialize S3 session")
	}
	client.sess = sess
	clientLogger.Info().Msg("S3 session successfully initialized using env credentials")
	return nil
}

func sessionValid(sess *session.Session) bool {
	_, err := sts.New(sess).GetCallerIdentity(&sts.GetCallerIdentityInput{})
	return err == nil
}

func (client *Client) ec2Config() *aws.Config {
	return &aws.Config{
		Region:     aws.String(client.env.Region),
		MaxRetries: aws.Int(4),
		LogLevel:   aws.LogLevel(aws.LogDebug),
	}
}

func (client *Client) envConfig() (*aws.Config, error) {
	creds := credentials.NewStaticCredentials(
		client.env.AccessKeyID,
		client.env.AccessKey,
		"")
	if _, err := creds.Get(); err != nil {
		clientLogger.Error().Err(err).Msg("Error with credentials from environment")
		return nil, err
	}
	cfg := aws.NewConfig().
		WithRegion(client.env.Region).
		WithMaxRetries(4).
		WithCredentials(creds).
		WithLogLevel(aws.LogDebug)

	if client.env.NoryaEnv == "dev" && len(client.env.AwsEndpoint) > 0 {
		cfg = cfg.WithEndpoint(client.env.AwsEndpoint).
			WithS3ForcePathStyle(true)
	}
	return cfg, nil
}

type s3Logger struct {
	sdk zerolog.Logger
}

func getLogger(sdk zerolog.Logger) *s3Logger {
	return &s3Logger{sdk}
}

func (l *s3Logger) Log(v ...interface{}) {
	l.sdk.Debug().Msg(fmt.Sprint(v...))
}
