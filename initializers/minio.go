package initializers

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"gopkg.in/yaml.v3"
)

// MinioConfig holds the upload storage settings. Uploads are an optional
// subsystem: when MINIO_ENDPOINT is unset the routes are not registered.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	MaxSize   int64
	FileTypes []string
	Expiry    time.Duration
}

var MinioClient *minio.Client
var UploadsConf MinioConfig

// uploadsConfigYAML optionally overrides upload policy from a YAML file
// (UPLOADS_CONFIG_FILE, default config/uploads.yaml).
type uploadsConfigYAML struct {
	MaxFileSize        int64    `yaml:"max_file_size"`
	AllowedFileTypes   []string `yaml:"allowed_file_types"`
	PresignedURLExpiry int      `yaml:"presigned_url_expiry"` // seconds
}

func loadUploadsConfig() (*uploadsConfigYAML, error) {
	path := strings.TrimSpace(os.Getenv("UPLOADS_CONFIG_FILE"))
	if path == "" {
		path = "config/uploads.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg uploadsConfigYAML
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UploadsEnabled reports whether the upload subsystem is configured.
func UploadsEnabled() bool {
	return strings.TrimSpace(os.Getenv("MINIO_ENDPOINT")) != ""
}

func InitMinio() error {
	UploadsConf = MinioConfig{
		Endpoint:  os.Getenv("MINIO_ENDPOINT"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		Bucket:    envOr("MINIO_BUCKET", "blog-uploads"),
		UseSSL:    strings.EqualFold(os.Getenv("MINIO_USE_SSL"), "true"),
		MaxSize:   parseInt64(os.Getenv("MAX_FILE_SIZE"), 10485760),
		FileTypes: parseFileTypes(os.Getenv("ALLOWED_FILE_TYPES")),
		Expiry:    parseExpiry(os.Getenv("PRESIGNED_URL_EXPIRY")),
	}

	if yamlCfg, err := loadUploadsConfig(); err == nil && yamlCfg != nil {
		if yamlCfg.MaxFileSize > 0 {
			UploadsConf.MaxSize = yamlCfg.MaxFileSize
		}
		if len(yamlCfg.AllowedFileTypes) > 0 {
			UploadsConf.FileTypes = yamlCfg.AllowedFileTypes
		}
		if yamlCfg.PresignedURLExpiry > 0 {
			UploadsConf.Expiry = time.Duration(yamlCfg.PresignedURLExpiry) * time.Second
		}
	}

	client, err := minio.New(UploadsConf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(UploadsConf.AccessKey, UploadsConf.SecretKey, ""),
		Secure: UploadsConf.UseSSL,
	})
	if err != nil {
		return err
	}
	MinioClient = client

	exists, err := client.BucketExists(context.Background(), UploadsConf.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), UploadsConf.Bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
	}

	log.Println("Uploads bucket ready:", UploadsConf.Bucket)
	return nil
}

// CheckFileAllowed validates an upload against the size and MIME policy.
func CheckFileAllowed(size int64, mime string) error {
	if size > UploadsConf.MaxSize {
		return fmt.Errorf("file size exceeds the limit")
	}
	incoming := baseMIME(mime)
	for _, t := range UploadsConf.FileTypes {
		if baseMIME(t) == incoming {
			return nil
		}
	}
	return fmt.Errorf("file type is not allowed")
}

func baseMIME(mime string) string {
	return strings.TrimSpace(strings.Split(mime, ";")[0])
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func parseInt64(val string, def int64) int64 {
	if val == "" {
		return def
	}
	v, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func parseFileTypes(val string) []string {
	if val == "" {
		return []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	}
	return strings.Split(val, ",")
}

func parseExpiry(val string) time.Duration {
	if val == "" {
		return time.Hour
	}
	v, err := strconv.Atoi(val)
	if err != nil {
		return time.Hour
	}
	return time.Duration(v) * time.Second
}
