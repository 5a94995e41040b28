// Package storage содержит объектное хранилище постеров.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Время жизни presigned-ссылки на постер - неделя (максимум для S3 API).
const posterURLTTL = 7 * 24 * time.Hour

// PosterStorage определяет интерфейс для хранения изображений постеров.
type PosterStorage interface {
	UploadPoster(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
}

// MinioClient реализует PosterStorage для MinIO.
type MinioClient struct {
	client     *minio.Client
	bucketName string
}

// MinioConfig содержит параметры для подключения к MinIO.
type MinioConfig struct {
	Endpoint        string // Адрес MinIO (например, "localhost:9000")
	AccessKeyID     string // Логин
	SecretAccessKey string // Пароль
	UseSSL          bool   // Использовать SSL (обычно false для локальной разработки)
	BucketName      string // Имя бакета для хранения постеров
	Region          string // Регион (не обязательно для MinIO)
}

// NewMinioClient создает новый клиент MinIO и гарантирует существование бакета.
func NewMinioClient(cfg MinioConfig) (*MinioClient, error) {
	log.Printf("Инициализация клиента MinIO для эндпоинта %s...", cfg.Endpoint)

	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации клиента MinIO: %w", err)
	}

	ctx := context.Background()
	exists, err := minioClient.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки существования бакета '%s': %w", cfg.BucketName, err)
	}
	if !exists {
		log.Printf("Бакет '%s' не найден, попытка создания...", cfg.BucketName)
		err = minioClient.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания бакета '%s': %w", cfg.BucketName, err)
		}
		log.Printf("Бакет '%s' успешно создан.", cfg.BucketName)
	}

	log.Printf("Клиент MinIO успешно инициализирован для бакета '%s'.", cfg.BucketName)
	return &MinioClient{
		client:     minioClient,
		bucketName: cfg.BucketName,
	}, nil
}

// UploadPoster загружает постер в MinIO и возвращает presigned-ссылку на него.
func (c *MinioClient) UploadPoster(
	ctx context.Context,
	objectKey string,
	reader io.Reader,
	size int64,
	contentType string,
) (string, error) {
	log.Printf("[Minio] Загрузка постера '%s' в бакет '%s'...", objectKey, c.bucketName)

	opts := minio.PutObjectOptions{ContentType: contentType}
	uploadInfo, err := c.client.PutObject(ctx, c.bucketName, objectKey, reader, size, opts)
	if err != nil {
		log.Printf("[Minio] Ошибка загрузки постера '%s': %v", objectKey, err)
		return "", fmt.Errorf("ошибка загрузки постера в MinIO: %w", err)
	}
	log.Printf("[Minio] Постер '%s' успешно загружен, размер: %d, ETag: %s",
		objectKey, uploadInfo.Size, uploadInfo.ETag)

	presigned, err := c.client.PresignedGetObject(ctx, c.bucketName, objectKey, posterURLTTL, url.Values{})
	if err != nil {
		log.Printf("[Minio] Ошибка генерации ссылки на постер '%s': %v", objectKey, err)
		return "", fmt.Errorf("ошибка генерации ссылки на постер: %w", err)
	}

	return presigned.String(), nil
}
