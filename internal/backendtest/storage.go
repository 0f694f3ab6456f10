package backendtest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// S3Config describes the bucket signed upload URLs are issued for.
type S3Config struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Region       string
}

func DefaultS3Config() S3Config {
	return S3Config{
		RootUser:     "admin",
		RootPassword: "secretpassword",
		Bucket:       "planplant",
		Region:       "us-east-1",
	}
}

const presignExpiry = 15 * time.Minute

func newPresignClient(ctx context.Context, c S3Config, endpoint string) (*s3.PresignClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.RootUser,
			c.RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})
	return s3.NewPresignClient(client), nil
}

// storageKey names a new object. Client file names carry colons, so they
// are kept as metadata only.
func storageKey() string {
	d := time.Now().UTC()
	return fmt.Sprintf("images/%d/%d/%d/%v.png", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (b *Backend) handleGetS3URL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.FileName == "" || req.FileType == "" {
		writeError(w, http.StatusOK, "Missing file name or type")
		return
	}

	b.mu.Lock()
	pc, base := b.presign, b.baseURL
	b.mu.Unlock()
	if pc == nil {
		writeError(w, http.StatusInternalServerError, "Storage not configured")
		return
	}

	key := storageKey()
	signed, err := pc.PresignPutObject(r.Context(), &s3.PutObjectInput{
		Bucket:      aws.String(b.s3.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(req.FileType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		b.logger.Error(r.Context(), "presign failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Unable to sign upload")
		return
	}

	b.mu.Lock()
	b.issued[key] = Object{FileName: req.FileName, FileType: req.FileType}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{
		"signedRequest": signed.URL,
		"url":           base + "/" + b.s3.Bucket + "/" + key,
	})
}

// handlePutObject accepts the body for a key this backend signed. The
// signature itself is not verified.
func (b *Backend) handlePutObject(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if r.URL.Query().Get("X-Amz-Signature") == "" {
		http.Error(w, "missing signature", http.StatusForbidden)
		return
	}

	b.mu.Lock()
	obj, ok := b.issued[key]
	b.mu.Unlock()
	if !ok {
		http.Error(w, "unknown key", http.StatusForbidden)
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	obj.Data = data

	b.mu.Lock()
	delete(b.issued, key)
	b.objects[key] = obj
	b.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (b *Backend) handleGetObject(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	b.mu.Lock()
	obj, ok := b.objects[key]
	b.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", obj.FileType)
	_, _ = w.Write(obj.Data)
}
