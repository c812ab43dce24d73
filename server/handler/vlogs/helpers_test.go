package vlogs

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/indieinfra/reel/config"
	"github.com/indieinfra/reel/server/state"
	"github.com/indieinfra/reel/storage/media"
	"github.com/indieinfra/reel/storage/vlog"
)

const testPassword = "hunter2"

func newTestState(t *testing.T) (*state.State, string) {
	t.Helper()

	uploadsDir := t.TempDir()

	cfg := &config.Config{
		Server: config.Server{Port: 5000},
		Upload: config.Upload{Password: testPassword, MaxFileSize: 100 << 20},
		Store:  config.Store{Strategy: "memory"},
		Media: config.Media{
			Strategy: "filesystem",
			Filesystem: &config.FilesystemStrategy{
				Path:       uploadsDir,
				PublicPath: "/uploads/",
			},
		},
	}

	mediaStore, err := media.NewFilesystemStore(cfg.Media.Filesystem, cfg.Upload.MaxFileSize)
	if err != nil {
		t.Fatalf("NewFilesystemStore: %v", err)
	}

	return &state.State{
		Cfg:   cfg,
		Vlogs: vlog.NewMemoryStore(),
		Media: mediaStore,
	}, uploadsDir
}

type uploadParams struct {
	password  string
	title     string
	mediaType string
	fileName  string
	fileType  string
	fileData  []byte
}

func validUpload() uploadParams {
	return uploadParams{
		password:  testPassword,
		title:     "Morning Walk",
		mediaType: "image",
		fileName:  "walk.jpg",
		fileType:  "image/jpeg",
		fileData:  []byte("jpeg-bytes"),
	}
}

func buildUploadRequest(t *testing.T, p uploadParams) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"password":  p.password,
		"title":     p.title,
		"mediaType": p.mediaType,
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("write field %q: %v", key, err)
		}
	}

	if p.fileName != "" {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{`form-data; name="media"; filename="` + p.fileName + `"`}
		header["Content-Type"] = []string{p.fileType}

		part, err := mw.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(p.fileData); err != nil {
			t.Fatalf("write file data: %v", err)
		}
	}

	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	r := httptest.NewRequest("POST", "/api/vlogs", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}
