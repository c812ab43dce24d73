package util

import (
	"log"
	"mime/multipart"
	"net/http"
)

type MultipartFile struct {
	Field  string
	File   multipart.File
	Header *multipart.FileHeader
}

type ParsedMultipart struct {
	Values map[string]string
	Files  []MultipartFile
}

func (pm *ParsedMultipart) CloseFiles() {
	for _, mf := range pm.Files {
		if mf.File != nil {
			mf.File.Close()
		}
	}
}

func (pm *ParsedMultipart) FileByKey(key string) *MultipartFile {
	for i := range pm.Files {
		if pm.Files[i].Field == key {
			return &pm.Files[i]
		}
	}

	return nil
}

// ParseMultipart reads a multipart form with the request body capped at
// maxBody bytes. Exceeding the cap surfaces as *http.MaxBytesError from
// ParseMultipartForm.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxBody int64) (*ParsedMultipart, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, err
	}

	return &ParsedMultipart{
		Values: extractValues(r),
		Files:  extractFiles(r),
	}, nil
}

func extractValues(r *http.Request) map[string]string {
	values := make(map[string]string)

	if r.MultipartForm != nil {
		for key, arr := range r.MultipartForm.Value {
			if len(arr) > 0 {
				values[key] = arr[0]
			}
		}
	}

	return values
}

func extractFiles(r *http.Request) []MultipartFile {
	var filesOut []MultipartFile

	for key, fhs := range r.MultipartForm.File {
		for _, fh := range fhs {
			f, err := fh.Open()
			if err != nil {
				log.Println("skipped file, could not open:", fh.Filename, err)
				continue
			}

			filesOut = append(filesOut, MultipartFile{Field: key, File: f, Header: fh})
		}
	}

	return filesOut
}
