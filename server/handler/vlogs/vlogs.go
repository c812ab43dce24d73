// Package vlogs implements the vlog API: listing, gated multipart upload,
// and comment appends.
package vlogs

import (
	"github.com/go-playground/validator/v10"

	"github.com/indieinfra/reel/storage/vlog"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// vlogResponse is the success envelope for creation endpoints.
type vlogResponse struct {
	Message string     `json:"message"`
	Vlog    *vlog.Vlog `json:"vlog"`
}

type createRequest struct {
	Title     string `validate:"required"`
	MediaType string `validate:"required,oneof=image video"`
}

type commentRequest struct {
	Name string `json:"name" validate:"required"`
	Text string `json:"text" validate:"required"`
}
