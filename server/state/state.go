package state

import (
	"github.com/indieinfra/reel/config"
	"github.com/indieinfra/reel/storage/media"
	"github.com/indieinfra/reel/storage/vlog"
)

// State carries the dependencies handlers need. It is built once at
// startup and passed down explicitly; nothing reaches for globals.
type State struct {
	Cfg   *config.Config
	Vlogs vlog.Store
	Media media.Store
}
