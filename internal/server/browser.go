package server

import (
	"context"

	"github.com/jonathan/ats-tailor/internal/attach"
	"github.com/jonathan/ats-tailor/internal/config"
	"github.com/jonathan/ats-tailor/internal/types"
)

// browserAttach returns the default AttachFunc, driving a headless browser
// against the page until attachment settles.
func (s *Server) browserAttach(cfg *config.Config) AttachFunc {
	return func(ctx context.Context, url string, docs *types.GeneratedDocuments) error {
		return attach.DriveURL(ctx, url, docs, attach.DriveOptions{
			Headless:     cfg.Headless,
			FastInterval: cfg.FastInterval,
			SlowInterval: cfg.SlowInterval,
		})
	}
}
