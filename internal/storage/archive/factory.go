package archive

import (
	"fmt"

	"github.com/newthinker/stagger/internal/config"
	"github.com/newthinker/stagger/internal/core"
)

// New builds the storage backend selected by cfg. It returns
// core.ErrExportDisabled when no backend is configured.
func New(cfg config.ExportConfig) (Storage, error) {
	switch cfg.Type {
	case "", config.ExportNone:
		return nil, core.ErrExportDisabled
	case config.ExportLocalFS:
		return NewLocalFS(cfg.Path)
	case config.ExportS3:
		return NewS3(S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
	}
	return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unknown export type %q", cfg.Type))
}
