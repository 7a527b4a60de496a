// SPDX-License-Identifier: Apache-2.0

package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/finchest/finchest/internal/logger"
)

// downloadSink writes exports into a fixed directory, typically the user's
// home or downloads folder. It is the manual-export fallback used when no
// persistent handle is available.
type downloadSink struct {
	dir string
	log *logger.Logger
}

// NewDownloadSink constructs an [ExportSink] rooted at dir.
func NewDownloadSink(dir string, log *logger.Logger) ExportSink {
	return &downloadSink{dir: dir, log: log}
}

// Export implements [ExportSink]. Only the base of fileName is honoured so a
// caller cannot escape the sink directory.
func (s *downloadSink) Export(ctx context.Context, fileName string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create export dir: %w", mapFSError(err))
	}

	target := filepath.Join(s.dir, filepath.Base(fileName))
	if err := os.WriteFile(target, data, vaultFileMode); err != nil {
		return mapFSError(err)
	}

	s.log.Info().Str("path", target).Int("bytes", len(data)).Msg("snapshot exported")
	return nil
}
