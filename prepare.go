package md2docx

import (
	"fmt"
	"os"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// PrepareOutputDir makes dir an empty directory (clean) or just ensures it
// exists. Cleaning a directory that is or contains sourceDir is refused
// with ErrUnsafeOutputDir.
func PrepareOutputDir(dir, sourceDir string, clean bool) error {
	if dir == "" {
		return ErrEmptyOutputDir
	}

	if clean {
		if sourceDir != "" && fileutil.IsWithin(sourceDir, dir) {
			return fmt.Errorf("%w: %s contains %s", ErrUnsafeOutputDir, dir, sourceDir)
		}
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("%w: %v", ErrPrepareOutput, err)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 -- output is meant to be shared
		return fmt.Errorf("%w: %v", ErrPrepareOutput, err)
	}
	return nil
}
