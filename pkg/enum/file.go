package enum

import (
	"os"

	"github.com/praetorian-inc/balance/pkg/types"
)

// ReadFile reads a single named file. Any failure is returned as a
// *types.InputError so callers can tell it apart from bracket errors.
func ReadFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &types.InputError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &types.InputError{Path: path, Err: errIsDirectory}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.InputError{Path: path, Err: err}
	}
	return content, nil
}
