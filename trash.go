// FILE: lixenwraith/unilog/trash.go
package unilog

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Upper bound of collision suffixes tried for one trashed name
const maxTrashCollisions = 1000

// trashDir returns the freedesktop.org home trash directory
func trashDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "Trash"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "Trash"), nil
}

// moveToTrash moves path into the home trash with a .trashinfo record so
// desktop file managers can restore it
func moveToTrash(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir, err := trashDir()
	if err != nil {
		return err
	}
	filesDir := filepath.Join(dir, "files")
	infoDir := filepath.Join(dir, "info")
	if err := os.MkdirAll(filesDir, 0700); err != nil {
		return err
	}
	if err := os.MkdirAll(infoDir, 0700); err != nil {
		return err
	}

	base := filepath.Base(abs)
	name := base
	for i := 1; i <= maxTrashCollisions; i++ {
		infoPath := filepath.Join(infoDir, name+".trashinfo")
		// O_EXCL reserves the name against concurrent trashers
		f, err := os.OpenFile(infoPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if os.IsExist(err) {
			name = fmt.Sprintf("%s.%d", base, i)
			continue
		}
		if err != nil {
			return err
		}

		escaped := (&url.URL{Path: abs}).EscapedPath()
		_, werr := fmt.Fprintf(f, "[Trash Info]\nPath=%s\nDeletionDate=%s\n",
			escaped, time.Now().Format("2006-01-02T15:04:05"))
		cerr := f.Close()
		if werr != nil || cerr != nil {
			os.Remove(infoPath)
			return combineErrors(werr, cerr)
		}

		if err := os.Rename(abs, filepath.Join(filesDir, name)); err != nil {
			os.Remove(infoPath)
			return err
		}
		return nil
	}
	return fmtErrorf("no free trash name for '%s'", base)
}
