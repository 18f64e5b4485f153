package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/majorfi/datetool/pkg/utils"
)

/**************************************************************************************************
** Walk visits every regular file below dir. For each directory the files are visited first,
** in name order, each with the sidecar map of its base name; the subdirectories follow, depth
** first. Symlinks and other special entries are ignored.
**
** @param dir - Directory to walk
** @param skip - Reports directories that must not be entered (e.g. the output root)
** @param visit - Called for every file; a non-nil error aborts the walk
** @return error - Directory read error or the first visit error
**************************************************************************************************/
func Walk(dir string, skip func(string) bool, visit func(utils.TFileEntry) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	groups := make(map[string]utils.TSidecars)
	var files []utils.TFileEntry
	var dirs []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			dirs = append(dirs, path)
		case entry.Type().IsRegular():
			base, ext := splitName(entry.Name())
			group, ok := groups[base]
			if !ok {
				group = utils.TSidecars{}
				groups[base] = group
			}
			group[strings.ToLower(ext)] = path
			files = append(files, utils.TFileEntry{Path: path, Ext: ext, Sidecars: group})
		}
	}

	for _, file := range files {
		if err := visit(file); err != nil {
			return err
		}
	}
	for _, sub := range dirs {
		if skip != nil && skip(sub) {
			continue
		}
		if err := Walk(sub, skip, visit); err != nil {
			return err
		}
	}
	return nil
}

// splitName cuts a file name into its base name and extension.
func splitName(name string) (string, string) {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

/**************************************************************************************************
** Sidecars returns the sidecar group of a single file: every regular file of its directory
** sharing its base name, keyed by lowercased extension. Walk builds the same groups for whole
** directories.
**
** @param path - File whose group is wanted
** @return utils.TSidecars - The group, the file itself included
** @return error - Directory read error
**************************************************************************************************/
func Sidecars(path string) (utils.TSidecars, error) {
	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	want, _ := splitName(filepath.Base(path))
	group := utils.TSidecars{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if base, ext := splitName(entry.Name()); base == want {
			group[strings.ToLower(ext)] = filepath.Join(dir, entry.Name())
		}
	}
	return group, nil
}
