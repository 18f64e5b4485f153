package utils

import (
	"fmt"
	"strings"
)

/**************************************************************************************************
** TTimeSource names one of the candidate timestamps a file can be dated by. The configured
** priority list is an ordered slice of these.
**************************************************************************************************/
type TTimeSource string

const (
	SourceMetadata   TTimeSource = "metadata"   // Embedded capture date read through the metadata oracle
	SourceModifyTime TTimeSource = "modifyTime" // Filesystem modification time of the source file
	SourcePath       TTimeSource = "path"       // Date inferred from the path through the source template
)

/**************************************************************************************************
** TTimeTarget names a timestamp of the output file that gets overwritten with the chosen date.
**************************************************************************************************/
type TTimeTarget string

const (
	TargetMetadata   TTimeTarget = "metadata"   // DateTimeOriginal / CreateDate tags of the copy
	TargetModifyTime TTimeTarget = "modifyTime" // Filesystem mtime of the copy
)

// Names accepted on the command line, including the short forms of the original tool.
var timeSourceAliases = map[string]TTimeSource{
	"metadata":   SourceMetadata,
	"exif":       SourceMetadata,
	"modifytime": SourceModifyTime,
	"mtime":      SourceModifyTime,
	"path":       SourcePath,
}

var timeTargetAliases = map[string]TTimeTarget{
	"metadata":   TargetMetadata,
	"exif":       TargetMetadata,
	"modifytime": TargetModifyTime,
	"mtime":      TargetModifyTime,
}

/**************************************************************************************************
** ParseTimeSources converts configured names into an ordered, de-duplicated priority list.
**
** @param names - Source names as given by the user (case-insensitive, aliases allowed)
** @return []TTimeSource - Priority list in the given order
** @return error - Error naming the first unknown source
**************************************************************************************************/
func ParseTimeSources(names []string) ([]TTimeSource, error) {
	result := make([]TTimeSource, 0, len(names))
	seen := make(map[TTimeSource]bool)
	for _, name := range names {
		source, ok := timeSourceAliases[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown time source %q (expected metadata, modifyTime or path)", name)
		}
		if seen[source] {
			continue
		}
		seen[source] = true
		result = append(result, source)
	}
	return result, nil
}

/**************************************************************************************************
** ParseTimeTargets converts configured names into the set of output timestamps to overwrite.
**
** @param names - Target names as given by the user (case-insensitive, aliases allowed)
** @return map[TTimeTarget]bool - Set of targets
** @return error - Error naming the first unknown target
**************************************************************************************************/
func ParseTimeTargets(names []string) (map[TTimeTarget]bool, error) {
	result := make(map[TTimeTarget]bool, len(names))
	for _, name := range names {
		target, ok := timeTargetAliases[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown time target %q (expected metadata or modifyTime)", name)
		}
		result[target] = true
	}
	return result, nil
}

/**************************************************************************************************
** TSidecars maps a lowercased extension (with leading dot) to the full path of the file that
** shares a base name with the media file, within one directory.
**************************************************************************************************/
type TSidecars map[string]string

/**************************************************************************************************
** TFileEntry is one file produced by the directory walk.
**************************************************************************************************/
type TFileEntry struct {
	Path     string    // Absolute path of the file
	Ext      string    // Extension as found on disk (case preserved)
	Sidecars TSidecars // Files sharing the base name in the same directory, the file itself included
}
