package utils

import "strings"

/**************************************************************************************************
** ISOFormat is the layout used when logging a chosen date, millisecond precision with offset.
**************************************************************************************************/
const ISOFormat = "2006-01-02T15:04:05.000Z07:00"

/**************************************************************************************************
** ExifFormat is the layout exiftool expects (and returns) for date tags.
**************************************************************************************************/
const ExifFormat = "2006:01:02 15:04:05"

/**************************************************************************************************
** ExifWriteFormat is the layout of date tags written back to a copy: milliseconds and offset
** are kept so the chosen date reads back unchanged.
**************************************************************************************************/
const ExifWriteFormat = ExifFormat + ".000-07:00"

/**************************************************************************************************
** DefaultDateFormat is the layout of the --default-date option.
**************************************************************************************************/
const DefaultDateFormat = "2006-01-02"

/**************************************************************************************************
** DefaultSources is the default priority: embedded metadata first, then the path, then mtime.
**************************************************************************************************/
var DefaultSources = []string{string(SourceMetadata), string(SourcePath), string(SourceModifyTime)}
var DefaultSourcesString = strings.Join(DefaultSources, ",")

/**************************************************************************************************
** DefaultTargets only rewrites the filesystem modification time of the copies.
**************************************************************************************************/
var DefaultTargets = []string{string(TargetModifyTime)}
var DefaultTargetsString = strings.Join(DefaultTargets, ",")

/**************************************************************************************************
** DefaultSourceTemplate reads the date from the leading digits of the parent directory name
** (e.g. "20120804 Holiday") and captures the whole file name.
**************************************************************************************************/
const DefaultSourceTemplate = `<([0-9]+).*>$1=yyyyMMdd/[.*]`

/**************************************************************************************************
** DefaultTargetTemplate files everything under <year>/<yyyyMMdd>/<original file name>.
**************************************************************************************************/
const DefaultTargetTemplate = `yyyy/yyyyMMdd/[$1]`

var DefaultExtensions = []string{".jpg", ".png", ".mts", ".avi", ".mp4"}
var DefaultExtensionsString = strings.Join(DefaultExtensions, ",")

/**************************************************************************************************
** DefaultSidecarExtensions lists companion files that carry the metadata of a media file,
** e.g. the .THM thumbnail written next to camcorder videos.
**************************************************************************************************/
var DefaultSidecarExtensions = []string{".thm"}
var DefaultSidecarExtensionsString = strings.Join(DefaultSidecarExtensions, ",")

const DefaultOutputRoot = "out"
const DefaultDate = "2000-01-01"

/**************************************************************************************************
** Metadata backends
**************************************************************************************************/
const (
	BackendExiftool = "exiftool"
	BackendGoexif   = "goexif"
	BackendNone     = "none"
)

/**************************************************************************************************
** Metadata tags, in the order they are consulted when reading a capture date.
**************************************************************************************************/
const (
	TagDateTimeOriginal = "DateTimeOriginal"
	TagModifyDate       = "ModifyDate"
	TagCreateDate       = "CreateDate"
)

var CaptureDateTags = []string{TagDateTimeOriginal, TagModifyDate, TagCreateDate}
