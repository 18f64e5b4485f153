/**************************************************************************************************
** Package metadata reads and writes the embedded date tags of media files. The rest of the
** program only sees the Oracle interface; the backends wrap exiftool (read/write), a pure-Go
** EXIF decoder (read-only) or nothing at all.
**************************************************************************************************/
package metadata

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/majorfi/datetool/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Tags maps a tag name (e.g. "DateTimeOriginal") to its textual value.
type Tags map[string]string

/**************************************************************************************************
** Oracle is the metadata collaborator. Read of a file the backend does not understand returns
** empty tags, not an error. Close must be called once processing is over.
**************************************************************************************************/
type Oracle interface {
	Read(path string) (Tags, error)
	Write(path string, tags Tags) error
	Close() error
}

// ErrReadOnly is returned by Write on backends that cannot modify files.
var ErrReadOnly = errors.New("metadata backend is read-only")

/**************************************************************************************************
** Open starts the requested backend.
**
** @param backend - One of exiftool, goexif or none
** @param exiftoolPath - Path of the exiftool binary; empty looks it up on $PATH
** @param logger - Logger instance for output
** @return Oracle - The opened backend, to be closed by the caller
** @return error - Unknown backend, or the exiftool process could not be started
**************************************************************************************************/
func Open(backend, exiftoolPath string, logger *logrus.Logger) (Oracle, error) {
	switch strings.ToLower(backend) {
	case utils.BackendExiftool:
		et, err := NewExiftool(exiftoolPath, logger)
		if err != nil {
			return nil, err
		}
		return et, nil
	case utils.BackendGoexif:
		return NewGoexif(logger), nil
	case utils.BackendNone, "":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown metadata backend %q (expected %s, %s or %s)",
			backend, utils.BackendExiftool, utils.BackendGoexif, utils.BackendNone)
	}
}

// Layouts accepted for a date tag. Fractional seconds are accepted after the seconds by
// time.Parse even when the layout does not mention them.
var exifLayouts = []string{
	utils.ExifFormat + "Z07:00",
	utils.ExifFormat,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

/**************************************************************************************************
** ParseExifTime parses an EXIF style date ("2012:08:04 13:14:15", optionally with sub-seconds
** and a zone offset). Values without an offset are read in loc. The result is truncated to
** milliseconds.
**
** @param value - Tag value
** @param loc - Location of zone-less values
** @return time.Time - Parsed timestamp
** @return bool - False when the value is empty or not a date ("0000:00:00 00:00:00")
**************************************************************************************************/
func ParseExifTime(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range exifLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.Truncate(time.Millisecond), true
		}
	}
	return time.Time{}, false
}

/**************************************************************************************************
** CaptureTime returns the first date tag that parses, consulting DateTimeOriginal, then
** ModifyDate, then CreateDate.
**
** @param tags - Tags read from the file
** @param loc - Location of zone-less values
** @return time.Time - Capture timestamp
** @return bool - False when no tag holds a usable date
**************************************************************************************************/
func CaptureTime(tags Tags, loc *time.Location) (time.Time, bool) {
	for _, name := range utils.CaptureDateTags {
		if t, ok := ParseExifTime(tags[name], loc); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

/**************************************************************************************************
** DateTags builds the tags written back to a copy when the metadata target is enabled.
**
** @param t - The chosen date
** @return Tags - DateTimeOriginal and CreateDate set to t, with milliseconds and offset
**************************************************************************************************/
func DateTags(t time.Time) Tags {
	value := t.Format(utils.ExifWriteFormat)
	return Tags{
		utils.TagDateTimeOriginal: value,
		utils.TagCreateDate:       value,
	}
}
