package metadata

import (
	"fmt"
	"os"

	"github.com/majorfi/datetool/pkg/utils"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/sirupsen/logrus"
)

// EXIF fields of goexif mapped to the tag names exiftool uses, with their sub-second field.
var goexifFields = []struct {
	tag    string
	field  exif.FieldName
	subsec exif.FieldName
}{
	{tag: utils.TagDateTimeOriginal, field: exif.DateTimeOriginal, subsec: exif.SubSecTimeOriginal},
	{tag: utils.TagModifyDate, field: exif.DateTime, subsec: exif.SubSecTime},
	{tag: utils.TagCreateDate, field: exif.DateTimeDigitized, subsec: exif.SubSecTimeDigitized},
}

/**************************************************************************************************
** Goexif is a read-only backend decoding EXIF in process. It understands JPEG and TIFF based
** files and needs no external binary.
**************************************************************************************************/
type Goexif struct {
	logger *logrus.Logger
}

func NewGoexif(logger *logrus.Logger) *Goexif {
	return &Goexif{logger: logger}
}

/**************************************************************************************************
** Read decodes the date tags of the file. A file without EXIF data yields empty tags.
**
** @param path - File to read
** @return Tags - Date tags found, sub-seconds appended when present
** @return error - The file could not be opened
**************************************************************************************************/
func (g *Goexif) Read(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	tags := Tags{}
	x, err := exif.Decode(f)
	if err != nil {
		g.logger.Debugf("no exif data in %s: %v", path, err)
		return tags, nil
	}

	for _, field := range goexifFields {
		tag, err := x.Get(field.field)
		if err != nil {
			continue
		}
		value, err := tag.StringVal()
		if err != nil {
			continue
		}
		if sub, err := x.Get(field.subsec); err == nil {
			if digits, err := sub.StringVal(); err == nil && digits != "" {
				value += "." + digits
			}
		}
		tags[field.tag] = value
	}
	return tags, nil
}

func (g *Goexif) Write(string, Tags) error {
	return ErrReadOnly
}

func (g *Goexif) Close() error {
	return nil
}
