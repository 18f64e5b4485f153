package metadata

import (
	"fmt"

	"github.com/barasher/go-exiftool"
	"github.com/sirupsen/logrus"
)

/**************************************************************************************************
** Exiftool is the read/write backend. It keeps one exiftool process running in stay-open mode
** for the whole run, so Close has to be called to terminate it.
**************************************************************************************************/
type Exiftool struct {
	et     *exiftool.Exiftool
	logger *logrus.Logger
}

/**************************************************************************************************
** NewExiftool starts the exiftool process.
**
** @param binaryPath - Path of the exiftool binary; empty looks it up on $PATH
** @param logger - Logger instance for output
** @return *Exiftool - Running backend
** @return error - The process could not be started
**************************************************************************************************/
func NewExiftool(binaryPath string, logger *logrus.Logger) (*Exiftool, error) {
	var opts []func(*exiftool.Exiftool) error
	if binaryPath != "" {
		opts = append(opts, exiftool.SetExiftoolBinaryPath(binaryPath))
	}

	et, err := exiftool.NewExiftool(opts...)
	if err != nil {
		return nil, fmt.Errorf("error starting exiftool: %w", err)
	}
	logger.Debugf("exiftool started")
	return &Exiftool{et: et, logger: logger}, nil
}

/**************************************************************************************************
** Read extracts every tag exiftool reports for the file, converted to text. A file exiftool
** cannot handle yields empty tags.
**
** @param path - File to read
** @return Tags - Tags of the file
** @return error - Always nil; per-file failures are logged at debug level
**************************************************************************************************/
func (e *Exiftool) Read(path string) (Tags, error) {
	tags := Tags{}
	results := e.et.ExtractMetadata(path)
	if len(results) == 0 {
		return tags, nil
	}

	fm := results[0]
	if fm.Err != nil {
		e.logger.Debugf("exiftool could not read %s: %v", path, fm.Err)
		return tags, nil
	}
	for key := range fm.Fields {
		if value, err := fm.GetString(key); err == nil {
			tags[key] = value
		}
	}
	return tags, nil
}

/**************************************************************************************************
** Write sets the given tags on the file in place, without keeping an _original backup.
**
** @param path - File to modify
** @param tags - Tags to set
** @return error - The error exiftool reported for the file
**************************************************************************************************/
func (e *Exiftool) Write(path string, tags Tags) error {
	fm := exiftool.EmptyFileMetadata()
	fm.File = path
	for key, value := range tags {
		fm.SetString(key, value)
	}

	batch := []exiftool.FileMetadata{fm}
	e.et.WriteMetadata(batch)
	if batch[0].Err != nil {
		return fmt.Errorf("error writing metadata to %s: %w", path, batch[0].Err)
	}
	return nil
}

// Close stops the exiftool process.
func (e *Exiftool) Close() error {
	if err := e.et.Close(); err != nil {
		return fmt.Errorf("error closing exiftool: %w", err)
	}
	e.logger.Debugf("exiftool stopped")
	return nil
}
