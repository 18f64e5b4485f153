/**************************************************************************************************
** Package organizer copies media files into the layout described by the target template. It
** walks the inputs, dates every file through the time sources and writes the copies, their
** sidecars and their timestamps.
**************************************************************************************************/
package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/djherbis/times"
	"github.com/majorfi/datetool/pkg/metadata"
	"github.com/majorfi/datetool/pkg/pattern"
	"github.com/majorfi/datetool/pkg/timesource"
	"github.com/majorfi/datetool/pkg/utils"
	"github.com/sirupsen/logrus"
)

/**************************************************************************************************
** Options is the resolved configuration of a run.
**************************************************************************************************/
type Options struct {
	Sources           []utils.TTimeSource           // Time sources in priority order
	Targets           map[utils.TTimeTarget]bool    // Timestamps of the copies to overwrite
	SourceTemplate    *pattern.SourceTemplate       // Template matched against input paths
	TargetTemplate    *pattern.TargetTemplate       // Template rendering output paths
	Extensions        []string                      // Normalized extensions to process; empty = all
	SidecarExtensions []string                      // Normalized sidecar extensions, by preference
	OutputRoot        string                        // Root of the output tree
	DryRun            bool                          // Log only, write nothing
	DefaultDate       time.Time                     // Value of date fields a path does not set
}

/**************************************************************************************************
** Organizer processes files one at a time. It remembers the directories it created so each is
** made only once per run.
**************************************************************************************************/
type Organizer struct {
	opts   Options
	oracle metadata.Oracle
	logger *logrus.Logger
	mkdirs map[string]bool
}

/**************************************************************************************************
** New creates an organizer. The oracle stays owned by the caller.
**
** @param opts - Resolved options; a relative output root is made absolute
** @param oracle - Metadata backend
** @param logger - Logger instance for output
** @return *Organizer - Ready organizer
**************************************************************************************************/
func New(opts Options, oracle metadata.Oracle, logger *logrus.Logger) *Organizer {
	if root, err := filepath.Abs(opts.OutputRoot); err == nil {
		opts.OutputRoot = root
	}
	return &Organizer{
		opts:   opts,
		oracle: oracle,
		logger: logger,
		mkdirs: make(map[string]bool),
	}
}

/**************************************************************************************************
** Run processes every input in order. A directory is walked recursively and its files are
** logged relative to it; a single file is logged relative to its parent and has no sidecars.
** The output root is never walked.
**
** @param inputs - Files or directories
** @return error - First filesystem error; processing stops there
**************************************************************************************************/
func (o *Organizer) Run(inputs []string) error {
	for _, input := range inputs {
		path, err := filepath.Abs(input)
		if err != nil {
			return fmt.Errorf("error resolving %s: %w", input, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", input, err)
		}

		if !info.IsDir() {
			entry := utils.TFileEntry{Path: path, Ext: filepath.Ext(path)}
			if err := o.ProcessFile(filepath.Dir(path), entry); err != nil {
				return err
			}
			continue
		}

		skip := func(dir string) bool { return dir == o.opts.OutputRoot }
		if err := Walk(path, skip, func(entry utils.TFileEntry) error {
			return o.ProcessFile(path, entry)
		}); err != nil {
			return err
		}
	}
	return nil
}

/**************************************************************************************************
** Guess is the dating decision for one file.
**************************************************************************************************/
type Guess struct {
	Path       string
	Extraction pattern.Extraction
	Candidates timesource.Candidates
	Date       time.Time
	Source     utils.TTimeSource
	Found      bool
}

/**************************************************************************************************
** Guess aligns the path against the source template, derives the path candidate and selects
** the date. It does not touch the filesystem.
**
** @param path - Absolute path of the file
** @param meta - Capture time read from the metadata
** @param modifyTime - Modification time of the file
** @return Guess - Candidates and the selected date
**************************************************************************************************/
func (o *Organizer) Guess(path string, meta, modifyTime timesource.Candidate) Guess {
	e := pattern.Align(pattern.SplitPath(path), o.opts.SourceTemplate, o.opts.DefaultDate)
	candidates := timesource.Candidates{
		utils.SourceMetadata:   meta,
		utils.SourceModifyTime: modifyTime,
		utils.SourcePath:       timesource.PathCandidate(e, o.opts.DefaultDate, meta, modifyTime.Time),
	}
	date, source, found := timesource.Select(o.opts.Sources, candidates)
	return Guess{
		Path:       path,
		Extraction: e,
		Candidates: candidates,
		Date:       date,
		Source:     source,
		Found:      found,
	}
}

// Destination renders the output path of a guessed file.
func (o *Organizer) Destination(g Guess) string {
	return o.opts.TargetTemplate.Path(o.opts.OutputRoot, g.Date, g.Extraction)
}

// OutputRoot returns the absolute output root.
func (o *Organizer) OutputRoot() string {
	return o.opts.OutputRoot
}

/**************************************************************************************************
** MetadataFile returns the file the metadata of entry is read from: its first sidecar, in the
** configured preference order, or the file itself.
**************************************************************************************************/
func (o *Organizer) MetadataFile(entry utils.TFileEntry) string {
	for _, ext := range o.opts.SidecarExtensions {
		if sidecar, ok := entry.Sidecars[ext]; ok && sidecar != entry.Path {
			return sidecar
		}
	}
	return entry.Path
}

/**************************************************************************************************
** CaptureTime reads the capture date of entry through the oracle. A read failure is logged and
** counts as no date.
**
** @param entry - File to read
** @return string - The file the tags were read from
** @return timesource.Candidate - The capture date candidate
**************************************************************************************************/
func (o *Organizer) CaptureTime(entry utils.TFileEntry) (string, timesource.Candidate) {
	file := o.MetadataFile(entry)
	tags, err := o.oracle.Read(file)
	if err != nil {
		o.logger.Warnf("Could not read metadata of %s: %v", file, err)
		return file, timesource.Candidate{}
	}
	return file, timesource.NewCandidate(metadata.CaptureTime(tags, o.opts.DefaultDate.Location()))
}

/**************************************************************************************************
** ProcessFile dates one file and copies it to its destination. Files with an excluded
** extension, files without any valid date and files whose destination exists are skipped with
** a log line. In dry-run mode nothing is written but the log is the same.
**
** @param base - Directory the source path is logged relative to
** @param entry - File to process
** @return error - Filesystem error on stat, mkdir, copy or chtimes
**************************************************************************************************/
func (o *Organizer) ProcessFile(base string, entry utils.TFileEntry) error {
	if len(o.opts.Extensions) > 0 && !utils.Contains(o.opts.Extensions, strings.ToLower(entry.Ext)) {
		o.logger.Infof("Skip %s", entry.Path)
		return nil
	}

	stat, err := times.Stat(entry.Path)
	if err != nil {
		return fmt.Errorf("error reading times of %s: %w", entry.Path, err)
	}

	metadataFile, meta := o.CaptureTime(entry)
	guess := o.Guess(entry.Path, meta, timesource.NewCandidate(stat.ModTime(), true))
	if !guess.Found {
		o.logger.Infof("No time for %s", entry.Path)
		return nil
	}
	o.logger.Debugf("%s dated by %s", entry.Path, guess.Source)

	destination := o.Destination(guess)
	dir := filepath.Dir(destination)
	if !o.opts.DryRun && !o.mkdirs[dir] {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating directory %s: %w", dir, err)
		}
		o.mkdirs[dir] = true
	}

	iso := guess.Date.Format(utils.ISOFormat)
	o.logger.Infof("%s -> %s (%s)", relative(base, entry.Path), relative(o.opts.OutputRoot, destination), iso)
	if exists(destination) {
		o.logger.Infof("Exists %s", destination)
		return nil
	}
	if !o.opts.DryRun {
		if err := copyFile(entry.Path, destination, true); err != nil {
			return err
		}
	}

	copies := []string{destination}
	if metadataFile != entry.Path {
		sidecar := sidecarPath(destination, metadataFile)
		o.logger.Infof("%s -> %s (%s)", relative(base, metadataFile), relative(o.opts.OutputRoot, sidecar), iso)
		if !o.opts.DryRun {
			if err := copyFile(metadataFile, sidecar, false); err != nil {
				return err
			}
		}
		copies = append(copies, sidecar)
	}
	if o.opts.DryRun {
		return nil
	}

	if o.opts.Targets[utils.TargetMetadata] {
		tagged := copies[len(copies)-1]
		if err := o.oracle.Write(tagged, metadata.DateTags(guess.Date)); err != nil {
			o.logger.Debugf("Could not write metadata to %s: %v", tagged, err)
		}
	}

	mtime := stat.ModTime()
	if o.opts.Targets[utils.TargetModifyTime] {
		mtime = guess.Date
	}
	for _, path := range copies {
		if err := setTimes(path, stat.AccessTime(), mtime); err != nil {
			return err
		}
	}
	return nil
}
