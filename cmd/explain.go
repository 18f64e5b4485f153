/**************************************************************************************************
** Explain command implementation for the datetool CLI application. It prints, for each path,
** how the source template aligns with it, the time candidates and the destination.
**************************************************************************************************/

package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/djherbis/times"
	"github.com/majorfi/datetool/pkg/metadata"
	"github.com/majorfi/datetool/pkg/organizer"
	"github.com/majorfi/datetool/pkg/timesource"
	"github.com/majorfi/datetool/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func runExplain(cmd *cobra.Command, args []string) {
	logger, cfg := loadEnv()
	if err := explain(cmd.OutOrStdout(), cfg, args, logger); err != nil {
		logger.Fatalf("Error explaining paths: %v", err)
	}
}

func describe(c timesource.Candidate) string {
	if !c.Valid {
		return "-"
	}
	return c.Time.Format(utils.ISOFormat)
}

/**************************************************************************************************
** Explains every path. A path that exists is stat'ed and its metadata read; a path that does
** not exist is explained from the path alone. The output root is never touched.
**
** @param w - Output of the report
** @param cfg - Resolved configuration
** @param paths - Paths to explain
** @param logger - Logger instance; at debug level the full guess is dumped
** @return error - Backend start failure
**************************************************************************************************/
func explain(w io.Writer, cfg config, paths []string, logger *logrus.Logger) (err error) {
	oracle, err := metadata.Open(cfg.backend, cfg.exiftoolPath, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := oracle.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	o := organizer.New(cfg.options, oracle, logger)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			utils.Failure(w, fmt.Sprintf("Cannot resolve %s: %v", path, err))
			continue
		}

		var meta, modified timesource.Candidate
		metadataFile := "-"
		if stat, err := times.Stat(abs); err == nil {
			modified = timesource.NewCandidate(stat.ModTime(), true)
			entry := utils.TFileEntry{Path: abs, Ext: filepath.Ext(abs)}
			if entry.Sidecars, err = organizer.Sidecars(abs); err != nil {
				logger.Debugf("No sidecars for %s: %v", abs, err)
			}
			metadataFile, meta = o.CaptureTime(entry)
		}

		guess := o.Guess(abs, meta, modified)
		fmt.Fprintln(w, abs)
		for _, match := range guess.Extraction.Matches {
			date := "none"
			if match.Dated {
				date = match.Date.Fields.String()
			}
			utils.Field(w, fmt.Sprintf("segment %d", match.Index),
				fmt.Sprintf("%q ~ %q captures=%q date=%s", match.Segment, match.Rule, match.Groups[1:], date))
		}
		utils.Field(w, "tags from", metadataFile)
		for _, source := range []utils.TTimeSource{utils.SourceMetadata, utils.SourcePath, utils.SourceModifyTime} {
			utils.Field(w, string(source), describe(guess.Candidates[source]))
		}

		if logger.IsLevelEnabled(logrus.DebugLevel) {
			utils.Pretty(w, guess)
		}
		if !guess.Found {
			utils.Warning(w, "No time for "+abs)
			continue
		}
		utils.Mapping(w, abs, o.Destination(guess),
			fmt.Sprintf("%s from %s", guess.Date.Format(utils.ISOFormat), guess.Source))
	}
	return nil
}
