/**************************************************************************************************
** Organize command implementation for the datetool CLI application.
**************************************************************************************************/

package main

import (
	"github.com/majorfi/datetool/pkg/metadata"
	"github.com/majorfi/datetool/pkg/organizer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func runOrganize(cmd *cobra.Command, args []string) {
	logger, cfg := loadEnv()
	if err := organize(cfg, args, logger); err != nil {
		logger.Fatalf("Error organizing files: %v", err)
	}
}

/**************************************************************************************************
** Opens the metadata backend, processes every input and closes the backend again, on success
** and on failure alike, before the error reaches the caller.
**
** @param cfg - Resolved configuration
** @param inputs - Files or directories given on the command line
** @param logger - Logger instance for output
** @return error - Backend start failure or the first filesystem error
**************************************************************************************************/
func organize(cfg config, inputs []string, logger *logrus.Logger) (err error) {
	oracle, err := metadata.Open(cfg.backend, cfg.exiftoolPath, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := oracle.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return organizer.New(cfg.options, oracle, logger).Run(inputs)
}
