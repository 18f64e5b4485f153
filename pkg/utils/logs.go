// Package utils holds the shared types, defaults and small helpers of datetool, plus the
// colored/pretty console output used by the explain command. Per-file logging goes through
// logrus; this file only covers human-oriented inspection output.
package utils

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

var colorGreen = color.New(color.FgGreen).Add(color.Bold).SprintFunc()
var colorRed = color.New(color.FgRed).Add(color.Bold).SprintFunc()
var colorYellow = color.New(color.FgYellow).Add(color.Bold).SprintFunc()
var colorBlue = color.New(color.FgBlue).Add(color.Bold).SprintFunc()
var colorCyan = color.New(color.FgCyan).SprintFunc()
var colorMagenta = color.New(color.FgMagenta).Add(color.Bold).SprintFunc()

var prettyConfig = spew.ConfigState{
	Indent:                  "    ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Mapping writes a "source -> destination (date)" line with the source in cyan, the
// destination in green and the date in magenta.
func Mapping(w io.Writer, source, destination, date string) {
	fmt.Fprintf(w, "%s -> %s (%s)\n", colorCyan(source), colorGreen(destination), colorMagenta(date))
}

// Field writes an aligned "label: value" line, the label in blue.
func Field(w io.Writer, label string, value interface{}) {
	fmt.Fprintf(w, "    %s %v\n", colorBlue(fmt.Sprintf("%-12s", label+":")), value)
}

// Warning writes a yellow line, used when a path yields no date.
func Warning(w io.Writer, message string) {
	fmt.Fprintf(w, "%s\n", colorYellow(message))
}

// Failure writes a red line.
func Failure(w io.Writer, message string) {
	fmt.Fprintf(w, "%s\n", colorRed(message))
}

// Pretty dumps variables with their struct layout and values between two separators.
func Pretty(w io.Writer, variable ...interface{}) {
	fmt.Fprintf(w, "%s", colorYellow("----------------------------------\n"))
	for _, each := range variable {
		prettyConfig.Fdump(w, each)
	}
	fmt.Fprintf(w, "%s", colorYellow("----------------------------------\n"))
}
