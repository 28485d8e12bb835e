// Package cli implements the command-line interface for testudo-ics.
//
// The cli package provides the Cobra-based CLI with the export, extract and generate
// commands, text/JSON summaries, meeting sorting (by course/day/time) and exit codes.
// It wires config, logging and metrics around the scraper and calendar packages and
// hands finished files to storage.
package cli
