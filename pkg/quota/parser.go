// Package quota parses flat quota report files and aggregates them into
// admin, per-user and highlight views.
package quota

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/shanecorder/slurm-schmutz/pkg/models"
	"github.com/shanecorder/slurm-schmutz/pkg/units"
)

// The quota file is whitespace-delimited with this exact header. The
// Reduction and Efficiency columns hold ratio literals of the form
// "N.N : N.N", which tokenize to three fields each.
var headerColumns = []string{
	"Type", "AppliesTo", "Path", "Snap", "Hard", "Soft", "Adv", "Used", "Reduction", "Efficiency",
}

// Type..Used are positional and required; the trailing ratio columns
// may be missing entirely on legacy rows.
const minRowTokens = 8

// ParseResult carries the entries that parsed cleanly plus one warning
// per skipped row. A bad row never fails the batch.
type ParseResult struct {
	Entries  []models.QuotaEntry
	Warnings []string
}

// ParseFile reads and parses a quota file. A missing or unreadable file
// is an invocation-level error; malformed rows are collected as
// warnings instead.
func ParseFile(path string) (ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ParseResult{}, errors.Wrapf(err, "opening quota file %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse consumes quota report text. The first non-empty line must be
// the exact column header.
func Parse(r io.Reader) (ParseResult, error) {
	scanner := bufio.NewScanner(r)

	headerSeen := false
	lineNo := 0
	var result ParseResult
	var rowErrs *multierror.Error

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !headerSeen {
			if err := checkHeader(line); err != nil {
				return ParseResult{}, err
			}
			headerSeen = true
			continue
		}

		entry, err := parseRow(line)
		if err != nil {
			rowErrs = multierror.Append(rowErrs, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		result.Entries = append(result.Entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return ParseResult{}, errors.Wrap(err, "reading quota input")
	}
	if !headerSeen {
		return ParseResult{}, models.NewBaseError("quota input has no header row").
			WithCode(models.MissingField).
			WithHint("expected columns: " + strings.Join(headerColumns, " "))
	}

	if rowErrs != nil {
		for _, err := range rowErrs.Errors {
			log.Warn().Err(err).Msg("skipping malformed quota row")
			result.Warnings = append(result.Warnings, err.Error())
		}
	}
	return result, nil
}

func checkHeader(line string) error {
	fields := strings.Fields(line)
	if len(fields) != len(headerColumns) {
		return headerError(line)
	}
	for i, want := range headerColumns {
		if fields[i] != want {
			return headerError(line)
		}
	}
	return nil
}

func headerError(line string) error {
	return models.NewBaseError("unexpected quota header %q", line).
		WithCode(models.MissingField).
		WithHint("expected columns: " + strings.Join(headerColumns, " "))
}

func parseRow(line string) (models.QuotaEntry, error) {
	tokens := strings.Fields(line)
	if len(tokens) < minRowTokens {
		return models.QuotaEntry{}, models.NewBaseError(
			"quota row has %d columns, want at least %d", len(tokens), minRowTokens).
			WithCode(models.MalformedRow)
	}

	entry := models.QuotaEntry{
		Type:      models.QuotaTypeFromString(tokens[0]),
		AppliesTo: tokens[1],
		Path:      tokens[2],
		Snapshot:  tokens[3],
	}

	// A hard limit of "-" or 0 means unlimited.
	hard, err := units.ParseOptionalSize(tokens[4])
	if err != nil {
		return models.QuotaEntry{}, malformedColumn("Hard", err)
	}
	if hard != nil {
		entry.HardLimit = *hard
	}

	if entry.SoftLimit, err = units.ParseOptionalSize(tokens[5]); err != nil {
		return models.QuotaEntry{}, malformedColumn("Soft", err)
	}
	if entry.AdvisoryLimit, err = units.ParseOptionalSize(tokens[6]); err != nil {
		return models.QuotaEntry{}, malformedColumn("Adv", err)
	}

	used, err := units.ParseOptionalSize(tokens[7])
	if err != nil {
		return models.QuotaEntry{}, malformedColumn("Used", err)
	}
	if used != nil {
		entry.Used = *used
	}

	rest := tokens[minRowTokens:]
	if entry.ReductionRatio, rest, err = parseRatio(rest); err != nil {
		return models.QuotaEntry{}, malformedColumn("Reduction", err)
	}
	if entry.EfficiencyRatio, rest, err = parseRatio(rest); err != nil {
		return models.QuotaEntry{}, malformedColumn("Efficiency", err)
	}
	if len(rest) > 0 {
		return models.QuotaEntry{}, models.NewBaseError(
			"quota row has %d trailing columns", len(rest)).WithCode(models.MalformedRow)
	}

	return entry, nil
}

func malformedColumn(column string, err error) error {
	return models.NewBaseError("column %s", column).
		WithCode(models.MalformedRow).WithCause(err)
}

// parseRatio consumes a ratio literal from the token stream: either the
// single token "-" (absent) or three tokens "N.N : N.N". Missing
// trailing columns are treated as absent.
func parseRatio(tokens []string) (*float64, []string, error) {
	if len(tokens) == 0 {
		return nil, tokens, nil
	}
	if tokens[0] == units.Absent {
		return nil, tokens[1:], nil
	}
	if len(tokens) < 3 || tokens[1] != ":" {
		return nil, tokens, models.NewBaseError("malformed ratio literal %q", strings.Join(tokens, " ")).
			WithCode(models.MalformedRow)
	}

	numerator, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return nil, tokens, models.NewBaseError("malformed ratio numerator %q", tokens[0]).
			WithCode(models.MalformedRow).WithCause(err)
	}
	denominator, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil || denominator == 0 {
		return nil, tokens, models.NewBaseError("malformed ratio denominator %q", tokens[2]).
			WithCode(models.MalformedRow).WithCause(err)
	}

	ratio := numerator / denominator
	return &ratio, tokens[3:], nil
}
