package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrNoRows is what every Repository returns for a missing lookup or
// cached translation, whichever driver is underneath.
var ErrNoRows = errors.New("no rows in result set")

// NormalizeNoRows turns the driver's no-rows error into ErrNoRows and
// leaves every other error alone.
func NormalizeNoRows(err error) error {
	if err == nil || errors.Is(err, ErrNoRows) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNoRows, err)
	}
	return err
}

// IsNoRows reports whether err means nothing was found, including raw
// driver errors that were not normalized.
func IsNoRows(err error) bool {
	return errors.Is(NormalizeNoRows(err), ErrNoRows)
}
