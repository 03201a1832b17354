package location

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/irsalhamdi/art-market/validate"
	"github.com/jmoiron/sqlx"
)

func FetchAll(ctx context.Context, db sqlx.ExtContext) ([]Location, error) {
	const q = `SELECT * FROM locations ORDER BY state, county`

	locs := []Location{}
	if err := sqlx.SelectContext(ctx, db, &locs, q); err != nil {
		return nil, fmt.Errorf("selecting locations: %w", err)
	}

	return locs, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Location, error) {
	const q = `SELECT * FROM locations WHERE location_id = $1`

	var loc Location
	if err := sqlx.GetContext(ctx, db, &loc, q, id); err != nil {
		return Location{}, fmt.Errorf("selecting location[%s]: %w", id, err)
	}

	return loc, nil
}

// FetchOrCreate returns the canonical row for (county, state), creating it on
// first use. The original casing of the first writer wins.
func FetchOrCreate(ctx context.Context, db sqlx.ExtContext, county string, state string) (Location, error) {
	const q = `SELECT * FROM locations WHERE LOWER(county) = LOWER($1) AND LOWER(state) = LOWER($2)`

	var loc Location
	err := sqlx.GetContext(ctx, db, &loc, q, county, state)
	if err == nil {
		return loc, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Location{}, fmt.Errorf("selecting location: %w", err)
	}

	loc = Location{
		ID:     validate.GenerateID(),
		County: county,
		State:  state,
	}

	const ins = `
	INSERT INTO locations
		(location_id, county, state)
	VALUES
		(:location_id, :county, :state)`

	if _, err := sqlx.NamedExecContext(ctx, db, ins, loc); err != nil {
		return Location{}, fmt.Errorf("inserting location: %w", err)
	}

	return loc, nil
}
