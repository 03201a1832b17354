package location

import (
	"context"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/art-market/api/web"
	"github.com/jmoiron/sqlx"
)

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		locs, err := FetchAll(ctx, db)
		if err != nil {
			return fmt.Errorf("fetching locations: %w", err)
		}

		return web.Respond(ctx, w, locs, http.StatusOK)
	}
}
