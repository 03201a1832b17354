package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/art-market/api/web"
	"github.com/irsalhamdi/art-market/api/weberr"
	"github.com/irsalhamdi/art-market/core/artpiece"
	"github.com/irsalhamdi/art-market/core/claims"
	"github.com/irsalhamdi/art-market/validate"
	"github.com/jmoiron/sqlx"
)

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		items, err := FetchItems(ctx, db, clm.UserID)
		if err != nil {
			return fmt.Errorf("fetching cart items: %w", err)
		}

		details := make([]ItemDetails, 0, len(items))
		for _, it := range items {
			ap, err := artpiece.Fetch(ctx, db, it.ArtID)
			if err != nil {
				return fmt.Errorf("fetching art piece[%s]: %w", it.ArtID, err)
			}
			details = append(details, ItemDetails{Item: it, Art: ap})
		}

		return web.Respond(ctx, w, details, http.StatusOK)
	}
}

func HandleCreateItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.CheckID(in.ArtID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		ap, err := artpiece.Fetch(ctx, db, in.ArtID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching art piece[%s]: %w", in.ArtID, err)
		}

		// Best-effort gate only. The real stock check happens at checkout.
		if ap.Stock <= 0 {
			err := fmt.Errorf("item %q is out of stock", ap.Name)
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if err := Upsert(ctx, db, clm.UserID); err != nil {
			return fmt.Errorf("upserting cart of user[%s]: %w", clm.UserID, err)
		}

		item := Item{
			UserID:    clm.UserID,
			ArtID:     in.ArtID,
			CreatedAt: time.Now().UTC(),
		}

		created, err := CreateItem(ctx, db, item)
		if err != nil {
			return fmt.Errorf("adding art piece[%s] to cart: %w", in.ArtID, err)
		}

		// Adding twice is not an error, just not a second entry.
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}

		return web.Respond(ctx, w, item, status)
	}
}

func HandleDeleteItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		artID := web.Param(r, "art_id")
		if err := validate.CheckID(artID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		deleted, err := DeleteItem(ctx, db, clm.UserID, artID)
		if err != nil {
			return fmt.Errorf("removing art piece[%s] from cart: %w", artID, err)
		}

		if !deleted {
			return weberr.NotFound(errors.New("item is not in the cart"))
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		if err := Delete(ctx, db, clm.UserID); err != nil {
			return fmt.Errorf("clearing cart of user[%s]: %w", clm.UserID, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
