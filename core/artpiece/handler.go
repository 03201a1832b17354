package artpiece

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/irsalhamdi/art-market/api/background"
	"github.com/irsalhamdi/art-market/api/web"
	"github.com/irsalhamdi/art-market/api/weberr"
	"github.com/irsalhamdi/art-market/core/claims"
	"github.com/irsalhamdi/art-market/core/location"
	"github.com/irsalhamdi/art-market/database"
	"github.com/irsalhamdi/art-market/storage"
	"github.com/irsalhamdi/art-market/validate"
	"github.com/jmoiron/sqlx"
)

// Details is the single-listing response: the piece plus its location.
type Details struct {
	ArtPiece
	Location location.Location `json:"location"`
}

func HandleCreate(db *sqlx.DB, up storage.Uploader, bg *background.Background) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		if err := web.ParseForm(r); err != nil {
			return weberr.BadRequest(err)
		}

		an := ArtPieceNew{
			TypeOfArt:   web.FormValue(r, "typeOfArt"),
			Name:        web.FormValue(r, "name"),
			Description: web.FormValue(r, "description"),
			County:      web.FormValue(r, "county"),
			State:       web.FormValue(r, "state"),
		}

		if raw := web.FormValue(r, "stockAmount"); raw != "" {
			an.Stock, err = strconv.Atoi(raw)
			if err != nil {
				err := errors.New("stockAmount is not a number")
				return weberr.NewError(err, err.Error(), http.StatusBadRequest)
			}
		}

		if err := validate.Check(an); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		price, err := validate.CheckPrice(web.FormValue(r, "price"))
		if err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		now := time.Now().UTC()
		ap := ArtPiece{
			ID:          validate.GenerateID(),
			SellerID:    clm.UserID,
			TypeOfArt:   an.TypeOfArt,
			Name:        an.Name,
			Description: an.Description,
			Stock:       an.Stock,
			Price:       price,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			loc, err := location.FetchOrCreate(ctx, tx, an.County, an.State)
			if err != nil {
				return fmt.Errorf("resolving location: %w", err)
			}

			ap.LocationID = loc.ID

			if err := Create(ctx, tx, ap); err != nil {
				return fmt.Errorf("creating art piece: %w", err)
			}

			return nil
		})
		if err != nil {
			return fmt.Errorf("creating listing for user[%s]: %w", clm.UserID, err)
		}

		// The listing exists at this point. The image ride-along is
		// best-effort: a failed upload leaves the listing without one.
		if err := attachImage(ctx, r, db, up, bg, ap.ID); err != nil {
			return weberr.BadRequest(err)
		}

		return web.Respond(ctx, w, ap, http.StatusCreated)
	}
}

func attachImage(ctx context.Context, r *http.Request, db *sqlx.DB, up storage.Uploader, bg *background.Background, artID string) error {
	f, fh, err := web.FormFile(r, "image")
	if err != nil {
		return err
	}
	if f == nil {
		return nil
	}
	defer f.Close()

	// Copy out before the request body goes away.
	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, f); err != nil {
		return fmt.Errorf("reading image part: %w", err)
	}

	key := storage.ObjectKey(artID, fh.Filename)
	contentType := fh.Header.Get("Content-Type")

	bg.Go(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		url, err := up.Upload(ctx, key, buf, int64(buf.Len()), contentType)
		if err != nil {
			return fmt.Errorf("uploading image of art piece[%s]: %w", artID, err)
		}

		if err := SetImageURL(ctx, db, artID, url); err != nil {
			return fmt.Errorf("attaching image to art piece[%s]: %w", artID, err)
		}

		return nil
	})

	return nil
}

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var filter Filter

		if raw := r.URL.Query().Get("type"); raw != "" {
			for _, t := range strings.Split(raw, ",") {
				if t = strings.TrimSpace(t); t != "" {
					filter.Types = append(filter.Types, t)
				}
			}
		}
		filter.Search = strings.TrimSpace(r.URL.Query().Get("search"))

		aps, err := FetchAll(ctx, db, filter)
		if err != nil {
			return fmt.Errorf("fetching art pieces: %w", err)
		}

		return web.Respond(ctx, w, aps, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		ap, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching art piece[%s]: %w", id, err)
		}

		loc, err := location.Fetch(ctx, db, ap.LocationID)
		if err != nil {
			return fmt.Errorf("fetching location[%s]: %w", ap.LocationID, err)
		}

		return web.Respond(ctx, w, Details{ArtPiece: ap, Location: loc}, http.StatusOK)
	}
}

func HandleListBySeller(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		aps, err := FetchBySeller(ctx, db, id)
		if err != nil {
			return fmt.Errorf("fetching art pieces of seller[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, aps, http.StatusOK)
	}
}

func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		ap, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching art piece[%s]: %w", id, err)
		}

		if !claims.IsUser(ctx, ap.SellerID) {
			return weberr.NotAuthorized(errors.New("only the seller can delete a listing"))
		}

		// Purchased pieces stay: order history references them.
		if err := Delete(ctx, db, id); err != nil {
			if database.IsForeignKeyViolation(err) {
				msg := errors.New("the art piece has been purchased and cannot be deleted")
				return weberr.NewError(err, msg.Error(), http.StatusBadRequest)
			}
			return fmt.Errorf("deleting art piece[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
