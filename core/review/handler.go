package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/art-market/api/web"
	"github.com/irsalhamdi/art-market/api/weberr"
	"github.com/irsalhamdi/art-market/core/claims"
	"github.com/irsalhamdi/art-market/core/user"
	"github.com/irsalhamdi/art-market/validate"
	"github.com/jmoiron/sqlx"
)

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var in ReviewNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}
		if err := validate.CheckID(in.ReviewedID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if in.ReviewedID == clm.UserID {
			err := errors.New("you cannot review yourself")
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if _, err := user.Fetch(ctx, db, in.ReviewedID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching reviewed user[%s]: %w", in.ReviewedID, err)
		}

		rev := Review{
			ID:         validate.GenerateID(),
			ReviewerID: clm.UserID,
			ReviewedID: in.ReviewedID,
			Rating:     in.Rating,
			CreatedAt:  time.Now().UTC(),
		}

		if err := Upsert(ctx, db, rev); err != nil {
			return fmt.Errorf("saving review of user[%s]: %w", in.ReviewedID, err)
		}

		return web.Respond(ctx, w, rev, http.StatusCreated)
	}
}

func HandleListByUser(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		revs, err := FetchByReviewed(ctx, db, id)
		if err != nil {
			return fmt.Errorf("fetching reviews of user[%s]: %w", id, err)
		}

		var avg float64
		for _, rev := range revs {
			avg += float64(rev.Rating)
		}
		if len(revs) > 0 {
			avg /= float64(len(revs))
		}

		return web.Respond(ctx, w, Summary{Reviews: revs, Average: avg}, http.StatusOK)
	}
}
