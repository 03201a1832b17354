package test

import (
	"net/http"
	"testing"

	"github.com/irsalhamdi/art-market/core/review"
)

func TestReview(t *testing.T) {
	env, err := NewTestEnv(t, "review_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	seller := env.Signup(t, "rev_seller")
	env.Logout(t)

	reviewer := env.Signup(t, "rev_buyer")

	// Reviewing yourself is rejected.
	env.postJSON(t, "/reviews", map[string]interface{}{
		"reviewedId": reviewer.ID,
		"rating":     5,
	}, http.StatusBadRequest, nil)

	// Reviewing an unknown user is a 404.
	env.postJSON(t, "/reviews", map[string]interface{}{
		"reviewedId": "2e8d1f90-0000-0000-0000-000000000000",
		"rating":     3,
	}, http.StatusNotFound, nil)

	// Ratings outside 1..5 fail validation.
	env.postJSON(t, "/reviews", map[string]interface{}{
		"reviewedId": seller.ID,
		"rating":     6,
	}, http.StatusBadRequest, nil)

	var rev review.Review
	env.postJSON(t, "/reviews", map[string]interface{}{
		"reviewedId": seller.ID,
		"rating":     4,
	}, http.StatusCreated, &rev)
	if rev.ReviewerID != reviewer.ID || rev.Rating != 4 {
		t.Fatalf("unexpected review %+v", rev)
	}

	// A second review from the same reviewer replaces the first.
	env.postJSON(t, "/reviews", map[string]interface{}{
		"reviewedId": seller.ID,
		"rating":     2,
	}, http.StatusCreated, nil)

	var sum review.Summary
	env.doJSON(t, http.MethodGet, "/users/"+seller.ID+"/reviews", nil, http.StatusOK, &sum)
	if len(sum.Reviews) != 1 || sum.Reviews[0].Rating != 2 {
		t.Fatalf("re-review did not replace the first: %+v", sum.Reviews)
	}
	if sum.Average != 2.0 {
		t.Fatalf("average is %f, want 2.0", sum.Average)
	}

	// Another reviewer pulls the average up.
	env.Logout(t)
	env.Signup(t, "rev_other")
	env.postJSON(t, "/reviews", map[string]interface{}{
		"reviewedId": seller.ID,
		"rating":     4,
	}, http.StatusCreated, nil)

	env.doJSON(t, http.MethodGet, "/users/"+seller.ID+"/reviews", nil, http.StatusOK, &sum)
	if len(sum.Reviews) != 2 || sum.Average != 3.0 {
		t.Fatalf("summary after second reviewer: %d reviews, average %f, want 2 and 3.0", len(sum.Reviews), sum.Average)
	}

	env.Logout(t)

	// The summary is public, reviewing is not.
	env.doJSON(t, http.MethodGet, "/users/"+seller.ID+"/reviews", nil, http.StatusOK, &sum)
	env.postJSON(t, "/reviews", map[string]interface{}{
		"reviewedId": seller.ID,
		"rating":     1,
	}, http.StatusUnauthorized, nil)
}
