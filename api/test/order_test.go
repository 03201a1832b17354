package test

import (
	"net/http"
	"testing"

	"github.com/irsalhamdi/art-market/core/order"
	"github.com/shopspring/decimal"
)

type orderTest struct {
	*TestEnv
}

func (ot *orderTest) checkoutOK(t *testing.T) order.Placed {
	t.Helper()
	var placed order.Placed
	ot.postJSON(t, "/orders", nil, http.StatusCreated, &placed)
	return placed
}

func (ot *orderTest) checkoutFails(t *testing.T, wantStatus int) {
	t.Helper()
	ot.postJSON(t, "/orders", nil, wantStatus, nil)
}

func (ot *orderTest) history(t *testing.T) []order.History {
	t.Helper()
	var hist []order.History
	ot.doJSON(t, http.MethodGet, "/orders", nil, http.StatusOK, &hist)
	return hist
}

func TestOrder(t *testing.T) {
	env, err := NewTestEnv(t, "order_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ot := &orderTest{env}
	at := &artTest{env}
	ct := &cartTest{env}

	at.Signup(t, "seller1")
	art1 := at.createArtOK(t, artForm{
		name: "Sunrise Field", typeOfArt: "painting",
		stock: 5, price: "120.00", county: "Linn", state: "Iowa",
	})
	at.Logout(t)

	at.Signup(t, "seller2")
	art2 := at.createArtOK(t, artForm{
		name: "Clay Vase", typeOfArt: "pottery",
		stock: 1, price: "42.50", county: "Linn", state: "Iowa",
	})
	art3 := at.createArtOK(t, artForm{
		name: "Last Print", typeOfArt: "photo",
		stock: 1, price: "19.99", county: "Linn", state: "Iowa",
	})
	at.Logout(t)

	ot.Signup(t, "buyer")

	// Checking out with no cart at all is an empty-cart failure.
	ot.checkoutFails(t, http.StatusBadRequest)

	ot.testHappyPath(t, ct, at, art1.ID, art2.ID)
	ot.testOutOfStockAtomicity(t, ct, at, art1.ID, art3.ID)
	ot.testSelfPurchase(t, ct, at)
	ot.testPriceSnapshot(t, art2.ID)

	ot.Logout(t)
}

// Happy path: two pieces from two sellers become one order with two lines,
// stock drops by one each, the cart is emptied.
func (ot *orderTest) testHappyPath(t *testing.T, ct *cartTest, at *artTest, art1ID, art2ID string) {
	ct.addItemOK(t, art1ID, http.StatusCreated)
	ct.addItemOK(t, art2ID, http.StatusCreated)

	placed := ot.checkoutOK(t)

	if len(placed.Items) != 2 {
		t.Fatalf("order has %d lines, want 2", len(placed.Items))
	}

	prices := map[string]string{art1ID: "120.00", art2ID: "42.50"}
	for _, it := range placed.Items {
		want, ok := prices[it.ArtID]
		if !ok {
			t.Fatalf("order line references unexpected piece %s", it.ArtID)
		}
		if !it.Price.Equal(decimal.RequireFromString(want)) {
			t.Fatalf("line for %s has price %s, want %s", it.ArtID, it.Price, want)
		}
	}

	if got := at.fetchArt(t, art1ID).Stock; got != 4 {
		t.Fatalf("art1 stock %d after checkout, want 4", got)
	}
	if got := at.fetchArt(t, art2ID).Stock; got != 0 {
		t.Fatalf("art2 stock %d after checkout, want 0", got)
	}

	if items := ct.fetchCart(t); len(items) != 0 {
		t.Fatalf("cart has %d items after checkout, want 0", len(items))
	}

	if hist := ot.history(t); len(hist) != 1 || len(hist[0].Items) != 2 {
		t.Fatalf("history does not show the new order: %+v", hist)
	}

	// A second checkout on the now-empty cart fails again.
	ot.checkoutFails(t, http.StatusBadRequest)
}

// One depleted entry aborts the whole checkout: no order, no decrement on
// the healthy entry, cart untouched.
func (ot *orderTest) testOutOfStockAtomicity(t *testing.T, ct *cartTest, at *artTest, art1ID, art3ID string) {
	ct.addItemOK(t, art1ID, http.StatusCreated)
	ct.addItemOK(t, art3ID, http.StatusCreated)

	// The last print sells out between add and checkout.
	if _, err := ot.DB.Exec(`UPDATE art_pieces SET stock_amount = 0 WHERE art_id = $1`, art3ID); err != nil {
		t.Fatalf("depleting stock: %v", err)
	}

	ot.checkoutFails(t, http.StatusBadRequest)

	if got := at.fetchArt(t, art1ID).Stock; got != 4 {
		t.Fatalf("art1 stock %d after failed checkout, want untouched 4", got)
	}
	if items := ct.fetchCart(t); len(items) != 2 {
		t.Fatalf("cart has %d items after failed checkout, want 2", len(items))
	}
	if hist := ot.history(t); len(hist) != 1 {
		t.Fatalf("failed checkout left %d orders in history, want 1", len(hist))
	}

	ct.doJSON(t, http.MethodDelete, "/cart", nil, http.StatusNoContent, nil)
}

// A buyer cannot purchase their own listing, even mixed into a valid cart.
func (ot *orderTest) testSelfPurchase(t *testing.T, ct *cartTest, at *artTest) {
	own := at.createArtOK(t, artForm{
		name: "My Own Work", typeOfArt: "painting",
		stock: 2, price: "10.00", county: "Linn", state: "Iowa",
	})

	ct.addItemOK(t, own.ID, http.StatusCreated)
	ot.checkoutFails(t, http.StatusBadRequest)

	if got := at.fetchArt(t, own.ID).Stock; got != 2 {
		t.Fatalf("own piece stock %d after failed checkout, want 2", got)
	}
	if hist := ot.history(t); len(hist) != 1 {
		t.Fatalf("self purchase left %d orders in history, want 1", len(hist))
	}

	ct.doJSON(t, http.MethodDelete, "/cart", nil, http.StatusNoContent, nil)
}

// Editing a listing's price later must not rewrite order history.
func (ot *orderTest) testPriceSnapshot(t *testing.T, art2ID string) {
	if _, err := ot.DB.Exec(`UPDATE art_pieces SET price = 999.99 WHERE art_id = $1`, art2ID); err != nil {
		t.Fatalf("repricing art piece: %v", err)
	}

	hist := ot.history(t)
	if len(hist) != 1 {
		t.Fatalf("history has %d orders, want 1", len(hist))
	}

	for _, it := range hist[0].Items {
		if it.ArtID == art2ID && !it.Price.Equal(decimal.RequireFromString("42.50")) {
			t.Fatalf("snapshot price %s changed after repricing, want 42.50", it.Price)
		}
	}
}
