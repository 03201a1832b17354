package location

// Location is a canonical (county, state) pair shared by every listing in
// that area. Matching is case-insensitive so "Cook"/"cook" do not fork rows.
type Location struct {
	ID     string `json:"id" db:"location_id"`
	County string `json:"county" db:"county"`
	State  string `json:"state" db:"state"`
}
