package models

// User is the account record owned by the surrounding application. The
// assistant only reads it: FavoritePosts and JoinedEvents hold event IDs.
type User struct {
	ID            string   `json:"id"`
	FavoritePosts []string `json:"favoritePosts"`
	JoinedEvents  []string `json:"joinedEvents"`
}
