package model

// Announcement is one row fetched from an announcement feed, after the title
// anchor has been parsed out of the raw HTML fragment.
type Announcement struct {
	Feed     string `db:"feed" json:"feed"`
	ID       string `db:"id" json:"id"`
	Title    string `db:"title" json:"judul"`
	Link     string `db:"link" json:"link"`
	Date     string `db:"date" json:"tanggal"`
	Creator  string `db:"creator" json:"creator"`
	Views    string `db:"views" json:"view"`
	Category string `db:"category" json:"kategori"`
	SeenAt   int64  `db:"seen_at" json:"-"`
}
