package models

import "time"

// Movie представляет запись о фильме в базе данных.
type Movie struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Year      int       `db:"year" json:"year"`
	Genre     string    `db:"genre" json:"genre"`
	Poster    string    `db:"poster" json:"poster"`
	Summary   string    `db:"summary" json:"summary"`
	OwnerID   string    `db:"owner_id" json:"ownerId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// Comment представляет комментарий к фильму.
// Поле AuthorName заполняется запросом с JOIN на users, в таблице его нет.
type Comment struct {
	ID         string    `db:"id" json:"id"`
	MovieID    string    `db:"movie_id" json:"movieId"`
	AuthorID   string    `db:"author_id" json:"authorId"`
	AuthorName string    `db:"author_name" json:"authorName"`
	Text       string    `db:"text" json:"text"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
