// Package queue defines message payloads exchanged over the message broker.
package queue

// MovieCreatedQueue is the durable queue carrying MovieCreatedEvent messages.
const MovieCreatedQueue = "movie.created"

// MovieCreatedEvent is published after a movie row has been committed. It
// carries enough for downstream consumers to audit or index the new entry
// without querying the catalog database.
type MovieCreatedEvent struct {
	EventID    string `json:"event_id"`
	MovieID    int64  `json:"movie_id"`
	Title      string `json:"title"`
	Year       *int64 `json:"year"`
	GenreID    *int64 `json:"genre_id"`
	DirectorID *int64 `json:"director_id"`
	CreatedAt  string `json:"created_at"`
}
