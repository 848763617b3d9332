package schema

import "github.com/iliyamo/movie-catalog/internal/model"

// Director is the wire and fixture form of a director.
type Director struct {
	ID   int64   `json:"id"`
	Name *string `json:"name"`
}

func DumpDirector(d model.Director) Director {
	return Director{ID: d.ID, Name: nullString(d.Name)}
}

func (d Director) Model() model.Director {
	return model.Director{ID: d.ID, Name: toNullString(d.Name)}
}

// Genre is the wire and fixture form of a genre.
type Genre struct {
	ID   int64   `json:"id"`
	Name *string `json:"name"`
}

func DumpGenre(g model.Genre) Genre {
	return Genre{ID: g.ID, Name: nullString(g.Name)}
}

func (g Genre) Model() model.Genre {
	return model.Genre{ID: g.ID, Name: toNullString(g.Name)}
}
