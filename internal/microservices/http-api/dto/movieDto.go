package dto

import (
	"strings"

	"moviehub/internal/microservices/http-api/models"
)

// MovieForm is bound from the add form (POST /movies/add).
// A non-numeric or zero year fails binding the same way a missing one does.
type MovieForm struct {
	Title string `form:"title" binding:"required"`
	Year  int    `form:"year" binding:"required"`
}

// MovieJSON is the serializer's field set; id is not exposed.
type MovieJSON struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
}

type MovieListResponse struct {
	Movies []MovieJSON `json:"movies"`
}

// Converters
func (f MovieForm) ToModel() models.Movie {
	return models.Movie{
		Title: strings.TrimSpace(f.Title),
		Year:  f.Year,
	}
}

func FromModelToJSON(m models.Movie) MovieJSON {
	return MovieJSON{Title: m.Title, Year: m.Year}
}

// FromModelsToListResponse never returns a nil slice, so an empty store encodes as [].
func FromModelsToListResponse(list []models.Movie) MovieListResponse {
	resp := MovieListResponse{Movies: make([]MovieJSON, 0, len(list))}
	for _, m := range list {
		resp.Movies = append(resp.Movies, FromModelToJSON(m))
	}
	return resp
}
