package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/HEADES94/MovieProjektFinal/internal/engine"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
)

const maxBodyBytes = 1 << 20

type createMovieRequest struct {
	Title       string `json:"title" validate:"required,max=300"`
	ReleaseYear int    `json:"release_year" validate:"gte=0,lte=3000"`
	Plot        string `json:"plot" validate:"max=10000"`
	Genre       string `json:"genre" validate:"max=100"`
	Director    string `json:"director" validate:"max=200"`
}

type generateQuizRequest struct {
	Difficulty string `json:"difficulty" validate:"required"`
}

type submitQuizRequest struct {
	MovieID     int64             `json:"movie_id" validate:"gte=0"`
	Difficulty  string            `json:"difficulty" validate:"required"`
	Answers     map[string]string `json:"answers" validate:"required,min=1"`
	QuestionIDs []int64           `json:"question_ids" validate:"omitempty,dive,gt=0"`
}

type watchlistRequest struct {
	MovieID int64 `json:"movie_id" validate:"required,gt=0"`
}

type reviewRequest struct {
	MovieID int64  `json:"movie_id" validate:"required,gt=0"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type movieResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseYear int    `json:"release_year,omitempty"`
	Plot        string `json:"plot,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Director    string `json:"director,omitempty"`
}

type highscoreResponse struct {
	Rank       int    `json:"rank"`
	UserID     int64  `json:"user_id"`
	MovieID    int64  `json:"movie_id,omitempty"`
	BestScore  int    `json:"best_score"`
	Difficulty string `json:"difficulty"`
	AchievedAt string `json:"achieved_at"`
}

func toMovie(m store.Movie) movieResponse {
	return movieResponse{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseYear: m.ReleaseYear,
		Plot:        m.Plot,
		Genre:       m.Genre,
		Director:    m.Director,
	}
}

// decode reads a JSON body into dst and validates it. It writes the error
// response itself and reports whether the handler should continue.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		fail(w, r, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body: "+err.Error(), nil)
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				details[fe.Field()] = fe.Tag()
			}
			fail(w, r, http.StatusBadRequest, ErrCodeValidationFailed, "request validation failed", details)
			return false
		}
		fail(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return false
	}
	return true
}

// idParam parses a positive path id.
func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		fail(w, r, http.StatusBadRequest, ErrCodeBadRequest, name+" must be a positive integer", nil)
		return 0, false
	}
	return id, true
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listCatalog(w http.ResponseWriter, r *http.Request) {
	ok(w, s.svc.Catalog(r.URL.Query().Get("category")))
}

func (s *Server) highscores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 10
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			fail(w, r, http.StatusBadRequest, ErrCodeBadRequest, "limit must be a non-negative integer", nil)
			return
		}
		limit = n
	}
	var movieID int64
	if v := q.Get("movie_id"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			fail(w, r, http.StatusBadRequest, ErrCodeBadRequest, "movie_id must be a positive integer", nil)
			return
		}
		movieID = n
	}

	rows, err := s.svc.Highscores(r.Context(), movieID, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]highscoreResponse, len(rows))
	for i, h := range rows {
		out[i] = highscoreResponse{
			Rank:       i + 1,
			UserID:     h.UserID,
			MovieID:    h.MovieID,
			BestScore:  h.BestScore,
			Difficulty: h.Difficulty,
			AchievedAt: h.AchievedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	ok(w, out)
}

func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.svc.Movies(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]movieResponse, len(movies))
	for i, m := range movies {
		out[i] = toMovie(m)
	}
	ok(w, out)
}

func (s *Server) createMovie(w http.ResponseWriter, r *http.Request) {
	var req createMovieRequest
	if !s.decode(w, r, &req) {
		return
	}
	m, err := s.svc.AddMovie(r.Context(), store.MovieInput{
		Title:       req.Title,
		ReleaseYear: req.ReleaseYear,
		Plot:        req.Plot,
		Genre:       req.Genre,
		Director:    req.Director,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	created(w, toMovie(m))
}

func (s *Server) generateQuiz(w http.ResponseWriter, r *http.Request) {
	movieID, good := idParam(w, r, "movieID")
	if !good {
		return
	}
	var req generateQuizRequest
	if !s.decode(w, r, &req) {
		return
	}
	q, err := s.svc.GenerateQuiz(r.Context(), movieID, req.Difficulty)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created(w, q)
}

func (s *Server) submitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, good := idParam(w, r, "userID")
	if !good {
		return
	}
	var req submitQuizRequest
	if !s.decode(w, r, &req) {
		return
	}
	out, err := s.svc.SubmitQuiz(r.Context(), engine.Submission{
		UserID:      userID,
		MovieID:     req.MovieID,
		Answers:     req.Answers,
		Difficulty:  req.Difficulty,
		QuestionIDs: req.QuestionIDs,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	created(w, out)
}

func (s *Server) addWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, good := idParam(w, r, "userID")
	if !good {
		return
	}
	var req watchlistRequest
	if !s.decode(w, r, &req) {
		return
	}
	out, err := s.svc.RecordWatchlistAdd(r.Context(), userID, req.MovieID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if out.Added {
		created(w, out)
		return
	}
	ok(w, out)
}

func (s *Server) addReview(w http.ResponseWriter, r *http.Request) {
	userID, good := idParam(w, r, "userID")
	if !good {
		return
	}
	var req reviewRequest
	if !s.decode(w, r, &req) {
		return
	}
	out, err := s.svc.RecordReview(r.Context(), engine.ReviewInput{
		UserID:  userID,
		MovieID: req.MovieID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	created(w, out)
}

func (s *Server) userAchievements(w http.ResponseWriter, r *http.Request) {
	userID, good := idParam(w, r, "userID")
	if !good {
		return
	}
	out, err := s.svc.UserAchievements(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, out)
}

func (s *Server) recheck(w http.ResponseWriter, r *http.Request) {
	userID, good := idParam(w, r, "userID")
	if !good {
		return
	}
	granted, err := s.svc.Reevaluate(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, map[string]any{"achievements": granted})
}

func (s *Server) userStats(w http.ResponseWriter, r *http.Request) {
	userID, good := idParam(w, r, "userID")
	if !good {
		return
	}
	st, err := s.svc.UserStats(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, st)
}

func (s *Server) questionStats(w http.ResponseWriter, r *http.Request) {
	id, good := idParam(w, r, "questionID")
	if !good {
		return
	}
	u, err := s.svc.QuestionStats(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, u)
}
