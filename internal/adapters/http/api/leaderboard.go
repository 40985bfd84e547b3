package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/clubrecords/internal/domain/leaderboard"
	"github.com/okian/clubrecords/internal/domain/types"
)

// KeyView is the JSON form of a leaderboard key.
type KeyView struct {
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	Category string `json:"category"`
	Event    string `json:"event"`
	Gender   string `json:"gender"`
	Year     int    `json:"year,omitempty"`
	Groups   int    `json:"groups"`
}

// BoardView is the JSON form of one leaderboard.
type BoardView struct {
	KeyView
	Capacity      int     `json:"capacity"`
	SmallerBetter bool    `json:"smaller_better"`
	Entries       []Entry `json:"entries"`
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	boards Boards
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(boards Boards) *LeaderboardHandler {
	return &LeaderboardHandler{boards: boards}
}

// HandleList handles GET /leaderboards.
func (h *LeaderboardHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	keys := h.boards.Keys()
	out := make([]KeyView, 0, len(keys))
	for _, k := range keys {
		b, ok := h.boards.Board(k)
		if !ok {
			continue
		}
		out = append(out, keyView(k, b))
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /leaderboards/{kind}/{category}/{event}/{gender}?year=N.
func (h *LeaderboardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	key, err := parseKey(strings.TrimPrefix(r.URL.Path, "/leaderboards/"), r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", opError(op, err))
		return
	}
	b, ok := h.boards.Board(key)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", opError(op, ErrNotFound))
		return
	}

	components := 1
	if e, err := h.boards.Catalog().Lookup(key.Event); err == nil {
		components = e.Components
	}
	entries := types.Entries(b, components)
	if entries == nil {
		entries = []Entry{}
	}
	writeJSON(w, http.StatusOK, BoardView{
		KeyView:       keyView(key, b),
		Capacity:      b.Capacity(),
		SmallerBetter: b.SmallerBetter(),
		Entries:       entries,
	})
}

func parseKey(path, year string) (leaderboard.Key, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 4 {
		return leaderboard.Key{}, ErrBadRequest
	}
	kind, ok := leaderboard.ParseKind(parts[0])
	if !ok {
		return leaderboard.Key{}, ErrBadRequest
	}
	key := leaderboard.Key{Kind: kind, Category: parts[1], Event: parts[2], Gender: strings.ToUpper(parts[3])}
	if year != "" {
		y, err := strconv.Atoi(year)
		if err != nil || y <= 0 {
			return leaderboard.Key{}, ErrBadRequest
		}
		key.Year = y
	}
	return key, nil
}

func keyView(k leaderboard.Key, b *leaderboard.Board) KeyView {
	path := "/leaderboards/" + strings.Join([]string{k.Kind.String(), k.Category, k.Event, k.Gender}, "/")
	if k.Year != 0 {
		path += "?year=" + strconv.Itoa(k.Year)
	}
	return KeyView{
		Path:     path,
		Kind:     k.Kind.String(),
		Category: k.Category,
		Event:    k.Event,
		Gender:   k.Gender,
		Year:     k.Year,
		Groups:   b.Len(),
	}
}
