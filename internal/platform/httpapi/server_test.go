package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vovakirdan/wordhunt/internal/config"
	"github.com/vovakirdan/wordhunt/internal/engine"
	"github.com/vovakirdan/wordhunt/internal/storage"
)

type fixture struct {
	srv     *httptest.Server
	eng     *engine.Engine
	themeID int64
	tinyID  int64
}

func newFixture(t *testing.T, maxLevels int) *fixture {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemory()
	themeID, _, err := store.ImportTheme(ctx, "Animals", []string{
		"cat", "dog", "bird", "horse", "tiger", "zebra", "lion", "wolf",
	})
	if err != nil {
		t.Fatal(err)
	}
	tinyID, _, err := store.ImportTheme(ctx, "Tiny", []string{"ox", "emu"})
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Game.MaxLevels = maxLevels
	cfg.Game.Seed = 42
	eng := engine.New(store, cfg, nil)

	srv := httptest.NewServer(New(eng, nil).Router())
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, eng: eng, themeID: themeID, tinyID: tinyID}
}

// do sends a JSON request and decodes the JSON response into out.
func (f *fixture) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, f.srv.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func (f *fixture) login(t *testing.T, name string) playerRes {
	t.Helper()
	var p playerRes
	if code := f.do(t, http.MethodPost, "/players", loginReq{Name: name}, &p); code != http.StatusCreated && code != http.StatusOK {
		t.Fatalf("login %q: status %d", name, code)
	}
	return p
}

func (f *fixture) createSession(t *testing.T, p playerRes, themeID int64) sessionRes {
	t.Helper()
	var s sessionRes
	req := createSessionReq{PlayerID: p.ID, ThemeID: themeID}
	if code := f.do(t, http.MethodPost, "/sessions", req, &s); code != http.StatusCreated {
		t.Fatalf("create session: status %d", code)
	}
	return s
}

func TestLoginEndpoint(t *testing.T) {
	f := newFixture(t, 1)

	var p playerRes
	if code := f.do(t, http.MethodPost, "/players", loginReq{Name: "Ann"}, &p); code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}
	if !p.Created || p.Name != "Ann" {
		t.Errorf("unexpected player %+v", p)
	}

	var again playerRes
	if code := f.do(t, http.MethodPost, "/players", loginReq{Name: "ann"}, &again); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if again.Created || again.ID != p.ID {
		t.Errorf("expected returning player, got %+v", again)
	}

	var e errorRes
	if code := f.do(t, http.MethodPost, "/players", loginReq{Name: "  "}, &e); code != http.StatusBadRequest {
		t.Errorf("blank name: expected 400, got %d", code)
	}
}

func TestThemesEndpoint(t *testing.T) {
	f := newFixture(t, 1)

	var themes []themeRes
	if code := f.do(t, http.MethodGet, "/themes", nil, &themes); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(themes) != 1 || themes[0].Name != "Animals" || themes[0].WordCount != 8 {
		t.Errorf("unexpected themes %+v", themes)
	}
}

func TestSessionFlow(t *testing.T) {
	f := newFixture(t, 1)
	p := f.login(t, "Ann")
	s := f.createSession(t, p, f.themeID)

	if s.State != "theme_selection" || s.Current != nil {
		t.Fatalf("unexpected new session %+v", s)
	}

	var started sessionRes
	if code := f.do(t, http.MethodPost, "/sessions/"+s.ID+"/levels", nil, &started); code != http.StatusOK {
		t.Fatalf("start level: status %d", code)
	}
	if started.State != "level_active" || started.Current == nil || len(started.Current.Grid) != started.Current.FieldSize {
		t.Fatalf("unexpected started session %+v", started)
	}

	// The API never reveals where the words are, so solve through the engine.
	g, err := f.eng.Game(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	placements := g.Snapshot().Current.Placements

	var miss verdictRes
	f.do(t, http.MethodPost, "/sessions/"+s.ID+"/submit", submitReq{Cells: [][]int{{0, 0}}}, &miss)
	if miss.Outcome != "not_a_word" {
		t.Errorf("expected not_a_word, got %q", miss.Outcome)
	}

	var last verdictRes
	for _, pl := range placements {
		var cells [][]int
		for _, c := range pl.Cells() {
			cells = append(cells, []int{c.Row, c.Col})
		}
		if code := f.do(t, http.MethodPost, "/sessions/"+s.ID+"/submit", submitReq{Cells: cells}, &last); code != http.StatusOK {
			t.Fatalf("submit %s: status %d", pl.Word, code)
		}
		if last.Outcome != "valid" || last.Word != pl.Word {
			t.Errorf("submit %s: got %+v", pl.Word, last)
		}
	}
	if last.Session.State != "level_complete" || last.Session.Current.Reason != "all_found" {
		t.Fatalf("expected completed level, got %+v", last.Session)
	}

	var ended sessionRes
	if code := f.do(t, http.MethodPost, "/sessions/"+s.ID+"/advance", nil, &ended); code != http.StatusOK {
		t.Fatalf("advance: status %d", code)
	}
	if ended.State != "session_ended" || ended.FinalScore == nil || *ended.FinalScore <= 0 {
		t.Fatalf("expected ended session with score, got %+v", ended)
	}

	var scores []scoreRes
	if code := f.do(t, http.MethodGet, "/scores", nil, &scores); code != http.StatusOK {
		t.Fatalf("scores: status %d", code)
	}
	if len(scores) != 1 || scores[0].PlayerName != "Ann" || scores[0].Score != *ended.FinalScore || scores[0].Rank != 1 {
		t.Errorf("unexpected scores %+v", scores)
	}

	// Saved sessions leave the registry.
	if code := f.do(t, http.MethodGet, "/sessions/"+s.ID, nil, &errorRes{}); code != http.StatusNotFound {
		t.Errorf("finished session: expected 404, got %d", code)
	}
}

func TestCreateSessionUsesRegisteredName(t *testing.T) {
	f := newFixture(t, 1)
	f.login(t, "Ann")
	again := f.login(t, "ANN")

	s := f.createSession(t, again, f.themeID)
	if s.PlayerID != again.ID || s.PlayerName != "Ann" {
		t.Errorf("expected session for registered player Ann, got %d %q", s.PlayerID, s.PlayerName)
	}

	body := map[string]any{"player_id": again.ID, "player_name": "Mallory", "theme_id": f.themeID}
	if code := f.do(t, http.MethodPost, "/sessions", body, &errorRes{}); code != http.StatusBadRequest {
		t.Errorf("client-supplied name: expected 400, got %d", code)
	}
}

func TestSnapshotHidesPlacements(t *testing.T) {
	f := newFixture(t, 1)
	p := f.login(t, "Ann")
	s := f.createSession(t, p, f.themeID)
	f.do(t, http.MethodPost, "/sessions/"+s.ID+"/levels", nil, nil)

	resp, err := http.Get(f.srv.URL + "/sessions/" + s.ID)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatal(err)
	}
	current, _ := raw["current"].(map[string]any)
	if current == nil {
		t.Fatal("missing current level")
	}
	for k := range current {
		if strings.Contains(strings.ToLower(k), "placement") {
			t.Errorf("snapshot exposes %q", k)
		}
	}
}

func TestTickEndpointTimesOut(t *testing.T) {
	f := newFixture(t, 2)
	p := f.login(t, "Ann")
	s := f.createSession(t, p, f.themeID)
	f.do(t, http.MethodPost, "/sessions/"+s.ID+"/levels", nil, nil)

	var after sessionRes
	if code := f.do(t, http.MethodPost, "/sessions/"+s.ID+"/tick", tickReq{ElapsedMS: 1_000_000}, &after); code != http.StatusOK {
		t.Fatalf("tick: status %d", code)
	}
	if after.State != "level_complete" || after.Current.Reason != "timed_out" || after.Current.RemainingMS != 0 {
		t.Errorf("expected timed out level, got %+v", after)
	}

	var e errorRes
	if code := f.do(t, http.MethodPost, "/sessions/"+s.ID+"/tick", tickReq{ElapsedMS: 10}, &e); code != http.StatusConflict {
		t.Errorf("tick after completion: expected 409, got %d", code)
	}
	if code := f.do(t, http.MethodPost, "/sessions/"+s.ID+"/levels", nil, &e); code != http.StatusConflict {
		t.Errorf("restart after completion: expected 409, got %d", code)
	}
}

func TestErrorMapping(t *testing.T) {
	f := newFixture(t, 1)
	p := f.login(t, "Ann")
	s := f.createSession(t, p, f.themeID)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown session", http.MethodGet, "/sessions/nope", nil, http.StatusNotFound},
		{"submit before level", http.MethodPost, "/sessions/" + s.ID + "/submit", submitReq{Cells: [][]int{{0, 0}}}, http.StatusConflict},
		{"advance before level", http.MethodPost, "/sessions/" + s.ID + "/advance", nil, http.StatusConflict},
		{"malformed cells", http.MethodPost, "/sessions/" + s.ID + "/submit", submitReq{Cells: [][]int{{1}}}, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/players", map[string]string{"nick": "x"}, http.StatusBadRequest},
		{"missing ids", http.MethodPost, "/sessions", createSessionReq{}, http.StatusBadRequest},
		{"unknown theme", http.MethodPost, "/sessions", createSessionReq{PlayerID: p.ID, ThemeID: 999}, http.StatusNotFound},
		{"unknown player", http.MethodPost, "/sessions", createSessionReq{PlayerID: 999, ThemeID: f.themeID}, http.StatusNotFound},
		{"too few words", http.MethodPost, "/sessions", createSessionReq{PlayerID: p.ID, ThemeID: f.tinyID}, http.StatusUnprocessableEntity},
		{"bad limit", http.MethodGet, "/scores?limit=x", nil, http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/nowhere", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e errorRes
			if code := f.do(t, tt.method, tt.path, tt.body, &e); code != tt.want {
				t.Errorf("expected %d, got %d (%s)", tt.want, code, e.Error)
			}
			if e.Error == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestEndAndAbandon(t *testing.T) {
	f := newFixture(t, 3)
	p := f.login(t, "Ann")

	a := f.createSession(t, p, f.themeID)
	f.do(t, http.MethodPost, "/sessions/"+a.ID+"/levels", nil, nil)
	var res endRes
	if code := f.do(t, http.MethodPost, "/sessions/"+a.ID+"/end", nil, &res); code != http.StatusOK {
		t.Fatalf("end: status %d", code)
	}
	if !res.Saved || res.Score != 0 {
		t.Errorf("unexpected end result %+v", res)
	}

	b := f.createSession(t, p, f.themeID)
	if code := f.do(t, http.MethodDelete, "/sessions/"+b.ID, nil, nil); code != http.StatusNoContent {
		t.Fatalf("abandon: status %d", code)
	}
	if code := f.do(t, http.MethodGet, "/sessions/"+b.ID, nil, &errorRes{}); code != http.StatusNotFound {
		t.Errorf("abandoned session: expected 404, got %d", code)
	}
	if f.eng.Registry().Count() != 0 {
		t.Errorf("expected no live sessions, got %d", f.eng.Registry().Count())
	}
}
