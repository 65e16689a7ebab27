package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"football-stats-api/models"
)

func TestMatchResultAggregate(t *testing.T) {
	app, db := newTestApp(t)

	country := models.Country{Name: "England"}
	if err := db.Create(&country).Error; err != nil {
		t.Fatalf("seed country: %v", err)
	}
	comp := models.Competition{Name: "Premier League", CountryID: country.ID, Type: models.CompetitionTypeLeague}
	if err := db.Create(&comp).Error; err != nil {
		t.Fatalf("seed competition: %v", err)
	}
	home := models.Club{Name: "Arsenal", CountryID: country.ID}
	away := models.Club{Name: "Chelsea", CountryID: country.ID}
	if err := db.Create(&home).Error; err != nil {
		t.Fatalf("seed home club: %v", err)
	}
	if err := db.Create(&away).Error; err != nil {
		t.Fatalf("seed away club: %v", err)
	}

	resp := doRequest(t, app, http.MethodPost, "/matches", testToken, map[string]interface{}{
		"date":           "2024-04-23",
		"season":         "2023/24",
		"home_goals":     5,
		"away_goals":     0,
		"competition_id": comp.ID,
		"home_club_id":   home.ID,
		"away_club_id":   away.ID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got status %d, want 201", resp.StatusCode)
	}
	created := decodeMap(t, resp)
	if created["result"] != "5:0" {
		t.Fatalf("got result %v, want 5:0", created["result"])
	}
	id := int(created["id"].(float64))

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/matches/%d", id), "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: got status %d, want 200", resp.StatusCode)
	}
	got := decodeMap(t, resp)
	if got["competition"] != "Premier League" || got["home_club"] != "Arsenal" || got["away_club"] != "Chelsea" {
		t.Fatalf("expansion: unexpected body %v", got)
	}

	// Changing a score must refresh the aggregate.
	resp = doRequest(t, app, http.MethodPut, fmt.Sprintf("/matches/%d", id), testToken, map[string]interface{}{
		"away_goals": 2,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: got status %d, want 200", resp.StatusCode)
	}
	updated := decodeMap(t, resp)
	if updated["result"] != "5:2" {
		t.Fatalf("got result %v after update, want 5:2", updated["result"])
	}
	if updated["season"] != "2023/24" {
		t.Fatalf("season changed: %v", updated["season"])
	}
}

func TestCreateMatchSameClubRejected(t *testing.T) {
	app, db := newTestApp(t)

	country := models.Country{Name: "France"}
	if err := db.Create(&country).Error; err != nil {
		t.Fatalf("seed country: %v", err)
	}
	comp := models.Competition{Name: "Ligue 1", CountryID: country.ID}
	if err := db.Create(&comp).Error; err != nil {
		t.Fatalf("seed competition: %v", err)
	}
	club := models.Club{Name: "PSG", CountryID: country.ID}
	if err := db.Create(&club).Error; err != nil {
		t.Fatalf("seed club: %v", err)
	}

	resp := doRequest(t, app, http.MethodPost, "/matches", testToken, map[string]interface{}{
		"date":           "2024-04-23",
		"competition_id": comp.ID,
		"home_club_id":   club.ID,
		"away_club_id":   club.ID,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}
}

func TestCreateAppearanceDanglingForeignKey(t *testing.T) {
	app, db := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/appearances", testToken, map[string]interface{}{
		"match_id":  7,
		"player_id": 7,
		"goals":     1,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}

	var n int64
	if err := db.Model(&models.Appearance{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("row created despite dangling foreign keys")
	}
}

func TestDeleteMatchReferencedByAppearance(t *testing.T) {
	app, db := newTestApp(t)

	country := models.Country{Name: "Germany"}
	if err := db.Create(&country).Error; err != nil {
		t.Fatalf("seed country: %v", err)
	}
	comp := models.Competition{Name: "Bundesliga", CountryID: country.ID}
	if err := db.Create(&comp).Error; err != nil {
		t.Fatalf("seed competition: %v", err)
	}
	home := models.Club{Name: "Bayern", CountryID: country.ID}
	away := models.Club{Name: "Dortmund", CountryID: country.ID}
	db.Create(&home)
	db.Create(&away)

	match := models.Match{
		Date:          mustDate(t, "2024-03-30"),
		CompetitionID: comp.ID,
		HomeClubID:    home.ID,
		AwayClubID:    away.ID,
	}
	if err := db.Create(&match).Error; err != nil {
		t.Fatalf("seed match: %v", err)
	}
	player := models.Player{FirstName: "Harry", LastName: "Kane", BirthDate: mustDate(t, "1993-07-28")}
	if err := db.Create(&player).Error; err != nil {
		t.Fatalf("seed player: %v", err)
	}
	appearance := models.Appearance{MatchID: match.ID, PlayerID: player.ID, Goals: 2}
	if err := db.Create(&appearance).Error; err != nil {
		t.Fatalf("seed appearance: %v", err)
	}

	resp := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/matches/%d", match.ID), testToken, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("got status %d, want 409", resp.StatusCode)
	}
}
