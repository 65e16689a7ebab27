package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"football-stats-api/models"
)

func TestTransferExpansion(t *testing.T) {
	app, db := newTestApp(t)

	country := models.Country{Name: "Portugal"}
	if err := db.Create(&country).Error; err != nil {
		t.Fatalf("seed country: %v", err)
	}
	from := models.Club{Name: "Benfica", CountryID: country.ID}
	to := models.Club{Name: "Porto", CountryID: country.ID}
	if err := db.Create(&from).Error; err != nil {
		t.Fatalf("seed club: %v", err)
	}
	if err := db.Create(&to).Error; err != nil {
		t.Fatalf("seed club: %v", err)
	}
	player := models.Player{FirstName: "João", LastName: "Félix", BirthDate: mustDate(t, "1999-11-10")}
	if err := db.Create(&player).Error; err != nil {
		t.Fatalf("seed player: %v", err)
	}

	resp := doRequest(t, app, http.MethodPost, "/transfers", testToken, map[string]interface{}{
		"player_id":     player.ID,
		"from_club_id":  from.ID,
		"to_club_id":    to.ID,
		"transfer_date": "2024-07-01",
		"fee":           45000000,
		"type":          models.TransferTypePermanent,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got status %d, want 201", resp.StatusCode)
	}
	created := decodeMap(t, resp)
	id := int(created["id"].(float64))

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/transfers/%d", id), "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: got status %d, want 200", resp.StatusCode)
	}
	got := decodeMap(t, resp)
	if got["player"] != "João Félix" {
		t.Fatalf("expansion: got player %v, want João Félix", got["player"])
	}
	if got["from_club"] != "Benfica" || got["to_club"] != "Porto" {
		t.Fatalf("expansion: unexpected clubs in %v", got)
	}
}

func TestCreateTransferFreeAgentSigning(t *testing.T) {
	app, db := newTestApp(t)

	country := models.Country{Name: "Spain"}
	if err := db.Create(&country).Error; err != nil {
		t.Fatalf("seed country: %v", err)
	}
	club := models.Club{Name: "Sevilla", CountryID: country.ID}
	if err := db.Create(&club).Error; err != nil {
		t.Fatalf("seed club: %v", err)
	}
	player := models.Player{FirstName: "Sergio", LastName: "Ramos", BirthDate: mustDate(t, "1986-03-30")}
	if err := db.Create(&player).Error; err != nil {
		t.Fatalf("seed player: %v", err)
	}

	// No from_club: the player arrives as a free agent.
	resp := doRequest(t, app, http.MethodPost, "/transfers", testToken, map[string]interface{}{
		"player_id":     player.ID,
		"to_club_id":    club.ID,
		"transfer_date": "2023-09-04",
		"type":          models.TransferTypeFree,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("got status %d, want 201", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodGet, "/transfers", "", nil)
	list := decodeList(t, resp)
	if len(list) != 1 {
		t.Fatalf("got %d transfers, want 1", len(list))
	}
	if list[0]["from_club"] != nil {
		t.Fatalf("got from_club %v, want null", list[0]["from_club"])
	}
}

func TestCreateTransferRequiresDate(t *testing.T) {
	app, db := newTestApp(t)

	player := models.Player{FirstName: "Luka", LastName: "Modrić", BirthDate: mustDate(t, "1985-09-09")}
	if err := db.Create(&player).Error; err != nil {
		t.Fatalf("seed player: %v", err)
	}

	resp := doRequest(t, app, http.MethodPost, "/transfers", testToken, map[string]interface{}{
		"player_id": player.ID,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}
}

func TestCareerStintLifecycle(t *testing.T) {
	app, db := newTestApp(t)

	country := models.Country{Name: "Netherlands"}
	if err := db.Create(&country).Error; err != nil {
		t.Fatalf("seed country: %v", err)
	}
	club := models.Club{Name: "Ajax", CountryID: country.ID}
	if err := db.Create(&club).Error; err != nil {
		t.Fatalf("seed club: %v", err)
	}
	player := models.Player{FirstName: "Frenkie", LastName: "de Jong", BirthDate: mustDate(t, "1997-05-12")}
	if err := db.Create(&player).Error; err != nil {
		t.Fatalf("seed player: %v", err)
	}

	resp := doRequest(t, app, http.MethodPost, "/careers", testToken, map[string]interface{}{
		"player_id":  player.ID,
		"club_id":    club.ID,
		"start_date": "2016-07-01",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got status %d, want 201", resp.StatusCode)
	}
	created := decodeMap(t, resp)
	id := int(created["id"].(float64))

	// Close the stint.
	resp = doRequest(t, app, http.MethodPut, fmt.Sprintf("/careers/%d", id), testToken, map[string]interface{}{
		"end_date": "2019-06-30",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("close: got status %d, want 200", resp.StatusCode)
	}
	closed := decodeMap(t, resp)
	if closed["end_date"] == nil {
		t.Fatal("close: end_date still null")
	}
	if closed["player"] != "Frenkie de Jong" || closed["club"] != "Ajax" {
		t.Fatalf("close: unexpected expansion %v", closed)
	}

	// An empty end_date reopens it.
	resp = doRequest(t, app, http.MethodPut, fmt.Sprintf("/careers/%d", id), testToken, map[string]interface{}{
		"end_date": "",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reopen: got status %d, want 200", resp.StatusCode)
	}
	reopened := decodeMap(t, resp)
	if reopened["end_date"] != nil {
		t.Fatalf("reopen: got end_date %v, want null", reopened["end_date"])
	}
}

func TestCreateCareerEndBeforeStart(t *testing.T) {
	app, db := newTestApp(t)

	country := models.Country{Name: "Croatia"}
	if err := db.Create(&country).Error; err != nil {
		t.Fatalf("seed country: %v", err)
	}
	club := models.Club{Name: "Dinamo Zagreb", CountryID: country.ID}
	if err := db.Create(&club).Error; err != nil {
		t.Fatalf("seed club: %v", err)
	}
	player := models.Player{FirstName: "Joško", LastName: "Gvardiol", BirthDate: mustDate(t, "2002-01-23")}
	if err := db.Create(&player).Error; err != nil {
		t.Fatalf("seed player: %v", err)
	}

	resp := doRequest(t, app, http.MethodPost, "/careers", testToken, map[string]interface{}{
		"player_id":  player.ID,
		"club_id":    club.ID,
		"start_date": "2020-07-01",
		"end_date":   "2019-06-30",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}
}
