package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"football-stats-api/models"
)

func TestCountryLifecycle(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/countries", testToken, map[string]interface{}{
		"name":       "Brazil",
		"flag_emoji": "🇧🇷",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got status %d, want 201", resp.StatusCode)
	}
	created := decodeMap(t, resp)
	if created["name"] != "Brazil" {
		t.Fatalf("create: got name %v, want Brazil", created["name"])
	}
	id := int(created["id"].(float64))
	if id == 0 {
		t.Fatal("create: expected a non-zero id")
	}

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/countries/%d", id), "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: got status %d, want 200", resp.StatusCode)
	}
	got := decodeMap(t, resp)
	if got["name"] != "Brazil" || got["flag_emoji"] != "🇧🇷" {
		t.Fatalf("get: unexpected body %v", got)
	}

	resp = doRequest(t, app, http.MethodGet, "/countries", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: got status %d, want 200", resp.StatusCode)
	}
	if list := decodeList(t, resp); len(list) != 1 {
		t.Fatalf("list: got %d countries, want 1", len(list))
	}

	resp = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/countries/%d", id), testToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: got status %d, want 200", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/countries/%d", id), "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete: got status %d, want 404", resp.StatusCode)
	}
}

func TestCountryPartialUpdate(t *testing.T) {
	app, db := newTestApp(t)

	country := models.Country{Name: "Germany", FlagEmoji: "🇩🇪"}
	if err := db.Create(&country).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp := doRequest(t, app, http.MethodPut, fmt.Sprintf("/countries/%d", country.ID), testToken, map[string]interface{}{
		"flag_emoji": "🏳️",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: got status %d, want 200", resp.StatusCode)
	}
	updated := decodeMap(t, resp)
	if updated["name"] != "Germany" {
		t.Fatalf("update: name changed to %v, want Germany untouched", updated["name"])
	}
	if updated["flag_emoji"] != "🏳️" {
		t.Fatalf("update: got flag %v, want 🏳️", updated["flag_emoji"])
	}
}

func TestCreateCountryRequiresAuth(t *testing.T) {
	app, db := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/countries", "", map[string]interface{}{"name": "France"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodPost, "/countries", "bad-token", map[string]interface{}{"name": "France"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401 for invalid token", resp.StatusCode)
	}

	// Rejected auth must not touch the store.
	var n int64
	if err := db.Model(&models.Country{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("got %d rows after rejected auth, want 0", n)
	}
}

func TestCreateCountryValidation(t *testing.T) {
	app, db := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/countries", testToken, map[string]interface{}{"flag_emoji": "🏴"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}

	var n int64
	if err := db.Model(&models.Country{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("got %d rows after rejected payload, want 0", n)
	}
}

func TestDeleteCountryReferenced(t *testing.T) {
	app, db := newTestApp(t)

	country := models.Country{Name: "Spain"}
	if err := db.Create(&country).Error; err != nil {
		t.Fatalf("seed country: %v", err)
	}
	city := models.City{Name: "Madrid", CountryID: country.ID}
	if err := db.Create(&city).Error; err != nil {
		t.Fatalf("seed city: %v", err)
	}

	resp := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/countries/%d", country.ID), testToken, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("got status %d, want 409", resp.StatusCode)
	}

	var n int64
	if err := db.Model(&models.Country{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("referenced country was deleted")
	}
}

func TestCountryInvalidID(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/countries/abc", "", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodDelete, "/countries/999", testToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("got status %d, want 404 for missing row", resp.StatusCode)
	}
}
