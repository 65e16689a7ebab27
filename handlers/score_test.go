package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"football-stats-api/models"
)

func TestRegisterUserHidesPassword(t *testing.T) {
	app, db := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/users", "", map[string]interface{}{
		"username": "wordle_fan",
		"email":    "fan@example.com",
		"password": "s3cret-pass",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: got status %d, want 201", resp.StatusCode)
	}
	body := decodeMap(t, resp)
	user := body["user"].(map[string]interface{})
	if user["username"] != "wordle_fan" {
		t.Fatalf("register: unexpected username %v", user["username"])
	}
	if _, ok := user["password"]; ok {
		t.Fatal("register: password echoed back")
	}
	if _, ok := user["password_hash"]; ok {
		t.Fatal("register: password hash echoed back")
	}

	// The stored hash must not be the plaintext password.
	var stored models.User
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "s3cret-pass" {
		t.Fatalf("password stored without hashing")
	}

	// Fetching the user must not leak the hash either.
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/users/%d", stored.ID), "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get user: got status %d, want 200", resp.StatusCode)
	}
	got := decodeMap(t, resp)
	if _, ok := got["password_hash"]; ok {
		t.Fatal("get user: password hash leaked")
	}
}

func TestRegisterUserDuplicate(t *testing.T) {
	app, _ := newTestApp(t)

	payload := map[string]interface{}{
		"username": "streaker",
		"email":    "streaker@example.com",
		"password": "pw123456",
	}
	resp := doRequest(t, app, http.MethodPost, "/users", "", payload)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first register: got status %d, want 201", resp.StatusCode)
	}
	resp = doRequest(t, app, http.MethodPost, "/users", "", payload)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register: got status %d, want 409", resp.StatusCode)
	}
}

func TestCreateScoreRequiresAuth(t *testing.T) {
	app, db := newTestApp(t)

	user := models.User{Username: "guesser", Email: "g@example.com", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	resp := doRequest(t, app, http.MethodPost, "/scores", "", map[string]interface{}{
		"user_id": user.ID,
		"score":   8,
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", resp.StatusCode)
	}

	var n int64
	if err := db.Model(&models.Score{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("score recorded despite missing token")
	}
}

func TestScoreUsernameExpansion(t *testing.T) {
	app, db := newTestApp(t)

	user := models.User{Username: "top_scorer", Email: "top@example.com", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	resp := doRequest(t, app, http.MethodPost, "/scores", testToken, map[string]interface{}{
		"user_id":   user.ID,
		"score":     12,
		"game_date": "2024-06-01",
		"streak":    3,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create score: got status %d, want 201", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodGet, "/scores", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list scores: got status %d, want 200", resp.StatusCode)
	}
	list := decodeList(t, resp)
	if len(list) != 1 {
		t.Fatalf("got %d scores, want 1", len(list))
	}
	if list[0]["username"] != "top_scorer" {
		t.Fatalf("expansion: got username %v, want top_scorer", list[0]["username"])
	}
	if int(list[0]["score"].(float64)) != 12 {
		t.Fatalf("got score %v, want 12", list[0]["score"])
	}
}

func TestCreateScoreUnknownUser(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/scores", testToken, map[string]interface{}{
		"user_id": 404,
		"score":   5,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	app, db := newTestApp(t)

	user := models.User{Username: "grinder", Email: "grind@example.com", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	for _, points := range []int{4, 19, 11} {
		score := models.Score{UserID: user.ID, Score: points, GameDate: mustDate(t, "2024-06-01")}
		if err := db.Create(&score).Error; err != nil {
			t.Fatalf("seed score: %v", err)
		}
	}

	resp := doRequest(t, app, http.MethodGet, "/scores/leaderboard?limit=2", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}
	list := decodeList(t, resp)
	if len(list) != 2 {
		t.Fatalf("got %d entries, want 2", len(list))
	}
	first := int(list[0]["score"].(float64))
	second := int(list[1]["score"].(float64))
	if first != 19 || second != 11 {
		t.Fatalf("got order [%d, %d], want [19, 11]", first, second)
	}
}
