package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestStreakFlow_WeeklyContributions(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "streaks@test.com", "password123")

	// Step 1: Create a weekly streak
	rec := app.request("POST", "/api/v1/streaks",
		`{"challenge_name":"52 Week Challenge","target_amount":137800,"frequency":"weekly"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	streak := result["streak"].(map[string]interface{})
	streakID := streak["id"].(float64)
	if streak["current_streak"].(float64) != 0 {
		t.Errorf("expected fresh streak at 0, got %v", streak["current_streak"])
	}

	// Step 2: Record a contribution one week ago
	lastWeek := time.Now().UTC().AddDate(0, 0, -7).Format(time.RFC3339)
	body := fmt.Sprintf(`{"amount":1000,"save_date":%q}`, lastWeek)
	rec = app.request("POST", fmt.Sprintf("/api/v1/streaks/%.0f/entries", streakID), body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first entry failed: %d %s", rec.Code, rec.Body.String())
	}

	// Step 3: Record this week's contribution; the chain extends
	rec = app.request("POST", fmt.Sprintf("/api/v1/streaks/%.0f/entries", streakID),
		`{"amount":2000}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("second entry failed: %d %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	streak = result["streak"].(map[string]interface{})
	if streak["current_streak"].(float64) != 2 {
		t.Errorf("expected current streak 2, got %v", streak["current_streak"])
	}
	if streak["longest_streak"].(float64) != 2 {
		t.Errorf("expected longest streak 2, got %v", streak["longest_streak"])
	}
	if streak["total_saved"].(float64) != 3000 {
		t.Errorf("expected total saved 3000, got %v", streak["total_saved"])
	}
	entry := result["entry"].(map[string]interface{})
	if entry["amount"].(float64) != 2000 {
		t.Errorf("expected entry amount 2000, got %v", entry["amount"])
	}

	// Step 4: Entries list, most recent first
	rec = app.request("GET", fmt.Sprintf("/api/v1/streaks/%.0f/entries", streakID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("entries list failed: %d %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	data := result["data"].([]interface{})
	if len(data) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(data))
	}
	first := data[0].(map[string]interface{})
	if first["amount"].(float64) != 2000 {
		t.Errorf("expected most recent entry first, got amount %v", first["amount"])
	}

	// Step 5: Delete the streak; its entries go with it
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/streaks/%.0f", streakID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", fmt.Sprintf("/api/v1/streaks/%.0f/entries", streakID), "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for entries of a deleted streak, got %d", rec.Code)
	}
}

func TestStreakFlow_DailyConsecutiveDays(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "gaps@test.com", "password123")

	rec := app.request("POST", "/api/v1/streaks",
		`{"challenge_name":"Daily saver","target_amount":50000,"frequency":"daily"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	streakID := parseJSON(t, rec)["streak"].(map[string]interface{})["id"].(float64)

	// Two consecutive days ending today
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(time.RFC3339)
	rec = app.request("POST", fmt.Sprintf("/api/v1/streaks/%.0f/entries", streakID),
		fmt.Sprintf(`{"amount":500,"save_date":%q}`, yesterday), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("entry failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("POST", fmt.Sprintf("/api/v1/streaks/%.0f/entries", streakID),
		`{"amount":500}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("entry failed: %d %s", rec.Code, rec.Body.String())
	}
	streak := parseJSON(t, rec)["streak"].(map[string]interface{})
	if streak["current_streak"].(float64) != 2 || streak["longest_streak"].(float64) != 2 {
		t.Fatalf("expected streak 2/2, got %v/%v", streak["current_streak"], streak["longest_streak"])
	}
}

func TestStreakFlow_InvalidFrequencyRejected(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "badfreq@test.com", "password123")

	rec := app.request("POST", "/api/v1/streaks",
		`{"challenge_name":"Fortnightly","target_amount":10000,"frequency":"fortnightly"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown frequency, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestStreakFlow_OwnershipIsolation(t *testing.T) {
	app := setupApp(t)
	aliceToken, _ := app.registerUser(t, "alice-streak@test.com", "password123")
	bobToken, _ := app.registerUser(t, "bob-streak@test.com", "password123")

	rec := app.request("POST", "/api/v1/streaks",
		`{"challenge_name":"Private","target_amount":10000,"frequency":"monthly"}`, aliceToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	streakID := parseJSON(t, rec)["streak"].(map[string]interface{})["id"].(float64)

	rec = app.request("POST", fmt.Sprintf("/api/v1/streaks/%.0f/entries", streakID),
		`{"amount":1000}`, bobToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 adding to a foreign streak, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "STREAK_NOT_FOUND" {
		t.Errorf("expected STREAK_NOT_FOUND, got %v", errObj["code"])
	}
}
