package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestExpenseFlow_CreateListUpdateDelete(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "expenses@test.com", "password123")

	date := time.Now().UTC().Format(time.RFC3339)

	// Step 1: Create an expense
	body := fmt.Sprintf(`{"description":"Weekly groceries","amount":4250,"category":"groceries","date":%q}`, date)
	rec := app.request("POST", "/api/v1/expenses", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	expense := result["expense"].(map[string]interface{})
	expenseID := expense["id"].(float64)
	if expense["amount"].(float64) != 4250 {
		t.Errorf("expected amount 4250, got %v", expense["amount"])
	}

	// Step 2: List includes it
	rec = app.request("GET", "/api/v1/expenses", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	data := result["data"].([]interface{})
	if len(data) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(data))
	}

	// Step 3: Partial update changes only the amount
	rec = app.request("PUT", fmt.Sprintf("/api/v1/expenses/%.0f", expenseID),
		`{"amount":3999}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	expense = result["expense"].(map[string]interface{})
	if expense["amount"].(float64) != 3999 {
		t.Errorf("expected amount 3999, got %v", expense["amount"])
	}
	if expense["description"] != "Weekly groceries" {
		t.Errorf("expected description untouched, got %v", expense["description"])
	}

	// Step 4: Delete, then fetch returns 404
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/expenses/%.0f", expenseID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", fmt.Sprintf("/api/v1/expenses/%.0f", expenseID), "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestExpenseFlow_OwnershipIsolation(t *testing.T) {
	app := setupApp(t)
	aliceToken, _ := app.registerUser(t, "alice@test.com", "password123")
	bobToken, _ := app.registerUser(t, "bob@test.com", "password123")

	date := time.Now().UTC().Format(time.RFC3339)
	body := fmt.Sprintf(`{"description":"Rent","amount":120000,"category":"housing","date":%q}`, date)
	rec := app.request("POST", "/api/v1/expenses", body, aliceToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	expenseID := result["expense"].(map[string]interface{})["id"].(float64)

	// Bob cannot see Alice's expense
	rec = app.request("GET", fmt.Sprintf("/api/v1/expenses/%.0f", expenseID), "", bobToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign expense, got %d: %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "EXPENSE_NOT_FOUND" {
		t.Errorf("expected EXPENSE_NOT_FOUND, got %v", errObj["code"])
	}

	// Bob cannot delete it either, and it survives the attempt
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/expenses/%.0f", expenseID), "", bobToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting foreign expense, got %d", rec.Code)
	}
	rec = app.request("GET", fmt.Sprintf("/api/v1/expenses/%.0f", expenseID), "", aliceToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected owner to still see the expense, got %d", rec.Code)
	}

	// Bob's own list is empty
	rec = app.request("GET", "/api/v1/expenses", "", bobToken)
	result = parseJSON(t, rec)
	if data := result["data"].([]interface{}); len(data) != 0 {
		t.Errorf("expected empty list for bob, got %d items", len(data))
	}
}

func TestExpenseFlow_CategoryFilter(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "filter@test.com", "password123")

	date := time.Now().UTC().Format(time.RFC3339)
	for _, category := range []string{"groceries", "transport", "groceries"} {
		body := fmt.Sprintf(`{"description":"Item","amount":1000,"category":%q,"date":%q}`, category, date)
		rec := app.request("POST", "/api/v1/expenses", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec := app.request("GET", "/api/v1/expenses?category=groceries", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	data := result["data"].([]interface{})
	if len(data) != 2 {
		t.Fatalf("expected 2 grocery expenses, got %d", len(data))
	}
	if result["total_items"].(float64) != 2 {
		t.Errorf("expected total_items 2, got %v", result["total_items"])
	}
}
