// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ltungv/poll/models"
	"github.com/ltungv/poll/testutil"
)

func TestCreateItem(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name           string
		adminKey       string
		body           interface{}
		expectedStatus int
	}{
		{"valid item", env.adminKey, models.CreateItemRequest{Title: "Ramen", Content: "noodles"}, http.StatusCreated},
		{"missing title", env.adminKey, models.CreateItemRequest{Title: "  "}, http.StatusBadRequest},
		{"missing admin key", "", models.CreateItemRequest{Title: "Ramen"}, http.StatusUnauthorized},
		{"wrong admin key", "wrong", models.CreateItemRequest{Title: "Ramen"}, http.StatusUnauthorized},
		{"invalid JSON", env.adminKey, "not an object", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.adminKey != "" {
				headers[AdminKeyHeader] = tt.adminKey
			}
			w := httptest.NewRecorder()
			env.items.CreateItem(w, testutil.MakeRequest("POST", "/items", tt.body, headers))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusCreated {
				return
			}

			var resp models.CreateItemResponse
			testutil.AssertJSON(t, w, &resp)

			var title string
			if err := env.db.QueryRow(`SELECT title FROM items WHERE id = $1`, resp.ItemID).Scan(&title); err != nil {
				t.Fatalf("Created item not stored: %v", err)
			}
			if title != "Ramen" {
				t.Errorf("Expected title 'Ramen', got %q", title)
			}
		})
	}
}

func TestRetireAndRestoreItem(t *testing.T) {
	env := newTestEnv(t)
	item := testutil.CreateTestItem(t, env.db, "Pizza")

	call := func(handler http.HandlerFunc, itemID, adminKey string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/items/"+itemID+"/retire", nil, map[string]string{AdminKeyHeader: adminKey})
		req.SetPathValue("id", itemID)
		w := httptest.NewRecorder()
		handler(w, req)
		return w
	}
	done := func() bool {
		var done bool
		if err := env.db.QueryRow(`SELECT done FROM items WHERE id = $1`, item.ID).Scan(&done); err != nil {
			t.Fatal(err)
		}
		return done
	}

	w := call(env.items.RetireItem, item.ID, env.adminKey)
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.ItemStatusResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Done || !done() {
		t.Error("Expected item to be retired")
	}

	testutil.AssertStatus(t, call(env.items.RestoreItem, item.ID, env.adminKey), http.StatusOK)
	if done() {
		t.Error("Expected item to be restored")
	}

	testutil.AssertStatus(t, call(env.items.RetireItem, item.ID, "wrong"), http.StatusUnauthorized)
	testutil.AssertStatus(t, call(env.items.RetireItem, "missing", env.adminKey), http.StatusNotFound)
}

func TestListItems(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateTestItem(t, env.db, "Sushi")
	pizza := testutil.CreateTestItem(t, env.db, "Pizza")
	testutil.RetireTestItem(t, env.db, pizza.ID)

	w := httptest.NewRecorder()
	env.items.ListItems(w, testutil.MakeRequest("GET", "/items", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var items []models.Item
	testutil.AssertJSON(t, w, &items)

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	// Sorted by title; retired items are listed too
	if items[0].Title != "Pizza" || !items[0].Done {
		t.Errorf("Expected retired Pizza first, got %+v", items[0])
	}
	if items[1].Title != "Sushi" || items[1].Done {
		t.Errorf("Expected active Sushi second, got %+v", items[1])
	}
}
