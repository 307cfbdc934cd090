package handlers_test

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func TestAdminGuard(t *testing.T) {
	app, deps, _ := newTestApp(t)

	// anonymous -> 401
	resp, err := app.Test(jsonReq("GET", "/api/admin/stats", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	// plain user -> 403
	userTok, _ := registerAndLogin(t, app, "Sagal", "sagal@example.com")
	req := jsonReq("GET", "/api/admin/stats", "")
	req.Header.Set("Authorization", "Bearer "+userTok)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", resp.StatusCode)
	}

	// admin -> 200 with all counters
	admTok, err := deps.Tokens.Issue("u-admin", "admin")
	if err != nil {
		t.Fatal(err)
	}
	req = jsonReq("GET", "/api/admin/stats", "")
	req.Header.Set("Authorization", "Bearer "+admTok)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp.StatusCode)
	}
	m := decodeBody(t, resp)
	for _, k := range []string{"products", "orders", "users", "revenue"} {
		if _, ok := m[k]; !ok {
			t.Fatalf("stats missing %q: %v", k, m)
		}
	}
}

func TestAdminSettingsDefaultsAndPatch(t *testing.T) {
	app, deps, _ := newTestApp(t)
	admTok, err := deps.Tokens.Issue("u-admin", "admin")
	if err != nil {
		t.Fatal(err)
	}

	req := jsonReq("GET", "/api/admin/settings", "")
	req.Header.Set("Authorization", "Bearer "+admTok)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("settings get: %d", resp.StatusCode)
	}
	m := decodeBody(t, resp)
	if m["deliveryFee"] != float64(10) || m["discountPercent"] != float64(0) || m["minOrderForDiscount"] != float64(100) {
		t.Fatalf("unexpected defaults: %v", m)
	}

	// patch only one field
	req = jsonReq("PUT", "/api/admin/settings", `{"discountPercent":5}`)
	req.Header.Set("Authorization", "Bearer "+admTok)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	m = decodeBody(t, resp)
	if m["discountPercent"] != float64(5) || m["deliveryFee"] != float64(10) {
		t.Fatalf("patch touched wrong fields: %v", m)
	}
}

func TestAdminOrderStatusValidation(t *testing.T) {
	app, deps, _ := newTestApp(t)
	admTok, err := deps.Tokens.Issue("u-admin", "admin")
	if err != nil {
		t.Fatal(err)
	}

	// place an order to mutate
	resp, err := app.Test(jsonReq("POST", "/api/orders",
		`{"items":[{"title":"x","price":10,"qty":1}],"subtotal":10,"total":10}`))
	if err != nil {
		t.Fatal(err)
	}
	orderID, _ := decodeBody(t, resp)["id"].(string)
	if orderID == "" {
		t.Fatal("no order id")
	}

	send := func(body string) *http.Response {
		t.Helper()
		req := jsonReq("PUT", "/api/admin/orders/status", body)
		req.Header.Set("Authorization", "Bearer "+admTok)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	if resp := send(`{"orderId":"` + orderID + `","status":"Shipped"}`); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status, got %d", resp.StatusCode)
	}
	if resp := send(`{"orderId":"o-missing","status":"Delivered"}`); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d", resp.StatusCode)
	}
	resp = send(`{"orderId":"` + orderID + `","status":"Delivered"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if m := decodeBody(t, resp); m["status"] != "Delivered" {
		t.Fatalf("status not updated: %v", m["status"])
	}
}

func TestAdminCategoryRenameAndDelete(t *testing.T) {
	app, deps, db := newTestApp(t)
	admTok, err := deps.Tokens.Issue("u-admin", "admin")
	if err != nil {
		t.Fatal(err)
	}

	send := func(method, target, body string) *http.Response {
		t.Helper()
		req := jsonReq(method, target, body)
		req.Header.Set("Authorization", "Bearer "+admTok)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	// seeded catalog has two Groceries products
	resp := send("POST", "/api/admin/categories/rename", `{"oldName":"Groceries","newName":"Pantry"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("rename: %d", resp.StatusCode)
	}
	if m := decodeBody(t, resp); m["modifiedCount"] != float64(2) {
		t.Fatalf("expected 2 renamed, got %v", m["modifiedCount"])
	}

	if resp := send("POST", "/api/admin/categories/rename", `{"oldName":"Pantry"}`); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing newName, got %d", resp.StatusCode)
	}

	resp = send("POST", "/api/admin/categories/delete", `{"name":"Pantry"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: %d", resp.StatusCode)
	}
	if m := decodeBody(t, resp); m["modifiedCount"] != float64(2) {
		t.Fatalf("expected 2 cleared, got %v", m["modifiedCount"])
	}

	// product rows survive with an empty category
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products WHERE category=''`); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 uncategorized products, got %d", n)
	}
}

func TestAdminUserManagement(t *testing.T) {
	app, deps, _ := newTestApp(t)
	admTok, err := deps.Tokens.Issue("u-admin", "admin")
	if err != nil {
		t.Fatal(err)
	}
	_, userID := registerAndLogin(t, app, "Sagal", "sagal@example.com")

	send := func(method, target, body string) *http.Response {
		t.Helper()
		req := jsonReq(method, target, body)
		req.Header.Set("Authorization", "Bearer "+admTok)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	// listing never exposes password material
	resp := send("GET", "/api/admin/users", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("users list: %d", resp.StatusCode)
	}
	raw := readAll(t, resp)
	if containsAny(raw, "password_hash", "\"password\"", "$2a$", "$2b$") {
		t.Fatalf("user listing leaks password material: %s", raw)
	}

	// role promotion
	resp = send("PUT", "/api/admin/users/"+userID, `{"role":"admin"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update user: %d", resp.StatusCode)
	}
	if m := decodeBody(t, resp); m["role"] != "admin" {
		t.Fatalf("role not updated: %v", m["role"])
	}

	if resp := send("PUT", "/api/admin/users/u-missing", `{"name":"x"}`); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", resp.StatusCode)
	}

	resp = send("DELETE", "/api/admin/users/"+userID, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete user: %d", resp.StatusCode)
	}
	if resp := send("DELETE", "/api/admin/users/"+userID, ""); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", resp.StatusCode)
	}
}
