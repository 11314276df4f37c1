// internal/api/activities/handler_test.go
package activities

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/registry"
	"mergington-activities/pkg/catalog"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		IndexRedirect: "/static/index.html",
	}
}

func newTestMux(t *testing.T) (*http.ServeMux, *registry.Registry) {
	t.Helper()

	reg, err := registry.New(catalog.Default())
	require.NoError(t, err)

	mux := http.NewServeMux()
	NewHandler(createTestConfig(), reg, logger.NewTestLogger(t)).Register(mux)
	return mux, reg
}

func newFullActivityMux(t *testing.T) *http.ServeMux {
	t.Helper()

	cat := &catalog.Catalog{
		Version: "1.0.0",
		Activities: []catalog.Entry{
			{
				Name:            "Debate Team",
				Description:     "Develop public speaking and argumentation skills",
				Schedule:        "Wednesdays, 4:00 PM - 5:30 PM",
				MaxParticipants: 2,
				Participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
			},
		},
	}
	reg, err := registry.New(cat)
	require.NoError(t, err)

	mux := http.NewServeMux()
	NewHandler(createTestConfig(), reg, logger.NewTestLogger(t)).Register(mux)
	return mux
}

func doRequest(t *testing.T, mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// signupURL builds the signup target the way a browser would: the name
// percent-encoded in the path, the email percent-encoded in the query.
func signupURL(name, email string) string {
	return "/activities/" + url.PathEscape(name) + "/signup?" + url.Values{"email": {email}}.Encode()
}

func unregisterURL(name, email string) string {
	return "/activities/" + url.PathEscape(name) + "/participants/" + url.PathEscape(email)
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func decodeActivities(t *testing.T, rec *httptest.ResponseRecorder) map[string]map[string]interface{} {
	t.Helper()

	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func participants(t *testing.T, activities map[string]map[string]interface{}, name string) []string {
	t.Helper()

	act, ok := activities[name]
	require.True(t, ok, "missing activity %q", name)

	raw, ok := act["participants"].([]interface{})
	require.True(t, ok, "participants of %q is not a list", name)

	out := make([]string, len(raw))
	for i, p := range raw {
		out[i] = p.(string)
	}
	return out
}

// ==========================
// Index Tests
// ==========================

func TestHandler_Index_RedirectsToStatic(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodGet, "/")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/static/index.html", rec.Header().Get("Location"))
}

// ==========================
// List Tests
// ==========================

func TestHandler_List_ReturnsAllActivities(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodGet, "/activities")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	activities := decodeActivities(t, rec)
	assert.Len(t, activities, 9)

	for name, act := range activities {
		assert.Contains(t, act, "description", "activity %q", name)
		assert.Contains(t, act, "schedule", "activity %q", name)
		assert.Contains(t, act, "max_participants", "activity %q", name)
		assert.Contains(t, act, "participants", "activity %q", name)
	}

	chess := participants(t, activities, "Chess Club")
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, chess)
}

func TestHandler_List_KeepsCatalogOrder(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rec.Code)

	var names []string
	for _, e := range catalog.Default().Activities {
		names = append(names, e.Name)
	}
	assert.Equal(t, names, responseKeys(t, rec.Body.Bytes()))
}

// responseKeys walks the raw token stream so key order survives decoding.
func responseKeys(t *testing.T, data []byte) []string {
	t.Helper()

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	require.NoError(t, err)
	require.Equal(t, json.Delim('{'), tok)

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, tok.(string))

		var value json.RawMessage
		require.NoError(t, dec.Decode(&value))
	}
	return keys
}

// ==========================
// Signup Tests
// ==========================

func TestHandler_Signup_Success(t *testing.T) {
	mux, reg := newTestMux(t)

	rec := doRequest(t, mux, http.MethodPost, signupURL("Basketball Team", "student@mergington.edu"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Signed up student@mergington.edu for Basketball Team", decodeMessage(t, rec))

	act, err := reg.Activity("Basketball Team")
	require.NoError(t, err)
	assert.Contains(t, act.Participants, "student@mergington.edu")
}

func TestHandler_Signup_AddsToParticipants(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodPost, signupURL("Art Club", "artist@mergington.edu"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, participants(t, decodeActivities(t, rec), "Art Club"), "artist@mergington.edu")
}

func TestHandler_Signup_UnknownActivity(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodPost, signupURL("Nonexistent Activity", "student@mergington.edu"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Activity not found", decodeDetail(t, rec))
}

func TestHandler_Signup_NameIsCaseSensitive(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodPost, signupURL("basketball team", "student@mergington.edu"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Activity not found", decodeDetail(t, rec))
}

func TestHandler_Signup_Duplicate(t *testing.T) {
	mux, _ := newTestMux(t)
	target := signupURL("Soccer Club", "duplicate@mergington.edu")

	rec := doRequest(t, mux, http.MethodPost, target)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodPost, target)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeDetail(t, rec), "already signed up")
}

func TestHandler_Signup_MissingEmail(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodPost, "/activities/Chess%20Club/signup")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email query parameter is required", decodeDetail(t, rec))

	// An empty value counts as missing too.
	rec = doRequest(t, mux, http.MethodPost, "/activities/Chess%20Club/signup?email=")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email query parameter is required", decodeDetail(t, rec))
}

func TestHandler_Signup_FullActivity(t *testing.T) {
	mux := newFullActivityMux(t)

	rec := doRequest(t, mux, http.MethodPost, signupURL("Debate Team", "latecomer@mergington.edu"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Activity is full", decodeDetail(t, rec))
}

func TestHandler_Signup_EmailWithPlusSign(t *testing.T) {
	mux, reg := newTestMux(t)

	rec := doRequest(t, mux, http.MethodPost, signupURL("Chess Club", "student+tag@mergington.edu"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Signed up student+tag@mergington.edu for Chess Club", decodeMessage(t, rec))

	act, err := reg.Activity("Chess Club")
	require.NoError(t, err)
	assert.Contains(t, act.Participants, "student+tag@mergington.edu")
}

func TestHandler_Signup_MultipleActivities(t *testing.T) {
	mux, _ := newTestMux(t)
	email := "versatile@mergington.edu"

	for _, name := range []string{"Basketball Team", "Art Club", "Chess Club"} {
		rec := doRequest(t, mux, http.MethodPost, signupURL(name, email))
		require.Equal(t, http.StatusOK, rec.Code, "signup for %q", name)
	}

	rec := doRequest(t, mux, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rec.Code)

	activities := decodeActivities(t, rec)
	for _, name := range []string{"Basketball Team", "Art Club", "Chess Club"} {
		assert.Contains(t, participants(t, activities, name), email)
	}
}

func TestHandler_Signup_MethodNotAllowed(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodGet, signupURL("Chess Club", "student@mergington.edu"))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// ==========================
// Unregister Tests
// ==========================

func TestHandler_Unregister_Success(t *testing.T) {
	mux, _ := newTestMux(t)
	email := "leaver@mergington.edu"

	rec := doRequest(t, mux, http.MethodPost, signupURL("Drama Club", email))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodDelete, unregisterURL("Drama Club", email))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Unregistered leaver@mergington.edu from Drama Club", decodeMessage(t, rec))
}

func TestHandler_Unregister_RemovesFromParticipants(t *testing.T) {
	mux, _ := newTestMux(t)
	email := "transient@mergington.edu"

	rec := doRequest(t, mux, http.MethodPost, signupURL("Math Club", email))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodDelete, unregisterURL("Math Club", email))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, participants(t, decodeActivities(t, rec), "Math Club"), email)
}

func TestHandler_Unregister_UnknownActivity(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodDelete, unregisterURL("Nonexistent Activity", "student@test.com"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Activity not found", decodeDetail(t, rec))
}

func TestHandler_Unregister_NotRegistered(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodDelete, unregisterURL("Basketball Team", "notregistered@test.com"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeDetail(t, rec), "not registered")
}

func TestHandler_Unregister_SeededParticipant(t *testing.T) {
	mux, reg := newTestMux(t)

	rec := doRequest(t, mux, http.MethodDelete, unregisterURL("Chess Club", "michael@mergington.edu"))
	assert.Equal(t, http.StatusOK, rec.Code)

	act, err := reg.Activity("Chess Club")
	require.NoError(t, err)
	assert.Equal(t, []string{"daniel@mergington.edu"}, act.Participants)
}

func TestHandler_SignupUnregisterRoundTrip(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(t, mux, http.MethodPost, signupURL("Chess Club", "rotation@mergington.edu"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodDelete, unregisterURL("Chess Club", "michael@mergington.edu"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rec.Code)

	// Remaining seed keeps its slot; the new signup stays appended after it.
	chess := participants(t, decodeActivities(t, rec), "Chess Club")
	assert.Equal(t, []string{"daniel@mergington.edu", "rotation@mergington.edu"}, chess)
}
