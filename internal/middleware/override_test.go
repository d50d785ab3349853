package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureMethod(seen *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = r.Method
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestMethodOverride_QueryParam(t *testing.T) {
	var seen string
	handler := MethodOverride(captureMethod(&seen))

	req := httptest.NewRequest(http.MethodPost, "/listings/1?_method=DELETE", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, http.MethodDelete, seen)
}

func TestMethodOverride_FormBody(t *testing.T) {
	var seen string
	handler := MethodOverride(captureMethod(&seen))

	form := url.Values{"_method": {"PUT"}, "title": {"Cozy cabin"}}
	req := httptest.NewRequest(http.MethodPost, "/listings/1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, http.MethodPut, seen)
}

func TestMethodOverride_KeepsFormValuesReadable(t *testing.T) {
	var title string
	handler := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title = r.PostFormValue("title")
	}))

	form := url.Values{"_method": {"PUT"}, "title": {"Cozy cabin"}}
	req := httptest.NewRequest(http.MethodPost, "/listings/1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, "Cozy cabin", title)
}

func TestMethodOverride_IgnoresUnknownMethod(t *testing.T) {
	var seen string
	handler := MethodOverride(captureMethod(&seen))

	req := httptest.NewRequest(http.MethodPost, "/listings?_method=TRACE", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, http.MethodPost, seen)
}

func TestMethodOverride_LeavesGetAlone(t *testing.T) {
	var seen string
	handler := MethodOverride(captureMethod(&seen))

	req := httptest.NewRequest(http.MethodGet, "/listings?_method=DELETE", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, http.MethodGet, seen)
}
