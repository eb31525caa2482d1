package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	echoapi "github.com/trezcool/missingwork/apps/api/echo"
	"github.com/trezcool/missingwork/core/profile"
	"github.com/trezcool/missingwork/tests"
)

func TestSetupGate(t *testing.T) {
	srv, _ := newServer(t, false)
	setupRequired := httpErr{Error: "setup required"}

	runHTTPTests(t, srv, []httpTest{
		{name: "home", method: http.MethodGet, path: "/", wantCode: http.StatusOK},
		{name: "profile", method: http.MethodGet, path: "/api/profile", wantCode: http.StatusOK, wantData: echoapi.ProfileResponse{}},
		{name: "grades", method: http.MethodGet, path: "/api/grades", wantCode: http.StatusForbidden, wantData: setupRequired},
		{name: "create grade", method: http.MethodPost, path: "/api/grades", body: map[string]int{"number": 5}, wantCode: http.StatusForbidden, wantData: setupRequired},
		{name: "students", method: http.MethodGet, path: "/api/students", wantCode: http.StatusForbidden, wantData: setupRequired},
		{name: "assignments", method: http.MethodGet, path: "/api/assignments", wantCode: http.StatusForbidden, wantData: setupRequired},
		{name: "overview", method: http.MethodGet, path: "/api/overview", wantCode: http.StatusForbidden, wantData: setupRequired},
		{name: "unknown route", method: http.MethodGet, path: "/api/lol", wantCode: http.StatusForbidden, wantData: setupRequired},
	})
}

func TestProfileAPI(t *testing.T) {
	srv, _ := newServer(t, false)
	want := profile.Profile{Name: "Ms. Frizzle", AppName: "Magic Bus", Logo: testutil.Logo}

	runHTTPTests(t, srv, []httpTest{
		{
			name:     "incomplete",
			method:   http.MethodPost,
			path:     "/api/profile",
			body:     map[string]string{"name": "Ms. Frizzle"},
			wantCode: http.StatusBadRequest,
			wantData: httpErr{
				Error: profile.ErrIncompleteSetup.Error(),
				Fields: map[string]string{
					"appName":    "this field cannot be blank",
					"schoolLogo": "this field cannot be blank",
				},
			},
		},
		{
			name:     "complete",
			method:   http.MethodPost,
			path:     "/api/profile",
			body:     map[string]string{"name": "Ms. Frizzle", "appName": "Magic Bus", "schoolLogo": testutil.Logo},
			wantCode: http.StatusCreated,
			wantData: echoapi.ProfileResponse{Configured: true, Profile: &want},
		},
		{
			name:     "again",
			method:   http.MethodPost,
			path:     "/api/profile",
			body:     map[string]string{"name": "Other", "appName": "Other", "schoolLogo": testutil.Logo},
			wantCode: http.StatusConflict,
			wantData: httpErr{Error: profile.ErrAlreadyConfigured.Error()},
		},
		{name: "get", method: http.MethodGet, path: "/api/profile", wantCode: http.StatusOK, wantData: echoapi.ProfileResponse{Configured: true, Profile: &want}},
		{name: "gate lifted", method: http.MethodGet, path: "/api/grades", wantCode: http.StatusOK, wantData: []interface{}{}},
	})
}

func TestProfileAPI_multipart(t *testing.T) {
	srv, app := newServer(t, false)

	rec := doMultipart(t, srv, "/api/profile",
		map[string]string{"name": "Ms. Frizzle", "appName": "Magic Bus"},
		formFile{field: "schoolLogo", name: "logo.png", data: pngBytes(t)},
	)
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %d, want %d (%s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	p, err := app.Profiles.Get(ctx)
	if assert.NoError(t, err) {
		assert.Regexp(t, `^data:image/png;base64,`, p.Logo)
	}
}
