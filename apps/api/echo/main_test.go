package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	echoapi "github.com/trezcool/missingwork/apps/api/echo"
	"github.com/trezcool/missingwork/tests"
)

var ctx = context.Background()

type httpErr struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     interface{}
	wantCode int
	wantData interface{}
}

func newServer(t *testing.T, configured bool) (*echoapi.Server, *testutil.App) {
	t.Helper()
	app := testutil.NewApp(t, nil)
	if configured {
		testutil.CompleteSetup(t, app.Profiles)
	}
	srv := echoapi.NewServer(&echoapi.Deps{
		Conf:           app.Conf,
		Logger:         app.Log,
		DisableReqLogs: true,
		GradeSvc:       app.Grades,
		StudentSvc:     app.Students,
		AssignmentSvc:  app.Assignments,
		ProfileSvc:     app.Profiles,
		RosterSvc:      app.Roster,
	})
	return srv, app
}

func marshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	if b, ok := v.([]byte); ok {
		return b
	}
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal(): %v", err)
	}
	return data
}

func doRequest(t *testing.T, srv http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader = http.NoBody
	if body != nil {
		r = bytes.NewReader(marshal(t, body))
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

type formFile struct {
	field, name string
	data        []byte
}

func doMultipart(t *testing.T, srv http.Handler, path string, fields map[string]string, files ...formFile) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatalf("CreateFormFile(): %v", err)
		}
		_, _ = fw.Write(f.data)
	}
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func runHTTPTests(t *testing.T, srv http.Handler, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, tt.method, tt.path, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("%s %s code = %d, want %d (%s)", tt.method, tt.path, rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantData != nil {
				assert.JSONEq(t, string(marshal(t, tt.wantData)), rec.Body.String())
			}
		})
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode(): %v", err)
	}
	return buf.Bytes()
}
