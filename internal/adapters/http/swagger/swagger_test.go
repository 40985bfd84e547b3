package swagger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/clubrecords/internal/adapters/http/swagger"
	"github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v3"
)

func TestSwaggerHandler(t *testing.T) {
	convey.Convey("Given a registered handler", t, func() {
		mux := http.NewServeMux()
		swagger.Register(context.Background(), mux)

		convey.Convey("Then /openapi.yaml serves a document describing every route", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody))

			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")

			var doc struct {
				OpenAPI string         `yaml:"openapi"`
				Paths   map[string]any `yaml:"paths"`
			}
			convey.So(yaml.Unmarshal(w.Body.Bytes(), &doc), convey.ShouldBeNil)
			convey.So(doc.OpenAPI, convey.ShouldStartWith, "3.")
			for _, p := range []string{"/healthz", "/metrics", "/stats", "/leaderboards", "/leaderboards/{kind}/{category}/{event}/{gender}"} {
				convey.So(doc.Paths, convey.ShouldContainKey, p)
			}
		})
	})

	convey.Convey("Given a nil mux", t, func() {
		convey.So(func() { swagger.Register(context.Background(), nil) }, convey.ShouldPanic)
	})
}
