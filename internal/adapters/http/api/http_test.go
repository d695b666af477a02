package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/unirank/unirank/internal/adapters/http/api"
	"github.com/unirank/unirank/internal/adapters/repository"
)

type fakeProvider struct {
	stats repository.Stats
	years []int
}

func (p *fakeProvider) Stats(context.Context) repository.Stats { return p.stats }
func (p *fakeProvider) Years(context.Context) []int            { return p.years }

func newMux() *http.ServeMux {
	provider := &fakeProvider{
		stats: repository.Stats{Records: 14, Universities: 9, Years: 2, Countries: 5},
		years: []int{2024, 2025},
	}
	mux := http.NewServeMux()
	api.NewServer(provider).Register(context.Background(), mux)
	return mux
}

func TestStatsEndpoint(t *testing.T) {
	mux := newMux()

	Convey("Given the operational HTTP server", t, func() {
		Convey("GET /stats returns the dataset counters", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")

			var body struct {
				Dataset repository.Stats `json:"dataset"`
				Years   []int            `json:"years"`
			}
			So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
			So(body.Dataset.Records, ShouldEqual, 14)
			So(body.Years, ShouldResemble, []int{2024, 2025})
		})

		Convey("POST /stats is not found", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/stats", nil))
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestHealthEndpoint(t *testing.T) {
	mux := newMux()

	Convey("Given the operational HTTP server", t, func() {
		Convey("GET /healthz serves the metrics registry", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
		})
	})
}
