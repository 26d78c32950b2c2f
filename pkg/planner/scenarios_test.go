package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/travigo/borderhop/pkg/config"
	"github.com/travigo/borderhop/pkg/corridor"
	"github.com/travigo/borderhop/pkg/ctdf"
	"github.com/travigo/borderhop/pkg/presenter"
)

type place struct {
	location ctdf.Location
	country  string
}

// fakeServices plays both the transit service and the geocoder
type fakeServices struct {
	mu sync.Mutex

	stations    map[string]place
	geocoded    map[string]place
	connections map[string]string

	failuresBeforeSuccess int32
	connectionCalls       int32

	connectionQueries []string
}

func (f *fakeServices) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/transit/locations", func(w http.ResponseWriter, r *http.Request) {
		station, ok := f.stations[r.URL.Query().Get("query")]
		if !ok {
			w.Write([]byte(`{"stations": []}`))
			return
		}

		json.NewEncoder(w).Encode(map[string]any{"stations": []ctdf.Location{station.location}})
	})

	mux.HandleFunc("/transit/connections", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&f.connectionCalls, 1) <= f.failuresBeforeSuccess {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		from := r.URL.Query().Get("from")
		to := r.URL.Query().Get("to")

		f.mu.Lock()
		f.connectionQueries = append(f.connectionQueries, to)
		f.mu.Unlock()

		if f.connections[from] != to {
			w.Write([]byte(`{"connections": []}`))
			return
		}

		departure := time.Date(2024, 5, 1, 10, 33, 0, 0, time.FixedZone("", 7200))
		connection := ctdf.Connection{
			From: ctdf.ConnectionLeg{
				Station:   f.stations[from].location,
				Departure: departure,
				Platform:  "14",
			},
			To: ctdf.ConnectionArrival{
				Station: f.stations[to].location,
				Arrival: departure.Add(2 * time.Hour),
			},
			Duration: 2 * time.Hour,
		}

		json.NewEncoder(w).Encode(map[string]any{"connections": []ctdf.Connection{connection}})
	})

	mux.HandleFunc("/geocoder/search", func(w http.ResponseWriter, r *http.Request) {
		geocoded, ok := f.geocoded[r.URL.Query().Get("q")]
		if !ok {
			w.Write([]byte(`[]`))
			return
		}

		json.NewEncoder(w).Encode([]map[string]string{{
			"lat":  strconv.FormatFloat(geocoded.location.Coordinate.Latitude, 'f', -1, 64),
			"lon":  strconv.FormatFloat(geocoded.location.Coordinate.Longitude, 'f', -1, 64),
			"name": geocoded.location.Name,
		}})
	})

	mux.HandleFunc("/geocoder/reverse", func(w http.ResponseWriter, r *http.Request) {
		latitude, _ := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		longitude, _ := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)

		for _, known := range f.stations {
			coordinate := known.location.Coordinate
			if math.Abs(coordinate.Latitude-latitude) < 1e-9 && math.Abs(coordinate.Longitude-longitude) < 1e-9 {
				json.NewEncoder(w).Encode(map[string]any{"address": map[string]string{"country_code": known.country}})
				return
			}
		}

		w.Write([]byte(`{"error": "Unable to geocode"}`))
	})

	return mux
}

func (f *fakeServices) queried(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, query := range f.connectionQueries {
		if query == name {
			return true
		}
	}

	return false
}

func knownPlace(id int, name string, latitude float64, longitude float64, country string) place {
	return place{
		location: ctdf.Location{
			ID:         id,
			Name:       name,
			Coordinate: &ctdf.Coordinate{Type: "WGS84", Latitude: latitude, Longitude: longitude},
		},
		country: country,
	}
}

type ScenarioSuite struct {
	suite.Suite

	services *fakeServices
	server   *httptest.Server
	cfg      config.AppConfig
}

func (s *ScenarioSuite) SetupTest() {
	s.services = &fakeServices{
		stations: map[string]place{
			"Zürich HB":     knownPlace(8503000, "Zürich HB", 47.377847, 8.540502, "ch"),
			"München Hbf":   knownPlace(8000261, "München Hbf", 48.140232, 11.558335, "de"),
			"Lindau-Insel":  knownPlace(8003693, "Lindau-Insel", 47.544549, 9.680914, "de"),
			"Stuttgart Hbf": knownPlace(8000096, "Stuttgart Hbf", 48.784081, 9.181636, "de"),
			"Basel SBB":     knownPlace(8500010, "Basel SBB", 47.547408, 7.589547, "ch"),
		},
		geocoded: map[string]place{
			"Oberstdorf": knownPlace(0, "Oberstdorf", 47.4096, 10.2795, "de"),
		},
		connections: map[string]string{},
	}
	s.server = httptest.NewServer(s.services.handler())

	dir := s.T().TempDir()

	stations := corridor.Snapshot{
		Version: corridor.SnapshotVersion,
		Origin:  "Zürich HB",
		Stations: corridor.ReachableStationSet{
			s.services.stations["Stuttgart Hbf"].location,
			s.services.stations["Lindau-Insel"].location,
			{ID: ctdf.GeocodedLocationID, Name: "Oberstdorf", Coordinate: s.services.geocoded["Oberstdorf"].location.Coordinate},
		},
	}
	stationsJSON, err := json.Marshal(stations)
	s.Require().NoError(err)
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "reachable_stations.json"), stationsJSON, 0o644))

	providersJSON := `{"DE": {"name": "Deutsche Bahn", "url": "https://www.bahn.de"}}`
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "local_providers.json"), []byte(providersJSON), 0o644))

	s.cfg = config.Default()
	s.cfg.Transit.BaseURL = s.server.URL + "/transit"
	s.cfg.Geocoder.BaseURL = s.server.URL + "/geocoder"
	s.cfg.HTTP.BackoffFactor = time.Millisecond
	s.cfg.Corridor.StationsFile = filepath.Join(dir, "reachable_stations.json")
	s.cfg.Providers.File = filepath.Join(dir, "local_providers.json")
}

func (s *ScenarioSuite) TearDownTest() {
	s.server.Close()
}

func (s *ScenarioSuite) plan(origin string, destination string) (*ctdf.RoutePlan, string) {
	services, err := Setup(s.cfg)
	s.Require().NoError(err)

	plan, err := services.Planner.Plan(context.Background(), origin, destination)
	s.Require().NoError(err)

	var output bytes.Buffer
	s.Require().NoError(presenter.Render(&output, plan))

	return plan, output.String()
}

func (s *ScenarioSuite) TestDirectConnection() {
	s.services.connections["Zürich HB"] = "München Hbf"

	plan, output := s.plan("Zürich HB", "München Hbf")

	s.True(plan.IsDirect())
	s.Equal(1, strings.Count(output, "(Direct)"))
	s.Contains(output, "From:      Zürich HB")
	s.Contains(output, "To:        München Hbf")
	s.Contains(output, "Departure: Wed 01 May 10:33")
	s.Contains(output, "Arrival:   Wed 01 May 12:33")
	s.Contains(output, "Duration:  2h00m")
	s.NotContains(output, "Coverage")
	s.NotContains(output, "Continue your journey")
}

func (s *ScenarioSuite) TestCorridorHit() {
	s.services.connections["Zürich HB"] = "Lindau-Insel"

	plan, output := s.plan("Zürich HB", "München Hbf")

	s.Require().Len(plan.Options, 1)
	s.Equal(1, strings.Count(output, "(Intermediate via Lindau-Insel)"))
	s.False(s.services.queried("Stuttgart Hbf"))

	option := plan.Options[0]
	s.InDelta(87.7, option.CoveredKm, 0.5)
	s.InDelta(241.0, option.TotalKm, 0.5)
	s.InDelta(option.CoveredKm/option.TotalKm*100, option.Percentage, 1e-9)
	s.Contains(output, "Continue your journey from Lindau-Insel using Deutsche Bahn")
}

func (s *ScenarioSuite) TestGeocoderFallback() {
	s.services.connections["Zürich HB"] = "Lindau-Insel"

	plan, output := s.plan("Zürich HB", "Oberstdorf")

	s.Equal(ctdf.GeocodedLocationID, plan.Destination.ID)
	s.Require().NotNil(plan.Destination.Coordinate)
	s.Require().Len(plan.Options, 1)
	s.Greater(plan.Options[0].TotalKm, 100.0)

	for _, option := range plan.Options {
		s.NotEqual(ctdf.GeocodedLocationID, option.Connection.To.Station.ID)
	}

	s.Contains(output, "(Intermediate via Lindau-Insel)")
	s.NotContains(output, "(Intermediate via Oberstdorf)")
}

func (s *ScenarioSuite) TestRetryThenSuccess() {
	s.services.connections["Zürich HB"] = "München Hbf"
	s.services.failuresBeforeSuccess = 3

	plan, _ := s.plan("Zürich HB", "München Hbf")

	s.True(plan.IsDirect())
	s.Equal(int32(4), atomic.LoadInt32(&s.services.connectionCalls))
}

func (s *ScenarioSuite) TestEmptyStationCache() {
	s.Require().NoError(os.WriteFile(s.cfg.Corridor.StationsFile, []byte(`{"version": 1, "stations": []}`), 0o644))

	plan, output := s.plan("Zürich HB", "München Hbf")

	s.Equal(ctdf.PlanStateNoCandidates, plan.State)
	s.Contains(output, "No suitable connection found")
}

func (s *ScenarioSuite) TestUnusableStationCache() {
	s.cfg.Corridor.StationsFile = filepath.Join(s.T().TempDir(), "missing.json")

	_, err := Setup(s.cfg)

	s.ErrorIs(err, corridor.ErrStationCache)
}

func (s *ScenarioSuite) TestMissingProviderTableDegrades() {
	s.services.connections["Zürich HB"] = "Lindau-Insel"
	s.cfg.Providers.File = filepath.Join(s.T().TempDir(), "missing.json")

	_, output := s.plan("Zürich HB", "München Hbf")

	s.Contains(output, "Local provider lookup failed for Lindau-Insel")
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, new(ScenarioSuite))
}

func TestSetupRequiresStations(t *testing.T) {
	cfg := config.Default()
	cfg.Corridor.StationsFile = filepath.Join(t.TempDir(), "nope.json")

	_, err := Setup(cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, corridor.ErrStationCache)
}
