package car

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/showroom/internal/database"
	"github.com/mx-space/showroom/internal/database/dbtest"
	"github.com/mx-space/showroom/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testCollection = "car"

func newTestRouter(store database.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(store, testCollection, zap.NewNop())).RegisterRoutes(r.Group("/api"))
	return r
}

func getCars(t *testing.T, store database.Store) []map[string]interface{} {
	t.Helper()
	w := httptest.NewRecorder()
	newTestRouter(store).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cars", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var out []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return out
}

func TestListUnavailableStoreServesDemoCatalogue(t *testing.T) {
	cars := getCars(t, database.NewUnavailable("DATABASE_URL is not set"))
	want := []string{"demo-1", "demo-2", "demo-3"}
	if len(cars) != len(want) {
		t.Fatalf("len = %d, want %d", len(cars), len(want))
	}
	for i, id := range want {
		if cars[i]["id"] != id {
			t.Fatalf("cars[%d].id = %v, want %s", i, cars[i]["id"], id)
		}
	}
}

func TestListQueryFailureServesDemoCatalogue(t *testing.T) {
	store := &dbtest.Fake{Err: fmt.Errorf("%w: find %q: timeout", database.ErrQueryFailure, testCollection)}
	cars, fallback := NewService(store, testCollection, zap.NewNop()).List(context.Background())
	if !fallback {
		t.Fatal("expected fallback")
	}
	if len(cars) != 3 || cars[0].ID != "demo-1" {
		t.Fatalf("cars = %+v", cars)
	}
}

func TestListEmptyCollection(t *testing.T) {
	store := &dbtest.Fake{Collections: map[string][]database.Document{testCollection: {}}}
	w := httptest.NewRecorder()
	newTestRouter(store).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cars", nil))
	if got := w.Body.String(); got != "[]" {
		t.Fatalf("body = %q, want []", got)
	}
}

func TestListMapsDocumentsInOrder(t *testing.T) {
	oid := primitive.NewObjectID()
	store := &dbtest.Fake{Collections: map[string][]database.Document{
		testCollection: {
			{"_id": oid, "make": "Tesla", "model": "Model 3", "year": int32(2022), "price": int64(39990), "mileage": 15000.0, "is_featured": true},
			{"_id": "plain-id", "make": "Audi"},
		},
	}}

	cars, fallback := NewService(store, testCollection, zap.NewNop()).List(context.Background())
	if fallback {
		t.Fatal("unexpected fallback")
	}
	if len(cars) != 2 {
		t.Fatalf("len = %d", len(cars))
	}

	first := cars[0]
	if first.ID != oid.Hex() || first.Make != "Tesla" || first.Model != "Model 3" {
		t.Fatalf("first = %+v", first)
	}
	if first.Year != 2022 || first.Price != 39990 || !first.IsFeatured {
		t.Fatalf("first = %+v", first)
	}
	if first.Mileage == nil || *first.Mileage != 15000 {
		t.Fatalf("mileage = %v", first.Mileage)
	}

	second := cars[1]
	if second.ID != "plain-id" || second.Model != "" {
		t.Fatalf("second = %+v", second)
	}
	if second.Year != models.DefaultCarYear || second.Price != models.DefaultCarPrice || second.IsFeatured {
		t.Fatalf("defaults not applied: %+v", second)
	}
	if second.Image != nil || second.Mileage != nil || second.Fuel != nil || second.Transmission != nil {
		t.Fatalf("optional fields must stay nil: %+v", second)
	}
}

func TestListSkipsMalformedDocument(t *testing.T) {
	store := &dbtest.Fake{Collections: map[string][]database.Document{
		testCollection: {
			{"_id": "a", "year": "not a year"},
			{"_id": "b", "year": 2021},
		},
	}}
	cars, fallback := NewService(store, testCollection, zap.NewNop()).List(context.Background())
	if fallback {
		t.Fatal("malformed documents must not trigger the demo catalogue")
	}
	if len(cars) != 1 || cars[0].ID != "b" {
		t.Fatalf("cars = %+v", cars)
	}
}

func TestListNullFieldsUseDefaults(t *testing.T) {
	store := &dbtest.Fake{Collections: map[string][]database.Document{
		testCollection: {{"_id": "n", "year": nil, "price": primitive.Null{}, "image": nil}},
	}}
	cars := getCars(t, store)
	if len(cars) != 1 {
		t.Fatalf("len = %d", len(cars))
	}
	if cars[0]["year"] != float64(models.DefaultCarYear) || cars[0]["price"] != float64(0) {
		t.Fatalf("car = %v", cars[0])
	}
	if v, ok := cars[0]["image"]; !ok || v != nil {
		t.Fatalf("image = %v (present %v), want null", v, ok)
	}
}

func TestFallbackReturnsFreshSlice(t *testing.T) {
	a := Fallback()
	a[0].Make = "changed"
	if Fallback()[0].Make == "changed" {
		t.Fatal("Fallback must not share state between calls")
	}
}

func TestListReadsConfiguredCollection(t *testing.T) {
	store := &dbtest.Fake{Collections: map[string][]database.Document{"vehicles": {{"_id": "x"}}}}
	cars, _ := NewService(store, "vehicles", zap.NewNop()).List(context.Background())
	if len(cars) != 1 {
		t.Fatalf("len = %d", len(cars))
	}
	if len(store.Calls) != 1 || store.Calls[0] != "vehicles" {
		t.Fatalf("calls = %v", store.Calls)
	}
}

func TestListLogLevelByFailureKind(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level zapcore.Level
	}{
		{"unavailable", database.NewUnavailable("unset").Ping(context.Background()), zapcore.WarnLevel},
		{"query failure", fmt.Errorf("%w: find: timeout", database.ErrQueryFailure), zapcore.WarnLevel},
		{"unexpected", errors.New("driver panic"), zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			_, fallback := NewService(&dbtest.Fake{Err: tt.err}, testCollection, zap.New(core)).List(context.Background())
			if !fallback {
				t.Fatal("expected fallback")
			}
			entries := logs.All()
			if len(entries) != 1 || entries[0].Level != tt.level {
				t.Fatalf("entries = %+v, want one at %s", entries, tt.level)
			}
		})
	}
}
