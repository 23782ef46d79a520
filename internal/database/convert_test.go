package database

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDocumentID(t *testing.T) {
	oid := primitive.NewObjectID()
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{"object id", Document{"_id": oid}, oid.Hex()},
		{"string id", Document{"_id": "abc"}, "abc"},
		{"int id", Document{"_id": int32(7)}, "7"},
		{"missing", Document{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.ID(); got != tt.want {
				t.Errorf("ID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIntOr(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		present bool
		want    int
		wantErr bool
	}{
		{name: "absent", want: 2023},
		{name: "null", value: nil, present: true, want: 2023},
		{name: "bson null", value: primitive.Null{}, present: true, want: 2023},
		{name: "int32", value: int32(2020), present: true, want: 2020},
		{name: "int64", value: int64(2021), present: true, want: 2021},
		{name: "float truncates", value: 2019.9, present: true, want: 2019},
		{name: "numeric string", value: " 2018 ", present: true, want: 2018},
		{name: "bad string", value: "soon", present: true, wantErr: true},
		{name: "bool", value: true, present: true, wantErr: true},
		{name: "array", value: primitive.A{1}, present: true, wantErr: true},
		{name: "float at 2^63", value: float64(1 << 63), present: true, wantErr: true},
		{name: "float above int64", value: 1e19, present: true, wantErr: true},
		{name: "float at -2^63", value: float64(math.MinInt64), present: true, want: math.MinInt64},
		{name: "uint64 above int64", value: uint64(math.MaxInt64) + 1, present: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Document{}
			if tt.present {
				doc["year"] = tt.value
			}
			got, err := doc.IntOr("year", 2023)
			if tt.wantErr {
				if !errors.Is(err, ErrCoercion) {
					t.Fatalf("expected ErrCoercion, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IntOr = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFloatOr(t *testing.T) {
	dec, err := primitive.ParseDecimal128("74990.50")
	if err != nil {
		t.Fatalf("decimal: %v", err)
	}
	tests := []struct {
		name    string
		doc     Document
		want    float64
		wantErr bool
	}{
		{"absent", Document{}, 0, false},
		{"int", Document{"price": int32(100)}, 100, false},
		{"double", Document{"price": 99.5}, 99.5, false},
		{"decimal128", Document{"price": dec}, 74990.5, false},
		{"string", Document{"price": "12.25"}, 12.25, false},
		{"garbage", Document{"price": "call us"}, 0, true},
		{"nan string", Document{"price": "NaN"}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.doc.FloatOr("price", 0)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("FloatOr = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoolOr(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		want    bool
		wantErr bool
	}{
		{"absent", Document{}, false, false},
		{"true", Document{"f": true}, true, false},
		{"one", Document{"f": int32(1)}, true, false},
		{"zero", Document{"f": 0.0}, false, false},
		{"string", Document{"f": "true"}, true, false},
		{"bad string", Document{"f": "maybe"}, false, true},
		{"object", Document{"f": primitive.M{}}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.doc.BoolOr("f", false)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("BoolOr = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOptionalFields(t *testing.T) {
	doc := Document{"image": "https://img", "mileage": int64(1200), "fuel": nil}

	image, err := doc.OptionalString("image")
	if err != nil || image == nil || *image != "https://img" {
		t.Fatalf("image = %v, %v", image, err)
	}
	fuel, err := doc.OptionalString("fuel")
	if err != nil || fuel != nil {
		t.Fatalf("fuel should be nil, got %v, %v", fuel, err)
	}
	mileage, err := doc.OptionalInt("mileage")
	if err != nil || mileage == nil || *mileage != 1200 {
		t.Fatalf("mileage = %v, %v", mileage, err)
	}
	missing, err := doc.OptionalInt("doors")
	if err != nil || missing != nil {
		t.Fatalf("doors should be nil, got %v, %v", missing, err)
	}
	if _, err := (Document{"mileage": "lots"}).OptionalInt("mileage"); !errors.Is(err, ErrCoercion) {
		t.Fatalf("expected ErrCoercion, got %v", err)
	}
}

func TestStringOr(t *testing.T) {
	got, err := Document{"author": "Editorial"}.StringOr("author", "Team")
	if err != nil || got != "Editorial" {
		t.Fatalf("got %q, %v", got, err)
	}
	got, err = Document{}.StringOr("author", "Team")
	if err != nil || got != "Team" {
		t.Fatalf("got %q, %v", got, err)
	}
	got, err = Document{"model": int32(911)}.StringOr("model", "")
	if err != nil || got != "911" {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := (Document{"title": primitive.A{"x"}}).StringOr("title", ""); !errors.Is(err, ErrCoercion) {
		t.Fatalf("expected ErrCoercion, got %v", err)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		want    []string
		wantErr bool
	}{
		{"absent", Document{}, []string{}, false},
		{"bson array", Document{"tags": primitive.A{"ev", "innovation"}}, []string{"ev", "innovation"}, false},
		{"firestore array", Document{"tags": []interface{}{"design"}}, []string{"design"}, false},
		{"empty", Document{"tags": primitive.A{}}, []string{}, false},
		{"scalar", Document{"tags": "ev"}, nil, true},
		{"nested", Document{"tags": primitive.A{primitive.M{"a": 1}}}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.doc.Strings("tags")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Strings = %#v, want %#v", got, tt.want)
			}
		})
	}
}
