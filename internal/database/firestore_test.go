package database

import "testing"

func TestSnapshotDocument(t *testing.T) {
	data := map[string]interface{}{"make": "Volvo", "_id": "stale"}
	doc := snapshotDocument("Xk29", data)

	if got := doc.ID(); got != "Xk29" {
		t.Fatalf("ID() = %q, want the snapshot id", got)
	}
	if got, _ := doc.StringOr("make", ""); got != "Volvo" {
		t.Fatalf("make = %q", got)
	}
	if data["_id"] != "stale" {
		t.Fatal("snapshot data must not be modified")
	}
}

func TestSnapshotDocumentNilData(t *testing.T) {
	doc := snapshotDocument("empty", nil)
	if len(doc) != 1 || doc.ID() != "empty" {
		t.Fatalf("doc = %v", doc)
	}
}
