package model

import "testing"

func TestTextIndexing(t *testing.T) {
	body := "héllo"
	tw := &Tweet{FullText: &body}

	if got := tw.At(1); got != "é" {
		t.Errorf("At(1) = %q, want %q", got, "é")
	}
	if got := tw.At(99); got != "" {
		t.Errorf("At(99) = %q, want empty", got)
	}
	if got := tw.Slice(1, 3); got != "él" {
		t.Errorf("Slice(1,3) = %q, want %q", got, "él")
	}
	if got := tw.Slice(3, 99); got != "lo" {
		t.Errorf("Slice(3,99) = %q, want %q", got, "lo")
	}
	if got := (&Tweet{}).Slice(0, 2); got != "" {
		t.Errorf("Slice on empty body = %q, want empty", got)
	}
}

func TestNegativeIndexPanics(t *testing.T) {
	body := "abc"
	tw := &Tweet{FullText: &body}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative index")
		}
	}()
	_ = tw.At(-1)
}

func TestDataCoversAllColumns(t *testing.T) {
	tw := &Tweet{ID: 7, Author: &User{ID: "42"}}
	row := tw.Data()
	for _, col := range TweetColumns {
		if _, ok := row[col]; !ok {
			t.Errorf("Data() missing column %q", col)
		}
	}
	if row["id"] != int64(7) {
		t.Errorf("id = %v", row["id"])
	}
	if row["user"] != "42" {
		t.Errorf("user = %v, want author id", row["user"])
	}
	if row["full_text"] != nil {
		t.Errorf("missing field must project as nil, got %v", row["full_text"])
	}
}
