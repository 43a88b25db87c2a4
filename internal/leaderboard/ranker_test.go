package leaderboard

import "testing"

func TestParseTableSkipsHeadersAndMalformed(t *testing.T) {
	text := `Name CPM WPM Accuracy Difficulty
----------------------------------------
Ann 50 10 95.5 Easy
Bob notanumber 8 90 Easy
| Cid | 61 | 12 | 88 | Medium |

Dee 44 9 100 Hard`
	entries := ParseTable(text, nil)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].Name != "Ann" || entries[0].CPM != 50 {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Name != "Cid" || entries[1].Difficulty != "Medium" {
		t.Fatalf("unexpected pipe-row entry: %+v", entries[1])
	}
}

func TestRankDeduplicatesByBestScore(t *testing.T) {
	entries := []Entry{
		{Name: "Ann", CPM: 50},
		{Name: "Bob", CPM: 70},
		{Name: "Ann", CPM: 80},
	}
	ranked := Rank(entries)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 entries after dedup, got %d", len(ranked))
	}
	if ranked[0].Name != "Ann" || ranked[0].CPM != 80 {
		t.Fatalf("expected Ann's best score first, got %+v", ranked[0])
	}
	if ranked[1].Name != "Bob" {
		t.Fatalf("expected Bob second, got %+v", ranked[1])
	}
}

func TestRankStableOnTies(t *testing.T) {
	entries := []Entry{
		{Name: "Ann", CPM: 60},
		{Name: "Bob", CPM: 60},
		{Name: "Cid", CPM: 60},
	}
	ranked := Rank(entries)
	want := []string{"Ann", "Bob", "Cid"}
	for i, name := range want {
		if ranked[i].Name != name {
			t.Fatalf("tie order changed: expected %s at %d, got %s", name, i, ranked[i].Name)
		}
	}
}

func TestTopSlices(t *testing.T) {
	ranked := Rank([]Entry{
		{Name: "a", CPM: 5}, {Name: "b", CPM: 4}, {Name: "c", CPM: 3},
	})
	top := Top(ranked, 2)
	if len(top) != 2 || top[0].Name != "a" || top[1].Name != "b" {
		t.Fatalf("unexpected top slice: %+v", top)
	}
	if got := Top(ranked, 10); len(got) != 3 {
		t.Fatalf("expected full slice when n exceeds length, got %d", len(got))
	}
}

func TestUserRank(t *testing.T) {
	ranked := Rank([]Entry{
		{Name: "a", CPM: 90}, {Name: "b", CPM: 80}, {Name: "c", CPM: 70},
	})
	entry, rank, ok := UserRank(ranked, "c")
	if !ok || rank != 3 || entry.CPM != 70 {
		t.Fatalf("unexpected user rank: %+v rank=%d ok=%v", entry, rank, ok)
	}
	if _, _, ok := UserRank(ranked, "zed"); ok {
		t.Fatalf("expected missing user to report not found")
	}
}
