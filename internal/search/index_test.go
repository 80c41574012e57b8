package search

import (
	"testing"

	"github.com/tbourn/go-table-order/internal/domain"
)

func menu() []domain.MenuItem {
	return []domain.MenuItem{
		{ID: 1, Name: "Palov", Category: "taom", Description: "Toshkent palovi, mol go‘shti bilan"},
		{ID: 2, Name: "Choy", Category: "ichimlik", Description: "Ko‘k choy"},
		{ID: 3, Name: "Lag'mon", Category: "taom", Description: "Qo‘lda cho‘zilgan lag‘mon"},
		{ID: 4, Name: "Kompot", Category: "ichimlik"},
	}
}

func ids(rs []Result) []uint {
	out := make([]uint, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestOptionsAndDefaults(t *testing.T) {
	def := defaultConfig()
	if def.stopwords != nil || def.maxDocs != 0 || def.minPrefix != 2 || def.exactMatch {
		t.Fatalf("defaultConfig unexpected: %#v", def)
	}

	cfg := def
	WithStopwords([]string{"  Bilan ", ""})(&cfg)
	if _, ok := cfg.stopwords["bilan"]; !ok {
		t.Fatalf("WithStopwords failed: %#v", cfg.stopwords)
	}

	cfg2 := def
	WithStopwords(nil)(&cfg2)
	if cfg2.stopwords != nil {
		t.Fatalf("empty stopwords should remain nil")
	}

	WithMaxDocs(2)(&cfg)
	WithMaxDocs(0)(&cfg) // no-op
	if cfg.maxDocs != 2 {
		t.Fatalf("WithMaxDocs failed: %d", cfg.maxDocs)
	}

	WithExactMatch()(&cfg)
	if !cfg.exactMatch {
		t.Fatalf("WithExactMatch failed")
	}
}

func TestTopK_EmptyInputs(t *testing.T) {
	if got := NewIndex(nil).TopK("palov", 3); got != nil {
		t.Fatalf("empty index should return nil, got %v", got)
	}
	idx := NewIndex(MenuDocs(menu()))
	if got := idx.TopK("   ", 3); got != nil {
		t.Fatalf("blank query should return nil, got %v", got)
	}
	if got := idx.TopK("!!!", 3); got != nil {
		t.Fatalf("token-free query should return nil, got %v", got)
	}
	if got := idx.TopK("shashlik", 3); got != nil {
		t.Fatalf("no match should return nil, got %v", got)
	}
}

func TestTopK_CategoryAndPrefix(t *testing.T) {
	idx := NewIndex(MenuDocs(menu()))

	// Kompot has fewer tokens than Choy, so it scores higher.
	got := ids(idx.TopK("ichimlik", 0))
	if len(got) != 2 || got[0] != 4 || got[1] != 2 {
		t.Fatalf("category query ids=%v want [4 2]", got)
	}

	got = ids(idx.TopK("pal", 0))
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("prefix query ids=%v want [1]", got)
	}

	if got := NewIndex(MenuDocs(menu()), WithExactMatch()).TopK("pal", 0); got != nil {
		t.Fatalf("exact match should not prefix-match, got %v", got)
	}
}

func TestTopK_ApostropheFolding(t *testing.T) {
	idx := NewIndex(MenuDocs(menu()))
	for _, q := range []string{"lagmon", "lag'mon", "lag‘mon", "LAGʻMON"} {
		got := ids(idx.TopK(q, 1))
		if len(got) != 1 || got[0] != 3 {
			t.Fatalf("query %q ids=%v want [3]", q, got)
		}
	}
}

func TestTopK_ScoreOrderAndK(t *testing.T) {
	idx := NewIndex(MenuDocs(menu()))

	res := idx.TopK("choy ichimlik", 5)
	if len(res) != 2 || res[0].ID != 2 {
		t.Fatalf("expected Choy first, got %+v", res)
	}
	if res[0].Score <= res[1].Score {
		t.Fatalf("scores not descending: %+v", res)
	}

	if res := idx.TopK("taom", 1); len(res) != 1 || res[0].ID != 3 {
		t.Fatalf("k=1 should return the best match, got %+v", res)
	}

	same := NewIndex([]Doc{{ID: 7, Text: "somsa"}, {ID: 5, Text: "somsa"}})
	if res := same.TopK("somsa", 0); len(res) != 2 || res[0].ID != 7 {
		t.Fatalf("ties must keep document order, got %+v", res)
	}
}

func TestWithMaxDocs_CapsIndex(t *testing.T) {
	idx := NewIndex(MenuDocs(menu()), WithMaxDocs(1))
	if got := idx.TopK("ichimlik", 0); got != nil {
		t.Fatalf("documents past the cap must not be indexed, got %v", got)
	}
}

func TestStopwords(t *testing.T) {
	idx := NewIndex(MenuDocs(menu()), WithStopwords([]string{"bilan"}))
	if got := idx.TopK("bilan", 0); got != nil {
		t.Fatalf("stopword query should return nil, got %v", got)
	}
}

func TestFold(t *testing.T) {
	cases := map[string]string{
		"Qo‘lda":  "qolda",
		"O'ZBEK":  "ozbek",
		"Crème":   "creme",
		"  Choy ": "  choy ",
	}
	for in, want := range cases {
		if got := Fold(in); got != want {
			t.Fatalf("Fold(%q)=%q want %q", in, got, want)
		}
	}
}
