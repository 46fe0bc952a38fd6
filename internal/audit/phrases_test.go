package audit

import (
	"reflect"
	"testing"
)

func TestPhraseSetFindAll(t *testing.T) {
	set := NewPhraseSet("v tomto článku", "dozviete sa", "povieme si")

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single hit",
			text: "V tomto článku sa pozrieme na kreatín.",
			want: []string{"v tomto článku"},
		},
		{
			name: "multiple hits in registration order",
			text: "Povieme si všetko, čo sa dozviete sa oplatí vedieť.",
			want: []string{"dozviete sa", "povieme si"},
		},
		{
			name: "case-insensitive",
			text: "DOZVIETE SA viac nižšie.",
			want: []string{"dozviete sa"},
		},
		{
			name: "no hits",
			text: "Kreatín je organická zlúčenina.",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := set.FindAll(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindAll(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestPhraseSetEmpty(t *testing.T) {
	set := NewPhraseSet()
	if set.Matches("v tomto článku") {
		t.Error("empty phrase set must not match anything")
	}
	if got := set.FindAll("v tomto článku"); got != nil {
		t.Errorf("empty phrase set FindAll = %v, want nil", got)
	}

	set = NewPhraseSet("", "  ")
	if set.Matches("anything") {
		t.Error("blank phrases should be dropped")
	}
}

func TestWordSetBoundaries(t *testing.T) {
	set := NewWordSet("zdroje", "štúdie")

	tests := []struct {
		text string
		want bool
	}{
		{"Zdroje: pozri nižšie", true},
		{"Použité zdroje", true},
		{"(štúdie)", true},
		{"ŠTÚDIE potvrdzujú", true},
		{"zdrojec", false},
		{"nezdroje", false},
		{"štúdiea", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := set.Matches(tt.text); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestWordSetEmpty(t *testing.T) {
	for name, set := range map[string]*WordSet{
		"no words":    NewWordSet(),
		"blank words": NewWordSet("", "  "),
	} {
		if set.Matches("Zdroje: pozri nižšie") {
			t.Errorf("%s: empty word set must not match anything", name)
		}
		if set.Matches("") {
			t.Errorf("%s: empty word set must not match empty text", name)
		}
	}
}
