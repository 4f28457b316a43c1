// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"encoding"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Ensure Document satisfies the encoding.Text* interfaces.
var _ interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
} = new(Document)

// contents returns the document's sections and properties for comparison.
func contents(d *Document) map[string]map[string]string {
	m := make(map[string]map[string]string)
	for _, name := range d.Sections() {
		g := d.Group(name)
		props := make(map[string]string, g.Len())
		for _, k := range g.Keys() {
			props[k] = g.String(k, "")
		}
		m[name] = props
	}
	return m
}

func TestNil(t *testing.T) {
	d := (*Document)(nil)
	if got := d.Group("foo"); got != nil {
		t.Errorf("Group(...) = %v; want nil", got)
	}
	if d.HasGroup("") {
		t.Error("HasGroup(\"\") = true; want false")
	}
	if d.HasKey("foo", "bar") {
		t.Error("HasKey(...) = true; want false")
	}
	if got := d.String("foo", "bar", "def"); got != "def" {
		t.Errorf("String(...) = %q; want \"def\"", got)
	}
	if got := d.Sections(); len(got) > 0 {
		t.Errorf("Sections() = %q; want empty", got)
	}
	if got, err := d.MarshalText(); err != nil {
		t.Errorf("MarshalText(): %v", err)
	} else if len(got) > 0 {
		t.Errorf("MarshalText() = %q; want empty", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		want      map[string]map[string]string
		canonical string
	}{
		{
			name: "Empty",
			want: map[string]map[string]string{"": {}},
		},
		{
			name:   "EmptyWithNewline",
			source: "\n",
			want:   map[string]map[string]string{"": {}},
		},
		{
			name:      "Single",
			source:    "FOO=bar\n",
			want:      map[string]map[string]string{"": {"FOO": "bar"}},
			canonical: "FOO=bar\n",
		},
		{
			name:      "NoNewline",
			source:    "FOO=bar",
			want:      map[string]map[string]string{"": {"FOO": "bar"}},
			canonical: "FOO=bar\n",
		},
		{
			name:      "NoEquals",
			source:    "FOO\n",
			want:      map[string]map[string]string{"": {"FOO": ""}},
			canonical: "FOO=\n",
		},
		{
			name:      "EmptyValue",
			source:    "FOO=\n",
			want:      map[string]map[string]string{"": {"FOO": ""}},
			canonical: "FOO=\n",
		},
		{
			name:      "EmptyKey",
			source:    "=bar\n",
			want:      map[string]map[string]string{"": {"": "bar"}},
			canonical: "=bar\n",
		},
		{
			name:      "WhitespaceIsSignificant",
			source:    " FOO = bar \n",
			want:      map[string]map[string]string{"": {" FOO ": " bar "}},
			canonical: " FOO = bar \n",
		},
		{
			name:      "SecondEqualsInValue",
			source:    "a=b=c\n",
			want:      map[string]map[string]string{"": {"a": "b=c"}},
			canonical: "a=b=c\n",
		},
		{
			name:      "MultipleKeys",
			source:    "FOO=bar\nBAZ=quux\n",
			want:      map[string]map[string]string{"": {"FOO": "bar", "BAZ": "quux"}},
			canonical: "FOO=bar\nBAZ=quux\n",
		},
		{
			name:      "RepeatedKeyKeepsLast",
			source:    "FOO=bar\nFOO=baz\n",
			want:      map[string]map[string]string{"": {"FOO": "baz"}},
			canonical: "FOO=baz\n",
		},
		{
			name:      "BlankLine",
			source:    "FOO=bar\n\nBAZ=quux\n",
			want:      map[string]map[string]string{"": {"FOO": "bar", "BAZ": "quux"}},
			canonical: "FOO=bar\nBAZ=quux\n",
		},
		{
			name:      "CRLF",
			source:    "FOO=bar\r\n\r\nBAZ=quux\r\n",
			want:      map[string]map[string]string{"": {"FOO": "bar", "BAZ": "quux"}},
			canonical: "FOO=bar\nBAZ=quux\n",
		},
		{
			name:   "Section",
			source: "[Foo]\nbar=1\n",
			want: map[string]map[string]string{
				"":    {},
				"Foo": {"bar": "1"},
			},
			canonical: "[Foo]\nbar=1\n",
		},
		{
			name:   "DefaultThenSection",
			source: "baz=hello\n[Foo]\nbar=1\n",
			want: map[string]map[string]string{
				"":    {"baz": "hello"},
				"Foo": {"bar": "1"},
			},
			canonical: "baz=hello\n[Foo]\nbar=1\n",
		},
		{
			name:   "EmptySection",
			source: "[Foo]\n",
			want: map[string]map[string]string{
				"":    {},
				"Foo": {},
			},
			canonical: "[Foo]\n",
		},
		{
			name:   "RepeatedSectionMerges",
			source: "[Foo]\na=1\n[Bar]\nx=y\n[Foo]\nb=2\n",
			want: map[string]map[string]string{
				"":    {},
				"Foo": {"a": "1", "b": "2"},
				"Bar": {"x": "y"},
			},
			canonical: "[Foo]\na=1\nb=2\n[Bar]\nx=y\n",
		},
		{
			name:   "TextAfterSectionIgnored",
			source: "[Foo] trailing\nbar=1\n",
			want: map[string]map[string]string{
				"":    {},
				"Foo": {"bar": "1"},
			},
			canonical: "[Foo]\nbar=1\n",
		},
		{
			name:   "LastBracketEndsSection",
			source: "[a]b]\nk=v\n",
			want: map[string]map[string]string{
				"":    {},
				"a]b": {"k": "v"},
			},
			canonical: "[a\\]b]\nk=v\n",
		},
		{
			name:   "SectionWithSpaces",
			source: "[DPad North]\n",
			want: map[string]map[string]string{
				"":            {},
				"DPad North": {},
			},
			canonical: "[DPad North]\n",
		},
		{
			name:   "EmptySectionNameIsDefault",
			source: "[Foo]\na=1\n[]\nb=2\n",
			want: map[string]map[string]string{
				"":    {"b": "2"},
				"Foo": {"a": "1"},
			},
			canonical: "b=2\n[Foo]\na=1\n",
		},
		{
			name:      "UnclosedBracketIsKey",
			source:    "[Foo\n",
			want:      map[string]map[string]string{"": {"[Foo": ""}},
			canonical: "\\[Foo=\n",
		},
		{
			name:      "IndentedBracketIsKey",
			source:    " [Foo]\n",
			want:      map[string]map[string]string{"": {" [Foo]": ""}},
			canonical: " [Foo]=\n",
		},
		{
			name:      "EscapedBracketIsKey",
			source:    "\\[Foo]=1\n",
			want:      map[string]map[string]string{"": {"[Foo]": "1"}},
			canonical: "\\[Foo]=1\n",
		},
		{
			name:      "Comment",
			source:    "; This explains everything!\nFOO=bar\n",
			want:      map[string]map[string]string{"": {"FOO": "bar"}},
			canonical: "FOO=bar\n",
		},
		{
			name:      "InlineComment",
			source:    "FOO=bar ; why not\n",
			want:      map[string]map[string]string{"": {"FOO": "bar "}},
			canonical: "FOO=bar \n",
		},
		{
			name:   "CommentAfterSection",
			source: "[Foo];comment\nbar=1\n",
			want: map[string]map[string]string{
				"":    {},
				"Foo": {"bar": "1"},
			},
			canonical: "[Foo]\nbar=1\n",
		},
		{
			name:   "CommentHidesBracket",
			source: "[Foo;]\n",
			want:   map[string]map[string]string{"": {"[Foo": ""}},
			// The bracket was commented out, so this is a key.
			canonical: "\\[Foo=\n",
		},
		{
			name:      "EscapedKeyAndValue",
			source:    "key\\=1=value\\nline\n",
			want:      map[string]map[string]string{"": {"key=1": "value\nline"}},
			canonical: "key\\=1=value\\nline\n",
		},
		{
			name:      "EscapedCarriageReturn",
			source:    "a=1\\r2\n",
			want:      map[string]map[string]string{"": {"a": "1\r2"}},
			canonical: "a=1\\r2\n",
		},
		{
			name:      "EscapedSemicolon",
			source:    "a=x\\;y\n",
			want:      map[string]map[string]string{"": {"a": "x;y"}},
			canonical: "a=x\\;y\n",
		},
		{
			name:      "EscapedBackslash",
			source:    "a=C:\\\\Games\n",
			want:      map[string]map[string]string{"": {"a": `C:\Games`}},
			canonical: "a=C:\\\\Games\n",
		},
		{
			name:      "GenericEscape",
			source:    "a=\\q\\t\n",
			want:      map[string]map[string]string{"": {"a": "qt"}},
			canonical: "a=qt\n",
		},
		{
			name:      "TrailingBackslash",
			source:    "a=b\\",
			want:      map[string]map[string]string{"": {"a": `b\`}},
			canonical: "a=b\\\\\n",
		},
		{
			name:      "BackslashBeforeNewline",
			source:    "a=b\\\nc=d\n",
			want:      map[string]map[string]string{"": {"a": `b\`, "c": "d"}},
			canonical: "a=b\\\\\nc=d\n",
		},
		{
			name:      "Unicode",
			source:    "名前=値\n",
			want:      map[string]map[string]string{"": {"名前": "値"}},
			canonical: "名前=値\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, err := Parse(strings.NewReader(test.source))
			if err != nil {
				t.Fatal("Parse:", err)
			}

			t.Run("Contents", func(t *testing.T) {
				if diff := cmp.Diff(test.want, contents(d), cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("contents (-want +got):\n%s", diff)
				}
			})

			t.Run("MarshalText", func(t *testing.T) {
				got, err := d.MarshalText()
				if err != nil {
					t.Fatal("MarshalText:", err)
				}
				if diff := cmp.Diff(test.canonical, string(got)); diff != "" {
					t.Errorf("MarshalText (-want +got):\n%s", diff)
				}
			})

			t.Run("RoundTrip", func(t *testing.T) {
				text, err := d.MarshalText()
				if err != nil {
					t.Fatal("MarshalText:", err)
				}
				d2, err := Parse(strings.NewReader(string(text)))
				if err != nil {
					t.Fatal("Parse:", err)
				}
				if diff := cmp.Diff(contents(d), contents(d2), cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("contents after round trip (-want +got):\n%s", diff)
				}
			})
		})
	}
}

func TestParseReadError(t *testing.T) {
	wantErr := errors.New("bork")
	d, err := Parse(io.MultiReader(strings.NewReader("a=1\n"), iotest.ErrReader(wantErr)))
	if !errors.Is(err, wantErr) {
		t.Errorf("Parse(...) error = %v; want %v", err, wantErr)
	}
	if d == nil {
		t.Fatal("Parse(...) returned nil Document")
	}
	if got := d.String("", "a", ""); got != "1" {
		t.Errorf("String(\"\", \"a\", \"\") = %q; want \"1\"", got)
	}
}

func TestLoadResets(t *testing.T) {
	d, err := Parse(strings.NewReader("a=1\n[Foo]\nb=2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Load(strings.NewReader("[Bar]\nc=3\n")); err != nil {
		t.Fatal("Load:", err)
	}
	want := map[string]map[string]string{
		"":    {},
		"Bar": {"c": "3"},
	}
	if diff := cmp.Diff(want, contents(d), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("contents after second Load (-want +got):\n%s", diff)
	}
}

func TestClear(t *testing.T) {
	d, err := Parse(strings.NewReader("a=1\n[Foo]\nb=2\n"))
	if err != nil {
		t.Fatal(err)
	}
	d.Clear()
	if got := d.Sections(); len(got) > 0 {
		t.Errorf("Sections() after Clear = %q; want empty", got)
	}
	if d.HasGroup("") {
		t.Error("HasGroup(\"\") after Clear = true; want false")
	}
	if err := d.UnmarshalText(nil); err != nil {
		t.Fatal("UnmarshalText:", err)
	}
	if !d.HasGroup("") {
		t.Error("HasGroup(\"\") after Clear and Load = false; want true")
	}
}

func TestSaveOrder(t *testing.T) {
	d := New()
	d.SetString("Zeta", "z", "1")
	d.SetString("Alpha", "a", "2")
	d.SetString("", "global", "3")
	d.SetString("Zeta", "y", "4")
	const want = "global=3\n" +
		"[Zeta]\nz=1\ny=4\n" +
		"[Alpha]\na=2\n"
	sb := new(strings.Builder)
	if err := d.Save(sb); err != nil {
		t.Fatal("Save:", err)
	}
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("Save (-want +got):\n%s", diff)
	}
}

func TestSaveWithoutDefaultGroup(t *testing.T) {
	d := New()
	d.SetString("Foo", "bar", "baz")
	if !d.RemoveGroup("") {
		t.Fatal("RemoveGroup(\"\") = false; want true")
	}
	got, err := d.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if want := "[Foo]\nbar=baz\n"; string(got) != want {
		t.Errorf("MarshalText() = %q; want %q", got, want)
	}
}
