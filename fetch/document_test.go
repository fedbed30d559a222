package fetch

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func TestDocumentIndent(t *testing.T) {
	for _, testcase := range []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single member",
			in:   `{"ip": "1.2.3.4"}`,
			want: "{\n  \"ip\": \"1.2.3.4\"\n}",
		},
		{
			name: "key order kept",
			in:   `{"zeta":1,"alpha":2}`,
			want: "{\n  \"zeta\": 1,\n  \"alpha\": 2\n}",
		},
		{
			name: "nested",
			in:   `{"loc":{"lat":1},"tags":[1,2]}`,
			want: "{\n  \"loc\": {\n    \"lat\": 1\n  },\n  \"tags\": [\n    1,\n    2\n  ]\n}",
		},
		{
			name: "empty containers",
			in:   `{"a":{},"b":[]}`,
			want: "{\n  \"a\": {},\n  \"b\": []\n}",
		},
		{
			name: "duplicate keys keep first position and last value",
			in:   `{"d":1,"x":true,"d":2}`,
			want: "{\n  \"d\": 2,\n  \"x\": true\n}",
		},
		{
			name: "numbers in canonical form",
			in:   `[1.0,1E2,-0.50,-0,1e21,123e18,0.0000001,0.000001,12345678901234567890,1e400]`,
			want: "[\n  1,\n  100,\n  -0.5,\n  0,\n  1e+21,\n  123000000000000000000,\n  1e-7,\n  0.000001,\n  12345678901234567000,\n  null\n]",
		},
		{
			name: "strings re-encoded",
			in:   `{"s":"\u00e9\/x\u0041","c":"a\u0001\n\"","a\u0062":"<&>"}`,
			want: "{\n  \"s\": \"é/xA\",\n  \"c\": \"a\\u0001\\n\\\"\",\n  \"ab\": \"<&>\"\n}",
		},
		{
			name: "mixed spellings",
			in:   `{"n":1.0,"e":1E2,"s":"é\/x","d":1,"d":2}`,
			want: "{\n  \"n\": 1,\n  \"e\": 100,\n  \"s\": \"é/x\",\n  \"d\": 2\n}",
		},
		{
			name: "scalar",
			in:   " \"hello\"\n",
			want: `"hello"`,
		},
	} {
		t.Run(testcase.name, func(t *testing.T) {
			doc, err := ParseDocument([]byte(testcase.in))
			if err != nil {
				t.Fatal(err)
			}
			if want, have := testcase.want, doc.Indent(); want != have {
				t.Errorf("want %q, have %q", want, have)
			}
		})
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	for _, in := range []string{
		`{"ip":"1.2.3.4","city":"Berlin","loc":"52.5,13.4","readme":"https://ipinfo.io/missingauth"}`,
		`{"a":[1,2.5,{"b":null,"c":true}],"d":"é \"quoted\""}`,
		`[]`,
		`42`,
	} {
		first, err := ParseDocument([]byte(in))
		if err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		second, err := ParseDocument([]byte(first.Indent()))
		if err != nil {
			t.Fatalf("%s: re-parse: %v", in, err)
		}
		if want, have := first.Value(), second.Value(); !reflect.DeepEqual(want, have) {
			t.Errorf("%s: want %#v, have %#v", in, want, have)
		}
	}
}

func TestDocumentGet(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"ip":"1.2.3.4","loc":{"city":"Berlin"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if want, have := "Berlin", doc.Get("loc.city").String(); want != have {
		t.Errorf("want %q, have %q", want, have)
	}
	if doc.Get("missing").Exists() {
		t.Error("want missing path to not exist")
	}
}

func TestParseDocumentInvalid(t *testing.T) {
	for _, in := range []string{``, `{`, `<html></html>`, `{"a":1} {"b":2}`} {
		_, err := ParseDocument([]byte(in))
		if want, have := ErrInvalidJSON, errors.Cause(err); want != have {
			t.Errorf("%q: want %v, have %v", in, want, have)
		}
	}
}
