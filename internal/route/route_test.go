package route

import (
	"encoding/json"
	"testing"
)

func TestParseVerb(t *testing.T) {
	tests := []struct {
		in   string
		want Verb
		ok   bool
	}{
		{"GET", GET, true},
		{"RequestMethod.POST", POST, true},
		{"org.springframework.web.bind.annotation.RequestMethod.PATCH", PATCH, true},
		{"get", VerbUnknown, false},
		{"RequestMethod.FETCH", VerbUnknown, false},
	}
	for _, tt := range tests {
		got, ok := ParseVerb(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseVerb(%q) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestVerbSetOrderAndDedup(t *testing.T) {
	s := Verbs(POST, GET, POST)
	got := s.Methods()
	if len(got) != 2 || got[0] != "POST" || got[1] != "GET" {
		t.Fatalf("Methods() = %v", got)
	}
	if s.IsAny() || s.IsEmpty() {
		t.Fatal("concrete set misreported")
	}
}

func TestAnyVerb(t *testing.T) {
	s := AnyVerb().With(GET)
	if !s.IsAny() || !s.Has(DELETE) {
		t.Fatal("ANY must absorb and match every verb")
	}
	if m := s.Methods(); len(m) != 1 || m[0] != MethodAny {
		t.Fatalf("ANY renders as %v", m)
	}
	if s.List() != nil {
		t.Fatal("ANY has no concrete list")
	}
}

func TestVerbSetWithDoesNotAlias(t *testing.T) {
	base := Verbs(GET)
	a := base.With(POST)
	b := base.With(PUT)
	if a.Has(PUT) || b.Has(POST) {
		t.Fatal("With must not share backing storage")
	}
}

func TestDispatchVerb(t *testing.T) {
	for name, want := range map[string]Verb{"doGet": GET, "doPatch": PATCH, "doOptions": OPTIONS, "doHead": HEAD} {
		if got, ok := DispatchVerb(name); !ok || got != want {
			t.Errorf("DispatchVerb(%q) = %v,%v", name, got, ok)
		}
	}
	if _, ok := DispatchVerb("doTrace"); ok {
		t.Error("doTrace is not part of the dispatch table")
	}
}

func TestEndpointJSONOrigin(t *testing.T) {
	e := Endpoint{HTTPMethod: "GET", PathTemplate: "/a", DeclaringType: "x.A", HandlerName: "doGet", Origin: OriginDispatchConvention}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Endpoint
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != e {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}
