package utils

import (
	"reflect"
	"testing"
)

func TestExtractVariables(t *testing.T) {
	got := ExtractVariables("Hi {{client}}, {{ agency }} welcomes {{client}}")
	want := []string{"agency", "client"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractVariables() = %v, want %v", got, want)
	}

	if vars := ExtractVariables("no placeholders here"); len(vars) != 0 {
		t.Errorf("expected no variables, got %v", vars)
	}
}

func TestSubstitute(t *testing.T) {
	out, missing := Substitute("Hi {{client}}, from {{agency}}", map[string]string{
		"client": "Acme",
		"agency": "Demo Agency",
	})
	if out != "Hi Acme, from Demo Agency" {
		t.Errorf("unexpected output: %q", out)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing variables, got %v", missing)
	}
}

func TestSubstituteMissing(t *testing.T) {
	out, missing := Substitute("Hi {{client}}, your manager is {{manager}}", map[string]string{
		"client": "Acme",
	})
	if out != "Hi Acme, your manager is {{manager}}" {
		t.Errorf("unexpected output: %q", out)
	}
	if !reflect.DeepEqual(missing, []string{"manager"}) {
		t.Errorf("missing = %v, want [manager]", missing)
	}
}
