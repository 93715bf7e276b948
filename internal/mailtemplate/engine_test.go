package mailtemplate

import (
	"strings"
	"testing"
)

func testSite() Site {
	return Site{
		Name:          "Mailgate",
		SenderName:    "Mailgate Team",
		SenderAddress: "noreply@mailgate.example",
		BaseURL:       "https://mailgate.example",
	}
}

func TestRender_SiteBindings(t *testing.T) {
	e := NewEngine(testSite())
	if err := e.Register("welcome", `Welcome to {{ site.name }}! Visit {{ site.base_url }}.`); err != nil {
		t.Fatalf("Register: %v", err)
	}

	out, err := e.Render("welcome", nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "Welcome to Mailgate! Visit https://mailgate.example." {
		t.Errorf("out = %q", out)
	}
}

func TestRender_DataAndFilters(t *testing.T) {
	e := NewEngine(testSite())
	src := `Hi {{ name | default: "there" }}, we mailed {{ email | mask_email }} ({{ email | email_domain }}).`
	if err := e.Register("verify", src); err != nil {
		t.Fatalf("Register: %v", err)
	}

	out, err := e.Render("verify", map[string]interface{}{"email": "john@example.com"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "Hi there,") {
		t.Errorf("default filter not applied: %q", out)
	}
	if strings.Contains(out, "john@example.com") {
		t.Errorf("address not masked: %q", out)
	}
	if !strings.Contains(out, "(example.com)") {
		t.Errorf("email_domain filter not applied: %q", out)
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	e := NewEngine(testSite())
	if _, err := e.Render("missing", nil); err == nil {
		t.Fatal("want error for unregistered template")
	}
}

func TestRegister_ParseError(t *testing.T) {
	e := NewEngine(testSite())
	if err := e.Register("broken", `{% if %}`); err == nil {
		t.Fatal("want parse error")
	}
}

func TestRegister_ReplacesSource(t *testing.T) {
	e := NewEngine(testSite())
	if err := e.Register("t", "v1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := e.Register("t", "v2"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	out, err := e.Render("t", nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "v2" {
		t.Errorf("out = %q, want v2", out)
	}
}
