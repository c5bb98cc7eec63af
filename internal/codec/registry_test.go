package codec

import (
	"strings"
	"testing"
)

func fullCredentials() Credentials {
	return Credentials{
		ClientID:     "id",
		ClientSecret: "secret",
		OAuthURL:     "https://auth.example.com",
		APIURL:       "https://api.example.com",
		Project:      "store",
		Scope:        "view_products",
	}
}

func TestRegistrySelection(t *testing.T) {
	Register(Type{
		Vendor:   "testvendor",
		Validate: func(c Credentials) bool { return c.ClientID != "" },
		New:      func(cfg Config) (Codec, error) { return &Mock{}, nil },
	})

	if _, ok := Lookup("testvendor"); !ok {
		t.Fatal("Lookup(testvendor) = false after Register")
	}

	found := false
	for _, v := range Vendors() {
		if v == "testvendor" {
			found = true
		}
	}
	if !found {
		t.Error("Vendors() does not include registered vendor")
	}

	c, err := New("testvendor", Config{Credentials: fullCredentials()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c == nil {
		t.Fatal("New() returned nil codec")
	}
}

func TestRegistryRejectsInvalidCredentials(t *testing.T) {
	Register(Type{
		Vendor:   "strictvendor",
		Validate: func(c Credentials) bool { return c.ClientID != "" && c.ClientSecret != "" },
		New:      func(cfg Config) (Codec, error) { return &Mock{}, nil },
	})

	_, err := New("strictvendor", Config{Credentials: Credentials{ClientID: "only-id"}})
	if err == nil {
		t.Fatal("New() with missing credentials should fail")
	}
	if !strings.Contains(err.Error(), "missing credentials") {
		t.Errorf("error = %v, want credential rejection", err)
	}
}

func TestRegistryUnknownVendor(t *testing.T) {
	_, err := New("nope", Config{})
	if err == nil {
		t.Fatal("New(nope) should fail")
	}
}
