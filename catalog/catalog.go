// Package catalog lists well-known captive portal and connectivity check
// endpoints and groups them into ready-made probe sets.
package catalog

import (
	"net/http"

	"github.com/drblury/netcheck/probe"
)

// Endpoint describes one built-in connectivity check.
type Endpoint struct {
	Name   string
	URL    string
	Status int
}

// Probe builds the probe for e. It panics if e.URL is not a valid address,
// which for the built-in table would be a programming error.
func (e Endpoint) Probe(opts ...probe.Option) probe.Probe {
	return probe.MustParse(e.URL, probe.ExpectStatus(e.Status), opts...)
}

// Endpoints returns the built-in table in a stable order.
func Endpoints() []Endpoint {
	return []Endpoint{
		{Name: "apple", URL: "http://captive.apple.com/hotspot-detect.html", Status: http.StatusOK},
		{Name: "google", URL: "http://www.google.com/generate_204", Status: http.StatusNoContent},
		{Name: "cloudflare", URL: "http://cp.cloudflare.com/generate_204", Status: http.StatusNoContent},
		{Name: "gstatic", URL: "http://connectivitycheck.gstatic.com/generate_204", Status: http.StatusNoContent},
		{Name: "microsoft", URL: "http://www.msftconnecttest.com/connecttest.txt", Status: http.StatusOK},
		{Name: "firefox", URL: "http://detectportal.firefox.com/success.txt", Status: http.StatusOK},
		{Name: "ubuntu", URL: "http://connectivity-check.ubuntu.com/", Status: http.StatusNoContent},
	}
}

// Lookup finds a built-in endpoint by name.
func Lookup(name string) (Endpoint, bool) {
	for _, e := range Endpoints() {
		if e.Name == name {
			return e, true
		}
	}
	return Endpoint{}, false
}

func mustLookup(name string) Endpoint {
	e, ok := Lookup(name)
	if !ok {
		panic("catalog: unknown endpoint " + name)
	}
	return e
}

// Apple checks captive.apple.com, which serves a small "Success" page.
func Apple(opts ...probe.Option) probe.Probe { return mustLookup("apple").Probe(opts...) }

// Google checks www.google.com/generate_204.
func Google(opts ...probe.Option) probe.Probe { return mustLookup("google").Probe(opts...) }

// Cloudflare checks cp.cloudflare.com/generate_204.
func Cloudflare(opts ...probe.Option) probe.Probe { return mustLookup("cloudflare").Probe(opts...) }

// Gstatic checks the Android connectivity endpoint.
func Gstatic(opts ...probe.Option) probe.Probe { return mustLookup("gstatic").Probe(opts...) }

// Microsoft checks the Windows NCSI endpoint.
func Microsoft(opts ...probe.Option) probe.Probe { return mustLookup("microsoft").Probe(opts...) }

// Firefox checks Mozilla's captive portal endpoint.
func Firefox(opts ...probe.Option) probe.Probe { return mustLookup("firefox").Probe(opts...) }

// Ubuntu checks the NetworkManager endpoint used by Ubuntu.
func Ubuntu(opts ...probe.Option) probe.Probe { return mustLookup("ubuntu").Probe(opts...) }

// Default returns three operationally independent probes, enough for a quick
// answer without hammering every vendor.
func Default(opts ...probe.Option) probe.Set {
	return probe.NewSet(Apple(opts...), Google(opts...), Cloudflare(opts...))
}

// All returns every built-in probe.
func All(opts ...probe.Option) probe.Set {
	endpoints := Endpoints()
	probes := make([]probe.Probe, 0, len(endpoints))
	for _, e := range endpoints {
		probes = append(probes, e.Probe(opts...))
	}
	return probe.NewSet(probes...)
}
