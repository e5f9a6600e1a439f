package domain

import (
	"regexp"
	"strings"
)

var (
	sshURLPattern  = regexp.MustCompile(`^ssh://(?:.*@)?([^:/]*)(?::([^/]*)/)?`)
	scpLikePattern = regexp.MustCompile(`^(?:.*@)?([^:/]+)`)
)

// TransportInfo describes what a clone URL requires from the task chain.
// It is derived once per dispatch and only lives while the chain is built.
type TransportInfo struct {
	SSH  bool
	Host string
	Port string
}

// ClassifyTransport decides whether a clone URL needs SSH host-key
// preparation and extracts the host and optional port. It is a pure string
// transform: reachability is not validated here.
//
// URLs with an http(s) scheme never need SSH tasks. Full ssh:// URLs yield
// host and, when present, port. SCP-like URLs ("git@host:path") yield the
// host only. Anything else, including bare local paths with no host
// component, falls through to the non-SSH default and is handed to the sync
// task as-is.
func ClassifyTransport(cloneURL string) TransportInfo {
	if strings.HasPrefix(cloneURL, "http") {
		return TransportInfo{}
	}
	if m := sshURLPattern.FindStringSubmatch(cloneURL); m != nil && m[1] != "" {
		return TransportInfo{SSH: true, Host: m[1], Port: m[2]}
	}
	if m := scpLikePattern.FindStringSubmatch(cloneURL); m != nil {
		return TransportInfo{SSH: true, Host: m[1]}
	}
	return TransportInfo{}
}
